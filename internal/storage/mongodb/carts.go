package mongodb

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront_back_end/internal/errs"
	"storefront_back_end/internal/models"
)

type CartStore struct {
	col *mongo.Collection
}

func (s *CartStore) Create(ctx context.Context, c models.Cart) (models.Cart, error) {
	c.ID = uuid.NewString()
	if c.Items == nil {
		c.Items = map[string]int{}
	}
	if _, err := s.col.InsertOne(ctx, c); err != nil {
		return models.Cart{}, errs.Wrap(errs.Unknown, "insertion panier", err)
	}
	return c, nil
}

func (s *CartStore) GetByID(ctx context.Context, id string) (models.Cart, error) {
	var c models.Cart
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Cart{}, errs.Newf(errs.NotFound, "panier introuvable, id %s", id)
	}
	if err != nil {
		return models.Cart{}, errs.Wrap(errs.Unknown, "lecture panier", err)
	}
	if c.Items == nil {
		c.Items = map[string]int{}
	}
	return c, nil
}

func (s *CartStore) Update(ctx context.Context, id string, c models.Cart) (models.Cart, error) {
	c.ID = id
	if c.Items == nil {
		c.Items = map[string]int{}
	}
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": id}, c)
	if err != nil {
		return models.Cart{}, errs.Wrap(errs.Unknown, "mise à jour panier", err)
	}
	if res.MatchedCount == 0 {
		return models.Cart{}, errs.Newf(errs.NotFound, "panier introuvable, id %s", id)
	}
	return c, nil
}

func (s *CartStore) Delete(ctx context.Context, id string) (models.Cart, error) {
	var c models.Cart
	err := s.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Cart{}, errs.Newf(errs.NotFound, "panier introuvable, id %s", id)
	}
	if err != nil {
		return models.Cart{}, errs.Wrap(errs.Unknown, "suppression panier", err)
	}
	return c, nil
}
