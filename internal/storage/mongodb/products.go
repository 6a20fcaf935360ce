package mongodb

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront_back_end/internal/errs"
	"storefront_back_end/internal/models"
)

type ProductStore struct {
	col *mongo.Collection
}

func (s *ProductStore) Create(ctx context.Context, p models.Product) (models.Product, error) {
	p.ID = uuid.NewString()
	if _, err := s.col.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Product{}, errs.Newf(errs.DuplicateCode, "un produit avec le code %s existe déjà", p.Code)
		}
		return models.Product{}, errs.Wrap(errs.Unknown, "insertion produit", err)
	}
	return p, nil
}

func (s *ProductStore) GetByID(ctx context.Context, id string) (models.Product, error) {
	var p models.Product
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, errs.Newf(errs.NotFound, "produit introuvable, id %s", id)
	}
	if err != nil {
		return models.Product{}, errs.Wrap(errs.Unknown, "lecture produit", err)
	}
	return p, nil
}

func (s *ProductStore) GetByCode(ctx context.Context, code string) (models.Product, error) {
	var p models.Product
	err := s.col.FindOne(ctx, bson.M{"code": code}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, errs.Newf(errs.NotFound, "produit introuvable, code %s", code)
	}
	if err != nil {
		return models.Product{}, errs.Wrap(errs.Unknown, "lecture produit", err)
	}
	return p, nil
}

func (s *ProductStore) GetByFilter(ctx context.Context, f models.ProductFilter) ([]models.Product, error) {
	filter := bson.M{}
	if f.Owner != "" {
		filter["owner"] = f.Owner
	}
	if f.OnlyEnabled {
		filter["status"] = true
	}
	if f.Query != "" {
		re := primitive.Regex{Pattern: f.Query, Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"description": re},
			bson.M{"category": re},
		}
	}

	cur, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, errs.Wrap(errs.Unknown, "listage produits", err)
	}
	defer cur.Close(ctx)

	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, errs.Wrap(errs.Unknown, "décodage produits", err)
	}
	return products, nil
}

func (s *ProductStore) Update(ctx context.Context, id string, p models.Product) (models.Product, error) {
	p.ID = id
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": id}, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Product{}, errs.Newf(errs.DuplicateCode, "un produit avec le code %s existe déjà", p.Code)
		}
		return models.Product{}, errs.Wrap(errs.Unknown, "mise à jour produit", err)
	}
	if res.MatchedCount == 0 {
		return models.Product{}, errs.Newf(errs.NotFound, "produit introuvable, id %s", id)
	}
	return p, nil
}

func (s *ProductStore) Delete(ctx context.Context, id string) (models.Product, error) {
	var p models.Product
	err := s.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, errs.Newf(errs.NotFound, "produit introuvable, id %s", id)
	}
	if err != nil {
		return models.Product{}, errs.Wrap(errs.Unknown, "suppression produit", err)
	}
	return p, nil
}

// DecrementStock est une mise à jour conditionnelle unique : le filtre porte
// le contrôle de plancher, le serveur applique contrôle et décrément
// atomiquement.
func (s *ProductStore) DecrementStock(ctx context.Context, id string, qty int) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": true, "stock": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"stock": -qty}},
	)
	if err != nil {
		return errs.Wrap(errs.Unknown, "décrément de stock", err)
	}
	if res.MatchedCount == 0 {
		// Distinguer produit absent et stock insuffisant.
		if _, err := s.GetByID(ctx, id); err != nil {
			return err
		}
		return errs.Newf(errs.InsufficientStock, "stock insuffisant pour le produit %s", id)
	}
	return nil
}
