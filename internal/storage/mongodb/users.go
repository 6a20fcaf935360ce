package mongodb

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront_back_end/internal/errs"
	"storefront_back_end/internal/models"
)

type UserStore struct {
	col *mongo.Collection
}

func (s *UserStore) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = uuid.NewString()
	u.Email = strings.ToLower(u.Email)
	if _, err := s.col.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, errs.Newf(errs.AlreadyExists, "un utilisateur avec l'email %s existe déjà", u.Email)
		}
		return models.User{}, errs.Wrap(errs.Unknown, "insertion utilisateur", err)
	}
	return u, nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (models.User, error) {
	var u models.User
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, errs.New(errs.NotFound, "utilisateur introuvable")
	}
	if err != nil {
		return models.User{}, errs.Wrap(errs.Unknown, "lecture utilisateur", err)
	}
	return u, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.col.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, errs.New(errs.NotFound, "utilisateur introuvable")
	}
	if err != nil {
		return models.User{}, errs.Wrap(errs.Unknown, "lecture utilisateur", err)
	}
	return u, nil
}

func (s *UserStore) GetAll(ctx context.Context) ([]models.User, error) {
	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, errs.Wrap(errs.Unknown, "listage utilisateurs", err)
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, errs.Wrap(errs.Unknown, "décodage utilisateurs", err)
	}
	return users, nil
}

func (s *UserStore) Update(ctx context.Context, id string, u models.User) (models.User, error) {
	u.ID = id
	u.Email = strings.ToLower(u.Email)
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": id}, u)
	if err != nil {
		return models.User{}, errs.Wrap(errs.Unknown, "mise à jour utilisateur", err)
	}
	if res.MatchedCount == 0 {
		return models.User{}, errs.New(errs.NotFound, "utilisateur introuvable")
	}
	return u, nil
}

func (s *UserStore) Delete(ctx context.Context, id string) (models.User, error) {
	var u models.User
	err := s.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, errs.New(errs.NotFound, "utilisateur introuvable")
	}
	if err != nil {
		return models.User{}, errs.Wrap(errs.Unknown, "suppression utilisateur", err)
	}
	return u, nil
}
