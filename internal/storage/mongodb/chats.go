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

type ChatStore struct {
	col *mongo.Collection
}

func (s *ChatStore) Create(ctx context.Context, userEmail string) (models.Chat, error) {
	chat := models.Chat{ID: uuid.NewString(), User: strings.ToLower(userEmail), Messages: []string{}}
	if _, err := s.col.InsertOne(ctx, chat); err != nil {
		return models.Chat{}, errs.Wrap(errs.Unknown, "insertion chat", err)
	}
	return chat, nil
}

func (s *ChatStore) GetByUser(ctx context.Context, userEmail string) (models.Chat, error) {
	var c models.Chat
	err := s.col.FindOne(ctx, bson.M{"user": strings.ToLower(userEmail)}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Chat{}, errs.Newf(errs.NotFound, "chat introuvable pour %s", userEmail)
	}
	if err != nil {
		return models.Chat{}, errs.Wrap(errs.Unknown, "lecture chat", err)
	}
	return c, nil
}

func (s *ChatStore) AppendMessage(ctx context.Context, userEmail, message string) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"user": strings.ToLower(userEmail)},
		bson.M{"$push": bson.M{"messages": message}},
	)
	if err != nil {
		return errs.Wrap(errs.Unknown, "ajout message chat", err)
	}
	if res.MatchedCount == 0 {
		return errs.Newf(errs.NotFound, "chat introuvable pour %s", userEmail)
	}
	return nil
}

func (s *ChatStore) Delete(ctx context.Context, id string) (models.Chat, error) {
	var c models.Chat
	err := s.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Chat{}, errs.Newf(errs.NotFound, "chat introuvable, id %s", id)
	}
	if err != nil {
		return models.Chat{}, errs.Wrap(errs.Unknown, "suppression chat", err)
	}
	return c, nil
}
