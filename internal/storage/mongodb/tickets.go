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

// TicketStore est append-only : aucun ticket n'est modifié ni supprimé.
type TicketStore struct {
	col *mongo.Collection
}

func (s *TicketStore) Create(ctx context.Context, t models.Ticket) (models.Ticket, error) {
	t.ID = uuid.NewString()
	if _, err := s.col.InsertOne(ctx, t); err != nil {
		return models.Ticket{}, errs.Wrap(errs.Unknown, "insertion ticket", err)
	}
	return t, nil
}

func (s *TicketStore) GetByCode(ctx context.Context, code string) (models.Ticket, error) {
	var t models.Ticket
	err := s.col.FindOne(ctx, bson.M{"code": code}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Ticket{}, errs.Newf(errs.NotFound, "ticket introuvable, code %s", code)
	}
	if err != nil {
		return models.Ticket{}, errs.Wrap(errs.Unknown, "lecture ticket", err)
	}
	return t, nil
}
