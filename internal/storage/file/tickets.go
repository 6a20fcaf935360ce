package file

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"storefront_back_end/internal/errs"
	"storefront_back_end/internal/models"
)

// TicketStore est append-only : aucun ticket n'est modifié ni supprimé.
type TicketStore struct {
	path string
	mu   sync.Mutex
}

func (s *TicketStore) Create(_ context.Context, t models.Ticket) (models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := readAll[models.Ticket](s.path)
	if err != nil {
		return models.Ticket{}, errs.Wrap(errs.Unknown, "chargement des tickets", err)
	}
	t.ID = uuid.NewString()
	tickets = append(tickets, t)
	if err := writeAll(s.path, tickets); err != nil {
		return models.Ticket{}, errs.Wrap(errs.Unknown, "sauvegarde des tickets", err)
	}
	return t, nil
}

func (s *TicketStore) GetByCode(_ context.Context, code string) (models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := readAll[models.Ticket](s.path)
	if err != nil {
		return models.Ticket{}, errs.Wrap(errs.Unknown, "chargement des tickets", err)
	}
	for _, t := range tickets {
		if t.Code == code {
			return t, nil
		}
	}
	return models.Ticket{}, errs.Newf(errs.NotFound, "ticket introuvable, code %s", code)
}
