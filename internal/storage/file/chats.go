package file

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"storefront_back_end/internal/errs"
	"storefront_back_end/internal/models"
)

type ChatStore struct {
	path string
	mu   sync.Mutex
}

func (s *ChatStore) Create(_ context.Context, userEmail string) (models.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chats, err := readAll[models.Chat](s.path)
	if err != nil {
		return models.Chat{}, errs.Wrap(errs.Unknown, "chargement des chats", err)
	}
	chat := models.Chat{ID: uuid.NewString(), User: userEmail, Messages: []string{}}
	chats = append(chats, chat)
	if err := writeAll(s.path, chats); err != nil {
		return models.Chat{}, errs.Wrap(errs.Unknown, "sauvegarde des chats", err)
	}
	return chat, nil
}

func (s *ChatStore) GetByUser(_ context.Context, userEmail string) (models.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chats, err := readAll[models.Chat](s.path)
	if err != nil {
		return models.Chat{}, errs.Wrap(errs.Unknown, "chargement des chats", err)
	}
	for _, c := range chats {
		if strings.EqualFold(c.User, userEmail) {
			return c, nil
		}
	}
	return models.Chat{}, errs.Newf(errs.NotFound, "chat introuvable pour %s", userEmail)
}

func (s *ChatStore) AppendMessage(_ context.Context, userEmail, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	chats, err := readAll[models.Chat](s.path)
	if err != nil {
		return errs.Wrap(errs.Unknown, "chargement des chats", err)
	}
	for i := range chats {
		if strings.EqualFold(chats[i].User, userEmail) {
			chats[i].Messages = append(chats[i].Messages, message)
			if err := writeAll(s.path, chats); err != nil {
				return errs.Wrap(errs.Unknown, "sauvegarde des chats", err)
			}
			return nil
		}
	}
	return errs.Newf(errs.NotFound, "chat introuvable pour %s", userEmail)
}

func (s *ChatStore) Delete(_ context.Context, id string) (models.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chats, err := readAll[models.Chat](s.path)
	if err != nil {
		return models.Chat{}, errs.Wrap(errs.Unknown, "chargement des chats", err)
	}
	for i, c := range chats {
		if c.ID != id {
			continue
		}
		chats = append(chats[:i], chats[i+1:]...)
		if err := writeAll(s.path, chats); err != nil {
			return models.Chat{}, errs.Wrap(errs.Unknown, "sauvegarde des chats", err)
		}
		return c, nil
	}
	return models.Chat{}, errs.Newf(errs.NotFound, "chat introuvable, id %s", id)
}
