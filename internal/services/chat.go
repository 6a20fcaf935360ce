package services

import (
	"context"

	"storefront_back_end/internal/errs"
	"storefront_back_end/internal/models"
	"storefront_back_end/internal/storage"
)

// ChatService gère le fil de messages d'un utilisateur, créé paresseusement
// au premier message.
type ChatService struct {
	chats storage.ChatStore
}

func NewChatService(chats storage.ChatStore) *ChatService {
	return &ChatService{chats: chats}
}

// History retourne le fil d'un utilisateur, ou un fil vide s'il n'a jamais
// écrit.
func (s *ChatService) History(ctx context.Context, userEmail string) (models.Chat, error) {
	chat, err := s.chats.GetByUser(ctx, userEmail)
	if err != nil {
		if errs.Is(err, errs.NotFound) {
			return models.Chat{User: userEmail, Messages: []string{}}, nil
		}
		return models.Chat{}, err
	}
	return chat, nil
}

// EnsureChat retourne le fil de l'utilisateur, en le créant au besoin.
func (s *ChatService) EnsureChat(ctx context.Context, userEmail string) (models.Chat, error) {
	chat, err := s.chats.GetByUser(ctx, userEmail)
	if err == nil {
		return chat, nil
	}
	if !errs.Is(err, errs.NotFound) {
		return models.Chat{}, err
	}
	return s.chats.Create(ctx, userEmail)
}

// Append ajoute un message au fil de l'utilisateur et retourne le fil mis à
// jour, avec création paresseuse du fil.
func (s *ChatService) Append(ctx context.Context, userEmail, message string) (models.Chat, error) {
	if message == "" {
		return models.Chat{}, errs.New(errs.InvalidData, "le message est vide")
	}
	if _, err := s.EnsureChat(ctx, userEmail); err != nil {
		return models.Chat{}, err
	}
	if err := s.chats.AppendMessage(ctx, userEmail, message); err != nil {
		return models.Chat{}, err
	}
	return s.chats.GetByUser(ctx, userEmail)
}

// Delete supprime le fil d'un utilisateur. Réservé à la cascade de
// suppression de compte ; l'absence de fil n'est pas une erreur.
func (s *ChatService) Delete(ctx context.Context, userEmail string) error {
	chat, err := s.chats.GetByUser(ctx, userEmail)
	if err != nil {
		if errs.Is(err, errs.NotFound) {
			return nil
		}
		return err
	}
	_, err = s.chats.Delete(ctx, chat.ID)
	return err
}
