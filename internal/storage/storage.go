// Package storage définit les ports de persistance du coeur métier. Les
// services ne dépendent que de ces interfaces; deux backends existent et sont
// interchangeables sans modification de la couche service.
package storage

import (
	"context"

	"storefront_back_end/internal/models"
)

type ProductStore interface {
	Create(ctx context.Context, p models.Product) (models.Product, error)
	GetByID(ctx context.Context, id string) (models.Product, error)
	GetByCode(ctx context.Context, code string) (models.Product, error)
	GetByFilter(ctx context.Context, f models.ProductFilter) ([]models.Product, error)
	Update(ctx context.Context, id string, p models.Product) (models.Product, error)
	Delete(ctx context.Context, id string) (models.Product, error)

	// DecrementStock décrémente le stock d'un produit visible, en une seule
	// opération conditionnelle : le stock ne passe jamais sous zéro même sous
	// achats concurrents. Retourne InsufficientStock si le plancher est atteint.
	DecrementStock(ctx context.Context, id string, qty int) error
}

type UserStore interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id string, u models.User) (models.User, error)
	Delete(ctx context.Context, id string) (models.User, error)
}

type CartStore interface {
	Create(ctx context.Context, c models.Cart) (models.Cart, error)
	GetByID(ctx context.Context, id string) (models.Cart, error)
	Update(ctx context.Context, id string, c models.Cart) (models.Cart, error)
	Delete(ctx context.Context, id string) (models.Cart, error)
}

// TicketStore n'expose ni mise à jour ni suppression : un ticket est immuable
// et conservé indéfiniment.
type TicketStore interface {
	Create(ctx context.Context, t models.Ticket) (models.Ticket, error)
	GetByCode(ctx context.Context, code string) (models.Ticket, error)
}

type ChatStore interface {
	Create(ctx context.Context, userEmail string) (models.Chat, error)
	GetByUser(ctx context.Context, userEmail string) (models.Chat, error)
	AppendMessage(ctx context.Context, userEmail, message string) error
	Delete(ctx context.Context, id string) (models.Chat, error)
}

// Stores regroupe les cinq ports d'un backend.
type Stores struct {
	Products ProductStore
	Users    UserStore
	Carts    CartStore
	Tickets  TicketStore
	Chats    ChatStore
}
