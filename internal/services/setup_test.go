package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"storefront_back_end/internal/authz"
	"storefront_back_end/internal/cache"
	"storefront_back_end/internal/models"
	"storefront_back_end/internal/search"
	"storefront_back_end/internal/storage/file"
)

// testEnv câble tous les services sur le backend fichiers dans un répertoire
// temporaire. Redis et Elasticsearch ne sont pas configurés : les services
// doivent fonctionner sans.
type testEnv struct {
	catalog  *CatalogService
	carts    *CartsService
	tickets  *TicketsService
	chat     *ChatService
	accounts *AccountsService
	store    *file.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := file.Open(t.TempDir())
	require.NoError(t, err)

	catalog := NewCatalogService(store.Products, search.New(nil), cache.New(nil))
	carts := NewCartsService(store.Carts, store.Products)
	tickets := NewTicketsService(store.Tickets, store.Carts, store.Products)
	chat := NewChatService(store.Chats)
	accounts := NewAccountsService(store.Users, carts, catalog, chat, "admin@storefront.local", "admin-pass")

	return &testEnv{
		catalog:  catalog,
		carts:    carts,
		tickets:  tickets,
		chat:     chat,
		accounts: accounts,
		store:    store,
	}
}

var adminActor = authz.Actor{ID: models.AdminID, Email: "admin@storefront.local", Role: models.RoleAdmin}

func premiumActor(email string) authz.Actor {
	return authz.Actor{ID: "u-" + email, Email: email, Role: models.RolePremium}
}

func (e *testEnv) seedProduct(t *testing.T, title, code string, price float64, stock int, actor authz.Actor) models.Product {
	t.Helper()
	p, err := e.catalog.AddProduct(context.Background(), models.Product{
		Title:       title,
		Description: "description de " + title,
		Category:    "Test",
		Code:        code,
		Price:       price,
		Stock:       stock,
		Status:      true,
	}, actor)
	require.NoError(t, err)
	return p
}

func (e *testEnv) seedCart(t *testing.T) models.Cart {
	t.Helper()
	cart, err := e.carts.CreateCart(context.Background())
	require.NoError(t, err)
	return cart
}
