package services

import (
	"bytes"
	"context"
	"log"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_back_end/internal/errs"
	"storefront_back_end/internal/models"
	"storefront_back_end/internal/storage"
)

func TestPurchaseHappyPath(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := env.seedProduct(t, "Clavier", "KB-1", 49.9, 5, adminActor)
	cart := env.seedCart(t)

	_, err := env.carts.AdjustQuantity(ctx, cart.ID, p.ID, 2, "buyer@example.com")
	require.NoError(t, err)

	ticket, err := env.tickets.Purchase(ctx, cart.ID, "buyer@example.com")
	require.NoError(t, err)

	assert.NotEmpty(t, ticket.Code)
	assert.Equal(t, "buyer@example.com", ticket.PurchaserEmail)
	assert.InDelta(t, 99.8, ticket.TotalAmount, 0.001)
	require.Len(t, ticket.Items, 1)
	assert.Equal(t, p.ID, ticket.Items[0].ProductID)
	assert.Equal(t, 2, ticket.Items[0].Quantity)

	// Le stock est décrémenté et le panier vidé
	after, err := env.catalog.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, after.Stock)

	emptied, err := env.carts.GetCart(ctx, cart.ID)
	require.NoError(t, err)
	assert.Empty(t, emptied.Items)
}

func TestPurchaseEmptyCart(t *testing.T) {
	env := newTestEnv(t)
	cart := env.seedCart(t)

	_, err := env.tickets.Purchase(context.Background(), cart.ID, "buyer@example.com")
	assert.True(t, errs.Is(err, errs.EmptyCart))
}

func TestPurchaseInsufficientStockIsAllOrNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ok := env.seedProduct(t, "Souris", "MS-1", 19.9, 10, adminActor)
	scarce := env.seedProduct(t, "Écran", "SC-1", 199.0, 1, adminActor)

	cart := env.seedCart(t)
	_, err := env.carts.ReplaceContents(ctx, cart.ID, []models.CartLine{
		{ProductID: ok.ID, Quantity: 2},
		{ProductID: scarce.ID, Quantity: 1},
	})
	require.NoError(t, err)

	// Quelqu'un d'autre rafle le dernier écran
	require.NoError(t, env.store.Products.DecrementStock(ctx, scarce.ID, 1))

	_, err = env.tickets.Purchase(ctx, cart.ID, "buyer@example.com")
	assert.True(t, errs.Is(err, errs.InsufficientStock))

	// Aucun stock n'a été touché, le panier est intact
	p, err := env.catalog.GetProduct(ctx, ok.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Stock)

	cartAfter, err := env.carts.GetCart(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, cartAfter.Items[ok.ID])
}

func TestPurchaseDisabledProduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := env.seedProduct(t, "Lampe", "LP-1", 29.9, 5, adminActor)
	cart := env.seedCart(t)
	_, err := env.carts.AdjustQuantity(ctx, cart.ID, p.ID, 1, "buyer@example.com")
	require.NoError(t, err)

	_, err = env.catalog.SetEnabled(ctx, p.ID, false)
	require.NoError(t, err)

	_, err = env.tickets.Purchase(ctx, cart.ID, "buyer@example.com")
	assert.True(t, errs.Is(err, errs.InsufficientStock))
}

func TestConcurrentPurchasesNeverOversell(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	const stock = 5
	const buyers = 12
	p := env.seedProduct(t, "Console", "CN-1", 299.0, stock, adminActor)

	cartIDs := make([]string, buyers)
	for i := range cartIDs {
		cart := env.seedCart(t)
		_, err := env.carts.AdjustQuantity(ctx, cart.ID, p.ID, 1, "buyer@example.com")
		require.NoError(t, err)
		cartIDs[i] = cart.ID
	}

	var wg sync.WaitGroup
	results := make(chan error, buyers)
	for _, cartID := range cartIDs {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := env.tickets.Purchase(ctx, id, "buyer@example.com")
			results <- err
		}(cartID)
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.True(t, errs.Is(err, errs.InsufficientStock), "erreur inattendue: %v", err)
		}
	}

	assert.Equal(t, stock, succeeded)
	after, err := env.catalog.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, after.Stock)
}

// failingProductStore laisse passer le premier décrément puis tombe en
// panne, comme un backend qui lâche en plein milieu d'un achat.
type failingProductStore struct {
	storage.ProductStore
	calls int
}

func (f *failingProductStore) DecrementStock(ctx context.Context, id string, qty int) error {
	f.calls++
	if f.calls > 1 {
		return errs.New(errs.Unknown, "panne simulée du stockage")
	}
	return f.ProductStore.DecrementStock(ctx, id, qty)
}

func TestPurchaseLogsPartialDecrementOnStorageFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.seedProduct(t, "Bureau", "DK-1", 150.0, 4, adminActor)
	env.seedProduct(t, "Fauteuil", "FT-1", 90.0, 4, adminActor)

	flaky := &failingProductStore{ProductStore: env.store.Products}
	tickets := NewTicketsService(env.store.Tickets, env.store.Carts, flaky)

	cart := env.seedCart(t)
	products, err := env.catalog.ListByOwner(ctx, models.AdminOwner)
	require.NoError(t, err)
	lines := make([]models.CartLine, 0, len(products))
	for _, p := range products {
		lines = append(lines, models.CartLine{ProductID: p.ID, Quantity: 1})
	}
	_, err = env.carts.ReplaceContents(ctx, cart.ID, lines)
	require.NoError(t, err)

	var logs bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&logs)
	t.Cleanup(func() { log.SetOutput(orig) })

	_, err = tickets.Purchase(ctx, cart.ID, "buyer@example.com")
	require.Error(t, err)

	// Le décrément déjà appliqué est journalisé
	assert.Contains(t, logs.String(), "stock déjà décrémenté")

	// Exactement un des deux produits a perdu une unité
	remaining := 0
	for _, p := range products {
		after, err := env.catalog.GetProduct(ctx, p.ID)
		require.NoError(t, err)
		remaining += after.Stock
	}
	assert.Equal(t, 7, remaining)
}

func TestTicketSnapshotIsImmutable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := env.seedProduct(t, "Casque", "HD-1", 89.0, 3, adminActor)
	cart := env.seedCart(t)
	_, err := env.carts.AdjustQuantity(ctx, cart.ID, p.ID, 1, "buyer@example.com")
	require.NoError(t, err)

	ticket, err := env.tickets.Purchase(ctx, cart.ID, "buyer@example.com")
	require.NoError(t, err)

	// Le prix change après l'achat, le ticket garde le prix d'origine
	p.Price = 120.0
	_, err = env.catalog.UpdateProduct(ctx, p.ID, p, "")
	require.NoError(t, err)

	stored, err := env.tickets.GetByCode(ctx, ticket.Code)
	require.NoError(t, err)
	assert.Equal(t, 89.0, stored.Items[0].Price)
	assert.Equal(t, "Casque", stored.Items[0].Title)
}

func TestValidateTicket(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := env.seedProduct(t, "Tapis", "TP-1", 15.0, 2, adminActor)
	cart := env.seedCart(t)
	_, err := env.carts.AdjustQuantity(ctx, cart.ID, p.ID, 1, "buyer@example.com")
	require.NoError(t, err)

	ticket, err := env.tickets.Purchase(ctx, cart.ID, "buyer@example.com")
	require.NoError(t, err)

	assert.True(t, env.tickets.ValidateTicket(ctx, ticket.Code, "buyer@example.com"))
	assert.False(t, env.tickets.ValidateTicket(ctx, ticket.Code, "other@example.com"))
	// Comparaison exacte, pas d'insensibilité à la casse
	assert.False(t, env.tickets.ValidateTicket(ctx, ticket.Code, "Buyer@example.com"))
	assert.False(t, env.tickets.ValidateTicket(ctx, "code-inconnu", "buyer@example.com"))
}
