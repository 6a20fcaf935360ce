package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_back_end/internal/errs"
	"storefront_back_end/internal/models"
)

func TestAddProductValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cases := []struct {
		name string
		p    models.Product
	}{
		{"sans titre", models.Product{Description: "d", Category: "c", Code: "X-1", Price: 1, Stock: 1}},
		{"sans code", models.Product{Title: "t", Description: "d", Category: "c", Price: 1, Stock: 1}},
		{"prix trop bas", models.Product{Title: "t", Description: "d", Category: "c", Code: "X-2", Price: 0.05, Stock: 1}},
		{"stock négatif", models.Product{Title: "t", Description: "d", Category: "c", Code: "X-3", Price: 1, Stock: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.catalog.AddProduct(ctx, tc.p, adminActor)
			assert.True(t, errs.Is(err, errs.InvalidData))
		})
	}
}

func TestAddProductSetsOwnerFromActor(t *testing.T) {
	env := newTestEnv(t)

	p := env.seedProduct(t, "Plante", "PL-1", 12.0, 5, adminActor)
	assert.Equal(t, models.AdminOwner, p.Owner)

	p = env.seedProduct(t, "Pot", "PT-1", 8.0, 5, premiumActor("seller@example.com"))
	assert.Equal(t, "seller@example.com", p.Owner)
}

func TestAddProductRejectsDuplicateCode(t *testing.T) {
	env := newTestEnv(t)

	env.seedProduct(t, "Bougie", "CD-1", 5.0, 5, adminActor)
	_, err := env.catalog.AddProduct(context.Background(), models.Product{
		Title:       "Autre bougie",
		Description: "d",
		Category:    "c",
		Code:        "CD-1",
		Price:       6.0,
		Stock:       2,
		Status:      true,
	}, adminActor)
	assert.True(t, errs.Is(err, errs.DuplicateCode))
}

func TestUpdateProductOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := env.seedProduct(t, "Cadre", "FR-1", 20.0, 5, premiumActor("seller@example.com"))

	p.Price = 25.0
	// Un autre vendeur ne peut pas modifier
	_, err := env.catalog.UpdateProduct(ctx, p.ID, p, "autre@example.com")
	assert.True(t, errs.Is(err, errs.Forbidden))

	// Le propriétaire peut ; la propriété ne change jamais par édition
	p.Owner = "pirate@example.com"
	updated, err := env.catalog.UpdateProduct(ctx, p.ID, p, "seller@example.com")
	require.NoError(t, err)
	assert.Equal(t, 25.0, updated.Price)
	assert.Equal(t, "seller@example.com", updated.Owner)

	// L'admin passe partout (requiredOwner vide)
	p.Price = 30.0
	updated, err = env.catalog.UpdateProduct(ctx, p.ID, p, "")
	require.NoError(t, err)
	assert.Equal(t, 30.0, updated.Price)
}

func TestDeleteProductOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := env.seedProduct(t, "Horloge", "CL-1", 35.0, 2, premiumActor("seller@example.com"))

	_, err := env.catalog.DeleteProduct(ctx, p.ID, "autre@example.com")
	assert.True(t, errs.Is(err, errs.Forbidden))

	deleted, err := env.catalog.DeleteProduct(ctx, p.ID, "seller@example.com")
	require.NoError(t, err)
	assert.Equal(t, p.ID, deleted.ID)

	_, err = env.catalog.GetProduct(ctx, p.ID)
	assert.True(t, errs.Is(err, errs.NotFound))
}

func TestListHidesDisabledProducts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	visible := env.seedProduct(t, "Visible", "VS-2", 10.0, 5, adminActor)
	hidden := env.seedProduct(t, "Caché", "HD-2", 10.0, 5, adminActor)
	_, err := env.catalog.SetEnabled(ctx, hidden.ID, false)
	require.NoError(t, err)

	result, err := env.catalog.List(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, result.Payload, 1)
	assert.Equal(t, visible.ID, result.Payload[0].ID)

	// ListByOwner voit aussi les produits désactivés (besoin des cascades)
	all, err := env.catalog.ListByOwner(ctx, models.AdminOwner)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListPagination(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		env.seedProduct(t, fmt.Sprintf("Produit %02d", i), fmt.Sprintf("PG-%02d", i), float64(i+1), 5, adminActor)
	}

	page1, err := env.catalog.List(ctx, ListOptions{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page1.Payload, 10)
	assert.Equal(t, 3, page1.TotalPages)
	assert.False(t, page1.HasPrevPage)
	assert.True(t, page1.HasNextPage)
	assert.Equal(t, 2, page1.NextPage)

	page3, err := env.catalog.List(ctx, ListOptions{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page3.Payload, 5)
	assert.True(t, page3.HasPrevPage)
	assert.False(t, page3.HasNextPage)
}

func TestListSortsByPrice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.seedProduct(t, "Cher", "SR-1", 100.0, 5, adminActor)
	env.seedProduct(t, "Abordable", "SR-2", 10.0, 5, adminActor)
	env.seedProduct(t, "Moyen", "SR-3", 50.0, 5, adminActor)

	asc, err := env.catalog.List(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, asc.Payload, 3)
	assert.Equal(t, "Abordable", asc.Payload[0].Title)
	assert.Equal(t, "Cher", asc.Payload[2].Title)

	desc, err := env.catalog.List(ctx, ListOptions{SortDesc: true})
	require.NoError(t, err)
	assert.Equal(t, "Cher", desc.Payload[0].Title)
}

func TestSetEnabledIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := env.seedProduct(t, "Tasse", "MG-1", 7.0, 5, adminActor)

	p1, err := env.catalog.SetEnabled(ctx, p.ID, false)
	require.NoError(t, err)
	assert.False(t, p1.Status)

	p2, err := env.catalog.SetEnabled(ctx, p.ID, false)
	require.NoError(t, err)
	assert.False(t, p2.Status)
}

func TestMockProductsAreValid(t *testing.T) {
	env := newTestEnv(t)

	products := env.catalog.MockProducts(20)
	require.Len(t, products, 20)
	for i := range products {
		assert.NoError(t, products[i].Validate())
		assert.True(t, products[i].Status)
	}
}
