package services

import (
	"context"
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"storefront_back_end/internal/models"
)

// ListOptions paramètre le listage public paginé du catalogue.
type ListOptions struct {
	Query    string
	Page     int
	Limit    int
	SortDesc bool // tri par prix, ascendant par défaut
}

type ListResult struct {
	Payload     []models.Product `json:"payload"`
	Page        int              `json:"page"`
	TotalPages  int              `json:"totalPages"`
	HasPrevPage bool             `json:"hasPrevPage"`
	HasNextPage bool             `json:"hasNextPage"`
	PrevPage    int              `json:"prevPage,omitempty"`
	NextPage    int              `json:"nextPage,omitempty"`
}

// List sert le listage public : seuls les produits visibles apparaissent.
func (s *CatalogService) List(ctx context.Context, opts ListOptions) (ListResult, error) {
	if opts.Limit <= 0 {
		opts.Limit = 10
	}
	if opts.Page <= 0 {
		opts.Page = 1
	}

	products, err := s.products.GetByFilter(ctx, models.ProductFilter{
		Query:       opts.Query,
		OnlyEnabled: true,
	})
	if err != nil {
		return ListResult{}, err
	}

	sort.Slice(products, func(i, j int) bool {
		if products[i].Price != products[j].Price {
			if opts.SortDesc {
				return products[i].Price > products[j].Price
			}
			return products[i].Price < products[j].Price
		}
		return products[i].ID < products[j].ID
	})

	totalPages := (len(products) + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}
	if opts.Page > totalPages {
		opts.Page = totalPages
	}

	start := (opts.Page - 1) * opts.Limit
	end := min(start+opts.Limit, len(products))

	res := ListResult{
		Payload:     products[start:end],
		Page:        opts.Page,
		TotalPages:  totalPages,
		HasPrevPage: opts.Page > 1,
		HasNextPage: opts.Page < totalPages,
	}
	if res.HasPrevPage {
		res.PrevPage = opts.Page - 1
	}
	if res.HasNextPage {
		res.NextPage = opts.Page + 1
	}
	return res, nil
}

// Search sert la recherche plein texte, via Elasticsearch quand il est
// configuré, sinon en repli sur le filtre du stockage.
func (s *CatalogService) Search(ctx context.Context, query string) ([]models.Product, error) {
	if s.index.Enabled() {
		return s.index.Search(ctx, query)
	}
	return s.products.GetByFilter(ctx, models.ProductFilter{Query: query, OnlyEnabled: true})
}

var mockCategories = []string{"Electronics", "Books", "Home", "Toys", "Garden"}
var mockAdjectives = []string{"Small", "Rustic", "Sleek", "Handmade", "Ergonomic"}
var mockNouns = []string{"Chair", "Lamp", "Keyboard", "Mug", "Backpack"}

// MockProducts génère des produits factices non persistés, outil de dev.
func (s *CatalogService) MockProducts(n int) []models.Product {
	products := make([]models.Product, 0, n)
	for i := 0; i < n; i++ {
		products = append(products, models.Product{
			Title:       mockAdjectives[rand.Intn(len(mockAdjectives))] + " " + mockNouns[rand.Intn(len(mockNouns))],
			Description: "Produit de démonstration",
			Price:       float64(rand.Intn(9990)+10) / 100,
			Code:        uuid.NewString()[:8],
			Stock:       rand.Intn(50) + 1,
			Category:    mockCategories[rand.Intn(len(mockCategories))],
			Status:      true,
			Thumbnails:  []string{},
		})
	}
	return products
}
