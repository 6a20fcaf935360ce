package file

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"storefront_back_end/internal/errs"
	"storefront_back_end/internal/models"
)

type ProductStore struct {
	path string
	mu   sync.Mutex
}

func (s *ProductStore) Create(_ context.Context, p models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := readAll[models.Product](s.path)
	if err != nil {
		return models.Product{}, errs.Wrap(errs.Unknown, "chargement des produits", err)
	}
	for _, existing := range products {
		if existing.Code == p.Code {
			return models.Product{}, errs.Newf(errs.DuplicateCode, "un produit avec le code %s existe déjà", p.Code)
		}
	}
	p.ID = uuid.NewString()
	products = append(products, p)
	if err := writeAll(s.path, products); err != nil {
		return models.Product{}, errs.Wrap(errs.Unknown, "sauvegarde des produits", err)
	}
	return p, nil
}

func (s *ProductStore) GetByID(_ context.Context, id string) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := readAll[models.Product](s.path)
	if err != nil {
		return models.Product{}, errs.Wrap(errs.Unknown, "chargement des produits", err)
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, errs.Newf(errs.NotFound, "produit introuvable, id %s", id)
}

func (s *ProductStore) GetByCode(_ context.Context, code string) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := readAll[models.Product](s.path)
	if err != nil {
		return models.Product{}, errs.Wrap(errs.Unknown, "chargement des produits", err)
	}
	for _, p := range products {
		if p.Code == code {
			return p, nil
		}
	}
	return models.Product{}, errs.Newf(errs.NotFound, "produit introuvable, code %s", code)
}

func (s *ProductStore) GetByFilter(_ context.Context, f models.ProductFilter) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := readAll[models.Product](s.path)
	if err != nil {
		return nil, errs.Wrap(errs.Unknown, "chargement des produits", err)
	}
	var out []models.Product
	for _, p := range products {
		if matches(p, f) {
			out = append(out, p)
		}
	}
	return out, nil
}

func matches(p models.Product, f models.ProductFilter) bool {
	if f.Owner != "" && p.Owner != f.Owner {
		return false
	}
	if f.OnlyEnabled && !p.Status {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(p.Title), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) &&
			!strings.Contains(strings.ToLower(p.Category), q) {
			return false
		}
	}
	return true
}

func (s *ProductStore) Update(_ context.Context, id string, p models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := readAll[models.Product](s.path)
	if err != nil {
		return models.Product{}, errs.Wrap(errs.Unknown, "chargement des produits", err)
	}
	for i, existing := range products {
		if existing.ID != id {
			continue
		}
		p.ID = id
		products[i] = p
		if err := writeAll(s.path, products); err != nil {
			return models.Product{}, errs.Wrap(errs.Unknown, "sauvegarde des produits", err)
		}
		return p, nil
	}
	return models.Product{}, errs.Newf(errs.NotFound, "produit introuvable, id %s", id)
}

func (s *ProductStore) Delete(_ context.Context, id string) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := readAll[models.Product](s.path)
	if err != nil {
		return models.Product{}, errs.Wrap(errs.Unknown, "chargement des produits", err)
	}
	for i, p := range products {
		if p.ID != id {
			continue
		}
		products = append(products[:i], products[i+1:]...)
		if err := writeAll(s.path, products); err != nil {
			return models.Product{}, errs.Wrap(errs.Unknown, "sauvegarde des produits", err)
		}
		return p, nil
	}
	return models.Product{}, errs.Newf(errs.NotFound, "produit introuvable, id %s", id)
}

// DecrementStock vérifie le plancher et décrémente sous le même verrou : deux
// achats concurrents du même produit ne peuvent pas passer le contrôle tous
// les deux.
func (s *ProductStore) DecrementStock(_ context.Context, id string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := readAll[models.Product](s.path)
	if err != nil {
		return errs.Wrap(errs.Unknown, "chargement des produits", err)
	}
	for i, p := range products {
		if p.ID != id {
			continue
		}
		if !p.Status || p.Stock < qty {
			return errs.Newf(errs.InsufficientStock, "stock insuffisant pour le produit %s", id)
		}
		products[i].Stock -= qty
		if err := writeAll(s.path, products); err != nil {
			return errs.Wrap(errs.Unknown, "sauvegarde des produits", err)
		}
		return nil
	}
	return errs.Newf(errs.NotFound, "produit introuvable, id %s", id)
}
