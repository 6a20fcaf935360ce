package file

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"storefront_back_end/internal/errs"
	"storefront_back_end/internal/models"
)

type CartStore struct {
	path string
	mu   sync.Mutex
}

func (s *CartStore) Create(_ context.Context, c models.Cart) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	carts, err := readAll[models.Cart](s.path)
	if err != nil {
		return models.Cart{}, errs.Wrap(errs.Unknown, "chargement des paniers", err)
	}
	c.ID = uuid.NewString()
	if c.Items == nil {
		c.Items = map[string]int{}
	}
	carts = append(carts, c)
	if err := writeAll(s.path, carts); err != nil {
		return models.Cart{}, errs.Wrap(errs.Unknown, "sauvegarde des paniers", err)
	}
	return c, nil
}

func (s *CartStore) GetByID(_ context.Context, id string) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	carts, err := readAll[models.Cart](s.path)
	if err != nil {
		return models.Cart{}, errs.Wrap(errs.Unknown, "chargement des paniers", err)
	}
	for _, c := range carts {
		if c.ID == id {
			if c.Items == nil {
				c.Items = map[string]int{}
			}
			return c, nil
		}
	}
	return models.Cart{}, errs.Newf(errs.NotFound, "panier introuvable, id %s", id)
}

func (s *CartStore) Update(_ context.Context, id string, c models.Cart) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	carts, err := readAll[models.Cart](s.path)
	if err != nil {
		return models.Cart{}, errs.Wrap(errs.Unknown, "chargement des paniers", err)
	}
	for i := range carts {
		if carts[i].ID != id {
			continue
		}
		c.ID = id
		if c.Items == nil {
			c.Items = map[string]int{}
		}
		carts[i] = c
		if err := writeAll(s.path, carts); err != nil {
			return models.Cart{}, errs.Wrap(errs.Unknown, "sauvegarde des paniers", err)
		}
		return c, nil
	}
	return models.Cart{}, errs.Newf(errs.NotFound, "panier introuvable, id %s", id)
}

func (s *CartStore) Delete(_ context.Context, id string) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	carts, err := readAll[models.Cart](s.path)
	if err != nil {
		return models.Cart{}, errs.Wrap(errs.Unknown, "chargement des paniers", err)
	}
	for i, c := range carts {
		if c.ID != id {
			continue
		}
		carts = append(carts[:i], carts[i+1:]...)
		if err := writeAll(s.path, carts); err != nil {
			return models.Cart{}, errs.Wrap(errs.Unknown, "sauvegarde des paniers", err)
		}
		return c, nil
	}
	return models.Cart{}, errs.Newf(errs.NotFound, "panier introuvable, id %s", id)
}
