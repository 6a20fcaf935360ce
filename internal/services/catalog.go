package services

import (
	"context"

	"storefront_back_end/internal/authz"
	"storefront_back_end/internal/cache"
	"storefront_back_end/internal/errs"
	"storefront_back_end/internal/models"
	"storefront_back_end/internal/search"
	"storefront_back_end/internal/storage"
)

// CatalogService porte le CRUD produits : validité des champs, unicité du
// code, contrôles de propriété par instance, activation/désactivation pour
// les cascades de rôle.
type CatalogService struct {
	products storage.ProductStore
	index    *search.Index
	cache    *cache.Cache
}

func NewCatalogService(products storage.ProductStore, index *search.Index, c *cache.Cache) *CatalogService {
	return &CatalogService{products: products, index: index, cache: c}
}

// AddProduct crée un produit. L'owner est "admin" si l'acteur est l'admin,
// sinon l'email de l'acteur.
func (s *CatalogService) AddProduct(ctx context.Context, p models.Product, actor authz.Actor) (models.Product, error) {
	if actor.IsAdmin() {
		p.Owner = models.AdminOwner
	} else {
		p.Owner = actor.Email
	}
	if err := p.Validate(); err != nil {
		return models.Product{}, err
	}
	if err := s.checkCodeFree(ctx, p.Code); err != nil {
		return models.Product{}, err
	}

	created, err := s.products.Create(ctx, p)
	if err != nil {
		return models.Product{}, err
	}
	s.index.IndexProduct(ctx, created)
	s.cache.InvalidateProducts(ctx)
	return created, nil
}

// UpdateProduct remplace les champs éditables d'un produit. Avec un
// requiredOwnerEmail non vide (appelant non admin), le produit doit
// appartenir à cet email.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, p models.Product, requiredOwnerEmail string) (models.Product, error) {
	existing, err := s.products.GetByID(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	if requiredOwnerEmail != "" && existing.Owner != requiredOwnerEmail {
		return models.Product{}, errs.New(errs.Forbidden, "vous n'êtes pas autorisé à modifier ce produit")
	}

	p.Owner = existing.Owner // la propriété ne change jamais par édition
	if err := p.Validate(); err != nil {
		return models.Product{}, err
	}
	if p.Code != existing.Code {
		if err := s.checkCodeFree(ctx, p.Code); err != nil {
			return models.Product{}, err
		}
	}

	updated, err := s.products.Update(ctx, id, p)
	if err != nil {
		return models.Product{}, err
	}
	s.index.IndexProduct(ctx, updated)
	s.cache.InvalidateProducts(ctx)
	return updated, nil
}

// DeleteProduct supprime un produit, même contrôle de propriété que
// l'édition. Le produit supprimé est retourné pour que l'appelant décide de
// la notification.
func (s *CatalogService) DeleteProduct(ctx context.Context, id, requiredOwnerEmail string) (models.Product, error) {
	if requiredOwnerEmail != "" {
		existing, err := s.products.GetByID(ctx, id)
		if err != nil {
			return models.Product{}, err
		}
		if existing.Owner != requiredOwnerEmail {
			return models.Product{}, errs.New(errs.Forbidden, "vous n'êtes pas autorisé à supprimer ce produit")
		}
	}

	deleted, err := s.products.Delete(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	s.index.DeleteProduct(ctx, id)
	s.cache.InvalidateProducts(ctx)
	return deleted, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (models.Product, error) {
	return s.products.GetByID(ctx, id)
}

// ListByOwner retourne tous les produits, visibles ou non, d'un propriétaire.
// Utilisé par les cascades de transition de rôle et de suppression de compte.
func (s *CatalogService) ListByOwner(ctx context.Context, ownerEmail string) ([]models.Product, error) {
	return s.products.GetByFilter(ctx, models.ProductFilter{Owner: ownerEmail})
}

// SetEnabled bascule la visibilité d'un produit sans toucher aux autres
// champs. Réservé aux cascades, jamais exposé directement.
func (s *CatalogService) SetEnabled(ctx context.Context, id string, enabled bool) (models.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	if p.Status == enabled {
		return p, nil // étape de cascade idempotente
	}
	p.Status = enabled
	updated, err := s.products.Update(ctx, id, p)
	if err != nil {
		return models.Product{}, err
	}
	s.index.IndexProduct(ctx, updated)
	s.cache.InvalidateProducts(ctx)
	return updated, nil
}

func (s *CatalogService) checkCodeFree(ctx context.Context, code string) error {
	_, err := s.products.GetByCode(ctx, code)
	if err == nil {
		return errs.Newf(errs.DuplicateCode, "un produit avec le code %s existe déjà", code)
	}
	if !errs.Is(err, errs.NotFound) {
		return err
	}
	return nil
}
