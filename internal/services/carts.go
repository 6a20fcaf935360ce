package services

import (
	"context"

	"storefront_back_end/internal/errs"
	"storefront_back_end/internal/models"
	"storefront_back_end/internal/storage"
)

// CartsService possède l'agrégat panier. Les mutations côté client passent
// par des deltas : le serveur recalcule toujours la nouvelle quantité depuis
// la quantité courante, un client ne peut pas fabriquer une liste arbitraire.
type CartsService struct {
	carts    storage.CartStore
	products storage.ProductStore
}

func NewCartsService(carts storage.CartStore, products storage.ProductStore) *CartsService {
	return &CartsService{carts: carts, products: products}
}

func (s *CartsService) CreateCart(ctx context.Context) (models.Cart, error) {
	return s.carts.Create(ctx, models.Cart{Items: map[string]int{}})
}

func (s *CartsService) GetCart(ctx context.Context, cartID string) (models.Cart, error) {
	return s.carts.GetByID(ctx, cartID)
}

// ReplaceContents remplace tout le contenu d'un panier. Chaque référence doit
// résoudre vers un produit visible, sinon l'opération échoue entièrement :
// pas de remplacement partiel.
func (s *CartsService) ReplaceContents(ctx context.Context, cartID string, lines []models.CartLine) (models.Cart, error) {
	cart, err := s.carts.GetByID(ctx, cartID)
	if err != nil {
		return models.Cart{}, err
	}

	items := map[string]int{}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return models.Cart{}, errs.Newf(errs.InvalidData, "quantité invalide pour le produit %s", line.ProductID)
		}
		p, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil || !p.Status {
			return models.Cart{}, errs.Newf(errs.InvalidData, "référence produit invalide: %s", line.ProductID)
		}
		items[line.ProductID] += line.Quantity
	}

	cart.Items = items
	return s.carts.Update(ctx, cartID, cart)
}

// AdjustQuantity applique un delta (positif ou négatif) à la quantité d'un
// produit. Un résultat <= 0 retire l'item. Le résultat est écrêté au stock
// courant : choix de politique documenté pour éviter un panier inachetable,
// le contrôle faisant foi reste celui de l'achat.
func (s *CartsService) AdjustQuantity(ctx context.Context, cartID, productID string, delta int, actorEmail string) (models.Cart, error) {
	cart, err := s.carts.GetByID(ctx, cartID)
	if err != nil {
		return models.Cart{}, err
	}
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return models.Cart{}, err
	}
	if delta > 0 && !p.Status {
		return models.Cart{}, errs.Newf(errs.InvalidData, "le produit %s n'est pas disponible", productID)
	}
	if actorEmail != "" && p.Owner == actorEmail {
		return models.Cart{}, errs.New(errs.Forbidden, "vous ne pouvez pas ajouter votre propre produit au panier")
	}

	q := cart.Items[productID] + delta
	if q > p.Stock {
		q = p.Stock
	}
	if q <= 0 {
		delete(cart.Items, productID)
	} else {
		cart.Items[productID] = q
	}
	return s.carts.Update(ctx, cartID, cart)
}

// SetQuantity est le chemin admin en écriture directe : une quantité non
// positive retire l'item.
func (s *CartsService) SetQuantity(ctx context.Context, cartID, productID string, quantity int) (models.Cart, error) {
	cart, err := s.carts.GetByID(ctx, cartID)
	if err != nil {
		return models.Cart{}, err
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return models.Cart{}, err
	}

	if quantity <= 0 {
		delete(cart.Items, productID)
	} else {
		cart.Items[productID] = quantity
	}
	return s.carts.Update(ctx, cartID, cart)
}

// RemoveProduct retire entièrement un item du panier.
func (s *CartsService) RemoveProduct(ctx context.Context, cartID, productID string) (models.Cart, error) {
	cart, err := s.carts.GetByID(ctx, cartID)
	if err != nil {
		return models.Cart{}, err
	}
	delete(cart.Items, productID)
	return s.carts.Update(ctx, cartID, cart)
}

// EmptyCart vide les items, l'entité panier est conservée.
func (s *CartsService) EmptyCart(ctx context.Context, cartID string) (models.Cart, error) {
	cart, err := s.carts.GetByID(ctx, cartID)
	if err != nil {
		return models.Cart{}, err
	}
	cart.Items = map[string]int{}
	return s.carts.Update(ctx, cartID, cart)
}

// RemoveCart supprime l'entité panier. Réservé à la cascade de suppression
// de compte.
func (s *CartsService) RemoveCart(ctx context.Context, cartID string) error {
	_, err := s.carts.Delete(ctx, cartID)
	return err
}
