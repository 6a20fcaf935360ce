package services

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront_back_end/internal/errs"
	"storefront_back_end/internal/models"
	"storefront_back_end/internal/storage"
)

// TicketsService orchestre l'achat : validation du panier, décrément du
// stock, émission du ticket. Le verrouillage par produit (ordre trié) plus
// le décrément conditionnel du stockage garantissent qu'on ne vend jamais
// au-delà du stock, même sous achats concurrents.
type TicketsService struct {
	tickets  storage.TicketStore
	carts    storage.CartStore
	products storage.ProductStore
	locks    *keyedMutex
}

func NewTicketsService(tickets storage.TicketStore, carts storage.CartStore, products storage.ProductStore) *TicketsService {
	return &TicketsService{
		tickets:  tickets,
		carts:    carts,
		products: products,
		locks:    newKeyedMutex(),
	}
}

// Purchase achète tout le contenu du panier, en tout-ou-rien : si un seul
// item est invalide (produit disparu, désactivé, stock insuffisant), aucun
// stock n'est décrémenté et aucun ticket n'est émis.
func (s *TicketsService) Purchase(ctx context.Context, cartID, purchaserEmail string) (models.Ticket, error) {
	cart, err := s.carts.GetByID(ctx, cartID)
	if err != nil {
		return models.Ticket{}, err
	}
	if len(cart.Items) == 0 {
		return models.Ticket{}, errs.New(errs.EmptyCart, "le panier est vide")
	}

	ids := make([]string, 0, len(cart.Items))
	for id := range cart.Items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	unlock := s.locks.LockAll(ids)
	defer unlock()

	// Phase de validation : tout doit passer avant le moindre décrément.
	snapshot := make([]models.TicketItem, 0, len(ids))
	var total float64
	for _, id := range ids {
		qty := cart.Items[id]
		p, err := s.products.GetByID(ctx, id)
		if err != nil {
			return models.Ticket{}, errs.Newf(errs.InsufficientStock, "produit %s introuvable", id)
		}
		if !p.Status {
			return models.Ticket{}, errs.Newf(errs.InsufficientStock, "le produit %s n'est plus disponible", p.Title)
		}
		if p.Stock < qty {
			return models.Ticket{}, errs.Newf(errs.InsufficientStock, "stock insuffisant pour %s (demandé %d, disponible %d)", p.Title, qty, p.Stock)
		}
		snapshot = append(snapshot, models.TicketItem{
			ProductID: p.ID,
			Title:     p.Title,
			Price:     p.Price,
			Quantity:  qty,
		})
		total += p.Price * float64(qty)
	}

	// Une édition admin ne prend pas les verrous d'achat : un décrément peut
	// encore échouer ici. Les décréments déjà appliqués restent acquis et
	// sont journalisés pour un rattrapage manuel.
	settled := make([]string, 0, len(ids))
	for _, id := range ids {
		if err := s.products.DecrementStock(ctx, id, cart.Items[id]); err != nil {
			if len(settled) > 0 {
				log.Printf("⚠️ Achat du panier %s interrompu sur le produit %s, stock déjà décrémenté pour %s: %v", cartID, id, strings.Join(settled, ", "), err)
			}
			return models.Ticket{}, err
		}
		settled = append(settled, id)
	}

	ticket := models.Ticket{
		CartID:         cartID,
		PurchaserEmail: purchaserEmail,
		Code:           uuid.NewString(),
		Items:          snapshot,
		TotalAmount:    total,
		IssuedAt:       time.Now(),
	}
	created, err := s.tickets.Create(ctx, ticket)
	if err != nil {
		return models.Ticket{}, err
	}

	cart.Items = map[string]int{}
	if _, err := s.carts.Update(ctx, cartID, cart); err != nil {
		log.Printf("⚠️ Ticket %s émis mais panier %s non vidé: %v", created.Code, cartID, err)
	}

	return created, nil
}

// GetByCode retourne un ticket par son code d'achat.
func (s *TicketsService) GetByCode(ctx context.Context, code string) (models.Ticket, error) {
	return s.tickets.GetByCode(ctx, code)
}

// ValidateTicket vérifie qu'un ticket existe et qu'il appartient bien à
// l'acheteur indiqué (comparaison exacte de l'email).
func (s *TicketsService) ValidateTicket(ctx context.Context, code, purchaserEmail string) bool {
	t, err := s.tickets.GetByCode(ctx, code)
	if err != nil {
		return false
	}
	return t.PurchaserEmail == purchaserEmail
}
