// Package authz porte la politique d'autorisation : une fonction pure de
// (rôle de l'acteur, classe d'opération) vers autoriser/refuser. Les contrôles
// de propriété (un premium n'édite que ses produits) restent dans les
// services : la table gouverne l'accès par classe, la propriété gouverne
// l'accès par instance.
package authz

import "storefront_back_end/internal/models"

// Actor est l'identité authentifiée qui exécute une opération. Un Actor vide
// (rôle "") représente un visiteur anonyme.
type Actor struct {
	ID    string
	Email string
	Role  string
}

func (a Actor) IsAdmin() bool     { return a.Role == models.RoleAdmin }
func (a Actor) IsAnonymous() bool { return a.Role == "" }

type Operation int

const (
	// OpBrowseCatalog couvre listage, détail et recherche du catalogue.
	OpBrowseCatalog Operation = iota
	// OpManageOwnProducts couvre ajout/édition/suppression de ses produits.
	OpManageOwnProducts
	// OpCartPurchase couvre les mutations de panier et l'achat.
	OpCartPurchase
	// OpManageAny couvre la gestion de n'importe quel panier/utilisateur et
	// les changements de rôle.
	OpManageAny
)

var policy = map[Operation]map[string]bool{
	OpBrowseCatalog: {
		models.RoleAdmin:   true,
		models.RolePremium: true,
		models.RoleUser:    true,
		"":                 true, // anonyme
	},
	OpManageOwnProducts: {
		models.RoleAdmin:   true,
		models.RolePremium: true,
	},
	OpCartPurchase: {
		models.RoleAdmin:   true,
		models.RolePremium: true,
		models.RoleUser:    true,
	},
	OpManageAny: {
		models.RoleAdmin: true,
	},
}

// Allowed répond autoriser/refuser pour un rôle et une classe d'opération.
func Allowed(role string, op Operation) bool {
	return policy[op][role]
}
