package models

import "storefront_back_end/internal/errs"

// AdminOwner est la valeur sentinelle du champ owner pour les produits
// appartenant à la plateforme plutôt qu'à un vendeur premium.
const AdminOwner = "admin"

type Product struct {
	ID          string   `json:"id" bson:"_id,omitempty"`
	Title       string   `json:"title" bson:"title"`
	Description string   `json:"description" bson:"description"`
	Price       float64  `json:"price" bson:"price"`
	Code        string   `json:"code" bson:"code"`
	Stock       int      `json:"stock" bson:"stock"`
	Category    string   `json:"category" bson:"category"`
	Status      bool     `json:"status" bson:"status"`
	Thumbnails  []string `json:"thumbnails" bson:"thumbnails"`
	Owner       string   `json:"owner" bson:"owner"` // "admin" ou email du vendeur
}

// Validate vérifie les invariants de schéma d'un produit.
func (p *Product) Validate() error {
	if p.Title == "" || p.Description == "" || p.Category == "" {
		return errs.New(errs.InvalidData, "title, description et category sont requis")
	}
	if p.Code == "" {
		return errs.New(errs.InvalidData, "code produit requis")
	}
	if p.Price < 0.1 {
		return errs.New(errs.InvalidData, "le prix doit être au moins 0.1")
	}
	if p.Stock < 0 {
		return errs.New(errs.InvalidData, "le stock ne peut pas être négatif")
	}
	return nil
}

// ProductFilter restreint un listage de produits. Les champs vides sont ignorés.
type ProductFilter struct {
	Owner       string // correspondance exacte sur owner
	Query       string // recherche insensible à la casse sur title/description/category
	OnlyEnabled bool   // ne retourne que les produits visibles (status = true)
}
