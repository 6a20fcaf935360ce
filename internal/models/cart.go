package models

// Cart est l'agrégat panier. Items associe un id de produit à une quantité
// strictement positive : un item à quantité nulle est retiré, jamais stocké.
type Cart struct {
	ID    string         `json:"id" bson:"_id,omitempty"`
	Items map[string]int `json:"items" bson:"items"`
}

// CartLine est une entrée (produit, quantité) telle que reçue par le
// remplacement complet du contenu d'un panier.
type CartLine struct {
	ProductID string `json:"productId" bson:"productId"`
	Quantity  int    `json:"quantity" bson:"quantity"`
}
