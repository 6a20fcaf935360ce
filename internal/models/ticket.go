package models

import "time"

// TicketItem est un instantané d'une ligne achetée. Les éditions ultérieures
// du produit ne doivent pas altérer l'historique.
type TicketItem struct {
	ProductID string  `json:"productId" bson:"productId"`
	Title     string  `json:"title" bson:"title"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
}

// Ticket est le reçu d'un achat. Immuable une fois créé.
type Ticket struct {
	ID             string       `json:"id" bson:"_id,omitempty"`
	CartID         string       `json:"cartId" bson:"cartId"` // référence historique, peut survivre au panier
	PurchaserEmail string       `json:"purchaser" bson:"purchaser"`
	Code           string       `json:"code" bson:"code"`
	Items          []TicketItem `json:"items" bson:"items"`
	TotalAmount    float64      `json:"amount" bson:"amount"`
	IssuedAt       time.Time    `json:"purchase_datetime" bson:"purchase_datetime"`
}
