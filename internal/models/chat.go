package models

// Chat est le journal de messages d'un utilisateur, identifié par son email.
// Simple append log : la livraison temps réel est hors périmètre.
type Chat struct {
	ID       string   `json:"id" bson:"_id,omitempty"`
	User     string   `json:"user" bson:"user"` // email
	Messages []string `json:"messages" bson:"messages"`
}
