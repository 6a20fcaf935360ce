package models

import "time"

const (
	RoleAdmin   = "admin"
	RoleUser    = "user"
	RolePremium = "premium"
)

// AdminID est l'identifiant de l'identité admin synthétique. L'admin n'est
// jamais persisté : il est dérivé de la configuration au moment du login.
const AdminID = "0"

// DocumentRef référence un document téléversé (stocké dans MinIO).
type DocumentRef struct {
	Name      string `json:"name" bson:"name"`
	Reference string `json:"reference" bson:"reference"`
}

type User struct {
	ID             string        `json:"id" bson:"_id,omitempty"`
	FirstName      string        `json:"firstName" bson:"firstName"`
	LastName       string        `json:"lastName" bson:"lastName"`
	Email          string        `json:"email" bson:"email"`
	Age            int           `json:"age,omitempty" bson:"age,omitempty"`
	// Hash du mot de passe, vide pour les comptes fédérés. Le tag json sert
	// le backend fichiers ; les réponses HTTP passent par PublicUser qui ne
	// porte pas ce champ.
	Password       string        `json:"password,omitempty" bson:"password,omitempty"`
	Role           string        `json:"role" bson:"role"`
	CartID         string        `json:"cartId,omitempty" bson:"cartId,omitempty"` // vide si la création du panier a échoué
	ChatID         string        `json:"chatId,omitempty" bson:"chatId,omitempty"`
	Documents      []DocumentRef `json:"documents,omitempty" bson:"documents,omitempty"`
	LastConnection *time.Time    `json:"last_connection,omitempty" bson:"last_connection,omitempty"`
}

// PublicUser est la projection affichable d'un utilisateur : tout sauf le
// hash de mot de passe et les documents.
type PublicUser struct {
	ID             string     `json:"id"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Email          string     `json:"email"`
	Age            int        `json:"age,omitempty"`
	Role           string     `json:"role"`
	CartID         string     `json:"cartId,omitempty"`
	ChatID         string     `json:"chatId,omitempty"`
	LastConnection *time.Time `json:"last_connection,omitempty"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		Age:            u.Age,
		Role:           u.Role,
		CartID:         u.CartID,
		ChatID:         u.ChatID,
		LastConnection: u.LastConnection,
	}
}
