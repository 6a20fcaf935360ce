package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"storefront_back_end/internal/config"
	"storefront_back_end/internal/errs"
	"storefront_back_end/internal/models"
)

// GenerateJWT émet le token de session d'un utilisateur (24h).
func GenerateJWT(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"cart_id": user.CartID,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWTSecret()))
}

// GeneratePasswordResetToken émet le token du lien de réinitialisation (1h).
func GeneratePasswordResetToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"scope": "password_reset",
		"exp":   time.Now().Add(1 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWTSecret()))
}

// ParsePasswordResetToken valide un token de réinitialisation et retourne
// l'email qu'il porte.
func ParsePasswordResetToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("méthode de signature inattendue: %v", token.Header["alg"])
		}
		return []byte(config.JWTSecret()), nil
	})
	if err != nil || !token.Valid {
		return "", errs.New(errs.AuthError, "lien invalide ou expiré")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["scope"] != "password_reset" {
		return "", errs.New(errs.AuthError, "lien invalide ou expiré")
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return "", errs.New(errs.AuthError, "lien invalide ou expiré")
	}
	return email, nil
}
