package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/authz"
	"storefront_back_end/internal/errs"
)

// fail traduit la taxonomie d'erreurs interne en statut HTTP + message JSON.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch errs.KindOf(err) {
	case errs.InvalidData, errs.EmptyCart:
		status = http.StatusBadRequest
	case errs.NotFound:
		status = http.StatusNotFound
	case errs.DuplicateCode, errs.AlreadyExists, errs.InsufficientStock:
		status = http.StatusConflict
	case errs.Forbidden:
		status = http.StatusForbidden
	case errs.AuthError, errs.InvalidCredentials:
		status = http.StatusUnauthorized
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// actorFrom reconstruit l'acteur depuis les claims posés par le middleware.
// Tous les champs sont vides pour un anonyme.
func actorFrom(c *gin.Context) authz.Actor {
	email, _ := c.Get("email")
	role, _ := c.Get("role")
	emailStr, _ := email.(string)
	roleStr, _ := role.(string)
	return authz.Actor{
		ID:    c.GetString("user_id"),
		Email: emailStr,
		Role:  roleStr,
	}
}
