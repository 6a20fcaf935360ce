package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/authz"
)

// RequireOperation vérifie que le rôle du context (vide pour un anonyme)
// autorise l'opération demandée.
func RequireOperation(op authz.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("role")
		roleStr, _ := role.(string)
		if !authz.Allowed(roleStr, op) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Vous n'avez pas les droits pour cette opération"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin vérifie que l'utilisateur a le rôle "admin"
func RequireAdmin(c *gin.Context) {
	role, exists := c.Get("role")
	if !exists || role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux administrateurs"})
		c.Abort()
		return
	}
	c.Next()
}
