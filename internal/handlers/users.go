package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/models"
	"storefront_back_end/internal/services"
	"storefront_back_end/internal/utils"
)

type UserHandlers struct {
	accounts *services.AccountsService
}

func NewUserHandlers(accounts *services.AccountsService) *UserHandlers {
	return &UserHandlers{accounts: accounts}
}

// 🟢 GET /api/users/current — projection publique de l'acteur
func (h *UserHandlers) Current(c *gin.Context) {
	actor := actorFrom(c)
	if actor.ID == models.AdminID {
		c.JSON(http.StatusOK, models.PublicUser{ID: models.AdminID, Email: actor.Email, Role: models.RoleAdmin})
		return
	}
	u, err := h.accounts.GetByID(c.Request.Context(), actor.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u.Public())
}

// 🟢 GET /api/users — projections publiques de tous les comptes (admin)
func (h *UserHandlers) GetAll(c *gin.Context) {
	users, err := h.accounts.GetAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	public := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}
	c.JSON(http.StatusOK, public)
}

// 🟢 GET /api/users/:uid
func (h *UserHandlers) Get(c *gin.Context) {
	u, err := h.accounts.GetByID(c.Request.Context(), c.Param("uid"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u.Public())
}

// 🟡 PUT /api/users/premium/:uid — bascule user <-> premium (admin)
func (h *UserHandlers) ToggleRole(c *gin.Context) {
	u, err := h.accounts.ToggleRole(c.Request.Context(), c.Param("uid"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rôle mis à jour", "user": u.Public()})
}

// 🟡 PUT /api/users/:uid/role — transition explicite vers un rôle cible
func (h *UserHandlers) ChangeRole(c *gin.Context) {
	var body struct {
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	u, err := h.accounts.ChangeRole(c.Request.Context(), c.Param("uid"), body.Role)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rôle mis à jour", "user": u.Public()})
}

// 🔴 DELETE /api/users/:uid — suppression avec cascade (admin)
func (h *UserHandlers) Delete(c *gin.Context) {
	u, err := h.accounts.DeleteUser(c.Request.Context(), c.Param("uid"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Compte supprimé", "user": u.Public()})
}

// 🔴 DELETE /api/users — purge des comptes inactifs (admin), chaque compte
// supprimé est prévenu par email
func (h *UserHandlers) DeleteInactive(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "1"))
	deleted, err := h.accounts.SweepInactive(c.Request.Context(), days)
	if err != nil {
		fail(c, err)
		return
	}

	for _, u := range deleted {
		if err := utils.SendEmail(u.Email, "Compte supprimé pour inactivité", utils.AccountDeletedHTML(u)); err != nil {
			log.Printf("⚠️ Email de suppression non envoyé à %s: %v", u.Email, err)
		}
	}

	public := make([]models.PublicUser, 0, len(deleted))
	for _, u := range deleted {
		public = append(public, u.Public())
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comptes inactifs supprimés", "deleted": public})
}
