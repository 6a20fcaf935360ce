package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/markbates/goth/gothic"

	"storefront_back_end/internal/config"
	"storefront_back_end/internal/models"
	"storefront_back_end/internal/services"
	"storefront_back_end/internal/utils"
)

type AuthHandlers struct {
	accounts *services.AccountsService
}

func NewAuthHandlers(accounts *services.AccountsService) *AuthHandlers {
	return &AuthHandlers{accounts: accounts}
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Age       int    `json:"age"`
	Password  string `json:"password"`
}

// 🟢 POST /api/auth/register
func (h *AuthHandlers) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	u, err := h.accounts.Register(c.Request.Context(), models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Age:       req.Age,
	}, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Compte créé", "user": u.Public()})
}

// issueSession génère le JWT, le pose en cookie et le retourne aussi dans le
// corps pour les clients non navigateur.
func (h *AuthHandlers) issueSession(c *gin.Context, u models.User) {
	token, err := utils.GenerateJWT(u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Génération du token impossible"})
		return
	}

	h.accounts.RecordLogin(c.Request.Context(), u.ID)
	c.SetCookie("jwt", token, 24*3600, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": u.Public()})
}

// 🟢 POST /api/auth/login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	u, err := h.accounts.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	h.issueSession(c, u)
}

// 🟢 POST /api/auth/logout — horodate la déconnexion puis invalide le cookie
func (h *AuthHandlers) Logout(c *gin.Context) {
	h.accounts.RecordLogin(c.Request.Context(), c.GetString("user_id"))
	c.SetCookie("jwt", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Déconnecté"})
}

// 🟢 GET /api/auth/:provider — démarre le flux OAuth (google, github)
func (h *AuthHandlers) BeginAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	c.Request = gothic.GetContextWithProvider(c.Request, provider)
	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// 🟢 GET /api/auth/:provider/callback — fin du flux OAuth, création de
// compte au premier passage
func (h *AuthHandlers) CallbackAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	c.Request = gothic.GetContextWithProvider(c.Request, provider)
	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.accounts.LoginOrCreate(c.Request.Context(), gothUser.FirstName, gothUser.LastName, gothUser.Email)
	if err != nil {
		fail(c, err)
		return
	}
	h.issueSession(c, u)
}

// 🟢 POST /api/auth/password/forgot — envoie le lien de réinitialisation
func (h *AuthHandlers) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	// Réponse identique que le compte existe ou non
	if _, err := h.accounts.GetByEmail(c.Request.Context(), req.Email); err == nil {
		token, err := utils.GeneratePasswordResetToken(req.Email)
		if err == nil {
			link := fmt.Sprintf("%s/api/auth/password/reset?token=%s", config.BaseURL(), token)
			if err := utils.SendEmail(req.Email, "Réinitialisation du mot de passe", utils.PasswordResetHTML(link)); err != nil {
				log.Printf("⚠️ Email de réinitialisation non envoyé à %s: %v", req.Email, err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Si ce compte existe, un email a été envoyé"})
}

// 🟢 POST /api/auth/password/reset
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	email, err := utils.ParsePasswordResetToken(req.Token)
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.accounts.SetPasswordByEmail(c.Request.Context(), email, req.Password); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Mot de passe mis à jour"})
}
