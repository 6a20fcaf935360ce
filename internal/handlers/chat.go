package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/services"
)

type ChatHandlers struct {
	chat     *services.ChatService
	accounts *services.AccountsService
}

func NewChatHandlers(chat *services.ChatService, accounts *services.AccountsService) *ChatHandlers {
	return &ChatHandlers{chat: chat, accounts: accounts}
}

// 🟢 GET /api/chat — fil de l'acteur, vide s'il n'a jamais écrit
func (h *ChatHandlers) History(c *gin.Context) {
	chat, err := h.chat.History(c.Request.Context(), actorFrom(c).Email)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, chat)
}

// 🟢 POST /api/chat — ajoute un message, le fil est créé au premier envoi
func (h *ChatHandlers) Post(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	actor := actorFrom(c)
	chat, err := h.chat.Append(c.Request.Context(), actor.Email, req.Message)
	if err != nil {
		fail(c, err)
		return
	}

	h.accounts.AttachChat(c.Request.Context(), actor.ID, chat.ID)
	c.JSON(http.StatusCreated, chat)
}
