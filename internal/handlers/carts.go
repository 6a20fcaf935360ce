package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/models"
	"storefront_back_end/internal/services"
	"storefront_back_end/internal/utils"
)

type CartHandlers struct {
	carts   *services.CartsService
	tickets *services.TicketsService
}

func NewCartHandlers(carts *services.CartsService, tickets *services.TicketsService) *CartHandlers {
	return &CartHandlers{carts: carts, tickets: tickets}
}

// ownsCart vérifie que le panier ciblé est bien celui de l'acteur. L'admin
// passe partout.
func ownsCart(c *gin.Context, cartID string) bool {
	if actorFrom(c).IsAdmin() {
		return true
	}
	return c.GetString("cart_id") == cartID
}

// 🟢 POST /api/carts
func (h *CartHandlers) Create(c *gin.Context) {
	cart, err := h.carts.CreateCart(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, cart)
}

// 🟢 GET /api/carts/:cid
func (h *CartHandlers) Get(c *gin.Context) {
	cartID := c.Param("cid")
	if !ownsCart(c, cartID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Ce panier ne vous appartient pas"})
		return
	}
	cart, err := h.carts.GetCart(c.Request.Context(), cartID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// 🟡 PUT /api/carts/:cid — remplace tout le contenu
func (h *CartHandlers) Replace(c *gin.Context) {
	cartID := c.Param("cid")
	if !ownsCart(c, cartID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Ce panier ne vous appartient pas"})
		return
	}

	var lines []models.CartLine
	if err := c.ShouldBindJSON(&lines); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	cart, err := h.carts.ReplaceContents(c.Request.Context(), cartID, lines)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// 🟢 POST /api/carts/:cid/products/:pid/:option — option = increase|decrease
func (h *CartHandlers) Adjust(c *gin.Context) {
	cartID := c.Param("cid")
	if !ownsCart(c, cartID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Ce panier ne vous appartient pas"})
		return
	}

	var delta int
	switch c.Param("option") {
	case "increase":
		delta = 1
	case "decrease":
		delta = -1
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "option invalide (increase|decrease)"})
		return
	}

	cart, err := h.carts.AdjustQuantity(c.Request.Context(), cartID, c.Param("pid"), delta, actorFrom(c).Email)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// 🟡 PUT /api/carts/:cid/products/:pid — écriture directe (admin)
func (h *CartHandlers) SetQuantity(c *gin.Context) {
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	cart, err := h.carts.SetQuantity(c.Request.Context(), c.Param("cid"), c.Param("pid"), body.Quantity)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// 🔴 DELETE /api/carts/:cid/products/:pid
func (h *CartHandlers) RemoveProduct(c *gin.Context) {
	cartID := c.Param("cid")
	if !ownsCart(c, cartID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Ce panier ne vous appartient pas"})
		return
	}
	cart, err := h.carts.RemoveProduct(c.Request.Context(), cartID, c.Param("pid"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// 🔴 DELETE /api/carts/:cid — vide le panier, l'entité reste
func (h *CartHandlers) Empty(c *gin.Context) {
	cartID := c.Param("cid")
	if !ownsCart(c, cartID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Ce panier ne vous appartient pas"})
		return
	}
	cart, err := h.carts.EmptyCart(c.Request.Context(), cartID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// 🟢 POST /api/carts/:cid/purchase — achat du panier, reçu par email avec QR
func (h *CartHandlers) Purchase(c *gin.Context) {
	cartID := c.Param("cid")
	if !ownsCart(c, cartID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Ce panier ne vous appartient pas"})
		return
	}

	email := actorFrom(c).Email
	ticket, err := h.tickets.Purchase(c.Request.Context(), cartID, email)
	if err != nil {
		fail(c, err)
		return
	}

	// Reçu best-effort : l'achat est acquis même si l'email échoue
	qr, qrErr := utils.TicketQRDataURI(ticket.Code)
	if qrErr != nil {
		log.Printf("⚠️ QR du ticket %s non généré: %v", ticket.Code, qrErr)
	}
	if err := utils.SendEmail(email, "Votre reçu d'achat", utils.TicketReceiptHTML(ticket, qr)); err != nil {
		log.Printf("⚠️ Reçu non envoyé à %s: %v", email, err)
	}

	c.JSON(http.StatusCreated, ticket)
}

// 🟢 GET /api/tickets/:code/validate — le ticket appartient-il à l'acteur ?
func (h *CartHandlers) ValidateTicket(c *gin.Context) {
	code := c.Param("code")
	valid := h.tickets.ValidateTicket(c.Request.Context(), code, actorFrom(c).Email)
	c.JSON(http.StatusOK, gin.H{"code": code, "valid": valid})
}
