package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/cache"
	"storefront_back_end/internal/models"
	"storefront_back_end/internal/services"
	"storefront_back_end/internal/utils"
)

type ProductHandlers struct {
	catalog *services.CatalogService
	cache   *cache.Cache
}

func NewProductHandlers(catalog *services.CatalogService, c *cache.Cache) *ProductHandlers {
	return &ProductHandlers{catalog: catalog, cache: c}
}

// 🟢 GET /api/products — listage public paginé, avec cache Redis
func (h *ProductHandlers) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	query := c.Query("query")
	sort := c.Query("sort")

	cacheKey := fmt.Sprintf("page=%d&limit=%d&query=%s&sort=%s", page, limit, query, sort)
	if data, ok := h.cache.GetProductList(c.Request.Context(), cacheKey); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", data)
		return
	}

	result, err := h.catalog.List(c.Request.Context(), services.ListOptions{
		Query:    query,
		Page:     page,
		Limit:    limit,
		SortDesc: sort == "desc",
	})
	if err != nil {
		fail(c, err)
		return
	}

	if data, err := json.Marshal(result); err == nil {
		h.cache.SetProductList(c.Request.Context(), cacheKey, data)
	}
	c.JSON(http.StatusOK, result)
}

// 🟢 GET /api/products/:pid
func (h *ProductHandlers) Get(c *gin.Context) {
	p, err := h.catalog.GetProduct(c.Request.Context(), c.Param("pid"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// 🔍 GET /api/products/search?q=... — Elasticsearch, repli stockage
func (h *ProductHandlers) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paramètre 'q' manquant"})
		return
	}
	results, err := h.catalog.Search(c.Request.Context(), query)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// 🟢 POST /api/products — admin ou premium
func (h *ProductHandlers) Create(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	created, err := h.catalog.AddProduct(c.Request.Context(), p, actorFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// 🟡 PUT /api/products/:pid — admin partout, premium sur ses produits
func (h *ProductHandlers) Update(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	actor := actorFrom(c)
	requiredOwner := ""
	if !actor.IsAdmin() {
		requiredOwner = actor.Email
	}

	updated, err := h.catalog.UpdateProduct(c.Request.Context(), c.Param("pid"), p, requiredOwner)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// 🔴 DELETE /api/products/:pid — prévient le vendeur par email
func (h *ProductHandlers) Delete(c *gin.Context) {
	actor := actorFrom(c)
	requiredOwner := ""
	if !actor.IsAdmin() {
		requiredOwner = actor.Email
	}

	deleted, err := h.catalog.DeleteProduct(c.Request.Context(), c.Param("pid"), requiredOwner)
	if err != nil {
		fail(c, err)
		return
	}

	if deleted.Owner != models.AdminOwner {
		if err := utils.SendEmail(deleted.Owner, "Produit supprimé", utils.ProductDeletedHTML(deleted)); err != nil {
			log.Printf("⚠️ Email de suppression non envoyé à %s: %v", deleted.Owner, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé", "product": deleted})
}

// 🟢 GET /api/products/mock/:n — génère des produits factices (non persistés)
func (h *ProductHandlers) Mock(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil || n <= 0 || n > 500 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nombre invalide"})
		return
	}
	c.JSON(http.StatusOK, h.catalog.MockProducts(n))
}
