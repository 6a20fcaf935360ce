package routes

import (
	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/authz"
	"storefront_back_end/internal/handlers"
	"storefront_back_end/internal/middleware"
)

// Handlers regroupe les groupes de handlers injectés depuis main.
type Handlers struct {
	Products  *handlers.ProductHandlers
	Carts     *handlers.CartHandlers
	Users     *handlers.UserHandlers
	Auth      *handlers.AuthHandlers
	Chat      *handlers.ChatHandlers
	Documents *handlers.DocumentHandlers
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	api := r.Group("/api")

	// Auth
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", middleware.AuthRequired(), h.Auth.Logout)
		auth.GET("/:provider", h.Auth.BeginAuth)
		auth.GET("/:provider/callback", h.Auth.CallbackAuth)
		auth.POST("/password/forgot", h.Auth.ForgotPassword)
		auth.POST("/password/reset", h.Auth.ResetPassword)
	}

	// Catalogue — consultable sans compte
	products := api.Group("/products", middleware.AuthOptional())
	{
		products.GET("", h.Products.List)
		products.GET("/search", h.Products.Search)
		products.GET("/mock/:n", h.Products.Mock)
		products.GET("/:pid", h.Products.Get)

		manage := products.Group("", middleware.AuthRequired(), middleware.RequireOperation(authz.OpManageOwnProducts))
		{
			manage.POST("", h.Products.Create)
			manage.PUT("/:pid", h.Products.Update)
			manage.DELETE("/:pid", h.Products.Delete)
		}
	}

	// Paniers et achat — réservé aux comptes connectés
	carts := api.Group("/carts", middleware.AuthRequired(), middleware.RequireOperation(authz.OpCartPurchase))
	{
		carts.POST("", h.Carts.Create)
		carts.GET("/:cid", h.Carts.Get)
		carts.PUT("/:cid", h.Carts.Replace)
		carts.DELETE("/:cid", h.Carts.Empty)
		carts.POST("/:cid/products/:pid/:option", h.Carts.Adjust)
		carts.DELETE("/:cid/products/:pid", h.Carts.RemoveProduct)
		carts.POST("/:cid/purchase", h.Carts.Purchase)

		carts.PUT("/:cid/products/:pid", middleware.RequireOperation(authz.OpManageAny), h.Carts.SetQuantity)
	}

	api.GET("/tickets/:code/validate", middleware.AuthRequired(), middleware.RequireOperation(authz.OpCartPurchase), h.Carts.ValidateTicket)

	// Comptes
	users := api.Group("/users", middleware.AuthRequired())
	{
		users.GET("/current", h.Users.Current)
		users.POST("/:uid/documents", h.Documents.Upload)

		admin := users.Group("", middleware.RequireOperation(authz.OpManageAny))
		{
			admin.GET("", h.Users.GetAll)
			admin.GET("/:uid", h.Users.Get)
			admin.PUT("/premium/:uid", h.Users.ToggleRole)
			admin.PUT("/:uid/role", h.Users.ChangeRole)
			admin.DELETE("/:uid", h.Users.Delete)
			admin.DELETE("", h.Users.DeleteInactive)
		}
	}

	// Chat
	chat := api.Group("/chat", middleware.AuthRequired())
	{
		chat.GET("", h.Chat.History)
		chat.POST("", h.Chat.Post)
	}
}
