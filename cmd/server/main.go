package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/github"
	"github.com/markbates/goth/providers/google"

	"storefront_back_end/internal/cache"
	"storefront_back_end/internal/config"
	"storefront_back_end/internal/database"
	"storefront_back_end/internal/handlers"
	"storefront_back_end/internal/routes"
	"storefront_back_end/internal/search"
	"storefront_back_end/internal/services"
	"storefront_back_end/internal/storage"
)

func main() {
	config.Load()

	ctx := context.Background()
	database.Connect(ctx)

	stores, err := storage.Open(ctx)
	if err != nil {
		log.Fatalf("❌ Impossible d'ouvrir le stockage (%s): %v", config.StorageType(), err)
	}
	log.Printf("✅ Stockage '%s' prêt", config.StorageType())

	productCache := cache.New(database.Redis)
	productIndex := search.New(database.Elastic)

	catalog := services.NewCatalogService(stores.Products, productIndex, productCache)
	carts := services.NewCartsService(stores.Carts, stores.Products)
	tickets := services.NewTicketsService(stores.Tickets, stores.Carts, stores.Products)
	chat := services.NewChatService(stores.Chats)
	accounts := services.NewAccountsService(stores.Users, carts, catalog, chat, config.AdminEmail(), config.AdminPassword())

	initOAuthProviders()

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.BaseURL()},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	routes.RegisterRoutes(r, routes.Handlers{
		Products:  handlers.NewProductHandlers(catalog, productCache),
		Carts:     handlers.NewCartHandlers(carts, tickets),
		Users:     handlers.NewUserHandlers(accounts),
		Auth:      handlers.NewAuthHandlers(accounts),
		Chat:      handlers.NewChatHandlers(chat, accounts),
		Documents: handlers.NewDocumentHandlers(accounts),
	})

	port := config.Port()
	log.Println("🚀 Serveur storefront lancé sur le port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Serveur arrêté: %v", err)
	}
}

func initOAuthProviders() {
	store := sessions.NewCookieStore([]byte(config.SessionSecret()))
	store.MaxAge(86400 * 30)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   false, // false en dev, true en prod
		SameSite: http.SameSiteLaxMode,
	}
	gothic.Store = store

	baseURL := config.BaseURL()
	var providers []goth.Provider

	if config.GoogleClientID() != "" && config.GoogleClientSecret() != "" {
		providers = append(providers, google.New(
			config.GoogleClientID(),
			config.GoogleClientSecret(),
			baseURL+"/api/auth/google/callback",
		))
		log.Println("✅ Google OAuth activé")
	}

	if config.GithubClientID() != "" && config.GithubClientSecret() != "" {
		providers = append(providers, github.New(
			config.GithubClientID(),
			config.GithubClientSecret(),
			baseURL+"/api/auth/github/callback",
		))
		log.Println("✅ GitHub OAuth activé")
	}

	if len(providers) == 0 {
		log.Println("⚠️ Aucun provider OAuth configuré")
		return
	}

	goth.UseProviders(providers...)
	log.Printf("✅ %d OAuth provider(s) initialisé(s)", len(providers))
}
