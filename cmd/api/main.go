package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"careers-portal-backend/internal/auth"
	"careers-portal-backend/internal/config"
	"careers-portal-backend/internal/database"
	"careers-portal-backend/internal/handlers"
	"careers-portal-backend/internal/services"
	"careers-portal-backend/internal/storage"
	"careers-portal-backend/internal/zoho"
)

func main() {
	// 1. Configuration (.env + environment)
	cfg := config.Load()

	// 2. Database
	db := database.Connect(cfg.DatabaseURL)
	if err := database.SeedUsers(db); err != nil {
		log.Fatal("User seeding failed: ", err)
	}

	// 3. Resume storage
	store, err := storage.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatal("Upload dir: ", err)
	}

	// 4. Zoho Recruit client + sync orchestrator
	zohoClient := zoho.NewClient(zoho.Config{
		Region:       cfg.ZohoRegion,
		ClientID:     cfg.ZohoClientID,
		ClientSecret: cfg.ZohoClientSecret,
		RefreshToken: cfg.ZohoRefreshToken,
		OrgID:        cfg.ZohoOrgID,
		RedirectURI:  cfg.ZohoRedirectURI,
	}, zoho.NewTokenCache())

	appService := services.NewApplicationService(db)
	syncService := services.NewSyncService(zohoClient, store)

	// 5. Handlers
	appHandler := handlers.NewApplicationHandler(appService, syncService, store)
	authHandler := handlers.NewAuthHandler(db, cfg.JWTSecret)
	zohoHandler := handlers.NewZohoHandler(zohoClient, syncService)

	// 6. Router & CORS
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// 7. Routes
	requireAuth := auth.Required(cfg.JWTSecret)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)
		api.GET("/auth/me", requireAuth, authHandler.Me)

		api.POST("/applications", requireAuth, appHandler.Create)
		api.GET("/applications", requireAuth, appHandler.List)

		api.GET("/zoho/candidate-fields", requireAuth, zohoHandler.CandidateFields)
		api.GET("/zoho/sync/status", requireAuth, zohoHandler.SyncStatus)
	}

	// Stored resumes are only served to their owner.
	r.GET("/uploads/resumes/:filename", requireAuth, appHandler.DownloadResume)

	// One-time operator bootstrap for the refresh token.
	r.GET("/zoho/oauth/callback", zohoHandler.OAuthCallback)

	log.Printf("🚀 Server starting on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start: ", err)
	}
}
