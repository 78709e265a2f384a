package main

import (
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"time"

	"campaignkeeper/cache"
	"campaignkeeper/db"
	"campaignkeeper/handlers"
	"campaignkeeper/middleware"
	"campaignkeeper/monitoring"
	"campaignkeeper/services"
	"campaignkeeper/store"
	"campaignkeeper/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	utils.InitLogger()
	if err := utils.InitJWTSecret(); err != nil {
		log.Fatal(err)
	}

	db.InitDB()
	db.SeedDB()

	if err := cache.InitRedis(); err != nil {
		utils.Log.WithError(err).Warn("Redis unavailable, caching and rate limiting disabled")
	}

	monitoring.InitMetrics()

	// Set to release mode in production
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	st := store.NewGormStore(db.DB)
	authz := services.NewAuthorizer(st)
	history := services.NewHistoryService(st, services.ParseAppendMode(os.Getenv("HISTORY_APPEND_MODE")))

	h := &handlers.Handler{
		Authz:      authz,
		Users:      services.NewUserService(st),
		Games:      services.NewGameService(st, authz, history),
		JoinCodes:  services.NewJoinCodeService(st, authz, history),
		Characters: services.NewCharacterService(st, authz, history),
		Items:      services.NewItemService(st, authz, history),
		Categories: services.NewCategoryService(st, authz, history),
		Inventory:  services.NewInventoryService(st, authz, history),
		History:    history,
		Stats:      services.NewStatsService(st),
	}

	r := gin.Default()

	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RemovePoweredBy())
	r.Use(monitoring.PrometheusMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes
	r.POST("/login", h.Login)
	r.POST("/users", h.Register)

	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware())
	protected.Use(middleware.RateLimitMiddleware(1000, time.Hour))
	{
		protected.GET("/profile", h.Profile)
		protected.PUT("/profile", h.UpdateProfile)

		protected.GET("/games", h.GetGames)
		protected.POST("/games", h.CreateGame)
		protected.GET("/games/:id", h.GetGame)
		protected.PUT("/games/:id", h.UpdateGame)
		protected.DELETE("/games/:id", h.DeleteGame)
		protected.GET("/games/:id/history", h.GetHistory)

		protected.GET("/games/:id/players", h.GetPlayers)
		protected.DELETE("/games/:id/players/:userId", h.KickPlayer)
		protected.PUT("/games/:id/players", h.EditPrivileges)

		protected.POST("/games/:id/joincode", h.GenerateJoinCode)
		protected.PUT("/games/:id/joincode", h.ToggleJoinCode)
		protected.POST("/join", h.JoinGame)

		protected.GET("/games/:id/characters", h.GetCharacters)
		protected.POST("/games/:id/characters", h.CreateCharacter)
		protected.GET("/characters/:id", h.GetCharacter)
		protected.PUT("/characters/:id", h.UpdateCharacter)
		protected.DELETE("/characters/:id", h.DeleteCharacter)

		protected.GET("/characters/:id/inventory", h.GetInventory)
		protected.POST("/characters/:id/inventory", h.AssignItem)
		protected.POST("/characters/:id/inventory/bulk", h.AssignItems)
		protected.PUT("/characters/:id/inventory", h.UpdateInventory)
		protected.PUT("/characters/:id/inventory/:entryId", h.UpdateInventoryEntry)
		protected.DELETE("/characters/:id/inventory/:entryId", h.RemoveInventoryEntry)

		protected.GET("/games/:id/items", h.GetItems)
		protected.POST("/games/:id/items", h.CreateItem)
		protected.GET("/items/:id", h.GetItem)
		protected.PUT("/items/:id", h.UpdateItem)
		protected.DELETE("/items/:id", h.DeleteItem)

		protected.GET("/games/:id/categories", h.GetCategories)
		protected.POST("/games/:id/categories", h.CreateCategory)
		protected.PUT("/categories/:id", h.UpdateCategory)
		protected.DELETE("/categories/:id", h.DeleteCategory)

		protected.GET("/stats", h.GetDashboardStats)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Check if HTTPS should be enabled
	useHTTPS := os.Getenv("USE_HTTPS") == "true"
	certFile := os.Getenv("TLS_CERT_FILE")
	keyFile := os.Getenv("TLS_KEY_FILE")

	if useHTTPS && certFile != "" && keyFile != "" {
		log.Println("Starting server with HTTPS on port", port)

		tlsConfig := &tls.Config{
			MinVersion:       tls.VersionTLS12,
			CurvePreferences: []tls.CurveID{tls.CurveP521, tls.CurveP384, tls.CurveP256},
		}

		server := &http.Server{
			Addr:      ":" + port,
			Handler:   r,
			TLSConfig: tlsConfig,
		}

		if err := server.ListenAndServeTLS(certFile, keyFile); err != nil {
			log.Fatal("Failed to start HTTPS server:", err)
		}
	} else {
		log.Println("Starting server with HTTP on port", port)
		log.Println("WARNING: Running without HTTPS. Set USE_HTTPS=true for production")

		if err := r.Run(":" + port); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}
}
