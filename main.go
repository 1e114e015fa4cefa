package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"bricool-server/config"
	"bricool-server/database"
	"bricool-server/jobs"
	"bricool-server/middleware"
	"bricool-server/routes"
	"bricool-server/services"
	ws "bricool-server/websocket"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	if cfg.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RateLimit(middleware.NewRateLimiter()))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Bricool server is running",
			"time":    time.Now().UTC(),
		})
	})

	hub := ws.NewHub()
	go hub.Run()

	routes.Register(router, db, cfg, hub)

	cleanup := jobs.NewTokenCleanupJob(services.NewJWTService(db, cfg.JWT), 6*time.Hour)
	cleanup.Start()
	defer cleanup.Stop()

	log.Printf("🚀 Server starting on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
