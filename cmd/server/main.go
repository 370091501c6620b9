package main

import (
	"fmt"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/lawrencceee/Housing-Tracker/internal/config"
	"github.com/lawrencceee/Housing-Tracker/internal/handler"
	"github.com/lawrencceee/Housing-Tracker/internal/repository"
	"github.com/lawrencceee/Housing-Tracker/internal/scraper"
	"github.com/lawrencceee/Housing-Tracker/internal/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	log.Printf("Housing Application Tracker")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Credentials are checked once, before any input is accepted.
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize collaborators
	store := repository.NewNotionRepository(&cfg.Notion)
	aiClient := service.NewOpenAIClient(&cfg.OpenAI)
	daft := scraper.NewDaftScraper(&cfg.Scraper)

	log.Printf("Notion store initialized (database %s)", cfg.Notion.DatabaseID)
	log.Printf("OpenAI client initialized (model %s, base %s)", cfg.OpenAI.ChatModel, cfg.OpenAI.APIBase)

	// Initialize services
	intents := service.NewIntentParser(aiClient)
	queries := service.NewQuerySynthesizer(aiClient)
	assistant := service.NewAssistantService(store, daft, intents, queries)

	assistantHandler := handler.NewAssistantHandler(assistant)

	// Setup Gin router
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "housing-tracker",
			"version": Version,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/assistant", assistantHandler.Handle)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Starting server on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
