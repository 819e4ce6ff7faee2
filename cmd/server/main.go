package main

import (
	"fmt"
	"log"
	"os"

	"github.com/eatwise/backend/config"
	httpDelivery "github.com/eatwise/backend/internal/delivery/http"
	"github.com/eatwise/backend/internal/infrastructure/cache"
	"github.com/eatwise/backend/internal/infrastructure/openai"
	"github.com/eatwise/backend/internal/infrastructure/storage"
	"github.com/eatwise/backend/internal/reference"
	"github.com/eatwise/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// A structurally invalid reference table breaks invariants the whole
	// estimation pipeline trusts, so refuse to start on one.
	if err := reference.Validate(); err != nil {
		log.Fatalf("Reference data validation failed: %v", err)
	}

	log.Printf("Starting EatWise Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Reference table: %d foods", reference.Size())

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	store, err := storage.NewSQLiteStore(cfg.Storage.Path)
	if err != nil {
		log.Fatalf("Failed to open analysis history store: %v", err)
	}
	defer store.Close()
	log.Printf("Analysis history: %s", cfg.Storage.Path)

	openaiClient := openai.NewClient(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.Endpoint,
		cfg.OpenAI.Deployment,
		cfg.OpenAI.APIVersion,
		cfg.RateLimit.OpenAIPerMinute,
	)

	if cfg.Server.Environment == "development" {
		openaiClient.SetDebug(true)
		log.Printf("OpenAI client debug mode enabled")
	}
	log.Printf("OpenAI deployment: %s at %s", cfg.OpenAI.Deployment, cfg.OpenAI.Endpoint)

	// Initialize usecase layer
	analysisService := usecase.NewAnalysisService(
		memoryCache,
		openaiClient,
		store,
		usecase.AnalysisServiceConfig{
			CacheTTL:           cfg.Cache.TTL,
			MinSharedTokens:    cfg.Matching.MinSharedTokens,
			EnableDebugLogging: cfg.Matching.EnableDebugLogging,
		},
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(analysisService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
