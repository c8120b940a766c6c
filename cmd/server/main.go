package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/ogarmory/backend/config"
	httpDelivery "github.com/ogarmory/backend/internal/delivery/http"
	"github.com/ogarmory/backend/internal/domain"
	"github.com/ogarmory/backend/internal/infrastructure/cache"
	"github.com/ogarmory/backend/internal/infrastructure/shopify"
	"github.com/ogarmory/backend/internal/usecase"
)

func main() {
	_ = godotenv.Load() // loads .env if present

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	rules, err := config.LoadRules(cfg.Engine.RulesPath)
	if err != nil {
		log.Fatalf("Failed to load category rules: %v", err)
	}

	log.Printf("Starting Armory Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Categories: %d, snapshot TTL: %s", len(rules.Categories), cfg.Snapshot.TTL)

	// Initialize infrastructure dependencies
	snapshots := cache.NewSnapshotStore(cfg.Snapshot.TTL)

	var upstream domain.CatalogSource
	if cfg.Shopify.StoreDomain != "" {
		client := shopify.NewClient(cfg.Shopify.StoreDomain, cfg.Shopify.AccessToken, cfg.Shopify.APIVersion)

		// Enable debug mode in development environment
		if cfg.Server.Environment == "development" {
			client.SetDebug(true)
			log.Printf("Shopify client debug mode enabled")
		}
		log.Printf("Shopify upstream configured: %s (API %s)", cfg.Shopify.StoreDomain, cfg.Shopify.APIVersion)
		upstream = client
	} else {
		log.Printf("Shopify upstream not configured - reconcile uses snapshots only")
	}

	// Initialize usecase layer
	serviceCfg := usecase.CatalogServiceConfig{
		ColorTokens:        cfg.Engine.ColorTokens,
		ViewTokens:         cfg.Engine.ViewTokens,
		ImageExtensions:    cfg.Engine.ImageExtensions,
		MaxDisplayImages:   cfg.Engine.MaxDisplayImages,
		MatchThreshold:     cfg.Engine.MatchThreshold,
		ConnectorWords:     cfg.Engine.ConnectorWords,
		Rules:              rules,
		EnableDebugLogging: cfg.Engine.DebugLogging,
	}

	catalogService := usecase.NewCatalogService(serviceCfg, snapshots, upstream)

	log.Printf("Engine: maxImages=%d, threshold=%.2f, debug=%v",
		cfg.Engine.MaxDisplayImages,
		cfg.Engine.MatchThreshold,
		cfg.Engine.DebugLogging)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(catalogService)

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
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
