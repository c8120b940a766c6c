// Catalogctl scans a products directory (or S3 bucket), normalizes it
// into a canonical catalog and writes the result as JSON.
//
// Usage:
//
//	catalogctl -products ./products -category teeshirt -out catalog.json
//	catalogctl -s3 -category teeshirt -out catalog.json
//	catalogctl -products ./products -category teeshirt -reconcile
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/ogarmory/backend/config"
	"github.com/ogarmory/backend/internal/domain"
	"github.com/ogarmory/backend/internal/infrastructure/fsstore"
	"github.com/ogarmory/backend/internal/infrastructure/s3store"
	"github.com/ogarmory/backend/internal/infrastructure/shopify"
	"github.com/ogarmory/backend/internal/usecase"
)

func main() {
	var (
		productsDir = flag.String("products", "", "Path to the products directory")
		category    = flag.String("category", "", "Product category for the whole batch")
		rulesPath   = flag.String("rules", "", "Path to a category rules YAML file (default: built-in rules)")
		outPath     = flag.String("out", "catalog.json", "Output file for the canonical catalog")
		useS3       = flag.Bool("s3", false, "Read listings from the configured S3 bucket instead of a local directory")
		reconcile   = flag.Bool("reconcile", false, "Merge the batch into the existing Shopify catalog")
		timeout     = flag.Duration("timeout", 5*time.Minute, "Overall run timeout")
	)
	flag.Parse()

	if *category == "" {
		fmt.Fprintln(os.Stderr, "Error: -category is required")
		flag.Usage()
		os.Exit(1)
	}
	if *productsDir == "" && !*useS3 {
		fmt.Fprintln(os.Stderr, "Error: -products or -s3 is required")
		flag.Usage()
		os.Exit(1)
	}

	_ = godotenv.Load() // loads .env if present

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if *rulesPath == "" {
		*rulesPath = cfg.Engine.RulesPath
	}
	rules, err := config.LoadRules(*rulesPath)
	if err != nil {
		log.Fatalf("Failed to load category rules: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	source, err := buildSource(cfg, *productsDir, *useS3)
	if err != nil {
		log.Fatalf("Failed to set up asset source: %v", err)
	}

	var upstream domain.CatalogSource
	if *reconcile {
		if cfg.Shopify.StoreDomain == "" {
			log.Fatalf("Reconcile requested but no Shopify store configured (set ARMORY_SHOPIFY_STORE_DOMAIN)")
		}
		upstream = shopify.NewClient(cfg.Shopify.StoreDomain, cfg.Shopify.AccessToken, cfg.Shopify.APIVersion)
	}

	service := usecase.NewCatalogService(usecase.CatalogServiceConfig{
		ColorTokens:        cfg.Engine.ColorTokens,
		ViewTokens:         cfg.Engine.ViewTokens,
		ImageExtensions:    cfg.Engine.ImageExtensions,
		MaxDisplayImages:   cfg.Engine.MaxDisplayImages,
		MatchThreshold:     cfg.Engine.MatchThreshold,
		ConnectorWords:     cfg.Engine.ConnectorWords,
		Rules:              rules,
		EnableDebugLogging: cfg.Engine.DebugLogging,
	}, nil, upstream)

	result, err := service.BuildCatalog(ctx, source, *category)
	if err != nil {
		log.Fatalf("Catalog build failed: %v", err)
	}

	if *reconcile {
		merged, err := service.Reconcile(ctx, result.Products, nil)
		if err != nil {
			log.Fatalf("Reconcile failed: %v", err)
		}
		merged.Warnings = append(result.Warnings, merged.Warnings...)
		merged.Errors = append(result.Errors, merged.Errors...)
		result = merged
	}

	for _, w := range result.Warnings {
		log.Printf("WARNING [%s] %s: %s", w.Code, w.ProductKey, w.Detail)
	}
	for _, e := range result.Errors {
		log.Printf("ERROR %s: %s", e.ProductKey, e.Message)
	}

	if err := writeCatalog(*outPath, result); err != nil {
		log.Fatalf("Failed to write catalog: %v", err)
	}

	log.Printf("Wrote %d products to %s (%d warnings, %d errors)",
		len(result.Products), *outPath, len(result.Warnings), len(result.Errors))
}

// buildSource picks the asset source: local directory or S3 bucket
func buildSource(cfg *config.Config, productsDir string, useS3 bool) (domain.AssetSource, error) {
	if useS3 {
		if cfg.S3.Endpoint == "" {
			return nil, fmt.Errorf("S3 source requested but no endpoint configured (set ARMORY_S3_ENDPOINT)")
		}
		return s3store.NewSource(cfg.S3)
	}
	return fsstore.NewSource(productsDir), nil
}

// writeCatalog serializes the build result to a JSON file
func writeCatalog(path string, result *usecase.BuildResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
