package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/ogarmory/backend/internal/domain"
)

// CatalogServiceConfig holds configuration for the catalog service
type CatalogServiceConfig struct {
	ColorTokens        []string
	ViewTokens         []string
	ImageExtensions    []string
	MaxDisplayImages   int
	MatchThreshold     float64
	ConnectorWords     []string
	Rules              domain.RuleTable
	EnableDebugLogging bool
}

// ProductError is a per-product failure collected alongside the
// successful results; it never aborts the batch.
type ProductError struct {
	ProductKey string `json:"productKey"`
	Message    string `json:"error"`
}

// BuildResult is the engine's output triple: catalog, warnings, errors
type BuildResult struct {
	Products []domain.CanonicalProduct `json:"products"`
	Warnings []domain.Warning          `json:"warnings,omitempty"`
	Errors   []ProductError            `json:"errors,omitempty"`
}

// CatalogService runs the full normalization pipeline: classify,
// group, order, synthesize, and optionally reconcile against an
// existing catalog.
type CatalogService struct {
	classifier  *Classifier
	synthesizer *Synthesizer
	orderer     *Orderer
	matcher     *Matcher
	snapshots   domain.SnapshotStore
	upstream    domain.CatalogSource
	debug       bool
}

// NewCatalogService wires the pipeline stages from one configuration.
// snapshots and upstream are optional; without either, Reconcile requires
// the caller to supply the existing catalog explicitly.
func NewCatalogService(cfg CatalogServiceConfig, snapshots domain.SnapshotStore, upstream domain.CatalogSource) *CatalogService {
	classifier := NewClassifier(ClassifierConfig{
		ColorTokens:        cfg.ColorTokens,
		ViewTokens:         cfg.ViewTokens,
		ImageExtensions:    cfg.ImageExtensions,
		EnableDebugLogging: cfg.EnableDebugLogging,
	})
	grouper := NewGrouper(cfg.ViewTokens)
	orderer := NewOrderer(cfg.MaxDisplayImages)
	matcher := NewMatcher(MatcherConfig{
		Threshold:          cfg.MatchThreshold,
		ConnectorWords:     cfg.ConnectorWords,
		EnableDebugLogging: cfg.EnableDebugLogging,
	})

	return &CatalogService{
		classifier:  classifier,
		synthesizer: NewSynthesizer(grouper, orderer, cfg.Rules),
		orderer:     orderer,
		matcher:     matcher,
		snapshots:   snapshots,
		upstream:    upstream,
		debug:       cfg.EnableDebugLogging,
	}
}

// BuildCatalog produces one canonical catalog from one full scan of the
// asset source. Products are independent, so synthesis fans out in
// parallel; results reduce into key-sorted order so catalog ordering is
// reproducible regardless of execution order. A source that cannot
// enumerate at all is a hard failure; per-product failures are collected.
func (s *CatalogService) BuildCatalog(ctx context.Context, source domain.AssetSource, category string) (*BuildResult, error) {
	keys, err := source.ProductKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidListing, err)
	}

	result := &BuildResult{Products: []domain.CanonicalProduct{}}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, key := range keys {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()

			product, warnings, err := s.buildOne(ctx, source, key, category)

			mu.Lock()
			defer mu.Unlock()
			result.Warnings = append(result.Warnings, warnings...)
			if err != nil {
				result.Errors = append(result.Errors, ProductError{ProductKey: key, Message: err.Error()})
				return
			}
			result.Products = append(result.Products, *product)
		}(key)
	}
	wg.Wait()

	sortResult(result)

	if s.debug {
		log.Printf("[BUILD] %d products, %d warnings, %d errors", len(result.Products), len(result.Warnings), len(result.Errors))
	}

	if s.snapshots != nil && len(result.Products) > 0 {
		if err := s.snapshots.Save(ctx, result.Products); err != nil {
			log.Printf("[BUILD] snapshot save failed: %v", err)
		}
	}
	return result, nil
}

// buildOne runs the per-product pipeline: listing → classify → synthesize
func (s *CatalogService) buildOne(ctx context.Context, source domain.AssetSource, key, category string) (*domain.CanonicalProduct, []domain.Warning, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	listing, err := source.Listing(ctx, key)
	if err != nil {
		return nil, nil, err
	}
	if listing.ProductKey == "" {
		listing.ProductKey = key
	}

	structure, warnings := s.classifier.Classify(listing)
	product, synthWarnings, err := s.synthesizer.Synthesize(structure, category)
	if err != nil {
		return nil, warnings, err
	}
	return product, append(warnings, synthWarnings...), nil
}

// Reconcile merges incoming products into an existing catalog instead of
// duplicating them. When existing is nil, the previous snapshot is tried
// first, then the upstream catalog source. The matcher holds the batch's
// only cross-product shared state, so this pass is single-threaded.
func (s *CatalogService) Reconcile(ctx context.Context, incoming, existing []domain.CanonicalProduct) (*BuildResult, error) {
	if existing == nil {
		loaded, err := s.loadExisting(ctx)
		if err != nil {
			return nil, err
		}
		existing = loaded
	}

	result := &BuildResult{Products: make([]domain.CanonicalProduct, len(existing))}
	copy(result.Products, existing)

	indexByKey := make(map[string]int, len(result.Products))
	for i, p := range result.Products {
		indexByKey[p.Key] = i
	}

	sorted := make([]domain.CanonicalProduct, len(incoming))
	copy(sorted, incoming)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })

	for _, in := range sorted {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		label := in.Title
		if label == "" {
			label = in.Key
		}

		best, tied, err := s.matcher.FindBestMatch(in.Key, label, result.Products)
		switch {
		case err == nil:
			i := indexByKey[best.ExistingKey]
			merged := Merge(result.Products[i], in)
			merged.Display = s.orderer.Order(RefsFromSequence(merged.Display.Sequence))
			result.Products[i] = merged
			if s.debug {
				log.Printf("[RECONCILE] merged %q into %q (score %.2f)", in.Key, best.ExistingKey, best.Score)
			}
		case err == domain.ErrAmbiguousMatch:
			// Never auto-merge on a tie; report and treat as new
			candidateKeys := make([]string, 0, len(tied))
			for _, c := range tied {
				candidateKeys = append(candidateKeys, c.ExistingKey)
			}
			result.Warnings = append(result.Warnings, domain.Warning{
				Code:       domain.WarnAmbiguousMatch,
				ProductKey: in.Key,
				Detail:     "multiple equally strong matches, treating as new product",
				Candidates: candidateKeys,
			})
			fallthrough
		case err == domain.ErrNoMatch:
			indexByKey[in.Key] = len(result.Products)
			result.Products = append(result.Products, in)
		default:
			result.Errors = append(result.Errors, ProductError{ProductKey: in.Key, Message: err.Error()})
		}
	}

	sortResult(result)

	if s.snapshots != nil && len(result.Products) > 0 {
		if err := s.snapshots.Save(ctx, result.Products); err != nil {
			log.Printf("[RECONCILE] snapshot save failed: %v", err)
		}
	}
	return result, nil
}

// loadExisting pulls the prior catalog from the snapshot store, falling
// back to the upstream catalog source.
func (s *CatalogService) loadExisting(ctx context.Context) ([]domain.CanonicalProduct, error) {
	if s.snapshots != nil {
		products, err := s.snapshots.Load(ctx)
		if err == nil {
			return products, nil
		}
		if err != domain.ErrSnapshotMiss {
			return nil, err
		}
	}
	if s.upstream != nil {
		return s.upstream.ExistingProducts(ctx)
	}
	return []domain.CanonicalProduct{}, nil
}

// sortResult puts products, warnings and errors into key order so output
// is deterministic
func sortResult(r *BuildResult) {
	sort.Slice(r.Products, func(i, j int) bool { return r.Products[i].Key < r.Products[j].Key })
	sort.SliceStable(r.Warnings, func(i, j int) bool { return r.Warnings[i].ProductKey < r.Warnings[j].ProductKey })
	sort.SliceStable(r.Errors, func(i, j int) bool { return r.Errors[i].ProductKey < r.Errors[j].ProductKey })
}
