package usecase

import (
	"fmt"
	"log"
	"path"
	"strings"

	"github.com/ogarmory/backend/internal/domain"
)

// Default token tables. Colors cover every variant folder name seen in
// real asset drops; views are ordered by display priority.
var (
	defaultColorTokens = []string{
		"blue", "grey", "gray", "black", "white", "red",
		"green", "yellow", "navy", "brown", "purple",
	}
	defaultViewTokens      = []string{"back", "front", "side"}
	defaultImageExtensions = []string{"jpg", "jpeg", "png"}
)

// ClassifierConfig holds the token tables the classifier recognizes
type ClassifierConfig struct {
	ColorTokens        []string
	ViewTokens         []string // priority order
	ImageExtensions    []string
	EnableDebugLogging bool
}

// Classifier infers the structural shape of a product's raw listing and
// enumerates its eligible image assets.
type Classifier struct {
	colorTokens map[string]bool
	viewTokens  []string
	viewSet     map[string]bool
	extensions  map[string]bool
	debug       bool
}

// NewClassifier creates a classifier, falling back to the default token
// tables for any table left empty.
func NewClassifier(cfg ClassifierConfig) *Classifier {
	colors := cfg.ColorTokens
	if len(colors) == 0 {
		colors = defaultColorTokens
	}
	views := cfg.ViewTokens
	if len(views) == 0 {
		views = defaultViewTokens
	}
	exts := cfg.ImageExtensions
	if len(exts) == 0 {
		exts = defaultImageExtensions
	}

	c := &Classifier{
		colorTokens: make(map[string]bool, len(colors)),
		viewTokens:  make([]string, 0, len(views)),
		viewSet:     make(map[string]bool, len(views)),
		extensions:  make(map[string]bool, len(exts)),
		debug:       cfg.EnableDebugLogging,
	}
	for _, t := range colors {
		c.colorTokens[strings.ToLower(t)] = true
	}
	for _, t := range views {
		lower := strings.ToLower(t)
		c.viewTokens = append(c.viewTokens, lower)
		c.viewSet[lower] = true
	}
	for _, e := range exts {
		c.extensions[strings.ToLower(strings.TrimPrefix(e, "."))] = true
	}
	return c
}

// Classify inspects a product's immediate children and builds its
// ProductStructure. Color grouping takes precedence over view grouping
// when both signals are present; a product with zero usable assets
// classifies as FLAT with an empty group rather than failing.
func (c *Classifier) Classify(listing *domain.Listing) (*domain.ProductStructure, []domain.Warning) {
	var warnings []domain.Warning

	colorsFound := make([]string, 0, len(listing.ChildOrder))
	viewsFound := make([]string, 0, len(listing.ChildOrder))
	for _, child := range listing.ChildOrder {
		lower := strings.ToLower(child)
		isColor := c.colorTokens[lower]
		isView := c.viewSet[lower]
		if isColor && isView {
			// Conflicting configuration; the color-precedence rule wins
			warnings = append(warnings, domain.Warning{
				Code:       domain.WarnStructureAmbiguous,
				ProductKey: listing.ProductKey,
				Detail:     fmt.Sprintf("child %q is both a color and a view token, grouping as color", child),
			})
		}
		if isColor {
			colorsFound = append(colorsFound, child)
		} else if isView {
			viewsFound = append(viewsFound, child)
		}
	}

	ps := &domain.ProductStructure{
		ProductKey: listing.ProductKey,
		Groups:     make(map[string][]domain.AssetDescriptor),
	}

	switch {
	case len(colorsFound) > 0:
		ps.Shape = domain.ShapeColorVariant
		for _, child := range colorsFound {
			key := strings.ToLower(child)
			ps.GroupOrder = append(ps.GroupOrder, key)
			ps.Groups[key] = c.enumerate(listing.Children[child], domain.RoleColor, key)
		}
	case len(viewsFound) > 0:
		ps.Shape = domain.ShapeViewVariant
		for _, child := range viewsFound {
			key := strings.ToLower(child)
			ps.GroupOrder = append(ps.GroupOrder, key)
			ps.Groups[key] = c.enumerate(listing.Children[child], domain.RoleView, key)
		}
	default:
		ps.Shape = domain.ShapeFlat
		ps.GroupOrder = []string{""}
		ps.Groups[""] = c.enumerate(listing.Flat, domain.RoleNone, "")
	}

	if c.debug {
		log.Printf("[CLASSIFY] %s: shape=%s groups=%d", listing.ProductKey, ps.Shape, len(ps.GroupOrder))
	}

	return ps, warnings
}

// enumerate filters a group's entries down to eligible images, preserving
// input order. Non-image entries are skipped silently; real-world folders
// are messy and that is not an error condition.
func (c *Classifier) enumerate(entries []string, hint domain.RoleHint, value string) []domain.AssetDescriptor {
	assets := make([]domain.AssetDescriptor, 0, len(entries))
	for _, entry := range entries {
		if !c.isImage(entry) {
			continue
		}
		assets = append(assets, domain.AssetDescriptor{
			PathOrID:  entry,
			RoleHint:  hint,
			RoleValue: value,
		})
	}
	return assets
}

// isImage checks an entry name against the extension allow-list
func (c *Classifier) isImage(name string) bool {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	if ext == "" {
		return false
	}
	return c.extensions[ext]
}
