package usecase

import (
	"strings"

	"github.com/ogarmory/backend/internal/domain"
)

// ImageRef is one eligible image in Grouper-assigned order. IsBack marks
// images whose source group or filename was classified as a back view,
// which drives primary-image selection downstream.
type ImageRef struct {
	Path   string
	IsBack bool
}

// GroupedProduct is the Variant Grouper's output for one product
type GroupedProduct struct {
	Colors   []string
	Variants []domain.ColorVariant
	Images   []ImageRef
}

// Grouper turns a classified ProductStructure into canonical variant
// records and a single ordered image list.
type Grouper struct {
	viewPriority []string
}

// NewGrouper creates a grouper. viewPriority orders view groups when
// flattening a view-variant product; defaults to back, front, side.
func NewGrouper(viewPriority []string) *Grouper {
	priority := viewPriority
	if len(priority) == 0 {
		priority = defaultViewTokens
	}
	lowered := make([]string, len(priority))
	for i, v := range priority {
		lowered[i] = strings.ToLower(v)
	}
	return &Grouper{viewPriority: lowered}
}

// Group resolves variants and the full ordered image list for a product
func (g *Grouper) Group(ps *domain.ProductStructure) *GroupedProduct {
	switch ps.Shape {
	case domain.ShapeColorVariant:
		return g.groupColors(ps)
	case domain.ShapeViewVariant:
		return g.groupViews(ps)
	default:
		return g.groupFlat(ps)
	}
}

// groupColors builds one ColorVariant per recognized color. A color whose
// group is empty still gets a variant with no images: the color exists in
// the offering even when its art has not landed yet, and dropping it
// would corrupt variant counts.
func (g *Grouper) groupColors(ps *domain.ProductStructure) *GroupedProduct {
	out := &GroupedProduct{
		Colors:   make([]string, 0, len(ps.GroupOrder)),
		Variants: make([]domain.ColorVariant, 0, len(ps.GroupOrder)),
	}

	for _, color := range ps.GroupOrder {
		out.Colors = append(out.Colors, color)
		variant := resolveColorVariant(color, ps.Groups[color])
		out.Variants = append(out.Variants, variant)

		if variant.BackImage != "" {
			out.Images = append(out.Images, ImageRef{Path: variant.BackImage, IsBack: true})
		}
		if variant.FrontImage != "" {
			out.Images = append(out.Images, ImageRef{Path: variant.FrontImage})
		}
		for _, extra := range variant.ExtraImages {
			out.Images = append(out.Images, ImageRef{Path: extra})
		}
	}
	return out
}

// resolveColorVariant picks the back/front slots for one color group by
// filename substring. When no filename carries a front or back signal the
// first enumerated entry is treated as the back image, keeping the
// back-first policy for unlabeled assets.
func resolveColorVariant(color string, assets []domain.AssetDescriptor) domain.ColorVariant {
	variant := domain.ColorVariant{Color: color}

	var extras []string
	for _, asset := range assets {
		name := strings.ToLower(asset.PathOrID)
		switch {
		case variant.BackImage == "" && strings.Contains(name, "back"):
			variant.BackImage = asset.PathOrID
		case variant.FrontImage == "" && strings.Contains(name, "front"):
			variant.FrontImage = asset.PathOrID
		default:
			extras = append(extras, asset.PathOrID)
		}
	}

	if variant.BackImage == "" && variant.FrontImage == "" && len(extras) > 0 {
		variant.BackImage = extras[0]
		extras = extras[1:]
	}
	variant.ExtraImages = extras
	return variant
}

// groupViews flattens view groups into one ordered sequence: back group
// entries first, then front, then the remaining views in priority order,
// preserving within-group order.
func (g *Grouper) groupViews(ps *domain.ProductStructure) *GroupedProduct {
	out := &GroupedProduct{}

	emitted := make(map[string]bool, len(ps.GroupOrder))
	emit := func(view string) {
		if emitted[view] {
			return
		}
		group, ok := ps.Groups[view]
		if !ok {
			return
		}
		emitted[view] = true
		for _, asset := range group {
			out.Images = append(out.Images, ImageRef{Path: asset.PathOrID, IsBack: view == "back"})
		}
	}

	for _, view := range g.viewPriority {
		emit(view)
	}
	// Any recognized views outside the priority list keep recognition order
	for _, view := range ps.GroupOrder {
		emit(view)
	}
	return out
}

// groupFlat passes the single group through unchanged
func (g *Grouper) groupFlat(ps *domain.ProductStructure) *GroupedProduct {
	out := &GroupedProduct{}
	for _, group := range ps.GroupOrder {
		for _, asset := range ps.Groups[group] {
			out.Images = append(out.Images, ImageRef{
				Path:   asset.PathOrID,
				IsBack: strings.Contains(strings.ToLower(asset.PathOrID), "back"),
			})
		}
	}
	return out
}
