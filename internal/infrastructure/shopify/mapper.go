package shopify

import (
	"strconv"
	"strings"

	"github.com/ogarmory/backend/internal/domain"
)

// productsResponse represents the Admin API products listing payload
type productsResponse struct {
	Products []Product `json:"products"`
}

// Product is the Admin API product representation, trimmed to the
// fields the engine needs for matching and merging
type Product struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Handle      string    `json:"handle"`
	BodyHTML    string    `json:"body_html"`
	Vendor      string    `json:"vendor"`
	ProductType string    `json:"product_type"`
	Tags        string    `json:"tags"`
	Status      string    `json:"status"`
	Variants    []Variant `json:"variants"`
	Options     []Option  `json:"options"`
	Images      []Image   `json:"images"`
}

// Variant is one purchasable variant of a product
type Variant struct {
	Price          string `json:"price"`
	CompareAtPrice string `json:"compare_at_price"`
	Option1        string `json:"option1"`
}

// Option is a product option axis (Color, Size)
type Option struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Image is a product image record
type Image struct {
	Src string `json:"src"`
}

// MapToCanonical converts an Admin API product to our canonical model
func MapToCanonical(p *Product) domain.CanonicalProduct {
	product := domain.CanonicalProduct{
		Key:         p.Handle,
		Title:       p.Title,
		Category:    strings.ToLower(p.ProductType),
		Description: p.BodyHTML,
		Vendor:      p.Vendor,
		IsVisible:   p.Status == "active",
	}

	if p.Tags != "" {
		for _, tag := range strings.Split(p.Tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				product.Tags = append(product.Tags, tag)
			}
		}
	}

	for _, opt := range p.Options {
		switch strings.ToLower(opt.Name) {
		case "color":
			product.Colors = append(product.Colors, opt.Values...)
		case "size":
			product.Sizes = append(product.Sizes, opt.Values...)
		}
	}

	// Shopify reports one price per variant; the canonical price is the
	// cheapest, matching what the storefront shows
	for _, v := range p.Variants {
		price, err := strconv.ParseFloat(v.Price, 64)
		if err != nil {
			continue
		}
		if product.Price == 0 || price < product.Price {
			product.Price = price
		}
		if compare, err := strconv.ParseFloat(v.CompareAtPrice, 64); err == nil && compare > product.OriginalPrice {
			product.OriginalPrice = compare
		}
	}
	if product.OriginalPrice == 0 {
		product.OriginalPrice = product.Price
	}

	for _, img := range p.Images {
		product.Display.Sequence = append(product.Display.Sequence, img.Src)
	}
	if len(product.Display.Sequence) > 0 {
		product.Display.Primary = product.Display.Sequence[0]
	}
	if len(product.Display.Sequence) > 1 {
		product.Display.Hover = product.Display.Sequence[1]
	}

	return product
}

// nextPageURL extracts the rel="next" URL from a Link response header.
// Shopify paginates with cursor links of the form:
//
//	<https://shop.myshopify.com/admin/api/2024-01/products.json?page_info=abc>; rel="next"
func nextPageURL(linkHeader string) string {
	for _, part := range strings.Split(linkHeader, ",") {
		segments := strings.Split(part, ";")
		if len(segments) < 2 {
			continue
		}
		if !strings.Contains(segments[1], `rel="next"`) {
			continue
		}
		link := strings.TrimSpace(segments[0])
		return strings.TrimSuffix(strings.TrimPrefix(link, "<"), ">")
	}
	return ""
}
