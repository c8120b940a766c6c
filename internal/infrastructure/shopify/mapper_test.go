package shopify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapToCanonical(t *testing.T) {
	p := &Product{
		ID:          42,
		Title:       "Abstract Geometry Rebel Tee",
		Handle:      "abstract-geometry",
		BodyHTML:    "<p>Rebel drop</p>",
		Vendor:      "DVV Entertainment",
		ProductType: "Teeshirt",
		Tags:        "rebel, drop ,",
		Status:      "active",
		Variants: []Variant{
			{Price: "1299.00", CompareAtPrice: "1599.00", Option1: "S"},
			{Price: "999.00", CompareAtPrice: "1299.00", Option1: "M"},
		},
		Options: []Option{
			{Name: "Size", Values: []string{"S", "M", "L"}},
			{Name: "Color", Values: []string{"Blue", "Black"}},
		},
		Images: []Image{
			{Src: "https://cdn.example/a.jpg"},
			{Src: "https://cdn.example/b.jpg"},
			{Src: "https://cdn.example/c.jpg"},
		},
	}

	product := MapToCanonical(p)

	assert.Equal(t, "abstract-geometry", product.Key)
	assert.Equal(t, "Abstract Geometry Rebel Tee", product.Title)
	assert.Equal(t, "teeshirt", product.Category)
	assert.Equal(t, "DVV Entertainment", product.Vendor)
	assert.Equal(t, []string{"rebel", "drop"}, product.Tags)
	assert.Equal(t, []string{"Blue", "Black"}, product.Colors)
	assert.Equal(t, []string{"S", "M", "L"}, product.Sizes)
	assert.Equal(t, 999.0, product.Price)
	assert.Equal(t, 1599.0, product.OriginalPrice)
	assert.True(t, product.IsVisible)
	assert.Equal(t, "https://cdn.example/a.jpg", product.Display.Primary)
	assert.Equal(t, "https://cdn.example/b.jpg", product.Display.Hover)
	assert.Len(t, product.Display.Sequence, 3)
}

func TestMapToCanonical_Draft(t *testing.T) {
	p := &Product{Handle: "unreleased", Status: "draft"}

	product := MapToCanonical(p)

	assert.False(t, product.IsVisible)
	assert.Empty(t, product.Display.Primary)
	assert.Zero(t, product.Price)
}

func TestMapToCanonical_CompareAtFallsBackToPrice(t *testing.T) {
	p := &Product{
		Handle:   "no-discount",
		Variants: []Variant{{Price: "499.00"}},
	}

	product := MapToCanonical(p)

	assert.Equal(t, 499.0, product.Price)
	assert.Equal(t, 499.0, product.OriginalPrice)
}

func TestNextPageURL(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected string
	}{
		{
			name:     "next only",
			header:   `<https://shop.myshopify.com/admin/api/2024-01/products.json?page_info=abc>; rel="next"`,
			expected: "https://shop.myshopify.com/admin/api/2024-01/products.json?page_info=abc",
		},
		{
			name:     "previous and next",
			header:   `<https://shop.myshopify.com/products.json?page_info=prev>; rel="previous", <https://shop.myshopify.com/products.json?page_info=next>; rel="next"`,
			expected: "https://shop.myshopify.com/products.json?page_info=next",
		},
		{
			name:     "previous only",
			header:   `<https://shop.myshopify.com/products.json?page_info=prev>; rel="previous"`,
			expected: "",
		},
		{
			name:     "empty header",
			header:   "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, nextPageURL(tt.header))
		})
	}
}
