package fsstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ogarmory/backend/internal/domain"
)

// Source reads product listings from a local directory tree. Each
// immediate subdirectory of the root is one product; a subdirectory
// inside a product becomes a named child group, loose files become the
// flat entry list. Anything nested deeper than two levels is ignored.
type Source struct {
	root string
}

// Compile-time check that Source satisfies the engine contract
var _ domain.AssetSource = (*Source)(nil)

// NewSource creates a filesystem-backed asset source rooted at dir
func NewSource(dir string) *Source {
	return &Source{root: dir}
}

// ProductKeys lists the product directories under the root, sorted
func (s *Source) ProductKeys(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrInvalidListing, s.root, err)
	}

	var keys []string
	for _, entry := range entries {
		if entry.IsDir() {
			keys = append(keys, entry.Name())
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Listing builds the raw listing for one product directory
func (s *Source) Listing(ctx context.Context, productKey string) (*domain.Listing, error) {
	dir := filepath.Join(s.root, productKey)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrInvalidListing, dir, err)
	}

	listing := &domain.Listing{ProductKey: productKey}
	for _, entry := range entries {
		if !entry.IsDir() {
			listing.Flat = append(listing.Flat, entry.Name())
			continue
		}
		files, err := os.ReadDir(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrInvalidListing, filepath.Join(dir, entry.Name()), err)
		}
		var names []string
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			names = append(names, f.Name())
		}
		sort.Strings(names)
		if listing.Children == nil {
			listing.Children = make(map[string][]string)
		}
		listing.ChildOrder = append(listing.ChildOrder, entry.Name())
		listing.Children[entry.Name()] = names
	}
	sort.Strings(listing.ChildOrder)
	sort.Strings(listing.Flat)
	return listing, nil
}
