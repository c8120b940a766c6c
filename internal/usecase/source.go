package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/ogarmory/backend/internal/domain"
)

// StaticSource is an in-memory AssetSource over pre-built listings, used
// by the HTTP delivery layer (listings arrive in the request payload) and
// by tests. Ordering follows the input slice, so calls are deterministic.
type StaticSource struct {
	keys     []string
	listings map[string]*domain.Listing
}

// NewStaticSource builds a static source from a listing slice
func NewStaticSource(listings []domain.Listing) *StaticSource {
	s := &StaticSource{
		keys:     make([]string, 0, len(listings)),
		listings: make(map[string]*domain.Listing, len(listings)),
	}
	for i := range listings {
		l := listings[i]
		if l.ChildOrder == nil {
			l.ChildOrder = childOrderFromMap(l.Children)
		}
		s.keys = append(s.keys, l.ProductKey)
		s.listings[l.ProductKey] = &l
	}
	return s
}

// ProductKeys returns the product keys in input order
func (s *StaticSource) ProductKeys(ctx context.Context) ([]string, error) {
	return s.keys, nil
}

// childOrderFromMap derives a deterministic child order when the caller
// supplied only the map (JSON objects carry no order)
func childOrderFromMap(children map[string][]string) []string {
	order := make([]string, 0, len(children))
	for name := range children {
		order = append(order, name)
	}
	sort.Strings(order)
	return order
}

// Listing returns the listing for one product key
func (s *StaticSource) Listing(ctx context.Context, productKey string) (*domain.Listing, error) {
	l, ok := s.listings[productKey]
	if !ok {
		return nil, fmt.Errorf("%w: unknown product key %q", domain.ErrInvalidListing, productKey)
	}
	return l, nil
}
