package domain

import "errors"

var (
	// ErrInvalidListing is returned when an asset source cannot enumerate at all
	ErrInvalidListing = errors.New("asset source cannot enumerate listing")

	// ErrUnknownCategory is returned when a product's category has no rules entry
	ErrUnknownCategory = errors.New("no rules entry for category")

	// ErrNoMatch is returned when no existing record scores above the threshold
	ErrNoMatch = errors.New("no match above threshold")

	// ErrAmbiguousMatch is returned when two candidates tie above the threshold
	ErrAmbiguousMatch = errors.New("ambiguous match between candidates")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrUpstreamAPIFailure is returned when an upstream catalog request fails
	ErrUpstreamAPIFailure = errors.New("upstream catalog request failed")

	// ErrCatalogNotFound is returned when the upstream holds no products
	ErrCatalogNotFound = errors.New("no products found in upstream catalog")

	// ErrSnapshotMiss is returned when no catalog snapshot is available
	ErrSnapshotMiss = errors.New("catalog snapshot miss")
)
