package s3store

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/ogarmory/backend/config"
	"github.com/ogarmory/backend/internal/domain"
)

// Source reads product listings from an S3-compatible bucket. Object
// keys follow the same layout as the filesystem source:
//
//	<prefix>/<product>/<file>          flat entry
//	<prefix>/<product>/<group>/<file>  grouped entry
//
// Keys nested deeper than the group level are ignored.
type Source struct {
	api    *minio.Client
	bucket string
	prefix string
}

var _ domain.AssetSource = (*Source)(nil)

// NewSource creates a bucket-backed asset source from config
func NewSource(cfg config.S3Config) (*Source, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("creating S3 client: %w", err)
	}

	prefix := cfg.Prefix
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	return &Source{api: client, bucket: cfg.Bucket, prefix: prefix}, nil
}

// ProductKeys lists the top-level "folders" under the prefix, sorted
func (s *Source) ProductKeys(ctx context.Context) ([]string, error) {
	opts := minio.ListObjectsOptions{
		Prefix:    s.prefix,
		Recursive: false,
	}

	var keys []string
	for obj := range s.api.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("%w: listing bucket %s: %v", domain.ErrInvalidListing, s.bucket, obj.Err)
		}
		if !strings.HasSuffix(obj.Key, "/") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(strings.TrimPrefix(obj.Key, s.prefix), "/"))
	}
	sort.Strings(keys)
	return keys, nil
}

// Listing builds the raw listing for one product prefix
func (s *Source) Listing(ctx context.Context, productKey string) (*domain.Listing, error) {
	productPrefix := s.prefix + productKey + "/"
	opts := minio.ListObjectsOptions{
		Prefix:    productPrefix,
		Recursive: true,
	}

	var keys []string
	for obj := range s.api.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("%w: listing %s: %v", domain.ErrInvalidListing, productPrefix, obj.Err)
		}
		if obj.Key == productPrefix {
			continue
		}
		keys = append(keys, strings.TrimPrefix(obj.Key, productPrefix))
	}

	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: prefix %q not found or empty", domain.ErrInvalidListing, productPrefix)
	}

	return listingFromKeys(productKey, keys), nil
}

// listingFromKeys assembles a listing from object keys relative to the
// product prefix. Keys with one path segment are flat entries, keys
// with two form grouped entries, deeper keys are skipped.
func listingFromKeys(productKey string, keys []string) *domain.Listing {
	listing := &domain.Listing{ProductKey: productKey}
	for _, key := range keys {
		if strings.HasSuffix(key, "/") {
			continue
		}
		parts := strings.Split(key, "/")
		switch len(parts) {
		case 1:
			listing.Flat = append(listing.Flat, parts[0])
		case 2:
			if listing.Children == nil {
				listing.Children = make(map[string][]string)
			}
			if _, seen := listing.Children[parts[0]]; !seen {
				listing.ChildOrder = append(listing.ChildOrder, parts[0])
			}
			listing.Children[parts[0]] = append(listing.Children[parts[0]], parts[1])
		}
	}

	sort.Strings(listing.ChildOrder)
	for _, names := range listing.Children {
		sort.Strings(names)
	}
	sort.Strings(listing.Flat)
	return listing
}
