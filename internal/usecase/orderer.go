package usecase

import (
	"strings"

	"github.com/ogarmory/backend/internal/domain"
)

// DefaultMaxDisplayImages is the display-sequence policy ceiling
const DefaultMaxDisplayImages = 7

// Orderer applies the back-before-front ordering policy, producing the
// primary and hover slots plus the bounded display sequence.
type Orderer struct {
	maxImages int
}

// NewOrderer creates an orderer with the given sequence ceiling
func NewOrderer(maxImages int) *Orderer {
	if maxImages <= 0 {
		maxImages = DefaultMaxDisplayImages
	}
	return &Orderer{maxImages: maxImages}
}

// Order resolves the display set for an ordered image list:
//   - primary is the first back-classified image, else the first overall
//   - sequence is the input order truncated to the ceiling
//   - hover is the first sequence entry that differs from primary
//
// Order is idempotent: re-running it on its own sequence yields the same
// display set.
func (o *Orderer) Order(images []ImageRef) domain.DisplayImageSet {
	set := domain.DisplayImageSet{Sequence: []string{}}
	if len(images) == 0 {
		return set
	}

	// Truncate first so the primary is always displayable; choosing it
	// from the full list would break idempotency when a back image falls
	// past the ceiling.
	display := images
	if len(display) > o.maxImages {
		display = display[:o.maxImages]
	}

	for _, img := range display {
		if img.IsBack {
			set.Primary = img.Path
			break
		}
	}
	if set.Primary == "" {
		set.Primary = display[0].Path
	}

	for _, img := range display {
		set.Sequence = append(set.Sequence, img.Path)
	}

	set.Hover = set.Primary
	for _, path := range set.Sequence {
		if path != set.Primary {
			set.Hover = path
			break
		}
	}
	return set
}

// RefsFromSequence rebuilds image refs from a bare path sequence,
// inferring the back signal from filenames. Used when re-ordering a
// previously emitted display sequence.
func RefsFromSequence(sequence []string) []ImageRef {
	refs := make([]ImageRef, 0, len(sequence))
	for _, path := range sequence {
		refs = append(refs, ImageRef{
			Path:   path,
			IsBack: strings.Contains(strings.ToLower(path), "back"),
		})
	}
	return refs
}
