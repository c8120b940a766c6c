package usecase

import (
	"log"
	"regexp"
	"strings"

	"github.com/ogarmory/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	punctuationRegex    = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex = regexp.MustCompile(`\s+`)
)

// DefaultMatchThreshold is the Jaccard score at or above which an
// incoming item is treated as the same logical product. Asset-naming
// conventions vary by data source, so the threshold stays tunable.
const DefaultMatchThreshold = 0.5

// defaultConnectorWords are low-signal tokens stripped before comparison
var defaultConnectorWords = []string{"og", "the", "rebel", "tee"}

// MatcherConfig holds configuration for the identity matcher
type MatcherConfig struct {
	Threshold          float64
	ConnectorWords     []string
	EnableDebugLogging bool
}

// Matcher reconciles incoming labels against an existing catalog using
// normalized-token fuzzy comparison.
type Matcher struct {
	threshold  float64
	connectors map[string]bool
	debug      bool
}

// NewMatcher creates a matcher with the given configuration
func NewMatcher(cfg MatcherConfig) *Matcher {
	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = DefaultMatchThreshold
	}

	words := cfg.ConnectorWords
	if len(words) == 0 {
		words = defaultConnectorWords
	}
	connectors := make(map[string]bool, len(words))
	for _, w := range words {
		connectors[strings.ToLower(w)] = true
	}

	return &Matcher{
		threshold:  threshold,
		connectors: connectors,
		debug:      cfg.EnableDebugLogging,
	}
}

// FindBestMatch scores the incoming label against every existing record.
// Jaccard similarity on normalized token sets decides; ties break on
// shorter edit distance over the full normalized strings. A tie that
// survives both criteria at or above the threshold is ambiguous: the tied
// candidates are returned so the caller can report them, and the match
// itself fails with ErrAmbiguousMatch (a wrong merge corrupts the
// catalog, so the engine never auto-merges on a tie).
func (m *Matcher) FindBestMatch(
	incomingKey, label string,
	existing []domain.CanonicalProduct,
) (*domain.MatchCandidate, []domain.MatchCandidate, error) {
	if label == "" {
		return nil, nil, domain.ErrInvalidRequest
	}
	if len(existing) == 0 {
		return nil, nil, domain.ErrNoMatch
	}

	normIn := m.normalize(label)
	tokensIn := strings.Fields(normIn)

	var (
		best     *domain.MatchCandidate
		bestDist int
		tied     []domain.MatchCandidate
	)

	for _, record := range existing {
		normEx := m.normalize(record.Title)
		score := jaccard(tokensIn, strings.Fields(normEx))
		dist := levenshteinDistance(normIn, normEx)

		if m.debug {
			log.Printf("[MATCH] %q vs %q: score=%.2f dist=%d", label, record.Title, score, dist)
		}

		candidate := domain.MatchCandidate{
			IncomingKey: incomingKey,
			ExistingKey: record.Key,
			Score:       score,
		}

		switch {
		case best == nil || score > best.Score:
			best = &candidate
			bestDist = dist
			tied = nil
		case score == best.Score && dist < bestDist:
			// Prefer the more literal match
			best = &candidate
			bestDist = dist
			tied = nil
		case score == best.Score && dist == bestDist:
			tied = append(tied, candidate)
		}
	}

	if best.Score < m.threshold {
		return nil, nil, domain.ErrNoMatch
	}
	if len(tied) > 0 {
		return nil, append([]domain.MatchCandidate{*best}, tied...), domain.ErrAmbiguousMatch
	}

	return best, nil, nil
}

// Merge augments an existing record with an incoming one: new images and
// fields fill gaps, populated fields are never overwritten with empty
// ones, and derived display data is recomputed only through synthesis.
func Merge(existing, incoming domain.CanonicalProduct) domain.CanonicalProduct {
	merged := existing

	if merged.Title == "" {
		merged.Title = incoming.Title
	}
	if merged.Category == "" {
		merged.Category = incoming.Category
	}
	if merged.Price == 0 {
		merged.Price = incoming.Price
	}
	if merged.OriginalPrice == 0 {
		merged.OriginalPrice = incoming.OriginalPrice
	}
	if merged.Description == "" {
		merged.Description = incoming.Description
	}
	if merged.Vendor == "" {
		merged.Vendor = incoming.Vendor
	}
	if len(merged.Sizes) == 0 {
		merged.Sizes = incoming.Sizes
	}

	merged.Colors = unionOrdered(merged.Colors, incoming.Colors)
	merged.Badges = unionOrdered(merged.Badges, incoming.Badges)
	merged.Tags = unionOrdered(merged.Tags, incoming.Tags)
	merged.Display.Sequence = unionOrdered(merged.Display.Sequence, incoming.Display.Sequence)
	if merged.Display.Primary == "" {
		merged.Display.Primary = incoming.Display.Primary
	}
	if merged.Display.Hover == "" {
		merged.Display.Hover = incoming.Display.Hover
	}

	merged.Variants = mergeVariants(merged.Variants, incoming.Variants)
	merged.IsVisible = merged.IsVisible || incoming.IsVisible

	return merged
}

// mergeVariants unions color variants by color, augmenting image slots
func mergeVariants(existing, incoming []domain.ColorVariant) []domain.ColorVariant {
	byColor := make(map[string]int, len(existing))
	merged := make([]domain.ColorVariant, len(existing))
	copy(merged, existing)
	for i, v := range merged {
		byColor[v.Color] = i
	}

	for _, in := range incoming {
		i, ok := byColor[in.Color]
		if !ok {
			byColor[in.Color] = len(merged)
			merged = append(merged, in)
			continue
		}
		if merged[i].BackImage == "" {
			merged[i].BackImage = in.BackImage
		}
		if merged[i].FrontImage == "" {
			merged[i].FrontImage = in.FrontImage
		}
		merged[i].ExtraImages = unionOrdered(merged[i].ExtraImages, in.ExtraImages)
	}
	return merged
}

// normalize lower-cases a label, strips punctuation and connector words,
// and collapses whitespace. Matching is symmetric: the same normalization
// applies to incoming labels and catalog titles.
func (m *Matcher) normalize(label string) string {
	lower := strings.ToLower(label)
	lower = strings.ReplaceAll(lower, "_", " ")
	lower = strings.ReplaceAll(lower, "-", " ")
	lower = punctuationRegex.ReplaceAllString(lower, " ")

	var kept []string
	for _, word := range strings.Fields(lower) {
		if m.connectors[word] {
			continue
		}
		kept = append(kept, word)
	}
	return strings.Join(kept, " ")
}

// jaccard computes |intersection| / |union| over two token slices
func jaccard(tokens1, tokens2 []string) float64 {
	if len(tokens1) == 0 && len(tokens2) == 0 {
		return 0
	}

	set := make(map[string]bool, len(tokens1))
	for _, t := range tokens1 {
		set[t] = true
	}

	union := make(map[string]bool, len(tokens1)+len(tokens2))
	for _, t := range tokens1 {
		union[t] = true
	}

	intersection := 0
	seen := make(map[string]bool, len(tokens2))
	for _, t := range tokens2 {
		union[t] = true
		if set[t] && !seen[t] {
			intersection++
			seen[t] = true
		}
	}

	return float64(intersection) / float64(len(union))
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	n := len(r2)

	// Two rows instead of the full matrix
	prev := make([]int, n+1)
	curr := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}

// unionOrdered appends items from extra that are not already present,
// preserving first-seen order
func unionOrdered(base, extra []string) []string {
	seen := make(map[string]bool, len(base))
	out := make([]string, 0, len(base)+len(extra))
	for _, s := range base {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	for _, s := range extra {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
