package usecase

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ogarmory/backend/internal/domain"
)

// Badge-rule table defaults; overridable through the rule table
const (
	defaultBudgetPriceCeiling = 999
	defaultBudgetBadge        = "UNDER ₹999"
	defaultMultiColorBadge    = "MULTI-COLOR"
)

// badgeRule is one declarative predicate → badge entry. Rules evaluate in
// fixed order so badge output is reproducible.
type badgeRule struct {
	applies func(p *domain.CanonicalProduct) bool
	badge   string
}

// Synthesizer assembles classifier, grouper and orderer outputs into the
// final canonical product record.
type Synthesizer struct {
	grouper    *Grouper
	orderer    *Orderer
	rules      domain.RuleTable
	badgeRules []badgeRule
}

// NewSynthesizer creates a synthesizer over a rule table. Zero-valued
// global rule fields fall back to the defaults.
func NewSynthesizer(grouper *Grouper, orderer *Orderer, rules domain.RuleTable) *Synthesizer {
	if rules.BudgetPriceCeiling <= 0 {
		rules.BudgetPriceCeiling = defaultBudgetPriceCeiling
	}
	if rules.BudgetBadge == "" {
		rules.BudgetBadge = defaultBudgetBadge
	}
	if rules.MultiColorBadge == "" {
		rules.MultiColorBadge = defaultMultiColorBadge
	}

	s := &Synthesizer{
		grouper: grouper,
		orderer: orderer,
		rules:   rules,
	}
	s.badgeRules = []badgeRule{
		{applies: func(p *domain.CanonicalProduct) bool { return p.Price <= s.rules.BudgetPriceCeiling }, badge: s.rules.BudgetBadge},
		{applies: func(p *domain.CanonicalProduct) bool { return len(p.Colors) > 1 }, badge: s.rules.MultiColorBadge},
	}
	return s
}

// Synthesize builds the CanonicalProduct for one classified structure.
// An unknown category is fatal for this product only; the caller collects
// the error and continues the batch.
func (s *Synthesizer) Synthesize(ps *domain.ProductStructure, category string) (*domain.CanonicalProduct, []domain.Warning, error) {
	rule, ok := s.rules.Categories[category]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q (product %s)", domain.ErrUnknownCategory, category, ps.ProductKey)
	}

	grouped := s.grouper.Group(ps)
	display := s.orderer.Order(grouped.Images)
	name := displayName(ps.ProductKey)

	product := &domain.CanonicalProduct{
		Key:           ps.ProductKey,
		Title:         strings.TrimSpace(name + " " + rule.TitleSuffix),
		Category:      category,
		Price:         rule.BasePrice,
		OriginalPrice: rule.BasePrice + rule.Markup,
		Colors:        grouped.Colors,
		Variants:      grouped.Variants,
		Display:       display,
		Description:   strings.ReplaceAll(rule.Description, "{name}", name),
		Tags:          rule.Tags,
		Vendor:        rule.Vendor,
		Sizes:         rule.Sizes,
		IsVisible:     true,
	}

	for _, br := range s.badgeRules {
		if br.applies(product) {
			product.Badges = append(product.Badges, br.badge)
		}
	}
	product.Badges = unionOrdered(product.Badges, rule.Badges)

	var warnings []domain.Warning
	if len(display.Sequence) == 0 {
		// An invisible zero-image product is a silent catalog defect
		// unless reported
		product.IsVisible = false
		warnings = append(warnings, domain.Warning{
			Code:       domain.WarnEmptyProduct,
			ProductKey: ps.ProductKey,
			Detail:     "product has no eligible display images, forcing invisible",
		})
	}

	return product, warnings, nil
}

// displayName turns a product key into a display name: underscores and
// hyphens become spaces, each word is title-cased.
func displayName(key string) string {
	cleaned := strings.ReplaceAll(key, "_", " ")
	cleaned = strings.ReplaceAll(cleaned, "-", " ")

	words := strings.Fields(cleaned)
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
