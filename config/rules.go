package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ogarmory/backend/internal/domain"
)

// LoadRules reads a category rule table from a YAML file. An empty path
// returns the built-in default table.
func LoadRules(path string) (domain.RuleTable, error) {
	if path == "" {
		return DefaultRules(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.RuleTable{}, fmt.Errorf("reading rules file: %w", err)
	}

	var rules domain.RuleTable
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return domain.RuleTable{}, fmt.Errorf("parsing rules file %s: %w", path, err)
	}

	if err := validateRules(rules); err != nil {
		return domain.RuleTable{}, fmt.Errorf("invalid rules file %s: %w", path, err)
	}
	return rules, nil
}

// validateRules rejects tables that would fail every synthesis
func validateRules(rules domain.RuleTable) error {
	if len(rules.Categories) == 0 {
		return fmt.Errorf("no categories defined")
	}
	for name, rule := range rules.Categories {
		if rule.BasePrice <= 0 {
			return fmt.Errorf("category %q has no base price", name)
		}
	}
	return nil
}

// DefaultRules is the built-in category table for the OG merch drop
func DefaultRules() domain.RuleTable {
	return domain.RuleTable{
		BudgetPriceCeiling: 999,
		BudgetBadge:        "UNDER ₹999",
		MultiColorBadge:    "MULTI-COLOR",
		Categories: map[string]domain.CategoryRule{
			"teeshirt": {
				BasePrice:   899,
				Markup:      300,
				TitleSuffix: "Rebel Tee",
				Description: "{name} rebel tee. Theater-grade print quality. Built for the tribe.",
				Badges:      []string{"REBEL DROP"},
				Tags:        []string{"og", "rebel", "tshirt", "cotton"},
				Vendor:      "DVV Entertainment",
				Sizes:       []string{"XS", "S", "M", "L", "XL", "XXL"},
			},
			"hoodies": {
				BasePrice:   2499,
				Markup:      500,
				TitleSuffix: "Hoodie",
				Description: "{name} hoodie. Armor for midnight battles.",
				Badges:      []string{"PREDATOR DROP", "PREMIUM"},
				Tags:        []string{"og", "hoodie", "premium"},
				Vendor:      "DVV Entertainment",
				Sizes:       []string{"XS", "S", "M", "L", "XL", "XXL"},
			},
			"posters": {
				BasePrice:   399,
				Markup:      100,
				TitleSuffix: "Poster",
				Description: "{name} poster. Museum-quality print.",
				Badges:      []string{"ARSENAL"},
				Tags:        []string{"og", "poster", "art"},
				Vendor:      "DVV Entertainment",
			},
			"accessories": {
				BasePrice:   799,
				Markup:      200,
				TitleSuffix: "Gear",
				Description: "{name}. Essential gear for every rebel.",
				Badges:      []string{"ARSENAL"},
				Tags:        []string{"og", "accessories"},
				Vendor:      "DVV Entertainment",
				Sizes:       []string{"ONE SIZE"},
			},
		},
	}
}
