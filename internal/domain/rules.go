package domain

// CategoryRule carries the per-category synthesis data: pricing, naming
// template, and static badges. Category behavior lives here as data so
// adding a category is a rules change, not a code change.
type CategoryRule struct {
	BasePrice   float64  `yaml:"base_price" json:"basePrice"`
	Markup      float64  `yaml:"markup" json:"markup"`
	TitleSuffix string   `yaml:"title_suffix" json:"titleSuffix"`
	Description string   `yaml:"description" json:"description"`
	Badges      []string `yaml:"badges" json:"badges,omitempty"`
	Tags        []string `yaml:"tags" json:"tags,omitempty"`
	Vendor      string   `yaml:"vendor" json:"vendor,omitempty"`
	Sizes       []string `yaml:"sizes" json:"sizes,omitempty"`
}

// RuleTable is the full declarative badge/pricing configuration
type RuleTable struct {
	BudgetPriceCeiling float64                 `yaml:"budget_price_ceiling" json:"budgetPriceCeiling"`
	BudgetBadge        string                  `yaml:"budget_badge" json:"budgetBadge"`
	MultiColorBadge    string                  `yaml:"multi_color_badge" json:"multiColorBadge"`
	Categories         map[string]CategoryRule `yaml:"categories" json:"categories"`
}
