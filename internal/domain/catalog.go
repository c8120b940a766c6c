package domain

// Shape describes how a product's raw assets are organized
type Shape string

const (
	// ShapeColorVariant means the product's subgroups are named by color
	ShapeColorVariant Shape = "color_variant"
	// ShapeViewVariant means the product's subgroups are named by viewing angle
	ShapeViewVariant Shape = "view_variant"
	// ShapeFlat means the product has no recognized subgrouping
	ShapeFlat Shape = "flat"
)

// RoleHint tags an asset with the kind of subgroup it was enumerated from
type RoleHint string

const (
	RoleColor RoleHint = "color"
	RoleView  RoleHint = "view"
	RoleNone  RoleHint = "none"
)

// AssetDescriptor is a single enumerated asset. Immutable once created.
type AssetDescriptor struct {
	PathOrID  string   `json:"pathOrId"`
	RoleHint  RoleHint `json:"roleHint"`
	RoleValue string   `json:"roleValue,omitempty"`
}

// ProductStructure is the classified shape of one product's raw input.
// Built once per product; read-only afterward. GroupOrder preserves the
// order in which group keys were recognized so downstream output is
// deterministic (Go map iteration is not).
type ProductStructure struct {
	ProductKey string                       `json:"productKey"`
	Shape      Shape                        `json:"shape"`
	GroupOrder []string                     `json:"groupOrder"`
	Groups     map[string][]AssetDescriptor `json:"groups"`
}

// ColorVariant is a per-color grouping of a product's images. BackImage
// and FrontImage may independently be empty when the corresponding asset
// was never supplied.
type ColorVariant struct {
	Color       string   `json:"color"`
	BackImage   string   `json:"backImage,omitempty"`
	FrontImage  string   `json:"frontImage,omitempty"`
	ExtraImages []string `json:"extraImages,omitempty"`
}

// DisplayImageSet holds the resolved primary/hover slots and the bounded
// display sequence. Derived data; recomputed on every synthesis.
type DisplayImageSet struct {
	Primary  string   `json:"primaryImage"`
	Hover    string   `json:"hoverImage"`
	Sequence []string `json:"images"`
}

// CanonicalProduct is the terminal, de-duplicated product record. Mutated
// only through full re-synthesis so derived fields stay consistent.
type CanonicalProduct struct {
	Key           string          `json:"key"`
	Title         string          `json:"title"`
	Category      string          `json:"category"`
	Price         float64         `json:"price"`
	OriginalPrice float64         `json:"originalPrice"`
	Colors        []string        `json:"colors"`
	Badges        []string        `json:"badges"`
	IsVisible     bool            `json:"isVisible"`
	Variants      []ColorVariant  `json:"colorVariants,omitempty"`
	Display       DisplayImageSet `json:"display"`
	Description   string          `json:"description,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
	Vendor        string          `json:"vendor,omitempty"`
	Sizes         []string        `json:"sizes,omitempty"`
}

// MatchCandidate is an ephemeral identity-resolution result
type MatchCandidate struct {
	IncomingKey string  `json:"incomingKey"`
	ExistingKey string  `json:"existingKey"`
	Score       float64 `json:"score"`
}

// Listing is the raw per-product enumeration an AssetSource hands the
// engine: the immediate child group names (with their leaf assets) plus
// any leaf assets sitting directly under the product itself.
type Listing struct {
	ProductKey string              `json:"key"`
	ChildOrder []string            `json:"childOrder,omitempty"`
	Children   map[string][]string `json:"children,omitempty"`
	Flat       []string            `json:"flat,omitempty"`
}

// WarningCode identifies a reportable, non-fatal condition
type WarningCode string

const (
	WarnStructureAmbiguous WarningCode = "structure_ambiguous"
	WarnEmptyProduct       WarningCode = "empty_product"
	WarnAmbiguousMatch     WarningCode = "ambiguous_match"
)

// Warning is a reportable condition attached to a single product
type Warning struct {
	Code       WarningCode `json:"code"`
	ProductKey string      `json:"productKey"`
	Detail     string      `json:"detail"`
	Candidates []string    `json:"candidates,omitempty"`
}
