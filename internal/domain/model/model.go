// Package model contains domain models passed between engine stages.
package model

import "strings"

// Role is the canonical wardrobe slot an item occupies. It is fixed at
// catalog time; the engine never reassigns it.
type Role string

// Canonical roles.
const (
	RoleTop          Role = "top"
	RoleBottom       Role = "bottom"
	RoleShoes        Role = "shoes"
	RoleOuter        Role = "outer"
	RoleAccessory    Role = "accessory"
	RoleUndergarment Role = "undergarment"
)

// Valid reports whether r is one of the canonical roles.
func (r Role) Valid() bool {
	switch r {
	case RoleTop, RoleBottom, RoleShoes, RoleOuter, RoleAccessory, RoleUndergarment:
		return true
	}
	return false
}

// MultiSlot reports whether a role may hold more than one item per outfit.
func (r Role) MultiSlot() bool {
	return r == RoleAccessory
}

// DefaultRequiredRoles are the roles an outfit is expected to cover unless
// configured otherwise. Outer and accessory are optional extras.
func DefaultRequiredRoles() []Role {
	return []Role{RoleTop, RoleBottom, RoleShoes}
}

// Formality levels recognized in intents and item attributes.
type Formality string

const (
	FormalityCasual      Formality = "casual"
	FormalityElevated    Formality = "elevated"
	FormalityAthleisure  Formality = "athleisure"
	FormalityUnspecified Formality = ""
)

// Scored dimension names. Weight profiles, item attributes, and score
// breakdowns all key on these.
const (
	DimOccasion    = "occasion"
	DimCategory    = "category"
	DimFormality   = "formality"
	DimStyle       = "style"
	DimColor       = "color"
	DimMaterial    = "material"
	DimSeasonality = "seasonality"
	DimPopularity  = "popularity"
	DimRecency     = "recency"
	DimPrice       = "price"
)

// Dimensions lists every scored dimension in a stable order.
func Dimensions() []string {
	return []string{
		DimOccasion, DimCategory, DimFormality, DimStyle, DimColor,
		DimMaterial, DimSeasonality, DimPopularity, DimRecency, DimPrice,
	}
}

// Intent is the structured output of upstream natural-language parsing.
// It is immutable once built; the engine only reads it.
type Intent struct {
	Activity       string    `json:"activity,omitempty"`
	Occasion       string    `json:"occasion,omitempty"`
	BudgetMax      float64   `json:"budget_max,omitempty"` // 0 means no budget stated
	StrictBudget   bool      `json:"strict_budget,omitempty"`
	Objectives     []string  `json:"objectives,omitempty"`
	Palette        []string  `json:"palette,omitempty"` // ordered, most preferred first
	Formality      Formality `json:"formality,omitempty"`
	Size           string    `json:"size,omitempty"`
	HardExclusions []string  `json:"hard_exclusions,omitempty"`
}

// HasBudget reports whether the shopper stated a spending ceiling.
func (in Intent) HasBudget() bool { return in.BudgetMax > 0 }

// Excludes reports whether the given attribute value hits a hard exclusion.
// Matching is case-insensitive and substring based, so "full-grain leather"
// is caught by an exclusion of "leather".
func (in Intent) Excludes(value string) bool {
	v := strings.ToLower(value)
	for _, ex := range in.HardExclusions {
		ex = strings.ToLower(strings.TrimSpace(ex))
		if ex != "" && strings.Contains(v, ex) {
			return true
		}
	}
	return false
}

// Item is a catalog entry. Immutable per request; sourced externally.
type Item struct {
	ID                  string             `json:"id"`
	Role                Role               `json:"role"`
	Price               float64            `json:"price"`
	InStock             bool               `json:"in_stock"`
	Sizes               []string           `json:"sizes,omitempty"`
	Attributes          map[string]string  `json:"attributes,omitempty"`
	AttributeConfidence map[string]float64 `json:"attribute_confidence,omitempty"`
	Popularity          float64            `json:"popularity"` // normalized [0,1]
	Recency             float64            `json:"recency"`    // normalized [0,1], newer = higher
}

// Attribute returns the item's value for a dimension and whether it is set.
func (it Item) Attribute(dim string) (string, bool) {
	v, ok := it.Attributes[dim]
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// Confidence returns the extraction confidence for a dimension. When the
// attribute is present but carries no confidence entry, full confidence is
// assumed.
func (it Item) Confidence(dim string) float64 {
	if c, ok := it.AttributeConfidence[dim]; ok {
		if c < 0 {
			return 0
		}
		if c > 1 {
			return 1
		}
		return c
	}
	return 1.0
}

// HasSize reports whether the item is offered in the requested size.
// An empty request matches any item.
func (it Item) HasSize(size string) bool {
	if size == "" {
		return true
	}
	for _, s := range it.Sizes {
		if strings.EqualFold(s, size) {
			return true
		}
	}
	return false
}

// WeightProfile is the per-request weight vector plus the hard-constraint
// set derived from an Intent. Weights are non-negative and need not sum to
// any fixed total; the scorer normalizes by the weights actually applied.
type WeightProfile struct {
	Weights map[string]float64

	// Hard constraints. Availability is always required and therefore not
	// represented; it is never weighted.
	HardExclusions []string
	BudgetMax      float64
	StrictBudget   bool
	Size           string

	// StyleBias overrides the style signal when an adaptive rule fires,
	// e.g. formal events bias style toward "elevated".
	StyleBias string

	// CohesionBonusCap bounds the total outfit-level cohesion bonus,
	// expressed on the same 0-100 scale as item scores.
	CohesionBonusCap float64
}

// Weight returns the weight for a dimension, zero when unset.
func (p WeightProfile) Weight(dim string) float64 { return p.Weights[dim] }

// DimensionScore records one dimension's contribution to an item score.
type DimensionScore struct {
	Dimension    string  `json:"dimension"`
	Raw          float64 `json:"raw"`        // normalized match value in [0,1]
	Confidence   float64 `json:"confidence"` // extraction confidence applied
	Weight       float64 `json:"weight"`     // profile weight applied
	Contribution float64 `json:"contribution"`
}

// ItemScore is the scored view of a single candidate item.
type ItemScore struct {
	ItemID     string           `json:"item_id"`
	Score      float64          `json:"score"` // [0,100]
	Dimensions []DimensionScore `json:"dimensions"`
}

// ScoredItem pairs an item with its score breakdown.
type ScoredItem struct {
	Item  Item      `json:"item"`
	Score ItemScore `json:"score"`
}

// ScoreLine is a named bonus or penalty applied at the outfit level.
type ScoreLine struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// OutfitBreakdown explains how an outfit's total score was produced.
type OutfitBreakdown struct {
	ItemScores    []ItemScore `json:"item_scores"`
	BaseScore     float64     `json:"base_score"`     // role-weighted item score average
	CohesionBonus float64     `json:"cohesion_bonus"` // after cap
	Bonuses       []ScoreLine `json:"bonuses"`
	Penalties     []ScoreLine `json:"penalties"`
}

// Slot binds one item to the role it fills within an outfit.
type Slot struct {
	Role Role `json:"role"`
	Item Item `json:"item"`
}

// OutfitCandidate is a complete (or fallback-partial) outfit with its score.
type OutfitCandidate struct {
	Slots        []Slot          `json:"slots"` // stable role order, accessories last
	Score        float64         `json:"score"` // >= 0 after penalty clipping
	TotalPrice   float64         `json:"total_price"`
	Partial      bool            `json:"partial,omitempty"`
	MissingRoles []Role          `json:"missing_roles,omitempty"`
	Breakdown    OutfitBreakdown `json:"breakdown"`
}

// Items returns the outfit's items in slot order.
func (o OutfitCandidate) Items() []Item {
	items := make([]Item, len(o.Slots))
	for i, s := range o.Slots {
		items[i] = s.Item
	}
	return items
}

// MinItemScore returns the weakest per-item score, used for tie-breaking.
func (o OutfitCandidate) MinItemScore() float64 {
	if len(o.Breakdown.ItemScores) == 0 {
		return 0
	}
	min := o.Breakdown.ItemScores[0].Score
	for _, s := range o.Breakdown.ItemScores[1:] {
		if s.Score < min {
			min = s.Score
		}
	}
	return min
}

// FallbackNotice surfaces a degraded-but-valid output path to the caller.
type FallbackNotice struct {
	Role   Role   `json:"role,omitempty"`
	Reason string `json:"reason"`
}

// RankedResult is the engine's final output: outfits ordered best first,
// the resolved profile, and any fallback notices. Sparse inventory yields
// an empty result with notices, never an error.
type RankedResult struct {
	Outfits         []OutfitCandidate `json:"outfits"`
	Profile         WeightProfile     `json:"profile"`
	FallbackNotices []FallbackNotice  `json:"fallback_notices,omitempty"`
}

// Empty reports whether no outfit could be assembled.
func (r RankedResult) Empty() bool { return len(r.Outfits) == 0 }
