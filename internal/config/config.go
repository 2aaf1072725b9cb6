// Package config defines engine configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Tuning constants live here, not hard-coded in domain packages, so
//   concurrent requests with different tuning profiles cannot interfere.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"fmt"
	"runtime"
)

// Fallback policy choices for roles with no surviving candidates.
const (
	FallbackOmitRole = "omit"  // leave the role out, flag the outfit partial
	FallbackRelax    = "relax" // retry the role without size/budget hard constraints
)

// Penalties holds the outfit-level penalty constants, expressed on the same
// 0-100 scale as item scores. Values are magnitudes; they are subtracted.
type Penalties struct {
	// ColorClash is applied when non-neutral item colors disagree.
	ColorClash float64 `koanf:"color_clash"`

	// SoftOverBudget is applied when an explicit, non-strict budget is
	// exceeded by the outfit total.
	SoftOverBudget float64 `koanf:"soft_over_budget"`

	// ImplicitOverBudget is applied when no budget was stated but the
	// outfit total exceeds ImplicitBudgetCeiling. Disabled when the
	// ceiling is zero.
	ImplicitOverBudget float64 `koanf:"implicit_over_budget"`

	// Staleness is applied when freshness matters (elevated recency
	// weight) and the outfit averages old items.
	Staleness float64 `koanf:"staleness"`

	// CompositionViolation is applied when an outfit duplicates a
	// single-slot role, a hard rule that should not survive assembly.
	CompositionViolation float64 `koanf:"composition_violation"`
}

// Bonuses holds the per-component cohesion bonus ceilings. The summed bonus
// is additionally capped by CohesionBonusCap.
type Bonuses struct {
	ColorHarmonyMax         float64 `koanf:"color_harmony_max"`
	StyleCoherenceMax       float64 `koanf:"style_coherence_max"`
	FormalityConsistencyMax float64 `koanf:"formality_consistency_max"`
}

// RuleTargets holds the adaptive weight targets each trigger raises its
// dimension to. Targets sit inside the bands documented by domain analysis.
type RuleTargets struct {
	Price     float64 `koanf:"price"`     // band 12-25
	Color     float64 `koanf:"color"`     // band 15-20
	Material  float64 `koanf:"material"`  // band 12-18
	Formality float64 `koanf:"formality"` // band 15-20
}

// Config contains engine configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// BaselineWeights is the starting per-dimension weight vector the
	// resolver adapts per intent.
	BaselineWeights map[string]float64 `koanf:"baseline_weights"`

	// RuleTargets tunes the adaptive reallocation rules.
	RuleTargets RuleTargets `koanf:"rule_targets"`

	// CohesionBonusCap bounds the total outfit-level cohesion bonus.
	CohesionBonusCap float64 `koanf:"cohesion_bonus_cap"`

	// Bonuses and Penalties tune outfit-level adjustments.
	Bonuses   Bonuses   `koanf:"bonuses"`
	Penalties Penalties `koanf:"penalties"`

	// TopMPerRole bounds the per-role candidates entering the cross
	// product. This is a resource-control decision, not an optimization.
	TopMPerRole int `koanf:"top_m_per_role"`

	// ResultCount is the number of ranked outfits returned (top-K).
	ResultCount int `koanf:"result_count"`

	// MaxAccessories caps items in the multi-slot accessory role.
	MaxAccessories int `koanf:"max_accessories"`

	// RequiredRoles lists the roles an outfit must cover; empty falls
	// back to top/bottom/shoes.
	RequiredRoles []string `koanf:"required_roles"`

	// RoleWeights weights per-item scores in the outfit sum.
	RoleWeights map[string]float64 `koanf:"role_weights"`

	// FallbackPolicy selects behavior for empty roles: omit or relax.
	FallbackPolicy string `koanf:"fallback_policy"`

	// HardBudgetMultiplier sets the hard price ceiling as a multiple of
	// budget_max when the budget is strict.
	HardBudgetMultiplier float64 `koanf:"hard_budget_multiplier"`

	// ImplicitBudgetCeiling triggers the implicit over-budget penalty
	// when no budget is stated. Zero disables it.
	ImplicitBudgetCeiling float64 `koanf:"implicit_budget_ceiling"`

	// StalenessRecencyWeight is the recency weight at or above which
	// freshness is considered to matter for the staleness penalty.
	StalenessRecencyWeight float64 `koanf:"staleness_recency_weight"`

	// Concurrency bounds the parallel item-scoring workers.
	Concurrency int `koanf:"concurrency"`

	// MetricsAddr is the listen address for the bench command's
	// Prometheus endpoint.
	MetricsAddr string `koanf:"metrics_addr"`
}

// New creates a Config with engine defaults.
func New() *Config {
	return &Config{
		LogLevel: "info",
		BaselineWeights: map[string]float64{
			"occasion":    22,
			"category":    20,
			"formality":   12,
			"style":       12,
			"color":       10,
			"material":    8,
			"seasonality": 6,
			"popularity":  6,
			"recency":     4,
			"price":       0,
		},
		RuleTargets: RuleTargets{
			Price:     18,
			Color:     17,
			Material:  15,
			Formality: 17,
		},
		CohesionBonusCap: 20,
		Bonuses: Bonuses{
			ColorHarmonyMax:         10,
			StyleCoherenceMax:       8,
			FormalityConsistencyMax: 8,
		},
		Penalties: Penalties{
			ColorClash:           4,
			SoftOverBudget:       3,
			ImplicitOverBudget:   2,
			Staleness:            3,
			CompositionViolation: 15,
		},
		TopMPerRole:    6,
		ResultCount:    5,
		MaxAccessories: 1,
		RequiredRoles:  []string{"top", "bottom", "shoes"},
		RoleWeights: map[string]float64{
			"top":          1.0,
			"bottom":       1.0,
			"shoes":        1.0,
			"outer":        0.8,
			"accessory":    0.5,
			"undergarment": 0.3,
		},
		FallbackPolicy:         FallbackOmitRole,
		HardBudgetMultiplier:   1.0,
		ImplicitBudgetCeiling:  0,
		StalenessRecencyWeight: 8,
		Concurrency:            runtime.NumCPU() * 2,
		MetricsAddr:            ":9090",
	}
}

// Validate checks the config for values the engine must fail fast on.
func (c *Config) Validate() error {
	for dim, w := range c.BaselineWeights {
		if w < 0 {
			return fmt.Errorf("%w: baseline weight for %q is negative", ErrInvalidConfig, dim)
		}
	}
	if c.CohesionBonusCap < 0 {
		return fmt.Errorf("%w: cohesion_bonus_cap is negative", ErrInvalidConfig)
	}
	if c.TopMPerRole < 1 {
		return fmt.Errorf("%w: top_m_per_role must be at least 1", ErrInvalidConfig)
	}
	if c.ResultCount < 0 {
		return fmt.Errorf("%w: result_count is negative", ErrInvalidConfig)
	}
	if c.MaxAccessories < 0 {
		return fmt.Errorf("%w: max_accessories is negative", ErrInvalidConfig)
	}
	switch c.FallbackPolicy {
	case FallbackOmitRole, FallbackRelax:
	default:
		return fmt.Errorf("%w: unknown fallback_policy %q", ErrInvalidConfig, c.FallbackPolicy)
	}
	if c.HardBudgetMultiplier < 1 {
		return fmt.Errorf("%w: hard_budget_multiplier must be at least 1", ErrInvalidConfig)
	}
	return nil
}
