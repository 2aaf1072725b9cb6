// Package profile resolves a shopping intent into a per-dimension weight
// vector plus the active hard-constraint set.
package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/ensemble/internal/domain/model"
)

// Default resolver configuration constants.
const (
	defaultCohesionBonusCap = 20

	defaultPriceTarget     = 18
	defaultColorTarget     = 17
	defaultMaterialTarget  = 15
	defaultFormalityTarget = 17
)

// defaultBaseline returns the baseline weight vector documented by domain
// analysis. Price starts at zero; the budget rule raises it.
func defaultBaseline() map[string]float64 {
	return map[string]float64{
		model.DimOccasion:    22,
		model.DimCategory:    20,
		model.DimFormality:   12,
		model.DimStyle:       12,
		model.DimColor:       10,
		model.DimMaterial:    8,
		model.DimSeasonality: 6,
		model.DimPopularity:  6,
		model.DimRecency:     4,
		model.DimPrice:       0,
	}
}

// Option applies a configuration option to the Resolver.
type Option func(*Resolver)

// WithBaselineWeights replaces the baseline weight vector.
func WithBaselineWeights(weights map[string]float64) Option {
	return func(r *Resolver) {
		if len(weights) == 0 {
			return
		}
		r.baseline = make(map[string]float64, len(weights))
		for dim, w := range weights {
			r.baseline[dim] = w
		}
	}
}

// WithCohesionBonusCap sets the outfit-level cohesion bonus cap carried on
// resolved profiles.
func WithCohesionBonusCap(cap float64) Option {
	return func(r *Resolver) {
		r.cohesionCap = cap
	}
}

// WithRuleTargets sets the weights the adaptive rules raise their
// dimensions to.
func WithRuleTargets(price, color, material, formality float64) Option {
	return func(r *Resolver) {
		if price > 0 {
			r.priceTarget = price
		}
		if color > 0 {
			r.colorTarget = color
		}
		if material > 0 {
			r.materialTarget = material
		}
		if formality > 0 {
			r.formalityTarget = formality
		}
	}
}

// Resolver maps intents to weight profiles. Resolution is deterministic:
// the same intent always yields the same profile.
type Resolver struct {
	baseline    map[string]float64
	cohesionCap float64

	priceTarget     float64
	colorTarget     float64
	materialTarget  float64
	formalityTarget float64

	rules []rule
}

// NewResolver creates a resolver with configuration options. It fails fast
// on malformed configuration: negative weights or a negative bonus cap.
func NewResolver(opts ...Option) (*Resolver, error) {
	r := &Resolver{
		baseline:        defaultBaseline(),
		cohesionCap:     defaultCohesionBonusCap,
		priceTarget:     defaultPriceTarget,
		colorTarget:     defaultColorTarget,
		materialTarget:  defaultMaterialTarget,
		formalityTarget: defaultFormalityTarget,
	}

	for _, opt := range opts {
		opt(r)
	}

	for dim, w := range r.baseline {
		if w < 0 {
			return nil, fmt.Errorf("%w: baseline weight for %q is negative", ErrInvalidProfile, dim)
		}
	}
	if r.cohesionCap < 0 {
		return nil, fmt.Errorf("%w: cohesion bonus cap is negative", ErrInvalidProfile)
	}

	r.rules = buildRules(r)
	return r, nil
}

// Resolve derives the weight profile and hard-constraint set for an intent.
func (r *Resolver) Resolve(ctx context.Context, intent model.Intent) (model.WeightProfile, error) {
	select {
	case <-ctx.Done():
		return model.WeightProfile{}, fmt.Errorf("resolve cancelled: %w", ctx.Err())
	default:
	}

	p := model.WeightProfile{
		Weights:          make(map[string]float64, len(r.baseline)),
		HardExclusions:   normalizeTerms(intent.HardExclusions),
		BudgetMax:        intent.BudgetMax,
		StrictBudget:     intent.StrictBudget,
		Size:             strings.TrimSpace(intent.Size),
		CohesionBonusCap: r.cohesionCap,
	}
	for dim, w := range r.baseline {
		p.Weights[dim] = w
	}

	fired := false
	for _, rl := range r.rules {
		if rl.trigger(intent) {
			rl.apply(&p, intent)
			fired = true
		}
	}
	if !fired {
		applyGeneralist(&p)
	}

	// Weights never go negative regardless of rule order.
	for dim, w := range p.Weights {
		if w < 0 {
			p.Weights[dim] = 0
		}
	}

	return p, nil
}

// applyGeneralist installs the generalist profile used when no strong
// signals are present.
func applyGeneralist(p *model.WeightProfile) {
	p.Weights[model.DimOccasion] = 18
	p.Weights[model.DimCategory] = 20
	p.Weights[model.DimStyle] = 14
	p.Weights[model.DimFormality] = 12
	p.Weights[model.DimPopularity] = 8
}

// raise lifts dim to target by drawing weight from donors in order. Donors
// floor at zero; if they run dry the dimension lands short of target rather
// than pushing any weight negative.
func raise(p *model.WeightProfile, dim string, target float64, donors ...string) {
	current := p.Weights[dim]
	if current >= target {
		return
	}
	needed := target - current
	for _, donor := range donors {
		if needed <= 0 {
			break
		}
		take := p.Weights[donor]
		if take <= 0 {
			continue
		}
		if take > needed {
			take = needed
		}
		p.Weights[donor] -= take
		p.Weights[dim] += take
		needed -= take
	}
}

// normalizeTerms lowercases and trims exclusion terms, dropping empties.
func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// DetectStrictBudget reports whether a raw budget phrase pins the budget as
// a hard constraint rather than a soft preference. Callers sitting between
// the intent parser and the engine use this to set Intent.StrictBudget.
func DetectStrictBudget(phrase string) bool {
	phrase = strings.ToLower(phrase)
	for _, kw := range []string{"max", "no more than", "at most", "under ", "strictly"} {
		if strings.Contains(phrase, kw) {
			return true
		}
	}
	return false
}
