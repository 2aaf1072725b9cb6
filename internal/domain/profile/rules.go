package profile

import (
	"strings"

	"github.com/okian/ensemble/internal/domain/model"
)

// rule is one declarative trigger -> adjustment pair. Rules are evaluated
// in order; each reallocates weight from low-priority dimensions to the
// triggered dimension.
type rule struct {
	name    string
	trigger func(model.Intent) bool
	apply   func(*model.WeightProfile, model.Intent)
}

// performanceActivities are activities where material properties dominate
// the purchase decision.
var performanceActivities = map[string]struct{}{
	"yoga":     {},
	"running":  {},
	"gym":      {},
	"training": {},
	"hiking":   {},
	"cycling":  {},
	"pilates":  {},
}

// formalOccasionKeywords mark occasions that behave like formal events even
// when the parser left formality unspecified.
var formalOccasionKeywords = []string{
	"wedding", "gala", "interview", "funeral", "ceremony", "black tie", "cocktail",
}

// buildRules assembles the ordered adaptive rule list for a resolver.
func buildRules(r *Resolver) []rule {
	return []rule{
		{
			name: "budget",
			trigger: func(in model.Intent) bool {
				return in.HasBudget()
			},
			apply: func(p *model.WeightProfile, _ model.Intent) {
				raise(p, model.DimPrice, r.priceTarget,
					model.DimRecency, model.DimPopularity, model.DimColor)
			},
		},
		{
			name: "palette",
			trigger: func(in model.Intent) bool {
				return len(in.Palette) > 0
			},
			apply: func(p *model.WeightProfile, _ model.Intent) {
				raise(p, model.DimColor, r.colorTarget,
					model.DimRecency, model.DimPopularity, model.DimSeasonality)
			},
		},
		{
			name: "performance-activity",
			trigger: func(in model.Intent) bool {
				_, ok := performanceActivities[strings.ToLower(strings.TrimSpace(in.Activity))]
				return ok
			},
			apply: func(p *model.WeightProfile, _ model.Intent) {
				raise(p, model.DimMaterial, r.materialTarget, model.DimRecency)
			},
		},
		{
			name: "formal-event",
			trigger: func(in model.Intent) bool {
				if in.Formality == model.FormalityElevated {
					return true
				}
				occ := strings.ToLower(in.Occasion)
				for _, kw := range formalOccasionKeywords {
					if strings.Contains(occ, kw) {
						return true
					}
				}
				return false
			},
			apply: func(p *model.WeightProfile, _ model.Intent) {
				raise(p, model.DimFormality, r.formalityTarget,
					model.DimRecency, model.DimPopularity)
				p.StyleBias = "elevated"
			},
		},
	}
}
