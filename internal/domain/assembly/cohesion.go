package assembly

import (
	"strings"

	"github.com/okian/ensemble/internal/domain/model"
)

// neutralColors pair with anything without clashing.
var neutralColors = map[string]struct{}{
	"black": {},
	"white": {},
	"gray":  {},
	"grey":  {},
	"navy":  {},
	"beige": {},
	"cream": {},
	"denim": {},
	"tan":   {},
}

// cohesionBonus computes the outfit-level cohesion bonus: color harmony,
// style coherence, and occasion/formality consistency. Components are
// additive; the total is bounded by the profile's cap, not each component
// independently.
func (a *Assembler) cohesionBonus(items []model.Item, intent model.Intent, p model.WeightProfile) (float64, []model.ScoreLine) {
	var lines []model.ScoreLine
	var total float64

	if v := a.bonuses.ColorHarmony * colorHarmony(items, intent.Palette); v > 0 {
		lines = append(lines, model.ScoreLine{Name: "color_harmony", Value: v})
		total += v
	}
	if v := a.bonuses.StyleCoherence * attributeAgreement(items, model.DimStyle); v > 0 {
		lines = append(lines, model.ScoreLine{Name: "style_coherence", Value: v})
		total += v
	}
	if v := a.bonuses.FormalityConsistency * attributeAgreement(items, model.DimFormality); v > 0 {
		lines = append(lines, model.ScoreLine{Name: "formality_consistency", Value: v})
		total += v
	}

	if total > p.CohesionBonusCap {
		total = p.CohesionBonusCap
		lines = append(lines, model.ScoreLine{Name: "cohesion_cap", Value: p.CohesionBonusCap})
	}
	return total, lines
}

// applyPenalties computes the outfit-level penalty total and line items.
func (a *Assembler) applyPenalties(slots []slot, totalPrice float64, intent model.Intent, p model.WeightProfile) (float64, []model.ScoreLine) {
	var lines []model.ScoreLine
	var total float64

	items := make([]model.Item, len(slots))
	for i, s := range slots {
		items[i] = s.scored.Item
	}

	if hasColorClash(items, intent.Palette) {
		lines = append(lines, model.ScoreLine{Name: "color_clash", Value: a.penalties.ColorClash})
		total += a.penalties.ColorClash
	}

	switch {
	case intent.HasBudget() && !intent.StrictBudget && totalPrice > intent.BudgetMax:
		lines = append(lines, model.ScoreLine{Name: "over_budget", Value: a.penalties.SoftOverBudget})
		total += a.penalties.SoftOverBudget
	case !intent.HasBudget() && a.implicitCeiling > 0 && totalPrice > a.implicitCeiling:
		lines = append(lines, model.ScoreLine{Name: "implicit_over_budget", Value: a.penalties.ImplicitOverBudget})
		total += a.penalties.ImplicitOverBudget
	}

	if p.Weight(model.DimRecency) >= a.stalenessWeight && averageRecency(items) < 0.35 {
		lines = append(lines, model.ScoreLine{Name: "staleness", Value: a.penalties.Staleness})
		total += a.penalties.Staleness
	}

	if violatesComposition(slots) {
		lines = append(lines, model.ScoreLine{Name: "composition_violation", Value: a.penalties.CompositionViolation})
		total += a.penalties.CompositionViolation
	}

	return total, lines
}

// colorHarmony returns the fraction of item pairs whose colors agree: same
// color, either side neutral, or both inside the requested palette. Fewer
// than two colored items yields no bonus.
func colorHarmony(items []model.Item, palette []string) float64 {
	colors := collectColors(items)
	if len(colors) < 2 {
		return 0
	}
	pairs, harmonious := 0, 0
	for i := 0; i < len(colors); i++ {
		for j := i + 1; j < len(colors); j++ {
			pairs++
			if colorsAgree(colors[i], colors[j], palette) {
				harmonious++
			}
		}
	}
	return float64(harmonious) / float64(pairs)
}

// hasColorClash reports whether any pair of non-neutral colors disagrees.
func hasColorClash(items []model.Item, palette []string) bool {
	colors := collectColors(items)
	for i := 0; i < len(colors); i++ {
		for j := i + 1; j < len(colors); j++ {
			if !colorsAgree(colors[i], colors[j], palette) {
				return true
			}
		}
	}
	return false
}

func colorsAgree(a, b string, palette []string) bool {
	if a == b {
		return true
	}
	if _, ok := neutralColors[a]; ok {
		return true
	}
	if _, ok := neutralColors[b]; ok {
		return true
	}
	return inPalette(a, palette) && inPalette(b, palette)
}

func inPalette(color string, palette []string) bool {
	for _, p := range palette {
		if strings.EqualFold(strings.TrimSpace(p), color) {
			return true
		}
	}
	return false
}

func collectColors(items []model.Item) []string {
	var colors []string
	for _, it := range items {
		if c, ok := it.Attribute(model.DimColor); ok {
			colors = append(colors, strings.ToLower(strings.TrimSpace(c)))
		}
	}
	return colors
}

// attributeAgreement returns the fraction of attributed items sharing the
// modal value for a dimension. Fewer than two attributed items yields zero.
func attributeAgreement(items []model.Item, dim string) float64 {
	counts := make(map[string]int)
	attributed := 0
	for _, it := range items {
		if v, ok := it.Attribute(dim); ok {
			counts[strings.ToLower(strings.TrimSpace(v))]++
			attributed++
		}
	}
	if attributed < 2 {
		return 0
	}
	modal := 0
	for _, n := range counts {
		if n > modal {
			modal = n
		}
	}
	if modal < 2 {
		return 0
	}
	return float64(modal) / float64(attributed)
}

// averageRecency averages the normalized recency across items.
func averageRecency(items []model.Item) float64 {
	if len(items) == 0 {
		return 0
	}
	var sum float64
	for _, it := range items {
		sum += it.Recency
	}
	return sum / float64(len(items))
}

// violatesComposition reports whether a single-slot role appears more than
// once. Assembly never generates such outfits; the check guards relaxed
// fallback paths and external callers.
func violatesComposition(slots []slot) bool {
	counts := make(map[model.Role]int)
	for _, s := range slots {
		counts[s.role]++
	}
	for role, n := range counts {
		if n > 1 && !role.MultiSlot() {
			return true
		}
	}
	return false
}
