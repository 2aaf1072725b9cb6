// Package scoring computes normalized, confidence-adjusted, weighted
// relevance scores for candidate items against a shopping intent.
package scoring

import (
	"math"
	"strings"

	"github.com/okian/ensemble/internal/domain/model"
)

// Default match value constants. Raw match values live in [0,1]: exact
// match scores full, partial/synonym overlap an intermediate value, and a
// both-sides-present mismatch a low one. Absence of an intent signal is
// neutral, never a penalty.
const (
	exactMatchValue     = 1.0
	defaultPartialMatch = 0.65
	defaultMismatch     = 0.1
	neutralMatch        = 0.5

	// paletteDecay reduces the color match per palette position, so the
	// shopper's first-listed color wins over later ones.
	paletteDecay      = 0.15
	paletteMatchFloor = 0.6

	// defaultPriceSlope shapes the budget sigmoid: price at budget is
	// neutral, cheaper tends to 1, pricier tends to 0.
	defaultPriceSlope = 6.0

	maxScoreValue = 100
)

// defaultActivityMaterials maps performance activities to the material
// terms that suit them. Matching is token based, so "stretch cotton" hits
// the yoga entry.
func defaultActivityMaterials() map[string]string {
	return map[string]string{
		"yoga":     "stretch spandex lycra jersey elastane",
		"pilates":  "stretch spandex lycra elastane",
		"running":  "mesh polyester nylon technical",
		"gym":      "mesh polyester stretch spandex",
		"training": "mesh polyester stretch spandex",
		"hiking":   "nylon fleece wool ripstop",
		"cycling":  "lycra spandex polyester",
	}
}

// seasonTerms are recognized inside occasions and objectives as a
// seasonality signal.
var seasonTerms = []string{"summer", "winter", "spring", "fall", "autumn"}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithMatchValues sets the partial-match and mismatch raw values.
func WithMatchValues(partial, mismatch float64) Option {
	return func(s *Scorer) {
		if partial > 0 && partial < 1 {
			s.partialMatch = partial
		}
		if mismatch >= 0 && mismatch < 1 {
			s.mismatch = mismatch
		}
	}
}

// WithPriceSlope sets the steepness of the budget sigmoid.
func WithPriceSlope(slope float64) Option {
	return func(s *Scorer) {
		if slope > 0 {
			s.priceSlope = slope
		}
	}
}

// WithActivityMaterials replaces the activity -> preferred materials table.
func WithActivityMaterials(table map[string]string) Option {
	return func(s *Scorer) {
		if len(table) > 0 {
			s.activityMaterials = table
		}
	}
}

// Scorer computes per-item scores. Stateless after construction and safe
// for concurrent use.
type Scorer struct {
	partialMatch      float64
	mismatch          float64
	priceSlope        float64
	activityMaterials map[string]string
}

// New creates a Scorer with configuration options.
func New(opts ...Option) *Scorer {
	s := &Scorer{
		partialMatch:      defaultPartialMatch,
		mismatch:          defaultMismatch,
		priceSlope:        defaultPriceSlope,
		activityMaterials: defaultActivityMaterials(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score computes the normalized 0-100 score for one item, recording every
// dimension's raw value, confidence, weight, and contribution.
//
// Dimensions whose attribute is entirely absent on the item are excluded
// from the normalization denominator rather than penalized, keeping scores
// comparable across items with differing attribute coverage.
func (s *Scorer) Score(item model.Item, intent model.Intent, p model.WeightProfile) model.ItemScore {
	out := model.ItemScore{ItemID: item.ID}

	var sum, applied float64
	for _, dim := range model.Dimensions() {
		weight := p.Weight(dim)
		if weight <= 0 {
			continue
		}

		raw, conf, ok := s.dimension(dim, item, intent, p)
		if !ok {
			continue // attribute absent: weight leaves the denominator
		}

		contribution := raw * conf * weight
		sum += contribution
		applied += weight

		out.Dimensions = append(out.Dimensions, model.DimensionScore{
			Dimension:    dim,
			Raw:          raw,
			Confidence:   conf,
			Weight:       weight,
			Contribution: contribution,
		})
	}

	// An item with zero applicable dimensions is unrankable.
	if applied <= 0 {
		out.Score = 0
		return out
	}

	score := maxScoreValue * sum / applied
	out.Score = math.Max(0, math.Min(maxScoreValue, score))
	return out
}

// dimension computes one dimension's raw match value and confidence.
// ok=false means the dimension does not apply to this item at all.
func (s *Scorer) dimension(dim string, item model.Item, intent model.Intent, p model.WeightProfile) (raw, conf float64, ok bool) {
	switch dim {
	case model.DimPopularity:
		return clamp01(item.Popularity), 1, true
	case model.DimRecency:
		return clamp01(item.Recency), 1, true
	case model.DimPrice:
		if !intent.HasBudget() {
			return neutralMatch, 1, true
		}
		return s.priceMatch(item.Price, intent.BudgetMax), 1, true
	}

	value, present := item.Attribute(dim)
	if !present {
		return 0, 0, false
	}
	conf = item.Confidence(dim)

	signal := s.signal(dim, intent, p)
	if signal == "" {
		// No intent signal for this dimension: neutral, never penalized.
		return neutralMatch, conf, true
	}

	if dim == model.DimColor && len(intent.Palette) > 0 {
		return s.paletteMatch(intent.Palette, value), conf, true
	}
	return s.match(signal, value), conf, true
}

// signal extracts the intent-side comparison value for a dimension.
func (s *Scorer) signal(dim string, intent model.Intent, p model.WeightProfile) string {
	switch dim {
	case model.DimOccasion:
		return intent.Occasion
	case model.DimCategory:
		if intent.Activity != "" {
			return intent.Activity
		}
		return intent.Occasion
	case model.DimFormality:
		return string(intent.Formality)
	case model.DimStyle:
		if p.StyleBias != "" {
			return p.StyleBias
		}
		return strings.Join(intent.Objectives, " ")
	case model.DimColor:
		return strings.Join(intent.Palette, " ")
	case model.DimMaterial:
		return s.activityMaterials[strings.ToLower(strings.TrimSpace(intent.Activity))]
	case model.DimSeasonality:
		return seasonSignal(intent)
	}
	return ""
}

// match compares an intent signal against an item attribute value and
// returns a clipped match value: exact, token-overlap partial, or mismatch.
func (s *Scorer) match(signal, value string) float64 {
	signal = strings.ToLower(strings.TrimSpace(signal))
	value = strings.ToLower(strings.TrimSpace(value))
	if signal == value {
		return exactMatchValue
	}
	if tokensOverlap(signal, value) {
		return s.partialMatch
	}
	return s.mismatch
}

// paletteMatch scores a color against an ordered palette: earlier palette
// positions score higher, colors outside the palette score as mismatch.
func (s *Scorer) paletteMatch(palette []string, color string) float64 {
	for i, want := range palette {
		if strings.EqualFold(strings.TrimSpace(want), strings.TrimSpace(color)) || tokensOverlap(want, color) {
			v := exactMatchValue - paletteDecay*float64(i)
			if v < paletteMatchFloor {
				v = paletteMatchFloor
			}
			return v
		}
	}
	return s.mismatch
}

// priceMatch maps price against the budget through a sigmoid: at budget the
// value is 0.5, cheaper approaches 1, pricier approaches 0.
func (s *Scorer) priceMatch(price, budget float64) float64 {
	if budget <= 0 {
		return neutralMatch
	}
	x := (price - budget) / budget
	return clamp01(1 / (1 + math.Exp(s.priceSlope*x)))
}

// seasonSignal finds a season term in the occasion or objectives.
func seasonSignal(intent model.Intent) string {
	hay := strings.ToLower(intent.Occasion + " " + strings.Join(intent.Objectives, " "))
	for _, term := range seasonTerms {
		if strings.Contains(hay, term) {
			return term
		}
	}
	return ""
}

// tokensOverlap reports whether two phrases share any whitespace- or
// hyphen-separated token, treating containment either way as overlap.
func tokensOverlap(a, b string) bool {
	at := tokenize(a)
	bt := tokenize(b)
	for _, x := range at {
		for _, y := range bt {
			if x == y || strings.Contains(x, y) || strings.Contains(y, x) {
				return true
			}
		}
	}
	return false
}

func tokenize(s string) []string {
	s = strings.ToLower(s)
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == ',' || r == '/'
	})
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
