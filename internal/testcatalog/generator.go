// Package testcatalog generates synthetic catalogs and intents for the
// bench command and integration-style tests. Generation is deterministic
// for a fixed seed.
package testcatalog

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/okian/ensemble/internal/domain/model"
)

// Default generation constants.
const (
	defaultSeed    = 42
	minPrice       = 15
	maxPrice       = 400
	outOfStockRate = 0.08
	confidenceMin  = 0.3
)

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSeed sets the random seed for reproducible catalogs.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic seed for reproducible generation
	}
}

// Generator produces synthetic items and intents.
type Generator struct {
	rng *rand.Rand
}

// New creates a Generator with configuration options.
func New(opts ...Option) *Generator {
	g := &Generator{
		rng: rand.New(rand.NewSource(defaultSeed)), //nolint:gosec // deterministic seed for reproducible generation
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Items generates n catalog items cycling through the canonical roles so
// every role is populated.
func (g *Generator) Items(n int) []model.Item {
	roles := []model.Role{
		model.RoleTop, model.RoleBottom, model.RoleShoes,
		model.RoleOuter, model.RoleAccessory,
	}
	sizes := []string{"xs", "s", "m", "l", "xl"}

	items := make([]model.Item, 0, n)
	for i := 0; i < n; i++ {
		role := roles[i%len(roles)]

		id, err := uuid.NewRandomFromReader(g.rng)
		if err != nil {
			// rand.Rand never fails to read; keep the loop total anyway.
			continue
		}

		attrs := map[string]string{
			model.DimColor:     pick(g.rng, colors),
			model.DimMaterial:  pick(g.rng, materialsByRole[role]),
			model.DimStyle:     pick(g.rng, styles),
			model.DimOccasion:  pick(g.rng, occasions),
			model.DimFormality: pick(g.rng, formalities),
			model.DimCategory:  pick(g.rng, categoriesByRole[role]),
		}
		// Vision-derived attributes come with uneven confidence; drop some
		// attributes entirely to mirror sparse tagging. Dimensions are
		// visited in a fixed order so a seed always yields the same catalog.
		conf := make(map[string]float64)
		for _, dim := range []string{
			model.DimColor, model.DimMaterial, model.DimStyle,
			model.DimOccasion, model.DimFormality, model.DimCategory,
		} {
			switch g.rng.Intn(10) {
			case 0:
				delete(attrs, dim)
			case 1, 2:
				conf[dim] = confidenceMin + g.rng.Float64()*(1-confidenceMin)
			}
		}

		sizeSet := sizes[g.rng.Intn(2) : 2+g.rng.Intn(3)]

		items = append(items, model.Item{
			ID:                  id.String(),
			Role:                role,
			Price:               minPrice + g.rng.Float64()*(maxPrice-minPrice),
			InStock:             g.rng.Float64() > outOfStockRate,
			Sizes:               sizeSet,
			Attributes:          attrs,
			AttributeConfidence: conf,
			Popularity:          g.rng.Float64(),
			Recency:             g.rng.Float64(),
		})
	}
	return items
}

// Intent generates one plausible shopping intent.
func (g *Generator) Intent() model.Intent {
	in := model.Intent{}

	switch g.rng.Intn(4) {
	case 0:
		in.Activity = pick(g.rng, activities)
	case 1:
		in.Occasion = pick(g.rng, occasions)
	case 2:
		in.Occasion = pick(g.rng, occasions)
		in.Formality = model.FormalityElevated
	default:
		in.Activity = pick(g.rng, activities)
		in.Occasion = pick(g.rng, occasions)
	}

	if g.rng.Intn(2) == 0 {
		in.BudgetMax = float64(100 + g.rng.Intn(500))
		in.StrictBudget = g.rng.Intn(3) == 0
	}
	if g.rng.Intn(3) == 0 {
		in.Palette = []string{pick(g.rng, colors), pick(g.rng, colors)}
	}
	if g.rng.Intn(4) == 0 {
		in.HardExclusions = []string{pick(g.rng, exclusionTerms)}
	}
	if g.rng.Intn(2) == 0 {
		in.Size = pick(g.rng, []string{"s", "m", "l"})
	}

	return in
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}
