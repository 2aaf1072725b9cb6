// Package assembly combines scored items across roles into complete outfit
// candidates, applying outfit-level cohesion bonuses and penalties.
package assembly

import (
	"sort"

	"github.com/okian/ensemble/internal/domain/dedupe"
	"github.com/okian/ensemble/internal/domain/model"
)

// Default assembly configuration constants.
const (
	defaultTopM           = 6
	defaultMaxAccessories = 1

	// defaultStalenessRecencyWeight is the recency weight at or above
	// which freshness is considered to matter.
	defaultStalenessRecencyWeight = 8
)

// defaultRoleWeights weight per-item scores in the outfit sum. Core roles
// count fully; layers and extras count less.
func defaultRoleWeights() map[model.Role]float64 {
	return map[model.Role]float64{
		model.RoleTop:          1.0,
		model.RoleBottom:       1.0,
		model.RoleShoes:        1.0,
		model.RoleOuter:        0.8,
		model.RoleAccessory:    0.5,
		model.RoleUndergarment: 0.3,
	}
}

// BonusCaps holds the per-component cohesion bonus ceilings. The summed
// bonus is additionally bounded by the profile's CohesionBonusCap.
type BonusCaps struct {
	ColorHarmony         float64
	StyleCoherence       float64
	FormalityConsistency float64
}

// PenaltyValues holds the outfit-level penalty magnitudes.
type PenaltyValues struct {
	ColorClash           float64
	SoftOverBudget       float64
	ImplicitOverBudget   float64
	Staleness            float64
	CompositionViolation float64
}

// Option applies a configuration option to the Assembler.
type Option func(*Assembler)

// WithTopM bounds the per-role candidates entering the cross product.
// Bounding here is a deliberate resource-control decision: without it the
// combination count is the unbounded product of role pool sizes.
func WithTopM(m int) Option {
	return func(a *Assembler) {
		if m > 0 {
			a.topM = m
		}
	}
}

// WithMaxAccessories caps items in the multi-slot accessory role.
func WithMaxAccessories(n int) Option {
	return func(a *Assembler) {
		if n >= 0 {
			a.maxAccessories = n
		}
	}
}

// WithRequiredRoles sets the roles every outfit must try to cover.
func WithRequiredRoles(roles []model.Role) Option {
	return func(a *Assembler) {
		if len(roles) > 0 {
			a.requiredRoles = roles
		}
	}
}

// WithRoleWeights sets per-role weights for the outfit score sum.
func WithRoleWeights(weights map[model.Role]float64) Option {
	return func(a *Assembler) {
		if len(weights) == 0 {
			return
		}
		a.roleWeights = make(map[model.Role]float64, len(weights))
		for r, w := range weights {
			if w >= 0 {
				a.roleWeights[r] = w
			}
		}
	}
}

// WithBonusCaps sets the cohesion bonus component ceilings.
func WithBonusCaps(caps BonusCaps) Option {
	return func(a *Assembler) {
		a.bonuses = caps
	}
}

// WithPenalties sets the outfit-level penalty magnitudes.
func WithPenalties(p PenaltyValues) Option {
	return func(a *Assembler) {
		a.penalties = p
	}
}

// WithImplicitBudgetCeiling enables the implicit over-budget penalty when
// no budget was stated. Zero disables it.
func WithImplicitBudgetCeiling(ceiling float64) Option {
	return func(a *Assembler) {
		if ceiling >= 0 {
			a.implicitCeiling = ceiling
		}
	}
}

// WithStalenessRecencyWeight sets the recency weight threshold above which
// the staleness penalty applies.
func WithStalenessRecencyWeight(w float64) Option {
	return func(a *Assembler) {
		if w > 0 {
			a.stalenessWeight = w
		}
	}
}

// Assembler builds outfit candidates from scored role pools. Pure over its
// inputs; safe for concurrent use.
type Assembler struct {
	topM            int
	maxAccessories  int
	requiredRoles   []model.Role
	roleWeights     map[model.Role]float64
	bonuses         BonusCaps
	penalties       PenaltyValues
	implicitCeiling float64
	stalenessWeight float64
}

// New creates an Assembler with configuration options.
func New(opts ...Option) *Assembler {
	a := &Assembler{
		topM:           defaultTopM,
		maxAccessories: defaultMaxAccessories,
		requiredRoles:  model.DefaultRequiredRoles(),
		roleWeights:    defaultRoleWeights(),
		bonuses: BonusCaps{
			ColorHarmony:         10,
			StyleCoherence:       8,
			FormalityConsistency: 8,
		},
		penalties: PenaltyValues{
			ColorClash:           4,
			SoftOverBudget:       3,
			ImplicitOverBudget:   2,
			Staleness:            3,
			CompositionViolation: 15,
		},
		stalenessWeight: defaultStalenessRecencyWeight,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// slot pairs a scored item with the role it fills in a combination.
type slot struct {
	role   model.Role
	scored model.ScoredItem
}

// Assemble generates deduplicated outfit candidates from the scored role
// pools. Roles with no candidates are omitted and recorded on each outfit
// as missing; the ranker turns them into fallback notices.
func (a *Assembler) Assemble(scoredByRole map[model.Role][]model.ScoredItem, intent model.Intent, p model.WeightProfile) []model.OutfitCandidate {
	var missing []model.Role
	var pools [][]model.ScoredItem
	var poolRoles []model.Role

	for _, role := range a.requiredRoles {
		pool := topM(scoredByRole[role], a.topM)
		if len(pool) == 0 {
			missing = append(missing, role)
			continue
		}
		pools = append(pools, pool)
		poolRoles = append(poolRoles, role)
	}
	if len(pools) == 0 {
		return nil
	}

	outer := topM(scoredByRole[model.RoleOuter], a.topM)
	accessories := topM(scoredByRole[model.RoleAccessory], a.topM)

	seen := dedupe.NewInMemoryDeduper()
	var out []model.OutfitCandidate

	combine(pools, func(combo []model.ScoredItem) {
		slots := make([]slot, len(combo))
		used := make(map[string]struct{}, len(combo))
		valid := true
		for i, sc := range combo {
			// An item holds at most one slot per outfit.
			if _, dup := used[sc.Item.ID]; dup {
				valid = false
				break
			}
			used[sc.Item.ID] = struct{}{}
			slots[i] = slot{role: poolRoles[i], scored: sc}
		}
		if !valid {
			return
		}

		slots = a.extend(slots, used, outer, intent, p)
		for i := 0; i < a.maxAccessories; i++ {
			extended := a.extend(slots, used, accessories, intent, p)
			if len(extended) == len(slots) {
				break
			}
			slots = extended
		}

		if seen.SeenAndRecord(signature(slots)) {
			return
		}

		out = append(out, a.evaluate(slots, missing, intent, p))
	})

	return out
}

// extend tries each optional candidate in score order and keeps the first
// one that strictly improves the evaluated outfit score. Deterministic:
// candidates are pre-sorted and ties keep the shorter outfit.
func (a *Assembler) extend(slots []slot, used map[string]struct{}, pool []model.ScoredItem, intent model.Intent, p model.WeightProfile) []slot {
	if len(pool) == 0 {
		return slots
	}
	current := a.evaluate(slots, nil, intent, p).Score
	for _, sc := range pool {
		if _, dup := used[sc.Item.ID]; dup {
			continue
		}
		extended := append(append([]slot{}, slots...), slot{role: sc.Item.Role, scored: sc})
		if a.evaluate(extended, nil, intent, p).Score > current {
			used[sc.Item.ID] = struct{}{}
			return extended
		}
	}
	return slots
}

// evaluate computes an outfit's total score and breakdown: role-weighted
// base, capped cohesion bonus, penalties, floored at zero.
func (a *Assembler) evaluate(slots []slot, missing []model.Role, intent model.Intent, p model.WeightProfile) model.OutfitCandidate {
	items := make([]model.Item, len(slots))
	itemScores := make([]model.ItemScore, len(slots))
	modelSlots := make([]model.Slot, len(slots))
	var totalPrice, weighted, weightSum float64

	for i, s := range slots {
		items[i] = s.scored.Item
		itemScores[i] = s.scored.Score
		modelSlots[i] = model.Slot{Role: s.role, Item: s.scored.Item}
		totalPrice += s.scored.Item.Price

		rw, ok := a.roleWeights[s.role]
		if !ok {
			rw = 1.0
		}
		weighted += rw * s.scored.Score.Score
		weightSum += rw
	}

	base := 0.0
	if weightSum > 0 {
		base = weighted / weightSum
	}

	bonus, bonusLines := a.cohesionBonus(items, intent, p)
	penalty, penaltyLines := a.applyPenalties(slots, totalPrice, intent, p)

	score := base + bonus - penalty
	if score < 0 {
		score = 0
	}

	return model.OutfitCandidate{
		Slots:        modelSlots,
		Score:        score,
		TotalPrice:   totalPrice,
		Partial:      len(missing) > 0,
		MissingRoles: missing,
		Breakdown: model.OutfitBreakdown{
			ItemScores:    itemScores,
			BaseScore:     base,
			CohesionBonus: bonus,
			Bonuses:       bonusLines,
			Penalties:     penaltyLines,
		},
	}
}

// topM returns the best m scored items: score desc, then price asc, then
// first-seen order. Input order is never mutated.
func topM(pool []model.ScoredItem, m int) []model.ScoredItem {
	if len(pool) == 0 {
		return nil
	}
	sorted := make([]model.ScoredItem, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score.Score != sorted[j].Score.Score {
			return sorted[i].Score.Score > sorted[j].Score.Score
		}
		return sorted[i].Item.Price < sorted[j].Item.Price
	})
	if len(sorted) > m {
		sorted = sorted[:m]
	}
	return sorted
}

// combine walks the cross product of the pools, invoking fn once per
// combination in a stable order.
func combine(pools [][]model.ScoredItem, fn func([]model.ScoredItem)) {
	combo := make([]model.ScoredItem, len(pools))
	var walk func(depth int)
	walk = func(depth int) {
		if depth == len(pools) {
			fn(combo)
			return
		}
		for _, sc := range pools[depth] {
			combo[depth] = sc
			walk(depth + 1)
		}
	}
	walk(0)
}

// signature derives an order-independent identity for a combination.
func signature(slots []slot) string {
	items := make([]model.Item, len(slots))
	for i, s := range slots {
		items[i] = s.scored.Item
	}
	return dedupe.Signature(items)
}
