// Package app wires the recommendation pipeline: intent -> weight profile
// -> filtered candidates -> scored items -> assembled outfits -> ranked
// output. Every stage is a pure function over immutable inputs; the engine
// holds no state across requests.
package app

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/okian/ensemble/internal/adapters/pool"
	"github.com/okian/ensemble/internal/config"
	"github.com/okian/ensemble/internal/domain/assembly"
	"github.com/okian/ensemble/internal/domain/filter"
	"github.com/okian/ensemble/internal/domain/model"
	"github.com/okian/ensemble/internal/domain/profile"
	"github.com/okian/ensemble/internal/domain/ranking"
	"github.com/okian/ensemble/internal/domain/scoring"
	"github.com/okian/ensemble/pkg/logger"
	"github.com/okian/ensemble/pkg/metrics"
)

// ProfileResolver maps an intent to a weight profile. The rule-based
// resolver is the default; a learned weight profile source can be swapped
// in without touching the pipeline.
type ProfileResolver interface {
	Resolve(ctx context.Context, intent model.Intent) (model.WeightProfile, error)
}

// ItemScorer scores one candidate item against the intent and profile.
type ItemScorer interface {
	Score(item model.Item, intent model.Intent, p model.WeightProfile) model.ItemScore
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithConfig applies a full engine configuration.
func WithConfig(cfg *config.Config) Option {
	return func(e *Engine) {
		if cfg != nil {
			e.cfg = cfg
		}
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithResolver swaps in a custom profile resolver.
func WithResolver(r ProfileResolver) Option {
	return func(e *Engine) {
		if r != nil {
			e.resolver = r
		}
	}
}

// WithScorer swaps in a custom item scorer.
func WithScorer(s ItemScorer) Option {
	return func(e *Engine) {
		if s != nil {
			e.scorer = s
		}
	}
}

// WithConcurrency bounds the parallel item-scoring workers.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// Engine is the outfit recommendation engine. Construct once, use from any
// number of goroutines: it is stateless across requests.
type Engine struct {
	cfg *config.Config

	resolver  ProfileResolver
	filter    *filter.Filter
	relaxed   *filter.Filter
	scorer    ItemScorer
	assembler *assembly.Assembler
	ranker    *ranking.Ranker

	requiredRoles  []model.Role
	fallbackPolicy string
	resultCount    int
	concurrency    int

	logger logger.Logger
}

// New constructs an Engine. It fails fast on malformed configuration; this
// is the only hard failure class, everything downstream degrades gracefully.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		cfg:         config.New(),
		concurrency: runtime.NumCPU() * 2,
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}

	roles := make([]model.Role, 0, len(e.cfg.RequiredRoles))
	for _, r := range e.cfg.RequiredRoles {
		role := model.Role(r)
		if !role.Valid() {
			return nil, fmt.Errorf("%w: unknown required role %q", config.ErrInvalidConfig, r)
		}
		roles = append(roles, role)
	}
	if len(roles) == 0 {
		roles = model.DefaultRequiredRoles()
	}
	e.requiredRoles = roles
	e.fallbackPolicy = e.cfg.FallbackPolicy
	e.resultCount = e.cfg.ResultCount
	if e.cfg.Concurrency > 0 && e.concurrency == runtime.NumCPU()*2 {
		e.concurrency = e.cfg.Concurrency
	}

	if e.resolver == nil {
		r, err := profile.NewResolver(
			profile.WithBaselineWeights(e.cfg.BaselineWeights),
			profile.WithCohesionBonusCap(e.cfg.CohesionBonusCap),
			profile.WithRuleTargets(
				e.cfg.RuleTargets.Price,
				e.cfg.RuleTargets.Color,
				e.cfg.RuleTargets.Material,
				e.cfg.RuleTargets.Formality,
			),
		)
		if err != nil {
			return nil, err
		}
		e.resolver = r
	}

	e.filter = filter.New(
		filter.WithRequiredRoles(roles),
		filter.WithHardBudgetMultiplier(e.cfg.HardBudgetMultiplier),
	)
	e.relaxed = filter.New(
		filter.WithRequiredRoles(roles),
		filter.WithRelaxedConstraints(),
	)

	if e.scorer == nil {
		e.scorer = scoring.New()
	}

	roleWeights := make(map[model.Role]float64, len(e.cfg.RoleWeights))
	for r, w := range e.cfg.RoleWeights {
		roleWeights[model.Role(r)] = w
	}
	e.assembler = assembly.New(
		assembly.WithTopM(e.cfg.TopMPerRole),
		assembly.WithMaxAccessories(e.cfg.MaxAccessories),
		assembly.WithRequiredRoles(roles),
		assembly.WithRoleWeights(roleWeights),
		assembly.WithBonusCaps(assembly.BonusCaps{
			ColorHarmony:         e.cfg.Bonuses.ColorHarmonyMax,
			StyleCoherence:       e.cfg.Bonuses.StyleCoherenceMax,
			FormalityConsistency: e.cfg.Bonuses.FormalityConsistencyMax,
		}),
		assembly.WithPenalties(assembly.PenaltyValues{
			ColorClash:           e.cfg.Penalties.ColorClash,
			SoftOverBudget:       e.cfg.Penalties.SoftOverBudget,
			ImplicitOverBudget:   e.cfg.Penalties.ImplicitOverBudget,
			Staleness:            e.cfg.Penalties.Staleness,
			CompositionViolation: e.cfg.Penalties.CompositionViolation,
		}),
		assembly.WithImplicitBudgetCeiling(e.cfg.ImplicitBudgetCeiling),
		assembly.WithStalenessRecencyWeight(e.cfg.StalenessRecencyWeight),
	)

	e.ranker = ranking.New(ranking.WithResultCount(e.resultCount))

	if e.logger == nil {
		e.logger = logger.Get().Named("engine")
	}

	return e, nil
}

// Recommend produces ranked outfits for one intent over one item snapshot.
// Inventory sparsity and data quality issues are reported inside the
// result, never as errors.
func (e *Engine) Recommend(ctx context.Context, intent model.Intent, items []model.Item) (model.RankedResult, error) {
	start := time.Now()
	log := e.logger

	p, err := e.resolver.Resolve(ctx, intent)
	if err != nil {
		return model.RankedResult{}, err
	}

	fres := e.filter.Apply(items, p)
	for _, w := range fres.Warnings {
		metrics.RecordInvalidItem()
		log.Warn(ctx, "skipping invalid catalog item",
			logger.String("itemID", w.ItemID),
			logger.String("reason", w.Reason),
		)
	}
	for reason, n := range fres.Dropped {
		metrics.RecordItemsFiltered(reason, n)
	}
	survivors := 0
	for _, group := range fres.ByRole {
		survivors += len(group)
	}
	metrics.UpdateCandidatePoolSize(survivors)

	var notices []model.FallbackNotice
	for _, role := range fres.MissingRoles {
		metrics.RecordFallbackEvent(string(role))
		if e.fallbackPolicy == config.FallbackRelax {
			relaxed := e.relaxed.Apply(items, p)
			if candidates := relaxed.ByRole[role]; len(candidates) > 0 {
				fres.ByRole[role] = candidates
				notices = append(notices, model.FallbackNotice{
					Role:   role,
					Reason: "size and budget constraints relaxed to fill role",
				})
				continue
			}
		}
		notices = append(notices, model.FallbackNotice{
			Role:   role,
			Reason: "no available candidates; role omitted from outfits",
		})
	}

	scoredByRole, err := e.scoreByRole(ctx, fres.ByRole, intent, p)
	if err != nil {
		return model.RankedResult{}, err
	}

	assembleStart := time.Now()
	candidates := e.assembler.Assemble(scoredByRole, intent, p)
	metrics.RecordAssemblyLatency(float64(time.Since(assembleStart).Milliseconds()))
	metrics.RecordOutfitsAssembled(len(candidates))

	res := e.ranker.Rank(candidates, p, e.resultCount, notices)

	metrics.RecordRecommendation()
	metrics.RecordRankedOutfits(len(res.Outfits))
	metrics.RecordPipelineLatency(float64(time.Since(start).Milliseconds()))
	if res.Empty() {
		metrics.RecordEmptyResult()
	}

	log.Debug(ctx, "recommendation served",
		logger.Int("candidates", survivors),
		logger.Int("combinations", len(candidates)),
		logger.Int("outfits", len(res.Outfits)),
		logger.Int("notices", len(res.FallbackNotices)),
	)

	return res, nil
}

// scoreByRole scores every surviving item in parallel, preserving per-role
// input order so downstream tie-breaks stay deterministic.
func (e *Engine) scoreByRole(ctx context.Context, byRole map[model.Role][]model.Item, intent model.Intent, p model.WeightProfile) (map[model.Role][]model.ScoredItem, error) {
	var flat []model.Item
	var order []model.Role
	for _, role := range rolesOf(byRole) {
		for _, it := range byRole[role] {
			flat = append(flat, it)
			order = append(order, role)
		}
	}

	scoreStart := time.Now()
	scored, err := pool.Map(ctx, e.concurrency, flat, func(ctx context.Context, it model.Item) model.ScoredItem {
		return model.ScoredItem{Item: it, Score: e.scorer.Score(it, intent, p)}
	})
	if err != nil {
		return nil, fmt.Errorf("scoring aborted: %w", err)
	}
	metrics.RecordScoringLatency(float64(time.Since(scoreStart).Milliseconds()))
	metrics.RecordItemsScored(len(scored))

	out := make(map[model.Role][]model.ScoredItem, len(byRole))
	for i, sc := range scored {
		out[order[i]] = append(out[order[i]], sc)
	}
	return out, nil
}

// rolesOf returns the map's roles in canonical dimension-stable order so
// iteration is deterministic.
func rolesOf(byRole map[model.Role][]model.Item) []model.Role {
	all := []model.Role{
		model.RoleTop, model.RoleBottom, model.RoleShoes,
		model.RoleOuter, model.RoleAccessory, model.RoleUndergarment,
	}
	var present []model.Role
	for _, r := range all {
		if len(byRole[r]) > 0 {
			present = append(present, r)
		}
	}
	return present
}
