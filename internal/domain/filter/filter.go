// Package filter applies hard constraints to the raw candidate pool.
// Anything dropped here is unconditional: filtered items never reappear in
// an outfit regardless of how well they would have scored.
package filter

import (
	"strings"

	"github.com/okian/ensemble/internal/domain/model"
)

// Drop reasons recorded per filtered item, also used as metric labels.
const (
	ReasonUnavailable = "unavailable"
	ReasonSize        = "size"
	ReasonExcluded    = "hard_exclusion"
	ReasonOverBudget  = "over_budget"
	ReasonInvalid     = "invalid_item"
)

// Warning records a skipped or dropped item for observability.
type Warning struct {
	ItemID string
	Reason string
}

// Result groups surviving items by role and reports what was dropped.
type Result struct {
	ByRole map[model.Role][]model.Item

	// MissingRoles lists required roles with no surviving candidates.
	// An empty role is a business condition for the fallback controller,
	// not a failure.
	MissingRoles []model.Role

	// Warnings records invalid items that were skipped rather than
	// failing the request.
	Warnings []Warning

	// Dropped counts filtered items by reason.
	Dropped map[string]int
}

// Option applies a configuration option to the Filter.
type Option func(*Filter)

// WithRequiredRoles sets the roles whose absence is reported.
func WithRequiredRoles(roles []model.Role) Option {
	return func(f *Filter) {
		if len(roles) > 0 {
			f.required = roles
		}
	}
}

// WithHardBudgetMultiplier sets the strict-budget price ceiling as a
// multiple of budget_max. Values below 1 are ignored.
func WithHardBudgetMultiplier(m float64) Option {
	return func(f *Filter) {
		if m >= 1 {
			f.budgetMultiplier = m
		}
	}
}

// WithRelaxedConstraints disables the size and budget hard filters. Used by
// the fallback controller when retrying an empty role.
func WithRelaxedConstraints() Option {
	return func(f *Filter) {
		f.relaxed = true
	}
}

// Filter drops unavailable, excluded, and (under a strict budget)
// over-ceiling items, then groups survivors by role.
type Filter struct {
	required         []model.Role
	budgetMultiplier float64
	relaxed          bool
}

// New creates a Filter with configuration options.
func New(opts ...Option) *Filter {
	f := &Filter{
		required:         model.DefaultRequiredRoles(),
		budgetMultiplier: 1.0,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Apply runs the hard filters over items. Pure: neither items nor the
// profile are mutated.
func (f *Filter) Apply(items []model.Item, p model.WeightProfile) Result {
	res := Result{
		ByRole:  make(map[model.Role][]model.Item),
		Dropped: make(map[string]int),
	}

	ceiling := 0.0
	if !f.relaxed && p.StrictBudget && p.BudgetMax > 0 {
		ceiling = p.BudgetMax * f.budgetMultiplier
	}

	for _, it := range items {
		switch {
		case strings.TrimSpace(it.ID) == "" || !it.Role.Valid():
			// Graceful degradation: a malformed item is a data-quality
			// issue, never fatal to the whole request.
			res.Warnings = append(res.Warnings, Warning{ItemID: it.ID, Reason: ReasonInvalid})
		case !it.InStock:
			res.Dropped[ReasonUnavailable]++
		case !f.relaxed && !it.HasSize(p.Size):
			res.Dropped[ReasonSize]++
		case excluded(it, p.HardExclusions):
			res.Dropped[ReasonExcluded]++
		case ceiling > 0 && it.Price > ceiling:
			res.Dropped[ReasonOverBudget]++
		default:
			res.ByRole[it.Role] = append(res.ByRole[it.Role], it)
		}
	}

	for _, role := range f.required {
		if len(res.ByRole[role]) == 0 {
			res.MissingRoles = append(res.MissingRoles, role)
		}
	}

	return res
}

// excluded reports whether any attribute value intersects the exclusion
// terms. Matching is case-insensitive and substring based, so an exclusion
// of "leather" catches "full-grain leather".
func excluded(it model.Item, exclusions []string) bool {
	if len(exclusions) == 0 {
		return false
	}
	for _, v := range it.Attributes {
		lv := strings.ToLower(v)
		for _, ex := range exclusions {
			if ex != "" && strings.Contains(lv, ex) {
				return true
			}
		}
	}
	return false
}
