// Package ranking orders assembled outfits, applies the sparse-inventory
// fallback policy, and truncates to the requested result count.
package ranking

import (
	"sort"

	"github.com/okian/ensemble/internal/domain/model"
)

// Default ranking configuration constants.
const (
	defaultResultCount = 5
)

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithResultCount sets the default top-K when Rank is given k <= 0.
func WithResultCount(k int) Option {
	return func(r *Ranker) {
		if k > 0 {
			r.resultCount = k
		}
	}
}

// Ranker sorts outfit candidates deterministically and surfaces fallback
// notices. Pure; safe for concurrent use.
type Ranker struct {
	resultCount int
}

// New creates a Ranker with configuration options.
func New(opts ...Option) *Ranker {
	r := &Ranker{resultCount: defaultResultCount}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rank sorts candidates best first and truncates to k (the configured
// default when k <= 0). Ties break on higher minimum per-item score (avoid
// one weak link), then lower total price, then first-seen input order, so
// identical inputs always rank identically.
//
// An empty candidate list is a business outcome, not an error: the result
// carries a notice and no outfits.
func (r *Ranker) Rank(candidates []model.OutfitCandidate, p model.WeightProfile, k int, notices []model.FallbackNotice) model.RankedResult {
	if k <= 0 {
		k = r.resultCount
	}

	ranked := make([]model.OutfitCandidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if mi, mj := ranked[i].MinItemScore(), ranked[j].MinItemScore(); mi != mj {
			return mi > mj
		}
		return ranked[i].TotalPrice < ranked[j].TotalPrice
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}

	out := model.RankedResult{
		Outfits:         ranked,
		Profile:         p,
		FallbackNotices: notices,
	}
	if len(ranked) == 0 {
		out.FallbackNotices = append(out.FallbackNotices, model.FallbackNotice{
			Reason: "no outfits could be assembled from the available inventory",
		})
	}
	return out
}
