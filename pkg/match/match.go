// Package match classifies reverse image search results into a single
// decision: use an exact match, use the closest similar match, or ignore
// the result.
package match

import (
	"github.com/agentstation/boorusync/pkg/catalogs"
)

// Kind describes how a reverse search result was classified.
type Kind string

// String returns the string representation of a Kind.
func (k Kind) String() string {
	return string(k)
}

// Match kinds.
const (
	// KindExact means the origin holds a post with identical content.
	KindExact Kind = "exact"
	// KindSimilar means the closest candidate is within the distance threshold.
	KindSimilar Kind = "similar"
	// KindTooFar means candidates exist but the closest one is over the threshold.
	KindTooFar Kind = "too_far"
	// KindNone means the result carried no usable candidate at all.
	KindNone Kind = "none"
)

// Decision is the outcome of Select.
type Decision struct {
	Kind Kind
	// Post is the origin post to sync from. It is set only for exact and
	// similar decisions.
	Post *catalogs.OriginPost
	// Distance is 0 for exact matches and the closest candidate's distance
	// for similar and too_far decisions.
	Distance float64
}

// Usable reports whether the decision carries a post to sync from.
func (d Decision) Usable() bool {
	return d.Post != nil && (d.Kind == KindExact || d.Kind == KindSimilar)
}

// Select classifies result against maxSimilarDistance.
//
// An exact match always wins. Otherwise candidates without a well-formed
// distance are ignored and the one with the smallest distance is chosen,
// the first one seen winning ties. No other signal is used.
func Select(result catalogs.ReverseSearchResult, maxSimilarDistance float64) Decision {
	if result.Exact != nil {
		return Decision{Kind: KindExact, Post: result.Exact, Distance: 0}
	}

	var best *catalogs.SimilarPost
	for i := range result.Similar {
		candidate := &result.Similar[i]
		if candidate.Post == nil || !candidate.Distance.Valid {
			continue
		}
		if best == nil || candidate.Distance.Value < best.Distance.Value {
			best = candidate
		}
	}

	if best == nil {
		return Decision{Kind: KindNone}
	}
	// Written as a negated <= so a NaN threshold accepts nothing.
	if !(best.Distance.Value <= maxSimilarDistance) {
		return Decision{Kind: KindTooFar, Distance: best.Distance.Value}
	}
	return Decision{Kind: KindSimilar, Post: best.Post, Distance: best.Distance.Value}
}
