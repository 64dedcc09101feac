package boorusync

import (
	"fmt"
	"time"

	"github.com/agentstation/boorusync/pkg/reconciler"
)

// Result is the summary of one migration run. It is returned even when the
// run is aborted, with the counts reached so far.
type Result struct {
	RunID  string `json:"run_id" yaml:"run_id"`
	DryRun bool   `json:"dry_run" yaml:"dry_run"`

	// Post counters. Scanned includes skipped posts; Processed counts image
	// posts sent to reverse search; TooFar counts posts whose best similar
	// candidate was over the threshold; Unmatched had no usable candidate.
	Scanned       int `json:"scanned" yaml:"scanned"`
	Processed     int `json:"processed" yaml:"processed"`
	SkippedByType int `json:"skipped_by_type" yaml:"skipped_by_type"`
	Matched       int `json:"matched" yaml:"matched"`
	Exact         int `json:"exact" yaml:"exact"`
	Similar       int `json:"similar" yaml:"similar"`
	TooFar        int `json:"too_far" yaml:"too_far"`
	Unmatched     int `json:"unmatched" yaml:"unmatched"`
	Failures      int `json:"failures" yaml:"failures"`

	// Metadata counters
	Tags    reconciler.Counts `json:"tags" yaml:"tags"`
	Sources reconciler.Counts `json:"sources" yaml:"sources"`

	// How the run ended. Capped means MaxPosts was reached; Aborted means
	// FailFast stopped the run.
	Pages   int  `json:"pages" yaml:"pages"`
	Capped  bool `json:"capped" yaml:"capped"`
	Aborted bool `json:"aborted" yaml:"aborted"`

	StartedAt time.Time     `json:"started_at" yaml:"started_at"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
}

// HasFailures reports whether any post failed.
func (r *Result) HasFailures() bool {
	return r.Failures > 0
}

// Summary returns a one-line human-readable summary.
func (r *Result) Summary() string {
	s := fmt.Sprintf("%d scanned, %d processed, %d matched (%d exact, %d similar), %d tags added, %d sources added, %d failures",
		r.Scanned, r.Processed, r.Matched, r.Exact, r.Similar, r.Tags.Added, r.Sources.Added, r.Failures)
	if r.DryRun {
		s += " (dry run)"
	}
	return s
}
