package boorusync

import (
	"math"
	"time"

	"github.com/agentstation/boorusync/pkg/constants"
	"github.com/agentstation/boorusync/pkg/errors"
)

// Options controls a migration run.
type Options struct {
	// Orchestration control
	DryRun   bool // Log intended writes without performing them
	FailFast bool // Stop at the first per-post failure

	// Paging
	PageSize  int // Posts requested per page
	StartPage int // First page to read, 1-based
	MaxPosts  int // Stop after scanning this many posts; 0 means unlimited

	// Matching
	MaxSimilarDistance float64 // Inclusive upper bound for similar matches, 0..1

	// Target session; both or neither
	Username string
	Password string

	// Transport
	Timeout time.Duration // Per-request timeout
}

// Defaults returns the default migration options.
func Defaults() *Options {
	return &Options{
		PageSize:           constants.DefaultPageSize,
		StartPage:          constants.DefaultStartPage,
		MaxSimilarDistance: constants.DefaultMaxSimilarDistance,
		Timeout:            constants.DefaultHTTPTimeout,
	}
}

// Option is a function that configures migration Options.
type Option func(*Options)

// Apply applies the given options.
func (o *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Validate checks that the options describe a runnable migration.
func (o *Options) Validate() error {
	if o.PageSize < 1 {
		return errors.NewValidationError("page_size", o.PageSize, "must be at least 1")
	}
	if o.StartPage < 1 {
		return errors.NewValidationError("start_page", o.StartPage, "must be at least 1")
	}
	if o.MaxPosts < 0 {
		return errors.NewValidationError("max_posts", o.MaxPosts, "must be non-negative")
	}
	if math.IsNaN(o.MaxSimilarDistance) || o.MaxSimilarDistance < 0 || o.MaxSimilarDistance > 1 {
		return errors.NewValidationError("max_similar_distance", o.MaxSimilarDistance, "expected 0..1")
	}
	if (o.Username == "") != (o.Password == "") {
		return errors.NewConfigError("credentials", "username and password are required together", nil)
	}
	if o.Timeout <= 0 {
		return errors.NewValidationError("timeout", o.Timeout, "must be positive")
	}
	return nil
}

// HasCredentials reports whether a target login is configured.
func (o *Options) HasCredentials() bool {
	return o.Username != "" && o.Password != ""
}

// WithDryRun configures dry run mode.
func WithDryRun(dryRun bool) Option {
	return func(o *Options) {
		o.DryRun = dryRun
	}
}

// WithFailFast configures fail-fast behavior.
func WithFailFast(failFast bool) Option {
	return func(o *Options) {
		o.FailFast = failFast
	}
}

// WithPageSize configures the post page size.
func WithPageSize(size int) Option {
	return func(o *Options) {
		o.PageSize = size
	}
}

// WithStartPage configures the first page to read.
func WithStartPage(page int) Option {
	return func(o *Options) {
		o.StartPage = page
	}
}

// WithMaxPosts caps the number of scanned posts.
func WithMaxPosts(n int) Option {
	return func(o *Options) {
		o.MaxPosts = n
	}
}

// WithMaxSimilarDistance configures the similar-match threshold.
func WithMaxSimilarDistance(d float64) Option {
	return func(o *Options) {
		o.MaxSimilarDistance = d
	}
}

// WithCredentials configures the target login.
func WithCredentials(username, password string) Option {
	return func(o *Options) {
		o.Username = username
		o.Password = password
	}
}

// WithTimeout configures the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.Timeout = timeout
	}
}
