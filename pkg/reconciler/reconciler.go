// Package reconciler converges the target catalog's categories, tags and
// post metadata toward what the origin catalog reports for a matched post.
//
// Reconciliation is additive and idempotent: categories and tags are
// created at most once per canonical name, tags and sources are only ever
// appended to posts, and repeating a run with the same inputs issues no
// further writes.
package reconciler

import (
	"context"

	"github.com/agentstation/boorusync/pkg/catalogs"
	"github.com/agentstation/boorusync/pkg/errors"
)

// Target is the write surface of the target catalog used during reconciliation.
type Target interface {
	CreateCategory(ctx context.Context, name, color string, order int) (catalogs.Category, error)
	CreateTag(ctx context.Context, name string, categoryID *int) (catalogs.Tag, error)
	UpdateTag(ctx context.Context, id int, name string, categoryID *int) (catalogs.Tag, error)
	// AddTagToPost attaches a tag by name. It reports added=false with a nil
	// error when the tag was already attached.
	AddTagToPost(ctx context.Context, postID int, tagName string) (added bool, err error)
	PostSources(ctx context.Context, postID int) ([]string, error)
	SetPostSources(ctx context.Context, postID int, sources []string) error
}

// Reconciler owns the in-memory category and tag indexes for one run.
// It is not safe for concurrent use: every lookup must observe the writes
// of earlier calls.
type Reconciler struct {
	target     Target
	categories *catalogs.CategoryIndex
	tags       *catalogs.TagIndex
	origin     *catalogs.OriginCategories
	dryRun     bool
}

// New creates a Reconciler writing to target.
func New(target Target, opts ...Option) (*Reconciler, error) {
	if target == nil {
		return nil, &errors.ValidationError{
			Field:   "target",
			Message: "cannot be nil",
		}
	}

	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	return &Reconciler{
		target:     target,
		categories: options.categories,
		tags:       options.tags,
		origin:     options.origin,
		dryRun:     options.dryRun,
	}, nil
}

// DryRun reports whether writes are only logged.
func (r *Reconciler) DryRun() bool {
	return r.dryRun
}
