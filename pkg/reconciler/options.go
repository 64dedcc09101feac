package reconciler

import (
	"github.com/agentstation/boorusync/pkg/catalogs"
	"github.com/agentstation/boorusync/pkg/errors"
)

// options configures a reconciler.
type options struct {
	categories *catalogs.CategoryIndex
	tags       *catalogs.TagIndex
	origin     *catalogs.OriginCategories
	dryRun     bool
}

func defaultOptions() *options {
	return &options{
		categories: catalogs.NewCategoryIndex(nil),
		tags:       catalogs.NewTagIndex(nil),
		origin:     catalogs.NewOriginCategories(nil),
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithCategories seeds the target category index.
func WithCategories(idx *catalogs.CategoryIndex) Option {
	return func(o *options) error {
		if idx == nil {
			return &errors.ValidationError{
				Field:   "categories",
				Message: "cannot be nil",
			}
		}
		o.categories = idx
		return nil
	}
}

// WithTags seeds the target tag index.
func WithTags(idx *catalogs.TagIndex) Option {
	return func(o *options) error {
		if idx == nil {
			return &errors.ValidationError{
				Field:   "tags",
				Message: "cannot be nil",
			}
		}
		o.tags = idx
		return nil
	}
}

// WithOriginCategories sets the origin category metadata used when a
// category has to be created.
func WithOriginCategories(oc *catalogs.OriginCategories) Option {
	return func(o *options) error {
		if oc == nil {
			return &errors.ValidationError{
				Field:   "origin",
				Message: "cannot be nil",
			}
		}
		o.origin = oc
		return nil
	}
}

// WithDryRun logs intended writes instead of performing them.
func WithDryRun(dryRun bool) Option {
	return func(o *options) error {
		o.dryRun = dryRun
		return nil
	}
}
