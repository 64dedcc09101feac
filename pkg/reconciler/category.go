package reconciler

import (
	"context"
	"strings"

	"github.com/agentstation/boorusync/internal/utils/ptr"
	"github.com/agentstation/boorusync/pkg/catalogs"
	"github.com/agentstation/boorusync/pkg/constants"
	"github.com/agentstation/boorusync/pkg/logging"
)

// EnsureCategory returns the ID of the target category named name, creating
// it from the origin's metadata when the index has no entry for it.
//
// A blank name returns nil. In dry-run mode a missing category is only
// logged and nil is returned, so callers treat the category as unassigned.
func (r *Reconciler) EnsureCategory(ctx context.Context, name string) (*int, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}

	if existing, ok := r.categories.Get(name); ok {
		return ptr.Int(existing.ID), nil
	}

	displayName := strings.TrimSpace(name)
	color := constants.DefaultCategoryColor
	order := constants.DefaultCategoryOrder
	if meta, ok := r.origin.Lookup(name); ok {
		if meta.Name != "" {
			displayName = meta.Name
		}
		if meta.Color != "" {
			color = meta.Color
		}
		order = meta.Order
	}

	logger := logging.FromContext(ctx)
	if r.dryRun {
		logger.Info().
			Bool("dry_run", true).
			Str("category", displayName).
			Str("color", color).
			Int("order", order).
			Msg("Would create category")
		return nil, nil
	}

	created, err := r.target.CreateCategory(ctx, displayName, color, order)
	if err != nil {
		return nil, err
	}
	r.categories.PutAs(name, created)

	logger.Info().
		Str("category", created.Name).
		Int("category_id", created.ID).
		Msg("Created category")

	return ptr.Int(created.ID), nil
}

// Category returns the indexed category named name.
func (r *Reconciler) Category(name string) (catalogs.Category, bool) {
	return r.categories.Get(name)
}
