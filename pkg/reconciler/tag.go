package reconciler

import (
	"context"

	"github.com/agentstation/boorusync/pkg/catalogs"
	"github.com/agentstation/boorusync/pkg/logging"
)

// EnsureTag makes sure a tag named name exists in the target with the
// requested category and returns it.
//
// An indexed tag whose category already matches is returned without any
// remote call. A differing category is reassigned, but a nil categoryID
// never clears an existing assignment. A missing tag is created. In
// dry-run mode updates return the unchanged tag and creates return nil.
func (r *Reconciler) EnsureTag(ctx context.Context, name string, categoryID *int) (*catalogs.Tag, error) {
	logger := logging.FromContext(ctx)

	if existing, ok := r.tags.Get(name); ok {
		if categoryID == nil || catalogs.SameCategory(existing.CategoryID, categoryID) {
			return &existing, nil
		}

		if r.dryRun {
			logger.Info().
				Bool("dry_run", true).
				Str("tag", existing.Name).
				Str("from_category", catalogs.FormatCategoryID(existing.CategoryID)).
				Str("to_category", catalogs.FormatCategoryID(categoryID)).
				Msg("Would update tag category")
			return &existing, nil
		}

		updated, err := r.target.UpdateTag(ctx, existing.ID, existing.Name, categoryID)
		if err != nil {
			return nil, err
		}
		r.tags.PutAs(name, updated)

		logger.Info().
			Str("tag", updated.Name).
			Int("tag_id", updated.ID).
			Str("category_id", catalogs.FormatCategoryID(updated.CategoryID)).
			Msg("Updated tag category")
		return &updated, nil
	}

	if r.dryRun {
		logger.Info().
			Bool("dry_run", true).
			Str("tag", name).
			Str("category_id", catalogs.FormatCategoryID(categoryID)).
			Msg("Would create tag")
		return nil, nil
	}

	created, err := r.target.CreateTag(ctx, name, categoryID)
	if err != nil {
		return nil, err
	}
	r.tags.PutAs(name, created)

	logger.Info().
		Str("tag", created.Name).
		Int("tag_id", created.ID).
		Str("category_id", catalogs.FormatCategoryID(created.CategoryID)).
		Msg("Created tag")
	return &created, nil
}

// Tag returns the indexed tag named name.
func (r *Reconciler) Tag(name string) (catalogs.Tag, bool) {
	return r.tags.Get(name)
}
