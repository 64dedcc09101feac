package reconciler

import (
	"context"

	"github.com/agentstation/boorusync/pkg/catalogs"
	"github.com/agentstation/boorusync/pkg/logging"
)

// SyncTags copies the origin post's tags onto the target post.
//
// Only the first alias of each origin tag is used, and each canonical name
// is handled once. Category and tag are always ensured, even when the post
// already carries the tag, so category drift gets corrected. A tag already
// on the post (compared by canonical key) is not attached again; an attach
// the target reports as already present counts as done but not as added.
func (r *Reconciler) SyncTags(ctx context.Context, postID int, current []catalogs.PostTag, origin []catalogs.OriginTag) (Counts, error) {
	var counts Counts
	logger := logging.FromContext(ctx)

	present := catalogs.Post{Tags: current}.TagKeys()
	seen := make(map[catalogs.CanonicalKey]struct{}, len(origin))

	for _, originTag := range origin {
		name := originTag.CanonicalName()
		key := catalogs.Key(name)
		if key.IsZero() {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		counts.Discovered++

		categoryID, err := r.EnsureCategory(ctx, originTag.Category)
		if err != nil {
			return counts, err
		}
		tag, err := r.EnsureTag(ctx, name, categoryID)
		if err != nil {
			return counts, err
		}

		if _, onPost := present[key]; onPost {
			continue
		}

		attachName := name
		if tag != nil {
			attachName = tag.Name
		}

		if r.dryRun {
			logger.Info().Bool("dry_run", true).Str("tag", attachName).Msg("Would add tag to post")
			counts.Added++
			present[key] = struct{}{}
			continue
		}

		added, err := r.target.AddTagToPost(ctx, postID, attachName)
		if err != nil {
			return counts, err
		}
		present[key] = struct{}{}
		if added {
			counts.Added++
			logger.Info().Str("tag", attachName).Msg("Added tag to post")
		} else {
			logger.Debug().Str("tag", attachName).Msg("Tag already on post")
		}
	}

	return counts, nil
}

// SyncSources appends the origin post's sources that the target post does
// not have yet, in a single replace of the post's full source list.
//
// When the origin has no sources the target is not read at all.
func (r *Reconciler) SyncSources(ctx context.Context, postID int, origin *catalogs.OriginPost) (Counts, error) {
	if origin == nil {
		return Counts{}, nil
	}

	values := origin.Source.Values()
	if len(values) == 0 {
		return Counts{}, nil
	}
	counts := Counts{Discovered: len(values)}

	current, err := r.target.PostSources(ctx, postID)
	if err != nil {
		return counts, err
	}

	missing := catalogs.MissingSources(current, values)
	if len(missing) == 0 {
		return counts, nil
	}

	logger := logging.FromContext(ctx)
	if r.dryRun {
		for _, source := range missing {
			logger.Info().Bool("dry_run", true).Str("source", source).Msg("Would add source to post")
		}
		counts.Added = len(missing)
		return counts, nil
	}

	merged := make([]string, 0, len(current)+len(missing))
	merged = append(merged, current...)
	merged = append(merged, missing...)
	if err := r.target.SetPostSources(ctx, postID, merged); err != nil {
		return counts, err
	}

	for _, source := range missing {
		logger.Info().Str("source", source).Msg("Added source to post")
	}
	counts.Added = len(missing)
	return counts, nil
}
