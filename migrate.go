package boorusync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agentstation/boorusync/internal/decode"
	"github.com/agentstation/boorusync/pkg/catalogs"
	"github.com/agentstation/boorusync/pkg/constants"
	"github.com/agentstation/boorusync/pkg/errors"
	"github.com/agentstation/boorusync/pkg/logging"
	"github.com/agentstation/boorusync/pkg/match"
	"github.com/agentstation/boorusync/pkg/reconciler"
)

// Migrator runs migrations between one target and one origin catalog.
type Migrator struct {
	target  Target
	origin  Origin
	decoder Decoder
	options *Options
}

// New creates a Migrator. The decoder may be nil, in which case JPEG XL
// posts fail individually.
func New(target Target, origin Origin, decoder Decoder, opts ...Option) (*Migrator, error) {
	if target == nil {
		return nil, errors.NewValidationError("target", nil, "cannot be nil")
	}
	if origin == nil {
		return nil, errors.NewValidationError("origin", nil, "cannot be nil")
	}

	options := Defaults().Apply(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}

	return &Migrator{
		target:  target,
		origin:  origin,
		decoder: decoder,
		options: options,
	}, nil
}

// Run pages through the target's posts and reconciles each matched post.
//
// The returned Result is never nil. Failures of a single post are counted
// and logged; with FailFast the first one stops the run and the error
// matches errors.ErrAborted. Failing to log in, load the indexes or list a
// page is fatal for the run.
func (m *Migrator) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.FromContext(ctx)

	result := &Result{
		RunID:     runID,
		DryRun:    m.options.DryRun,
		StartedAt: time.Now(),
	}
	defer func() {
		result.Duration = time.Since(result.StartedAt)
	}()

	rec, err := m.prepare(ctx)
	if err != nil {
		return result, err
	}

	logger.Info().
		Bool("dry_run", m.options.DryRun).
		Int("start_page", m.options.StartPage).
		Int("page_size", m.options.PageSize).
		Int("max_posts", m.options.MaxPosts).
		Float64("max_similar_distance", m.options.MaxSimilarDistance).
		Msg("Starting migration")

	for page := m.options.StartPage; ; page++ {
		if m.capped(ctx, result) {
			return result, nil
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		posts, err := m.target.ListPosts(ctx, page, m.options.PageSize)
		if err != nil {
			return result, fmt.Errorf("list posts page %d: %w", page, err)
		}
		if len(posts) == 0 {
			break
		}
		result.Pages++
		logger.Info().Int("page", page).Int("posts", len(posts)).Msg("Fetched posts page")

		for _, post := range posts {
			if m.capped(ctx, result) {
				return result, nil
			}
			if err := ctx.Err(); err != nil {
				return result, err
			}

			result.Scanned++
			if !post.IsSupported() {
				result.SkippedByType++
				continue
			}
			result.Processed++

			postCtx := logging.WithPost(ctx, post.ID)
			if err := m.syncPost(postCtx, rec, post, result); err != nil {
				result.Failures++
				logging.FromContext(postCtx).Error().Err(err).Msg("Post failed")
				if m.options.FailFast {
					result.Aborted = true
					return result, fmt.Errorf("%w: post %d: %w", errors.ErrAborted, post.ID, err)
				}
			}
		}

		if len(posts) < m.options.PageSize {
			break
		}
	}

	logger.Info().Str("summary", result.Summary()).Msg("Migration finished")
	return result, nil
}

// capped reports, and records, that the scan cap has been reached.
func (m *Migrator) capped(ctx context.Context, result *Result) bool {
	if m.options.MaxPosts <= 0 || result.Scanned < m.options.MaxPosts {
		return false
	}
	result.Capped = true
	logging.FromContext(ctx).Info().Int("max_posts", m.options.MaxPosts).Msg("Reached max posts limit")
	return true
}

// prepare opens the target session and loads the indexes the reconciler
// works against for the rest of the run.
func (m *Migrator) prepare(ctx context.Context) (*reconciler.Reconciler, error) {
	logger := logging.FromContext(ctx)

	if m.options.HasCredentials() {
		if err := m.target.Login(ctx, m.options.Username, m.options.Password); err != nil {
			return nil, err
		}
	}

	categories, err := m.target.Categories(ctx)
	if err != nil {
		return nil, err
	}
	tags, err := m.target.AllTags(ctx)
	if err != nil {
		return nil, err
	}
	originCategories, err := m.origin.TagCategories(ctx)
	if err != nil {
		return nil, err
	}

	categoryIndex := catalogs.NewCategoryIndex(categories)
	tagIndex := catalogs.NewTagIndex(tags)
	originIndex := catalogs.NewOriginCategories(originCategories)

	logger.Info().
		Int("categories", categoryIndex.Len()).
		Int("tags", tagIndex.Len()).
		Int("origin_categories", originIndex.Len()).
		Msg("Loaded catalog indexes")

	return reconciler.New(m.target,
		reconciler.WithDryRun(m.options.DryRun),
		reconciler.WithCategories(categoryIndex),
		reconciler.WithTags(tagIndex),
		reconciler.WithOriginCategories(originIndex),
	)
}

// syncPost runs the content pipeline and reconciliation for one image post.
func (m *Migrator) syncPost(ctx context.Context, rec *reconciler.Reconciler, post catalogs.Post, result *Result) error {
	logger := logging.FromContext(ctx)

	content, err := m.target.PostContent(ctx, post.ID)
	if err != nil {
		return err
	}

	contentType := post.ContentType
	if contentType == "" {
		contentType = constants.FallbackContentType
	}
	filename := post.Filename()

	if post.IsJXL() {
		if m.decoder == nil {
			return errors.NewConfigError("decoder", "no jxl decoder configured", nil)
		}
		content, err = m.decoder.Decode(ctx, content)
		if err != nil {
			return err
		}
		contentType = constants.DecodedContentType
		filename = decode.JPEGFilename(filename)
	}

	found, err := m.origin.ReverseSearch(ctx, content, filename, contentType)
	if err != nil {
		return err
	}

	decision := match.Select(found, m.options.MaxSimilarDistance)
	switch decision.Kind {
	case match.KindExact:
		result.Exact++
	case match.KindSimilar:
		result.Similar++
		logger.Info().Float64("distance", decision.Distance).Int("origin_post_id", decision.Post.ID).Msg("Using similar match")
	case match.KindTooFar:
		result.TooFar++
		logger.Debug().Float64("distance", decision.Distance).Msg("Closest similar match is too far")
		return nil
	default:
		result.Unmatched++
		logger.Debug().Msg("No match")
		return nil
	}
	result.Matched++

	tags, err := rec.SyncTags(ctx, post.ID, post.Tags, decision.Post.Tags)
	result.Tags.Add(tags)
	if err != nil {
		return err
	}

	sources, err := rec.SyncSources(ctx, post.ID, decision.Post)
	result.Sources.Add(sources)
	return err
}
