// Package boorusync migrates tag, tag category and source metadata from an
// Oxibooru catalog into a Bakabooru catalog.
//
// Posts are paired across the two catalogs by reverse image search rather
// than by any shared identifier. Every target post is uploaded to the
// origin's reverse search; on an exact or close-enough similar match the
// origin post's tags (with their categories) and sources are added to the
// target post. Reconciliation is additive and safe to re-run.
package boorusync

import (
	"context"

	"github.com/agentstation/boorusync/pkg/catalogs"
	"github.com/agentstation/boorusync/pkg/reconciler"
)

// Target is the catalog being enriched.
type Target interface {
	reconciler.Target
	Login(ctx context.Context, username, password string) error
	ListPosts(ctx context.Context, page, pageSize int) ([]catalogs.Post, error)
	PostContent(ctx context.Context, postID int) ([]byte, error)
	Categories(ctx context.Context) ([]catalogs.Category, error)
	AllTags(ctx context.Context) ([]catalogs.Tag, error)
}

// Origin is the read-only catalog metadata is copied from.
type Origin interface {
	TagCategories(ctx context.Context) ([]catalogs.OriginCategory, error)
	ReverseSearch(ctx context.Context, content []byte, filename, contentType string) (catalogs.ReverseSearchResult, error)
}

// Decoder converts JPEG XL content to JPEG.
type Decoder interface {
	Decode(ctx context.Context, data []byte) ([]byte, error)
}
