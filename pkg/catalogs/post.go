package catalogs

import (
	"fmt"
	"path"
	"strings"
)

// Post is an item in the target catalog.
type Post struct {
	ID           int       `json:"id"`
	ContentType  string    `json:"contentType"`
	RelativePath string    `json:"relativePath"`
	Tags         []PostTag `json:"tags"`
}

// PostTag is a tag reference as embedded in a post listing.
type PostTag struct {
	Name string `json:"name"`
}

// jxlContentTypes are the JPEG XL media types the origin cannot search.
var jxlContentTypes = map[string]bool{
	"image/jxl":          true,
	"image/jxlp":         true,
	"image/jxl-sequence": true,
}

// IsSupported reports whether the post's media can be reverse searched.
// Only image types qualify; video and everything else are skipped.
func (p Post) IsSupported() bool {
	ct := strings.ToLower(p.ContentType)
	if strings.HasPrefix(ct, "video/") {
		return false
	}
	return strings.HasPrefix(ct, "image/")
}

// IsJXL reports whether the post's content must be decoded before searching.
func (p Post) IsJXL() bool {
	return jxlContentTypes[strings.ToLower(p.ContentType)]
}

// Filename returns the base name of the post's file, or post_<id> when the
// post has no usable path.
func (p Post) Filename() string {
	rel := strings.ReplaceAll(p.RelativePath, "\\", "/")
	if name := path.Base(rel); rel != "" && name != "." && name != "/" {
		return name
	}
	return fmt.Sprintf("post_%d", p.ID)
}

// TagKeys returns the canonical keys of the tags currently on the post.
func (p Post) TagKeys() map[CanonicalKey]struct{} {
	keys := make(map[CanonicalKey]struct{}, len(p.Tags))
	for _, t := range p.Tags {
		if k := Key(t.Name); !k.IsZero() {
			keys[k] = struct{}{}
		}
	}
	return keys
}
