package catalogs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostIsSupported(t *testing.T) {
	tests := []struct {
		contentType string
		supported   bool
		jxl         bool
	}{
		{"image/jpeg", true, false},
		{"image/gif", true, false},
		{"IMAGE/PNG", true, false},
		{"image/jxl", true, true},
		{"image/jxl-sequence", true, true},
		{"video/mp4", false, false},
		{"application/pdf", false, false},
		{"", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			p := Post{ContentType: tt.contentType}
			assert.Equal(t, tt.supported, p.IsSupported())
			assert.Equal(t, tt.jxl, p.IsJXL())
		})
	}
}

func TestPostFilename(t *testing.T) {
	assert.Equal(t, "cat.png", Post{ID: 1, RelativePath: "library/2024/cat.png"}.Filename())
	assert.Equal(t, "cat.png", Post{ID: 1, RelativePath: `library\cat.png`}.Filename())
	assert.Equal(t, "post_7", Post{ID: 7}.Filename())
	assert.Equal(t, "post_7", Post{ID: 7, RelativePath: "/"}.Filename())
}

func TestPostTagKeys(t *testing.T) {
	p := Post{Tags: []PostTag{{Name: "Cat"}, {Name: " dog "}, {Name: ""}}}
	keys := p.TagKeys()
	assert.Len(t, keys, 2)
	assert.Contains(t, keys, CanonicalKey("cat"))
	assert.Contains(t, keys, CanonicalKey("dog"))
}
