package catalogs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceFieldDecoding(t *testing.T) {
	tests := []struct {
		name string
		json string
		want []string
	}{
		{
			name: "multi-line string with case duplicate",
			json: `"http://a.com\nhttp://A.com \nhttp://b.com"`,
			want: []string{"http://a.com", "http://b.com"},
		},
		{
			name: "crlf and blank lines",
			json: `"http://a.com\r\n\r\n  http://b.com  \r\n"`,
			want: []string{"http://a.com", "http://b.com"},
		},
		{
			name: "list drops non-strings",
			json: `["http://a.com", 7, null, {"x": 1}, " http://b.com "]`,
			want: []string{"http://a.com", "http://b.com"},
		},
		{
			name: "list entries are not split",
			json: `["http://a.com\nhttp://b.com"]`,
			want: []string{"http://a.com\nhttp://b.com"},
		},
		{name: "null", json: `null`, want: []string{}},
		{name: "number", json: `42`, want: []string{}},
		{name: "object", json: `{"url": "http://a.com"}`, want: []string{}},
		{name: "empty string", json: `""`, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var field SourceField
			require.NoError(t, json.Unmarshal([]byte(tt.json), &field))
			assert.Equal(t, tt.want, field.Values())
		})
	}
}

func TestSourceFieldMissingFromPost(t *testing.T) {
	var post OriginPost
	require.NoError(t, json.Unmarshal([]byte(`{"id": 3, "tags": []}`), &post))
	assert.Empty(t, post.Source.Values())
}

func TestNormalizeSourcesIsIdempotent(t *testing.T) {
	inputs := [][]string{
		{"http://a.com", "HTTP://A.COM", " http://b.com", "", "http://c.com "},
		{"x", "X ", " x", "y"},
		nil,
	}
	for _, in := range inputs {
		once := NormalizeSources(in)
		twice := NormalizeSources(once)
		assert.Equal(t, once, twice)
	}
}

func TestNormalizeSourcesKeepsFirstSeenForm(t *testing.T) {
	got := NormalizeSources([]string{"  HTTP://Example.com/A ", "http://example.com/a", "http://example.com/b"})
	assert.Equal(t, []string{"HTTP://Example.com/A", "http://example.com/b"}, got)
}

func TestNewSourceField(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, NewSourceField("a\nb").Values())
	assert.Equal(t, []string{"a", "b"}, NewSourceField([]string{"a", "A", "b"}).Values())
	assert.Equal(t, []string{"a"}, NewSourceField([]any{"a", 1.5, true}).Values())
	assert.Empty(t, NewSourceField(12).Values())
	assert.Empty(t, NewSourceField(nil).Values())
}

func TestSourceFieldMarshal(t *testing.T) {
	data, err := json.Marshal(NewSourceField("a\nA\nb"))
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, string(data))
}

func TestMissingSources(t *testing.T) {
	current := []string{"http://b.com"}
	missing := MissingSources(current, []string{"http://a.com", "http://b.com"})
	assert.Equal(t, []string{"http://a.com"}, missing)

	assert.Empty(t, MissingSources([]string{" HTTP://A.com "}, []string{"http://a.com"}))
	assert.Equal(t, []string{"x"}, MissingSources(nil, []string{"x", "X"}))
}
