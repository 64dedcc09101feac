package catalogs

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// OriginPost is a post in the origin catalog, as returned by reverse search.
type OriginPost struct {
	ID     int         `json:"id"`
	Tags   []OriginTag `json:"tags"`
	Source SourceField `json:"source"`
}

// ReverseSearchResult is the typed form of a reverse image search response.
type ReverseSearchResult struct {
	// Exact is the post with identical content, if any.
	Exact *OriginPost
	// Similar holds near-duplicate candidates in response order.
	Similar []SimilarPost
}

// SimilarPost is one near-duplicate candidate.
type SimilarPost struct {
	Distance Distance
	Post     *OriginPost
}

// Distance is a reverse-search distance. Valid is false when the wire value
// was missing or not a well-formed non-negative number.
type Distance struct {
	Value float64
	Valid bool
}

// NewDistance returns a valid Distance.
func NewDistance(v float64) Distance {
	return Distance{Value: v, Valid: true}
}

// UnmarshalJSON accepts a JSON number or a numeric string. Anything else,
// including NaN and negative values, decodes to an invalid Distance.
func (d *Distance) UnmarshalJSON(data []byte) error {
	*d = Distance{}

	var v float64
	switch {
	case bytes.Equal(bytes.TrimSpace(data), []byte("null")):
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil
		}
		v = parsed
	default:
		if err := json.Unmarshal(data, &v); err != nil {
			return nil
		}
	}

	if math.IsNaN(v) || v < 0 {
		return nil
	}
	*d = NewDistance(v)
	return nil
}

// UnmarshalJSON decodes a reverse-search payload. Entries of the wrong shape
// (an exactPost that is not an object, similar entries without a post
// object) are dropped rather than failing the whole response.
func (r *ReverseSearchResult) UnmarshalJSON(data []byte) error {
	var raw struct {
		ExactPost    json.RawMessage `json:"exactPost"`
		SimilarPosts json.RawMessage `json:"similarPosts"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = ReverseSearchResult{}

	if isJSONObject(raw.ExactPost) {
		var exact OriginPost
		if err := json.Unmarshal(raw.ExactPost, &exact); err != nil {
			return err
		}
		r.Exact = &exact
	}

	if !isJSONArray(raw.SimilarPosts) {
		return nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw.SimilarPosts, &entries); err != nil {
		return err
	}
	for _, entry := range entries {
		if !isJSONObject(entry) {
			continue
		}
		var item struct {
			Distance Distance        `json:"distance"`
			Post     json.RawMessage `json:"post"`
		}
		if err := json.Unmarshal(entry, &item); err != nil {
			return err
		}
		if !isJSONObject(item.Post) {
			continue
		}
		var post OriginPost
		if err := json.Unmarshal(item.Post, &post); err != nil {
			return err
		}
		r.Similar = append(r.Similar, SimilarPost{Distance: item.Distance, Post: &post})
	}
	return nil
}

func isJSONObject(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func isJSONArray(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '['
}
