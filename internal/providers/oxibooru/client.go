// Package oxibooru provides a read-only client for the Oxibooru API, the
// catalog metadata is migrated from.
package oxibooru

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/agentstation/boorusync/internal/transport"
	"github.com/agentstation/boorusync/pkg/catalogs"
	"github.com/agentstation/boorusync/pkg/constants"
	"github.com/agentstation/boorusync/pkg/errors"
)

// categoriesResponse is the tag category listing.
type categoriesResponse struct {
	Results json.RawMessage `json:"results"`
}

// Client talks to one Oxibooru instance.
type Client struct {
	transport *transport.Client
}

// NewClient creates a client for the API rooted at baseURL. A non-empty
// authHeader is sent verbatim as the Authorization header.
func NewClient(baseURL, authHeader string, opts ...transport.Option) (*Client, error) {
	if authHeader = strings.TrimSpace(authHeader); authHeader != "" {
		opts = append(opts, transport.WithAuth(&transport.HeaderAuth{Header: "Authorization"}, authHeader))
	}
	tc, err := transport.New(constants.ServiceOxibooru, baseURL, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{transport: tc}, nil
}

// TagCategories lists the origin's tag categories.
func (c *Client) TagCategories(ctx context.Context) ([]catalogs.OriginCategory, error) {
	var resp categoriesResponse
	if err := c.transport.JSON(ctx, "list categories", http.MethodGet, "/tag-categories", nil, &resp); err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(resp.Results)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] != '[' {
		return nil, errors.NewParseError("json", "oxibooru list categories", "invalid 'results'", nil)
	}

	var categories []catalogs.OriginCategory
	if err := json.Unmarshal(trimmed, &categories); err != nil {
		return nil, errors.WrapParse("json", "oxibooru list categories", err)
	}
	return categories, nil
}

// ReverseSearch uploads content and returns the exact and similar posts the
// origin found for it.
func (c *Client) ReverseSearch(ctx context.Context, content []byte, filename, contentType string) (catalogs.ReverseSearchResult, error) {
	const operation = "reverse search"

	body, formType, err := multipartContent(content, filename, contentType)
	if err != nil {
		return catalogs.ReverseSearchResult{}, err
	}

	req, err := c.transport.NewRawRequest(ctx, http.MethodPost, "/posts/reverse-search", body, formType)
	if err != nil {
		return catalogs.ReverseSearchResult{}, err
	}

	resp, err := c.transport.Do(req, operation)
	if err != nil {
		return catalogs.ReverseSearchResult{}, err
	}
	raw, err := transport.ReadResponse(resp, constants.ServiceOxibooru, operation)
	if err != nil {
		return catalogs.ReverseSearchResult{}, err
	}

	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '{' {
		return catalogs.ReverseSearchResult{}, errors.NewParseError("json", "oxibooru reverse search", "payload is not an object", nil)
	}
	var result catalogs.ReverseSearchResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return catalogs.ReverseSearchResult{}, errors.WrapParse("json", "oxibooru reverse search", err)
	}
	return result, nil
}

// multipartContent encodes content as the "content" file field.
func multipartContent(content []byte, filename, contentType string) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", multipartDisposition("content", filename))
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", errors.WrapResource("create", "multipart part", filename, err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, "", errors.WrapIO("write", "multipart body", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", errors.WrapIO("close", "multipart body", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func multipartDisposition(field, filename string) string {
	return `form-data; name="` + quoteEscaper.Replace(field) + `"; filename="` + quoteEscaper.Replace(filename) + `"`
}
