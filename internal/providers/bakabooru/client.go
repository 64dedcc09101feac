// Package bakabooru provides a client for the Bakabooru REST API, the
// catalog that receives migrated metadata.
package bakabooru

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/agentstation/boorusync/internal/transport"
	"github.com/agentstation/boorusync/pkg/catalogs"
	"github.com/agentstation/boorusync/pkg/constants"
	"github.com/agentstation/boorusync/pkg/errors"
	"github.com/agentstation/boorusync/pkg/logging"
)

// pageResponse is a paged listing. Depending on the server build the
// container is serialized as "items" or "Items".
type pageResponse struct {
	Items      json.RawMessage `json:"items"`
	ItemsUpper json.RawMessage `json:"Items"`
}

// decodeItems decodes whichever container is present into target. An
// explicit null container is an empty page; a payload with neither
// container is malformed.
func (p pageResponse) decodeItems(source string, target any) error {
	raw := p.Items
	if isNull(raw) && len(p.ItemsUpper) > 0 {
		raw = p.ItemsUpper
	}
	if len(raw) == 0 {
		return errors.NewParseError("json", source, "missing 'items'", nil)
	}
	if isNull(raw) {
		return nil
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '[' {
		return errors.NewParseError("json", source, "invalid 'items'", nil)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return errors.WrapParse("json", source, err)
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type categoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Order int    `json:"order"`
}

type tagRequest struct {
	Name       string `json:"name"`
	CategoryID *int   `json:"categoryId"`
}

// Client talks to one Bakabooru instance. Session cookies from Login are
// kept for the client's lifetime.
type Client struct {
	transport *transport.Client
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...transport.Option) (*Client, error) {
	opts = append([]transport.Option{transport.WithCookieJar()}, opts...)
	tc, err := transport.New(constants.ServiceBakabooru, baseURL, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{transport: tc}, nil
}

// Login opens a session with username and password.
func (c *Client) Login(ctx context.Context, username, password string) error {
	if err := c.transport.JSON(ctx, "login", http.MethodPost, "/auth/login",
		loginRequest{Username: username, Password: password}, nil); err != nil {
		return err
	}
	logging.FromContext(ctx).Debug().Str("username", username).Msg("Logged in to bakabooru")
	return nil
}

// ListPosts returns one page of posts. Pages are 1-based.
func (c *Client) ListPosts(ctx context.Context, page, pageSize int) ([]catalogs.Post, error) {
	var resp pageResponse
	if err := c.transport.JSON(ctx, "list posts", http.MethodGet, pagePath("/posts", page, pageSize), nil, &resp); err != nil {
		return nil, err
	}

	var posts []catalogs.Post
	if err := resp.decodeItems("bakabooru list posts", &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// PostContent downloads the original media of a post.
func (c *Client) PostContent(ctx context.Context, postID int) ([]byte, error) {
	operation := fmt.Sprintf("fetch content for post %d", postID)
	req, err := c.transport.NewRequest(ctx, http.MethodGet, fmt.Sprintf("/posts/%d/content", postID), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "*/*")

	resp, err := c.transport.Do(req, operation)
	if err != nil {
		return nil, err
	}
	return transport.ReadResponse(resp, constants.ServiceBakabooru, operation)
}

// Categories lists every tag category.
func (c *Client) Categories(ctx context.Context) ([]catalogs.Category, error) {
	var categories []catalogs.Category
	if err := c.transport.JSON(ctx, "list categories", http.MethodGet, "/tagcategories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory creates a tag category.
func (c *Client) CreateCategory(ctx context.Context, name, color string, order int) (catalogs.Category, error) {
	var created catalogs.Category
	err := c.transport.JSON(ctx, fmt.Sprintf("create category '%s'", name), http.MethodPost, "/tagcategories",
		categoryRequest{Name: name, Color: color, Order: order}, &created)
	return created, err
}

// AllTags lists every tag, following pages of constants.TagPageSize until
// a short page.
func (c *Client) AllTags(ctx context.Context) ([]catalogs.Tag, error) {
	var tags []catalogs.Tag
	for page := 1; ; page++ {
		var resp pageResponse
		if err := c.transport.JSON(ctx, "list tags", http.MethodGet, pagePath("/tags", page, constants.TagPageSize), nil, &resp); err != nil {
			return nil, err
		}

		var items []catalogs.Tag
		if err := resp.decodeItems("bakabooru list tags", &items); err != nil {
			return nil, err
		}
		tags = append(tags, items...)

		if len(items) < constants.TagPageSize {
			return tags, nil
		}
	}
}

// CreateTag creates a tag with an optional category.
func (c *Client) CreateTag(ctx context.Context, name string, categoryID *int) (catalogs.Tag, error) {
	var created catalogs.Tag
	err := c.transport.JSON(ctx, fmt.Sprintf("create tag '%s'", name), http.MethodPost, "/tags",
		tagRequest{Name: name, CategoryID: categoryID}, &created)
	return created, err
}

// UpdateTag replaces a tag's name and category.
func (c *Client) UpdateTag(ctx context.Context, id int, name string, categoryID *int) (catalogs.Tag, error) {
	var updated catalogs.Tag
	err := c.transport.JSON(ctx, fmt.Sprintf("update tag '%s'", name), http.MethodPut, fmt.Sprintf("/tags/%d", id),
		tagRequest{Name: name, CategoryID: categoryID}, &updated)
	return updated, err
}

// AddTagToPost attaches a tag by name. A 409 response means the tag is
// already on the post and is reported as added=false without an error.
func (c *Client) AddTagToPost(ctx context.Context, postID int, tagName string) (bool, error) {
	operation := fmt.Sprintf("add tag '%s' to post %d", tagName, postID)
	req, err := c.transport.NewRequest(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/tags", postID), tagName)
	if err != nil {
		return false, err
	}
	resp, err := c.transport.Do(req, operation)
	if err != nil {
		return false, err
	}

	if resp.StatusCode == http.StatusConflict {
		_ = resp.Body.Close()
		return false, nil
	}
	if _, err := transport.ReadResponse(resp, constants.ServiceBakabooru, operation); err != nil {
		return false, err
	}
	return true, nil
}

// PostSources returns a post's sources, trimmed, without blanks or
// non-string entries.
func (c *Client) PostSources(ctx context.Context, postID int) ([]string, error) {
	source := fmt.Sprintf("get sources for post %d", postID)
	var raw json.RawMessage
	if err := c.transport.JSON(ctx, source, http.MethodGet, fmt.Sprintf("/posts/%d/sources", postID), nil, &raw); err != nil {
		return nil, err
	}

	var items []any
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil, errors.NewParseError("json", "bakabooru "+source, "payload is not a list", err)
	}

	sources := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				sources = append(sources, s)
			}
		}
	}
	return sources, nil
}

// SetPostSources replaces a post's full source list.
func (c *Client) SetPostSources(ctx context.Context, postID int, sources []string) error {
	if sources == nil {
		sources = []string{}
	}
	return c.transport.JSON(ctx, fmt.Sprintf("set sources for post %d", postID), http.MethodPut,
		fmt.Sprintf("/posts/%d/sources", postID), sources, nil)
}

func pagePath(path string, page, pageSize int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))
	return path + "?" + q.Encode()
}
