// Package api is the HTTP client for the favorites server. One method per
// server operation; every method issues a single request, checks the status
// and decodes the body. No retries, no backoff; failures propagate to the
// caller as *Error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/favtui/fav/internal/model"
)

// DefaultPageSize is the page size used for paginated listings.
const DefaultPageSize = 50

// DefaultSearchLimit caps vector search results; the endpoint is not paginated.
const DefaultSearchLimit = 50

// Client talks to the favorites server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for the given base URL (scheme + host, no
// trailing slash required).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// errorBody is the shape of the server's non-2xx JSON responses.
type errorBody struct {
	Detail string `json:"detail"`
}

// do issues the request and decodes a 2xx JSON body into out (out may be nil
// for empty responses). Non-2xx responses become *Error with the server's
// detail message when the body carries one.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Op: op, Err: fmt.Errorf("marshal request: %w", err)}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return &Error{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Op: op, Status: resp.StatusCode}
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil {
			apiErr.Detail = eb.Detail
		}
		return apiErr
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return &Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("unmarshal response: %w", err)}
		}
	}
	return nil
}

// pageQuery builds the skip/limit query parameters.
func pageQuery(skip, limit int) url.Values {
	return url.Values{
		"skip":  {strconv.Itoa(skip)},
		"limit": {strconv.Itoa(limit)},
	}
}

// Folders fetches the full nested folder tree, root wrapper included.
func (c *Client) Folders(ctx context.Context) ([]model.Folder, error) {
	var folders []model.Folder
	if err := c.do(ctx, "list folders", http.MethodGet, "/folders", nil, nil, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

// CreateFolderParams holds parameters for CreateFolder.
type CreateFolderParams struct {
	Name        string `json:"name"`
	ParentID    int    `json:"parent_id"`
	Description string `json:"description,omitempty"`
}

// CreateFolder creates a folder under the given parent.
func (c *Client) CreateFolder(ctx context.Context, params CreateFolderParams) (model.Folder, error) {
	var folder model.Folder
	err := c.do(ctx, "create folder", http.MethodPost, "/folders", nil, params, &folder)
	return folder, err
}

// RenameFolder changes a folder's name. The server rejects the root folder.
func (c *Client) RenameFolder(ctx context.Context, id int, name string) (model.Folder, error) {
	var folder model.Folder
	body := map[string]string{"name": name}
	err := c.do(ctx, "rename folder", http.MethodPatch, "/folders/"+strconv.Itoa(id), nil, body, &folder)
	return folder, err
}

// DeleteFolder deletes a folder. The server rejects the root folder.
func (c *Client) DeleteFolder(ctx context.Context, id int) error {
	return c.do(ctx, "delete folder", http.MethodDelete, "/folders/"+strconv.Itoa(id), nil, nil, nil)
}

// Favorites fetches a page of all favorites, unscoped.
func (c *Client) Favorites(ctx context.Context, skip, limit int) ([]model.Favorite, error) {
	var favorites []model.Favorite
	err := c.do(ctx, "list favorites", http.MethodGet, "/favorites", pageQuery(skip, limit), nil, &favorites)
	return favorites, err
}

// FolderFavorites fetches a page of favorites in a folder.
func (c *Client) FolderFavorites(ctx context.Context, folderID, skip, limit int) ([]model.Favorite, error) {
	var favorites []model.Favorite
	path := "/folders/" + strconv.Itoa(folderID) + "/favorites"
	err := c.do(ctx, "list folder favorites", http.MethodGet, path, pageQuery(skip, limit), nil, &favorites)
	return favorites, err
}

// FuzzyTagFavorites fetches a page of favorites whose tags fuzzy-match the
// query. Matching happens server-side.
func (c *Client) FuzzyTagFavorites(ctx context.Context, query string, skip, limit int) ([]model.Favorite, error) {
	var favorites []model.Favorite
	path := "/tags/fuzzy/" + url.PathEscape(query) + "/favorites"
	err := c.do(ctx, "fuzzy tag search", http.MethodGet, path, pageQuery(skip, limit), nil, &favorites)
	return favorites, err
}

// VectorSearch fetches favorites ranked by semantic relevance to the query.
// Server order is kept as-is.
func (c *Client) VectorSearch(ctx context.Context, query string, limit int) ([]model.Favorite, error) {
	var favorites []model.Favorite
	q := url.Values{
		"query": {query},
		"limit": {strconv.Itoa(limit)},
	}
	err := c.do(ctx, "vector search", http.MethodGet, "/favorites/search/vector", q, nil, &favorites)
	return favorites, err
}

// UpdateFavoriteParams holds the partial update for UpdateFavorite. Nil
// fields are left unchanged. Tags, when set, is the favorite's full tag name
// list; the server resolves names to tags, creating unknown ones.
type UpdateFavoriteParams struct {
	Title   *string   `json:"title,omitempty"`
	Summary *string   `json:"summary,omitempty"`
	Tags    *[]string `json:"tags,omitempty"`
}

// UpdateFavorite applies a partial update and returns the server's
// authoritative favorite.
func (c *Client) UpdateFavorite(ctx context.Context, id int, params UpdateFavoriteParams) (model.Favorite, error) {
	var favorite model.Favorite
	err := c.do(ctx, "update favorite", http.MethodPut, "/favorites/"+strconv.Itoa(id), nil, params, &favorite)
	return favorite, err
}

// DeleteFavorite deletes a favorite by id.
func (c *Client) DeleteFavorite(ctx context.Context, id int) error {
	return c.do(ctx, "delete favorite", http.MethodDelete, "/favorites/"+strconv.Itoa(id), nil, nil, nil)
}

// Tags fetches all tags, used for suggestion lists.
func (c *Client) Tags(ctx context.Context) ([]model.Tag, error) {
	var tags []model.Tag
	err := c.do(ctx, "list tags", http.MethodGet, "/tags", nil, nil, &tags)
	return tags, err
}

// CreateTag creates a tag by name and returns it with its server-assigned id.
func (c *Client) CreateTag(ctx context.Context, name string) (model.Tag, error) {
	var tag model.Tag
	body := map[string]string{"name": name}
	err := c.do(ctx, "create tag", http.MethodPost, "/tags", nil, body, &tag)
	return tag, err
}

// Tasks fetches the current background task list.
func (c *Client) Tasks(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := c.do(ctx, "list tasks", http.MethodGet, "/favorites/tasks", nil, nil, &tasks)
	return tasks, err
}

// RestartImport restarts the server's import task.
func (c *Client) RestartImport(ctx context.Context) error {
	return c.do(ctx, "restart import", http.MethodPost, "/favorites/restart-import", nil, nil, nil)
}

// ImportFavorites sends an exported favorite array for server-side import.
func (c *Client) ImportFavorites(ctx context.Context, favorites []model.Favorite) error {
	return c.do(ctx, "import favorites", http.MethodPost, "/favorites/import", nil, favorites, nil)
}

// ResetDatabase asks the server to reset its database.
func (c *Client) ResetDatabase(ctx context.Context) error {
	return c.do(ctx, "reset database", http.MethodPost, "/reset", nil, nil, nil)
}

// ReindexDatabase asks the server to rebuild its search index.
func (c *Client) ReindexDatabase(ctx context.Context) error {
	return c.do(ctx, "reindex database", http.MethodPost, "/reindex", nil, nil, nil)
}
