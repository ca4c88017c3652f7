package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"tracker/internal/config"
	"tracker/internal/store"
)

// API revisions this client understands. The revision is sent as the
// Notion-Version header and decides both the query endpoint and how the
// collection schema is reached.
const (
	RevisionDatabase   = "2022-06-28"
	RevisionDataSource = "2025-09-03"
)

// Client implements store.Client against the Notion REST API.
// It is safe for concurrent use by multiple goroutines.
type Client struct {
	http       *http.Client
	baseURL    string
	apiKey     string
	revision   string
	databaseID string
	schema     schemaSource

	mu           sync.Mutex
	dataSourceID string // resolved lazily, memoized for the client's lifetime
}

// NewClient builds a Notion-backed store client from config.
// It validates required settings but performs no network I/O.
func NewClient(cfg config.NotionConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("notion api key is required")
	}
	if cfg.DatabaseID == "" {
		return nil, fmt.Errorf("notion database id is required")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("notion base url is required")
	}

	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	c := &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		revision:   cfg.APIRevision,
		databaseID: cfg.DatabaseID,
	}

	switch cfg.APIRevision {
	case RevisionDataSource:
		c.schema = &dataSourceSchema{c: c}
	case RevisionDatabase, "":
		c.revision = RevisionDatabase
		c.schema = &databaseSchema{c: c}
	default:
		return nil, fmt.Errorf("unsupported notion api revision: %s", cfg.APIRevision)
	}

	return c, nil
}

// do sends one API request and decodes the response into out (if non-nil).
// Transport failures, non-2xx statuses, and undecodable bodies all become
// *store.UpstreamError so callers never see a raw upstream body.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var rdr *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &store.UpstreamError{Op: op, Message: "encode request: " + err.Error()}
		}
		rdr = bytes.NewReader(b)
	} else {
		rdr = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return &store.UpstreamError{Op: op, Message: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Notion-Version", c.revision)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &store.UpstreamError{Op: op, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &store.UpstreamError{Op: op, Status: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &store.UpstreamError{Op: op, Message: "decode response: " + err.Error()}
		}
	}
	return nil
}

type richTextFilter struct {
	Equals  string `json:"equals,omitempty"`
	IsEmpty bool   `json:"is_empty,omitempty"`
}

type propertyFilter struct {
	Property string          `json:"property"`
	RichText *richTextFilter `json:"rich_text,omitempty"`
}

type querySort struct {
	Timestamp string `json:"timestamp"`
	Direction string `json:"direction"`
}

type queryRequest struct {
	Filter      *propertyFilter `json:"filter,omitempty"`
	Sorts       []querySort     `json:"sorts,omitempty"`
	StartCursor string          `json:"start_cursor,omitempty"`
}

type queryResponse struct {
	Results    []store.Record `json:"results"`
	HasMore    bool           `json:"has_more"`
	NextCursor string         `json:"next_cursor"`
}

// queryPath picks the query endpoint for the configured revision. The
// data-source revision queries the database's data source, not the database.
func (c *Client) queryPath(ctx context.Context) (string, error) {
	if c.revision != RevisionDataSource {
		return "/v1/databases/" + c.databaseID + "/query", nil
	}
	dsID, err := c.resolveDataSourceID(ctx)
	if err != nil {
		return "", err
	}
	return "/v1/data_sources/" + dsID + "/query", nil
}

// resolveDataSourceID fetches the database description once to learn which
// data source holds its records, then reuses the answer.
func (c *Client) resolveDataSourceID(ctx context.Context) (string, error) {
	c.mu.Lock()
	id := c.dataSourceID
	c.mu.Unlock()
	if id != "" {
		return id, nil
	}

	// The lock is not held across the fetch; concurrent first callers may
	// both fetch, and the first answer back wins.
	var db databaseResponse
	if err := c.do(ctx, "resolve data source", http.MethodGet, "/v1/databases/"+c.databaseID, nil, &db); err != nil {
		return "", err
	}
	if len(db.DataSources) == 0 {
		return "", &store.UpstreamError{Op: "resolve data source", Message: "database has no data sources"}
	}

	c.mu.Lock()
	if c.dataSourceID == "" {
		c.dataSourceID = db.DataSources[0].ID
	}
	id = c.dataSourceID
	c.mu.Unlock()
	return id, nil
}

// queryRecords runs one filtered query, following pagination to the end.
func (c *Client) queryRecords(ctx context.Context, op string, q queryRequest) ([]store.Record, error) {
	path, err := c.queryPath(ctx)
	if err != nil {
		return nil, err
	}

	var records []store.Record
	for {
		var page queryResponse
		if err := c.do(ctx, op, http.MethodPost, path, q, &page); err != nil {
			return nil, err
		}
		records = append(records, page.Results...)
		if !page.HasMore || page.NextCursor == "" {
			break
		}
		q.StartCursor = page.NextCursor
	}
	return records, nil
}

// QueryByPublicID returns records matching the public identifier, newest
// created first so a duplicate resolves deterministically to one record.
func (c *Client) QueryByPublicID(ctx context.Context, publicID string) ([]store.Record, error) {
	return c.queryRecords(ctx, "query by public id", queryRequest{
		Filter: &propertyFilter{
			Property: store.FieldPublicID,
			RichText: &richTextFilter{Equals: publicID},
		},
		Sorts: []querySort{{Timestamp: "created_time", Direction: "descending"}},
	})
}

// QueryMissingPublicID returns records whose public-id property is empty.
func (c *Client) QueryMissingPublicID(ctx context.Context) ([]store.Record, error) {
	return c.queryRecords(ctx, "query missing public id", queryRequest{
		Filter: &propertyFilter{
			Property: store.FieldPublicID,
			RichText: &richTextFilter{IsEmpty: true},
		},
	})
}

// GetRecord retrieves one page by its store identifier.
func (c *Client) GetRecord(ctx context.Context, recordID string) (*store.Record, error) {
	var rec store.Record
	if err := c.do(ctx, "get record", http.MethodGet, "/v1/pages/"+url.PathEscape(recordID), nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

type textContent struct {
	Content string `json:"content"`
}

type textPayload struct {
	Type string      `json:"type"`
	Text textContent `json:"text"`
}

type richTextWrite struct {
	RichText []textPayload `json:"rich_text"`
}

type urlWrite struct {
	URL string `json:"url"`
}

// SetPublicID writes the identifier and its canonical URL to the record.
func (c *Client) SetPublicID(ctx context.Context, recordID, publicID, canonicalURL string) error {
	body := struct {
		Properties map[string]any `json:"properties"`
	}{
		Properties: map[string]any{
			store.FieldPublicID: richTextWrite{
				RichText: []textPayload{{Type: "text", Text: textContent{Content: publicID}}},
			},
			store.FieldURL: urlWrite{URL: canonicalURL},
		},
	}
	return c.do(ctx, "set public id", http.MethodPatch, "/v1/pages/"+url.PathEscape(recordID), body, nil)
}

type commentsResponse struct {
	Results    []store.Comment `json:"results"`
	HasMore    bool            `json:"has_more"`
	NextCursor string          `json:"next_cursor"`
}

// ListComments returns the record's comment thread in store order,
// following pagination to the end.
func (c *Client) ListComments(ctx context.Context, recordID string) ([]store.Comment, error) {
	var comments []store.Comment
	cursor := ""
	for {
		q := url.Values{"block_id": {recordID}}
		if cursor != "" {
			q.Set("start_cursor", cursor)
		}
		var page commentsResponse
		if err := c.do(ctx, "list comments", http.MethodGet, "/v1/comments?"+q.Encode(), nil, &page); err != nil {
			return nil, err
		}
		comments = append(comments, page.Results...)
		if !page.HasMore || page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}
	return comments, nil
}

// RetrieveSchema returns the collection's property descriptions through the
// schema source selected at construction time.
func (c *Client) RetrieveSchema(ctx context.Context) (*store.Schema, error) {
	return c.schema.fetch(ctx)
}
