package n8n

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	kerrors "github.com/PolarWolf314/flowsync/internal/errors"
	logger "github.com/PolarWolf314/flowsync/internal/logging"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	// DefaultTimeout bounds a single HTTP attempt.
	DefaultTimeout = 30 * time.Second

	// DefaultRetryMax is the number of retries after the first attempt.
	DefaultRetryMax = 3

	// pageSize is the largest page the public API serves.
	pageSize = 250

	apiKeyHeader = "X-N8N-API-KEY"
)

// Client talks to one n8n instance.
type Client struct {
	cfg  Config
	http *retryablehttp.Client
	log  logger.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http.HTTPClient = hc
	}
}

// WithRetryMax sets how many times a failed request is retried.
func WithRetryMax(n int) ClientOption {
	return func(c *Client) {
		c.http.RetryMax = n
	}
}

// WithRetryWait sets the backoff bounds between retries.
func WithRetryWait(minWait, maxWait time.Duration) ClientOption {
	return func(c *Client) {
		c.http.RetryWaitMin = minWait
		c.http.RetryWaitMax = maxWait
	}
}

// WithLogger routes request and retry logging through l.
func WithLogger(l logger.Logger) ClientOption {
	return func(c *Client) {
		c.log = l
		c.http.Logger = retryLogger{l}
	}
}

// NewClient creates a client for the instance described by cfg.
func NewClient(cfg Config, opts ...ClientOption) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = DefaultRetryMax
	rc.HTTPClient.Timeout = DefaultTimeout
	rc.Logger = nil
	// Hand the final response back so its status can be classified.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.CheckRetry = retryPolicy

	c := &Client{cfg: cfg, http: rc}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List returns every workflow on the server, following pagination cursors.
func (c *Client) List(ctx context.Context) ([]Workflow, error) {
	var all []Workflow
	cursor := ""
	for {
		q := url.Values{}
		q.Set("limit", fmt.Sprint(pageSize))
		if cursor != "" {
			q.Set("cursor", cursor)
		}

		var page workflowList
		if err := c.do(ctx, "list workflows", http.MethodGet, "workflows?"+q.Encode(), nil, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Data...)

		if page.NextCursor == nil || *page.NextCursor == "" {
			return all, nil
		}
		cursor = *page.NextCursor
		c.log.Debugf("Fetching next page of workflows (cursor %s)", cursor)
	}
}

// Create creates an empty workflow called name.
func (c *Client) Create(ctx context.Context, name string) (*Workflow, error) {
	body := createRequest{
		Name:        name,
		Nodes:       []any{},
		Connections: map[string]any{},
		Settings:    map[string]any{},
	}
	var wf Workflow
	if err := c.do(ctx, fmt.Sprintf("create workflow %q", name), http.MethodPost, "workflows", body, &wf); err != nil {
		return nil, err
	}
	return &wf, nil
}

// Get downloads the full document for workflow id.
func (c *Client) Get(ctx context.Context, id string) (Document, error) {
	var doc Document
	if err := c.do(ctx, "get workflow "+id, http.MethodGet, "workflows/"+url.PathEscape(id), nil, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("get workflow %s: %w: empty document", id, kerrors.ErrTransport)
	}
	return doc, nil
}

// Update replaces workflow id with doc. Callers are expected to sanitize
// doc first; the API rejects read-only fields.
func (c *Client) Update(ctx context.Context, id string, doc Document) (*Workflow, error) {
	var wf Workflow
	if err := c.do(ctx, "update workflow "+id, http.MethodPut, "workflows/"+url.PathEscape(id), doc, &wf); err != nil {
		return nil, err
	}
	return &wf, nil
}

// retryPolicy is retryablehttp.DefaultRetryPolicy except that a POST is never
// resent once the server has answered: the workflow may already exist.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if resp != nil && resp.Request != nil && resp.Request.Method == http.MethodPost {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var raw []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshal request body: %w", op, err)
		}
		raw = data
	}

	endpoint := c.cfg.Endpoint(path)
	req, err := retryablehttp.NewRequestWithContext(ctx, method, endpoint, raw)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, kerrors.ErrTransport, err)
	}
	req.Header.Set(apiKeyHeader, c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")
	if raw != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debugf("%s %s", method, endpoint)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, kerrors.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return newAPIError(op, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w: decode response: %w", op, kerrors.ErrTransport, err)
	}
	return nil
}

// APIError is returned for any response with status >= 400.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
	kind       error
}

func newAPIError(op string, resp *http.Response) *APIError {
	e := &APIError{Op: op, StatusCode: resp.StatusCode}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var body apiErrorBody
	if json.Unmarshal(data, &body) == nil && body.Message != "" {
		e.Message = body.Message
	} else {
		e.Message = http.StatusText(resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		e.kind = kerrors.ErrUnauthorized
	case http.StatusNotFound:
		e.kind = kerrors.ErrNotFound
	default:
		e.kind = kerrors.ErrTransport
	}
	return e
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %v (HTTP %d): %s", e.Op, e.kind, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.kind
}

// retryLogger adapts logger.Logger to retryablehttp.LeveledLogger.
type retryLogger struct {
	log logger.Logger
}

func (r retryLogger) Error(msg string, kv ...any) { r.log.Debugf("%s %v", msg, kv) }
func (r retryLogger) Info(msg string, kv ...any)  { r.log.Debugf("%s %v", msg, kv) }
func (r retryLogger) Debug(msg string, kv ...any) { r.log.Debugf("%s %v", msg, kv) }
func (r retryLogger) Warn(msg string, kv ...any)  { r.log.Warnf("%s %v", msg, kv) }
