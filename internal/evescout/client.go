package evescout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"response-mapper/internal/logging"
	"response-mapper/internal/mapper"
	"response-mapper/internal/mapping"
	"response-mapper/internal/node"
)

const (
	// DefaultBaseURL is the EVE Scout public API root.
	DefaultBaseURL = "https://api.eve-scout.com/v2/public"
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 10 * time.Second
	// DefaultUserAgent identifies the client to EVE Scout.
	DefaultUserAgent = "response-mapper"
	// DefaultRetries is the number of retries after a transient failure.
	DefaultRetries = 2
	// DefaultBackoff is the wait before the first retry; later retries wait
	// proportionally longer.
	DefaultBackoff = 500 * time.Millisecond

	signaturesPath = "signatures"
	maxBodySize    = 16 << 20
)

// StatusError reports a response status the client does not accept.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %s", e.Status)
	}

	return fmt.Sprintf("unexpected status %s: %s", e.Status, e.Body)
}

// Client talks to the EVE Scout public API.
type Client struct {
	baseURL   string
	http      *http.Client
	timeout   time.Duration
	userAgent string
	retries   int
	backoff   time.Duration
	log       logging.Logger
	table     *mapping.Table
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. WithTimeout is ignored then.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithRetries sets how often a transient failure is retried.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retries = n
		}
	}
}

// WithBackoff sets the wait before the first retry.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.backoff = d
		}
	}
}

// WithLogger sets the logger for requests and mapping decisions.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithConnectionTable replaces ConnectionTable, e.g. with one loaded from a
// table file.
func WithConnectionTable(t *mapping.Table) Option {
	return func(c *Client) {
		if t != nil {
			c.table = t
		}
	}
}

// New creates a client for the API rooted at baseURL. An empty baseURL
// selects DefaultBaseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: expected http(s)://host[/path]", baseURL)
	}

	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
		retries:   DefaultRetries,
		backoff:   DefaultBackoff,
		log:       logging.Nop(),
		table:     ConnectionTable,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}

	return c, nil
}

// Signatures fetches the current signature list. An error payload from
// upstream is returned as the body, not as an error.
func (c *Client) Signatures(ctx context.Context) (any, error) {
	return c.getJSON(ctx, signaturesPath)
}

// TheraConnections fetches the signatures and builds the connections
// response.
func (c *Client) TheraConnections(ctx context.Context) (*node.Record, error) {
	body, err := c.Signatures(ctx)
	if err != nil {
		return nil, err
	}

	b := Builder{
		Engine: mapper.New(mapper.WithLogger(c.log)),
		Table:  c.table,
		Log:    c.log,
	}

	return b.Build(body)
}

// getJSON GETs path below the base URL, retrying transient failures with
// a linear backoff.
func (c *Client) getJSON(ctx context.Context, path string) (any, error) {
	endpoint := c.baseURL + "/" + path

	var lastErr error

	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			wait := time.Duration(attempt) * c.backoff
			c.log.Warnf("retrying GET %s in %s (%d/%d): %v", endpoint, wait, attempt, c.retries, lastErr)

			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("GET %s: %w", endpoint, ctx.Err())
			case <-time.After(wait):
			}
		}

		body, err := c.get(ctx, endpoint)
		if err == nil {
			return body, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			err = fmt.Errorf("%w: %w", ctxErr, err)
		}

		if ctx.Err() != nil || !IsTransient(err) {
			return nil, fmt.Errorf("GET %s: %w", endpoint, err)
		}

		lastErr = err
	}

	return nil, fmt.Errorf("GET %s: giving up after %d attempts: %w", endpoint, c.retries+1, lastErr)
}

// get performs one request.
func (c *Client) get(ctx context.Context, endpoint string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.log.Debugf("GET %s", endpoint)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Infof("GET %s: %s (%d bytes)", endpoint, resp.Status, len(data))

	statusErr := &StatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       snippet(data),
	}

	if IsTransient(statusErr) {
		return nil, statusErr
	}

	decoded, decodeErr := node.DecodeJSON(data)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if _, ok := ErrorMessage(decoded); decodeErr == nil && ok {
			return decoded, nil
		}

		return nil, statusErr
	}

	if decodeErr != nil {
		return nil, decodeErr
	}

	return decoded, nil
}

// snippet shortens a response body for error messages.
func snippet(data []byte) string {
	const limit = 200

	s := strings.TrimSpace(string(data))
	if len(s) > limit {
		return s[:limit] + "..."
	}

	return s
}

// IsTransient reports whether err is worth retrying: a 5xx or 429 status
// or a transport error other than cancellation.
func IsTransient(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode >= http.StatusInternalServerError || se.StatusCode == http.StatusTooManyRequests
	}

	var ue *url.Error

	return errors.As(err, &ue) && !errors.Is(err, context.Canceled)
}
