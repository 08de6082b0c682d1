// Package explorer implements the HTTP client for the Hyperlane explorer
// messages API.
package explorer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"hyperliquid-bridge-lab/internal/domain"
	"hyperliquid-bridge-lab/internal/retry"
)

// Default configuration values.
const (
	DefaultBaseURL = "https://explorer.hyperlane.xyz/api"
	DefaultTimeout = 15 * time.Second

	userAgent = "hyperliquid-bridge-lab/1.0"
)

// Errors returned by the client.
var (
	// ErrMalformedPayload indicates the response body did not contain a
	// message array. Ingestion treats it as end-of-data for the sub-query.
	ErrMalformedPayload = errors.New("malformed explorer payload")

	// ErrTimeout indicates the request exceeded the client timeout.
	// Kept distinct from other transport failures for logging.
	ErrTimeout = errors.New("explorer request timed out")
)

// MessagesQuery holds the query parameters for GET /messages.
type MessagesQuery struct {
	FromTimestamp int64  // Unix ms
	Status        string // e.g. "delivered"
	Limit         int
	Offset        int
	OrderBy       string
	Order         string
	Origin        string // optional chain filter
	Destination   string // optional chain filter
}

// values encodes the query as URL parameters, omitting empty fields.
func (q MessagesQuery) values() url.Values {
	v := url.Values{}
	if q.FromTimestamp > 0 {
		v.Set("fromTimestamp", strconv.FormatInt(q.FromTimestamp, 10))
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	v.Set("offset", strconv.Itoa(q.Offset))
	if q.OrderBy != "" {
		v.Set("orderBy", q.OrderBy)
	}
	if q.Order != "" {
		v.Set("order", q.Order)
	}
	if q.Origin != "" {
		v.Set("origin", q.Origin)
	}
	if q.Destination != "" {
		v.Set("destination", q.Destination)
	}
	return v
}

// Client is an HTTP client for the explorer API with bounded retries.
type Client struct {
	baseURL string
	client  *http.Client
	policy  retry.Policy
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithRetryPolicy sets the retry policy for transient failures.
func WithRetryPolicy(p retry.Policy) ClientOption {
	return func(c *Client) {
		c.policy = p
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// NewClient creates an explorer client. An empty baseURL selects the
// public explorer endpoint.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: DefaultTimeout},
		policy:  retry.DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// messagesEnvelope tolerates loosely shaped responses: the messages field
// is captured raw and validated separately.
type messagesEnvelope struct {
	Messages json.RawMessage `json:"messages"`
}

// Messages fetches one page of raw messages. Transient failures (network
// errors, 429, 5xx) are retried with exponential backoff; a response
// without a message array returns ErrMalformedPayload.
func (c *Client) Messages(ctx context.Context, q MessagesQuery) ([]*domain.RawMessage, error) {
	reqURL := fmt.Sprintf("%s/messages?%s", c.baseURL, q.values().Encode())

	var msgs []*domain.RawMessage
	var finalErr error
	err := retry.Do(ctx, c.policy, func(ctx context.Context) error {
		page, err := c.fetchPage(ctx, reqURL)
		if err != nil {
			// Malformed payloads are final: the server answered, the
			// shape is just not usable. Do not burn retries on them.
			if errors.Is(err, ErrMalformedPayload) {
				finalErr = err
				return nil
			}
			return err
		}
		msgs = page
		finalErr = nil
		return nil
	})
	if err != nil {
		return nil, err
	}
	if finalErr != nil {
		return nil, finalErr
	}
	return msgs, nil
}

func (c *Client) fetchPage(ctx context.Context, reqURL string) ([]*domain.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) && uerr.Timeout() {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, fmt.Errorf("http request: %w", err)
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("rate limited (429)")
	}
	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("server error %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrMalformedPayload, resp.StatusCode)
	}

	var envelope messagesEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if len(envelope.Messages) == 0 {
		return nil, fmt.Errorf("%w: missing messages field", ErrMalformedPayload)
	}

	var msgs []*domain.RawMessage
	if err := json.Unmarshal(envelope.Messages, &msgs); err != nil {
		return nil, fmt.Errorf("%w: messages is not an array", ErrMalformedPayload)
	}
	if msgs == nil {
		msgs = []*domain.RawMessage{}
	}
	return msgs, nil
}
