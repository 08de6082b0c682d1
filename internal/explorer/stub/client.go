// Package stub provides a scripted message source for tests.
package stub

import (
	"context"
	"sync"

	"hyperliquid-bridge-lab/internal/domain"
	"hyperliquid-bridge-lab/internal/explorer"
)

// Response is one scripted reply.
type Response struct {
	Messages []*domain.RawMessage
	Err      error
}

// Client replays scripted responses in order and records the queries it
// received. Once the script is exhausted it returns empty pages.
type Client struct {
	mu        sync.Mutex
	responses []Response
	byFilter  map[string][]Response // keyed by origin|destination, optional
	Queries   []explorer.MessagesQuery
}

// NewClient creates a stub that replays responses in order.
func NewClient(responses ...Response) *Client {
	return &Client{responses: responses}
}

// NewFilteredClient creates a stub that scripts responses per directional
// filter. The key is "origin|destination" with empty sides allowed.
func NewFilteredClient(byFilter map[string][]Response) *Client {
	return &Client{byFilter: byFilter}
}

// Messages implements the ingestion source contract.
func (c *Client) Messages(_ context.Context, q explorer.MessagesQuery) ([]*domain.RawMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Queries = append(c.Queries, q)

	if c.byFilter != nil {
		key := q.Origin + "|" + q.Destination
		script := c.byFilter[key]
		if len(script) == 0 {
			return []*domain.RawMessage{}, nil
		}
		resp := script[0]
		c.byFilter[key] = script[1:]
		return resp.Messages, resp.Err
	}

	if len(c.responses) == 0 {
		return []*domain.RawMessage{}, nil
	}
	resp := c.responses[0]
	c.responses = c.responses[1:]
	return resp.Messages, resp.Err
}

// CallCount returns how many queries the stub has served.
func (c *Client) CallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Queries)
}
