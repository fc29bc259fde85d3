// Package cms queries a Sanity-compatible content API with GROQ.
package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxResponseBytes = 4 << 20

type Client struct {
	cfg  Config
	http *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default instrumented client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	c := &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout:   cfg.Timeout(),
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type queryResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Description string `json:"description"`
	} `json:"error,omitempty"`
}

// Query runs a GROQ query and returns the raw "result" member.
// Params are encoded as $name query arguments.
func (c *Client) Query(ctx context.Context, groq string, params map[string]any) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("query", groq)
	for name, v := range params {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("cms: encode param %s: %w", name, err)
		}
		q.Set("$"+name, string(b))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.QueryURL()+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("cms: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cms: request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("cms: read response: %w", err)
	}

	var out queryResponse
	decodeErr := json.Unmarshal(body, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e := &Error{Status: resp.StatusCode}
		if decodeErr == nil && out.Error != nil {
			e.Message = out.Error.Description
		}
		return nil, e
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("cms: decode response: %w", decodeErr)
	}
	if len(out.Result) == 0 {
		return json.RawMessage("null"), nil
	}
	return out.Result, nil
}
