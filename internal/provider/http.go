package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
)

// Compile-time interface check
var _ Provider = (*HTTPClient)(nil)

// HTTPClient is a minimal JSON-RPC 2.0 client over HTTP. It serves as the
// read client for contract calls and confirmation polling. It emits no wallet
// events: HTTP transport has no push channel, so OnEvent registrations are
// accepted and never fired.
type HTTPClient struct {
	url        string
	httpClient *http.Client
	limiter    *RateLimiter
	idCounter  atomic.Uint64
}

// HTTPClientOptions contains optional configuration for the HTTP client.
type HTTPClientOptions struct {
	// Transport overrides the default HTTP transport.
	Transport *http.Transport
	// Limiter overrides the default request rate limiter.
	Limiter *RateLimiter
}

// NewHTTPClient creates a new JSON-RPC HTTP client.
func NewHTTPClient(url string, opts *HTTPClientOptions) *HTTPClient {
	c := &HTTPClient{
		url:        url,
		httpClient: &http.Client{},
		limiter:    DefaultRateLimiter(),
	}

	if opts != nil {
		if opts.Transport != nil {
			c.httpClient.Transport = opts.Transport
		}
		if opts.Limiter != nil {
			c.limiter = opts.Limiter
		}
	}

	return c
}

// request represents a JSON-RPC 2.0 request.
type request struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      uint64 `json:"id"`
}

// response represents a JSON-RPC 2.0 response.
type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error,omitempty"`
}

// Ready reports whether the client has an endpoint to talk to.
func (c *HTTPClient) Ready() bool {
	return c.url != ""
}

// Request performs a JSON-RPC call.
func (c *HTTPClient) Request(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	if params == nil {
		params = []any{}
	}

	if err := c.limiter.Wait(ctx, c.url); err != nil {
		return nil, err
	}

	req := request{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      c.idCounter.Add(1),
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sending HTTP request: %w", err)
	}
	// Body.Close error is intentionally ignored as it only fails if the
	// connection is already broken, and there's no recovery action.
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var resp response
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if resp.Error != nil {
		return nil, resp.Error
	}

	return resp.Result, nil
}

// OnEvent satisfies Provider. HTTP transport delivers no wallet events.
func (c *HTTPClient) OnEvent(_ Handler) func() {
	return func() {}
}
