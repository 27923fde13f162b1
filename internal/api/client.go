package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const maxBodyBytes = 4 << 20 // generated letters can get long, but not this long

// TokenSource hands out the current bearer token, or "" when there is no
// session. The session store implements it; the client never caches tokens.
type TokenSource interface {
	Token() string
}

type Client struct {
	base    string
	httpc   *http.Client
	limiter *rate.Limiter
	tokens  TokenSource
}

type Options struct {
	Host           string
	Timeout        time.Duration
	RequestsPerSec float64
	Tokens         TokenSource
}

func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	rps := opts.RequestsPerSec
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base:    NormalizeBase(opts.Host),
		httpc:   &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), 2),
		tokens:  opts.Tokens,
	}
}

// NormalizeBase resolves the configured host into the API base URL. The path
// must end with exactly one /api/v1 segment: one trailing slash is stripped,
// and the suffix is appended when missing.
func NormalizeBase(host string) string {
	base := strings.TrimSpace(host)
	base = strings.TrimSuffix(base, "/")
	if !strings.HasSuffix(base, "/api/v1") {
		base += "/api/v1"
	}
	return base
}

// BaseURL is the resolved base, exposed for logging.
func (c *Client) BaseURL() string { return c.base }

// call describes one backend request. op is the semantic purpose used in
// error messages.
type call struct {
	method      string
	path        string
	op          string
	params      url.Values
	body        io.Reader
	contentType string
	auth        bool
}

func (c *Client) do(ctx context.Context, cl call) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &Error{Op: cl.op, cause: err}
	}

	u := c.base + cl.path
	if len(cl.params) > 0 {
		u += "?" + cl.params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u, cl.body)
	if err != nil {
		return nil, &Error{Op: cl.op, cause: err}
	}
	req.Header.Set("Accept", "application/json")
	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}
	if cl.auth {
		// Attach the header only when a token actually exists. An empty
		// bearer header confuses some auth middlewares into a 403.
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &Error{Op: cl.op, cause: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &Error{Op: cl.op, cause: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{Op: cl.op, Status: resp.StatusCode}
	}
	return b, nil
}

func (c *Client) getJSON(ctx context.Context, cl call, v any) error {
	b, err := c.do(ctx, cl)
	if err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	if err := json.Unmarshal(b, v); err != nil {
		return &Error{Op: cl.op, cause: err}
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, cl call, payload any, v any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return &Error{Op: cl.op, cause: err}
	}
	cl.body = strings.NewReader(string(b))
	cl.contentType = "application/json"
	return c.getJSON(ctx, cl, v)
}
