// internal/app/system/runapi/client.go
package runapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/runpro9ja/adminhub/internal/app/system/timeouts"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the production RunPro9ja API.
const DefaultBaseURL = "https://runpro9ja-pxqoa.ondigitalocean.app/api"

// maxBodyBytes caps how much of a response we are willing to read.
const maxBodyBytes = 8 << 20

// TokenSource supplies the bearer token for a call. It is consulted on
// every request, never cached by the client.
type TokenSource interface {
	Token(ctx context.Context) string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(ctx context.Context) string

func (f TokenFunc) Token(ctx context.Context) string { return f(ctx) }

// Options configures a Client.
type Options struct {
	BaseURL    string
	Tokens     TokenSource
	HTTPClient *http.Client

	// RatePerSecond and Burst bound outbound traffic. Zero disables limiting.
	RatePerSecond float64
	Burst         int

	Logger *zap.Logger
}

// Client talks to the RunPro9ja admin API.
type Client struct {
	base    *url.URL
	http    *http.Client
	tokens  TokenSource
	limiter *rate.Limiter
	flight  singleflight.Group
	log     *zap.Logger
}

// New builds a Client from opts.
func New(opts Options) (*Client, error) {
	raw := strings.TrimSpace(opts.BaseURL)
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("api base url %q must be http or https", raw)
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	tokens := opts.Tokens
	if tokens == nil {
		tokens = TokenFunc(func(context.Context) string { return "" })
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		base:   base,
		http:   hc,
		tokens: tokens,
		log:    logger,
	}
	if opts.RatePerSecond > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RatePerSecond), burst)
	}
	return c, nil
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string { return c.base.String() }

// Get performs a GET. Identical concurrent GETs made with the same token
// share one round trip. The shared call is detached from any one caller's
// cancellation and bounded by timeouts.API(); each caller still stops
// waiting when its own ctx is done.
func (c *Client) Get(ctx context.Context, path string, q url.Values) (Envelope, error) {
	target := c.resolve(path, q)
	tok := c.tokens.Token(ctx)
	ch := c.flight.DoChan(tok+" "+target, func() (any, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeouts.API())
		defer cancel()
		return c.do(callCtx, http.MethodGet, target, nil)
	})

	select {
	case res := <-ch:
		if res.Shared {
			c.log.Debug("api call shared", zap.String("url", target))
		}
		if res.Err != nil {
			return Envelope{}, res.Err
		}
		return res.Val.(Envelope), nil
	case <-ctx.Done():
		return Envelope{}, fmt.Errorf("GET %s: %w", target, ctx.Err())
	}
}

// Send performs a request with an optional JSON body.
func (c *Client) Send(ctx context.Context, method, path string, body any) (Envelope, error) {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return Envelope{}, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		payload = b
	}
	return c.do(ctx, method, c.resolve(path, nil), payload)
}

// Ping reports whether the API host answers HTTP at all. Any status code
// counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.base.String(), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *Client) resolve(path string, q url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(c.base.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func (c *Client) do(ctx context.Context, method, target string, body []byte) (Envelope, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return Envelope{}, fmt.Errorf("%s %s: rate limit wait: %w", method, target, err)
		}
	}

	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, rdr)
	if err != nil {
		return Envelope{}, fmt.Errorf("build %s %s: %w", method, target, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// A missing token does not block the call; the API decides.
	if tok := c.tokens.Token(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("api call failed",
			zap.String("method", method),
			zap.String("url", target),
			zap.String("request_id", reqID),
			zap.Error(err))
		return Envelope{}, fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Envelope{}, fmt.Errorf("%s %s: read body: %w", method, target, err)
	}

	c.log.Debug("api call",
		zap.String("method", method),
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", reqID))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{Method: method, URL: target, Code: resp.StatusCode}
		var env Envelope
		if json.Unmarshal(raw, &env) == nil {
			se.Message = env.Message
		}
		return Envelope{}, se
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, fmt.Errorf("%s %s: %w", method, target, err)
	}
	return env, nil
}

// StatusError is a non-2xx response from the API.
type StatusError struct {
	Method  string
	URL     string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.Code, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.Code)
}

// IsUnauthorized reports whether err is (or wraps) an HTTP 401.
func IsUnauthorized(err error) bool { return hasStatus(err, http.StatusUnauthorized) }

// IsForbidden reports whether err is (or wraps) an HTTP 403.
func IsForbidden(err error) bool { return hasStatus(err, http.StatusForbidden) }

// IsNotFound reports whether err is (or wraps) an HTTP 404.
func IsNotFound(err error) bool { return hasStatus(err, http.StatusNotFound) }

func hasStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
