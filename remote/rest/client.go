// Package rest implements the remote ports against the HR dashboard backend
// over fasthttp. All response and transport failures are normalized into
// domain errors before they reach a store.
package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/hrboard/client/credentials"
	"github.com/hrboard/client/domain"
)

const defaultTimeout = 30 * time.Second

// Doer abstracts the fasthttp client so tests can stub the wire.
type Doer interface {
	DoTimeout(req *fasthttp.Request, resp *fasthttp.Response, timeout time.Duration) error
}

// Client is the outbound HTTP adapter. It attaches the bearer token from the
// credential store, stamps a request id, and converts every failure into a
// typed domain error. It never retries.
type Client struct {
	baseURL string
	http    Doer
	tokens  credentials.Store
	timeout time.Duration
	logger  *zap.Logger

	mu             sync.Mutex
	onUnauthorized []func()
}

// Options configures optional collaborators; zero values get defaults.
type Options struct {
	HTTP    Doer
	Tokens  credentials.Store
	Timeout time.Duration
	Logger  *zap.Logger
}

func NewClient(baseURL string, opts Options) *Client {
	if opts.HTTP == nil {
		opts.HTTP = &fasthttp.Client{
			Name:                "hrboard-client",
			MaxIdleConnDuration: time.Minute,
		}
	}
	if opts.Tokens == nil {
		opts.Tokens = credentials.NewMemory()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    opts.HTTP,
		tokens:  opts.Tokens,
		timeout: opts.Timeout,
		logger:  opts.Logger,
	}
}

// OnUnauthorized registers a hook fired after any 401 response has cleared
// the credential store. Callers use it to reset the session and signal the
// sign-in redirect.
func (c *Client) OnUnauthorized(fn func()) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.onUnauthorized = append(c.onUnauthorized, fn)
	c.mu.Unlock()
}

// Do issues an authenticated JSON request and decodes the body into out.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, body, out, true)
}

// DoAnonymous issues a request without credentials. Login and registration
// use it so a stale token can never shadow fresh credentials.
func (c *Client) DoAnonymous(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, body, out, false)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, withAuth bool) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.SetContentType("application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if withAuth {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+token)
		}
	}

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return domain.WrapError(domain.ErrCodeInvalid, "encode request body", err)
		}
		req.SetBody(payload)
	}

	if err := c.http.DoTimeout(req, resp, c.effectiveTimeout(ctx)); err != nil {
		c.logger.Warn("request failed without response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return classifyTransport(err)
	}

	status := resp.StatusCode()
	if status >= http.StatusBadRequest {
		return c.classifyStatus(method, path, status, resp.Body())
	}

	if out != nil && len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return domain.WrapError(domain.ErrCodeServer, "decode response body", err)
		}
	}
	return nil
}

func (c *Client) effectiveTimeout(ctx context.Context) time.Duration {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		timeout = time.Millisecond
	}
	return timeout
}

func (c *Client) classifyStatus(method, path string, status int, body []byte) error {
	msg := errorMessage(body, status)
	switch {
	case status == http.StatusUnauthorized:
		// Forced global invalidation: any 401 anywhere tears the session down.
		c.tokens.Clear()
		c.notifyUnauthorized()
		return domain.NewError(domain.ErrCodeUnauthorized, msg)
	case status == http.StatusForbidden:
		return domain.NewError(domain.ErrCodeForbidden, msg)
	case status == http.StatusNotFound:
		return domain.NewError(domain.ErrCodeNotFound, msg)
	case status >= http.StatusInternalServerError:
		c.logger.Error("server fault",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status))
		return domain.NewError(domain.ErrCodeServer, msg)
	default:
		return domain.NewError(domain.ErrCodeInvalid, msg)
	}
}

func (c *Client) notifyUnauthorized() {
	c.mu.Lock()
	hooks := make([]func(), len(c.onUnauthorized))
	copy(hooks, c.onUnauthorized)
	c.mu.Unlock()
	for _, fn := range hooks {
		fn()
	}
}
