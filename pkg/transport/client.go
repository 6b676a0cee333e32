package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Goden-Gun/reserve-lib/pkg/config"
	log "github.com/Goden-Gun/reserve-lib/pkg/logger"
	"github.com/Goden-Gun/reserve-lib/pkg/session"
	"github.com/Goden-Gun/reserve-lib/pkg/storage"
	"github.com/Goden-Gun/reserve-lib/pkg/tracing"
)

// Options define transport client parameters. Zero values get sane defaults.
type Options struct {
	// BaseURL prefixes every request path.
	BaseURL string
	// Timeout bounds one request. When zero, the live environment override
	// (config.RequestTimeout) is consulted per call.
	Timeout time.Duration
	// Headers are defaults attached to every request; per-call headers merge
	// over them without replacing the whole set.
	Headers map[string]string
	// Storage is where the bearer token lives. Optional; without it no
	// Authorization header is attached.
	Storage storage.Store
	// TokenKey overrides the storage key the token is read from.
	TokenKey string
	// HTTPClient overrides the underlying client, mainly for tests.
	HTTPClient *http.Client
}

// RequestConfig describes one call.
type RequestConfig struct {
	Method  string
	Path    string
	Query   url.Values
	Body    any
	Headers map[string]string
}

// Callbacks are optional per-call observers. Each is invoked at most once and
// they are mutually exclusive: OnSuccess for 2xx, OnFail for normalized
// errors with status > 0, OnCrash for status 0. They are side-effect hooks
// only and never suppress or alter the returned error.
type Callbacks[T any] struct {
	OnSuccess func(T)
	OnFail    func(*Error)
	OnCrash   func(*Error)
}

// Client wraps an HTTP client with bearer-token injection and the normalized
// error taxonomy. It performs no retries; a failed call yields exactly one
// normalized error and retry policy stays with the caller.
type Client struct {
	opts   Options
	http   *http.Client
	tracer trace.Tracer
}

// NewClient creates a transport client.
func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}
	if opts.TokenKey == "" {
		opts.TokenKey = session.TokenKey
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		opts:   opts,
		http:   httpClient,
		tracer: tracing.Tracer("reserve-lib/transport"),
	}, nil
}

// Request performs one call and decodes the 2xx body into T.
func Request[T any](ctx context.Context, c *Client, cfg RequestConfig, cbs ...Callbacks[T]) (T, error) {
	var cb Callbacks[T]
	if len(cbs) > 0 {
		cb = cbs[0]
	}
	var zero T

	body, err := c.Do(ctx, cfg)
	if err != nil {
		terr, _ := AsError(err)
		dispatchFailure(cb, terr)
		return zero, terr
	}

	var out T
	if len(body) > 0 {
		if err := json.Unmarshal(body, &out); err != nil {
			terr := normalizeUnknown(fmt.Errorf("decode response: %w", err))
			dispatchFailure(cb, terr)
			return zero, terr
		}
	}
	if cb.OnSuccess != nil {
		cb.OnSuccess(out)
	}
	return out, nil
}

func dispatchFailure[T any](cb Callbacks[T], terr *Error) {
	if terr.Status == 0 {
		if cb.OnCrash != nil {
			cb.OnCrash(terr)
		}
		return
	}
	if cb.OnFail != nil {
		cb.OnFail(terr)
	}
}

// Do performs one call and returns the raw 2xx body. Every failure comes
// back as *Error.
func (c *Client) Do(ctx context.Context, cfg RequestConfig) (json.RawMessage, error) {
	ctx, span := c.tracer.Start(ctx, "transport.request", trace.WithAttributes(
		attribute.String("http.method", cfg.Method),
		attribute.String("http.path", cfg.Path),
	))
	defer span.End()

	body, err := c.do(ctx, cfg)
	if err != nil {
		terr := err
		span.RecordError(terr)
		span.SetStatus(codes.Error, terr.Message)
		log.WithTrace(ctx).WithFields(log.Fields{
			"method": cfg.Method,
			"path":   cfg.Path,
			"status": terr.Status,
			"code":   terr.Code,
		}).Warn("request failed")
		return nil, terr
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, cfg RequestConfig) (json.RawMessage, *Error) {
	timeout := c.opts.Timeout
	if timeout <= 0 {
		timeout = config.RequestTimeout()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if cfg.Body != nil {
		data, err := json.Marshal(cfg.Body)
		if err != nil {
			return nil, normalizeUnknown(fmt.Errorf("encode request body: %w", err))
		}
		reader = bytes.NewReader(data)
	}

	target := strings.TrimRight(c.opts.BaseURL, "/") + cfg.Path
	if len(cfg.Query) > 0 {
		target += "?" + cfg.Query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, cfg.Method, target, reader)
	if err != nil {
		return nil, normalizeUnknown(fmt.Errorf("build request: %w", err))
	}

	// Merge order: client defaults, then per-call headers, then the
	// generated pieces. Caller-supplied headers are never replaced
	// wholesale.
	for k, v := range c.opts.Headers {
		req.Header.Set(k, v)
	}
	for k, v := range cfg.Headers {
		req.Header.Set(k, v)
	}
	if cfg.Body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if req.Header.Get("X-Request-Id") == "" {
		req.Header.Set("X-Request-Id", uuid.NewString())
	}
	if c.opts.Storage != nil {
		token, err := c.opts.Storage.Get(ctx, c.opts.TokenKey)
		if err != nil {
			log.WithError(err).Warn("read token from storage failed")
		} else if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	tracing.InjectHeaders(ctx, req.Header)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyNetwork(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyNetwork(err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}
	return nil, normalizeResponse(resp.StatusCode, data)
}
