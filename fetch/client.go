package fetch

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	nethttp "net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/quillforge/go-fetch/logger"
	"github.com/quillforge/go-fetch/trace"
)

const (
	// DefaultTimeout is the default per-attempt timeout.
	DefaultTimeout = 30 * time.Second
)

// client implements the Client interface
type client struct {
	httpClient *nethttp.Client
	logger     logger.Logger
	config     *Config
}

// NewClient creates a new client with default configuration.
func NewClient(log logger.Logger) Client {
	return NewBuilder(log).Build()
}

// Builder provides a fluent interface for configuring the client
type Builder struct {
	config     *Config
	httpClient *nethttp.Client
	logger     logger.Logger
}

// NewBuilder creates a new client builder
func NewBuilder(log logger.Logger) *Builder {
	return &Builder{
		config: &Config{
			Timeout:        DefaultTimeout,
			DefaultHeaders: make(map[string]string),
			TraceIDHeader:  trace.HeaderXRequestID,
		},
		logger: log,
	}
}

// WithTimeout sets the default per-attempt timeout
func (b *Builder) WithTimeout(timeout time.Duration) *Builder {
	if timeout > 0 {
		b.config.Timeout = timeout
	}
	return b
}

// WithRetry sets the default retry policy applied when RequestOptions carry none
func (b *Builder) WithRetry(count int, backoff Backoff) *Builder {
	b.config.Retry = &RetryPolicy{Count: count, Backoff: backoff}
	return b
}

// WithDefaultHeader adds a header sent with every request
func (b *Builder) WithDefaultHeader(key, value string) *Builder {
	b.config.DefaultHeaders[key] = value
	return b
}

// WithRateLimiter sets a limiter awaited before each attempt
func (b *Builder) WithRateLimiter(limiter *rate.Limiter) *Builder {
	b.config.Limiter = limiter
	return b
}

// WithTraceIDHeader overrides the header used for request-ID propagation
func (b *Builder) WithTraceIDHeader(header string) *Builder {
	if header != "" {
		b.config.TraceIDHeader = header
	}
	return b
}

// WithHTTPClient injects a custom *http.Client
func (b *Builder) WithHTTPClient(hc *nethttp.Client) *Builder {
	b.httpClient = hc
	return b
}

// WithTransport injects a custom transport into the underlying client
func (b *Builder) WithTransport(rt nethttp.RoundTripper) *Builder {
	b.httpClient = &nethttp.Client{Transport: rt}
	return b
}

// Build creates the client with the configured options
func (b *Builder) Build() Client {
	hc := b.httpClient
	if hc == nil {
		hc = &nethttp.Client{}
	}
	return &client{
		httpClient: hc,
		logger:     b.logger,
		config:     b.config,
	}
}

// Get performs a GET request
func (c *client) Get(ctx context.Context, spec *RequestSpec, opts *RequestOptions) (any, error) {
	return c.withMethod(ctx, GET, spec, opts)
}

// Post performs a POST request
func (c *client) Post(ctx context.Context, spec *RequestSpec, opts *RequestOptions) (any, error) {
	return c.withMethod(ctx, POST, spec, opts)
}

// Put performs a PUT request
func (c *client) Put(ctx context.Context, spec *RequestSpec, opts *RequestOptions) (any, error) {
	return c.withMethod(ctx, PUT, spec, opts)
}

// Patch performs a PATCH request
func (c *client) Patch(ctx context.Context, spec *RequestSpec, opts *RequestOptions) (any, error) {
	return c.withMethod(ctx, PATCH, spec, opts)
}

// Delete performs a DELETE request
func (c *client) Delete(ctx context.Context, spec *RequestSpec, opts *RequestOptions) (any, error) {
	return c.withMethod(ctx, DELETE, spec, opts)
}

func (c *client) withMethod(ctx context.Context, method Method, spec *RequestSpec, opts *RequestOptions) (any, error) {
	if spec == nil {
		return c.Do(ctx, spec, opts)
	}
	s := *spec
	s.Method = method
	return c.Do(ctx, &s, opts)
}

// Do runs the retry loop around single-attempt dispatches. Attempts are
// strictly sequential; attempt N+1 never starts before N's outcome is
// known. The loop applies no timeout of its own, only the per-attempt one.
func (c *client) Do(ctx context.Context, spec *RequestSpec, opts *RequestOptions) (any, error) {
	if err := validateSpec(spec); err != nil {
		return nil, err
	}

	o := c.resolveOptions(opts)

	for attempt := 0; ; attempt++ {
		value, failure := c.dispatch(ctx, spec, o, attempt)
		if failure == nil {
			return value, nil
		}

		// A rate-limit response must not be hammered, regardless of the
		// remaining budget. Timed-out attempts carry no status code, so
		// they can never trip this rule.
		if failure.StatusCode == nethttp.StatusTooManyRequests {
			return nil, failure
		}
		if attempt >= o.retryCount {
			return nil, failure
		}

		delay := o.retry.delay(attempt)
		c.logger.Warn().
			Str("method", string(spec.Method)).
			Str("url", failure.URL).
			Int("attempt", attempt).
			Dur("delay", delay).
			Err(failure).
			Msg("request failed, retrying")

		if err := sleep(ctx, delay); err != nil {
			return nil, failure
		}
	}
}

// options is the per-call view after merging RequestOptions with the
// client configuration.
type options struct {
	timeout        time.Duration
	retry          *RetryPolicy
	retryCount     int
	successHandler SuccessHandler
	errorHandler   ErrorHandler
	limiter        *rate.Limiter
}

func (c *client) resolveOptions(opts *RequestOptions) *options {
	o := &options{
		timeout:        c.config.Timeout,
		retry:          c.config.Retry,
		successHandler: decodeSuccess,
		errorHandler:   decodeError,
		limiter:        c.config.Limiter,
	}
	if opts != nil {
		if opts.Timeout > 0 {
			o.timeout = opts.Timeout
		}
		if opts.Retry != nil {
			o.retry = opts.Retry
		}
		if opts.SuccessHandler != nil {
			o.successHandler = opts.SuccessHandler
		}
		if opts.ErrorHandler != nil {
			o.errorHandler = opts.ErrorHandler
		}
		if opts.Limiter != nil {
			o.limiter = opts.Limiter
		}
	}
	if o.timeout <= 0 {
		o.timeout = DefaultTimeout
	}
	if o.retry != nil && o.retry.Count > 0 {
		o.retryCount = o.retry.Count
	} else {
		o.retry = &RetryPolicy{}
	}
	return o
}

// dispatch executes exactly one attempt: build URL and body, send under a
// deadline, classify the response. Every exit path releases the deadline
// timer through the deferred cancel.
func (c *client) dispatch(ctx context.Context, spec *RequestSpec, o *options, attempt int) (any, *Failure) {
	target := ConstructURL(spec)

	body, err := ConstructBody(spec.Payload, spec.Method)
	if err != nil {
		return nil, newTransportFailure(target, spec.Method, err)
	}

	start := time.Now()
	attemptCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := nethttp.NewRequestWithContext(attemptCtx, string(spec.Method), target, reader)
	if err != nil {
		return nil, newTransportFailure(target, spec.Method, err)
	}

	c.applyHeaders(req, spec, body != nil)
	c.applyTraceID(ctx, req)

	if o.limiter != nil {
		if err := o.limiter.Wait(attemptCtx); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, newTimeoutFailure(target, spec.Method, o.timeout)
			}
			return nil, newTransportFailure(target, spec.Method, err)
		}
	}

	c.logRequest(spec.Method, target, req.Header, body, attempt)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, newTimeoutFailure(target, spec.Method, o.timeout)
		}
		return nil, newTransportFailure(target, spec.Method, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, newTimeoutFailure(target, spec.Method, o.timeout)
		}
		return nil, newTransportFailure(target, spec.Method, err)
	}

	raw := &RawResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
		Stats: Stats{
			Elapsed: time.Since(start),
			Attempt: attempt,
		},
	}
	c.logResponse(raw)

	if !IsSuccessStatus(raw.StatusCode) {
		return nil, newHTTPFailure(target, spec.Method, raw, o.errorHandler(raw))
	}

	value, err := o.successHandler(raw)
	if err != nil {
		return nil, newDecodeFailure(target, spec.Method, raw, err)
	}
	return value, nil
}

func validateSpec(spec *RequestSpec) *Failure {
	if spec == nil {
		return newValidationFailure("request spec cannot be nil")
	}
	if spec.URL == "" {
		return newValidationFailure("request URL cannot be empty")
	}
	switch spec.Method {
	case GET, POST, PUT, PATCH, DELETE:
		return nil
	default:
		return newValidationFailure("unsupported method " + string(spec.Method))
	}
}

// applyHeaders applies default headers first, then request-specific ones.
func (c *client) applyHeaders(req *nethttp.Request, spec *RequestSpec, hasBody bool) {
	for key, value := range c.config.DefaultHeaders {
		req.Header.Set(key, value)
	}
	for key, values := range spec.Headers {
		req.Header.Del(key)
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if hasBody && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", contentTypeJSON)
	}
}

// applyTraceID injects the request ID from context (or a fresh one) unless
// the caller already set the header.
func (c *client) applyTraceID(ctx context.Context, req *nethttp.Request) {
	if c.config.TraceIDHeader == "" {
		return
	}
	if req.Header.Get(c.config.TraceIDHeader) == "" {
		req.Header.Set(c.config.TraceIDHeader, trace.EnsureID(ctx))
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// logRequest logs the outgoing attempt
func (c *client) logRequest(method Method, target string, headers nethttp.Header, body []byte, attempt int) {
	logEvent := c.logger.Info().
		Str("direction", "outbound").
		Str("method", string(method)).
		Str("url", target).
		Int("attempt", attempt)

	if len(headers) > 0 {
		logEvent = logEvent.Interface("headers", headerFields(headers))
	}
	if len(body) > 0 {
		logEvent = logEvent.Bytes("body", body)
	}

	logEvent.Msg("fetch request")
}

// logResponse logs the incoming response
func (c *client) logResponse(raw *RawResponse) {
	logEvent := c.logger.Info().
		Str("direction", "inbound").
		Int("status", raw.StatusCode).
		Dur("elapsed", raw.Stats.Elapsed).
		Int("attempt", raw.Stats.Attempt)

	if len(raw.Body) > 0 {
		logEvent = logEvent.Bytes("body", raw.Body)
	}

	logEvent.Msg("fetch response")
}

// headerFields flattens headers into a loggable map so the logger's
// redaction can run on sensitive keys.
func headerFields(headers nethttp.Header) map[string]any {
	fields := make(map[string]any, len(headers))
	for key, values := range headers {
		if len(values) == 1 {
			fields[key] = values[0]
			continue
		}
		fields[key] = values
	}
	return fields
}
