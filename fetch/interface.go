package fetch

import (
	"context"
	nethttp "net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/quillforge/go-fetch/query"
)

// Method identifies the HTTP method of a request.
type Method string

const (
	GET    Method = nethttp.MethodGet
	POST   Method = nethttp.MethodPost
	PUT    Method = nethttp.MethodPut
	PATCH  Method = nethttp.MethodPatch
	DELETE Method = nethttp.MethodDelete
)

// Client defines the request interface. All methods return (value, error)
// where a non-nil error is always a *Failure.
type Client interface {
	Get(ctx context.Context, spec *RequestSpec, opts *RequestOptions) (any, error)
	Post(ctx context.Context, spec *RequestSpec, opts *RequestOptions) (any, error)
	Put(ctx context.Context, spec *RequestSpec, opts *RequestOptions) (any, error)
	Patch(ctx context.Context, spec *RequestSpec, opts *RequestOptions) (any, error)
	Delete(ctx context.Context, spec *RequestSpec, opts *RequestOptions) (any, error)
	Do(ctx context.Context, spec *RequestSpec, opts *RequestOptions) (any, error)
}

// RequestSpec describes a single request. It is treated as immutable:
// the client rebuilds the effective URL and body from it on every attempt.
type RequestSpec struct {
	// URL is a template whose ":name" path segments are substituted from
	// URLParams.
	URL    string
	Method Method
	// URLParams holds scalar values substituted into ":name" segments.
	URLParams map[string]any
	// Query is appended as a query string on GET requests only.
	Query        map[string]any
	QueryOptions query.Options
	// Payload is JSON-encoded as the request body on non-GET methods.
	Payload map[string]any
	Headers nethttp.Header
}

// SuccessHandler converts a raw response with a success status into the
// caller's value. The default handler decodes JSON or returns the body text.
type SuccessHandler func(raw *RawResponse) (any, error)

// ErrorHandler extracts the error payload from a raw response with a
// non-success status. The result becomes Failure.Data.
type ErrorHandler func(raw *RawResponse) any

// RetryPolicy bounds the retry loop. Count is the number of retries after
// the initial attempt; Backoff computes the wait before each retry.
type RetryPolicy struct {
	Count   int
	Backoff Backoff
}

// RequestOptions carries per-call settings. Zero values fall back to the
// client configuration.
type RequestOptions struct {
	Timeout        time.Duration
	Retry          *RetryPolicy
	SuccessHandler SuccessHandler
	ErrorHandler   ErrorHandler
	// Limiter, when set, is awaited before each attempt.
	Limiter *rate.Limiter
}

// RawResponse is the completed HTTP response handed to success and error
// handlers.
type RawResponse struct {
	StatusCode int
	Headers    nethttp.Header
	Body       []byte
	Stats      Stats
}

// Stats contains attempt execution statistics.
type Stats struct {
	Elapsed time.Duration
	Attempt int
}

// Config holds the client-level defaults applied when RequestOptions leave
// a field unset.
type Config struct {
	Timeout        time.Duration
	Retry          *RetryPolicy
	DefaultHeaders map[string]string
	// TraceIDHeader is the header used for request-ID propagation
	// (default: X-Request-ID). Empty disables injection.
	TraceIDHeader string
	Limiter       *rate.Limiter
}
