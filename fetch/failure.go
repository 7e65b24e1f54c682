package fetch

import (
	"errors"
	"fmt"
	nethttp "net/http"
	"time"
)

// Kind categorizes a Failure.
type Kind string

const (
	// KindTransport covers connection-level faults: the request never
	// produced a response.
	KindTransport Kind = "transport"
	// KindTimeout marks attempts whose deadline fired before a response
	// arrived.
	KindTimeout Kind = "timeout"
	// KindHTTP marks responses with a non-success status.
	KindHTTP Kind = "http"
	// KindRateLimit is an HTTP failure with status 429; it stops the retry
	// loop immediately.
	KindRateLimit Kind = "rate_limit"
	// KindValidation marks malformed request specs.
	KindValidation Kind = "validation"
	// KindDecode marks handler failures on an otherwise successful response.
	KindDecode Kind = "decode"
)

// Failure is the normalized failure record surfaced to callers. It always
// carries the attempted URL, method and timestamp; StatusCode is zero when
// no response was received.
type Failure struct {
	Message    string
	Kind       Kind
	StatusCode int
	Data       any
	URL        string
	Method     Method
	Headers    nethttp.Header
	Timestamp  time.Time

	cause error
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.cause
}

func newHTTPFailure(target string, method Method, raw *RawResponse, data any) *Failure {
	kind := KindHTTP
	if raw.StatusCode == nethttp.StatusTooManyRequests {
		kind = KindRateLimit
	}
	return &Failure{
		Message:    fmt.Sprintf("%s %s failed with status %d", method, target, raw.StatusCode),
		Kind:       kind,
		StatusCode: raw.StatusCode,
		Data:       data,
		URL:        target,
		Method:     method,
		Headers:    raw.Headers,
		Timestamp:  time.Now(),
	}
}

func newTimeoutFailure(target string, method Method, timeout time.Duration) *Failure {
	return &Failure{
		Message:   fmt.Sprintf("%s %s timed out after %v", method, target, timeout),
		Kind:      KindTimeout,
		Data:      timeout,
		URL:       target,
		Method:    method,
		Timestamp: time.Now(),
	}
}

func newTransportFailure(target string, method Method, err error) *Failure {
	return &Failure{
		Message:   fmt.Sprintf("%s %s failed: %v", method, target, err),
		Kind:      KindTransport,
		URL:       target,
		Method:    method,
		Timestamp: time.Now(),
		cause:     err,
	}
}

func newDecodeFailure(target string, method Method, raw *RawResponse, err error) *Failure {
	return &Failure{
		Message:    fmt.Sprintf("%s %s succeeded but decoding the response failed: %v", method, target, err),
		Kind:       KindDecode,
		StatusCode: raw.StatusCode,
		URL:        target,
		Method:     method,
		Headers:    raw.Headers,
		Timestamp:  time.Now(),
		cause:      err,
	}
}

func newValidationFailure(message string) *Failure {
	return &Failure{
		Message:   message,
		Kind:      KindValidation,
		Timestamp: time.Now(),
	}
}

// AsFailure extracts a *Failure from err.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// IsStatus reports whether err is a Failure with the given status code.
func IsStatus(err error, statusCode int) bool {
	f, ok := AsFailure(err)
	return ok && f.StatusCode == statusCode
}

// IsTimeout reports whether err is a timeout Failure.
func IsTimeout(err error) bool {
	f, ok := AsFailure(err)
	return ok && f.Kind == KindTimeout
}

// IsSuccessStatus checks if a status code represents success (2xx).
func IsSuccessStatus(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
