package fetch

import (
	"encoding/json"
	"strings"
)

const contentTypeJSON = "application/json"

// IsJSON reports whether the response declares a JSON content type.
func (r *RawResponse) IsJSON() bool {
	return strings.Contains(strings.ToLower(r.Headers.Get("Content-Type")), contentTypeJSON)
}

// JSON decodes the response body as JSON.
func (r *RawResponse) JSON() (any, error) {
	var v any
	if err := json.Unmarshal(r.Body, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Text returns the response body as a string.
func (r *RawResponse) Text() string {
	return string(r.Body)
}

// decodeSuccess is the default SuccessHandler: JSON when the content type
// says so, raw text otherwise.
func decodeSuccess(raw *RawResponse) (any, error) {
	if raw.IsJSON() {
		return raw.JSON()
	}
	return raw.Text(), nil
}

// decodeError is the default ErrorHandler. A malformed JSON error body
// falls back to its text form rather than masking the HTTP failure.
func decodeError(raw *RawResponse) any {
	if raw.IsJSON() {
		if v, err := raw.JSON(); err == nil {
			return v
		}
	}
	return raw.Text()
}
