package fetch

import (
	nethttp "net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawWith(contentType string, body string) *RawResponse {
	headers := nethttp.Header{}
	if contentType != "" {
		headers.Set("Content-Type", contentType)
	}
	return &RawResponse{StatusCode: 200, Headers: headers, Body: []byte(body)}
}

func TestDecodeSuccess(t *testing.T) {
	t.Run("json content type decodes body", func(t *testing.T) {
		v, err := decodeSuccess(rawWith("application/json", `{"id":1}`))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"id": float64(1)}, v)
	})

	t.Run("content type match ignores charset suffix", func(t *testing.T) {
		v, err := decodeSuccess(rawWith("Application/JSON; charset=utf-8", `[1,2]`))
		require.NoError(t, err)
		assert.Equal(t, []any{float64(1), float64(2)}, v)
	})

	t.Run("other content types return text", func(t *testing.T) {
		v, err := decodeSuccess(rawWith("text/plain", "plain body"))
		require.NoError(t, err)
		assert.Equal(t, "plain body", v)
	})

	t.Run("missing content type returns text", func(t *testing.T) {
		v, err := decodeSuccess(rawWith("", `{"looks":"like json"}`))
		require.NoError(t, err)
		assert.Equal(t, `{"looks":"like json"}`, v)
	})

	t.Run("malformed json surfaces the error", func(t *testing.T) {
		_, err := decodeSuccess(rawWith("application/json", "{not json"))
		assert.Error(t, err)
	})
}

func TestDecodeError(t *testing.T) {
	t.Run("json error body decodes", func(t *testing.T) {
		v := decodeError(rawWith("application/json", `{"error":"not found"}`))
		assert.Equal(t, map[string]any{"error": "not found"}, v)
	})

	t.Run("malformed json falls back to text", func(t *testing.T) {
		v := decodeError(rawWith("application/json", "<html>oops</html>"))
		assert.Equal(t, "<html>oops</html>", v)
	})

	t.Run("text error body passes through", func(t *testing.T) {
		v := decodeError(rawWith("text/html", "<h1>502</h1>"))
		assert.Equal(t, "<h1>502</h1>", v)
	})
}
