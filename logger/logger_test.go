package logger

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewFallsBackToInfoLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("not-a-level", false, &buf)

	log.Debug().Msg("hidden")
	assert.Empty(t, buf.Bytes())

	log.Info().Msg("visible")
	entry := logLine(t, &buf)
	assert.Equal(t, "visible", entry["message"])
}

func TestEventFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", false, &buf)

	log.Info().
		Str("method", "GET").
		Int("status", 200).
		Dur("elapsed", 150*time.Millisecond).
		Bytes("body", []byte("ok")).
		Msg("done")

	entry := logLine(t, &buf)
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, float64(200), entry["status"])
	assert.Equal(t, "ok", entry["body"])
	assert.Equal(t, "done", entry["message"])
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", false, &buf)

	log.WithFields(map[string]any{"component": "client"}).Info().Msg("hello")

	entry := logLine(t, &buf)
	assert.Equal(t, "client", entry["component"])
}

func TestStrRedaction(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", false, &buf)

	log.Info().
		Str("authorization", "Bearer s3cret").
		Str("url", "/posts").
		Msg("request")

	entry := logLine(t, &buf)
	assert.Equal(t, DefaultMaskValue, entry["authorization"])
	assert.Equal(t, "/posts", entry["url"])
}

func TestInterfaceRedactsHeaderMaps(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", false, &buf)

	log.Info().
		Interface("headers", map[string]any{
			"Authorization": "Bearer s3cret",
			"Accept":        "application/json",
		}).
		Msg("request")

	entry := logLine(t, &buf)
	headers, ok := entry["headers"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, DefaultMaskValue, headers["Authorization"])
	assert.Equal(t, "application/json", headers["Accept"])
}

func TestRedactorValueShapes(t *testing.T) {
	r := NewRedactor(nil)

	t.Run("string map", func(t *testing.T) {
		got := r.Value("headers", map[string]string{"X-Api-Key": "k", "Accept": "a"})
		assert.Equal(t, map[string]string{"X-Api-Key": DefaultMaskValue, "Accept": "a"}, got)
	})

	t.Run("header map", func(t *testing.T) {
		got := r.Value("headers", map[string][]string{
			"Cookie": {"session=1"},
			"Accept": {"application/json"},
		})
		assert.Equal(t, map[string][]string{
			"Cookie": {DefaultMaskValue},
			"Accept": {"application/json"},
		}, got)
	})

	t.Run("non-sensitive passthrough", func(t *testing.T) {
		assert.Equal(t, 42, r.Value("count", 42))
	})

	t.Run("custom keys", func(t *testing.T) {
		custom := NewRedactor([]string{"internal"})
		assert.Equal(t, DefaultMaskValue, custom.String("x-internal-id", "value"))
		assert.Equal(t, "Bearer ok", custom.String("authorization", "Bearer ok"))
	})
}
