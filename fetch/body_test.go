package fetch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructBody(t *testing.T) {
	t.Run("absent for GET", func(t *testing.T) {
		body, err := ConstructBody(map[string]any{"a": 1}, GET)
		require.NoError(t, err)
		assert.Nil(t, body)
	})

	t.Run("absent for empty payload", func(t *testing.T) {
		body, err := ConstructBody(map[string]any{}, POST)
		require.NoError(t, err)
		assert.Nil(t, body)

		body, err = ConstructBody(nil, POST)
		require.NoError(t, err)
		assert.Nil(t, body)
	})

	t.Run("round-trips non-empty payloads", func(t *testing.T) {
		payload := map[string]any{
			"title":  "hello",
			"count":  float64(3),
			"nested": map[string]any{"ok": true},
		}
		body, err := ConstructBody(payload, POST)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(body, &decoded))
		assert.Equal(t, payload, decoded)
	})

	t.Run("unencodable payload returns error", func(t *testing.T) {
		_, err := ConstructBody(map[string]any{"ch": make(chan int)}, POST)
		assert.Error(t, err)
	})
}
