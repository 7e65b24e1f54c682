package fetch

import "encoding/json"

// ConstructBody returns the JSON encoding of payload, or nil when the
// request carries no body: GET requests and empty payloads are bodyless.
// Only JSON bodies are supported.
func ConstructBody(payload map[string]any, method Method) ([]byte, error) {
	if method == GET || len(payload) == 0 {
		return nil, nil
	}
	return json.Marshal(payload)
}
