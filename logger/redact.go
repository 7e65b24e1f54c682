package logger

import "strings"

// DefaultMaskValue replaces sensitive values in log output.
const DefaultMaskValue = "***"

// defaultSensitiveKeys covers the credential-bearing header and field
// names a request log is likely to carry.
var defaultSensitiveKeys = []string{
	"authorization",
	"proxy-authorization",
	"cookie",
	"set-cookie",
	"api-key",
	"apikey",
	"token",
	"secret",
	"password",
}

// Redactor masks values whose key matches a sensitive name. It understands
// the shapes the client logs: strings, header maps and string slices.
type Redactor struct {
	keys []string
	mask string
}

// NewRedactor creates a redactor; nil keys select the default set.
func NewRedactor(keys []string) *Redactor {
	if keys == nil {
		keys = defaultSensitiveKeys
	}
	return &Redactor{keys: keys, mask: DefaultMaskValue}
}

// String masks value when key is sensitive.
func (r *Redactor) String(key, value string) string {
	if value != "" && r.sensitive(key) {
		return r.mask
	}
	return value
}

// Value masks sensitive entries inside maps and string slices; other
// values pass through unchanged.
func (r *Redactor) Value(key string, value any) any {
	if r.sensitive(key) {
		return r.mask
	}
	switch v := value.(type) {
	case map[string]any:
		return r.Fields(v)
	case map[string]string:
		out := make(map[string]string, len(v))
		for k, s := range v {
			out[k] = r.String(k, s)
		}
		return out
	case map[string][]string:
		out := make(map[string][]string, len(v))
		for k, vs := range v {
			if r.sensitive(k) {
				out[k] = []string{r.mask}
				continue
			}
			out[k] = vs
		}
		return out
	default:
		return value
	}
}

// Fields masks sensitive entries in a field map.
func (r *Redactor) Fields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = r.Value(k, v)
	}
	return out
}

func (r *Redactor) sensitive(key string) bool {
	lower := strings.ToLower(key)
	for _, k := range r.keys {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
