package fetch

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/quillforge/go-fetch/query"
)

// PopulateParams replaces every ":name" path segment in template with the
// percent-encoded value of params["name"]. Missing parameters become empty
// segments (two adjacent slashes), extra parameters are ignored and
// segments without a ":" prefix are left untouched. It never fails.
func PopulateParams(template string, params map[string]any) string {
	segments := strings.Split(template, "/")
	for i, segment := range segments {
		if !strings.HasPrefix(segment, ":") {
			continue
		}
		value, ok := params[segment[1:]]
		if !ok {
			segments[i] = ""
			continue
		}
		segments[i] = url.PathEscape(scalarString(value))
	}
	return strings.Join(segments, "/")
}

// ConstructURL builds the effective URL for spec: path parameters are
// substituted and, for GET requests with a non-empty query map, the
// serialized query string is appended. Query maps on non-GET methods are
// silently dropped.
func ConstructURL(spec *RequestSpec) string {
	target := PopulateParams(spec.URL, spec.URLParams)
	if spec.Method != GET || len(spec.Query) == 0 {
		return target
	}
	return target + "?" + query.Encode(spec.Query, spec.QueryOptions)
}

func scalarString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
