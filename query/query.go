// Package query serializes nested map values into URL query strings with
// configurable array formatting.
package query

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"
)

// ArrayFormat selects how slice values are serialized.
type ArrayFormat int

const (
	// Indexed serializes slices as a[0]=x&a[1]=y.
	Indexed ArrayFormat = iota
	// Repeat serializes slices as a=x&a=y.
	Repeat
	// Comma serializes slices as a=x,y.
	Comma
)

// Options configures serialization.
type Options struct {
	ArrayFormat ArrayFormat
}

// Encode serializes values into a query string without a leading "?".
// Nested maps become bracketed keys (a[b]=c), slices follow
// Options.ArrayFormat and keys are emitted in sorted order so output is
// deterministic. An empty map yields an empty string.
func Encode(values map[string]any, opts Options) string {
	var pairs []string
	encodeMap("", values, opts, &pairs)
	return strings.Join(pairs, "&")
}

func encodeMap(prefix string, values map[string]any, opts Options, pairs *[]string) {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		encodeValue(subKey(prefix, key), values[key], opts, pairs)
	}
}

func encodeValue(key string, value any, opts Options, pairs *[]string) {
	if value == nil {
		*pairs = append(*pairs, key+"=")
		return
	}

	if m, ok := value.(map[string]any); ok {
		encodeMap(key, m, opts, pairs)
		return
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		encodeSlice(key, rv, opts, pairs)
		return
	}

	*pairs = append(*pairs, key+"="+escape(value))
}

func encodeSlice(key string, rv reflect.Value, opts Options, pairs *[]string) {
	switch opts.ArrayFormat {
	case Repeat:
		for i := 0; i < rv.Len(); i++ {
			encodeValue(key, rv.Index(i).Interface(), opts, pairs)
		}
	case Comma:
		parts := make([]string, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			parts[i] = escape(rv.Index(i).Interface())
		}
		*pairs = append(*pairs, key+"="+strings.Join(parts, ","))
	default: // Indexed
		for i := 0; i < rv.Len(); i++ {
			encodeValue(fmt.Sprintf("%s[%d]", key, i), rv.Index(i).Interface(), opts, pairs)
		}
	}
}

// subKey joins a parent key with a child name. Brackets stay literal so the
// serialized form reads a[b]=c; the names themselves are escaped.
func subKey(prefix, name string) string {
	if prefix == "" {
		return url.QueryEscape(name)
	}
	return prefix + "[" + url.QueryEscape(name) + "]"
}

func escape(value any) string {
	switch s := value.(type) {
	case string:
		return url.QueryEscape(s)
	case fmt.Stringer:
		return url.QueryEscape(s.String())
	default:
		return url.QueryEscape(fmt.Sprintf("%v", value))
	}
}
