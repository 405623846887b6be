package toolbox

import (
	"bytes"
	"io"
	"net/url"
	"sort"

	j "github.com/goccy/go-json"
)

// Data is the raw input of a Load call. Keys may carry more than one value
// when the input comes from a multi-valued source such as a query string.
type Data interface {
	// Lookup returns the single value for key. For multi-valued inputs it is
	// the first value.
	Lookup(key string) (any, bool)
	// Values returns every value for key, nil when key is absent.
	Values(key string) []any
	// Keys returns the input keys in ascending order.
	Keys() []string
}

// MapData adapts a decoded JSON object to Data.
type MapData map[string]any

func (m MapData) Lookup(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

// Values returns the list stored under key, or a single-element list for a
// scalar value.
func (m MapData) Values(key string) []any {
	v, ok := m[key]
	if !ok {
		return nil
	}
	switch vv := v.(type) {
	case []any:
		return vv
	case []string:
		out := make([]any, len(vv))
		for i, s := range vv {
			out[i] = s
		}
		return out
	default:
		return []any{v}
	}
}

func (m MapData) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// QueryData adapts a multi-valued query-parameter map to Data.
type QueryData url.Values

func (q QueryData) Lookup(key string) (any, bool) {
	vs, ok := q[key]
	if !ok || len(vs) == 0 {
		return nil, false
	}
	return vs[0], true
}

func (q QueryData) Values(key string) []any {
	vs, ok := q[key]
	if !ok {
		return nil
	}
	out := make([]any, len(vs))
	for i, s := range vs {
		out[i] = s
	}
	return out
}

func (q QueryData) Keys() []string {
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AsData adapts supported raw inputs to Data. It reports false when input is
// not a mapping.
func AsData(input any) (Data, bool) {
	switch v := input.(type) {
	case Data:
		return v, true
	case map[string]any:
		return MapData(v), true
	case url.Values:
		return QueryData(v), true
	case map[string][]string:
		return QueryData(v), true
	default:
		return nil, false
	}
}

// DecodeJSON decodes a JSON document, keeping numbers as json.Number so
// integer fields do not lose precision.
func DecodeJSON(b []byte) (any, error) {
	return DecodeJSONReader(bytes.NewReader(b))
}

// DecodeJSONReader decodes a single JSON document from r.
func DecodeJSONReader(r io.Reader) (any, error) {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
