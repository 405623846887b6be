package dsl

import (
	"context"
	"encoding"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"

	toolbox "github.com/plangrid/toolbox"
	js "github.com/plangrid/toolbox/jsonschema"
	"github.com/plangrid/toolbox/messages"
	"github.com/plangrid/toolbox/rules"
)

// scalarField adapts a pair of load/dump conversions into a toolbox.Field.
// Null handling and validators are shared; load and dump only ever see
// non-nil values.
type scalarField struct {
	opts       toolbox.FieldOptions
	load       func(ctx context.Context, v any) (any, error)
	dump       func(ctx context.Context, v any) (any, error)
	jsonSchema func() *js.Schema
}

var _ toolbox.Field = (*scalarField)(nil)

func (f *scalarField) Deserialize(ctx context.Context, v any, _ string, _ toolbox.Data) (any, error) {
	if v == nil {
		return nullValue(f.opts)
	}
	out, err := f.load(ctx, v)
	if err != nil {
		return nil, err
	}
	if err := toolbox.RunValidators(ctx, out, f.opts.Validators); err != nil {
		return nil, err
	}
	return out, nil
}

func (f *scalarField) Serialize(ctx context.Context, v any, _ string, _ any) (any, error) {
	if v == nil {
		return nil, nil
	}
	return f.dump(ctx, v)
}

func (f *scalarField) Options() toolbox.FieldOptions { return f.opts }

func (f *scalarField) JSONSchema() (*js.Schema, error) {
	return decorate(f.jsonSchema(), f.opts), nil
}

// String returns a string field. Values implementing encoding.TextMarshaler
// are accepted through their text form.
func String(opts ...FieldOption) toolbox.Field {
	c := applyOptions(opts)
	return &scalarField{
		opts:       c.opts,
		load:       loadString,
		dump:       func(_ context.Context, v any) (any, error) { return stringify(v), nil },
		jsonSchema: func() *js.Schema { return &js.Schema{Type: "string"} },
	}
}

// Integer returns an integer field. Load accepts Go integers, integral
// floats, json.Number and decimal strings (query parameters); values are
// returned as int64.
func Integer(opts ...FieldOption) toolbox.Field {
	c := applyOptions(opts)
	conv := func(_ context.Context, v any) (any, error) {
		n, ok := toInt64(v)
		if !ok {
			return nil, invalidType("integer")
		}
		return n, nil
	}
	return &scalarField{
		opts:       c.opts,
		load:       conv,
		dump:       conv,
		jsonSchema: func() *js.Schema { return &js.Schema{Type: "integer"} },
	}
}

// Bool returns a boolean field. Load also accepts the strings accepted by
// strconv.ParseBool.
func Bool(opts ...FieldOption) toolbox.Field {
	c := applyOptions(opts)
	conv := func(_ context.Context, v any) (any, error) {
		switch b := v.(type) {
		case bool:
			return b, nil
		case string:
			if pb, err := strconv.ParseBool(b); err == nil {
				return pb, nil
			}
		}
		return nil, invalidType("boolean")
	}
	return &scalarField{
		opts:       c.opts,
		load:       conv,
		dump:       conv,
		jsonSchema: func() *js.Schema { return &js.Schema{Type: "boolean"} },
	}
}

// URL returns a string field that only accepts absolute http(s) URLs.
func URL(opts ...FieldOption) toolbox.Field {
	c := applyOptions(opts)
	c.opts.Validators = append([]toolbox.Validator{rules.URL()}, c.opts.Validators...)
	return &scalarField{
		opts:       c.opts,
		load:       loadString,
		dump:       func(_ context.Context, v any) (any, error) { return stringify(v), nil },
		jsonSchema: func() *js.Schema { return &js.Schema{Type: "string", Format: "uri"} },
	}
}

// Dict returns a free-form mapping field.
func Dict(opts ...FieldOption) toolbox.Field {
	c := applyOptions(opts)
	conv := func(_ context.Context, v any) (any, error) {
		m, ok := toMap(v)
		if !ok {
			return nil, invalidType("object")
		}
		return m, nil
	}
	return &scalarField{
		opts:       c.opts,
		load:       conv,
		dump:       conv,
		jsonSchema: func() *js.Schema { return &js.Schema{Type: "object", AdditionalProperties: true} },
	}
}

// ---- helpers ----

func nullValue(opts toolbox.FieldOptions) (any, error) {
	if opts.AllowNone {
		return nil, nil
	}
	return nil, toolbox.Issues{toolbox.Root().Issue(toolbox.CodeNull, messages.T(toolbox.CodeNull, nil))}
}

func invalidType(expected string) toolbox.Issues {
	return toolbox.Issues{toolbox.Root().Issue(toolbox.CodeInvalidType, messages.T(toolbox.CodeInvalidType, nil), "expected", expected)}
}

func loadString(_ context.Context, v any) (any, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case encoding.TextMarshaler:
		b, err := s.MarshalText()
		if err != nil {
			return nil, invalidType("string")
		}
		return string(b), nil
	}
	return nil, invalidType("string")
}

// stringify renders v the way it is emitted by string-typed fields.
func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case encoding.TextMarshaler:
		if b, err := s.MarshalText(); err == nil {
			return string(b)
		}
	case fmt.Stringer:
		return s.String()
	}
	return fmt.Sprint(v)
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case j.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	case bool:
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	case reflect.Float32, reflect.Float64:
		return floatToInt(rv.Float())
	}
	return 0, false
}

func floatToInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

func toMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case toolbox.MapData:
		return map[string]any(m), true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// decorate copies declared attributes and validator hints into a field
// projection.
func decorate(s *js.Schema, opts toolbox.FieldOptions) *js.Schema {
	if s == nil {
		s = &js.Schema{}
	}
	if opts.AllowNone {
		s.Nullable = true
	}
	for _, v := range opts.Validators {
		switch r := v.(type) {
		case interface{ Pattern() string }:
			if s.Pattern == "" {
				s.Pattern = r.Pattern()
			}
		case *rules.RangeRule:
			s.Minimum, s.Maximum = r.Min, r.Max
		case *rules.LengthRule:
			if r.Min >= 0 {
				n := r.Min
				s.MinLength = &n
			}
			if r.Max >= 0 {
				n := r.Max
				s.MaxLength = &n
			}
		case *rules.OneOfRule:
			s.Enum = r.Choices()
		}
	}
	return s
}
