package dsl

import (
	"context"
	"reflect"
	"strings"

	toolbox "github.com/plangrid/toolbox"
	js "github.com/plangrid/toolbox/jsonschema"
)

// ListField is a homogeneous list of an inner field.
type ListField struct {
	inner toolbox.Field
	opts  toolbox.FieldOptions
}

var _ toolbox.Field = (*ListField)(nil)

// List returns a list field whose items are handled by inner.
func List(inner toolbox.Field, opts ...FieldOption) *ListField {
	c := applyOptions(opts)
	return &ListField{inner: inner, opts: c.opts}
}

// Inner returns the item field.
func (l *ListField) Inner() toolbox.Field { return l.inner }

func (l *ListField) Deserialize(ctx context.Context, v any, key string, data toolbox.Data) (any, error) {
	if v == nil {
		return nullValue(l.opts)
	}
	items, ok := toSlice(v)
	if !ok {
		return nil, invalidType("array")
	}
	return l.loadItems(ctx, items, key, data)
}

// loadItems deserializes every item and validates the resulting list. Item
// issues are accumulated under their index.
func (l *ListField) loadItems(ctx context.Context, items []any, key string, data toolbox.Data) (any, error) {
	out := make([]any, 0, len(items))
	var iss toolbox.Issues
	for i, it := range items {
		ev, err := l.inner.Deserialize(ctx, it, key, data)
		if err != nil {
			iss = toolbox.AppendIssues(iss, toolbox.IssuesFromErr("/", err).Prefix(toolbox.Root().Index(i))...)
			if toolbox.IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		out = append(out, ev)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	if err := toolbox.RunValidators(ctx, out, l.opts.Validators); err != nil {
		return nil, err
	}
	return out, nil
}

func (l *ListField) Serialize(ctx context.Context, v any, key string, obj any) (any, error) {
	if v == nil {
		return nil, nil
	}
	items, ok := toSlice(v)
	if !ok {
		return nil, invalidType("array")
	}
	out := make([]any, 0, len(items))
	var iss toolbox.Issues
	for i, it := range items {
		sv, err := l.inner.Serialize(ctx, it, key, obj)
		if err != nil {
			iss = toolbox.AppendIssues(iss, toolbox.IssuesFromErr("/", err).Prefix(toolbox.Root().Index(i))...)
			continue
		}
		out = append(out, sv)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (l *ListField) Options() toolbox.FieldOptions { return l.opts }

func (l *ListField) JSONSchema() (*js.Schema, error) {
	items, err := l.inner.JSONSchema()
	if err != nil {
		return nil, err
	}
	s := &js.Schema{Type: "array", Items: items}
	if l.opts.AllowNone {
		s.Nullable = true
	}
	return s, nil
}

// CommaSeparatedListField is a list whose external form is a single string
// of comma-joined items.
type CommaSeparatedListField struct {
	*ListField
}

// CommaSeparatedList returns a list field read from and written to "a,b,c".
//
// The empty string loads as a single empty item ([""]); whether that item is
// acceptable is up to inner (Integer rejects it, String keeps it).
func CommaSeparatedList(inner toolbox.Field, opts ...FieldOption) *CommaSeparatedListField {
	return &CommaSeparatedListField{ListField: List(inner, opts...)}
}

func (c *CommaSeparatedListField) Deserialize(ctx context.Context, v any, key string, data toolbox.Data) (any, error) {
	if v == nil {
		return nullValue(c.opts)
	}
	s, ok := v.(string)
	if !ok {
		return nil, invalidType("string")
	}
	parts := strings.Split(s, ",")
	items := make([]any, len(parts))
	for i, p := range parts {
		items[i] = p
	}
	return c.loadItems(ctx, items, key, data)
}

func (c *CommaSeparatedListField) Serialize(ctx context.Context, v any, key string, obj any) (any, error) {
	out, err := c.ListField.Serialize(ctx, v, key, obj)
	if err != nil || out == nil {
		return out, err
	}
	items := out.([]any)
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = stringify(it)
	}
	return strings.Join(parts, ","), nil
}

func (c *CommaSeparatedListField) JSONSchema() (*js.Schema, error) {
	s := &js.Schema{Type: "string"}
	if c.opts.AllowNone {
		s.Nullable = true
	}
	return s, nil
}

// QueryParamListField is a list read from a multi-valued input where the
// same key repeats (?foo=bar&foo=baz).
type QueryParamListField struct {
	*ListField
}

// QueryParamList returns a list field that loads every value of its key, not
// just the first. Serialization is the plain list form.
func QueryParamList(inner toolbox.Field, opts ...FieldOption) *QueryParamListField {
	return &QueryParamListField{ListField: List(inner, opts...)}
}

func (q *QueryParamListField) Deserialize(ctx context.Context, v any, key string, data toolbox.Data) (any, error) {
	if v == nil {
		return nullValue(q.opts)
	}
	var items []any
	if data != nil {
		items = data.Values(key)
	}
	if items == nil {
		if s, ok := toSlice(v); ok {
			items = s
		} else {
			items = []any{v}
		}
	}
	return q.loadItems(ctx, items, key, data)
}

func toSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i, it := range s {
			out[i] = it
		}
		return out, true
	case string:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
