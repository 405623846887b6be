package dsl

import (
	"context"

	toolbox "github.com/plangrid/toolbox"
	js "github.com/plangrid/toolbox/jsonschema"
)

// NestedField embeds another schema as a single object value.
type NestedField struct {
	schema toolbox.Schema
	opts   toolbox.FieldOptions
}

var _ toolbox.Field = (*NestedField)(nil)

// Nested returns a field that loads and dumps through s.
func Nested(s toolbox.Schema, opts ...FieldOption) *NestedField {
	c := applyOptions(opts)
	return &NestedField{schema: s, opts: c.opts}
}

// NestedMany returns a list of objects handled by s. Element order and count
// are preserved.
func NestedMany(s toolbox.Schema, opts ...FieldOption) *ListField {
	return List(Nested(s), opts...)
}

// Schema returns the nested schema.
func (n *NestedField) Schema() toolbox.Schema { return n.schema }

func (n *NestedField) Deserialize(ctx context.Context, v any, _ string, _ toolbox.Data) (any, error) {
	if v == nil {
		return nullValue(n.opts)
	}
	out, err := n.schema.Load(ctx, v)
	if err != nil {
		return nil, err
	}
	if err := toolbox.RunValidators(ctx, out, n.opts.Validators); err != nil {
		return nil, err
	}
	return out, nil
}

// Serialize dumps v through the nested schema. A wrapped schema may return
// output together with issues; both are passed up.
func (n *NestedField) Serialize(ctx context.Context, v any, _ string, _ any) (any, error) {
	if v == nil {
		return nil, nil
	}
	out, err := n.schema.Dump(ctx, v)
	if out == nil {
		return nil, err
	}
	return out, err
}

func (n *NestedField) Options() toolbox.FieldOptions { return n.opts }

func (n *NestedField) JSONSchema() (*js.Schema, error) {
	s, err := n.schema.JSONSchema()
	if err != nil {
		return nil, err
	}
	s = s.Clone()
	if n.opts.AllowNone {
		s.Nullable = true
	}
	return s, nil
}
