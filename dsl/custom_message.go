package dsl

import (
	"context"

	toolbox "github.com/plangrid/toolbox"
	js "github.com/plangrid/toolbox/jsonschema"
)

// WithMessage wraps f so that any failure while loading a non-null value
// (type conversion or validators) is reported as a single custom issue whose
// message is built from the offending value. Null handling is unchanged.
func WithMessage(f toolbox.Field, message func(value any) string) toolbox.Field {
	return &customMessageField{inner: f, message: message}
}

type customMessageField struct {
	inner   toolbox.Field
	message func(value any) string
}

func (c *customMessageField) Deserialize(ctx context.Context, v any, key string, data toolbox.Data) (any, error) {
	out, err := c.inner.Deserialize(ctx, v, key, data)
	if err == nil || v == nil {
		return out, err
	}
	if _, ok := toolbox.AsIssues(err); !ok {
		return nil, err
	}
	return nil, toolbox.Issues{toolbox.Root().Issue(toolbox.CodeCustom, c.message(v))}
}

func (c *customMessageField) Serialize(ctx context.Context, v any, key string, obj any) (any, error) {
	return c.inner.Serialize(ctx, v, key, obj)
}

func (c *customMessageField) Options() toolbox.FieldOptions  { return c.inner.Options() }
func (c *customMessageField) JSONSchema() (*js.Schema, error) { return c.inner.JSONSchema() }
