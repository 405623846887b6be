// Package codec holds the bidirectional pieces of toolbox: wrappers that
// re-validate output (BothWaysField, BothWaysSchema) and typed codecs that
// convert between a wire string and a domain value, re-validating on encode.
package codec

import (
	"context"

	toolbox "github.com/plangrid/toolbox"
	js "github.com/plangrid/toolbox/jsonschema"
	"github.com/plangrid/toolbox/messages"
)

// Codec performs bidirectional transformation and validation between the wire
// representation A and the domain representation B.
type Codec[A, B any] interface {
	Decode(ctx context.Context, a A) (B, error) // A -> validate -> B.
	Encode(ctx context.Context, b B) (A, error) // B -> A -> re-validate A.
	// Format names the wire format for JSON Schema ("uuid", "date-time", ...).
	Format() string
}

// AsField exposes a string codec as a toolbox.Field: Load decodes the wire
// string into B, Dump encodes B (or canonicalizes a wire string) back.
func AsField[B any](c Codec[string, B], opts toolbox.FieldOptions) toolbox.Field {
	return &codecField[B]{c: c, opts: opts}
}

type codecField[B any] struct {
	c    Codec[string, B]
	opts toolbox.FieldOptions
}

func (f *codecField[B]) Deserialize(ctx context.Context, v any, _ string, _ toolbox.Data) (any, error) {
	if v == nil {
		if f.opts.AllowNone {
			return nil, nil
		}
		return nil, toolbox.Issues{toolbox.Root().Issue(toolbox.CodeNull, messages.T(toolbox.CodeNull, nil))}
	}
	var (
		b   B
		err error
	)
	switch vv := v.(type) {
	case string:
		b, err = f.c.Decode(ctx, vv)
	case B:
		// already a domain value: round-trip through the wire form to validate it
		var s string
		if s, err = f.c.Encode(ctx, vv); err == nil {
			b, err = f.c.Decode(ctx, s)
		}
	default:
		return nil, toolbox.Issues{toolbox.Root().Issue(toolbox.CodeInvalidType, messages.T(toolbox.CodeInvalidType, nil), "expected", "string")}
	}
	if err != nil {
		return nil, err
	}
	if err := toolbox.RunValidators(ctx, b, f.opts.Validators); err != nil {
		return nil, err
	}
	return b, nil
}

func (f *codecField[B]) Serialize(ctx context.Context, v any, _ string, _ any) (any, error) {
	switch vv := v.(type) {
	case nil:
		return nil, nil
	case B:
		return f.c.Encode(ctx, vv)
	case string:
		b, err := f.c.Decode(ctx, vv)
		if err != nil {
			return nil, err
		}
		return f.c.Encode(ctx, b)
	}
	return nil, toolbox.Issues{toolbox.Root().Issue(toolbox.CodeInvalidType, messages.T(toolbox.CodeInvalidType, nil))}
}

func (f *codecField[B]) Options() toolbox.FieldOptions { return f.opts }

func (f *codecField[B]) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "string", Format: f.c.Format(), Nullable: f.opts.AllowNone}, nil
}
