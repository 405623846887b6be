package toolbox

import (
	"context"

	js "github.com/plangrid/toolbox/jsonschema"
)

// Field is a single typed, validated slot within a Schema. Implementations
// are immutable after construction and safe for concurrent use.
type Field interface {
	// Deserialize converts an external value into its internal form and runs
	// the field validators. key is the input key the value was read from and
	// data the whole raw input, for fields that read more than one value.
	// Returned Issues use paths relative to the field ("/" is the field itself).
	Deserialize(ctx context.Context, value any, key string, data Data) (any, error)
	// Serialize converts an internal value into its external form. obj is the
	// object the value was extracted from.
	Serialize(ctx context.Context, value any, key string, obj any) (any, error)
	// Options exposes the declared field attributes.
	Options() FieldOptions
	// JSONSchema projects the field into a JSON Schema representation.
	JSONSchema() (*js.Schema, error)
}

// FieldOptions holds the declared attributes shared by every field type.
type FieldOptions struct {
	Required   bool
	AllowNone  bool
	LoadFrom   string // Alternate input key, read when the field name is absent.
	Validators []Validator
}

// Validator checks an already deserialized value.
type Validator interface {
	Validate(ctx context.Context, v any) error
}

// ValidatorFunc adapts a plain function to Validator.
type ValidatorFunc func(ctx context.Context, v any) error

func (f ValidatorFunc) Validate(ctx context.Context, v any) error { return f(ctx, v) }

// RunValidators applies every validator to v and accumulates their issues.
func RunValidators(ctx context.Context, v any, vs []Validator) error {
	var iss Issues
	for _, val := range vs {
		if val == nil {
			continue
		}
		if err := val.Validate(ctx, v); err != nil {
			iss = AppendIssues(iss, IssuesFromErr("/", err)...)
			if IsFailFast(ctx) {
				return iss
			}
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}
