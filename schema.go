package toolbox

import (
	"context"

	js "github.com/plangrid/toolbox/jsonschema"
)

// Schema is a named collection of fields plus schema-level policies.
//
// Load and Dump never panic on bad input; failures are returned as Issues.
// On Load exactly one of (value, error) is set. Dump may return the
// serialized mapping together with Issues when a wrapper re-validates the
// output (see codec.BothWaysSchema); callers must always check the error.
type Schema interface {
	// Load deserializes raw input (map[string]any, url.Values or Data) and
	// validates it.
	Load(ctx context.Context, input any) (map[string]any, error)
	// Dump serializes obj (a map, a struct or a pointer to one).
	Dump(ctx context.Context, obj any) (map[string]any, error)
	// Fields returns the declared fields in declaration order.
	Fields() []NamedField
	// Excluded returns field names removed from both directions.
	Excluded() []string
	// Title returns the display title, or "" when none was set.
	Title() string
	// JSONSchema projects the schema into a JSON Schema representation.
	JSONSchema() (*js.Schema, error)
}

// NamedField binds a Field to its name within a Schema.
type NamedField struct {
	Name  string
	Field Field
}

// Policy is an orthogonal behavior attached to a schema. A policy implements
// LoadPolicy, DumpPolicy, or both.
type Policy interface {
	PolicyName() string
}

// LoadPolicy runs at schema level after field deserialization. processed is
// the deserialized mapping (nil when input was not a mapping) and original
// the raw input as given to Load.
type LoadPolicy interface {
	Policy
	CheckLoad(ctx context.Context, s Schema, processed map[string]any, original any) error
}

// DumpPolicy runs over the already serialized mapping after Dump.
type DumpPolicy interface {
	Policy
	CheckDump(ctx context.Context, s Schema, out map[string]any) error
}

// AcceptedKeys returns the input keys a schema declares: every non-excluded
// field name plus its LoadFrom key. Excluded fields contribute neither.
func AcceptedKeys(s Schema) map[string]struct{} {
	excluded := make(map[string]struct{}, len(s.Excluded()))
	for _, n := range s.Excluded() {
		excluded[n] = struct{}{}
	}
	keys := make(map[string]struct{}, len(s.Fields())*2)
	for _, nf := range s.Fields() {
		if _, skip := excluded[nf.Name]; skip {
			continue
		}
		keys[nf.Name] = struct{}{}
		if lf := nf.Field.Options().LoadFrom; lf != "" {
			keys[lf] = struct{}{}
		}
	}
	for n := range excluded {
		delete(keys, n)
	}
	return keys
}

// PartialDumper is implemented by schemas that can hand back the mapping
// serialized so far together with the dump issues. Dump itself returns a nil
// mapping whenever it fails.
type PartialDumper interface {
	DumpPartial(ctx context.Context, obj any) (map[string]any, error)
}

// SchemaDecorator is implemented by policies that change the JSON Schema
// projection of the schema they are attached to.
type SchemaDecorator interface {
	DecorateJSONSchema(s *js.Schema)
}
