package codec

import (
	"context"
	"fmt"

	toolbox "github.com/plangrid/toolbox"
)

// BothWaysField returns f with serialization re-validated: Serialize first
// runs f.Deserialize on the value, discards the result and surfaces its
// issues unchanged; only then does it delegate to f.Serialize. Everything
// else is delegated as-is.
func BothWaysField(f toolbox.Field) toolbox.Field {
	return &bothWaysField{Field: f}
}

type bothWaysField struct {
	toolbox.Field
}

func (b *bothWaysField) Serialize(ctx context.Context, v any, key string, obj any) (any, error) {
	if _, err := b.Field.Deserialize(ctx, v, key, toolbox.MapData{key: v}); err != nil {
		return nil, err
	}
	return b.Field.Serialize(ctx, v, key, obj)
}

// BothWaysSchema returns s with Dump re-validated: the serialized mapping is
// loaded back through s and the load issues are appended to the dump issues.
//
// The serialized mapping is returned even when either step reports issues,
// so callers get best-effort output and must check the error. Schemas that
// implement toolbox.PartialDumper hand back what they serialized before
// failing; that mapping is re-loaded too. Only when no mapping was produced
// at all is the dump error returned unchanged.
func BothWaysSchema(s toolbox.Schema) toolbox.Schema {
	return &bothWaysSchema{Schema: s}
}

type bothWaysSchema struct {
	toolbox.Schema
}

func (b *bothWaysSchema) Dump(ctx context.Context, obj any) (map[string]any, error) {
	out, err := b.dump(ctx, obj)
	if err != nil {
		if _, ok := toolbox.AsIssues(err); !ok || out == nil {
			return out, err
		}
	}
	_, lerr := b.Schema.Load(ctx, out)
	return out, toolbox.MergeErrors(err, lerr)
}

func (b *bothWaysSchema) dump(ctx context.Context, obj any) (map[string]any, error) {
	if pd, ok := b.Schema.(toolbox.PartialDumper); ok {
		return pd.DumpPartial(ctx, obj)
	}
	return b.Schema.Dump(ctx, obj)
}

// TargetKind tells which side of a Target is set.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetField
	TargetSchema
)

// Target is either a field or a schema to be wrapped by ValidateBothWays.
// The zero Target is neither.
type Target struct {
	kind   TargetKind
	field  toolbox.Field
	schema toolbox.Schema
}

// FieldTarget wraps a field as a Target.
func FieldTarget(f toolbox.Field) Target {
	if f == nil {
		return Target{}
	}
	return Target{kind: TargetField, field: f}
}

// SchemaTarget wraps a schema as a Target.
func SchemaTarget(s toolbox.Schema) Target {
	if s == nil {
		return Target{}
	}
	return Target{kind: TargetSchema, schema: s}
}

func (t Target) Kind() TargetKind       { return t.kind }
func (t Target) Field() toolbox.Field   { return t.field }
func (t Target) Schema() toolbox.Schema { return t.schema }

// ValidateBothWays dispatches to BothWaysField or BothWaysSchema. A Target
// that is neither fails with toolbox.ErrConfig.
func ValidateBothWays(t Target) (Target, error) {
	switch t.kind {
	case TargetField:
		return FieldTarget(BothWaysField(t.field)), nil
	case TargetSchema:
		return SchemaTarget(BothWaysSchema(t.schema)), nil
	default:
		return Target{}, fmt.Errorf("codec: ValidateBothWays needs a field or a schema: %w", toolbox.ErrConfig)
	}
}
