package dsl

import (
	"fmt"

	toolbox "github.com/plangrid/toolbox"
	"github.com/plangrid/toolbox/codec"
	js "github.com/plangrid/toolbox/jsonschema"
	"github.com/plangrid/toolbox/rules"
)

// ObjectID returns a string field holding a 24-character hexadecimal object
// identifier. The value is validated on load and again before it is
// serialized. AllowNone, Required and LoadFrom are honored; Validate is a
// configuration error because the rule is fixed.
func ObjectID(opts ...FieldOption) (toolbox.Field, error) {
	return fixedString("ObjectID", "", rules.IsObjectID(), opts)
}

// MustObjectID is like ObjectID but panics on configuration error.
func MustObjectID(opts ...FieldOption) toolbox.Field {
	return must(ObjectID(opts...))
}

// UUID returns a string field holding a canonical 8-4-4-4-12 UUID in any hex
// case, validated in both directions like ObjectID.
func UUID(opts ...FieldOption) (toolbox.Field, error) {
	return fixedString("UUID", "uuid", rules.IsUUID(), opts)
}

// MustUUID is like UUID but panics on configuration error.
func MustUUID(opts ...FieldOption) toolbox.Field {
	return must(UUID(opts...))
}

func fixedString(name, format string, rule toolbox.Validator, opts []FieldOption) (toolbox.Field, error) {
	c := applyOptions(opts)
	if c.setValidate {
		return nil, fmt.Errorf("dsl: %s does not accept custom validators: %w", name, toolbox.ErrConfig)
	}
	c.opts.Validators = []toolbox.Validator{rule}
	f := &scalarField{
		opts: c.opts,
		load: loadString,
		dump: loadString,
		jsonSchema: func() *js.Schema {
			return &js.Schema{Type: "string", Format: format}
		},
	}
	return codec.BothWaysField(f), nil
}

func must(f toolbox.Field, err error) toolbox.Field {
	if err != nil {
		panic(err)
	}
	return f
}
