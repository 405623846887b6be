package dsl

import (
	"errors"
	"fmt"

	toolbox "github.com/plangrid/toolbox"
)

// ObjectBuilder accumulates the declaration of an object schema. Mistakes are
// collected and reported by Build.
type ObjectBuilder struct {
	fields   []toolbox.NamedField
	index    map[string]int
	excluded []string
	policies []toolbox.Policy
	title    string
	errs     []error
}

// Object creates a new schema builder. Unknown input keys are ignored unless
// policy.DisallowExtraFields is attached.
func Object() *ObjectBuilder {
	return &ObjectBuilder{index: map[string]int{}}
}

// Field registers a field under name. Declaring a name twice replaces the
// earlier field in place.
func (b *ObjectBuilder) Field(name string, f toolbox.Field) *ObjectBuilder {
	if name == "" {
		b.errs = append(b.errs, errors.New("field name must not be empty"))
		return b
	}
	if f == nil {
		b.errs = append(b.errs, fmt.Errorf("field %q is nil", name))
		return b
	}
	if i, ok := b.index[name]; ok {
		b.fields[i].Field = f
		return b
	}
	b.index[name] = len(b.fields)
	b.fields = append(b.fields, toolbox.NamedField{Name: name, Field: f})
	return b
}

// Fields registers every field of nfs in order.
func (b *ObjectBuilder) Fields(nfs ...toolbox.NamedField) *ObjectBuilder {
	for _, nf := range nfs {
		b.Field(nf.Name, nf.Field)
	}
	return b
}

// Exclude removes the named fields from both Load and Dump.
func (b *ObjectBuilder) Exclude(names ...string) *ObjectBuilder {
	b.excluded = append(b.excluded, names...)
	return b
}

// Policy attaches schema-level policies. They run in the order given.
func (b *ObjectBuilder) Policy(ps ...toolbox.Policy) *ObjectBuilder {
	b.policies = append(b.policies, ps...)
	return b
}

// Title sets the display title used by JSON Schema and OpenAPI projections.
func (b *ObjectBuilder) Title(t string) *ObjectBuilder {
	b.title = t
	return b
}

// Build validates the builder and returns a Schema. Mistakes are reported
// wrapped in toolbox.ErrConfig.
func (b *ObjectBuilder) Build() (toolbox.Schema, error) {
	errs := append([]error(nil), b.errs...)

	excluded := make(map[string]struct{}, len(b.excluded))
	for _, n := range b.excluded {
		if _, ok := b.index[n]; !ok {
			errs = append(errs, fmt.Errorf("excluded field %q is not declared", n))
			continue
		}
		excluded[n] = struct{}{}
	}

	var loads []toolbox.LoadPolicy
	var dumps []toolbox.DumpPolicy
	for _, p := range b.policies {
		if p == nil {
			errs = append(errs, errors.New("policy is nil"))
			continue
		}
		lp, isLoad := p.(toolbox.LoadPolicy)
		dp, isDump := p.(toolbox.DumpPolicy)
		if !isLoad && !isDump {
			errs = append(errs, fmt.Errorf("policy %q implements neither LoadPolicy nor DumpPolicy", p.PolicyName()))
			continue
		}
		if isLoad {
			loads = append(loads, lp)
		}
		if isDump {
			dumps = append(dumps, dp)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("dsl: %w: %w", toolbox.ErrConfig, errors.Join(errs...))
	}

	active := make([]toolbox.NamedField, 0, len(b.fields))
	for _, nf := range b.fields {
		if _, skip := excluded[nf.Name]; !skip {
			active = append(active, nf)
		}
	}
	return &objectSchema{
		fields:       append([]toolbox.NamedField(nil), b.fields...),
		active:       active,
		excluded:     append([]string(nil), b.excluded...),
		policies:     append([]toolbox.Policy(nil), b.policies...),
		loadPolicies: loads,
		dumpPolicies: dumps,
		title:        b.title,
	}, nil
}

// MustBuild is like Build but panics on error.
func (b *ObjectBuilder) MustBuild() toolbox.Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
