package dsl

import (
	"context"

	toolbox "github.com/plangrid/toolbox"
	js "github.com/plangrid/toolbox/jsonschema"
	"github.com/plangrid/toolbox/messages"
)

type objectSchema struct {
	fields       []toolbox.NamedField // declaration order, excluded included
	active       []toolbox.NamedField // fields minus excluded
	excluded     []string
	policies     []toolbox.Policy
	loadPolicies []toolbox.LoadPolicy
	dumpPolicies []toolbox.DumpPolicy
	title        string
}

// Ensure objectSchema implements toolbox.Schema and toolbox.PartialDumper
var (
	_ toolbox.Schema        = (*objectSchema)(nil)
	_ toolbox.PartialDumper = (*objectSchema)(nil)
)

func (o *objectSchema) Fields() []toolbox.NamedField { return o.fields }
func (o *objectSchema) Excluded() []string           { return o.excluded }
func (o *objectSchema) Title() string                { return o.title }

func (o *objectSchema) Load(ctx context.Context, input any) (map[string]any, error) {
	data, ok := toolbox.AsData(input)
	if !ok {
		iss := toolbox.Issues{toolbox.Root().Issue(toolbox.CodeInvalidType, messages.T(toolbox.CodeInvalidType, nil), "expected", "object")}
		// policies still see the raw input; they decide whether a non-mapping matters
		iss = toolbox.AppendIssues(iss, o.checkLoad(ctx, nil, input)...)
		return nil, iss
	}
	out, iss := o.loadFields(ctx, data)
	if toolbox.IsFailFast(ctx) && len(iss) > 0 {
		return nil, iss
	}
	if more := o.checkLoad(ctx, out, input); len(more) > 0 {
		iss = toolbox.AppendIssues(iss, more...)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// loadFields reads each active field by name, falling back to its LoadFrom
// key, and enforces Required on missing keys.
func (o *objectSchema) loadFields(ctx context.Context, data toolbox.Data) (map[string]any, toolbox.Issues) {
	out := make(map[string]any, len(o.active))
	var iss toolbox.Issues
	for _, nf := range o.active {
		opts := nf.Field.Options()
		key := nf.Name
		raw, present := data.Lookup(key)
		if !present && opts.LoadFrom != "" {
			key = opts.LoadFrom
			raw, present = data.Lookup(key)
		}
		ref := toolbox.Root().Field(nf.Name)
		if !present {
			if opts.Required {
				iss = toolbox.AppendIssues(iss, ref.Issue(toolbox.CodeRequired, messages.T(toolbox.CodeRequired, nil)))
				if toolbox.IsFailFast(ctx) {
					return out, iss
				}
			}
			continue
		}
		v, err := nf.Field.Deserialize(ctx, raw, key, data)
		if err != nil {
			iss = toolbox.AppendIssues(iss, toolbox.IssuesFromErr("/", err).Prefix(ref)...)
			if toolbox.IsFailFast(ctx) {
				return out, iss
			}
			continue
		}
		out[nf.Name] = v
	}
	return out, iss
}

func (o *objectSchema) checkLoad(ctx context.Context, processed map[string]any, original any) toolbox.Issues {
	var iss toolbox.Issues
	for _, p := range o.loadPolicies {
		if err := p.CheckLoad(ctx, o, processed, original); err != nil {
			iss = toolbox.AppendIssues(iss, toolbox.IssuesFromErr("/", err)...)
		}
	}
	return iss
}

func (o *objectSchema) Dump(ctx context.Context, obj any) (map[string]any, error) {
	out, err := o.DumpPartial(ctx, obj)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DumpPartial serializes every field it can. On issues the partial mapping is
// returned alongside them; non-mapping input yields no mapping.
func (o *objectSchema) DumpPartial(ctx context.Context, obj any) (map[string]any, error) {
	if !toolbox.IsMapping(obj) {
		return nil, toolbox.Issues{toolbox.Root().Issue(toolbox.CodeInvalidType, messages.T(toolbox.CodeInvalidType, nil), "expected", "object")}
	}
	out := make(map[string]any, len(o.active))
	var iss toolbox.Issues
	for _, nf := range o.active {
		v, ok := toolbox.Attr(obj, nf.Name)
		if !ok {
			continue
		}
		sv, err := nf.Field.Serialize(ctx, v, nf.Name, obj)
		if err != nil {
			iss = toolbox.AppendIssues(iss, toolbox.IssuesFromErr("/", err).Prefix(toolbox.Root().Field(nf.Name))...)
			continue
		}
		out[nf.Name] = sv
	}
	for _, p := range o.dumpPolicies {
		if err := p.CheckDump(ctx, o, out); err != nil {
			iss = toolbox.AppendIssues(iss, toolbox.IssuesFromErr("/", err)...)
		}
	}
	if len(iss) > 0 {
		return out, iss
	}
	return out, nil
}

func (o *objectSchema) JSONSchema() (*js.Schema, error) {
	props := make(map[string]*js.Schema, len(o.active))
	var required []string
	for _, nf := range o.active {
		s, err := nf.Field.JSONSchema()
		if err != nil {
			return nil, err
		}
		props[nf.Name] = s
		if nf.Field.Options().Required {
			required = append(required, nf.Name)
		}
	}
	out := &js.Schema{Title: o.title, Type: "object", Properties: props, Required: required}
	for _, p := range o.policies {
		if d, ok := p.(toolbox.SchemaDecorator); ok {
			d.DecorateJSONSchema(out)
		}
	}
	return out, nil
}
