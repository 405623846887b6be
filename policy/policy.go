// Package policy provides the schema-level policies attached with
// dsl.Object().Policy(...).
package policy

import (
	"context"
	"sort"

	toolbox "github.com/plangrid/toolbox"
	js "github.com/plangrid/toolbox/jsonschema"
	"github.com/plangrid/toolbox/messages"
)

// RequireOnDump checks serialized output: every required field must be
// present and, unless it allows null, non-null. All violations are reported.
func RequireOnDump() toolbox.Policy { return requireOnDump{} }

type requireOnDump struct{}

func (requireOnDump) PolicyName() string { return "require_on_dump" }

func (requireOnDump) CheckDump(_ context.Context, s toolbox.Schema, out map[string]any) error {
	excluded := make(map[string]struct{}, len(s.Excluded()))
	for _, n := range s.Excluded() {
		excluded[n] = struct{}{}
	}
	var iss toolbox.Issues
	for _, nf := range s.Fields() {
		if _, skip := excluded[nf.Name]; skip {
			continue
		}
		opts := nf.Field.Options()
		if !opts.Required {
			continue
		}
		v, ok := out[nf.Name]
		switch {
		case !ok:
			iss = toolbox.AppendIssues(iss, toolbox.Root().Issue(toolbox.CodeRequiredFieldMissing,
				messages.RequiredFieldMissing(nf.Name), "field", nf.Name))
		case v == nil && !opts.AllowNone:
			iss = toolbox.AppendIssues(iss, toolbox.Root().Issue(toolbox.CodeRequiredFieldEmpty,
				messages.RequiredFieldEmpty(nf.Name), "field", nf.Name))
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// DisallowExtraFields rejects input keys that are neither a declared field
// name nor a declared LoadFrom key. Excluded fields are accepted under
// neither their name nor their LoadFrom key.
// Non-mapping input is left to the type check.
func DisallowExtraFields() toolbox.Policy { return disallowExtraFields{} }

type disallowExtraFields struct{}

func (disallowExtraFields) PolicyName() string { return "disallow_extra_fields" }

func (disallowExtraFields) CheckLoad(_ context.Context, s toolbox.Schema, _ map[string]any, original any) error {
	data, ok := toolbox.AsData(original)
	if !ok {
		return nil
	}
	accepted := toolbox.AcceptedKeys(s)
	var extra []string
	for _, k := range data.Keys() {
		if _, ok := accepted[k]; !ok {
			extra = append(extra, k)
		}
	}
	if len(extra) == 0 {
		return nil
	}
	sort.Strings(extra)
	return toolbox.Issues{toolbox.Root().Issue(toolbox.CodeUnsupportedFields,
		messages.UnsupportedFields(extra), "fields", extra)}
}

func (disallowExtraFields) DecorateJSONSchema(s *js.Schema) {
	s.AdditionalProperties = false
}
