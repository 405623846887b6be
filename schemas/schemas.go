// Package schemas provides ready-made schemas shared by HTTP handlers: list
// envelopes, paginated list envelopes and the error payload.
package schemas

import (
	toolbox "github.com/plangrid/toolbox"
	"github.com/plangrid/toolbox/codec"
	"github.com/plangrid/toolbox/dsl"
	"github.com/plangrid/toolbox/policy"
	"github.com/plangrid/toolbox/rules"
)

// DataField is the name of the list field in ListOf envelopes.
const DataField = "data"

// ListOf returns a schema with a single field "data" holding a list of
// objects handled by s. When s has a title the envelope is titled
// "ListOf"+title.
func ListOf(s toolbox.Schema) toolbox.Schema {
	return ListOfWith(s)
}

// ListOfWith is ListOf plus extra fields declared after "data". An extra
// field named "data" replaces the list field.
func ListOfWith(s toolbox.Schema, extra ...toolbox.NamedField) toolbox.Schema {
	b := dsl.Object().
		Field(DataField, dsl.NestedMany(s)).
		Fields(extra...)
	if t := s.Title(); t != "" {
		b = b.Title("ListOf" + t)
	}
	return b.MustBuild()
}

// PaginatedListOf returns ListOf(s) plus "total_count", a non-negative
// integer, and "next_page_url", a URL that may be null on the last page.
// Both are checked on dump as well as on load.
func PaginatedListOf(s toolbox.Schema) toolbox.Schema {
	return ListOfWith(s,
		toolbox.NamedField{Name: "total_count", Field: codec.BothWaysField(dsl.Integer(dsl.Validate(rules.AtLeast(0))))},
		toolbox.NamedField{Name: "next_page_url", Field: codec.BothWaysField(dsl.URL(dsl.AllowNone()))},
	)
}

var errorSchema = Response().
	Field("message", dsl.String(dsl.Required())).
	Field("code", dsl.String()).
	Field("details", dsl.Dict()).
	Field("errors", dsl.Dict()).
	Title("Error").
	MustBuild()

// Error returns the schema of error payloads. "message" is required and
// checked on output.
func Error() toolbox.Schema { return errorSchema }

// Request starts a schema builder for request payloads: unknown input keys
// are rejected.
func Request() *dsl.ObjectBuilder {
	return dsl.Object().Policy(policy.DisallowExtraFields())
}

// Response starts a schema builder for response payloads: required fields
// are checked on output.
func Response() *dsl.ObjectBuilder {
	return dsl.Object().Policy(policy.RequireOnDump())
}
