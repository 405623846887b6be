// Package openapi projects toolbox schemas into OpenAPI 3 documents using
// kin-openapi. Schemas are registered as components under their title.
package openapi

import (
	"context"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	toolbox "github.com/plangrid/toolbox"
	js "github.com/plangrid/toolbox/jsonschema"
)

// Version is the OpenAPI version written by Document.
const Version = "3.0.3"

// ComponentRef returns the component reference of a titled schema.
func ComponentRef(title string) string { return "#/components/schemas/" + title }

// Schema converts a toolbox schema into an inline OpenAPI schema.
func Schema(s toolbox.Schema) (*openapi3.Schema, error) {
	j, err := s.JSONSchema()
	if err != nil {
		return nil, err
	}
	return Convert(j), nil
}

// Components registers every schema under its title. Untitled schemas and
// duplicate titles are configuration errors.
func Components(ss ...toolbox.Schema) (openapi3.Components, error) {
	comps := openapi3.NewComponents()
	comps.Schemas = make(openapi3.Schemas, len(ss))
	for i, s := range ss {
		t := s.Title()
		if t == "" {
			return comps, fmt.Errorf("openapi: schema #%d has no title: %w", i, toolbox.ErrConfig)
		}
		if _, dup := comps.Schemas[t]; dup {
			return comps, fmt.Errorf("openapi: duplicate schema title %q: %w", t, toolbox.ErrConfig)
		}
		o, err := Schema(s)
		if err != nil {
			return comps, fmt.Errorf("openapi: %s: %w", t, err)
		}
		comps.Schemas[t] = openapi3.NewSchemaRef("", o)
	}
	return comps, nil
}

// Document builds a path-less OpenAPI document holding the components of
// ss, and validates it.
func Document(ctx context.Context, title, version string, ss ...toolbox.Schema) (*openapi3.T, error) {
	comps, err := Components(ss...)
	if err != nil {
		return nil, err
	}
	doc := &openapi3.T{
		OpenAPI:    Version,
		Info:       &openapi3.Info{Title: title, Version: version},
		Paths:      openapi3.NewPaths(),
		Components: &comps,
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: invalid document: %w", err)
	}
	return doc, nil
}

// Convert maps the JSON Schema projection onto its OpenAPI 3.0 counterpart.
func Convert(j *js.Schema) *openapi3.Schema {
	if j == nil {
		return nil
	}
	o := &openapi3.Schema{
		Title:    j.Title,
		Format:   j.Format,
		Pattern:  j.Pattern,
		Nullable: j.Nullable,
		Default:  j.Default,
		Min:      j.Minimum,
		Max:      j.Maximum,
		Required: j.Required,
		Enum:     j.Enum,
	}
	if j.Type != "" {
		o.Type = &openapi3.Types{j.Type}
	}
	if j.MinLength != nil {
		o.MinLength = uint64(*j.MinLength)
	}
	if j.MaxLength != nil {
		n := uint64(*j.MaxLength)
		o.MaxLength = &n
	}
	if j.MinItems != nil {
		o.MinItems = uint64(*j.MinItems)
	}
	if j.MaxItems != nil {
		n := uint64(*j.MaxItems)
		o.MaxItems = &n
	}
	if j.Items != nil {
		o.Items = openapi3.NewSchemaRef("", Convert(j.Items))
	}
	if len(j.Properties) > 0 {
		o.Properties = make(openapi3.Schemas, len(j.Properties))
		for name, p := range j.Properties {
			o.Properties[name] = openapi3.NewSchemaRef("", Convert(p))
		}
	}
	switch ap := j.AdditionalProperties.(type) {
	case bool:
		o.AdditionalProperties = openapi3.AdditionalProperties{Has: &ap}
	case *js.Schema:
		o.AdditionalProperties = openapi3.AdditionalProperties{Schema: openapi3.NewSchemaRef("", Convert(ap))}
	}
	return o
}
