// Package dsl provides the field types and the schema builder.
//
// Overview
//   - Builder API: declare a schema with Object().Field(...).Exclude(...).Policy(...).Title(...).MustBuild().
//   - Fields: String(), Integer(), Bool(), URL(), Dict(), List(inner), Nested(s), NestedMany(s).
//   - Domain fields: ObjectID(), UUID(), CommaSeparatedList(inner), QueryParamList(inner).
//   - Options: Required(), AllowNone(), LoadFrom(key), Validate(v...).
//   - Messages: WithMessage(f, fn) replaces any load failure of f with a custom message.
//
// File layout (roles)
//   - options.go: FieldOption and the shared option setters.
//   - primitives.go: the scalar field adapter and String/Integer/Bool/URL/Dict.
//   - list.go: List, CommaSeparatedList, QueryParamList.
//   - nested.go: Nested/NestedMany over any toolbox.Schema.
//   - identifiers.go: ObjectID/UUID (fixed validators, validated both ways).
//   - object_builder.go / object_core.go: the builder and the objectSchema Load/Dump paths.
//
// Example (quickstart)
//
//	user := dsl.Object().
//	    Field("id", dsl.MustObjectID(dsl.Required())).
//	    Field("email", dsl.String(dsl.Required())).
//	    Field("tags", dsl.CommaSeparatedList(dsl.String())).
//	    Title("User").
//	    MustBuild()
//
//	v, err := user.Load(ctx, map[string]any{"id": "5f2b1c9e8d7a6b5c4d3e2f10", "email": "a@b.c", "tags": "x,y"})
//	// v["tags"] == []any{"x", "y"}
//	out, err := user.Dump(ctx, v)
//	// out["tags"] == "x,y"
//
// Errors are returned as toolbox.Issues; iss.Messages() renders them per field
// ("tags.1", "_schema" for schema-level issues).
package dsl
