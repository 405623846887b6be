package toolbox

// Package toolbox layers validation policy on top of a field/schema engine:
//
// - Schema/Field abstractions with Load (deserialize + validate) and Dump (serialize)
// - A stable error model via Issues (JSON Pointer, code, message) rendered per field with Messages
// - Bidirectional validation: re-validate what is about to be emitted (codec.BothWaysField/BothWaysSchema)
// - Domain scalar fields (ObjectID, UUID, CommaSeparatedList, QueryParamList) in dsl/
// - Schema policies (policy.DisallowExtraFields, policy.RequireOnDump)
// - Response shapes (schemas.Error, schemas.ListOf, schemas.PaginatedListOf)
//
// Design policy:
// - Keep only the core contracts in the root package; builders live under dsl/.
// - Messages come from the messages/ catalog, never inline text.
// - Failures during Load/Dump are data (Issues); definition mistakes are ErrConfig.
//
// Typical usage:
//
//  s := dsl.Object().
//      Field("id", dsl.MustObjectID(dsl.Required())).
//      Field("tags", dsl.CommaSeparatedList(dsl.String())).
//      Policy(policy.DisallowExtraFields()).
//      MustBuild()
//  v, err := s.Load(ctx, map[string]any{"id": "5f2b...", "tags": "a,b"})
//  out, err := codec.BothWaysSchema(s).Dump(ctx, v)
//
