package policy_test

import (
	"context"
	"net/url"
	"reflect"
	"testing"

	toolbox "github.com/plangrid/toolbox"
	"github.com/plangrid/toolbox/dsl"
	"github.com/plangrid/toolbox/messages"
	"github.com/plangrid/toolbox/policy"
)

func strictSchema() toolbox.Schema {
	return dsl.Object().
		Field("a", dsl.Integer()).
		Field("b", dsl.Integer()).
		Policy(policy.DisallowExtraFields()).
		MustBuild()
}

func TestDisallowExtraFields_RejectsUnknownKeys(t *testing.T) {
	ctx := context.Background()
	_, err := strictSchema().Load(ctx, map[string]any{"a": 1, "b": 2, "c": 3})
	iss, ok := toolbox.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("expected one issue, got %v", err)
	}
	it := iss[0]
	if it.Code != toolbox.CodeUnsupportedFields || it.Path != "/" {
		t.Fatalf("unexpected issue %+v", it)
	}
	if it.Message != messages.UnsupportedFields([]string{"c"}) {
		t.Fatalf("message: %q", it.Message)
	}
	if !reflect.DeepEqual(it.Params["fields"], []string{"c"}) {
		t.Fatalf("params: %v", it.Params)
	}
	if got := iss.Messages()[toolbox.SchemaKey]; len(got) != 1 {
		t.Fatalf("schema-level messages: %v", iss.Messages())
	}
}

func TestDisallowExtraFields_AcceptsDeclaredKeys(t *testing.T) {
	ctx := context.Background()
	v, err := strictSchema().Load(ctx, map[string]any{"a": 1, "b": 2})
	if err != nil {
		t.Fatalf("unexpected %v", err)
	}
	if v["a"] != int64(1) || v["b"] != int64(2) {
		t.Fatalf("value: %v", v)
	}
}

func TestDisallowExtraFields_ListsEveryExtraKey(t *testing.T) {
	ctx := context.Background()
	_, err := strictSchema().Load(ctx, map[string]any{"a": 1, "z": 1, "c": 1})
	iss, _ := toolbox.AsIssues(err)
	if len(iss) != 1 || !reflect.DeepEqual(iss[0].Params["fields"], []string{"c", "z"}) {
		t.Fatalf("unexpected %v", iss)
	}
}

func TestDisallowExtraFields_LoadFromAndExclude(t *testing.T) {
	ctx := context.Background()
	s := dsl.Object().
		Field("page_size", dsl.Integer(dsl.LoadFrom("pageSize"))).
		Field("secret", dsl.String(dsl.LoadFrom("secretKey"))).
		Exclude("secret").
		Policy(policy.DisallowExtraFields()).
		MustBuild()

	if _, err := s.Load(ctx, map[string]any{"pageSize": 10}); err != nil {
		t.Fatalf("load_from key must be accepted: %v", err)
	}
	cases := []struct {
		name  string
		input map[string]any
		want  []string
	}{
		{"excluded name", map[string]any{"page_size": 10, "secret": "x"}, []string{"secret"}},
		{"excluded load_from key", map[string]any{"page_size": 10, "secretKey": "x"}, []string{"secretKey"}},
		{"both", map[string]any{"secret": "x", "secretKey": "y"}, []string{"secret", "secretKey"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Load(ctx, tc.input)
			iss, _ := toolbox.AsIssues(err)
			if len(iss) != 1 || !reflect.DeepEqual(iss[0].Params["fields"], tc.want) {
				t.Fatalf("expected %v rejected, got %v", tc.want, err)
			}
		})
	}
}

func TestAcceptedKeys_SkipsExcludedFields(t *testing.T) {
	s := dsl.Object().
		Field("a", dsl.String(dsl.LoadFrom("A"))).
		Field("x", dsl.String(dsl.LoadFrom("X"))).
		Exclude("x").
		MustBuild()
	want := map[string]struct{}{"a": {}, "A": {}}
	if got := toolbox.AcceptedKeys(s); !reflect.DeepEqual(got, want) {
		t.Fatalf("accepted keys: %v", got)
	}
}

func TestDisallowExtraFields_QueryInput(t *testing.T) {
	ctx := context.Background()
	_, err := strictSchema().Load(ctx, url.Values{"a": {"1"}, "q": {"x", "y"}})
	iss, _ := toolbox.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != toolbox.CodeUnsupportedFields {
		t.Fatalf("unexpected %v", err)
	}
}

func TestDisallowExtraFields_SkipsNonMapping(t *testing.T) {
	ctx := context.Background()
	_, err := strictSchema().Load(ctx, []any{1, 2})
	iss, _ := toolbox.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != toolbox.CodeInvalidType {
		t.Fatalf("only the type error is expected, got %v", err)
	}
}

func outputSchema() toolbox.Schema {
	return dsl.Object().
		Field("x", dsl.String(dsl.Required())).
		Field("y", dsl.String(dsl.Required(), dsl.AllowNone())).
		Field("z", dsl.String()).
		Policy(policy.RequireOnDump()).
		MustBuild()
}

type withX struct {
	X *string `json:"x"`
	Y *string `json:"y"`
}

type withoutX struct {
	Y string `json:"y"`
}

func TestRequireOnDump_Missing(t *testing.T) {
	ctx := context.Background()
	_, err := outputSchema().Dump(ctx, withoutX{Y: "y"})
	iss, ok := toolbox.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("expected one issue, got %v", err)
	}
	if iss[0].Code != toolbox.CodeRequiredFieldMissing || iss[0].Message != messages.RequiredFieldMissing("x") {
		t.Fatalf("unexpected %+v", iss[0])
	}
}

func TestRequireOnDump_Empty(t *testing.T) {
	ctx := context.Background()
	_, err := outputSchema().Dump(ctx, withX{})
	iss, ok := toolbox.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("expected one issue (y allows null), got %v", err)
	}
	if iss[0].Code != toolbox.CodeRequiredFieldEmpty || iss[0].Message != messages.RequiredFieldEmpty("x") {
		t.Fatalf("unexpected %+v", iss[0])
	}
}

func TestRequireOnDump_AccumulatesViolations(t *testing.T) {
	ctx := context.Background()
	s := dsl.Object().
		Field("a", dsl.String(dsl.Required())).
		Field("b", dsl.String(dsl.Required())).
		Policy(policy.RequireOnDump()).
		MustBuild()
	_, err := s.Dump(ctx, map[string]any{"b": nil})
	iss, _ := toolbox.AsIssues(err)
	if len(iss) != 2 || iss[0].Code != toolbox.CodeRequiredFieldMissing || iss[1].Code != toolbox.CodeRequiredFieldEmpty {
		t.Fatalf("unexpected %v", iss)
	}
	if got := iss.Messages()[toolbox.SchemaKey]; len(got) != 2 {
		t.Fatalf("messages: %v", iss.Messages())
	}
}

func TestRequireOnDump_Success(t *testing.T) {
	ctx := context.Background()
	x := "x"
	out, err := outputSchema().Dump(ctx, withX{X: &x})
	if err != nil {
		t.Fatalf("unexpected %v", err)
	}
	if out["x"] != "x" || out["y"] != nil {
		t.Fatalf("output: %v", out)
	}
	if _, ok := out["z"]; ok {
		t.Fatalf("absent attribute must stay absent: %v", out)
	}
}

func TestPoliciesDecorateJSONSchema(t *testing.T) {
	js, err := strictSchema().JSONSchema()
	if err != nil {
		t.Fatal(err)
	}
	if js.AdditionalProperties != false {
		t.Fatalf("additionalProperties: %v", js.AdditionalProperties)
	}
}
