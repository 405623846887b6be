package dsl_test

import (
	"context"
	"testing"

	toolbox "github.com/plangrid/toolbox"
	g "github.com/plangrid/toolbox/dsl"
)

func TestInteger_Load(t *testing.T) {
	ctx := context.Background()
	doc, err := toolbox.DecodeJSON([]byte(`{"n": 9007199254740993, "f": 2.0, "x": 2.5}`))
	if err != nil {
		t.Fatal(err)
	}
	m := doc.(map[string]any)

	cases := []struct {
		name string
		in   any
		want int64
		ok   bool
	}{
		{"int", 7, 7, true},
		{"json number keeps precision", m["n"], 9007199254740993, true},
		{"integral float", m["f"], 2, true},
		{"query string", " 42 ", 42, true},
		{"fraction", m["x"], 0, false},
		{"bool", true, 0, false},
		{"word", "ten", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := g.Integer().Deserialize(ctx, tc.in, "n", nil)
			if !tc.ok {
				if code := issueCode(t, err); code != toolbox.CodeInvalidType {
					t.Fatalf("expected invalid_type, got %s", code)
				}
				return
			}
			if err != nil || v != tc.want {
				t.Fatalf("got %v %v", v, err)
			}
		})
	}
}

func TestBool_Load(t *testing.T) {
	ctx := context.Background()
	for in, want := range map[any]bool{true: true, "false": false, "1": true} {
		v, err := g.Bool().Deserialize(ctx, in, "b", nil)
		if err != nil || v != want {
			t.Fatalf("%v: got %v %v", in, v, err)
		}
	}
	if _, err := g.Bool().Deserialize(ctx, "maybe", "b", nil); err == nil {
		t.Fatal("expected invalid_type")
	}
}

func TestURL_Load(t *testing.T) {
	ctx := context.Background()
	f := g.URL()
	if _, err := f.Deserialize(ctx, "https://example.com/a?b=c", "u", nil); err != nil {
		t.Fatalf("unexpected %v", err)
	}
	for _, bad := range []string{"example.com", "/relative", "ftp://example.com"} {
		_, err := f.Deserialize(ctx, bad, "u", nil)
		if code := issueCode(t, err); code != toolbox.CodeInvalidURL {
			t.Fatalf("%q: expected invalid_url, got %s", bad, code)
		}
	}
}

func TestDict_Load(t *testing.T) {
	ctx := context.Background()
	v, err := g.Dict().Deserialize(ctx, map[string]int{"a": 1}, "d", nil)
	if err != nil {
		t.Fatal(err)
	}
	if m := v.(map[string]any); m["a"] != 1 {
		t.Fatalf("got %#v", v)
	}
	if _, err := g.Dict().Deserialize(ctx, []any{}, "d", nil); err == nil {
		t.Fatal("expected invalid_type")
	}
}

func TestWithMessage(t *testing.T) {
	ctx := context.Background()
	f := g.WithMessage(g.Integer(), func(v any) string { return "not a number" })

	_, err := f.Deserialize(ctx, "abc", "n", nil)
	iss, _ := toolbox.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != toolbox.CodeCustom || iss[0].Message != "not a number" {
		t.Fatalf("unexpected %v", iss)
	}

	_, err = f.Deserialize(ctx, nil, "n", nil)
	if code := issueCode(t, err); code != toolbox.CodeNull {
		t.Fatalf("null handling must be unchanged, got %s", code)
	}

	if v, err := f.Deserialize(ctx, "12", "n", nil); err != nil || v != int64(12) {
		t.Fatalf("got %v %v", v, err)
	}
}
