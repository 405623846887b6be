package rules_test

import (
	"context"
	"regexp"
	"strings"
	"testing"

	toolbox "github.com/plangrid/toolbox"
	"github.com/plangrid/toolbox/rules"
)

func codeOf(t *testing.T, err error) string {
	t.Helper()
	iss, ok := toolbox.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("expected one issue, got %v", err)
	}
	return iss[0].Code
}

func TestIsObjectID(t *testing.T) {
	ctx := context.Background()
	r := rules.IsObjectID()
	for _, ok := range []string{"5f2b1c9e8d7a6b5c4d3e2f10", "ABCDEFabcdef012345678901", strings.Repeat("0", 24)} {
		if err := r.Validate(ctx, ok); err != nil {
			t.Fatalf("%q: unexpected %v", ok, err)
		}
	}
	for _, bad := range []string{"", "5f2b1c9e8d7a6b5c4d3e2f1", "5f2b1c9e8d7a6b5c4d3e2f100", "zf2b1c9e8d7a6b5c4d3e2f10", " 5f2b1c9e8d7a6b5c4d3e2f10"} {
		if got := codeOf(t, r.Validate(ctx, bad)); got != toolbox.CodeInvalidObjectID {
			t.Fatalf("%q: code=%s", bad, got)
		}
	}
	// non-strings are matched through their string form
	if err := r.Validate(ctx, 42); err == nil {
		t.Fatal("expected failure for int")
	}
}

func TestIsUUID(t *testing.T) {
	ctx := context.Background()
	r := rules.IsUUID()
	for _, ok := range []string{"123e4567-e89b-12d3-a456-426614174000", "123E4567-E89B-12D3-A456-426614174000"} {
		if err := r.Validate(ctx, ok); err != nil {
			t.Fatalf("%q: unexpected %v", ok, err)
		}
	}
	for _, bad := range []string{"", "123e4567e89b12d3a456426614174000", "{123e4567-e89b-12d3-a456-426614174000}", "123e4567-e89b-12d3-a456-42661417400g"} {
		if got := codeOf(t, r.Validate(ctx, bad)); got != toolbox.CodeInvalidUUID {
			t.Fatalf("%q: code=%s", bad, got)
		}
	}
}

func TestRegexpUsesCatalogMessage(t *testing.T) {
	r := rules.Regexp(regexp.MustCompile(`^a+$`), toolbox.CodePattern)
	iss, _ := toolbox.AsIssues(r.Validate(context.Background(), "b"))
	if len(iss) != 1 || iss[0].Message != "String does not match expected pattern." {
		t.Fatalf("got %+v", iss)
	}
	if r.Pattern() != `^a+$` {
		t.Fatalf("pattern: %s", r.Pattern())
	}
}

func TestRange(t *testing.T) {
	ctx := context.Background()
	r := rules.AtLeast(0)
	if err := r.Validate(ctx, int64(0)); err != nil {
		t.Fatalf("unexpected %v", err)
	}
	if got := codeOf(t, r.Validate(ctx, -1)); got != toolbox.CodeTooSmall {
		t.Fatalf("code=%s", got)
	}
	if got := codeOf(t, rules.Range(1, 3).Validate(ctx, 4.5)); got != toolbox.CodeTooBig {
		t.Fatalf("code=%s", got)
	}
	if got := codeOf(t, r.Validate(ctx, "1")); got != toolbox.CodeInvalidType {
		t.Fatalf("code=%s", got)
	}
}

func TestLength(t *testing.T) {
	ctx := context.Background()
	r := rules.Length(1, 2)
	if got := codeOf(t, r.Validate(ctx, "")); got != toolbox.CodeTooShort {
		t.Fatalf("code=%s", got)
	}
	if got := codeOf(t, r.Validate(ctx, []any{1, 2, 3})); got != toolbox.CodeTooLong {
		t.Fatalf("code=%s", got)
	}
	if err := r.Validate(ctx, "日本"); err != nil {
		t.Fatalf("runes counted: %v", err)
	}
}

func TestOneOf(t *testing.T) {
	ctx := context.Background()
	r := rules.OneOf("asc", "desc")
	if err := r.Validate(ctx, "asc"); err != nil {
		t.Fatalf("unexpected %v", err)
	}
	if got := codeOf(t, r.Validate(ctx, "up")); got != toolbox.CodeInvalidEnum {
		t.Fatalf("code=%s", got)
	}
}

func TestURL(t *testing.T) {
	ctx := context.Background()
	r := rules.URL()
	if err := r.Validate(ctx, "https://api.example.com/items?page=2"); err != nil {
		t.Fatalf("unexpected %v", err)
	}
	for _, bad := range []any{"/relative", "ftp://example.com", "not a url", 3} {
		if got := codeOf(t, r.Validate(ctx, bad)); got != toolbox.CodeInvalidURL {
			t.Fatalf("%v: code=%s", bad, got)
		}
	}
}
