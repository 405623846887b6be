package dsl_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"

	toolbox "github.com/plangrid/toolbox"
	g "github.com/plangrid/toolbox/dsl"
	"github.com/plangrid/toolbox/messages"
	"github.com/plangrid/toolbox/rules"
)

func issueCode(t *testing.T, err error) string {
	t.Helper()
	iss, ok := toolbox.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected Issues, got %v", err)
	}
	return iss[0].Code
}

func TestObjectID_RoundTrip(t *testing.T) {
	ctx := context.Background()
	f := g.MustObjectID()
	for _, id := range []string{
		"5f2b1c9e8d7a6b5c4d3e2f10",
		"ABCDEFabcdef0123456789AB",
		strings.Repeat("0", 24),
	} {
		v, err := f.Deserialize(ctx, id, "id", nil)
		if err != nil || v != id {
			t.Fatalf("load %q: v=%v err=%v", id, v, err)
		}
		out, err := f.Serialize(ctx, v, "id", nil)
		if err != nil || out != id {
			t.Fatalf("dump %q: out=%v err=%v", id, out, err)
		}
	}
}

func TestObjectID_RejectsNonHex24(t *testing.T) {
	ctx := context.Background()
	f := g.MustObjectID()
	for _, bad := range []string{
		"",
		"5f2b1c9e8d7a6b5c4d3e2f1",
		"5f2b1c9e8d7a6b5c4d3e2f100",
		"5f2b1c9e8d7a6b5c4d3e2f1g",
		" 5f2b1c9e8d7a6b5c4d3e2f1",
		"5f2b1c9e8d7a6b5c4d3e2f10\n",
	} {
		_, err := f.Deserialize(ctx, bad, "id", nil)
		if code := issueCode(t, err); code != toolbox.CodeInvalidObjectID {
			t.Fatalf("%q: expected invalid_object_id, got %s", bad, code)
		}
		iss, _ := toolbox.AsIssues(err)
		if iss[0].Message != messages.InvalidObjectID() {
			t.Fatalf("%q: message %q", bad, iss[0].Message)
		}
	}
}

func TestObjectID_SerializeRevalidates(t *testing.T) {
	ctx := context.Background()
	_, err := g.MustObjectID().Serialize(ctx, "not-an-id", "id", nil)
	if code := issueCode(t, err); code != toolbox.CodeInvalidObjectID {
		t.Fatalf("expected invalid_object_id, got %s", code)
	}
}

func TestObjectID_AcceptsBSONValue(t *testing.T) {
	ctx := context.Background()
	id := bson.NewObjectID()
	out, err := g.MustObjectID().Serialize(ctx, id, "id", nil)
	if err != nil || out != id.Hex() {
		t.Fatalf("out=%v err=%v", out, err)
	}
}

func TestObjectID_Null(t *testing.T) {
	ctx := context.Background()
	_, err := g.MustObjectID().Deserialize(ctx, nil, "id", nil)
	if code := issueCode(t, err); code != toolbox.CodeNull {
		t.Fatalf("expected null, got %s", code)
	}
	f := g.MustObjectID(g.AllowNone())
	if v, err := f.Deserialize(ctx, nil, "id", nil); err != nil || v != nil {
		t.Fatalf("allow none load: %v %v", v, err)
	}
	if v, err := f.Serialize(ctx, nil, "id", nil); err != nil || v != nil {
		t.Fatalf("allow none dump: %v %v", v, err)
	}
}

func TestUUID_AnyHexCase(t *testing.T) {
	ctx := context.Background()
	f := g.MustUUID()
	for _, u := range []string{
		"123e4567-e89b-12d3-a456-426614174000",
		"123E4567-E89B-12D3-A456-426614174000",
		"00000000-0000-0000-0000-000000000000",
	} {
		v, err := f.Deserialize(ctx, u, "id", nil)
		if err != nil || v != u {
			t.Fatalf("load %q: %v %v", u, v, err)
		}
		if out, err := f.Serialize(ctx, u, "id", nil); err != nil || out != u {
			t.Fatalf("dump %q: %v %v", u, out, err)
		}
	}
}

func TestUUID_RejectsNonCanonical(t *testing.T) {
	ctx := context.Background()
	f := g.MustUUID()
	for _, bad := range []string{
		"",
		"123e4567e89b12d3a456426614174000",
		"{123e4567-e89b-12d3-a456-426614174000}",
		"urn:uuid:123e4567-e89b-12d3-a456-426614174000",
		"123e4567-e89b-12d3-a456-42661417400",
		"123e4567-e89b-12d3-a456-42661417400z",
	} {
		_, err := f.Deserialize(ctx, bad, "id", nil)
		if code := issueCode(t, err); code != toolbox.CodeInvalidUUID {
			t.Fatalf("%q: expected invalid_uuid, got %s", bad, code)
		}
	}
	_, err := f.Serialize(ctx, "nope", "id", nil)
	if code := issueCode(t, err); code != toolbox.CodeInvalidUUID {
		t.Fatalf("serialize: expected invalid_uuid, got %s", code)
	}
}

func TestIdentifiers_RejectCustomValidators(t *testing.T) {
	if _, err := g.ObjectID(g.Validate(rules.Length(24, 24))); !errors.Is(err, toolbox.ErrConfig) {
		t.Fatalf("ObjectID: expected ErrConfig, got %v", err)
	}
	if _, err := g.UUID(g.Validate(rules.Length(36, 36))); !errors.Is(err, toolbox.ErrConfig) {
		t.Fatalf("UUID: expected ErrConfig, got %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("MustUUID should panic on configuration error")
		}
	}()
	g.MustUUID(g.Validate(rules.Length(36, 36)))
}

func TestIdentifiers_KeepDeclaredOptions(t *testing.T) {
	f, err := g.ObjectID(g.Required(), g.AllowNone(), g.LoadFrom("ID"))
	if err != nil {
		t.Fatal(err)
	}
	o := f.Options()
	if !o.Required || !o.AllowNone || o.LoadFrom != "ID" {
		t.Fatalf("options: %+v", o)
	}
	js, err := g.MustUUID().JSONSchema()
	if err != nil {
		t.Fatal(err)
	}
	if js.Type != "string" || js.Format != "uuid" || js.Pattern != rules.UUIDPattern {
		t.Fatalf("json schema: %+v", js)
	}
}
