package messages

import (
	"strings"
	"testing"
)

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("invalid_object_id", nil); msg == "invalid_object_id" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("invalid_object_id", nil); msg == "Not a valid ObjectId." {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// unknown languages fall back to en
	SetLanguage("xx")
	if msg := T("invalid_uuid", nil); msg != "Not a valid UUID." {
		t.Fatalf("expected english fallback, got %q", msg)
	}
	SetLanguage("en")
}

func TestUnknownCodeReturnsCode(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("got %q", msg)
	}
}

func TestBuilders(t *testing.T) {
	if got := RequiredFieldMissing("x"); got != "Required field missing from output: x" {
		t.Fatalf("missing: %q", got)
	}
	if got := RequiredFieldEmpty("x"); got != "Required field is empty in output: x" {
		t.Fatalf("empty: %q", got)
	}
	if got := UnsupportedFields([]string{"d", "c"}); got != "Unexpected field(s): c, d" {
		t.Fatalf("unsupported: %q", got)
	}
}

func TestLoadYAML_OverlaysDictionary(t *testing.T) {
	src := `
en:
  invalid_object_id: "id must be 24 hex chars"
  unsupported_fields: "extra: {fields}"
fr:
  invalid_uuid: "UUID invalide"
`
	c, err := LoadYAML(strings.NewReader(src), "en")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := strings.Join(c.Languages(), ","); got != "en,fr" {
		t.Fatalf("languages: %q", got)
	}
	SetTranslator(c)
	defer SetTranslator(nil)

	if got := InvalidObjectID(); got != "id must be 24 hex chars" {
		t.Fatalf("override: %q", got)
	}
	if got := UnsupportedFields([]string{"z"}); got != "extra: z" {
		t.Fatalf("template: %q", got)
	}
	// not in catalog -> built-in dictionary
	if got := InvalidUUID(); got != "Not a valid UUID." {
		t.Fatalf("fallback: %q", got)
	}
}

func TestLoadYAML_Empty(t *testing.T) {
	c, err := LoadYAML(strings.NewReader(""), "en")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := c.Message("invalid_uuid", nil); got != "Not a valid UUID." {
		t.Fatalf("got %q", got)
	}
}

func TestLoadYAML_Invalid(t *testing.T) {
	if _, err := LoadYAML(strings.NewReader("en: [1, 2"), "en"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestEnvelopeMessages(t *testing.T) {
	if got := InvalidRequest(); got != "The request is invalid." {
		t.Fatalf("request: %q", got)
	}
	SetLanguage("ja")
	defer SetLanguage("en")
	if got := InvalidResponse(); got == "The response could not be serialized." || got == "invalid_response" {
		t.Fatalf("expected japanese message, got %q", got)
	}
}
