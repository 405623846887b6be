package codec

import (
	"context"
	"time"

	toolbox "github.com/plangrid/toolbox"
	"github.com/plangrid/toolbox/messages"
)

// TimeRFC3339 returns a Codec that converts between RFC3339 strings and time.Time.
func TimeRFC3339() Codec[string, time.Time] {
	return rfc3339Codec{}
}

type rfc3339Codec struct{}

func (rfc3339Codec) Decode(_ context.Context, a string) (time.Time, error) {
	t, err := parseRFC3339(a)
	if err != nil {
		return time.Time{}, toolbox.Issues{{Path: "/", Code: toolbox.CodeParseError, Message: messages.T(toolbox.CodeParseError, nil), Cause: err}}
	}
	return t, nil
}

func (rfc3339Codec) Encode(_ context.Context, b time.Time) (string, error) {
	// Convert to wire(string), then re-validate the wire form
	s := formatRFC3339Canonical(b)
	if _, err := parseRFC3339(s); err != nil {
		return "", toolbox.Issues{{Path: "/", Code: toolbox.CodeParseError, Message: messages.T(toolbox.CodeParseError, nil), Cause: err}}
	}
	return s, nil
}

func (rfc3339Codec) Format() string { return "date-time" }

// ---- helpers ----

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	// Normalize to UTC and format using RFC3339Nano (Go trims trailing zeros)
	return t.UTC().Format(time.RFC3339Nano)
}
