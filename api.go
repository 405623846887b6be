package toolbox

import (
	"context"
	"io"
)

// LoadJSON decodes b and loads it through s.
func LoadJSON(ctx context.Context, s Schema, b []byte) (map[string]any, error) {
	v, err := DecodeJSON(b)
	if err != nil {
		return nil, Issues{Root().Issue(CodeParseError, err.Error())}
	}
	return s.Load(ctx, v)
}

// LoadJSONReader decodes a JSON document from r and loads it through s.
func LoadJSONReader(ctx context.Context, s Schema, r io.Reader) (map[string]any, error) {
	v, err := DecodeJSONReader(r)
	if err != nil {
		return nil, Issues{Root().Issue(CodeParseError, err.Error())}
	}
	return s.Load(ctx, v)
}

// SafeLoad loads input through s, returning (nil, false) on validation error.
func SafeLoad(ctx context.Context, s Schema, input any) (map[string]any, bool) {
	v, err := s.Load(ctx, input)
	if err != nil {
		return nil, false
	}
	return v, true
}

// Is returns true if input loads through s without issues.
func Is(ctx context.Context, s Schema, input any) bool {
	_, err := s.Load(ctx, input)
	return err == nil
}

// ---- Load-time context options ----

type contextKey int

const (
	_ctxKeyFailFast contextKey = iota
)

// WithFailFast returns a child context that marks fail-fast validation:
// schemas stop at the first field carrying issues.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current call should stop on the first issue.
func IsFailFast(ctx context.Context) bool {
	v := ctx.Value(_ctxKeyFailFast)
	b, _ := v.(bool)
	return b
}
