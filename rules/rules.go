// Package rules provides the validators attached to fields: patterns,
// ranges, lengths, choices and the fixed identifier checks used by the
// ObjectID and UUID fields.
package rules

import (
	"context"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"unicode/utf8"

	toolbox "github.com/plangrid/toolbox"
	"github.com/plangrid/toolbox/messages"
)

// Pattern sources, exported for JSON Schema projection.
const (
	ObjectIDPattern = `^[0-9a-fA-F]{24}$`
	UUIDPattern     = `^[0-9A-Fa-f]{8}-([0-9A-Fa-f]{4}-){3}[0-9A-Fa-f]{12}$`
)

var (
	objectIDRe = regexp.MustCompile(ObjectIDPattern)
	uuidRe     = regexp.MustCompile(UUIDPattern)
)

// RegexpRule matches the string form of a value against a pattern.
type RegexpRule struct {
	re      *regexp.Regexp
	code    string
	message func() string
}

// Regexp builds a RegexpRule reporting code with the catalog message for
// that code. Non-string values are matched through their fmt.Sprint form.
func Regexp(re *regexp.Regexp, code string) *RegexpRule {
	return &RegexpRule{re: re, code: code, message: func() string { return messages.T(code, nil) }}
}

// IsObjectID accepts exactly 24 hexadecimal characters.
func IsObjectID() *RegexpRule {
	return &RegexpRule{re: objectIDRe, code: toolbox.CodeInvalidObjectID, message: messages.InvalidObjectID}
}

// IsUUID accepts the canonical 8-4-4-4-12 hexadecimal form in any case.
func IsUUID() *RegexpRule {
	return &RegexpRule{re: uuidRe, code: toolbox.CodeInvalidUUID, message: messages.InvalidUUID}
}

// Pattern returns the pattern source.
func (r *RegexpRule) Pattern() string { return r.re.String() }

func (r *RegexpRule) Validate(_ context.Context, v any) error {
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}
	if r.re.MatchString(s) {
		return nil
	}
	return toolbox.Issues{toolbox.Root().Issue(r.code, r.message(), "pattern", r.re.String())}
}

// RangeRule bounds numeric values. A nil bound is open.
type RangeRule struct {
	Min *float64
	Max *float64
}

// Range builds a RangeRule with both bounds.
func Range(min, max float64) *RangeRule { return &RangeRule{Min: &min, Max: &max} }

// AtLeast builds a RangeRule with only a lower bound.
func AtLeast(min float64) *RangeRule { return &RangeRule{Min: &min} }

func (r *RangeRule) Validate(_ context.Context, v any) error {
	f, ok := toFloat(v)
	if !ok {
		return toolbox.Issues{toolbox.Root().Issue(toolbox.CodeInvalidType, messages.T(toolbox.CodeInvalidType, nil))}
	}
	if r.Min != nil && f < *r.Min {
		return toolbox.Issues{toolbox.Root().Issue(toolbox.CodeTooSmall,
			messages.T(toolbox.CodeTooSmall, map[string]string{"min": formatNum(*r.Min)}), "min", *r.Min, "got", f)}
	}
	if r.Max != nil && f > *r.Max {
		return toolbox.Issues{toolbox.Root().Issue(toolbox.CodeTooBig,
			messages.T(toolbox.CodeTooBig, map[string]string{"max": formatNum(*r.Max)}), "max", *r.Max, "got", f)}
	}
	return nil
}

// LengthRule bounds the length of strings (in runes) and lists. A negative
// bound is open.
type LengthRule struct {
	Min int
	Max int
}

// Length builds a LengthRule.
func Length(min, max int) *LengthRule { return &LengthRule{Min: min, Max: max} }

func (r *LengthRule) Validate(_ context.Context, v any) error {
	var n int
	switch vv := v.(type) {
	case string:
		n = utf8.RuneCountInString(vv)
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map:
			n = rv.Len()
		default:
			return toolbox.Issues{toolbox.Root().Issue(toolbox.CodeInvalidType, messages.T(toolbox.CodeInvalidType, nil))}
		}
	}
	if r.Min >= 0 && n < r.Min {
		return toolbox.Issues{toolbox.Root().Issue(toolbox.CodeTooShort,
			messages.T(toolbox.CodeTooShort, map[string]string{"min": strconv.Itoa(r.Min)}), "min", r.Min, "got", n)}
	}
	if r.Max >= 0 && n > r.Max {
		return toolbox.Issues{toolbox.Root().Issue(toolbox.CodeTooLong,
			messages.T(toolbox.CodeTooLong, map[string]string{"max": strconv.Itoa(r.Max)}), "max", r.Max, "got", n)}
	}
	return nil
}

// OneOfRule restricts values to a fixed set.
type OneOfRule struct {
	choices []any
}

// OneOf builds a OneOfRule.
func OneOf(choices ...any) *OneOfRule { return &OneOfRule{choices: choices} }

// Choices returns the allowed values.
func (r *OneOfRule) Choices() []any { return r.choices }

func (r *OneOfRule) Validate(_ context.Context, v any) error {
	for _, c := range r.choices {
		if reflect.DeepEqual(c, v) {
			return nil
		}
	}
	return toolbox.Issues{toolbox.Root().Issue(toolbox.CodeInvalidEnum, messages.T(toolbox.CodeInvalidEnum, nil), "choices", r.choices)}
}

// URLRule accepts absolute URLs with a scheme and host.
type URLRule struct {
	schemes map[string]struct{}
}

// URL builds a URLRule. With no schemes, http and https are accepted.
func URL(schemes ...string) *URLRule {
	if len(schemes) == 0 {
		schemes = []string{"http", "https"}
	}
	m := make(map[string]struct{}, len(schemes))
	for _, s := range schemes {
		m[s] = struct{}{}
	}
	return &URLRule{schemes: m}
}

func (r *URLRule) Validate(_ context.Context, v any) error {
	s, ok := v.(string)
	if ok {
		u, err := url.Parse(s)
		if err == nil && u.Host != "" {
			if _, allowed := r.schemes[u.Scheme]; allowed {
				return nil
			}
		}
	}
	return toolbox.Issues{toolbox.Root().Issue(toolbox.CodeInvalidURL, messages.T(toolbox.CodeInvalidURL, nil))}
}

// ------- helpers -------

func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func formatNum(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
