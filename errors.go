package toolbox

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType          = "invalid_type"
	CodeRequired             = "required"
	CodeNull                 = "null"
	CodePattern              = "pattern"
	CodeTooSmall             = "too_small"
	CodeTooBig               = "too_big"
	CodeTooShort             = "too_short"
	CodeTooLong              = "too_long"
	CodeInvalidEnum          = "invalid_enum"
	CodeInvalidURL           = "invalid_url"
	CodeParseError           = "parse_error"
	CodeInvalidObjectID      = "invalid_object_id"
	CodeInvalidUUID          = "invalid_uuid"
	CodeRequiredFieldMissing = "required_field_missing"
	CodeRequiredFieldEmpty   = "required_field_empty"
	CodeUnsupportedFields    = "unsupported_fields"
	CodeCustom               = "custom"
)

// SchemaKey is the pseudo field name under which schema-level issues are
// reported by Issues.Messages.
const SchemaKey = "_schema"

// ErrConfig marks programmer errors detected while fields and schemas are
// being defined. It is never returned from Load or Dump.
var ErrConfig = errors.New("toolbox: invalid configuration")

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/2/id).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
	// Params carries structured parameters (e.g., {"field":"id"}) for i18n
	// and observability.
	Params map[string]any
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_object_id at /id
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Messages renders the issues as a mapping from field name to messages.
// Nested paths are joined with dots ("data.0.id"); issues at the root are
// reported under SchemaKey. Message order follows issue order.
func (iss Issues) Messages() map[string][]string {
	if len(iss) == 0 {
		return nil
	}
	out := make(map[string][]string, len(iss))
	for _, it := range iss {
		k := fieldKey(it.Path)
		out[k] = append(out[k], it.Message)
	}
	return out
}

// Fields returns the distinct field keys that carry issues, sorted.
func (iss Issues) Fields() []string {
	seen := map[string]struct{}{}
	var keys []string
	for _, it := range iss {
		k := fieldKey(it.Path)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// HasCode reports whether any issue carries code.
func (iss Issues) HasCode(code string) bool {
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

// Prefix returns a copy of iss with every path rebased under p.
func (iss Issues) Prefix(p PathRef) Issues {
	if len(iss) == 0 {
		return nil
	}
	base := p.Pointer()
	out := make(Issues, 0, len(iss))
	for _, it := range iss {
		switch {
		case it.Path == "" || it.Path == "/":
			it.Path = base
		case base == "/":
		case it.Path[0] == '/':
			it.Path = base + it.Path
		default:
			it.Path = base + "/" + it.Path
		}
		out = append(out, it)
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// IssuesFromErr converts an error into Issues, wrapping non-Issues errors with
// CodeParseError at path.
func IssuesFromErr(path string, err error) Issues {
	if err == nil {
		return nil
	}
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	return Issues{Issue{Path: path, Code: CodeParseError, Message: err.Error(), Cause: err}}
}

// MergeErrors joins the issues carried by errs in order. A non-Issues error
// short-circuits and is returned as-is.
func MergeErrors(errs ...error) error {
	var all Issues
	for _, err := range errs {
		if err == nil {
			continue
		}
		iss, ok := AsIssues(err)
		if !ok {
			return err
		}
		all = AppendIssues(all, iss...)
	}
	if len(all) == 0 {
		return nil
	}
	return all
}

func fieldKey(pointer string) string {
	if pointer == "" || pointer == "/" {
		return SchemaKey
	}
	parts := strings.Split(strings.TrimPrefix(pointer, "/"), "/")
	for i, p := range parts {
		parts[i] = unescapeToken(p)
	}
	return strings.Join(parts, ".")
}
