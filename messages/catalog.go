package messages

import (
	"sort"
	"strings"
)

// InvalidObjectID is reported when a value is not 24 hexadecimal characters.
func InvalidObjectID() string { return T("invalid_object_id", nil) }

// InvalidUUID is reported when a value is not a canonical 8-4-4-4-12 UUID.
func InvalidUUID() string { return T("invalid_uuid", nil) }

// RequiredFieldMissing is reported when a required field is absent from
// serialized output.
func RequiredFieldMissing(name string) string {
	return T("required_field_missing", map[string]string{"field": name})
}

// RequiredFieldEmpty is reported when a required, non-nullable field is null
// in serialized output.
func RequiredFieldEmpty(name string) string {
	return T("required_field_empty", map[string]string{"field": name})
}

// UnsupportedFields is reported when input carries undeclared keys. names
// are rendered sorted so the message is stable.
func UnsupportedFields(names []string) string {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	return T("unsupported_fields", map[string]string{"fields": strings.Join(sorted, ", ")})
}

// InvalidRequest is the top-level message of a rejected request payload.
func InvalidRequest() string { return T("invalid_request", nil) }

// InvalidResponse is the top-level message when a response fails its schema.
func InvalidResponse() string { return T("invalid_response", nil) }
