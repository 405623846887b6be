// Package middleware binds toolbox schemas to net/http: request payloads are
// loaded through a schema and failures are answered with the Error schema.
// The echo and gin submodules wrap the same helpers for those routers.
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	j "github.com/goccy/go-json"

	toolbox "github.com/plangrid/toolbox"
	"github.com/plangrid/toolbox/internal/logging"
	"github.com/plangrid/toolbox/messages"
	"github.com/plangrid/toolbox/schemas"
)

// Error codes written in the "code" field of error payloads.
const (
	CodeInvalidRequest  = "invalid_request"
	CodeInvalidResponse = "invalid_response"
)

// ctxKeyLoaded is a typed context key for the loaded request payload.
type ctxKeyLoaded struct{}

// ContextWithLoaded attaches a loaded payload to the context.
func ContextWithLoaded(ctx context.Context, v map[string]any) context.Context {
	return context.WithValue(ctx, ctxKeyLoaded{}, v)
}

// LoadedFromContext retrieves the payload stored by ContextWithLoaded.
func LoadedFromContext(ctx context.Context) (map[string]any, bool) {
	v, ok := ctx.Value(ctxKeyLoaded{}).(map[string]any)
	return v, ok
}

// LoadQuery loads the request query string through s. Repeated keys are
// kept, so QueryParamList fields see every value.
func LoadQuery(r *http.Request, s toolbox.Schema) (map[string]any, error) {
	return s.Load(r.Context(), r.URL.Query())
}

// LoadJSON loads the request body through s. Malformed JSON is reported as a
// parse_error issue.
func LoadJSON(r *http.Request, s toolbox.Schema) (map[string]any, error) {
	return toolbox.LoadJSONReader(r.Context(), s, r.Body)
}

// ErrorPayload shapes err for the Error schema. Issues are rendered as
// field name to messages under "errors".
func ErrorPayload(err error) map[string]any {
	if iss, ok := toolbox.AsIssues(err); ok {
		return map[string]any{
			"message": messages.InvalidRequest(),
			"code":    CodeInvalidRequest,
			"errors":  iss.Messages(),
		}
	}
	return map[string]any{"message": err.Error()}
}

// WriteError dumps ErrorPayload(err) through schemas.Error and writes it
// with status.
func WriteError(w http.ResponseWriter, status int, err error) error {
	out, derr := schemas.Error().Dump(context.Background(), ErrorPayload(err))
	if derr != nil {
		return derr
	}
	return writeBody(w, status, out)
}

// WriteJSON dumps v through s and writes it with status. When the dump fails
// a 500 error payload is written instead and the dump error is returned.
func WriteJSON(ctx context.Context, w http.ResponseWriter, status int, s toolbox.Schema, v any) error {
	out, err := s.Dump(ctx, v)
	if err != nil {
		payload := map[string]any{"message": messages.InvalidResponse(), "code": CodeInvalidResponse}
		if iss, ok := toolbox.AsIssues(err); ok {
			payload["errors"] = iss.Messages()
		}
		if body, derr := schemas.Error().Dump(ctx, payload); derr == nil {
			_ = writeBody(w, http.StatusInternalServerError, body)
		}
		return err
	}
	return writeBody(w, status, out)
}

func writeBody(w http.ResponseWriter, status int, body any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return j.NewEncoder(w).Encode(body)
}

// Loader reads a request payload through a schema.
type Loader func(r *http.Request, s toolbox.Schema) (map[string]any, error)

// Validate returns net/http middleware that loads each request with load,
// stores the payload in the request context on success, and answers 400
// with the Error schema otherwise. A nil logger discards rejections.
func Validate(s toolbox.Schema, load Loader, logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logging.OrNop(logger)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			v, err := load(r, s)
			if err != nil {
				logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "error", err)
				if werr := WriteError(w, http.StatusBadRequest, err); werr != nil {
					logger.Error("write error response", "error", werr)
				}
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithLoaded(r.Context(), v)))
		})
	}
}

// ValidateJSON is Validate with LoadJSON.
func ValidateJSON(s toolbox.Schema, logger *slog.Logger) func(http.Handler) http.Handler {
	return Validate(s, LoadJSON, logger)
}

// ValidateQuery is Validate with LoadQuery.
func ValidateQuery(s toolbox.Schema, logger *slog.Logger) func(http.Handler) http.Handler {
	return Validate(s, LoadQuery, logger)
}
