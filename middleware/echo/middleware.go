package echomw

import (
	"net/http"

	"github.com/labstack/echo/v4"

	toolbox "github.com/plangrid/toolbox"
	"github.com/plangrid/toolbox/middleware"
	"github.com/plangrid/toolbox/schemas"
)

// ValidateJSON loads the request body through s and stores the payload in
// the request context, or answers 400 with the Error schema.
func ValidateJSON(s toolbox.Schema) echo.MiddlewareFunc {
	return validate(s, middleware.LoadJSON)
}

// ValidateQuery loads the query string through s, keeping repeated keys.
func ValidateQuery(s toolbox.Schema) echo.MiddlewareFunc {
	return validate(s, middleware.LoadQuery)
}

func validate(s toolbox.Schema, load middleware.Loader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v, err := load(c.Request(), s)
			if err != nil {
				out, derr := schemas.Error().Dump(c.Request().Context(), middleware.ErrorPayload(err))
				if derr != nil {
					return derr
				}
				return c.JSON(http.StatusBadRequest, out)
			}
			ctx := middleware.ContextWithLoaded(c.Request().Context(), v)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetLoaded fetches the loaded payload from echo.Context.
func GetLoaded(c echo.Context) (map[string]any, bool) {
	return middleware.LoadedFromContext(c.Request().Context())
}
