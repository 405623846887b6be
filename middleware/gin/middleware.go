package ginmw

import (
	"net/http"

	"github.com/gin-gonic/gin"

	toolbox "github.com/plangrid/toolbox"
	"github.com/plangrid/toolbox/middleware"
	"github.com/plangrid/toolbox/schemas"
)

// ValidateJSON loads the request body through s and stores the payload in
// the request context. On failure it aborts with 400 and the Error schema.
func ValidateJSON(s toolbox.Schema) gin.HandlerFunc {
	return validate(s, middleware.LoadJSON)
}

// ValidateQuery loads the query string through s, keeping repeated keys.
func ValidateQuery(s toolbox.Schema) gin.HandlerFunc {
	return validate(s, middleware.LoadQuery)
}

func validate(s toolbox.Schema, load middleware.Loader) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := load(c.Request, s)
		if err != nil {
			out, derr := schemas.Error().Dump(c.Request.Context(), middleware.ErrorPayload(err))
			if derr != nil {
				_ = c.AbortWithError(http.StatusInternalServerError, derr)
				return
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, out)
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithLoaded(c.Request.Context(), v))
		c.Next()
	}
}

// GetLoaded fetches the loaded payload from gin.Context.
func GetLoaded(c *gin.Context) (map[string]any, bool) {
	return middleware.LoadedFromContext(c.Request.Context())
}
