package httputil

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jwalitptl/pawcare-api/pkg/errors"
)

// BindJSON decodes the request body into req. Validation failures are
// attached to the context for the validation middleware to render;
// malformed bodies are answered with a 400 directly.
func BindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		_ = c.Error(err)
		c.Abort()
		return false
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, Response{
			Code:    CodeInvalidRequest,
			Message: fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit),
		})
		return false
	}

	RespondWithError(c, errors.BadRequest("invalid request body", err))
	return false
}

// ParamUUID parses the named path parameter.
func ParamUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondWithError(c, errors.BadRequest(fmt.Sprintf("invalid %s", name), err))
		return uuid.Nil, false
	}
	return id, true
}
