package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jwalitptl/pawcare-api/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Response codes shared with the mobile and admin clients.
const (
	CodeSuccess        = "00"
	CodeNotFound       = "02"
	CodeUnauthorized   = "401"
	CodeRateLimited    = "429"
	CodeInternal       = "0900"
	CodeInvalidRequest = "0901"
)

const MessageSomethingWentWrong = "something went wrong"

// RespondWithSuccess sends a 200 response carrying data
func RespondWithSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

// RespondWithError maps err onto a status and body. Not-found and invalid
// requests keep their message; everything else is reported generically.
func RespondWithError(c *gin.Context, err error) {
	status, body := ErrorBody(err)
	c.AbortWithStatusJSON(status, body)
}

// ErrorBody returns the HTTP status and response body for err.
func ErrorBody(err error) (int, Response) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return http.StatusBadRequest, Response{Code: CodeInvalidRequest, Message: "invalid request"}
	}

	var appErr *errors.AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError, Response{Code: CodeInternal, Message: MessageSomethingWentWrong}
	}

	status := appErr.StatusCode()
	switch status {
	case http.StatusNotFound:
		return status, Response{Code: CodeNotFound, Message: appErr.Message}
	case http.StatusBadRequest:
		return status, Response{Code: CodeInvalidRequest, Message: appErr.Message}
	case http.StatusUnauthorized:
		return status, Response{Code: CodeUnauthorized, Message: appErr.Message}
	default:
		return http.StatusInternalServerError, Response{Code: CodeInternal, Message: MessageSomethingWentWrong}
	}
}
