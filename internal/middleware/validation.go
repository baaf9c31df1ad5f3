package middleware

import (
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/jwalitptl/pawcare-api/internal/model"
	"github.com/jwalitptl/pawcare-api/pkg/httputil"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationConfig represents validation middleware configuration
type ValidationConfig struct {
	CustomValidators    map[string]validator.Func
	CustomErrorMessages map[string]string
}

func DefaultValidationConfig() ValidationConfig {
	return ValidationConfig{
		CustomValidators: map[string]validator.Func{
			"booking_status": func(fl validator.FieldLevel) bool {
				return model.BookingStatus(fl.Field().String()).Valid()
			},
			"application_type": func(fl validator.FieldLevel) bool {
				return model.ApplicationType(fl.Field().String()).Valid()
			},
		},
		CustomErrorMessages: map[string]string{
			"required":         "Field is required",
			"min":              "Value is too small",
			"max":              "Value is too long",
			"booking_status":   "Status must be one of pending, confirmed, declined, done",
			"application_type": "Application type must be one of boarding, grooming, transit",
		},
	}
}

var registerOnce sync.Once

// RegisterValidators installs the custom tags on gin's validator engine.
// Only the first call has any effect.
func RegisterValidators(config ValidationConfig) {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		for tag, fn := range config.CustomValidators {
			if err := v.RegisterValidation(tag, fn); err != nil {
				panic(err)
			}
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
}

// Validation renders binding failures attached with c.Error as a 400
// listing every offending field.
func Validation(config ValidationConfig) gin.HandlerFunc {
	RegisterValidators(config)

	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		var validationErrors []ValidationError
		for _, err := range c.Errors {
			errs, ok := err.Err.(validator.ValidationErrors)
			if !ok {
				continue
			}
			for _, e := range errs {
				msg := config.CustomErrorMessages[e.Tag()]
				if msg == "" {
					msg = e.Error()
				}
				validationErrors = append(validationErrors, ValidationError{
					Field:   e.Field(),
					Message: msg,
				})
			}
		}

		if len(validationErrors) > 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, httputil.Response{
				Code:    httputil.CodeInvalidRequest,
				Message: "invalid request",
				Data:    validationErrors,
			})
		}
	}
}
