// Package response writes the uniform JSON envelope used by every route.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/harentsoaR/doctor-appointment-api/internal/apperror"
)

type Envelope struct {
	Message string     `json:"message"`
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

type ErrorBody struct {
	Kind   apperror.Kind     `json:"kind"`
	Detail string            `json:"detail,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

func OK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Envelope{Message: message, Success: true, Data: data})
}

// Unsuccessful reports a negative business outcome that is not an error,
// such as an unavailable slot.
func Unsuccessful(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{Message: message, Success: false})
}

// Error renders err with the status code of its kind.
func Error(c *gin.Context, err error) {
	status, body := render(err)
	c.JSON(status, body)
}

// Abort is Error for middleware: it also stops the handler chain.
func Abort(c *gin.Context, err error) {
	status, body := render(err)
	c.AbortWithStatusJSON(status, body)
}

func render(err error) (int, Envelope) {
	e := apperror.As(err)
	body := &ErrorBody{Kind: e.Kind}
	if e.Err != nil {
		body.Detail = e.Err.Error()
	}
	return e.Kind.HTTPStatus(), Envelope{Message: e.Message, Success: false, Error: body}
}

// BindError renders a request binding failure. Validation failures list
// the offending fields.
func BindError(c *gin.Context, err error) {
	body := &ErrorBody{Kind: apperror.KindValidation}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		body.Fields = FormatValidationErrors(verrs)
	} else {
		body.Detail = err.Error()
	}
	c.JSON(http.StatusBadRequest, Envelope{Message: "Invalid request body", Success: false, Error: body})
}

func FormatValidationErrors(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, e := range verrs {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out[field] = field + " is required"
		case "email":
			out[field] = field + " must be a valid email address"
		case "min":
			out[field] = field + " must be at least " + e.Param() + " characters"
		case "gte":
			out[field] = field + " must be greater than or equal to " + e.Param()
		case "oneof":
			out[field] = field + " must be one of " + e.Param()
		default:
			out[field] = field + " is invalid"
		}
	}
	return out
}
