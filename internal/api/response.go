package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Details any    `json:"details,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func ok(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, data)
}

func fail(c echo.Context, status int, code, message string, details any) error {
	return c.JSON(status, ErrorResponse{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// requestValidator adapts go-playground/validator to echo.Validator.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	return &requestValidator{validate: validator.New()}
}

func (v *requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

func handleValidationError(c echo.Context, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Request validation failed", fields)
	}
	return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Request validation failed", err.Error())
}

// errorHandler renders echo's own errors (unknown routes, bad methods) in the
// same envelope as handler failures.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := http.StatusText(status)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if m, isString := he.Message.(string); isString {
			message = m
		}
	}

	code := "INTERNAL_ERROR"
	switch status {
	case http.StatusNotFound:
		code = "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		code = "METHOD_NOT_ALLOWED"
	case http.StatusBadRequest:
		code = "INVALID_REQUEST"
	}

	_ = fail(c, status, code, message, nil)
}
