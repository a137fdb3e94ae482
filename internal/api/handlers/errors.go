package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"vagas-rmc/internal/services"
	"vagas-rmc/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Error codes carried in the envelope's code field.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeForbidden          = "FORBIDDEN"
	CodeQuotaExceeded      = "QUOTA_EXCEEDED"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeDuplicateEmail     = "DUPLICATE_EMAIL"
	CodeDuplicateDocument  = "DUPLICATE_DOCUMENT"
	CodeInvalidState       = "INVALID_STATE"
	CodeInvalidTransition  = "INVALID_TRANSITION"
	CodeInternal           = "INTERNAL_ERROR"
)

type errorKind struct {
	target  error
	status  int
	code    string
	message string
}

// Refinements come before the error they wrap.
var errorKinds = []errorKind{
	{services.ErrValidation, http.StatusBadRequest, CodeValidation, "Validation failed"},
	{services.ErrInvalidTransition, http.StatusBadRequest, CodeInvalidTransition, "Invalid status transition"},
	{services.ErrInvalidState, http.StatusBadRequest, CodeInvalidState, "Operation not allowed in the current state"},
	{services.ErrUnauthenticated, http.StatusUnauthorized, CodeUnauthenticated, "Authentication required"},
	{services.ErrInvalidCredentials, http.StatusUnauthorized, CodeInvalidCredentials, "Invalid credentials"},
	{services.ErrQuotaExceeded, http.StatusForbidden, CodeQuotaExceeded, "Active job limit reached for your plan"},
	{services.ErrForbidden, http.StatusForbidden, CodeForbidden, "Access denied"},
	{services.ErrNotFound, http.StatusNotFound, CodeNotFound, "Resource not found"},
	{services.ErrDuplicateEmail, http.StatusConflict, CodeDuplicateEmail, "Email already registered"},
	{services.ErrDuplicateDocument, http.StatusConflict, CodeDuplicateDocument, "Document already registered"},
	{services.ErrConflict, http.StatusConflict, CodeConflict, "Resource already exists"},
}

// respondError writes the envelope for a service error. Unknown errors are
// logged under operation and reported as a generic 500.
func respondError(c *gin.Context, err error, operation string) {
	for _, kind := range errorKinds {
		if !errors.Is(err, kind.target) {
			continue
		}
		resp := dto.Response{Error: kind.message, Code: kind.code, Message: err.Error()}
		var fieldErr *services.FieldError
		if errors.As(err, &fieldErr) {
			resp.Details = map[string]string{fieldErr.Field: fieldErr.Message}
		}
		c.JSON(kind.status, resp)
		return
	}

	log.Printf("%s: %v", operation, err)
	c.JSON(http.StatusInternalServerError, dto.Response{Error: "Internal server error", Code: CodeInternal})
}

// respondValidation writes a 400 for a validator or binding failure.
func respondValidation(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, dto.Response{
			Error:   "Validation failed",
			Code:    CodeValidation,
			Details: FormatValidationErrors(validationErrors),
		})
		return
	}
	c.JSON(http.StatusBadRequest, dto.Response{
		Error: "Invalid request: " + err.Error(),
		Code:  CodeValidation,
	})
}

// FormatValidationErrors maps each failing field to a readable message.
func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorsMap := make(map[string]string, len(errs))
	for _, fieldError := range errs {
		fieldName := fieldError.Field()
		switch fieldError.Tag() {
		case "required":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' is required", fieldName)
		case "email":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be a valid email address", fieldName)
		case "min":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be at least %s", fieldName, fieldError.Param())
		case "max":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be at most %s", fieldName, fieldError.Param())
		case "uuid":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be a valid UUID", fieldName)
		case "oneof":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be one of: %s", fieldName, fieldError.Param())
		case "eqfield":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must match '%s'", fieldName, fieldError.Param())
		case "eq":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be accepted", fieldName)
		case "cpf":
			errorsMap[fieldName] = "Invalid CPF"
		case "cnpj":
			errorsMap[fieldName] = "Invalid CNPJ"
		case "url":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be a valid URL", fieldName)
		default:
			errorsMap[fieldName] = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", fieldName, fieldError.Tag())
		}
	}
	return errorsMap
}
