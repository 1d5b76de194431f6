package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Error codes
const (
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeConflict           = "CONFLICT"

	// Scheduling preconditions
	ErrCodeTeamNotFound       = "TEAM_NOT_FOUND"
	ErrCodeMissingCaseOrTerm  = "MISSING_CASE_OR_TERM"
	ErrCodeMissingTermEndDate = "MISSING_TERM_END_DATE"

	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

var defaultMessages = map[string]string{
	ErrCodeUnauthorized:       "Authentication required",
	ErrCodeInvalidCredentials: "Invalid username or password",
	ErrCodeForbidden:          "Access denied",
	ErrCodeInvalidInput:       "Invalid request",
	ErrCodeNotFound:           "Resource not found",
	ErrCodeConflict:           "Resource conflict",
	ErrCodeInternalError:      "Internal server error",
	ErrCodeServiceUnavailable: "Service temporarily unavailable",
}

// APIError is the body of every error response.
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// FieldError describes one rejected request field.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// Respond aborts the handler chain and writes an error body. An empty message
// is replaced by the code's default.
func Respond(c *gin.Context, status int, code, message string, details interface{}) {
	if message == "" {
		message = defaultMessages[code]
	}
	c.AbortWithStatusJSON(status, &APIError{
		Code:    code,
		Message: message,
		Details: details,
	})
}

func Unauthorized(c *gin.Context, message string) {
	Respond(c, http.StatusUnauthorized, ErrCodeUnauthorized, message, nil)
}

func Forbidden(c *gin.Context, message string) {
	Respond(c, http.StatusForbidden, ErrCodeForbidden, message, nil)
}

func NotFound(c *gin.Context, message string) {
	Respond(c, http.StatusNotFound, ErrCodeNotFound, message, nil)
}

func BadRequest(c *gin.Context, message string) {
	Respond(c, http.StatusBadRequest, ErrCodeInvalidInput, message, nil)
}

// BadRequestWithCode sends a 400 carrying a domain-specific code.
func BadRequestWithCode(c *gin.Context, code, message string) {
	Respond(c, http.StatusBadRequest, code, message, nil)
}

// InvalidBody sends a 400 for a request body that failed to bind. Validation
// failures are listed per field in details.
func InvalidBody(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		BadRequest(c, "Invalid request body")
		return
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field: jsonFieldName(fe),
			Rule:  fe.Tag(),
		})
	}
	Respond(c, http.StatusBadRequest, ErrCodeInvalidInput, "Request validation failed", fields)
}

func Conflict(c *gin.Context, message string) {
	Respond(c, http.StatusConflict, ErrCodeConflict, message, nil)
}

func InternalError(c *gin.Context, message string) {
	Respond(c, http.StatusInternalServerError, ErrCodeInternalError, message, nil)
}

func ServiceUnavailable(c *gin.Context, message string) {
	Respond(c, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, message, nil)
}

// jsonFieldName converts the validator's Go field name ("DayOfWeek") to the
// snake_case name clients send ("day_of_week").
func jsonFieldName(fe validator.FieldError) string {
	name := fe.Field()
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && !(name[i-1] >= 'A' && name[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
