package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"memberhub/internal/authz"
	"memberhub/internal/middleware"
	"memberhub/internal/services"
)

func init() {
	// ошибки валидации называют поле так же, как JSON
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// statusFor maps the service error taxonomy onto HTTP.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrInvalidOrExpiredOTP),
		errors.Is(err, services.ErrTooManyAttempts):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrVerificationRequired),
		errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConflict),
		errors.Is(err, services.ErrAlreadyProcessed),
		errors.Is(err, services.ErrMissingCredentials):
		return http.StatusConflict
	case errors.Is(err, services.ErrResendThrottled):
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

// respondError writes the client-facing message; 5xx details only go to the log.
func respondError(c *gin.Context, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), op+" failed",
			"request_id", middleware.RequestID(c), "err", err)
		c.JSON(status, errorResponse{Error: "Internal server error, please retry later"})
		return
	}

	resp := errorResponse{Error: publicMessage(err)}
	var fe *services.FieldError
	if errors.As(err, &fe) {
		resp.Field = fe.Field
	}
	c.JSON(status, resp)
}

func publicMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrInvalidOrExpiredOTP):
		return "The code is invalid or has expired. Request a new one."
	case errors.Is(err, services.ErrTooManyAttempts):
		return "Too many wrong codes. Request a new one."
	case errors.Is(err, services.ErrResendThrottled):
		return "Too many codes requested. Wait a few minutes and try again."
	case errors.Is(err, services.ErrVerificationRequired):
		return "Verify your email or phone with a one-time code first."
	case errors.Is(err, services.ErrInvalidCredentials):
		return "Invalid login or password"
	case errors.Is(err, services.ErrAlreadyProcessed):
		return "This request has already been processed."
	case errors.Is(err, services.ErrMissingCredentials):
		return "The request has no applicant credentials; ask the applicant to register again."
	}
	return err.Error()
}

// bindJSON binds the body and answers 400 with a field-named message on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			fe := ve[0]
			c.JSON(http.StatusBadRequest, errorResponse{Error: validationMessage(fe), Field: lowerFirst(fe.Field())})
			return false
		}
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Malformed JSON body"})
		return false
	}
	return true
}

func validationMessage(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "email":
		return field + " is not a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	}
	return field + " is invalid"
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: name + " must be a positive integer", Field: name})
		return 0, false
	}
	return id, true
}

func mustPrincipal(c *gin.Context) (authz.Principal, bool) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
	}
	return p, ok
}
