package handlers

import (
	"errors"
	"net/http"
	"strings"

	"gitlab.com/codeprep.net/internal/handlers/response"
	"gitlab.com/codeprep.net/internal/static/errs"
)

// MaxBodyBytes caps request bodies; source plus test cases fit well within it
const MaxBodyBytes = 1 << 20

// ErrorStatus maps a service error to its HTTP status and a short message
// that is safe to show to the caller
func ErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrInvalidRequest):
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, errs.ErrUnsupportedLanguage):
		return http.StatusBadRequest, "Unsupported language"
	case errors.Is(err, errs.ErrUnauthenticated):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, "Forbidden"
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, errs.ErrSandboxUnavailable):
		return http.StatusBadGateway, "Sandbox unavailable"
	case errors.Is(err, errs.ErrExecutionTimeout):
		return http.StatusGatewayTimeout, "Execution timed out"
	case errors.Is(err, errs.ErrPersistenceFailure):
		return http.StatusInternalServerError, "Failed to save submission"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// ResponseError writes the standard error envelope for err
func ResponseError(w http.ResponseWriter, err error) {
	code, message := ErrorStatus(err)
	response.WriteError(w, response.ErrorMessage{Message: message, StatusCode: code})
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header
func BearerToken(r *http.Request) string {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[7:])
}

func Health(w http.ResponseWriter, r *http.Request) {
	response.WriteSuccess(w, map[string]string{"status": "ok"})
}
