package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"casetrack-backend-go/internal/core"
)

// mapServiceError translates typed service errors into HTTP responses. Backend
// errors never reach the client verbatim; anything unrecognized becomes a
// generic 500 and is logged server-side.
func mapServiceError(c *gin.Context, logger *zap.Logger, err error) {
	var statusCode int
	var errResponse ErrorResponse

	switch {
	case errors.Is(err, core.ErrOrganizationNotFound),
		errors.Is(err, core.ErrUserNotFound),
		errors.Is(err, core.ErrCaseNotFound),
		errors.Is(err, core.ErrClientNotFound),
		errors.Is(err, core.ErrHearingNotFound),
		errors.Is(err, core.ErrTaskNotFound),
		errors.Is(err, core.ErrDocumentNotFound):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: err.Error()}
	case errors.Is(err, core.ErrForbiddenAccess):
		statusCode = http.StatusForbidden
		errResponse = ErrorResponse{Error: err.Error()}
	case errors.Is(err, core.ErrSubscriptionInactive), errors.Is(err, core.ErrCaseLimitReached):
		// 402 signals the client to surface an upgrade prompt.
		statusCode = http.StatusPaymentRequired
		errResponse = ErrorResponse{Error: err.Error()}
	case errors.Is(err, core.ErrUnknownPlan),
		errors.Is(err, core.ErrInvalidStatus),
		errors.Is(err, core.ErrRecordCaseMismatch):
		statusCode = http.StatusBadRequest
		errResponse = ErrorResponse{Error: err.Error()}
	case errors.Is(err, core.ErrStorageNotConfigured):
		statusCode = http.StatusInternalServerError
		errResponse = ErrorResponse{
			Error:   "Document storage is not configured",
			Details: core.ErrStorageNotConfigured.Error(),
		}
	default:
		logger.Error("unhandled service error", zap.Error(err))
		statusCode = http.StatusInternalServerError
		errResponse = ErrorResponse{Error: "An unexpected internal server error occurred."}
	}
	c.JSON(statusCode, errResponse)
}

// callerID extracts the authenticated user's ID from the Gin context. A
// missing ID means the auth middleware did not run; the request is aborted
// with 401.
func callerID(c *gin.Context) (string, bool) {
	rawUserID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return "", false
	}
	userID, ok := rawUserID.(string)
	if !ok || userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid user ID in context"})
		return "", false
	}
	return userID, true
}
