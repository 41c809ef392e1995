package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"casetrack-backend-go/internal/core"
	"casetrack-backend-go/internal/models"
)

// UserHandler handles user-profile related API endpoints.
type UserHandler struct {
	userService core.UserService
	logger      *zap.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us core.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{userService: us, logger: logger}
}

// GetUser handles GET /api/users/:userId.
// The profile lookup is best-effort and always succeeds: unknown users get a
// synthesized default profile rather than a 404, so a fresh Firebase signup
// can load the app before any backend record exists.
func (h *UserHandler) GetUser(c *gin.Context) {
	callerUID, ok := callerID(c)
	if !ok {
		return
	}
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "User ID is required"})
		return
	}
	if userID != callerUID {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Cannot read another user's profile"})
		return
	}

	profile := h.userService.GetProfile(c.Request.Context(), userID)
	c.JSON(http.StatusOK, profile)
}

// UpdateUser handles PATCH /api/users/:userId. Callers may only update their
// own profile.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	callerUID, ok := callerID(c)
	if !ok {
		return
	}
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "User ID is required"})
		return
	}
	if userID != callerUID {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: fmt.Sprintf("%v: cannot update another user's profile", core.ErrForbiddenAccess)})
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
