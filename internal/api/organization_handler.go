package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"casetrack-backend-go/internal/core"
	"casetrack-backend-go/internal/models"
)

// OrganizationHandler handles the organization registry endpoints.
type OrganizationHandler struct {
	orgService core.OrganizationService
	logger     *zap.Logger
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(os core.OrganizationService, logger *zap.Logger) *OrganizationHandler {
	return &OrganizationHandler{orgService: os, logger: logger}
}

// CreateOrganization handles POST /api/organizations/create.
func (h *OrganizationHandler) CreateOrganization(c *gin.Context) {
	callerUID, ok := callerID(c)
	if !ok {
		return
	}

	var req models.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	org, err := h.orgService.CreateOrganization(c.Request.Context(), callerUID, req)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, org)
}

// ListOrganizations handles GET /api/organizations/list.
func (h *OrganizationHandler) ListOrganizations(c *gin.Context) {
	orgs, err := h.orgService.ListOrganizations(c.Request.Context())
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, orgs)
}

// GetOrganization handles GET /api/organizations/:id.
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	orgID := c.Param("id")
	if orgID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Organization ID is required"})
		return
	}

	org, err := h.orgService.GetOrganization(c.Request.Context(), orgID)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, org)
}

// UpdateSubscription handles PATCH /api/organizations/:id/subscription.
func (h *OrganizationHandler) UpdateSubscription(c *gin.Context) {
	orgID := c.Param("id")
	if orgID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Organization ID is required"})
		return
	}

	var req models.UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	org, err := h.orgService.UpdateSubscription(c.Request.Context(), orgID, req)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, org)
}

// GetUsageStats handles GET /api/organizations/:id/usage. The stats are
// best-effort: backend failures degrade to zeroed counts, never an error.
func (h *OrganizationHandler) GetUsageStats(c *gin.Context) {
	orgID := c.Param("id")
	if orgID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Organization ID is required"})
		return
	}
	c.JSON(http.StatusOK, h.orgService.GetUsageStats(c.Request.Context(), orgID))
}
