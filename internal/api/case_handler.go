package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"casetrack-backend-go/internal/core"
	"casetrack-backend-go/internal/models"
)

// CaseHandler handles case endpoints plus the hearing and task records nested
// under a case.
type CaseHandler struct {
	caseService core.CaseService
	logger      *zap.Logger
}

// NewCaseHandler creates a new CaseHandler.
func NewCaseHandler(cs core.CaseService, logger *zap.Logger) *CaseHandler {
	return &CaseHandler{caseService: cs, logger: logger}
}

// CreateCase handles POST /api/cases.
func (h *CaseHandler) CreateCase(c *gin.Context) {
	callerUID, ok := callerID(c)
	if !ok {
		return
	}

	var req models.CreateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	created, err := h.caseService.CreateCase(c.Request.Context(), callerUID, req)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListCases handles GET /api/cases with optional status, clientId and q
// query parameters.
func (h *CaseHandler) ListCases(c *gin.Context) {
	callerUID, ok := callerID(c)
	if !ok {
		return
	}

	filter := core.CaseFilter{
		Status:   c.Query("status"),
		ClientID: c.Query("clientId"),
		Query:    c.Query("q"),
	}
	cases, err := h.caseService.ListCases(c.Request.Context(), callerUID, filter)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, cases)
}

// GetCase handles GET /api/cases/:caseId.
func (h *CaseHandler) GetCase(c *gin.Context) {
	callerUID, ok := callerID(c)
	if !ok {
		return
	}
	caseID := c.Param("caseId")
	if caseID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Case ID is required"})
		return
	}

	found, err := h.caseService.GetCase(c.Request.Context(), callerUID, caseID)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

// UpdateCase handles PATCH /api/cases/:caseId.
func (h *CaseHandler) UpdateCase(c *gin.Context) {
	callerUID, ok := callerID(c)
	if !ok {
		return
	}
	caseID := c.Param("caseId")
	if caseID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Case ID is required"})
		return
	}

	var req models.UpdateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	updated, err := h.caseService.UpdateCase(c.Request.Context(), callerUID, caseID, req)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteCase handles DELETE /api/cases/:caseId.
func (h *CaseHandler) DeleteCase(c *gin.Context) {
	callerUID, ok := callerID(c)
	if !ok {
		return
	}
	caseID := c.Param("caseId")
	if caseID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Case ID is required"})
		return
	}

	if err := h.caseService.DeleteCase(c.Request.Context(), callerUID, caseID); err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Hearings ---

// CreateHearing handles POST /api/cases/:caseId/hearings.
func (h *CaseHandler) CreateHearing(c *gin.Context) {
	callerUID, ok := callerID(c)
	if !ok {
		return
	}

	var req models.CreateHearingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	hearing, err := h.caseService.CreateHearing(c.Request.Context(), callerUID, c.Param("caseId"), req)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, hearing)
}

// ListHearings handles GET /api/cases/:caseId/hearings.
func (h *CaseHandler) ListHearings(c *gin.Context) {
	callerUID, ok := callerID(c)
	if !ok {
		return
	}

	hearings, err := h.caseService.ListHearings(c.Request.Context(), callerUID, c.Param("caseId"))
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, hearings)
}

// UpdateHearing handles PATCH /api/cases/:caseId/hearings/:hearingId.
func (h *CaseHandler) UpdateHearing(c *gin.Context) {
	callerUID, ok := callerID(c)
	if !ok {
		return
	}

	var req models.UpdateHearingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	hearing, err := h.caseService.UpdateHearing(c.Request.Context(), callerUID, c.Param("caseId"), c.Param("hearingId"), req)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, hearing)
}

// DeleteHearing handles DELETE /api/cases/:caseId/hearings/:hearingId.
func (h *CaseHandler) DeleteHearing(c *gin.Context) {
	callerUID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.caseService.DeleteHearing(c.Request.Context(), callerUID, c.Param("caseId"), c.Param("hearingId")); err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Tasks ---

// CreateTask handles POST /api/cases/:caseId/tasks.
func (h *CaseHandler) CreateTask(c *gin.Context) {
	callerUID, ok := callerID(c)
	if !ok {
		return
	}

	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	task, err := h.caseService.CreateTask(c.Request.Context(), callerUID, c.Param("caseId"), req)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// ListTasks handles GET /api/cases/:caseId/tasks.
func (h *CaseHandler) ListTasks(c *gin.Context) {
	callerUID, ok := callerID(c)
	if !ok {
		return
	}

	tasks, err := h.caseService.ListTasks(c.Request.Context(), callerUID, c.Param("caseId"))
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// UpdateTask handles PATCH /api/cases/:caseId/tasks/:taskId.
func (h *CaseHandler) UpdateTask(c *gin.Context) {
	callerUID, ok := callerID(c)
	if !ok {
		return
	}

	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	task, err := h.caseService.UpdateTask(c.Request.Context(), callerUID, c.Param("caseId"), c.Param("taskId"), req)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /api/cases/:caseId/tasks/:taskId.
func (h *CaseHandler) DeleteTask(c *gin.Context) {
	callerUID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.caseService.DeleteTask(c.Request.Context(), callerUID, c.Param("caseId"), c.Param("taskId")); err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListPayments handles GET /api/cases/:caseId/payments.
func (h *CaseHandler) ListPayments(c *gin.Context) {
	callerUID, ok := callerID(c)
	if !ok {
		return
	}

	payments, err := h.caseService.ListPayments(c.Request.Context(), callerUID, c.Param("caseId"))
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}
