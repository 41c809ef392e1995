package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"casetrack-backend-go/internal/core"
	"casetrack-backend-go/internal/models"
)

// ClientHandler handles client endpoints and the payment records tied to them.
type ClientHandler struct {
	clientService core.ClientService
	logger        *zap.Logger
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(cs core.ClientService, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{clientService: cs, logger: logger}
}

// CreateClient handles POST /api/clients.
func (h *ClientHandler) CreateClient(c *gin.Context) {
	callerUID, ok := callerID(c)
	if !ok {
		return
	}

	var req models.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), callerUID, req)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

// ListClients handles GET /api/clients.
func (h *ClientHandler) ListClients(c *gin.Context) {
	callerUID, ok := callerID(c)
	if !ok {
		return
	}

	clients, err := h.clientService.ListClients(c.Request.Context(), callerUID)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

// GetClient handles GET /api/clients/:clientId.
func (h *ClientHandler) GetClient(c *gin.Context) {
	callerUID, ok := callerID(c)
	if !ok {
		return
	}
	clientID := c.Param("clientId")
	if clientID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Client ID is required"})
		return
	}

	client, err := h.clientService.GetClient(c.Request.Context(), callerUID, clientID)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// UpdateClient handles PATCH /api/clients/:clientId.
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	callerUID, ok := callerID(c)
	if !ok {
		return
	}
	clientID := c.Param("clientId")
	if clientID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Client ID is required"})
		return
	}

	var req models.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), callerUID, clientID, req)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// DeleteClient handles DELETE /api/clients/:clientId.
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	callerUID, ok := callerID(c)
	if !ok {
		return
	}
	clientID := c.Param("clientId")
	if clientID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Client ID is required"})
		return
	}

	if err := h.clientService.DeleteClient(c.Request.Context(), callerUID, clientID); err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListPayments handles GET /api/clients/:clientId/payments.
func (h *ClientHandler) ListPayments(c *gin.Context) {
	callerUID, ok := callerID(c)
	if !ok {
		return
	}
	clientID := c.Param("clientId")
	if clientID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Client ID is required"})
		return
	}

	payments, err := h.clientService.ListPaymentsByClient(c.Request.Context(), callerUID, clientID)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// RecordPayment handles POST /api/payments.
func (h *ClientHandler) RecordPayment(c *gin.Context) {
	callerUID, ok := callerID(c)
	if !ok {
		return
	}

	var req models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	payment, err := h.clientService.RecordPayment(c.Request.Context(), callerUID, req)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}
