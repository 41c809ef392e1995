package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"casetrack-backend-go/internal/core"
)

// maxDocumentSize caps multipart uploads at 32 MiB.
const maxDocumentSize = 32 << 20

// DocumentHandler handles the documents nested under a case.
type DocumentHandler struct {
	documentService core.DocumentService
	logger          *zap.Logger
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(ds core.DocumentService, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{documentService: ds, logger: logger}
}

// UploadDocument handles POST /api/cases/:caseId/documents. The binary is
// expected as a multipart form field named "file".
func (h *DocumentHandler) UploadDocument(c *gin.Context) {
	callerUID, ok := callerID(c)
	if !ok {
		return
	}
	caseID := c.Param("caseId")

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxDocumentSize)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Multipart field 'file' is required", Details: err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read uploaded file", Details: err.Error()})
		return
	}
	defer file.Close()

	doc, err := h.documentService.UploadDocument(
		c.Request.Context(),
		callerUID,
		caseID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
	)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// ListDocuments handles GET /api/cases/:caseId/documents.
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	callerUID, ok := callerID(c)
	if !ok {
		return
	}

	docs, err := h.documentService.ListDocuments(c.Request.Context(), callerUID, c.Param("caseId"))
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// DeleteDocument handles DELETE /api/cases/:caseId/documents/:documentId.
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	callerUID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.documentService.DeleteDocument(c.Request.Context(), callerUID, c.Param("caseId"), c.Param("documentId")); err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
