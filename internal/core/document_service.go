package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"casetrack-backend-go/internal/db"
	"casetrack-backend-go/internal/models"
	"casetrack-backend-go/internal/storage"
)

// Custom errors for the DocumentService.
var (
	ErrDocumentNotFound     = errors.New("document not found")
	ErrStorageNotConfigured = errors.New("document storage is not configured, set STORAGE_BUCKET to enable uploads")
)

// documentService implements the DocumentService interface.
type documentService struct {
	caseAccess
	documentRepo db.DocumentRepository
	objectStore  storage.ObjectStore
	logger       *zap.Logger
}

// NewDocumentService creates a new DocumentService instance. store may be nil
// when no bucket is configured; uploads then fail with
// ErrStorageNotConfigured.
func NewDocumentService(
	dr db.DocumentRepository,
	cr db.CaseRepository,
	os OrganizationService,
	store storage.ObjectStore,
	logger *zap.Logger,
) DocumentService {
	return &documentService{
		caseAccess:   caseAccess{caseRepo: cr, orgService: os},
		documentRepo: dr,
		objectStore:  store,
		logger:       logger,
	}
}

func (s *documentService) UploadDocument(ctx context.Context, callerUID, caseID, filename, contentType string, size int64, r io.Reader) (*models.Document, error) {
	if _, err := s.authorize(ctx, callerUID, caseID); err != nil {
		return nil, err
	}
	if s.objectStore == nil {
		return nil, ErrStorageNotConfigured
	}

	objectPath := fmt.Sprintf("cases/%s/%s-%s", caseID, uuid.New().String(), filename)
	publicURL, err := s.objectStore.Upload(ctx, objectPath, contentType, r)
	if err != nil {
		return nil, fmt.Errorf("failed to upload document '%s': %w", filename, err)
	}

	now := time.Now().UTC()
	doc := &models.Document{
		CaseID:      caseID,
		Name:        filename,
		URL:         publicURL,
		ContentType: contentType,
		SizeBytes:   size,
		UploadedBy:  callerUID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	id, err := s.documentRepo.Create(ctx, doc)
	if err != nil {
		// The binary is already in the bucket; try not to leak it.
		if cleanupErr := s.objectStore.Delete(ctx, publicURL); cleanupErr != nil {
			s.logger.Warn("failed to clean up orphaned object after metadata write failure",
				zap.String("object", objectPath), zap.Error(cleanupErr))
		}
		return nil, fmt.Errorf("failed to save document metadata: %w", err)
	}
	doc.ID = id
	return doc, nil
}

func (s *documentService) ListDocuments(ctx context.Context, callerUID, caseID string) ([]*models.Document, error) {
	if _, err := s.authorize(ctx, callerUID, caseID); err != nil {
		return nil, err
	}
	docs, err := s.documentRepo.ListByCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents for case '%s': %w", caseID, err)
	}
	return docs, nil
}

// DeleteDocument removes the metadata record first; the binary delete is
// best-effort so a storage hiccup never strands the record.
func (s *documentService) DeleteDocument(ctx context.Context, callerUID, caseID, documentID string) error {
	if _, err := s.authorize(ctx, callerUID, caseID); err != nil {
		return err
	}

	doc, err := s.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: ID '%s'", ErrDocumentNotFound, documentID)
		}
		return fmt.Errorf("failed to load document '%s': %w", documentID, err)
	}
	if doc.CaseID != caseID {
		return fmt.Errorf("%w: document '%s' does not belong to case '%s'", ErrRecordCaseMismatch, documentID, caseID)
	}

	if err := s.documentRepo.Delete(ctx, documentID); err != nil {
		return fmt.Errorf("failed to delete document '%s': %w", documentID, err)
	}

	if s.objectStore != nil && doc.URL != "" {
		if err := s.objectStore.Delete(ctx, doc.URL); err != nil {
			s.logger.Warn("failed to delete document binary, object left in bucket",
				zap.String("documentId", documentID), zap.String("url", doc.URL), zap.Error(err))
		}
	}
	return nil
}
