package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"casetrack-backend-go/internal/models"
)

const documentsCollection = "documents"

type firestoreDocumentRepository struct {
	client *firestore.Client
}

// NewFirestoreDocumentRepository creates a new document metadata repository.
func NewFirestoreDocumentRepository(client *firestore.Client) DocumentRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for DocumentRepository.")
	}
	return &firestoreDocumentRepository{client: client}
}

func (r *firestoreDocumentRepository) Create(ctx context.Context, doc *models.Document) (string, error) {
	docRef := r.client.Collection(documentsCollection).NewDoc()
	doc.ID = docRef.ID

	if _, err := docRef.Create(ctx, doc); err != nil {
		return "", fmt.Errorf("failed to create document record: %w", err)
	}
	return docRef.ID, nil
}

func (r *firestoreDocumentRepository) GetByID(ctx context.Context, documentID string) (*models.Document, error) {
	if documentID == "" {
		return nil, errors.New("documentID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(documentsCollection).Doc(documentID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("document with ID '%s' not found: %w", documentID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get document with ID '%s': %w", documentID, err)
	}

	var d models.Document
	if err := docSnap.DataTo(&d); err != nil {
		return nil, fmt.Errorf("failed to decode document data for ID '%s': %w", documentID, err)
	}
	d.ID = docSnap.Ref.ID
	return &d, nil
}

func (r *firestoreDocumentRepository) ListByCase(ctx context.Context, caseID string) ([]*models.Document, error) {
	if caseID == "" {
		return nil, errors.New("caseID cannot be empty for ListByCase operation")
	}
	iter := r.client.Collection(documentsCollection).
		Where("caseId", "==", caseID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	return collectDocs(iter, func(d *models.Document, id string) { d.ID = id })
}

func (r *firestoreDocumentRepository) Delete(ctx context.Context, documentID string) error {
	if documentID == "" {
		return errors.New("documentID cannot be empty for Delete operation")
	}
	if _, err := r.client.Collection(documentsCollection).Doc(documentID).Delete(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("document with ID '%s' not found for deletion: %w", documentID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete document with ID '%s': %w", documentID, err)
	}
	return nil
}

func (r *firestoreDocumentRepository) CountByCase(ctx context.Context, caseID string) (int, error) {
	if caseID == "" {
		return 0, errors.New("caseID cannot be empty for CountByCase operation")
	}
	iter := r.client.Collection(documentsCollection).Where("caseId", "==", caseID).Documents(ctx)
	return countDocs(iter)
}
