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

const casesCollection = "cases"

// firestoreCaseRepository implements CaseRepository using Firestore.
type firestoreCaseRepository struct {
	client *firestore.Client
}

// NewFirestoreCaseRepository creates a new case repository.
func NewFirestoreCaseRepository(client *firestore.Client) CaseRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for CaseRepository.")
	}
	return &firestoreCaseRepository{client: client}
}

// Create adds a new case document with an auto-generated ID and sets c.ID.
func (r *firestoreCaseRepository) Create(ctx context.Context, c *models.Case) (string, error) {
	docRef := r.client.Collection(casesCollection).NewDoc()
	c.ID = docRef.ID

	if _, err := docRef.Create(ctx, c); err != nil {
		return "", fmt.Errorf("failed to create case: %w", err)
	}
	return docRef.ID, nil
}

// GetByID retrieves a case document by its ID.
func (r *firestoreCaseRepository) GetByID(ctx context.Context, caseID string) (*models.Case, error) {
	if caseID == "" {
		return nil, errors.New("caseID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(casesCollection).Doc(caseID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("case with ID '%s' not found: %w", caseID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get case with ID '%s': %w", caseID, err)
	}

	var c models.Case
	if err := docSnap.DataTo(&c); err != nil {
		return nil, fmt.Errorf("failed to decode case data for ID '%s': %w", caseID, err)
	}
	c.ID = docSnap.Ref.ID
	return &c, nil
}

// ListByOrganization retrieves every case in an organization, newest first.
// Finer filtering (status, client, free text) happens in the service layer.
func (r *firestoreCaseRepository) ListByOrganization(ctx context.Context, organizationID string) ([]*models.Case, error) {
	if organizationID == "" {
		return nil, errors.New("organizationID cannot be empty for ListByOrganization operation")
	}
	iter := r.client.Collection(casesCollection).
		Where("organizationId", "==", organizationID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	return collectDocs(iter, func(c *models.Case, id string) { c.ID = id })
}

// Update merges the given fields into a case document and stamps updatedAt.
func (r *firestoreCaseRepository) Update(ctx context.Context, caseID string, fields map[string]interface{}) error {
	if caseID == "" {
		return errors.New("caseID cannot be empty for Update operation")
	}
	merged := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["updatedAt"] = firestore.ServerTimestamp

	if _, err := r.client.Collection(casesCollection).Doc(caseID).Set(ctx, merged, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to update case with ID '%s': %w", caseID, err)
	}
	return nil
}

// Delete removes a single case document. Child records (hearings, tasks,
// documents, messages) are not touched; orphaning is the callers' concern.
func (r *firestoreCaseRepository) Delete(ctx context.Context, caseID string) error {
	if caseID == "" {
		return errors.New("caseID cannot be empty for Delete operation")
	}
	if _, err := r.client.Collection(casesCollection).Doc(caseID).Delete(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("case with ID '%s' not found for deletion: %w", caseID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete case with ID '%s': %w", caseID, err)
	}
	return nil
}

// CountByOrganization counts the cases belonging to an organization.
func (r *firestoreCaseRepository) CountByOrganization(ctx context.Context, organizationID string) (int, error) {
	if organizationID == "" {
		return 0, errors.New("organizationID cannot be empty for CountByOrganization operation")
	}
	iter := r.client.Collection(casesCollection).Where("organizationId", "==", organizationID).Documents(ctx)
	return countDocs(iter)
}
