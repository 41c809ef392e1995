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

const hearingsCollection = "hearings"

type firestoreHearingRepository struct {
	client *firestore.Client
}

// NewFirestoreHearingRepository creates a new hearing repository.
func NewFirestoreHearingRepository(client *firestore.Client) HearingRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for HearingRepository.")
	}
	return &firestoreHearingRepository{client: client}
}

func (r *firestoreHearingRepository) Create(ctx context.Context, hearing *models.Hearing) (string, error) {
	docRef := r.client.Collection(hearingsCollection).NewDoc()
	hearing.ID = docRef.ID

	if _, err := docRef.Create(ctx, hearing); err != nil {
		return "", fmt.Errorf("failed to create hearing: %w", err)
	}
	return docRef.ID, nil
}

func (r *firestoreHearingRepository) GetByID(ctx context.Context, hearingID string) (*models.Hearing, error) {
	if hearingID == "" {
		return nil, errors.New("hearingID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(hearingsCollection).Doc(hearingID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("hearing with ID '%s' not found: %w", hearingID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get hearing with ID '%s': %w", hearingID, err)
	}

	var h models.Hearing
	if err := docSnap.DataTo(&h); err != nil {
		return nil, fmt.Errorf("failed to decode hearing data for ID '%s': %w", hearingID, err)
	}
	h.ID = docSnap.Ref.ID
	return &h, nil
}

// ListByCase retrieves a case's hearings in chronological order.
func (r *firestoreHearingRepository) ListByCase(ctx context.Context, caseID string) ([]*models.Hearing, error) {
	if caseID == "" {
		return nil, errors.New("caseID cannot be empty for ListByCase operation")
	}
	iter := r.client.Collection(hearingsCollection).
		Where("caseId", "==", caseID).
		OrderBy("date", firestore.Asc).
		Documents(ctx)
	return collectDocs(iter, func(h *models.Hearing, id string) { h.ID = id })
}

func (r *firestoreHearingRepository) Update(ctx context.Context, hearingID string, fields map[string]interface{}) error {
	if hearingID == "" {
		return errors.New("hearingID cannot be empty for Update operation")
	}
	merged := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["updatedAt"] = firestore.ServerTimestamp

	if _, err := r.client.Collection(hearingsCollection).Doc(hearingID).Set(ctx, merged, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to update hearing with ID '%s': %w", hearingID, err)
	}
	return nil
}

func (r *firestoreHearingRepository) Delete(ctx context.Context, hearingID string) error {
	if hearingID == "" {
		return errors.New("hearingID cannot be empty for Delete operation")
	}
	if _, err := r.client.Collection(hearingsCollection).Doc(hearingID).Delete(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("hearing with ID '%s' not found for deletion: %w", hearingID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete hearing with ID '%s': %w", hearingID, err)
	}
	return nil
}

func (r *firestoreHearingRepository) CountByCase(ctx context.Context, caseID string) (int, error) {
	if caseID == "" {
		return 0, errors.New("caseID cannot be empty for CountByCase operation")
	}
	iter := r.client.Collection(hearingsCollection).Where("caseId", "==", caseID).Documents(ctx)
	return countDocs(iter)
}
