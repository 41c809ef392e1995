package db

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"

	"casetrack-backend-go/internal/models"
)

const activityLogsCollection = "activityLogs"

type firestoreActivityRepository struct {
	client *firestore.Client
}

// NewFirestoreActivityRepository creates a new activity log repository.
func NewFirestoreActivityRepository(client *firestore.Client) ActivityRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ActivityRepository.")
	}
	return &firestoreActivityRepository{client: client}
}

// Create appends an activity log entry with an auto-generated ID.
func (r *firestoreActivityRepository) Create(ctx context.Context, entry models.ActivityLog) error {
	if _, err := r.client.Collection(activityLogsCollection).NewDoc().Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to create activity log entry: %w", err)
	}
	return nil
}
