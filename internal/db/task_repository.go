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

const tasksCollection = "tasks"

type firestoreTaskRepository struct {
	client *firestore.Client
}

// NewFirestoreTaskRepository creates a new task repository.
func NewFirestoreTaskRepository(client *firestore.Client) TaskRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for TaskRepository.")
	}
	return &firestoreTaskRepository{client: client}
}

func (r *firestoreTaskRepository) Create(ctx context.Context, task *models.Task) (string, error) {
	docRef := r.client.Collection(tasksCollection).NewDoc()
	task.ID = docRef.ID

	if _, err := docRef.Create(ctx, task); err != nil {
		return "", fmt.Errorf("failed to create task: %w", err)
	}
	return docRef.ID, nil
}

func (r *firestoreTaskRepository) GetByID(ctx context.Context, taskID string) (*models.Task, error) {
	if taskID == "" {
		return nil, errors.New("taskID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(tasksCollection).Doc(taskID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("task with ID '%s' not found: %w", taskID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get task with ID '%s': %w", taskID, err)
	}

	var t models.Task
	if err := docSnap.DataTo(&t); err != nil {
		return nil, fmt.Errorf("failed to decode task data for ID '%s': %w", taskID, err)
	}
	t.ID = docSnap.Ref.ID
	return &t, nil
}

func (r *firestoreTaskRepository) ListByCase(ctx context.Context, caseID string) ([]*models.Task, error) {
	if caseID == "" {
		return nil, errors.New("caseID cannot be empty for ListByCase operation")
	}
	iter := r.client.Collection(tasksCollection).
		Where("caseId", "==", caseID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	return collectDocs(iter, func(t *models.Task, id string) { t.ID = id })
}

func (r *firestoreTaskRepository) Update(ctx context.Context, taskID string, fields map[string]interface{}) error {
	if taskID == "" {
		return errors.New("taskID cannot be empty for Update operation")
	}
	merged := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["updatedAt"] = firestore.ServerTimestamp

	if _, err := r.client.Collection(tasksCollection).Doc(taskID).Set(ctx, merged, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to update task with ID '%s': %w", taskID, err)
	}
	return nil
}

func (r *firestoreTaskRepository) Delete(ctx context.Context, taskID string) error {
	if taskID == "" {
		return errors.New("taskID cannot be empty for Delete operation")
	}
	if _, err := r.client.Collection(tasksCollection).Doc(taskID).Delete(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("task with ID '%s' not found for deletion: %w", taskID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete task with ID '%s': %w", taskID, err)
	}
	return nil
}

func (r *firestoreTaskRepository) CountByCase(ctx context.Context, caseID string) (int, error) {
	if caseID == "" {
		return 0, errors.New("caseID cannot be empty for CountByCase operation")
	}
	iter := r.client.Collection(tasksCollection).Where("caseId", "==", caseID).Documents(ctx)
	return countDocs(iter)
}
