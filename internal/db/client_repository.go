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

const clientsCollection = "clients"

// firestoreClientRepository implements ClientRepository using Firestore.
type firestoreClientRepository struct {
	client *firestore.Client
}

// NewFirestoreClientRepository creates a new client repository.
func NewFirestoreClientRepository(client *firestore.Client) ClientRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ClientRepository.")
	}
	return &firestoreClientRepository{client: client}
}

// Create adds a new client document with an auto-generated ID.
func (r *firestoreClientRepository) Create(ctx context.Context, client *models.Client) (string, error) {
	docRef := r.client.Collection(clientsCollection).NewDoc()
	client.ID = docRef.ID

	if _, err := docRef.Create(ctx, client); err != nil {
		return "", fmt.Errorf("failed to create client: %w", err)
	}
	return docRef.ID, nil
}

// GetByID retrieves a client document by its ID.
func (r *firestoreClientRepository) GetByID(ctx context.Context, clientID string) (*models.Client, error) {
	if clientID == "" {
		return nil, errors.New("clientID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(clientsCollection).Doc(clientID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("client with ID '%s' not found: %w", clientID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get client with ID '%s': %w", clientID, err)
	}

	var c models.Client
	if err := docSnap.DataTo(&c); err != nil {
		return nil, fmt.Errorf("failed to decode client data for ID '%s': %w", clientID, err)
	}
	c.ID = docSnap.Ref.ID
	return &c, nil
}

// ListByOrganization retrieves every client in an organization, newest first.
func (r *firestoreClientRepository) ListByOrganization(ctx context.Context, organizationID string) ([]*models.Client, error) {
	if organizationID == "" {
		return nil, errors.New("organizationID cannot be empty for ListByOrganization operation")
	}
	iter := r.client.Collection(clientsCollection).
		Where("organizationId", "==", organizationID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	return collectDocs(iter, func(c *models.Client, id string) { c.ID = id })
}

// Update merges the given fields into a client document and stamps updatedAt.
func (r *firestoreClientRepository) Update(ctx context.Context, clientID string, fields map[string]interface{}) error {
	if clientID == "" {
		return errors.New("clientID cannot be empty for Update operation")
	}
	merged := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["updatedAt"] = firestore.ServerTimestamp

	if _, err := r.client.Collection(clientsCollection).Doc(clientID).Set(ctx, merged, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to update client with ID '%s': %w", clientID, err)
	}
	return nil
}

// Delete removes a client document. Payments referencing the client are left
// in place; foreign ids are plain strings with no cascade.
func (r *firestoreClientRepository) Delete(ctx context.Context, clientID string) error {
	if clientID == "" {
		return errors.New("clientID cannot be empty for Delete operation")
	}
	if _, err := r.client.Collection(clientsCollection).Doc(clientID).Delete(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("client with ID '%s' not found for deletion: %w", clientID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete client with ID '%s': %w", clientID, err)
	}
	return nil
}

// CountByOrganization counts the clients belonging to an organization.
func (r *firestoreClientRepository) CountByOrganization(ctx context.Context, organizationID string) (int, error) {
	if organizationID == "" {
		return 0, errors.New("organizationID cannot be empty for CountByOrganization operation")
	}
	iter := r.client.Collection(clientsCollection).Where("organizationId", "==", organizationID).Documents(ctx)
	return countDocs(iter)
}
