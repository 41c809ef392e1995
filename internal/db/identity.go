package db

import (
	"context"
	"fmt"
	"log"

	"firebase.google.com/go/v4/auth"

	"casetrack-backend-go/internal/models"
)

// FirebaseIdentityProvider resolves users from Firebase Auth. It backs the
// profile fallback chain when no document exists for a signed-in user yet.
type FirebaseIdentityProvider struct {
	client *auth.Client
}

// NewFirebaseIdentityProvider creates a new identity provider adapter.
func NewFirebaseIdentityProvider(client *auth.Client) *FirebaseIdentityProvider {
	if client == nil {
		log.Fatal("Firebase Auth client is not initialized for FirebaseIdentityProvider.")
	}
	return &FirebaseIdentityProvider{client: client}
}

// LookupUser fetches the auth record for a UID and maps it to a user model.
// Unknown UIDs yield ErrNotFound.
func (p *FirebaseIdentityProvider) LookupUser(ctx context.Context, uid string) (*models.User, error) {
	record, err := p.client.GetUser(ctx, uid)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil, fmt.Errorf("auth user '%s' not found: %w", uid, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to look up auth user '%s': %w", uid, err)
	}
	return &models.User{
		ID:    record.UID,
		Email: record.Email,
		Name:  record.DisplayName,
	}, nil
}
