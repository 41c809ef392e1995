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

const organizationsCollection = "organizations"

// firestoreOrganizationRepository implements OrganizationRepository using Firestore.
type firestoreOrganizationRepository struct {
	client *firestore.Client
}

// NewFirestoreOrganizationRepository creates a new organization repository.
func NewFirestoreOrganizationRepository(client *firestore.Client) OrganizationRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for OrganizationRepository.")
	}
	return &firestoreOrganizationRepository{client: client}
}

// Create adds a new organization document with an auto-generated ID and sets
// org.ID before returning. CreatedAt/UpdatedAt are stamped server-side.
func (r *firestoreOrganizationRepository) Create(ctx context.Context, org *models.Organization) (string, error) {
	docRef := r.client.Collection(organizationsCollection).NewDoc()
	org.ID = docRef.ID

	if _, err := docRef.Create(ctx, org); err != nil {
		return "", fmt.Errorf("failed to create organization: %w", err)
	}
	return docRef.ID, nil
}

// GetByID retrieves an organization document by its ID.
func (r *firestoreOrganizationRepository) GetByID(ctx context.Context, id string) (*models.Organization, error) {
	if id == "" {
		return nil, errors.New("organization ID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(organizationsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("organization with ID '%s' not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get organization with ID '%s': %w", id, err)
	}

	var org models.Organization
	if err := docSnap.DataTo(&org); err != nil {
		return nil, fmt.Errorf("failed to decode organization data for ID '%s': %w", id, err)
	}
	org.ID = docSnap.Ref.ID
	return &org, nil
}

// List retrieves every organization document. The registry is small (one
// record per tenant firm), so a full scan is how the bootstrapper finds the
// default record.
func (r *firestoreOrganizationRepository) List(ctx context.Context) ([]*models.Organization, error) {
	iter := r.client.Collection(organizationsCollection).Documents(ctx)
	return collectDocs(iter, func(o *models.Organization, id string) { o.ID = id })
}

// Update merges the given fields into an organization document and stamps
// updatedAt. A missing document is created by the merge rather than failing,
// which matches the registry contract's silent-on-absent behavior.
func (r *firestoreOrganizationRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if id == "" {
		return errors.New("organization ID cannot be empty for Update operation")
	}
	merged := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["updatedAt"] = firestore.ServerTimestamp

	if _, err := r.client.Collection(organizationsCollection).Doc(id).Set(ctx, merged, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to update organization with ID '%s': %w", id, err)
	}
	return nil
}

// IncrementUsers adjusts the currentUsers counter by delta using a
// server-side atomic increment.
func (r *firestoreOrganizationRepository) IncrementUsers(ctx context.Context, id string, delta int) error {
	return r.incrementCounter(ctx, id, "currentUsers", delta)
}

// IncrementCases adjusts the currentCases counter by delta using a
// server-side atomic increment.
func (r *firestoreOrganizationRepository) IncrementCases(ctx context.Context, id string, delta int) error {
	return r.incrementCounter(ctx, id, "currentCases", delta)
}

func (r *firestoreOrganizationRepository) incrementCounter(ctx context.Context, id, field string, delta int) error {
	if id == "" {
		return errors.New("organization ID cannot be empty for counter increment")
	}
	_, err := r.client.Collection(organizationsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: field, Value: firestore.Increment(delta)},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("organization with ID '%s' not found for counter update: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to adjust %s for organization '%s': %w", field, id, err)
	}
	return nil
}

// ReserveUserSlot admits one more user inside a transaction: the counter is
// read, re-checked against maxUsers and incremented atomically, so two
// concurrent admissions cannot overshoot the limit.
func (r *firestoreOrganizationRepository) ReserveUserSlot(ctx context.Context, id string) error {
	return r.reserveSlot(ctx, id, "currentUsers", "maxUsers")
}

// ReserveCaseSlot admits one more case; same transactional discipline as
// ReserveUserSlot.
func (r *firestoreOrganizationRepository) ReserveCaseSlot(ctx context.Context, id string) error {
	return r.reserveSlot(ctx, id, "currentCases", "maxCases")
}

func (r *firestoreOrganizationRepository) reserveSlot(ctx context.Context, id, counterField, limitField string) error {
	if id == "" {
		return errors.New("organization ID cannot be empty for slot reservation")
	}
	docRef := r.client.Collection(organizationsCollection).Doc(id)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return fmt.Errorf("organization with ID '%s' not found: %w", id, ErrNotFound)
			}
			return err
		}

		var org models.Organization
		if err := snap.DataTo(&org); err != nil {
			return fmt.Errorf("failed to decode organization data for ID '%s': %w", id, err)
		}

		current, limit := org.CurrentUsers, org.MaxUsers
		if counterField == "currentCases" {
			current, limit = org.CurrentCases, org.MaxCases
		}
		// -1 means unlimited.
		if limit != -1 && current >= limit {
			return fmt.Errorf("%s %d/%d: %w", counterField, current, limit, ErrCapacityExhausted)
		}

		return tx.Update(docRef, []firestore.Update{
			{Path: counterField, Value: current + 1},
			{Path: "updatedAt", Value: firestore.ServerTimestamp},
		})
	})
	if err != nil {
		if errors.Is(err, ErrCapacityExhausted) || errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("slot reservation transaction failed for organization '%s': %w", id, err)
	}
	return nil
}

// ReleaseUserSlot is the compensating decrement for a failed admission.
// The counter is floored at zero.
func (r *firestoreOrganizationRepository) ReleaseUserSlot(ctx context.Context, id string) error {
	return r.releaseSlot(ctx, id, "currentUsers")
}

// ReleaseCaseSlot is the compensating decrement for a failed admission.
func (r *firestoreOrganizationRepository) ReleaseCaseSlot(ctx context.Context, id string) error {
	return r.releaseSlot(ctx, id, "currentCases")
}

func (r *firestoreOrganizationRepository) releaseSlot(ctx context.Context, id, counterField string) error {
	if id == "" {
		return errors.New("organization ID cannot be empty for slot release")
	}
	docRef := r.client.Collection(organizationsCollection).Doc(id)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return fmt.Errorf("organization with ID '%s' not found: %w", id, ErrNotFound)
			}
			return err
		}

		var org models.Organization
		if err := snap.DataTo(&org); err != nil {
			return fmt.Errorf("failed to decode organization data for ID '%s': %w", id, err)
		}

		current := org.CurrentUsers
		if counterField == "currentCases" {
			current = org.CurrentCases
		}
		if current <= 0 {
			return nil // already at floor, nothing to release
		}

		return tx.Update(docRef, []firestore.Update{
			{Path: counterField, Value: current - 1},
			{Path: "updatedAt", Value: firestore.ServerTimestamp},
		})
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("slot release transaction failed for organization '%s': %w", id, err)
	}
	return nil
}
