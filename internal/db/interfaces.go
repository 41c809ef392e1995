package db

import (
	"context"

	"casetrack-backend-go/internal/models"
)

// OrganizationRepository defines storage operations for organization records.
//
// Update merges the given fields and stamps updatedAt; it does not fail when
// the document is absent (Firestore Set with MergeAll creates it), matching
// the registry's log-and-continue callers. IncrementUsers/IncrementCases are
// unconditional counter adjustments; the Reserve/Release pairs run inside a
// transaction and re-check the plan limit before admitting, returning
// ErrCapacityExhausted on overflow.
type OrganizationRepository interface {
	Create(ctx context.Context, org *models.Organization) (string, error)
	GetByID(ctx context.Context, id string) (*models.Organization, error)
	List(ctx context.Context) ([]*models.Organization, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	IncrementUsers(ctx context.Context, id string, delta int) error
	IncrementCases(ctx context.Context, id string, delta int) error
	ReserveUserSlot(ctx context.Context, id string) error
	ReserveCaseSlot(ctx context.Context, id string) error
	ReleaseUserSlot(ctx context.Context, id string) error
	ReleaseCaseSlot(ctx context.Context, id string) error
}

// UserRepository defines storage operations for user records. The Firebase
// Auth UID is the document ID.
type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, userID string, fields map[string]interface{}) error
	CountByOrganization(ctx context.Context, organizationID string) (int, error)
}

// CaseRepository defines storage operations for case records.
type CaseRepository interface {
	Create(ctx context.Context, c *models.Case) (string, error)
	GetByID(ctx context.Context, caseID string) (*models.Case, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]*models.Case, error)
	Update(ctx context.Context, caseID string, fields map[string]interface{}) error
	Delete(ctx context.Context, caseID string) error
	CountByOrganization(ctx context.Context, organizationID string) (int, error)
}

// ClientRepository defines storage operations for client records.
type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) (string, error)
	GetByID(ctx context.Context, clientID string) (*models.Client, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]*models.Client, error)
	Update(ctx context.Context, clientID string, fields map[string]interface{}) error
	Delete(ctx context.Context, clientID string) error
	CountByOrganization(ctx context.Context, organizationID string) (int, error)
}

// HearingRepository defines storage operations for hearing records.
type HearingRepository interface {
	Create(ctx context.Context, hearing *models.Hearing) (string, error)
	GetByID(ctx context.Context, hearingID string) (*models.Hearing, error)
	ListByCase(ctx context.Context, caseID string) ([]*models.Hearing, error)
	Update(ctx context.Context, hearingID string, fields map[string]interface{}) error
	Delete(ctx context.Context, hearingID string) error
	CountByCase(ctx context.Context, caseID string) (int, error)
}

// TaskRepository defines storage operations for task records.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) (string, error)
	GetByID(ctx context.Context, taskID string) (*models.Task, error)
	ListByCase(ctx context.Context, caseID string) ([]*models.Task, error)
	Update(ctx context.Context, taskID string, fields map[string]interface{}) error
	Delete(ctx context.Context, taskID string) error
	CountByCase(ctx context.Context, caseID string) (int, error)
}

// PaymentRepository defines storage operations for payment records.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) (string, error)
	GetByID(ctx context.Context, paymentID string) (*models.Payment, error)
	ListByClient(ctx context.Context, clientID string) ([]*models.Payment, error)
	ListByCase(ctx context.Context, caseID string) ([]*models.Payment, error)
	Update(ctx context.Context, paymentID string, fields map[string]interface{}) error
	Delete(ctx context.Context, paymentID string) error
}

// DocumentRepository defines storage operations for document metadata records.
type DocumentRepository interface {
	Create(ctx context.Context, doc *models.Document) (string, error)
	GetByID(ctx context.Context, documentID string) (*models.Document, error)
	ListByCase(ctx context.Context, caseID string) ([]*models.Document, error)
	Delete(ctx context.Context, documentID string) error
	CountByCase(ctx context.Context, caseID string) (int, error)
}

// ConversationRepository defines storage operations for conversation messages.
// Listen pushes newly added messages for a case until the context is cancelled.
type ConversationRepository interface {
	Create(ctx context.Context, msg *models.ConversationMessage) (string, error)
	ListByCase(ctx context.Context, caseID string) ([]*models.ConversationMessage, error)
	Listen(ctx context.Context, caseID string) (<-chan *models.ConversationMessage, error)
	CountByCase(ctx context.Context, caseID string) (int, error)
}

// ActivityRepository defines storage operations for activity log entries.
type ActivityRepository interface {
	Create(ctx context.Context, entry models.ActivityLog) error
}
