package core

import (
	"context"
	"io"

	"casetrack-backend-go/internal/models"
)

// OrganizationService covers the organization registry, the subscription
// lifecycle and the default-organization bootstrapper.
type OrganizationService interface {
	CreateOrganization(ctx context.Context, creatorID string, req models.CreateOrganizationRequest) (*models.Organization, error)
	GetOrganization(ctx context.Context, id string) (*models.Organization, error)
	ListOrganizations(ctx context.Context) ([]*models.Organization, error)
	UpdateSubscription(ctx context.Context, id string, req models.UpdateSubscriptionRequest) (*models.Organization, error)

	// GetUsageStats is best-effort: backend failures degrade to zeroed stats.
	GetUsageStats(ctx context.Context, id string) models.UsageStats

	// GetOrCreateDefaultOrganization returns the singleton default
	// organization's ID, creating it when none exists. Idempotent for
	// sequential callers.
	GetOrCreateDefaultOrganization(ctx context.Context) (string, error)

	// EnsureUserHasOrganization guarantees the user ends up with some
	// organization, materializing the user record if needed. Callers must
	// treat it as fallible and continue without an organization on error.
	EnsureUserHasOrganization(ctx context.Context, userID string) (string, error)
}

// SubscriptionCheck is the outcome of a subscription-state check.
type SubscriptionCheck struct {
	Allowed      bool                 `json:"allowed"`
	Error        string               `json:"error,omitempty"`
	Organization *models.Organization `json:"organization,omitempty"`
}

// UserQuotaCheck is the outcome of a seat-quota check.
type UserQuotaCheck struct {
	Allowed      bool   `json:"allowed"`
	Error        string `json:"error,omitempty"`
	CurrentUsers int    `json:"currentUsers"`
	MaxUsers     int    `json:"maxUsers"`
}

// CaseQuotaCheck is the outcome of a case-quota check.
type CaseQuotaCheck struct {
	Allowed      bool   `json:"allowed"`
	Error        string `json:"error,omitempty"`
	CurrentCases int    `json:"currentCases"`
	MaxCases     int    `json:"maxCases"`
}

// QuotaService answers allowed/denied for subscription state and plan quotas.
// All three checks are advisory reads: they never return a Go error, they fold
// failures into {allowed:false, error}. Actual admission happens through the
// repository's transactional slot reservations.
type QuotaService interface {
	CheckSubscription(ctx context.Context, organizationID string) SubscriptionCheck
	CanAddUser(ctx context.Context, organizationID string) UserQuotaCheck
	CanAddCase(ctx context.Context, organizationID string) CaseQuotaCheck
}

// IdentityProvider looks up a user in the external identity system.
// Implementations return db.ErrNotFound for unknown UIDs.
type IdentityProvider interface {
	LookupUser(ctx context.Context, uid string) (*models.User, error)
}

// UserService materializes and maintains user profiles.
type UserService interface {
	// GetProfile resolves the user through an ordered provider chain
	// (document store, identity provider, synthesized default) and merges the
	// organization. It never fails: degraded lookups produce best-effort
	// defaults.
	GetProfile(ctx context.Context, userID string) *models.UserProfile
	UpdateProfile(ctx context.Context, userID string, req models.UpdateUserRequest) (*models.User, error)
}

// CaseFilter narrows a case listing. Empty fields match everything; Query is
// a case-insensitive substring match across title, number, court, judge and
// description.
type CaseFilter struct {
	Status   string
	ClientID string
	Query    string
}

// CaseService manages case records on behalf of an authenticated caller.
type CaseService interface {
	CreateCase(ctx context.Context, callerUID string, req models.CreateCaseRequest) (*models.Case, error)
	GetCase(ctx context.Context, callerUID, caseID string) (*models.Case, error)
	ListCases(ctx context.Context, callerUID string, filter CaseFilter) ([]*models.Case, error)
	UpdateCase(ctx context.Context, callerUID, caseID string, req models.UpdateCaseRequest) (*models.Case, error)
	DeleteCase(ctx context.Context, callerUID, caseID string) error

	CreateHearing(ctx context.Context, callerUID, caseID string, req models.CreateHearingRequest) (*models.Hearing, error)
	ListHearings(ctx context.Context, callerUID, caseID string) ([]*models.Hearing, error)
	UpdateHearing(ctx context.Context, callerUID, caseID, hearingID string, req models.UpdateHearingRequest) (*models.Hearing, error)
	DeleteHearing(ctx context.Context, callerUID, caseID, hearingID string) error

	CreateTask(ctx context.Context, callerUID, caseID string, req models.CreateTaskRequest) (*models.Task, error)
	ListTasks(ctx context.Context, callerUID, caseID string) ([]*models.Task, error)
	UpdateTask(ctx context.Context, callerUID, caseID, taskID string, req models.UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, callerUID, caseID, taskID string) error

	ListPayments(ctx context.Context, callerUID, caseID string) ([]*models.Payment, error)
}

// ClientService manages client and payment records.
type ClientService interface {
	CreateClient(ctx context.Context, callerUID string, req models.CreateClientRequest) (*models.Client, error)
	GetClient(ctx context.Context, callerUID, clientID string) (*models.Client, error)
	ListClients(ctx context.Context, callerUID string) ([]*models.Client, error)
	UpdateClient(ctx context.Context, callerUID, clientID string, req models.UpdateClientRequest) (*models.Client, error)
	DeleteClient(ctx context.Context, callerUID, clientID string) error

	RecordPayment(ctx context.Context, callerUID string, req models.CreatePaymentRequest) (*models.Payment, error)
	ListPaymentsByClient(ctx context.Context, callerUID, clientID string) ([]*models.Payment, error)
}

// DocumentService manages case documents and their binaries in object storage.
type DocumentService interface {
	UploadDocument(ctx context.Context, callerUID, caseID, filename, contentType string, size int64, r io.Reader) (*models.Document, error)
	ListDocuments(ctx context.Context, callerUID, caseID string) ([]*models.Document, error)
	DeleteDocument(ctx context.Context, callerUID, caseID, documentID string) error
}

// ConversationService manages a case's threaded discussion.
type ConversationService interface {
	PostMessage(ctx context.Context, callerUID, senderName, caseID, text string) (*models.ConversationMessage, error)
	ListMessages(ctx context.Context, callerUID, caseID string) ([]*models.ConversationMessage, error)
	// StreamMessages pushes newly posted messages until ctx is cancelled.
	StreamMessages(ctx context.Context, callerUID, caseID string) (<-chan *models.ConversationMessage, error)
}

// ActivityService records who did what. Write failures must never fail the
// operation being logged.
type ActivityService interface {
	Record(ctx context.Context, entry models.ActivityLog) error
}
