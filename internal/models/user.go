package models

import "time"

// UserRole is the role a user holds inside their organization.
type UserRole string

const (
	RoleOwner     UserRole = "owner"
	RoleAdmin     UserRole = "admin"
	RoleLawyer    UserRole = "lawyer"
	RoleAssistant UserRole = "assistant"
	RoleViewer    UserRole = "viewer"
)

// User represents an application user. The Firebase Auth UID is the document ID.
// Records are materialized lazily: a user may exist in the identity provider long
// before a document exists here, and OrganizationID may be empty until the
// bootstrapper assigns one.
type User struct {
	ID             string    `json:"id" firestore:"-"` // Firebase Auth UID
	Email          string    `json:"email" firestore:"email"`
	Name           string    `json:"name,omitempty" firestore:"name,omitempty"`
	OrganizationID string    `json:"organizationId,omitempty" firestore:"organizationId,omitempty"`
	Role           UserRole  `json:"role" firestore:"role"`
	FirmName       string    `json:"firmName,omitempty" firestore:"firmName,omitempty"`
	LogoURL        string    `json:"logoUrl,omitempty" firestore:"logoUrl,omitempty"`
	CreatedAt      time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt      time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

// UserProfile is the user record merged with its organization, as returned by
// GET /api/users/:userId. Organization is nil when resolution failed and the
// endpoint degraded to user-only data.
type UserProfile struct {
	User         *User         `json:"user"`
	Organization *Organization `json:"organization,omitempty"`
}
