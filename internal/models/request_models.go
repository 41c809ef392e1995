package models

import "time"

// CreateOrganizationRequest is the body for POST /api/organizations/create.
type CreateOrganizationRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email,omitempty" binding:"omitempty,email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Domain  string `json:"domain,omitempty"`
	Plan    string `json:"plan,omitempty"` // defaults to "free" when empty
}

// UpdateSubscriptionRequest is the body for PATCH /api/organizations/:id/subscription.
type UpdateSubscriptionRequest struct {
	Plan   string `json:"plan" binding:"required"`
	Status string `json:"status,omitempty"` // defaults to "active" when empty
}

// UpdateUserRequest is the body for PATCH /api/users/:userId.
// Pointers distinguish "clear this field" from "field not provided".
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	FirmName *string `json:"firmName,omitempty"`
	LogoURL  *string `json:"logoUrl,omitempty"`
}

// CreateCaseRequest is the body for POST /api/cases.
type CreateCaseRequest struct {
	Title       string `json:"title" binding:"required"`
	ClientID    string `json:"clientId,omitempty"`
	CaseNumber  string `json:"caseNumber,omitempty"`
	Court       string `json:"court,omitempty"`
	Judge       string `json:"judge,omitempty"`
	Description string `json:"description,omitempty"`
}

// UpdateCaseRequest is the body for PATCH /api/cases/:caseId.
type UpdateCaseRequest struct {
	Title       *string    `json:"title,omitempty"`
	ClientID    *string    `json:"clientId,omitempty"`
	CaseNumber  *string    `json:"caseNumber,omitempty"`
	Court       *string    `json:"court,omitempty"`
	Judge       *string    `json:"judge,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	NextHearing *time.Time `json:"nextHearing,omitempty"`
}

// CreateClientRequest is the body for POST /api/clients.
type CreateClientRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email,omitempty" binding:"omitempty,email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// UpdateClientRequest is the body for PATCH /api/clients/:clientId.
type UpdateClientRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

// CreateHearingRequest is the body for POST /api/cases/:caseId/hearings.
type CreateHearingRequest struct {
	Date    time.Time `json:"date" binding:"required"`
	Court   string    `json:"court,omitempty"`
	Judge   string    `json:"judge,omitempty"`
	Purpose string    `json:"purpose,omitempty"`
	Notes   string    `json:"notes,omitempty"`
}

// UpdateHearingRequest is the body for PATCH /api/cases/:caseId/hearings/:hearingId.
type UpdateHearingRequest struct {
	Date    *time.Time `json:"date,omitempty"`
	Court   *string    `json:"court,omitempty"`
	Judge   *string    `json:"judge,omitempty"`
	Purpose *string    `json:"purpose,omitempty"`
	Notes   *string    `json:"notes,omitempty"`
	Outcome *string    `json:"outcome,omitempty"`
}

// CreateTaskRequest is the body for POST /api/cases/:caseId/tasks.
type CreateTaskRequest struct {
	Title      string     `json:"title" binding:"required"`
	Details    string     `json:"details,omitempty"`
	AssignedTo string     `json:"assignedTo,omitempty"`
	DueDate    *time.Time `json:"dueDate,omitempty"`
}

// UpdateTaskRequest is the body for PATCH /api/cases/:caseId/tasks/:taskId.
type UpdateTaskRequest struct {
	Title      *string    `json:"title,omitempty"`
	Details    *string    `json:"details,omitempty"`
	AssignedTo *string    `json:"assignedTo,omitempty"`
	DueDate    *time.Time `json:"dueDate,omitempty"`
	Status     *string    `json:"status,omitempty"`
}

// CreatePaymentRequest is the body for POST /api/payments.
type CreatePaymentRequest struct {
	ClientID    string     `json:"clientId" binding:"required"`
	CaseID      string     `json:"caseId,omitempty"`
	AmountCents int64      `json:"amountCents" binding:"required,gt=0"`
	Currency    string     `json:"currency,omitempty"` // defaults to "USD"
	Status      string     `json:"status,omitempty"`   // defaults to "pending"
	PaidAt      *time.Time `json:"paidAt,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// PostMessageRequest is the body for POST /api/cases/:caseId/messages.
type PostMessageRequest struct {
	Text string `json:"text" binding:"required"`
}
