package models

import "time"

// Client is a person or company the firm represents, scoped to an organization.
type Client struct {
	ID             string    `json:"id" firestore:"-"` // Document ID, auto-generated
	OrganizationID string    `json:"organizationId" firestore:"organizationId"`
	Name           string    `json:"name" firestore:"name"`
	Email          string    `json:"email,omitempty" firestore:"email,omitempty"`
	Phone          string    `json:"phone,omitempty" firestore:"phone,omitempty"`
	Address        string    `json:"address,omitempty" firestore:"address,omitempty"`
	Notes          string    `json:"notes,omitempty" firestore:"notes,omitempty"`
	CreatedBy      string    `json:"createdBy" firestore:"createdBy"`
	CreatedAt      time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt      time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

// PaymentStatus tracks whether a payment has been received.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentReceived PaymentStatus = "received"
	PaymentOverdue  PaymentStatus = "overdue"
)

// Payment is a fee record tied to a client and, optionally, to a specific case.
type Payment struct {
	ID          string        `json:"id" firestore:"-"`
	ClientID    string        `json:"clientId" firestore:"clientId"`
	CaseID      string        `json:"caseId,omitempty" firestore:"caseId,omitempty"`
	AmountCents int64         `json:"amountCents" firestore:"amountCents"`
	Currency    string        `json:"currency" firestore:"currency"`
	Status      PaymentStatus `json:"status" firestore:"status"`
	PaidAt      *time.Time    `json:"paidAt,omitempty" firestore:"paidAt,omitempty"`
	Notes       string        `json:"notes,omitempty" firestore:"notes,omitempty"`
	CreatedBy   string        `json:"createdBy" firestore:"createdBy"`
	CreatedAt   time.Time     `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt   time.Time     `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
