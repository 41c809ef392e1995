package models

import "time"

// SubscriptionPlan identifies a static pricing tier.
type SubscriptionPlan string

const (
	PlanFree         SubscriptionPlan = "free"
	PlanStarter      SubscriptionPlan = "starter"
	PlanProfessional SubscriptionPlan = "professional"
	PlanEnterprise   SubscriptionPlan = "enterprise"
)

// SubscriptionStatus describes the lifecycle state of an organization's subscription.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionTrial     SubscriptionStatus = "trial"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// Organization is a tenant record owning a subscription plan and usage counters.
//
// CurrentUsers and CurrentCases are maintained by the application layer, not derived
// by counting related records; they are incremented and decremented explicitly and can
// drift if a failure path skips a counter call.
type Organization struct {
	ID                    string             `json:"id" firestore:"-"` // Document ID
	Name                  string             `json:"name" firestore:"name"`
	Email                 string             `json:"email,omitempty" firestore:"email,omitempty"`
	Phone                 string             `json:"phone,omitempty" firestore:"phone,omitempty"`
	Address               string             `json:"address,omitempty" firestore:"address,omitempty"`
	Domain                string             `json:"domain,omitempty" firestore:"domain,omitempty"`
	SubscriptionPlan      SubscriptionPlan   `json:"subscriptionPlan" firestore:"subscriptionPlan"`
	SubscriptionStatus    SubscriptionStatus `json:"subscriptionStatus" firestore:"subscriptionStatus"`
	SubscriptionStartDate time.Time          `json:"subscriptionStartDate" firestore:"subscriptionStartDate"`
	SubscriptionEndDate   *time.Time         `json:"subscriptionEndDate,omitempty" firestore:"subscriptionEndDate,omitempty"`
	TrialEndDate          *time.Time         `json:"trialEndDate,omitempty" firestore:"trialEndDate,omitempty"`
	MaxUsers              int                `json:"maxUsers" firestore:"maxUsers"` // -1 means unlimited
	MaxCases              int                `json:"maxCases" firestore:"maxCases"` // -1 means unlimited
	CurrentUsers          int                `json:"currentUsers" firestore:"currentUsers"`
	CurrentCases          int                `json:"currentCases" firestore:"currentCases"`
	IsDefault             bool               `json:"isDefault" firestore:"isDefault"` // at most one record should carry true
	CreatedBy             string             `json:"createdBy" firestore:"createdBy"` // user ID or "system"
	CreatedAt             time.Time          `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt             time.Time          `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

// UsageStats summarizes an organization's stored records. Fetched best-effort:
// a backend failure yields a zeroed struct rather than an error to the caller.
type UsageStats struct {
	Users   int `json:"users"`
	Cases   int `json:"cases"`
	Clients int `json:"clients"`
}
