package models

import "time"

// ActivityLog records who did what to which record. Entries are written
// fire-and-forget: a failed write is logged and never fails the operation
// that produced it.
type ActivityLog struct {
	ID         string                 `json:"id" firestore:"-"`
	Timestamp  time.Time              `json:"timestamp" firestore:"timestamp,serverTimestamp"`
	UserID     string                 `json:"userId" firestore:"userId"`
	Action     string                 `json:"action" firestore:"action"` // e.g. "CASE_CREATE", "ORG_SUBSCRIPTION_CHANGE"
	TargetType string                 `json:"targetType,omitempty" firestore:"targetType,omitempty"`
	TargetID   string                 `json:"targetId,omitempty" firestore:"targetId,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty" firestore:"details,omitempty"`
}
