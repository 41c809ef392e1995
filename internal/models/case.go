package models

import "time"

// CaseStatus tracks where a case sits in its lifecycle.
type CaseStatus string

const (
	CaseOpen     CaseStatus = "open"
	CasePending  CaseStatus = "pending"
	CaseClosed   CaseStatus = "closed"
	CaseArchived CaseStatus = "archived"
)

// Case is a legal matter tracked by a lawyer. Child records (hearings, tasks,
// documents, conversation messages) reference it by CaseID as a plain string;
// there is no referential integrity beyond that, and deleting a case does not
// cascade to its children.
type Case struct {
	ID             string     `json:"id" firestore:"-"` // Document ID, auto-generated
	OrganizationID string     `json:"organizationId" firestore:"organizationId"`
	OwnerID        string     `json:"ownerId" firestore:"ownerId"` // UID of the lawyer who created it
	ClientID       string     `json:"clientId,omitempty" firestore:"clientId,omitempty"`
	Title          string     `json:"title" firestore:"title"`
	CaseNumber     string     `json:"caseNumber,omitempty" firestore:"caseNumber,omitempty"`
	Court          string     `json:"court,omitempty" firestore:"court,omitempty"`
	Judge          string     `json:"judge,omitempty" firestore:"judge,omitempty"`
	Description    string     `json:"description,omitempty" firestore:"description,omitempty"`
	Status         CaseStatus `json:"status" firestore:"status"`
	NextHearing    *time.Time `json:"nextHearing,omitempty" firestore:"nextHearing,omitempty"`
	CreatedAt      time.Time  `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt      time.Time  `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

// Hearing is a scheduled court appearance belonging to a case.
type Hearing struct {
	ID        string    `json:"id" firestore:"-"`
	CaseID    string    `json:"caseId" firestore:"caseId"`
	Date      time.Time `json:"date" firestore:"date"`
	Court     string    `json:"court,omitempty" firestore:"court,omitempty"`
	Judge     string    `json:"judge,omitempty" firestore:"judge,omitempty"`
	Purpose   string    `json:"purpose,omitempty" firestore:"purpose,omitempty"`
	Notes     string    `json:"notes,omitempty" firestore:"notes,omitempty"`
	Outcome   string    `json:"outcome,omitempty" firestore:"outcome,omitempty"`
	CreatedBy string    `json:"createdBy" firestore:"createdBy"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

// TaskStatus tracks a task's completion state.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

// Task is a to-do item attached to a case.
type Task struct {
	ID         string     `json:"id" firestore:"-"`
	CaseID     string     `json:"caseId" firestore:"caseId"`
	Title      string     `json:"title" firestore:"title"`
	Details    string     `json:"details,omitempty" firestore:"details,omitempty"`
	AssignedTo string     `json:"assignedTo,omitempty" firestore:"assignedTo,omitempty"`
	DueDate    *time.Time `json:"dueDate,omitempty" firestore:"dueDate,omitempty"`
	Status     TaskStatus `json:"status" firestore:"status"`
	CreatedBy  string     `json:"createdBy" firestore:"createdBy"`
	CreatedAt  time.Time  `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt  time.Time  `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
