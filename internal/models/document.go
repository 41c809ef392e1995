package models

import "time"

// Document is the metadata record for a file attached to a case. The binary
// lives in object storage; URL is the public link returned by the upload.
type Document struct {
	ID          string    `json:"id" firestore:"-"`
	CaseID      string    `json:"caseId" firestore:"caseId"`
	Name        string    `json:"name" firestore:"name"`
	URL         string    `json:"url" firestore:"url"`
	ContentType string    `json:"contentType,omitempty" firestore:"contentType,omitempty"`
	SizeBytes   int64     `json:"sizeBytes,omitempty" firestore:"sizeBytes,omitempty"`
	UploadedBy  string    `json:"uploadedBy" firestore:"uploadedBy"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

// ConversationMessage is a single message in a case's discussion thread.
// New messages are pushed to open viewers via a realtime subscription on the
// backing collection.
type ConversationMessage struct {
	ID         string    `json:"id" firestore:"-"`
	CaseID     string    `json:"caseId" firestore:"caseId"`
	SenderID   string    `json:"senderId" firestore:"senderId"`
	SenderName string    `json:"senderName,omitempty" firestore:"senderName,omitempty"`
	Text       string    `json:"text" firestore:"text"`
	SentAt     time.Time `json:"sentAt" firestore:"sentAt,serverTimestamp"`
}
