package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"

	"casetrack-backend-go/internal/models"
)

const messagesCollection = "conversationMessages"

type firestoreConversationRepository struct {
	client *firestore.Client
}

// NewFirestoreConversationRepository creates a new conversation repository.
func NewFirestoreConversationRepository(client *firestore.Client) ConversationRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ConversationRepository.")
	}
	return &firestoreConversationRepository{client: client}
}

func (r *firestoreConversationRepository) Create(ctx context.Context, msg *models.ConversationMessage) (string, error) {
	docRef := r.client.Collection(messagesCollection).NewDoc()
	msg.ID = docRef.ID

	if _, err := docRef.Create(ctx, msg); err != nil {
		return "", fmt.Errorf("failed to create conversation message: %w", err)
	}
	return docRef.ID, nil
}

// ListByCase retrieves a case's messages in the order they were sent.
func (r *firestoreConversationRepository) ListByCase(ctx context.Context, caseID string) ([]*models.ConversationMessage, error) {
	if caseID == "" {
		return nil, errors.New("caseID cannot be empty for ListByCase operation")
	}
	iter := r.client.Collection(messagesCollection).
		Where("caseId", "==", caseID).
		OrderBy("sentAt", firestore.Asc).
		Documents(ctx)
	return collectDocs(iter, func(m *models.ConversationMessage, id string) { m.ID = id })
}

// Listen subscribes to the case's message query with a Firestore snapshot
// listener and emits each newly added document on the returned channel. The
// channel is closed when the context is cancelled or the listener fails;
// viewers simply reconnect.
func (r *firestoreConversationRepository) Listen(ctx context.Context, caseID string) (<-chan *models.ConversationMessage, error) {
	if caseID == "" {
		return nil, errors.New("caseID cannot be empty for Listen operation")
	}

	snapIter := r.client.Collection(messagesCollection).
		Where("caseId", "==", caseID).
		OrderBy("sentAt", firestore.Asc).
		Snapshots(ctx)

	out := make(chan *models.ConversationMessage, 16)
	go func() {
		defer close(out)
		defer snapIter.Stop()
		for {
			snap, err := snapIter.Next()
			if err != nil {
				if ctx.Err() == nil {
					log.Printf("Conversation listener for case '%s' stopped: %v", caseID, err)
				}
				return
			}
			for _, change := range snap.Changes {
				if change.Kind != firestore.DocumentAdded {
					continue
				}
				var msg models.ConversationMessage
				if err := change.Doc.DataTo(&msg); err != nil {
					log.Printf("Error decoding message %s for case '%s': %v. Skipping.", change.Doc.Ref.ID, caseID, err)
					continue
				}
				msg.ID = change.Doc.Ref.ID
				select {
				case out <- &msg:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (r *firestoreConversationRepository) CountByCase(ctx context.Context, caseID string) (int, error) {
	if caseID == "" {
		return 0, errors.New("caseID cannot be empty for CountByCase operation")
	}
	iter := r.client.Collection(messagesCollection).Where("caseId", "==", caseID).Documents(ctx)
	return countDocs(iter)
}
