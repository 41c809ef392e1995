package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"casetrack-backend-go/internal/models"
)

const paymentsCollection = "payments"

type firestorePaymentRepository struct {
	client *firestore.Client
}

// NewFirestorePaymentRepository creates a new payment repository.
func NewFirestorePaymentRepository(client *firestore.Client) PaymentRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for PaymentRepository.")
	}
	return &firestorePaymentRepository{client: client}
}

func (r *firestorePaymentRepository) Create(ctx context.Context, payment *models.Payment) (string, error) {
	docRef := r.client.Collection(paymentsCollection).NewDoc()
	payment.ID = docRef.ID

	if _, err := docRef.Create(ctx, payment); err != nil {
		return "", fmt.Errorf("failed to create payment: %w", err)
	}
	return docRef.ID, nil
}

func (r *firestorePaymentRepository) GetByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	if paymentID == "" {
		return nil, errors.New("paymentID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(paymentsCollection).Doc(paymentID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("payment with ID '%s' not found: %w", paymentID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get payment with ID '%s': %w", paymentID, err)
	}

	var p models.Payment
	if err := docSnap.DataTo(&p); err != nil {
		return nil, fmt.Errorf("failed to decode payment data for ID '%s': %w", paymentID, err)
	}
	p.ID = docSnap.Ref.ID
	return &p, nil
}

func (r *firestorePaymentRepository) ListByClient(ctx context.Context, clientID string) ([]*models.Payment, error) {
	if clientID == "" {
		return nil, errors.New("clientID cannot be empty for ListByClient operation")
	}
	iter := r.client.Collection(paymentsCollection).
		Where("clientId", "==", clientID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	return collectDocs(iter, func(p *models.Payment, id string) { p.ID = id })
}

func (r *firestorePaymentRepository) ListByCase(ctx context.Context, caseID string) ([]*models.Payment, error) {
	if caseID == "" {
		return nil, errors.New("caseID cannot be empty for ListByCase operation")
	}
	iter := r.client.Collection(paymentsCollection).
		Where("caseId", "==", caseID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	return collectDocs(iter, func(p *models.Payment, id string) { p.ID = id })
}

func (r *firestorePaymentRepository) Update(ctx context.Context, paymentID string, fields map[string]interface{}) error {
	if paymentID == "" {
		return errors.New("paymentID cannot be empty for Update operation")
	}
	merged := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["updatedAt"] = firestore.ServerTimestamp

	if _, err := r.client.Collection(paymentsCollection).Doc(paymentID).Set(ctx, merged, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to update payment with ID '%s': %w", paymentID, err)
	}
	return nil
}

func (r *firestorePaymentRepository) Delete(ctx context.Context, paymentID string) error {
	if paymentID == "" {
		return errors.New("paymentID cannot be empty for Delete operation")
	}
	if _, err := r.client.Collection(paymentsCollection).Doc(paymentID).Delete(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("payment with ID '%s' not found for deletion: %w", paymentID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete payment with ID '%s': %w", paymentID, err)
	}
	return nil
}
