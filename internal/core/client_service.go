package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"casetrack-backend-go/internal/db"
	"casetrack-backend-go/internal/models"
)

// Custom errors for the ClientService.
var ErrClientNotFound = errors.New("client not found")

// clientService implements the ClientService interface.
type clientService struct {
	clientRepo      db.ClientRepository
	paymentRepo     db.PaymentRepository
	orgService      OrganizationService
	activityService ActivityService
	logger          *zap.Logger
}

// NewClientService creates a new ClientService instance.
func NewClientService(
	clr db.ClientRepository,
	pr db.PaymentRepository,
	os OrganizationService,
	as ActivityService,
	logger *zap.Logger,
) ClientService {
	return &clientService{
		clientRepo:      clr,
		paymentRepo:     pr,
		orgService:      os,
		activityService: as,
		logger:          logger,
	}
}

// authorizeClient loads a client record and verifies the caller belongs to
// its organization.
func (s *clientService) authorizeClient(ctx context.Context, callerUID, clientID string) (*models.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID '%s'", ErrClientNotFound, clientID)
		}
		return nil, fmt.Errorf("failed to load client '%s': %w", clientID, err)
	}
	orgID, err := s.orgService.EnsureUserHasOrganization(ctx, callerUID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve caller organization: %w", err)
	}
	if client.OrganizationID != orgID {
		return nil, fmt.Errorf("%w: client '%s'", ErrForbiddenAccess, clientID)
	}
	return client, nil
}

func (s *clientService) CreateClient(ctx context.Context, callerUID string, req models.CreateClientRequest) (*models.Client, error) {
	orgID, err := s.orgService.EnsureUserHasOrganization(ctx, callerUID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve caller organization: %w", err)
	}

	now := time.Now().UTC()
	client := &models.Client{
		OrganizationID: orgID,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		Notes:          req.Notes,
		CreatedBy:      callerUID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	id, err := s.clientRepo.Create(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	client.ID = id

	if auditErr := s.activityService.Record(ctx, models.ActivityLog{
		UserID:     callerUID,
		Action:     "CLIENT_CREATE",
		TargetType: "CLIENT",
		TargetID:   id,
		Details:    map[string]interface{}{"name": client.Name},
	}); auditErr != nil {
		s.logger.Warn("failed to record CLIENT_CREATE activity", zap.String("clientId", id), zap.Error(auditErr))
	}
	return client, nil
}

func (s *clientService) GetClient(ctx context.Context, callerUID, clientID string) (*models.Client, error) {
	return s.authorizeClient(ctx, callerUID, clientID)
}

func (s *clientService) ListClients(ctx context.Context, callerUID string) ([]*models.Client, error) {
	orgID, err := s.orgService.EnsureUserHasOrganization(ctx, callerUID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve caller organization: %w", err)
	}
	clients, err := s.clientRepo.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

func (s *clientService) UpdateClient(ctx context.Context, callerUID, clientID string, req models.UpdateClientRequest) (*models.Client, error) {
	if _, err := s.authorizeClient(ctx, callerUID, clientID); err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}
	if len(fields) > 0 {
		if err := s.clientRepo.Update(ctx, clientID, fields); err != nil {
			return nil, fmt.Errorf("failed to update client '%s': %w", clientID, err)
		}
	}
	return s.clientRepo.GetByID(ctx, clientID)
}

// DeleteClient removes the client record only. Payments and cases that
// reference the client keep their plain-string foreign id.
func (s *clientService) DeleteClient(ctx context.Context, callerUID, clientID string) error {
	client, err := s.authorizeClient(ctx, callerUID, clientID)
	if err != nil {
		return err
	}
	if err := s.clientRepo.Delete(ctx, clientID); err != nil {
		return fmt.Errorf("failed to delete client '%s': %w", clientID, err)
	}

	if auditErr := s.activityService.Record(ctx, models.ActivityLog{
		UserID:     callerUID,
		Action:     "CLIENT_DELETE",
		TargetType: "CLIENT",
		TargetID:   clientID,
		Details:    map[string]interface{}{"name": client.Name},
	}); auditErr != nil {
		s.logger.Warn("failed to record CLIENT_DELETE activity", zap.String("clientId", clientID), zap.Error(auditErr))
	}
	return nil
}

// RecordPayment stores a fee record against a client the caller can access.
func (s *clientService) RecordPayment(ctx context.Context, callerUID string, req models.CreatePaymentRequest) (*models.Payment, error) {
	if _, err := s.authorizeClient(ctx, callerUID, req.ClientID); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	status := models.PaymentPending
	if req.Status != "" {
		status = models.PaymentStatus(req.Status)
	}

	now := time.Now().UTC()
	payment := &models.Payment{
		ClientID:    req.ClientID,
		CaseID:      req.CaseID,
		AmountCents: req.AmountCents,
		Currency:    currency,
		Status:      status,
		PaidAt:      req.PaidAt,
		Notes:       req.Notes,
		CreatedBy:   callerUID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	id, err := s.paymentRepo.Create(ctx, payment)
	if err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	payment.ID = id
	return payment, nil
}

func (s *clientService) ListPaymentsByClient(ctx context.Context, callerUID, clientID string) ([]*models.Payment, error) {
	if _, err := s.authorizeClient(ctx, callerUID, clientID); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for client '%s': %w", clientID, err)
	}
	return payments, nil
}
