package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"casetrack-backend-go/internal/db"
	"casetrack-backend-go/internal/models"
)

// Custom errors for the CaseService.
var (
	ErrSubscriptionInactive = errors.New("subscription does not allow this operation")
	ErrCaseLimitReached     = errors.New("case limit reached for the current plan")
	ErrHearingNotFound      = errors.New("hearing not found")
	ErrTaskNotFound         = errors.New("task not found")
	ErrRecordCaseMismatch   = errors.New("record does not belong to this case")
)

// caseService implements the CaseService interface.
type caseService struct {
	caseAccess
	orgRepo         db.OrganizationRepository
	hearingRepo     db.HearingRepository
	taskRepo        db.TaskRepository
	documentRepo    db.DocumentRepository
	messageRepo     db.ConversationRepository
	paymentRepo     db.PaymentRepository
	quotaService    QuotaService
	activityService ActivityService
	logger          *zap.Logger
}

// NewCaseService creates a new CaseService instance.
func NewCaseService(
	cr db.CaseRepository,
	or db.OrganizationRepository,
	hr db.HearingRepository,
	tr db.TaskRepository,
	dr db.DocumentRepository,
	mr db.ConversationRepository,
	pr db.PaymentRepository,
	os OrganizationService,
	qs QuotaService,
	as ActivityService,
	logger *zap.Logger,
) CaseService {
	return &caseService{
		caseAccess:      caseAccess{caseRepo: cr, orgService: os},
		orgRepo:         or,
		hearingRepo:     hr,
		taskRepo:        tr,
		documentRepo:    dr,
		messageRepo:     mr,
		paymentRepo:     pr,
		quotaService:    qs,
		activityService: as,
		logger:          logger,
	}
}

// CreateCase opens a new case for the caller's organization. Admission is
// gated on subscription state and on a transactional case-slot reservation;
// the reservation is released if the write itself fails.
func (s *caseService) CreateCase(ctx context.Context, callerUID string, req models.CreateCaseRequest) (*models.Case, error) {
	orgID, err := s.orgService.EnsureUserHasOrganization(ctx, callerUID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve caller organization: %w", err)
	}

	if check := s.quotaService.CheckSubscription(ctx, orgID); !check.Allowed {
		return nil, fmt.Errorf("%w: %s", ErrSubscriptionInactive, check.Error)
	}

	if err := s.orgRepo.ReserveCaseSlot(ctx, orgID); err != nil {
		if errors.Is(err, db.ErrCapacityExhausted) {
			return nil, fmt.Errorf("%w: organization '%s'", ErrCaseLimitReached, orgID)
		}
		return nil, fmt.Errorf("failed to reserve case slot: %w", err)
	}

	now := time.Now().UTC()
	newCase := &models.Case{
		OrganizationID: orgID,
		OwnerID:        callerUID,
		ClientID:       req.ClientID,
		Title:          req.Title,
		CaseNumber:     req.CaseNumber,
		Court:          req.Court,
		Judge:          req.Judge,
		Description:    req.Description,
		Status:         models.CaseOpen,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	caseID, err := s.caseRepo.Create(ctx, newCase)
	if err != nil {
		if relErr := s.orgRepo.ReleaseCaseSlot(ctx, orgID); relErr != nil {
			s.logger.Warn("failed to release case slot after create failure",
				zap.String("orgId", orgID), zap.Error(relErr))
		}
		return nil, fmt.Errorf("failed to create case: %w", err)
	}
	newCase.ID = caseID

	s.recordActivity(ctx, callerUID, "CASE_CREATE", caseID, map[string]interface{}{"title": newCase.Title})
	return newCase, nil
}

// GetCase retrieves a case the caller has access to.
func (s *caseService) GetCase(ctx context.Context, callerUID, caseID string) (*models.Case, error) {
	return s.authorize(ctx, callerUID, caseID)
}

// ListCases lists the caller organization's cases, applying the filter
// in memory after the equality-scan listing.
func (s *caseService) ListCases(ctx context.Context, callerUID string, filter CaseFilter) ([]*models.Case, error) {
	orgID, err := s.orgService.EnsureUserHasOrganization(ctx, callerUID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve caller organization: %w", err)
	}
	cases, err := s.caseRepo.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}

	filtered := cases[:0:0]
	for _, c := range cases {
		if matchesCaseFilter(c, filter) {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// matchesCaseFilter applies equality filters for status and client, and a
// case-insensitive substring search across the searchable text fields.
func matchesCaseFilter(c *models.Case, filter CaseFilter) bool {
	if filter.Status != "" && string(c.Status) != filter.Status {
		return false
	}
	if filter.ClientID != "" && c.ClientID != filter.ClientID {
		return false
	}
	if filter.Query != "" {
		q := strings.ToLower(filter.Query)
		haystack := strings.ToLower(strings.Join([]string{c.Title, c.CaseNumber, c.Court, c.Judge, c.Description}, "\n"))
		if !strings.Contains(haystack, q) {
			return false
		}
	}
	return true
}

// UpdateCase patches a case's fields.
func (s *caseService) UpdateCase(ctx context.Context, callerUID, caseID string, req models.UpdateCaseRequest) (*models.Case, error) {
	if _, err := s.authorize(ctx, callerUID, caseID); err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.ClientID != nil {
		fields["clientId"] = *req.ClientID
	}
	if req.CaseNumber != nil {
		fields["caseNumber"] = *req.CaseNumber
	}
	if req.Court != nil {
		fields["court"] = *req.Court
	}
	if req.Judge != nil {
		fields["judge"] = *req.Judge
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.NextHearing != nil {
		fields["nextHearing"] = *req.NextHearing
	}

	if len(fields) > 0 {
		if err := s.caseRepo.Update(ctx, caseID, fields); err != nil {
			return nil, fmt.Errorf("failed to update case '%s': %w", caseID, err)
		}
		s.recordActivity(ctx, callerUID, "CASE_UPDATE", caseID, nil)
	}
	return s.caseRepo.GetByID(ctx, caseID)
}

// DeleteCase removes a single case document and releases its counted slot.
// Child records are left in place; the surviving counts are logged so the
// orphaning is visible.
func (s *caseService) DeleteCase(ctx context.Context, callerUID, caseID string) error {
	c, err := s.authorize(ctx, callerUID, caseID)
	if err != nil {
		return err
	}

	if err := s.caseRepo.Delete(ctx, caseID); err != nil {
		return fmt.Errorf("failed to delete case '%s': %w", caseID, err)
	}
	if relErr := s.orgRepo.ReleaseCaseSlot(ctx, c.OrganizationID); relErr != nil {
		s.logger.Warn("failed to decrement currentCases after case deletion",
			zap.String("orgId", c.OrganizationID), zap.String("caseId", caseID), zap.Error(relErr))
	}

	s.logOrphanedRecords(ctx, caseID)
	s.recordActivity(ctx, callerUID, "CASE_DELETE", caseID, map[string]interface{}{"title": c.Title})
	return nil
}

// logOrphanedRecords surfaces how many child records a deleted case leaves
// behind. Counting failures are ignored; this is purely diagnostic.
func (s *caseService) logOrphanedRecords(ctx context.Context, caseID string) {
	hearings, _ := s.hearingRepo.CountByCase(ctx, caseID)
	tasks, _ := s.taskRepo.CountByCase(ctx, caseID)
	documents, _ := s.documentRepo.CountByCase(ctx, caseID)
	messages, _ := s.messageRepo.CountByCase(ctx, caseID)
	if hearings+tasks+documents+messages > 0 {
		s.logger.Info("case deleted with surviving child records",
			zap.String("caseId", caseID),
			zap.Int("hearings", hearings),
			zap.Int("tasks", tasks),
			zap.Int("documents", documents),
			zap.Int("messages", messages))
	}
}

func (s *caseService) recordActivity(ctx context.Context, userID, action, targetID string, details map[string]interface{}) {
	err := s.activityService.Record(ctx, models.ActivityLog{
		UserID:     userID,
		Action:     action,
		TargetType: "CASE",
		TargetID:   targetID,
		Details:    details,
	})
	if err != nil {
		s.logger.Warn("failed to record activity", zap.String("action", action), zap.Error(err))
	}
}

// --- Hearings ---

func (s *caseService) CreateHearing(ctx context.Context, callerUID, caseID string, req models.CreateHearingRequest) (*models.Hearing, error) {
	if _, err := s.authorize(ctx, callerUID, caseID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	hearing := &models.Hearing{
		CaseID:    caseID,
		Date:      req.Date,
		Court:     req.Court,
		Judge:     req.Judge,
		Purpose:   req.Purpose,
		Notes:     req.Notes,
		CreatedBy: callerUID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	id, err := s.hearingRepo.Create(ctx, hearing)
	if err != nil {
		return nil, fmt.Errorf("failed to create hearing: %w", err)
	}
	hearing.ID = id
	return hearing, nil
}

func (s *caseService) ListHearings(ctx context.Context, callerUID, caseID string) ([]*models.Hearing, error) {
	if _, err := s.authorize(ctx, callerUID, caseID); err != nil {
		return nil, err
	}
	hearings, err := s.hearingRepo.ListByCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list hearings for case '%s': %w", caseID, err)
	}
	return hearings, nil
}

func (s *caseService) UpdateHearing(ctx context.Context, callerUID, caseID, hearingID string, req models.UpdateHearingRequest) (*models.Hearing, error) {
	if _, err := s.authorize(ctx, callerUID, caseID); err != nil {
		return nil, err
	}
	hearing, err := s.hearingRepo.GetByID(ctx, hearingID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID '%s'", ErrHearingNotFound, hearingID)
		}
		return nil, fmt.Errorf("failed to load hearing '%s': %w", hearingID, err)
	}
	if hearing.CaseID != caseID {
		return nil, fmt.Errorf("%w: hearing '%s'", ErrRecordCaseMismatch, hearingID)
	}

	fields := make(map[string]interface{})
	if req.Date != nil {
		fields["date"] = *req.Date
	}
	if req.Court != nil {
		fields["court"] = *req.Court
	}
	if req.Judge != nil {
		fields["judge"] = *req.Judge
	}
	if req.Purpose != nil {
		fields["purpose"] = *req.Purpose
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}
	if req.Outcome != nil {
		fields["outcome"] = *req.Outcome
	}
	if len(fields) > 0 {
		if err := s.hearingRepo.Update(ctx, hearingID, fields); err != nil {
			return nil, fmt.Errorf("failed to update hearing '%s': %w", hearingID, err)
		}
	}
	return s.hearingRepo.GetByID(ctx, hearingID)
}

func (s *caseService) DeleteHearing(ctx context.Context, callerUID, caseID, hearingID string) error {
	if _, err := s.authorize(ctx, callerUID, caseID); err != nil {
		return err
	}
	hearing, err := s.hearingRepo.GetByID(ctx, hearingID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: ID '%s'", ErrHearingNotFound, hearingID)
		}
		return fmt.Errorf("failed to load hearing '%s': %w", hearingID, err)
	}
	if hearing.CaseID != caseID {
		return fmt.Errorf("%w: hearing '%s'", ErrRecordCaseMismatch, hearingID)
	}
	return s.hearingRepo.Delete(ctx, hearingID)
}

// --- Tasks ---

func (s *caseService) CreateTask(ctx context.Context, callerUID, caseID string, req models.CreateTaskRequest) (*models.Task, error) {
	if _, err := s.authorize(ctx, callerUID, caseID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &models.Task{
		CaseID:     caseID,
		Title:      req.Title,
		Details:    req.Details,
		AssignedTo: req.AssignedTo,
		DueDate:    req.DueDate,
		Status:     models.TaskPending,
		CreatedBy:  callerUID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	id, err := s.taskRepo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	task.ID = id
	return task, nil
}

func (s *caseService) ListTasks(ctx context.Context, callerUID, caseID string) ([]*models.Task, error) {
	if _, err := s.authorize(ctx, callerUID, caseID); err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.ListByCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks for case '%s': %w", caseID, err)
	}
	return tasks, nil
}

func (s *caseService) UpdateTask(ctx context.Context, callerUID, caseID, taskID string, req models.UpdateTaskRequest) (*models.Task, error) {
	if _, err := s.authorize(ctx, callerUID, caseID); err != nil {
		return nil, err
	}
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID '%s'", ErrTaskNotFound, taskID)
		}
		return nil, fmt.Errorf("failed to load task '%s': %w", taskID, err)
	}
	if task.CaseID != caseID {
		return nil, fmt.Errorf("%w: task '%s'", ErrRecordCaseMismatch, taskID)
	}

	fields := make(map[string]interface{})
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Details != nil {
		fields["details"] = *req.Details
	}
	if req.AssignedTo != nil {
		fields["assignedTo"] = *req.AssignedTo
	}
	if req.DueDate != nil {
		fields["dueDate"] = *req.DueDate
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if len(fields) > 0 {
		if err := s.taskRepo.Update(ctx, taskID, fields); err != nil {
			return nil, fmt.Errorf("failed to update task '%s': %w", taskID, err)
		}
	}
	return s.taskRepo.GetByID(ctx, taskID)
}

func (s *caseService) DeleteTask(ctx context.Context, callerUID, caseID, taskID string) error {
	if _, err := s.authorize(ctx, callerUID, caseID); err != nil {
		return err
	}
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: ID '%s'", ErrTaskNotFound, taskID)
		}
		return fmt.Errorf("failed to load task '%s': %w", taskID, err)
	}
	if task.CaseID != caseID {
		return fmt.Errorf("%w: task '%s'", ErrRecordCaseMismatch, taskID)
	}
	return s.taskRepo.Delete(ctx, taskID)
}

// ListPayments retrieves the fee records filed against a case.
func (s *caseService) ListPayments(ctx context.Context, callerUID, caseID string) ([]*models.Payment, error) {
	if _, err := s.authorize(ctx, callerUID, caseID); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListByCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for case '%s': %w", caseID, err)
	}
	return payments, nil
}
