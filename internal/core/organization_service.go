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

// Sentinel identity of the system-created default organization. The isDefault
// flag is the authoritative selection key; the name/email pair survives only
// as a migration fallback for records written before the flag existed.
const (
	defaultOrganizationName  = "Default Organization"
	defaultOrganizationEmail = "default@casetrack.local"
)

// Custom errors for the OrganizationService.
var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrUnknownPlan          = errors.New("unknown subscription plan")
	ErrInvalidStatus        = errors.New("invalid subscription status")
)

// organizationService implements the OrganizationService interface.
type organizationService struct {
	orgRepo         db.OrganizationRepository
	userRepo        db.UserRepository
	caseRepo        db.CaseRepository
	clientRepo      db.ClientRepository
	activityService ActivityService
	logger          *zap.Logger
}

// NewOrganizationService creates a new OrganizationService instance.
func NewOrganizationService(
	or db.OrganizationRepository,
	ur db.UserRepository,
	cr db.CaseRepository,
	clr db.ClientRepository,
	as ActivityService,
	logger *zap.Logger,
) OrganizationService {
	return &organizationService{
		orgRepo:         or,
		userRepo:        ur,
		caseRepo:        cr,
		clientRepo:      clr,
		activityService: as,
		logger:          logger,
	}
}

// CreateOrganization registers a new tenant. The plan defaults to free;
// plans with a trial period start in trial status with a computed end date.
func (s *organizationService) CreateOrganization(ctx context.Context, creatorID string, req models.CreateOrganizationRequest) (*models.Organization, error) {
	plan := models.PlanFree
	if req.Plan != "" {
		plan = models.SubscriptionPlan(req.Plan)
	}
	limits, ok := models.LimitsFor(plan)
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownPlan, req.Plan)
	}

	now := time.Now().UTC()
	org := &models.Organization{
		Name:                  req.Name,
		Email:                 req.Email,
		Phone:                 req.Phone,
		Address:               req.Address,
		Domain:                req.Domain,
		SubscriptionPlan:      plan,
		SubscriptionStatus:    models.SubscriptionActive,
		SubscriptionStartDate: now,
		MaxUsers:              limits.MaxUsers,
		MaxCases:              limits.MaxCases,
		CreatedBy:             creatorID,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if limits.TrialDays > 0 {
		trialEnd := now.AddDate(0, 0, limits.TrialDays)
		org.SubscriptionStatus = models.SubscriptionTrial
		org.TrialEndDate = &trialEnd
	}

	id, err := s.orgRepo.Create(ctx, org)
	if err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}
	org.ID = id

	if auditErr := s.activityService.Record(ctx, models.ActivityLog{
		UserID:     creatorID,
		Action:     "ORG_CREATE",
		TargetType: "ORGANIZATION",
		TargetID:   id,
		Details:    map[string]interface{}{"name": org.Name, "plan": string(plan)},
	}); auditErr != nil {
		s.logger.Warn("failed to record ORG_CREATE activity", zap.String("orgId", id), zap.Error(auditErr))
	}

	return org, nil
}

// GetOrganization retrieves an organization by ID.
func (s *organizationService) GetOrganization(ctx context.Context, id string) (*models.Organization, error) {
	org, err := s.orgRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID '%s'", ErrOrganizationNotFound, id)
		}
		return nil, fmt.Errorf("failed to get organization '%s': %w", id, err)
	}
	return org, nil
}

// ListOrganizations returns every registered organization.
func (s *organizationService) ListOrganizations(ctx context.Context) ([]*models.Organization, error) {
	orgs, err := s.orgRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}

// UpdateSubscription changes an organization's plan and status, refreshing
// the quota limits from the plan catalog.
func (s *organizationService) UpdateSubscription(ctx context.Context, id string, req models.UpdateSubscriptionRequest) (*models.Organization, error) {
	if _, err := s.GetOrganization(ctx, id); err != nil {
		return nil, err
	}

	plan := models.SubscriptionPlan(req.Plan)
	limits, ok := models.LimitsFor(plan)
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownPlan, req.Plan)
	}

	status := models.SubscriptionActive
	if req.Status != "" {
		status = models.SubscriptionStatus(req.Status)
		switch status {
		case models.SubscriptionActive, models.SubscriptionTrial, models.SubscriptionExpired, models.SubscriptionCancelled:
		default:
			return nil, fmt.Errorf("%w: '%s'", ErrInvalidStatus, req.Status)
		}
	}

	fields := map[string]interface{}{
		"subscriptionPlan":   string(plan),
		"subscriptionStatus": string(status),
		"maxUsers":           limits.MaxUsers,
		"maxCases":           limits.MaxCases,
	}
	if status == models.SubscriptionTrial && limits.TrialDays > 0 {
		fields["trialEndDate"] = time.Now().UTC().AddDate(0, 0, limits.TrialDays)
	}

	if err := s.orgRepo.Update(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("failed to update subscription for organization '%s': %w", id, err)
	}

	if auditErr := s.activityService.Record(ctx, models.ActivityLog{
		Action:     "ORG_SUBSCRIPTION_CHANGE",
		TargetType: "ORGANIZATION",
		TargetID:   id,
		Details:    map[string]interface{}{"plan": string(plan), "status": string(status)},
	}); auditErr != nil {
		s.logger.Warn("failed to record ORG_SUBSCRIPTION_CHANGE activity", zap.String("orgId", id), zap.Error(auditErr))
	}

	return s.GetOrganization(ctx, id)
}

// GetUsageStats counts the organization's stored records. Any backend failure
// degrades to a zeroed count for that dimension instead of failing the call.
func (s *organizationService) GetUsageStats(ctx context.Context, id string) models.UsageStats {
	var stats models.UsageStats

	users, err := s.userRepo.CountByOrganization(ctx, id)
	if err != nil {
		s.logger.Warn("usage stats: user count unavailable", zap.String("orgId", id), zap.Error(err))
	} else {
		stats.Users = users
	}

	cases, err := s.caseRepo.CountByOrganization(ctx, id)
	if err != nil {
		s.logger.Warn("usage stats: case count unavailable", zap.String("orgId", id), zap.Error(err))
	} else {
		stats.Cases = cases
	}

	clients, err := s.clientRepo.CountByOrganization(ctx, id)
	if err != nil {
		s.logger.Warn("usage stats: client count unavailable", zap.String("orgId", id), zap.Error(err))
	} else {
		stats.Clients = clients
	}

	return stats
}

// GetOrCreateDefaultOrganization finds the singleton default organization or
// creates it on the free plan.
//
// The scan prefers the authoritative isDefault flag. A record matching the
// legacy sentinel name/email is accepted as a fallback for pre-flag data, and
// that match is logged so the record can be migrated.
func (s *organizationService) GetOrCreateDefaultOrganization(ctx context.Context) (string, error) {
	orgs, err := s.orgRepo.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to scan organizations for default: %w", err)
	}

	var legacyMatch *models.Organization
	for _, org := range orgs {
		if org.IsDefault {
			return org.ID, nil
		}
		if legacyMatch == nil && (org.Name == defaultOrganizationName || org.Email == defaultOrganizationEmail) {
			legacyMatch = org
		}
	}
	if legacyMatch != nil {
		s.logger.Warn("default organization selected via legacy name/email match; set isDefault on this record",
			zap.String("orgId", legacyMatch.ID), zap.String("name", legacyMatch.Name))
		return legacyMatch.ID, nil
	}

	limits := models.LimitsOrFree(models.PlanFree)
	now := time.Now().UTC()
	org := &models.Organization{
		Name:                  defaultOrganizationName,
		Email:                 defaultOrganizationEmail,
		SubscriptionPlan:      models.PlanFree,
		SubscriptionStatus:    models.SubscriptionActive,
		SubscriptionStartDate: now,
		MaxUsers:              limits.MaxUsers,
		MaxCases:              limits.MaxCases,
		IsDefault:             true,
		CreatedBy:             "system",
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	id, err := s.orgRepo.Create(ctx, org)
	if err != nil {
		return "", fmt.Errorf("failed to create default organization: %w", err)
	}
	s.logger.Info("created default organization", zap.String("orgId", id))
	return id, nil
}

// EnsureUserHasOrganization guarantees the user ends up with some
// organization, repairing or materializing the user record if needed.
//
// Branches, in order: missing user record (synthesize a minimal lawyer record
// in the default organization), record with an organization (no-op, the common
// cheap path), record without one (patch it in). The currentUsers counter is
// incremented once per assignment.
func (s *organizationService) EnsureUserHasOrganization(ctx context.Context, userID string) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		return "", fmt.Errorf("failed to load user '%s': %w", userID, err)
	}

	if err != nil { // user record does not exist
		orgID, err := s.GetOrCreateDefaultOrganization(ctx)
		if err != nil {
			return "", err
		}
		now := time.Now().UTC()
		newUser := &models.User{
			ID:             userID,
			Role:           models.RoleLawyer,
			OrganizationID: orgID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if createErr := s.userRepo.Create(ctx, newUser); createErr != nil {
			return "", fmt.Errorf("failed to materialize user '%s': %w", userID, createErr)
		}
		if incErr := s.orgRepo.IncrementUsers(ctx, orgID, 1); incErr != nil {
			// Counter drift is tolerated over failing the assignment.
			s.logger.Warn("failed to increment currentUsers after user materialization",
				zap.String("orgId", orgID), zap.String("userId", userID), zap.Error(incErr))
		}
		return orgID, nil
	}

	if user.OrganizationID != "" {
		return user.OrganizationID, nil
	}

	orgID, err := s.GetOrCreateDefaultOrganization(ctx)
	if err != nil {
		return "", err
	}
	if err := s.userRepo.Update(ctx, userID, map[string]interface{}{"organizationId": orgID}); err != nil {
		return "", fmt.Errorf("failed to assign organization to user '%s': %w", userID, err)
	}
	if incErr := s.orgRepo.IncrementUsers(ctx, orgID, 1); incErr != nil {
		s.logger.Warn("failed to increment currentUsers after organization assignment",
			zap.String("orgId", orgID), zap.String("userId", userID), zap.Error(incErr))
	}
	return orgID, nil
}
