package core

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"casetrack-backend-go/internal/db"
	"casetrack-backend-go/internal/models"
)

// quotaService implements the QuotaService interface. All checks are advisory
// reads over the organization's stored counters; two concurrent callers can
// both see headroom. The transactional reservations in the organization
// repository are what actually prevent overshoot on mutating paths.
type quotaService struct {
	orgRepo db.OrganizationRepository
	logger  *zap.Logger
}

// NewQuotaService creates a new QuotaService instance.
func NewQuotaService(orgRepo db.OrganizationRepository, logger *zap.Logger) QuotaService {
	return &quotaService{orgRepo: orgRepo, logger: logger}
}

// CheckSubscription denies expired and cancelled subscriptions, and trials
// whose end date has passed.
func (s *quotaService) CheckSubscription(ctx context.Context, organizationID string) SubscriptionCheck {
	org, err := s.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		s.logger.Warn("subscription check failed to load organization", zap.String("orgId", organizationID), zap.Error(err))
		return SubscriptionCheck{Allowed: false, Error: "organization could not be loaded"}
	}

	switch org.SubscriptionStatus {
	case models.SubscriptionExpired:
		return SubscriptionCheck{Allowed: false, Error: "subscription has expired", Organization: org}
	case models.SubscriptionCancelled:
		return SubscriptionCheck{Allowed: false, Error: "subscription has been cancelled", Organization: org}
	case models.SubscriptionTrial:
		if org.TrialEndDate != nil && time.Now().After(*org.TrialEndDate) {
			return SubscriptionCheck{
				Allowed:      false,
				Error:        fmt.Sprintf("trial period expired on %s", org.TrialEndDate.Format("2006-01-02")),
				Organization: org,
			}
		}
	}
	return SubscriptionCheck{Allowed: true, Organization: org}
}

// CanAddUser reports whether the organization has a free seat.
// maxUsers of -1 means unlimited.
func (s *quotaService) CanAddUser(ctx context.Context, organizationID string) UserQuotaCheck {
	org, err := s.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		s.logger.Warn("user quota check failed to load organization", zap.String("orgId", organizationID), zap.Error(err))
		return UserQuotaCheck{Allowed: false, Error: "organization could not be loaded"}
	}

	check := UserQuotaCheck{CurrentUsers: org.CurrentUsers, MaxUsers: org.MaxUsers}
	if org.MaxUsers == -1 {
		check.Allowed = true
		return check
	}
	if org.CurrentUsers >= org.MaxUsers {
		check.Error = fmt.Sprintf("user limit reached for plan '%s' (%d/%d)", org.SubscriptionPlan, org.CurrentUsers, org.MaxUsers)
		return check
	}
	check.Allowed = true
	return check
}

// CanAddCase reports whether the organization can open another case.
// maxCases of -1 means unlimited.
func (s *quotaService) CanAddCase(ctx context.Context, organizationID string) CaseQuotaCheck {
	org, err := s.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		s.logger.Warn("case quota check failed to load organization", zap.String("orgId", organizationID), zap.Error(err))
		return CaseQuotaCheck{Allowed: false, Error: "organization could not be loaded"}
	}

	check := CaseQuotaCheck{CurrentCases: org.CurrentCases, MaxCases: org.MaxCases}
	if org.MaxCases == -1 {
		check.Allowed = true
		return check
	}
	if org.CurrentCases >= org.MaxCases {
		check.Error = fmt.Sprintf("case limit reached for plan '%s' (%d/%d)", org.SubscriptionPlan, org.CurrentCases, org.MaxCases)
		return check
	}
	check.Allowed = true
	return check
}
