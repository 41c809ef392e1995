package api_test

import (
	"context"

	"github.com/gin-gonic/gin"

	"casetrack-backend-go/internal/core"
	"casetrack-backend-go/internal/models"
)

// testAuth stands in for the Firebase token middleware, injecting the claims
// the real middleware would set.
func testAuth(uid, name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid != "" {
			c.Set("userID", uid)
		}
		if name != "" {
			c.Set("userDisplayName", name)
		}
		c.Next()
	}
}

type fakeUserService struct {
	profile *models.UserProfile
	updated *models.User
	err     error
}

func (s *fakeUserService) GetProfile(context.Context, string) *models.UserProfile {
	return s.profile
}

func (s *fakeUserService) UpdateProfile(context.Context, string, models.UpdateUserRequest) (*models.User, error) {
	return s.updated, s.err
}

type fakeOrgService struct {
	org   *models.Organization
	orgs  []*models.Organization
	stats models.UsageStats
	err   error
}

func (s *fakeOrgService) CreateOrganization(context.Context, string, models.CreateOrganizationRequest) (*models.Organization, error) {
	return s.org, s.err
}

func (s *fakeOrgService) GetOrganization(context.Context, string) (*models.Organization, error) {
	return s.org, s.err
}

func (s *fakeOrgService) ListOrganizations(context.Context) ([]*models.Organization, error) {
	return s.orgs, s.err
}

func (s *fakeOrgService) UpdateSubscription(context.Context, string, models.UpdateSubscriptionRequest) (*models.Organization, error) {
	return s.org, s.err
}

func (s *fakeOrgService) GetUsageStats(context.Context, string) models.UsageStats {
	return s.stats
}

func (s *fakeOrgService) GetOrCreateDefaultOrganization(context.Context) (string, error) {
	if s.org != nil {
		return s.org.ID, s.err
	}
	return "", s.err
}

func (s *fakeOrgService) EnsureUserHasOrganization(context.Context, string) (string, error) {
	if s.org != nil {
		return s.org.ID, s.err
	}
	return "", s.err
}

type fakeCaseService struct {
	kase  *models.Case
	cases []*models.Case
	err   error

	lastFilter core.CaseFilter
}

func (s *fakeCaseService) CreateCase(context.Context, string, models.CreateCaseRequest) (*models.Case, error) {
	return s.kase, s.err
}

func (s *fakeCaseService) GetCase(context.Context, string, string) (*models.Case, error) {
	return s.kase, s.err
}

func (s *fakeCaseService) ListCases(_ context.Context, _ string, filter core.CaseFilter) ([]*models.Case, error) {
	s.lastFilter = filter
	return s.cases, s.err
}

func (s *fakeCaseService) UpdateCase(context.Context, string, string, models.UpdateCaseRequest) (*models.Case, error) {
	return s.kase, s.err
}

func (s *fakeCaseService) DeleteCase(context.Context, string, string) error {
	return s.err
}

func (s *fakeCaseService) CreateHearing(context.Context, string, string, models.CreateHearingRequest) (*models.Hearing, error) {
	return nil, s.err
}

func (s *fakeCaseService) ListHearings(context.Context, string, string) ([]*models.Hearing, error) {
	return nil, s.err
}

func (s *fakeCaseService) UpdateHearing(context.Context, string, string, string, models.UpdateHearingRequest) (*models.Hearing, error) {
	return nil, s.err
}

func (s *fakeCaseService) DeleteHearing(context.Context, string, string, string) error {
	return s.err
}

func (s *fakeCaseService) CreateTask(context.Context, string, string, models.CreateTaskRequest) (*models.Task, error) {
	return nil, s.err
}

func (s *fakeCaseService) ListTasks(context.Context, string, string) ([]*models.Task, error) {
	return nil, s.err
}

func (s *fakeCaseService) UpdateTask(context.Context, string, string, string, models.UpdateTaskRequest) (*models.Task, error) {
	return nil, s.err
}

func (s *fakeCaseService) DeleteTask(context.Context, string, string, string) error {
	return s.err
}

func (s *fakeCaseService) ListPayments(context.Context, string, string) ([]*models.Payment, error) {
	return nil, s.err
}
