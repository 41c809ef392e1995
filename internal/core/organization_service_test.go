package core_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"casetrack-backend-go/internal/core"
	"casetrack-backend-go/internal/models"
)

type orgFixture struct {
	svc        core.OrganizationService
	orgRepo    *fakeOrgRepo
	userRepo   *fakeUserRepo
	caseRepo   *fakeCaseRepo
	clientRepo *fakeClientRepo
	activity   *fakeActivityRepo
}

func newOrgFixture() *orgFixture {
	f := &orgFixture{
		orgRepo:    newFakeOrgRepo(),
		userRepo:   newFakeUserRepo(),
		caseRepo:   newFakeCaseRepo(),
		clientRepo: newFakeClientRepo(),
		activity:   &fakeActivityRepo{},
	}
	f.svc = core.NewOrganizationService(
		f.orgRepo, f.userRepo, f.caseRepo, f.clientRepo,
		core.NewActivityService(f.activity), zap.NewNop(),
	)
	return f
}

func TestOrganizationService_CreateOrganization(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to the free plan with its limits", func(t *testing.T) {
		f := newOrgFixture()
		org, err := f.svc.CreateOrganization(ctx, "user-1", models.CreateOrganizationRequest{Name: "Acme Legal"})
		require.NoError(t, err)
		assert.Equal(t, models.PlanFree, org.SubscriptionPlan)
		assert.Equal(t, models.SubscriptionActive, org.SubscriptionStatus)
		assert.Equal(t, 2, org.MaxUsers)
		assert.Equal(t, 10, org.MaxCases)
		assert.Equal(t, "user-1", org.CreatedBy)
		assert.Nil(t, org.TrialEndDate)
	})

	t.Run("plans with a trial period start in trial status", func(t *testing.T) {
		f := newOrgFixture()
		org, err := f.svc.CreateOrganization(ctx, "user-1", models.CreateOrganizationRequest{
			Name: "Acme Legal",
			Plan: "starter",
		})
		require.NoError(t, err)
		assert.Equal(t, models.SubscriptionTrial, org.SubscriptionStatus)
		require.NotNil(t, org.TrialEndDate)
	})

	t.Run("unknown plan is rejected", func(t *testing.T) {
		f := newOrgFixture()
		_, err := f.svc.CreateOrganization(ctx, "user-1", models.CreateOrganizationRequest{
			Name: "Acme Legal",
			Plan: "platinum",
		})
		assert.ErrorIs(t, err, core.ErrUnknownPlan)
	})

	t.Run("records an activity entry", func(t *testing.T) {
		f := newOrgFixture()
		_, err := f.svc.CreateOrganization(ctx, "user-1", models.CreateOrganizationRequest{Name: "Acme Legal"})
		require.NoError(t, err)
		require.Len(t, f.activity.entries, 1)
		assert.Equal(t, "ORG_CREATE", f.activity.entries[0].Action)
	})
}

func TestOrganizationService_UpdateSubscription(t *testing.T) {
	ctx := context.Background()

	t.Run("refreshes limits from the plan catalog", func(t *testing.T) {
		f := newOrgFixture()
		id := f.orgRepo.add(&models.Organization{
			SubscriptionPlan: models.PlanFree,
			MaxUsers:         2,
			MaxCases:         10,
		})

		org, err := f.svc.UpdateSubscription(ctx, id, models.UpdateSubscriptionRequest{Plan: "professional"})
		require.NoError(t, err)
		assert.Equal(t, models.PlanProfessional, org.SubscriptionPlan)
		assert.Equal(t, models.SubscriptionActive, org.SubscriptionStatus)
		assert.Equal(t, 20, org.MaxUsers)
		assert.Equal(t, 1000, org.MaxCases)
	})

	t.Run("rejects unknown status values", func(t *testing.T) {
		f := newOrgFixture()
		id := f.orgRepo.add(&models.Organization{})
		_, err := f.svc.UpdateSubscription(ctx, id, models.UpdateSubscriptionRequest{Plan: "free", Status: "paused"})
		assert.ErrorIs(t, err, core.ErrInvalidStatus)
	})

	t.Run("missing organization yields not-found", func(t *testing.T) {
		f := newOrgFixture()
		_, err := f.svc.UpdateSubscription(ctx, "missing", models.UpdateSubscriptionRequest{Plan: "free"})
		assert.ErrorIs(t, err, core.ErrOrganizationNotFound)
	})
}

func TestOrganizationService_GetUsageStats(t *testing.T) {
	ctx := context.Background()

	t.Run("counts users, cases and clients", func(t *testing.T) {
		f := newOrgFixture()
		id := f.orgRepo.add(&models.Organization{})
		f.userRepo.users["u1"] = &models.User{ID: "u1", OrganizationID: id}
		f.userRepo.users["u2"] = &models.User{ID: "u2", OrganizationID: id}
		_, _ = f.caseRepo.Create(ctx, &models.Case{OrganizationID: id})
		_, _ = f.clientRepo.Create(ctx, &models.Client{OrganizationID: id})

		stats := f.svc.GetUsageStats(ctx, id)
		assert.Equal(t, models.UsageStats{Users: 2, Cases: 1, Clients: 1}, stats)
	})

	t.Run("a failing count degrades to zero instead of erroring", func(t *testing.T) {
		f := newOrgFixture()
		id := f.orgRepo.add(&models.Organization{})
		f.userRepo.users["u1"] = &models.User{ID: "u1", OrganizationID: id}
		f.caseRepo.errCount = assert.AnError

		stats := f.svc.GetUsageStats(ctx, id)
		assert.Equal(t, 1, stats.Users)
		assert.Zero(t, stats.Cases)
	})
}

func TestOrganizationService_GetOrCreateDefaultOrganization(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the default organization when none exists", func(t *testing.T) {
		f := newOrgFixture()
		id, err := f.svc.GetOrCreateDefaultOrganization(ctx)
		require.NoError(t, err)

		org := f.orgRepo.orgs[id]
		require.NotNil(t, org)
		assert.True(t, org.IsDefault)
		assert.Equal(t, models.PlanFree, org.SubscriptionPlan)
		assert.Equal(t, "system", org.CreatedBy)
		assert.Zero(t, org.CurrentUsers)
	})

	t.Run("is idempotent for sequential callers", func(t *testing.T) {
		f := newOrgFixture()
		first, err := f.svc.GetOrCreateDefaultOrganization(ctx)
		require.NoError(t, err)
		second, err := f.svc.GetOrCreateDefaultOrganization(ctx)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Len(t, f.orgRepo.orgs, 1)
	})

	t.Run("the isDefault flag wins over a sentinel-named record", func(t *testing.T) {
		f := newOrgFixture()
		f.orgRepo.add(&models.Organization{Name: "Default Organization"})
		flagged := f.orgRepo.add(&models.Organization{Name: "Renamed Tenant", IsDefault: true})

		id, err := f.svc.GetOrCreateDefaultOrganization(ctx)
		require.NoError(t, err)
		assert.Equal(t, flagged, id)
	})

	t.Run("falls back to the legacy name match when no record carries the flag", func(t *testing.T) {
		f := newOrgFixture()
		legacy := f.orgRepo.add(&models.Organization{Name: "Default Organization"})

		id, err := f.svc.GetOrCreateDefaultOrganization(ctx)
		require.NoError(t, err)
		assert.Equal(t, legacy, id)
		assert.Len(t, f.orgRepo.orgs, 1)
	})
}

func TestOrganizationService_EnsureUserHasOrganization(t *testing.T) {
	ctx := context.Background()

	t.Run("materializes a missing user into the default organization", func(t *testing.T) {
		f := newOrgFixture()
		orgID, err := f.svc.EnsureUserHasOrganization(ctx, "uid-1")
		require.NoError(t, err)

		user := f.userRepo.users["uid-1"]
		require.NotNil(t, user)
		assert.Equal(t, orgID, user.OrganizationID)
		assert.Equal(t, models.RoleLawyer, user.Role)
		assert.Equal(t, 1, f.orgRepo.orgs[orgID].CurrentUsers)
	})

	t.Run("user with an organization is a no-op", func(t *testing.T) {
		f := newOrgFixture()
		existing := f.orgRepo.add(&models.Organization{CurrentUsers: 3})
		f.userRepo.users["uid-1"] = &models.User{ID: "uid-1", OrganizationID: existing}

		orgID, err := f.svc.EnsureUserHasOrganization(ctx, "uid-1")
		require.NoError(t, err)
		assert.Equal(t, existing, orgID)
		assert.Equal(t, 3, f.orgRepo.orgs[existing].CurrentUsers)
		assert.Len(t, f.orgRepo.orgs, 1)
	})

	t.Run("user without an organization gets the default patched in", func(t *testing.T) {
		f := newOrgFixture()
		f.userRepo.users["uid-1"] = &models.User{ID: "uid-1", Email: "a@b.c"}

		orgID, err := f.svc.EnsureUserHasOrganization(ctx, "uid-1")
		require.NoError(t, err)
		assert.Equal(t, orgID, f.userRepo.users["uid-1"].OrganizationID)
		assert.Equal(t, 1, f.orgRepo.orgs[orgID].CurrentUsers)
	})

	t.Run("repeat calls only count the user once", func(t *testing.T) {
		f := newOrgFixture()
		orgID, err := f.svc.EnsureUserHasOrganization(ctx, "uid-1")
		require.NoError(t, err)
		_, err = f.svc.EnsureUserHasOrganization(ctx, "uid-1")
		require.NoError(t, err)
		assert.Equal(t, 1, f.orgRepo.orgs[orgID].CurrentUsers)
	})

	t.Run("scan failure surfaces as an error the caller can degrade on", func(t *testing.T) {
		f := newOrgFixture()
		f.orgRepo.errList = assert.AnError
		_, err := f.svc.EnsureUserHasOrganization(ctx, "uid-1")
		assert.Error(t, err)
	})
}
