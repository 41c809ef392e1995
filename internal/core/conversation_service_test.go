package core_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"casetrack-backend-go/internal/core"
	"casetrack-backend-go/internal/models"
)

type conversationFixture struct {
	svc    core.ConversationService
	caseID string
}

func newConversationFixture(t *testing.T) *conversationFixture {
	t.Helper()
	orgRepo := newFakeOrgRepo()
	userRepo := newFakeUserRepo()
	caseRepo := newFakeCaseRepo()
	convRepo := newFakeConversationRepo()

	orgID := orgRepo.add(&models.Organization{
		SubscriptionStatus: models.SubscriptionActive,
		MaxCases:           100,
	})
	userRepo.users["uid-1"] = &models.User{ID: "uid-1", OrganizationID: orgID}

	activityService := core.NewActivityService(&fakeActivityRepo{})
	orgService := core.NewOrganizationService(
		orgRepo, userRepo, caseRepo, newFakeClientRepo(), activityService, zap.NewNop(),
	)
	quotaService := core.NewQuotaService(orgRepo, zap.NewNop())
	caseSvc := core.NewCaseService(
		caseRepo, orgRepo, newFakeHearingRepo(), newFakeTaskRepo(),
		newFakeDocumentRepo(), convRepo, newFakePaymentRepo(),
		orgService, quotaService, activityService, zap.NewNop(),
	)

	created, err := caseSvc.CreateCase(context.Background(), "uid-1", models.CreateCaseRequest{Title: "Discussed"})
	require.NoError(t, err)

	return &conversationFixture{
		svc:    core.NewConversationService(convRepo, caseRepo, orgService, zap.NewNop()),
		caseID: created.ID,
	}
}

func TestConversationService_PostAndList(t *testing.T) {
	ctx := context.Background()
	f := newConversationFixture(t)

	msg, err := f.svc.PostMessage(ctx, "uid-1", "Ada", f.caseID, "Filed the motion today.")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", msg.SenderID)
	assert.Equal(t, "Ada", msg.SenderName)
	assert.NotEmpty(t, msg.ID)

	messages, err := f.svc.ListMessages(ctx, "uid-1", f.caseID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "Filed the motion today.", messages[0].Text)
}

func TestConversationService_StreamMessages(t *testing.T) {
	f := newConversationFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := f.svc.StreamMessages(ctx, "uid-1", f.caseID)
	require.NoError(t, err)

	_, err = f.svc.PostMessage(ctx, "uid-1", "Ada", f.caseID, "hello")
	require.NoError(t, err)

	select {
	case msg := <-ch:
		require.NotNil(t, msg)
		assert.Equal(t, "hello", msg.Text)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for streamed message")
	}

	cancel()
	select {
	case _, open := <-ch:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for stream close")
	}
}

func TestConversationService_StreamRequiresAccess(t *testing.T) {
	f := newConversationFixture(t)
	_, err := f.svc.StreamMessages(context.Background(), "stranger", "no-such-case")
	assert.ErrorIs(t, err, core.ErrCaseNotFound)
}
