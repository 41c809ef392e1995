package core

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"casetrack-backend-go/internal/db"
	"casetrack-backend-go/internal/models"
)

// conversationService implements the ConversationService interface.
type conversationService struct {
	caseAccess
	conversationRepo db.ConversationRepository
	logger           *zap.Logger
}

// NewConversationService creates a new ConversationService instance.
func NewConversationService(
	cvr db.ConversationRepository,
	cr db.CaseRepository,
	os OrganizationService,
	logger *zap.Logger,
) ConversationService {
	return &conversationService{
		caseAccess:       caseAccess{caseRepo: cr, orgService: os},
		conversationRepo: cvr,
		logger:           logger,
	}
}

func (s *conversationService) PostMessage(ctx context.Context, callerUID, senderName, caseID, text string) (*models.ConversationMessage, error) {
	if _, err := s.authorize(ctx, callerUID, caseID); err != nil {
		return nil, err
	}

	msg := &models.ConversationMessage{
		CaseID:     caseID,
		SenderID:   callerUID,
		SenderName: senderName,
		Text:       text,
		SentAt:     time.Now().UTC(),
	}
	id, err := s.conversationRepo.Create(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("failed to post message to case '%s': %w", caseID, err)
	}
	msg.ID = id
	return msg, nil
}

func (s *conversationService) ListMessages(ctx context.Context, callerUID, caseID string) ([]*models.ConversationMessage, error) {
	if _, err := s.authorize(ctx, callerUID, caseID); err != nil {
		return nil, err
	}
	messages, err := s.conversationRepo.ListByCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages for case '%s': %w", caseID, err)
	}
	return messages, nil
}

func (s *conversationService) StreamMessages(ctx context.Context, callerUID, caseID string) (<-chan *models.ConversationMessage, error) {
	if _, err := s.authorize(ctx, callerUID, caseID); err != nil {
		return nil, err
	}
	ch, err := s.conversationRepo.Listen(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to case '%s' messages: %w", caseID, err)
	}
	s.logger.Debug("conversation stream opened", zap.String("caseId", caseID), zap.String("userId", callerUID))
	return ch, nil
}
