package core

import (
	"context"
	"time"

	"casetrack-backend-go/internal/db"
	"casetrack-backend-go/internal/models"
)

// activityService implements the ActivityService interface.
type activityService struct {
	activityRepo db.ActivityRepository
}

// NewActivityService creates a new ActivityService instance.
func NewActivityService(ar db.ActivityRepository) ActivityService {
	return &activityService{activityRepo: ar}
}

func (s *activityService) Record(ctx context.Context, entry models.ActivityLog) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	return s.activityRepo.Create(ctx, entry)
}
