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

// ErrUserNotFound is returned when a user record is required and absent.
var ErrUserNotFound = errors.New("user not found")

// lookupOutcome tags the result of one provider attempt in the profile
// resolution chain.
type lookupOutcome int

const (
	lookupFound lookupOutcome = iota
	lookupNotFound
	lookupUnavailable
)

// userService implements the UserService interface.
type userService struct {
	userRepo   db.UserRepository
	orgRepo    db.OrganizationRepository
	identity   IdentityProvider
	orgService OrganizationService
	logger     *zap.Logger
}

// NewUserService creates a new UserService instance.
func NewUserService(
	ur db.UserRepository,
	or db.OrganizationRepository,
	identity IdentityProvider,
	os OrganizationService,
	logger *zap.Logger,
) UserService {
	return &userService{
		userRepo:   ur,
		orgRepo:    or,
		identity:   identity,
		orgService: os,
		logger:     logger,
	}
}

// lookupFromStore resolves the user from the document store.
func (s *userService) lookupFromStore(ctx context.Context, userID string) (*models.User, lookupOutcome) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, lookupNotFound
		}
		s.logger.Warn("user store lookup unavailable", zap.String("userId", userID), zap.Error(err))
		return nil, lookupUnavailable
	}
	return user, lookupFound
}

// lookupFromIdentity resolves the user from the identity provider and
// persists the materialized record best-effort.
func (s *userService) lookupFromIdentity(ctx context.Context, userID string) (*models.User, lookupOutcome) {
	user, err := s.identity.LookupUser(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, lookupNotFound
		}
		s.logger.Warn("identity provider lookup unavailable", zap.String("userId", userID), zap.Error(err))
		return nil, lookupUnavailable
	}

	now := time.Now().UTC()
	user.Role = models.RoleLawyer
	user.CreatedAt = now
	user.UpdatedAt = now
	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Warn("failed to persist user materialized from identity provider",
			zap.String("userId", userID), zap.Error(err))
	}
	return user, lookupFound
}

// resolveUser walks the provider chain and short-circuits on the first Found.
// The chain always terminates with a synthesized default record, so the
// result is never nil.
func (s *userService) resolveUser(ctx context.Context, userID string) *models.User {
	providers := []struct {
		name string
		fn   func(context.Context, string) (*models.User, lookupOutcome)
	}{
		{"store", s.lookupFromStore},
		{"identity", s.lookupFromIdentity},
	}

	for _, p := range providers {
		user, outcome := p.fn(ctx, userID)
		if outcome == lookupFound {
			return user
		}
	}

	s.logger.Info("synthesizing default user record", zap.String("userId", userID))
	now := time.Now().UTC()
	return &models.User{
		ID:        userID,
		Role:      models.RoleLawyer,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GetProfile returns the user merged with their organization. Every failure
// degrades instead of erroring: an unreachable backend yields a synthesized
// user, a failed organization resolution yields a profile without one.
func (s *userService) GetProfile(ctx context.Context, userID string) *models.UserProfile {
	user := s.resolveUser(ctx, userID)

	if user.OrganizationID == "" {
		orgID, err := s.orgService.EnsureUserHasOrganization(ctx, userID)
		if err != nil {
			s.logger.Warn("continuing without organization", zap.String("userId", userID), zap.Error(err))
		} else {
			user.OrganizationID = orgID
		}
	}

	profile := &models.UserProfile{User: user}
	if user.OrganizationID != "" {
		org, err := s.orgRepo.GetByID(ctx, user.OrganizationID)
		if err != nil {
			s.logger.Warn("failed to load organization for profile",
				zap.String("userId", userID), zap.String("orgId", user.OrganizationID), zap.Error(err))
		} else {
			profile.Organization = org
		}
	}
	return profile
}

// UpdateProfile patches the caller-editable fields of a user record.
func (s *userService) UpdateProfile(ctx context.Context, userID string, req models.UpdateUserRequest) (*models.User, error) {
	fields := make(map[string]interface{})
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.FirmName != nil {
		fields["firmName"] = *req.FirmName
	}
	if req.LogoURL != nil {
		fields["logoUrl"] = *req.LogoURL
	}

	if len(fields) > 0 {
		if err := s.userRepo.Update(ctx, userID, fields); err != nil {
			return nil, fmt.Errorf("failed to update user '%s': %w", userID, err)
		}
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID '%s'", ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("failed to reload user '%s': %w", userID, err)
	}
	return user, nil
}
