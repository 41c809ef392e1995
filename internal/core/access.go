package core

import (
	"context"
	"errors"
	"fmt"

	"casetrack-backend-go/internal/db"
	"casetrack-backend-go/internal/models"
)

// Shared access-control errors.
var (
	ErrCaseNotFound    = errors.New("case not found")
	ErrForbiddenAccess = errors.New("caller does not have access to this record")
)

// caseAccess is the shared ownership check for anything scoped to a case:
// the caller's organization must equal the case's organization. Ownership is
// plain field equality, there is no capability system.
type caseAccess struct {
	caseRepo   db.CaseRepository
	orgService OrganizationService
}

// authorize loads the case and verifies the caller belongs to its
// organization. The caller's organization is resolved through the
// bootstrapper, so users without one are assigned before the comparison.
func (a caseAccess) authorize(ctx context.Context, callerUID, caseID string) (*models.Case, error) {
	c, err := a.caseRepo.GetByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID '%s'", ErrCaseNotFound, caseID)
		}
		return nil, fmt.Errorf("failed to load case '%s': %w", caseID, err)
	}

	orgID, err := a.orgService.EnsureUserHasOrganization(ctx, callerUID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve caller organization: %w", err)
	}
	if c.OrganizationID != orgID {
		return nil, fmt.Errorf("%w: case '%s'", ErrForbiddenAccess, caseID)
	}
	return c, nil
}
