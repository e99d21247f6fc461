package service

import (
	"coachvision/backend/internal/domain"
	"errors"
	"fmt"
)

// --- Error Definitions ---
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrUserNotFound    = errors.New("user not found")

	ErrPlanNotFound      = errors.New("training plan not found")
	ErrPlanAccessDenied  = errors.New("not authorized to access this training plan")
	ErrInvalidPlanType   = errors.New("unsupported plan type")
	ErrProfileIncomplete = errors.New("user profile is incomplete")
	ErrInvalidDayEntry   = errors.New("invalid day entry")
	ErrPlanConflict      = errors.New("training plan was modified concurrently")

	// ErrInvalidDay is the domain error for names outside monday..sunday.
	ErrInvalidDay = domain.ErrInvalidDay

	ErrGenerationFailed = errors.New("plan generation failed")
	ErrStoreFailure     = errors.New("store failure")
	// ErrReplaceInconsistency means the old active plans were deleted but no
	// replacement was stored. The user has no active plan afterwards.
	ErrReplaceInconsistency = errors.New("replace deleted the active plans but could not create a new one")
)

func storeFailure(err error) error {
	return fmt.Errorf("%w: %w", ErrStoreFailure, err)
}
