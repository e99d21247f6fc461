package repository

import (
	"coachvision/backend/internal/domain"
	"context"
)

// Error constants for repository layer
var (
	ErrNotFound        = RepositoryError("not found")
	ErrDuplicate       = RepositoryError("duplicate key")
	ErrVersionConflict = RepositoryError("version conflict")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	// Create assigns ID and timestamps. A taken email yields ErrDuplicate.
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
}

// PlanRepository defines the interface for interacting with training plan data.
type PlanRepository interface {
	// Create assigns ID and sets Version to 1. CreatedAt is kept when already set.
	Create(ctx context.Context, plan *domain.TrainingPlan) error
	GetByID(ctx context.Context, id string) (*domain.TrainingPlan, error)
	// ListByUser returns the user's plans, newest first. No plans is not an error.
	ListByUser(ctx context.Context, userID string) ([]domain.TrainingPlan, error)
	// Update writes content, completion set and active flag if the stored
	// version still equals plan.Version, then increments plan.Version.
	// A stale version yields ErrVersionConflict, a missing plan ErrNotFound.
	Update(ctx context.Context, plan *domain.TrainingPlan) error
	Delete(ctx context.Context, id string) error
	// DeleteActiveByUser removes every active plan of the user and reports how many.
	DeleteActiveByUser(ctx context.Context, userID string) (int64, error)
}

// VideoAnalysisRepository defines the interface for uploaded video records.
type VideoAnalysisRepository interface {
	Create(ctx context.Context, analysis *domain.VideoAnalysis) error
	GetByID(ctx context.Context, id string) (*domain.VideoAnalysis, error)
	ListByUser(ctx context.Context, userID string) ([]domain.VideoAnalysis, error)
	Delete(ctx context.Context, id string) error
}
