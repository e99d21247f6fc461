package service

import (
	"coachvision/backend/internal/domain"
	"coachvision/backend/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// PlanContentGenerator turns a complete user profile into a validated weekly plan document.
type PlanContentGenerator interface {
	Generate(ctx context.Context, user *domain.User, planType domain.PlanType) (domain.PlanContent, error)
}

// PlanService manages the lifecycle of training plans. Every method takes the
// authenticated caller's id; plans owned by someone else yield ErrPlanAccessDenied.
type PlanService interface {
	Create(ctx context.Context, userID string, planType domain.PlanType) (*domain.TrainingPlan, error)
	Replace(ctx context.Context, userID string, planType domain.PlanType) (*domain.TrainingPlan, error)
	List(ctx context.Context, userID string) ([]domain.TrainingPlan, error)
	ActivePlan(ctx context.Context, userID string) (*domain.TrainingPlan, error)
	Get(ctx context.Context, userID, planID string) (*domain.TrainingPlan, error)
	ToggleDayCompletion(ctx context.Context, userID, planID, day string) (*domain.TrainingPlan, error)
	SetCompletedDays(ctx context.Context, userID, planID string, days []string, expectedVersion int64) (*domain.TrainingPlan, error)
	EditDay(ctx context.Context, userID, planID, day string, entry domain.DayEntry) (*domain.TrainingPlan, error)
	Delete(ctx context.Context, userID, planID string) error
}

type planService struct {
	planRepo  repository.PlanRepository
	userRepo  repository.UserRepository
	generator PlanContentGenerator
	logger    *zap.Logger
	now       func() time.Time
}

// NewPlanService creates a new instance of planService.
func NewPlanService(
	planRepo repository.PlanRepository,
	userRepo repository.UserRepository,
	generator PlanContentGenerator,
	logger *zap.Logger,
) PlanService {
	return &planService{
		planRepo:  planRepo,
		userRepo:  userRepo,
		generator: generator,
		logger:    logger.Named("plans"),
		now:       time.Now,
	}
}

// Create generates and stores a new active plan with no completed days.
// A generator failure stores nothing and is not retried.
func (s *planService) Create(ctx context.Context, userID string, planType domain.PlanType) (*domain.TrainingPlan, error) {
	user, err := s.prepare(ctx, userID, planType)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, user, planType)
}

// Replace deletes every active plan of the user, then creates a new one.
// The two steps are not atomic: if creation fails after the delete the error
// wraps ErrReplaceInconsistency and the user is left without an active plan.
func (s *planService) Replace(ctx context.Context, userID string, planType domain.PlanType) (*domain.TrainingPlan, error) {
	user, err := s.prepare(ctx, userID, planType)
	if err != nil {
		return nil, err
	}

	deleted, err := s.planRepo.DeleteActiveByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to delete active plans", zap.String("user_id", userID), zap.Error(err))
		return nil, storeFailure(err)
	}

	plan, err := s.create(ctx, user, planType)
	if err != nil {
		s.logger.Error("Replace left user without an active plan",
			zap.String("user_id", userID),
			zap.Int64("deleted", deleted),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrReplaceInconsistency, err)
	}

	s.logger.Info("Training plan replaced",
		zap.String("user_id", userID),
		zap.String("plan_id", plan.ID),
		zap.Int64("deleted", deleted))
	return plan, nil
}

// prepare runs every check that does not touch the plan store.
func (s *planService) prepare(ctx context.Context, userID string, planType domain.PlanType) (*domain.User, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if !planType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPlanType, planType)
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storeFailure(err)
	}
	if !user.ProfileComplete() {
		return nil, ErrProfileIncomplete
	}
	return user, nil
}

func (s *planService) create(ctx context.Context, user *domain.User, planType domain.PlanType) (*domain.TrainingPlan, error) {
	started := s.now()
	content, err := s.generator.Generate(ctx, user, planType)
	if err == nil {
		err = content.Validate()
	}
	if err != nil {
		s.logger.Warn("Plan generation failed", zap.String("user_id", user.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	plan := &domain.TrainingPlan{
		UserID:    user.ID,
		PlanType:  planType,
		Content:   content,
		CreatedAt: s.now().UTC(),
		IsActive:  true,
	}
	if err := s.planRepo.Create(ctx, plan); err != nil {
		s.logger.Error("Failed to store generated plan", zap.String("user_id", user.ID), zap.Error(err))
		return nil, storeFailure(err)
	}

	s.logger.Info("Training plan created",
		zap.String("user_id", user.ID),
		zap.String("plan_id", plan.ID),
		zap.Duration("generation", s.now().Sub(started)))
	return plan, nil
}

func (s *planService) List(ctx context.Context, userID string) ([]domain.TrainingPlan, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	plans, err := s.planRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeFailure(err)
	}
	return plans, nil
}

// ActivePlan returns the newest active plan of the user.
func (s *planService) ActivePlan(ctx context.Context, userID string) (*domain.TrainingPlan, error) {
	plans, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range plans {
		if plans[i].IsActive {
			return &plans[i], nil
		}
	}
	return nil, ErrPlanNotFound
}

func (s *planService) Get(ctx context.Context, userID, planID string) (*domain.TrainingPlan, error) {
	return s.ownedPlan(ctx, userID, planID)
}

// ToggleDayCompletion flips membership of day in the completion set. The day
// name is checked before the plan is read, so an invalid name changes nothing.
func (s *planService) ToggleDayCompletion(ctx context.Context, userID, planID, day string) (*domain.TrainingPlan, error) {
	d, err := domain.ParseWeekday(day)
	if err != nil {
		return nil, err
	}
	plan, err := s.ownedPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	plan.CompletedDays = plan.CompletedDays.Toggle(d)
	if err := s.save(ctx, plan); err != nil {
		return nil, err
	}
	s.logger.Debug("Day completion toggled",
		zap.String("plan_id", plan.ID),
		zap.String("day", string(d)),
		zap.Bool("completed", plan.CompletedDays.Has(d)))
	return plan, nil
}

// SetCompletedDays replaces the completion set. Duplicates collapse.
// A non-zero expectedVersion that differs from the stored version yields
// ErrPlanConflict without writing, so a client working from a stale copy
// cannot overwrite someone else's change.
func (s *planService) SetCompletedDays(ctx context.Context, userID, planID string, days []string, expectedVersion int64) (*domain.TrainingPlan, error) {
	set, err := domain.NewDaySet(days...)
	if err != nil {
		return nil, err
	}
	plan, err := s.ownedPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	if expectedVersion != 0 && expectedVersion != plan.Version {
		s.logger.Warn("Stale completion write",
			zap.String("plan_id", plan.ID),
			zap.Int64("expected_version", expectedVersion),
			zap.Int64("version", plan.Version))
		return nil, ErrPlanConflict
	}

	plan.CompletedDays = set
	if err := s.save(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// EditDay replaces one day of the schedule. The completion set, creation
// time, other days, nutrition and recommendations are left as they are.
func (s *planService) EditDay(ctx context.Context, userID, planID, day string, entry domain.DayEntry) (*domain.TrainingPlan, error) {
	d, err := domain.ParseWeekday(day)
	if err != nil {
		return nil, err
	}
	if err := entry.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDayEntry, err)
	}
	plan, err := s.ownedPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	plan.Content = plan.Content.WithDay(d, entry)
	if err := s.save(ctx, plan); err != nil {
		return nil, err
	}
	s.logger.Info("Plan day edited", zap.String("plan_id", plan.ID), zap.String("day", string(d)))
	return plan, nil
}

func (s *planService) Delete(ctx context.Context, userID, planID string) error {
	if _, err := s.ownedPlan(ctx, userID, planID); err != nil {
		return err
	}
	if err := s.planRepo.Delete(ctx, planID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return storeFailure(err)
	}
	s.logger.Info("Training plan deleted", zap.String("user_id", userID), zap.String("plan_id", planID))
	return nil
}

func (s *planService) ownedPlan(ctx context.Context, userID, planID string) (*domain.TrainingPlan, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, storeFailure(err)
	}
	if plan.UserID != userID {
		return nil, ErrPlanAccessDenied
	}
	return plan, nil
}

// save writes plan with an optimistic version check. A concurrent writer
// surfaces as ErrPlanConflict; nothing is retried.
func (s *planService) save(ctx context.Context, plan *domain.TrainingPlan) error {
	err := s.planRepo.Update(ctx, plan)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrVersionConflict):
		s.logger.Warn("Plan update conflict", zap.String("plan_id", plan.ID), zap.Int64("version", plan.Version))
		return ErrPlanConflict
	case errors.Is(err, repository.ErrNotFound):
		return ErrPlanNotFound
	default:
		s.logger.Error("Failed to update plan", zap.String("plan_id", plan.ID), zap.Error(err))
		return storeFailure(err)
	}
}
