package gormstore

import (
	"coachvision/backend/internal/domain"
	"coachvision/backend/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository returns a GORM-backed repository.PlanRepository.
func NewPlanRepository(db *gorm.DB) repository.PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) Create(ctx context.Context, plan *domain.TrainingPlan) error {
	if plan.UserID == "" {
		return errors.New("plan requires a user id")
	}
	plan.ID = uuid.NewString()
	plan.Version = 1
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now().UTC()
	}

	m, err := planModelFromDomain(plan)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *planRepository) GetByID(ctx context.Context, id string) (*domain.TrainingPlan, error) {
	var m PlanModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return m.toDomain()
}

func (r *planRepository) ListByUser(ctx context.Context, userID string) ([]domain.TrainingPlan, error) {
	var models []PlanModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	plans := make([]domain.TrainingPlan, 0, len(models))
	for i := range models {
		p, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		plans = append(plans, *p)
	}
	return plans, nil
}

// Update is a compare-and-set on the version column.
func (r *planRepository) Update(ctx context.Context, plan *domain.TrainingPlan) error {
	m, err := planModelFromDomain(plan)
	if err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&PlanModel{}).
		Where("id = ? AND version = ?", plan.ID, plan.Version).
		Updates(map[string]any{
			"content":        m.Content,
			"completed_days": m.CompletedDays,
			"is_active":      m.IsActive,
			"version":        plan.Version + 1,
			"updated_at":     time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&PlanModel{}).Where("id = ?", plan.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return repository.ErrNotFound
		}
		return repository.ErrVersionConflict
	}
	plan.Version++
	return nil
}

func (r *planRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&PlanModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *planRepository) DeleteActiveByUser(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Delete(&PlanModel{})
	return res.RowsAffected, res.Error
}
