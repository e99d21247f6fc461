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

type videoAnalysisRepository struct {
	db *gorm.DB
}

// NewVideoAnalysisRepository returns a GORM-backed repository.VideoAnalysisRepository.
func NewVideoAnalysisRepository(db *gorm.DB) repository.VideoAnalysisRepository {
	return &videoAnalysisRepository{db: db}
}

func (r *videoAnalysisRepository) Create(ctx context.Context, v *domain.VideoAnalysis) error {
	v.ID = uuid.NewString()
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	m, err := videoModelFromDomain(v)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *videoAnalysisRepository) GetByID(ctx context.Context, id string) (*domain.VideoAnalysis, error) {
	var m VideoAnalysisModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return m.toDomain()
}

func (r *videoAnalysisRepository) ListByUser(ctx context.Context, userID string) ([]domain.VideoAnalysis, error) {
	var models []VideoAnalysisModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.VideoAnalysis, 0, len(models))
	for i := range models {
		v, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

func (r *videoAnalysisRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&VideoAnalysisModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
