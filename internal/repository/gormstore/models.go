package gormstore

import (
	"coachvision/backend/internal/domain"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// UserModel is the users table.
type UserModel struct {
	ID              string `gorm:"primaryKey;type:varchar(36)"`
	Email           string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name            string `gorm:"type:varchar(100);not null"`
	PasswordHash    string `gorm:"not null"`
	Age             *int
	Weight          *float64
	Height          *float64
	FitnessGoal     *string `gorm:"type:varchar(32)"`
	ExperienceLevel *string `gorm:"type:varchar(32)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (UserModel) TableName() string { return "users" }

func userModelFromDomain(u *domain.User) *UserModel {
	m := &UserModel{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Age:          u.Age,
		Weight:       u.Weight,
		Height:       u.Height,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if u.FitnessGoal != nil {
		g := string(*u.FitnessGoal)
		m.FitnessGoal = &g
	}
	if u.ExperienceLevel != nil {
		l := string(*u.ExperienceLevel)
		m.ExperienceLevel = &l
	}
	return m
}

func (m *UserModel) toDomain() *domain.User {
	u := &domain.User{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		Age:          m.Age,
		Weight:       m.Weight,
		Height:       m.Height,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
	if m.FitnessGoal != nil {
		g := domain.FitnessGoal(*m.FitnessGoal)
		u.FitnessGoal = &g
	}
	if m.ExperienceLevel != nil {
		l := domain.ExperienceLevel(*m.ExperienceLevel)
		u.ExperienceLevel = &l
	}
	return u
}

// PlanModel is the training_plans table. Content and the completion set are
// JSON columns; the completion set is always a JSON array of day names.
type PlanModel struct {
	ID            string         `gorm:"primaryKey;type:varchar(36)"`
	UserID        string         `gorm:"type:varchar(36);index;not null"`
	PlanType      string         `gorm:"type:varchar(50);not null"`
	Content       datatypes.JSON `gorm:"not null"`
	CompletedDays datatypes.JSON `gorm:"not null"`
	IsActive      bool           `gorm:"index;not null"`
	Version       int64          `gorm:"not null"`
	CreatedAt     time.Time      `gorm:"index"`
	UpdatedAt     time.Time
}

func (PlanModel) TableName() string { return "training_plans" }

func planModelFromDomain(p *domain.TrainingPlan) (*PlanModel, error) {
	content, err := json.Marshal(p.Content)
	if err != nil {
		return nil, fmt.Errorf("encode plan content: %w", err)
	}
	days, err := json.Marshal(p.CompletedDays)
	if err != nil {
		return nil, fmt.Errorf("encode completed days: %w", err)
	}
	return &PlanModel{
		ID:            p.ID,
		UserID:        p.UserID,
		PlanType:      string(p.PlanType),
		Content:       datatypes.JSON(content),
		CompletedDays: datatypes.JSON(days),
		IsActive:      p.IsActive,
		Version:       p.Version,
		CreatedAt:     p.CreatedAt,
	}, nil
}

func (m *PlanModel) toDomain() (*domain.TrainingPlan, error) {
	p := &domain.TrainingPlan{
		ID:        m.ID,
		UserID:    m.UserID,
		PlanType:  domain.PlanType(m.PlanType),
		CreatedAt: m.CreatedAt.UTC(),
		IsActive:  m.IsActive,
		Version:   m.Version,
	}
	if err := json.Unmarshal(m.Content, &p.Content); err != nil {
		return nil, fmt.Errorf("decode content of plan %s: %w", m.ID, err)
	}
	if err := json.Unmarshal(m.CompletedDays, &p.CompletedDays); err != nil {
		return nil, fmt.Errorf("decode completed days of plan %s: %w", m.ID, err)
	}
	return p, nil
}

// VideoAnalysisModel is the video_analyses table.
type VideoAnalysisModel struct {
	ID           string         `gorm:"primaryKey;type:varchar(36)"`
	UserID       string         `gorm:"type:varchar(36);index;not null"`
	ObjectKey    string         `gorm:"type:varchar(512);not null"`
	FileName     string         `gorm:"type:varchar(255)"`
	ContentType  string         `gorm:"type:varchar(100)"`
	Size         int64
	ExerciseType string         `gorm:"type:varchar(100);not null"`
	Analysis     datatypes.JSON `gorm:"not null"`
	Feedback     string         `gorm:"type:text"`
	CreatedAt    time.Time      `gorm:"index"`
}

func (VideoAnalysisModel) TableName() string { return "video_analyses" }

func videoModelFromDomain(v *domain.VideoAnalysis) (*VideoAnalysisModel, error) {
	analysis, err := json.Marshal(v.Analysis)
	if err != nil {
		return nil, fmt.Errorf("encode analysis: %w", err)
	}
	return &VideoAnalysisModel{
		ID:           v.ID,
		UserID:       v.UserID,
		ObjectKey:    v.ObjectKey,
		FileName:     v.FileName,
		ContentType:  v.ContentType,
		Size:         v.Size,
		ExerciseType: v.ExerciseType,
		Analysis:     datatypes.JSON(analysis),
		Feedback:     v.Feedback,
		CreatedAt:    v.CreatedAt,
	}, nil
}

func (m *VideoAnalysisModel) toDomain() (*domain.VideoAnalysis, error) {
	v := &domain.VideoAnalysis{
		ID:           m.ID,
		UserID:       m.UserID,
		ObjectKey:    m.ObjectKey,
		FileName:     m.FileName,
		ContentType:  m.ContentType,
		Size:         m.Size,
		ExerciseType: m.ExerciseType,
		Feedback:     m.Feedback,
		CreatedAt:    m.CreatedAt.UTC(),
	}
	if err := json.Unmarshal(m.Analysis, &v.Analysis); err != nil {
		return nil, fmt.Errorf("decode analysis of video %s: %w", m.ID, err)
	}
	return v, nil
}
