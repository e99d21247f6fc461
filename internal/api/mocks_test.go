package api

import (
	"coachvision/backend/internal/auth"
	"coachvision/backend/internal/domain"
	"coachvision/backend/internal/service"
	"context"

	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (auth.Token, *domain.User, error) {
	args := m.Called(ctx, email, password)
	var user *domain.User
	if args.Get(1) != nil {
		user = args.Get(1).(*domain.User)
	}
	return args.Get(0).(auth.Token), user, args.Error(2)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, claims *auth.Claims) (auth.Token, error) {
	args := m.Called(ctx, claims)
	return args.Get(0).(auth.Token), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	return m.Called(ctx, claims).Error(0)
}

func (m *MockAuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) CompleteProfile(ctx context.Context, userID string, in service.ProfileInput) (*domain.User, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockPlanService struct {
	mock.Mock
}

func (m *MockPlanService) plan(args mock.Arguments) (*domain.TrainingPlan, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrainingPlan), args.Error(1)
}

func (m *MockPlanService) Create(ctx context.Context, userID string, planType domain.PlanType) (*domain.TrainingPlan, error) {
	return m.plan(m.Called(ctx, userID, planType))
}

func (m *MockPlanService) Replace(ctx context.Context, userID string, planType domain.PlanType) (*domain.TrainingPlan, error) {
	return m.plan(m.Called(ctx, userID, planType))
}

func (m *MockPlanService) List(ctx context.Context, userID string) ([]domain.TrainingPlan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrainingPlan), args.Error(1)
}

func (m *MockPlanService) ActivePlan(ctx context.Context, userID string) (*domain.TrainingPlan, error) {
	return m.plan(m.Called(ctx, userID))
}

func (m *MockPlanService) Get(ctx context.Context, userID, planID string) (*domain.TrainingPlan, error) {
	return m.plan(m.Called(ctx, userID, planID))
}

func (m *MockPlanService) ToggleDayCompletion(ctx context.Context, userID, planID, day string) (*domain.TrainingPlan, error) {
	return m.plan(m.Called(ctx, userID, planID, day))
}

func (m *MockPlanService) SetCompletedDays(ctx context.Context, userID, planID string, days []string, expectedVersion int64) (*domain.TrainingPlan, error) {
	return m.plan(m.Called(ctx, userID, planID, days, expectedVersion))
}

func (m *MockPlanService) EditDay(ctx context.Context, userID, planID, day string, entry domain.DayEntry) (*domain.TrainingPlan, error) {
	return m.plan(m.Called(ctx, userID, planID, day, entry))
}

func (m *MockPlanService) Delete(ctx context.Context, userID, planID string) error {
	return m.Called(ctx, userID, planID).Error(0)
}

type MockVideoService struct {
	mock.Mock
}

func (m *MockVideoService) RequestUploadURL(ctx context.Context, userID, contentType string) (*service.UploadURLResponse, error) {
	args := m.Called(ctx, userID, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadURLResponse), args.Error(1)
}

func (m *MockVideoService) Analyze(ctx context.Context, userID string, in service.AnalyzeVideoInput) (*domain.VideoAnalysis, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VideoAnalysis), args.Error(1)
}

func (m *MockVideoService) List(ctx context.Context, userID string) ([]domain.VideoAnalysis, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VideoAnalysis), args.Error(1)
}

func (m *MockVideoService) Get(ctx context.Context, userID, videoID string) (*domain.VideoAnalysis, error) {
	args := m.Called(ctx, userID, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VideoAnalysis), args.Error(1)
}

func (m *MockVideoService) DownloadURL(ctx context.Context, userID, videoID string) (string, error) {
	args := m.Called(ctx, userID, videoID)
	return args.String(0), args.Error(1)
}

func (m *MockVideoService) Delete(ctx context.Context, userID, videoID string) error {
	return m.Called(ctx, userID, videoID).Error(0)
}
