package service

import (
	"coachvision/backend/internal/auth"
	"coachvision/backend/internal/domain"
	"coachvision/backend/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserAlreadyExists    = errors.New("user with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
	ErrInvalidProfile       = errors.New("invalid profile")
)

// ProfileInput carries the generator inputs set by CompleteProfile.
type ProfileInput struct {
	Age             int
	Weight          float64
	Height          float64
	FitnessGoal     domain.FitnessGoal
	ExperienceLevel domain.ExperienceLevel
}

// Validate checks ranges and enum membership.
func (p ProfileInput) Validate() error {
	switch {
	case p.Age < 1 || p.Age > 120:
		return fmt.Errorf("%w: age must be between 1 and 120", ErrInvalidProfile)
	case p.Weight < 20 || p.Weight > 300:
		return fmt.Errorf("%w: weight must be between 20 and 300 kg", ErrInvalidProfile)
	case p.Height < 100 || p.Height > 250:
		return fmt.Errorf("%w: height must be between 100 and 250 cm", ErrInvalidProfile)
	}
	switch p.FitnessGoal {
	case domain.GoalWeightLoss, domain.GoalMuscleGain, domain.GoalEndurance,
		domain.GoalFlexibility, domain.GoalGeneralFitness:
	default:
		return fmt.Errorf("%w: unknown fitness goal %q", ErrInvalidProfile, p.FitnessGoal)
	}
	switch p.ExperienceLevel {
	case domain.LevelBeginner, domain.LevelIntermediate, domain.LevelAdvanced:
	default:
		return fmt.Errorf("%w: unknown experience level %q", ErrInvalidProfile, p.ExperienceLevel)
	}
	return nil
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (auth.Token, *domain.User, error)
	// Authenticate parses a bearer token and rejects revoked ones.
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
	// Refresh issues a new token and revokes the presented one.
	Refresh(ctx context.Context, claims *auth.Claims) (auth.Token, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	Me(ctx context.Context, userID string) (*domain.User, error)
	CompleteProfile(ctx context.Context, userID string, in ProfileInput) (*domain.User, error)
}

// authService implements the AuthService interface.
type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
	revoker  auth.Revoker
	logger   *zap.Logger
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager, revoker auth.Revoker, logger *zap.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		revoker:  revoker,
		logger:   logger.Named("auth"),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register handles new user registration. Profile fields stay empty until CompleteProfile.
func (s *authService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if name == "" || email == "" || password == "" {
		return nil, errors.New("name, email and password cannot be empty")
	}

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration of the same email.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID))
	user.PasswordHash = ""
	return user, nil
}

// Login handles user authentication and token generation.
func (s *authService) Login(ctx context.Context, email, password string) (auth.Token, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return auth.Token{}, nil, ErrAuthenticationFailed
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return auth.Token{}, nil, ErrAuthenticationFailed
		}
		return auth.Token{}, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return auth.Token{}, nil, ErrAuthenticationFailed
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Error("Token generation failed", zap.String("user_id", user.ID), zap.Error(err))
		return auth.Token{}, nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		s.logger.Error("Revocation check failed", zap.Error(err))
		return nil, err
	}
	if revoked {
		return nil, auth.ErrTokenRevoked
	}
	return claims, nil
}

func (s *authService) Refresh(ctx context.Context, claims *auth.Claims) (auth.Token, error) {
	token, err := s.tokens.Issue(claims.UserID)
	if err != nil {
		return auth.Token{}, ErrTokenGeneration
	}
	if err := s.revoker.Revoke(ctx, claims.ID, claims.Remaining()); err != nil {
		return auth.Token{}, err
	}
	return token, nil
}

func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	if err := s.revoker.Revoke(ctx, claims.ID, claims.Remaining()); err != nil {
		return err
	}
	s.logger.Info("User logged out", zap.String("user_id", claims.UserID))
	return nil
}

func (s *authService) Me(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// CompleteProfile stores the fields the plan generator needs.
func (s *authService) CompleteProfile(ctx context.Context, userID string, in ProfileInput) (*domain.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	user, err := s.Me(ctx, userID)
	if err != nil {
		return nil, err
	}

	age, weight, height := in.Age, in.Weight, in.Height
	goal, level := in.FitnessGoal, in.ExperienceLevel
	user.Age, user.Weight, user.Height = &age, &weight, &height
	user.FitnessGoal, user.ExperienceLevel = &goal, &level

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
