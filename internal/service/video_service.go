package service

import (
	"coachvision/backend/internal/domain"
	"coachvision/backend/internal/repository"
	"coachvision/backend/internal/storage"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	ErrVideoNotFound        = errors.New("video analysis not found")
	ErrVideoAccessDenied    = errors.New("not authorized to access this video")
	ErrUnsupportedMediaType = errors.New("file must be a video")
	ErrObjectKeyNotOwned    = errors.New("object key does not belong to this user")
	ErrUploadMissing        = errors.New("no uploaded video found for this object key")
	ErrUploadURLError       = errors.New("failed to generate upload URL")
	ErrDownloadURLError     = errors.New("failed to generate download URL")
)

// UploadURLResponse structure for returning URL and object key
type UploadURLResponse struct {
	UploadURL string    `json:"upload_url"`
	ObjectKey string    `json:"object_key"` // reported back on analyze
	ExpiresAt time.Time `json:"expires_at"`
}

// AnalyzeVideoInput describes a finished upload.
type AnalyzeVideoInput struct {
	ObjectKey    string
	FileName     string
	ContentType  string
	Size         int64
	ExerciseType string
}

type VideoService interface {
	RequestUploadURL(ctx context.Context, userID, contentType string) (*UploadURLResponse, error)
	Analyze(ctx context.Context, userID string, in AnalyzeVideoInput) (*domain.VideoAnalysis, error)
	List(ctx context.Context, userID string) ([]domain.VideoAnalysis, error)
	Get(ctx context.Context, userID, videoID string) (*domain.VideoAnalysis, error)
	DownloadURL(ctx context.Context, userID, videoID string) (string, error)
	Delete(ctx context.Context, userID, videoID string) error
}

type videoService struct {
	videoRepo   repository.VideoAnalysisRepository
	fileStorage storage.FileStorage
	logger      *zap.Logger
	now         func() time.Time
}

// NewVideoService creates a new instance of videoService.
func NewVideoService(videoRepo repository.VideoAnalysisRepository, fileStorage storage.FileStorage, logger *zap.Logger) VideoService {
	return &videoService{
		videoRepo:   videoRepo,
		fileStorage: fileStorage,
		logger:      logger.Named("videos"),
		now:         time.Now,
	}
}

func isVideo(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "video/")
}

// RequestUploadURL reserves an object key under the user's prefix and presigns a PUT for it.
func (s *videoService) RequestUploadURL(ctx context.Context, userID, contentType string) (*UploadURLResponse, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if !isVideo(contentType) {
		return nil, ErrUnsupportedMediaType
	}

	objectKey := storage.VideoObjectKey(userID, contentType)
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUploadURLError, err)
	}
	return &UploadURLResponse{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
		ExpiresAt: s.now().Add(storage.DefaultPresignedURLExpiry).UTC(),
	}, nil
}

// Analyze records an uploaded video together with its form analysis.
func (s *videoService) Analyze(ctx context.Context, userID string, in AnalyzeVideoInput) (*domain.VideoAnalysis, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if !isVideo(in.ContentType) {
		return nil, ErrUnsupportedMediaType
	}
	if !strings.HasPrefix(in.ObjectKey, storage.VideoKeyPrefix(userID)) || strings.Contains(in.ObjectKey, "..") {
		return nil, ErrObjectKeyNotOwned
	}

	exists, err := s.fileStorage.ObjectExists(ctx, in.ObjectKey)
	if err != nil {
		s.logger.Error("Failed to check uploaded object", zap.String("key", in.ObjectKey), zap.Error(err))
		return nil, storeFailure(err)
	}
	if !exists {
		return nil, ErrUploadMissing
	}

	fileName := in.FileName
	if fileName == "" {
		fileName = path.Base(in.ObjectKey)
	}
	analysis := analyzeForm(in.ExerciseType, s.now().UTC())
	video := &domain.VideoAnalysis{
		UserID:       userID,
		ObjectKey:    in.ObjectKey,
		FileName:     fileName,
		ContentType:  in.ContentType,
		Size:         in.Size,
		ExerciseType: in.ExerciseType,
		Analysis:     analysis,
		Feedback:     formatFeedback(analysis),
		CreatedAt:    analysis.AnalyzedAt,
	}
	if err := s.videoRepo.Create(ctx, video); err != nil {
		s.logger.Error("Failed to store video analysis", zap.String("user_id", userID), zap.Error(err))
		return nil, storeFailure(err)
	}

	s.logger.Info("Video analyzed",
		zap.String("user_id", userID),
		zap.String("video_id", video.ID),
		zap.String("exercise_type", in.ExerciseType))
	return video, nil
}

// analyzeForm returns a fixed assessment. Pose estimation is not implemented.
func analyzeForm(exerciseType string, at time.Time) domain.FormAnalysis {
	return domain.FormAnalysis{
		ExerciseType:    exerciseType,
		AnalyzedAt:      at,
		ConfidenceScore: 0.85,
		FormRating:      "Good",
		Recommendations: []string{
			"Keep your back straight",
			"Lower your body more",
			"Maintain proper breathing",
		},
		AreasForImprovement: []string{
			"Depth of movement",
			"Core engagement",
		},
	}
}

func formatFeedback(a domain.FormAnalysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analysis for %s:\n\n", a.ExerciseType)
	fmt.Fprintf(&b, "Overall Form Rating: %s\n", a.FormRating)
	fmt.Fprintf(&b, "Confidence Score: %.2f\n\n", a.ConfidenceScore)
	b.WriteString("Recommendations:\n")
	for _, r := range a.Recommendations {
		fmt.Fprintf(&b, "- %s\n", r)
	}
	b.WriteString("\nAreas for Improvement:\n")
	for _, r := range a.AreasForImprovement {
		fmt.Fprintf(&b, "- %s\n", r)
	}
	return b.String()
}

func (s *videoService) List(ctx context.Context, userID string) ([]domain.VideoAnalysis, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	videos, err := s.videoRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeFailure(err)
	}
	return videos, nil
}

func (s *videoService) Get(ctx context.Context, userID, videoID string) (*domain.VideoAnalysis, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, storeFailure(err)
	}
	if video.UserID != userID {
		return nil, ErrVideoAccessDenied
	}
	return video, nil
}

func (s *videoService) DownloadURL(ctx context.Context, userID, videoID string) (string, error) {
	video, err := s.Get(ctx, userID, videoID)
	if err != nil {
		return "", err
	}
	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, video.ObjectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDownloadURLError, err)
	}
	return url, nil
}

// Delete removes the stored object first, then the record.
func (s *videoService) Delete(ctx context.Context, userID, videoID string) error {
	video, err := s.Get(ctx, userID, videoID)
	if err != nil {
		return err
	}
	if err := s.fileStorage.DeleteObject(ctx, video.ObjectKey); err != nil {
		return storeFailure(err)
	}
	if err := s.videoRepo.Delete(ctx, video.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrVideoNotFound
		}
		return storeFailure(err)
	}
	return nil
}
