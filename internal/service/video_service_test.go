package service

import (
	"coachvision/backend/internal/domain"
	"coachvision/backend/internal/repository"
	"coachvision/backend/internal/storage"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestVideoService_RequestUploadURL(t *testing.T) {
	ctx := context.Background()
	videos, files := new(MockVideoRepository), new(MockFileStorage)
	svc := NewVideoService(videos, files, zap.NewNop())

	files.On("GeneratePresignedUploadURL", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "videos/u1/") && strings.HasSuffix(key, ".mp4")
	}), "video/mp4", storage.DefaultPresignedURLExpiry).Return("https://s3.local/upload", nil)

	resp, err := svc.RequestUploadURL(ctx, "u1", "video/mp4")
	require.NoError(t, err)
	assert.Equal(t, "https://s3.local/upload", resp.UploadURL)
	assert.True(t, strings.HasPrefix(resp.ObjectKey, "videos/u1/"))

	_, err = svc.RequestUploadURL(ctx, "u1", "image/png")
	assert.ErrorIs(t, err, ErrUnsupportedMediaType)
}

func TestVideoService_Analyze(t *testing.T) {
	ctx := context.Background()

	t.Run("records placeholder analysis", func(t *testing.T) {
		videos, files := new(MockVideoRepository), new(MockFileStorage)
		svc := NewVideoService(videos, files, zap.NewNop())
		files.On("ObjectExists", ctx, "videos/u1/abc.mp4").Return(true, nil)
		videos.On("Create", ctx, mock.AnythingOfType("*domain.VideoAnalysis")).
			Run(func(args mock.Arguments) { args.Get(1).(*domain.VideoAnalysis).ID = "v1" }).
			Return(nil)

		v, err := svc.Analyze(ctx, "u1", AnalyzeVideoInput{
			ObjectKey: "videos/u1/abc.mp4", ContentType: "video/mp4", Size: 2048, ExerciseType: "squat",
		})
		require.NoError(t, err)
		assert.Equal(t, "v1", v.ID)
		assert.Equal(t, "abc.mp4", v.FileName)
		assert.Equal(t, 0.85, v.Analysis.ConfidenceScore)
		assert.Equal(t, "Good", v.Analysis.FormRating)
		assert.Len(t, v.Analysis.Recommendations, 3)
		assert.Contains(t, v.Feedback, "Analysis for squat:")
		assert.Contains(t, v.Feedback, "- Core engagement")
	})

	t.Run("rejects foreign keys", func(t *testing.T) {
		svc := NewVideoService(new(MockVideoRepository), new(MockFileStorage), zap.NewNop())
		for _, key := range []string{"videos/u2/abc.mp4", "videos/u1/../u2/abc.mp4", "abc.mp4"} {
			_, err := svc.Analyze(ctx, "u1", AnalyzeVideoInput{ObjectKey: key, ContentType: "video/mp4"})
			assert.ErrorIs(t, err, ErrObjectKeyNotOwned, key)
		}
	})

	t.Run("upload not found", func(t *testing.T) {
		files := new(MockFileStorage)
		svc := NewVideoService(new(MockVideoRepository), files, zap.NewNop())
		files.On("ObjectExists", ctx, "videos/u1/x.mp4").Return(false, nil)
		_, err := svc.Analyze(ctx, "u1", AnalyzeVideoInput{ObjectKey: "videos/u1/x.mp4", ContentType: "video/mp4"})
		assert.ErrorIs(t, err, ErrUploadMissing)
	})
}

func TestVideoService_Ownership(t *testing.T) {
	ctx := context.Background()
	videos, files := new(MockVideoRepository), new(MockFileStorage)
	svc := NewVideoService(videos, files, zap.NewNop())

	owned := &domain.VideoAnalysis{ID: "v1", UserID: "u1", ObjectKey: "videos/u1/a.mp4"}
	videos.On("GetByID", ctx, "v1").Return(owned, nil)
	videos.On("GetByID", ctx, "missing").Return(nil, repository.ErrNotFound)

	_, err := svc.Get(ctx, "u2", "v1")
	assert.ErrorIs(t, err, ErrVideoAccessDenied)

	_, err = svc.Get(ctx, "u1", "missing")
	assert.ErrorIs(t, err, ErrVideoNotFound)

	files.On("GeneratePresignedDownloadURL", ctx, "videos/u1/a.mp4", storage.DefaultPresignedURLExpiry).
		Return("https://s3.local/get", nil)
	url, err := svc.DownloadURL(ctx, "u1", "v1")
	require.NoError(t, err)
	assert.Equal(t, "https://s3.local/get", url)

	t.Run("delete removes object then record", func(t *testing.T) {
		files.On("DeleteObject", ctx, "videos/u1/a.mp4").Return(nil).Once()
		videos.On("Delete", ctx, "v1").Return(nil).Once()
		require.NoError(t, svc.Delete(ctx, "u1", "v1"))
		files.AssertCalled(t, "DeleteObject", ctx, "videos/u1/a.mp4")
		videos.AssertCalled(t, "Delete", ctx, "v1")
	})

	t.Run("storage failure keeps the record", func(t *testing.T) {
		files.On("DeleteObject", ctx, "videos/u1/a.mp4").Return(errors.New("s3 down")).Once()
		err := svc.Delete(ctx, "u1", "v1")
		assert.ErrorIs(t, err, ErrStoreFailure)
		assert.EqualError(t, err, "store failure: s3 down")
		videos.AssertNumberOfCalls(t, "Delete", 1)
	})
}
