package storage

import (
	"coachvision/backend/internal/config"
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStorage(t *testing.T) FileStorage {
	t.Helper()
	fs, err := NewS3Storage(context.Background(), config.S3Config{
		Endpoint:        "http://localhost:9000",
		Region:          "us-east-1",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio-secret",
		BucketName:      "coachvision-videos",
	}, zap.NewNop())
	require.NoError(t, err)
	return fs
}

func TestPresignedUploadURL(t *testing.T) {
	fs := newTestStorage(t)

	raw, err := fs.GeneratePresignedUploadURL(context.Background(), "videos/u1/clip.mp4", "video/mp4", 10*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/coachvision-videos/videos/u1/clip.mp4", u.Path)

	q := u.Query()
	assert.Equal(t, "600", q.Get("X-Amz-Expires"))
	assert.NotEmpty(t, q.Get("X-Amz-Signature"))
	assert.Contains(t, q.Get("X-Amz-SignedHeaders"), "content-type")
	assert.True(t, strings.HasPrefix(q.Get("X-Amz-Credential"), "minio/"))
}

func TestPresignedDownloadURL_DefaultExpiry(t *testing.T) {
	fs := newTestStorage(t)

	raw, err := fs.GeneratePresignedDownloadURL(context.Background(), "videos/u1/clip.mp4", 0)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
}

func TestVideoObjectKey(t *testing.T) {
	a := VideoObjectKey("u1", "video/mp4")
	b := VideoObjectKey("u1", "video/mp4")

	assert.True(t, strings.HasPrefix(a, VideoKeyPrefix("u1")))
	assert.True(t, strings.HasSuffix(a, ".mp4"))
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(VideoObjectKey("u1", "video/quicktime"), ".mov"))
}
