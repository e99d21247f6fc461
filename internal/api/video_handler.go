package api

import (
	"coachvision/backend/internal/domain"
	"coachvision/backend/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	videoService service.VideoService
}

func NewVideoHandler(videoService service.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

type UploadURLRequest struct {
	ContentType string `json:"content_type" binding:"required"`
}

type AnalyzeVideoRequest struct {
	ObjectKey    string `json:"object_key" binding:"required"`
	FileName     string `json:"video_filename"`
	ContentType  string `json:"content_type" binding:"required"`
	Size         int64  `json:"size" binding:"gte=0"`
	ExerciseType string `json:"exercise_type" binding:"required"`
}

type VideoResponse struct {
	ID           string              `json:"id"`
	UserID       string              `json:"user_id"`
	FileName     string              `json:"video_filename"`
	ContentType  string              `json:"content_type"`
	Size         int64               `json:"size"`
	ExerciseType string              `json:"exercise_type"`
	Analysis     domain.FormAnalysis `json:"analysis_result"`
	Feedback     string              `json:"feedback"`
	CreatedAt    time.Time           `json:"created_at"`
}

type DownloadURLResponse struct {
	DownloadURL string `json:"download_url"`
}

func MapVideoToResponse(v *domain.VideoAnalysis) VideoResponse {
	return VideoResponse{
		ID:           v.ID,
		UserID:       v.UserID,
		FileName:     v.FileName,
		ContentType:  v.ContentType,
		Size:         v.Size,
		ExerciseType: v.ExerciseType,
		Analysis:     v.Analysis,
		Feedback:     v.Feedback,
		CreatedAt:    v.CreatedAt,
	}
}

// RequestUploadURL godoc
// @Summary Get a presigned URL to upload an exercise video
// @Tags Videos
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body UploadURLRequest true "Video content type"
// @Success 200 {object} service.UploadURLResponse
// @Failure 400 {object} ErrorResponse "Not a video content type"
// @Router /videos/upload-url [post]
func (h *VideoHandler) RequestUploadURL(c *gin.Context) {
	userID, ok := requireCaller(c)
	if !ok {
		return
	}
	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	resp, err := h.videoService.RequestUploadURL(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Analyze godoc
// @Summary Record an uploaded video and analyze the exercise form
// @Tags Videos
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body AnalyzeVideoRequest true "Uploaded video"
// @Success 201 {object} VideoResponse
// @Failure 403 {object} ErrorResponse "Object key outside the caller's prefix"
// @Failure 404 {object} ErrorResponse "Upload not found"
// @Router /videos/analyze [post]
func (h *VideoHandler) Analyze(c *gin.Context) {
	userID, ok := requireCaller(c)
	if !ok {
		return
	}
	var req AnalyzeVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	video, err := h.videoService.Analyze(c.Request.Context(), userID, service.AnalyzeVideoInput{
		ObjectKey:    req.ObjectKey,
		FileName:     req.FileName,
		ContentType:  req.ContentType,
		Size:         req.Size,
		ExerciseType: req.ExerciseType,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapVideoToResponse(video))
}

// ListUserVideos godoc
// @Summary List a user's analyzed videos
// @Tags Videos
// @Security BearerAuth
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {array} VideoResponse
// @Router /videos/user/{userId} [get]
func (h *VideoHandler) ListUserVideos(c *gin.Context) {
	callerID, ok := requireCaller(c)
	if !ok || !requireSelf(c, callerID, c.Param("userId")) {
		return
	}
	videos, err := h.videoService.List(c.Request.Context(), callerID)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]VideoResponse, len(videos))
	for i := range videos {
		resp[i] = MapVideoToResponse(&videos[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VideoHandler) GetVideo(c *gin.Context) {
	callerID, ok := requireCaller(c)
	if !ok {
		return
	}
	video, err := h.videoService.Get(c.Request.Context(), callerID, c.Param("videoId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapVideoToResponse(video))
}

// GetDownloadURL godoc
// @Summary Get a presigned URL to download the video
// @Tags Videos
// @Security BearerAuth
// @Produce json
// @Param videoId path string true "Video ID"
// @Success 200 {object} DownloadURLResponse
// @Router /videos/{videoId}/download [get]
func (h *VideoHandler) GetDownloadURL(c *gin.Context) {
	callerID, ok := requireCaller(c)
	if !ok {
		return
	}
	url, err := h.videoService.DownloadURL(c.Request.Context(), callerID, c.Param("videoId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, DownloadURLResponse{DownloadURL: url})
}

func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	callerID, ok := requireCaller(c)
	if !ok {
		return
	}
	if err := h.videoService.Delete(c.Request.Context(), callerID, c.Param("videoId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Video deleted"})
}
