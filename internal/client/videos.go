package client

import (
	"coachvision/backend/internal/api"
	"coachvision/backend/internal/service"
	"context"
	"net/http"
	"net/url"
)

func (c *Client) RequestUploadURL(ctx context.Context, cred Credential, contentType string) (*service.UploadURLResponse, error) {
	if err := cred.check(false); err != nil {
		return nil, err
	}
	var resp service.UploadURLResponse
	err := c.do(ctx, http.MethodPost, "/videos/upload-url", &cred, api.UploadURLRequest{ContentType: contentType}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// AnalyzeVideo records a video already PUT to the upload URL.
func (c *Client) AnalyzeVideo(ctx context.Context, cred Credential, req api.AnalyzeVideoRequest) (*api.VideoResponse, error) {
	if err := cred.check(false); err != nil {
		return nil, err
	}
	var video api.VideoResponse
	if err := c.do(ctx, http.MethodPost, "/videos/analyze", &cred, req, &video); err != nil {
		return nil, err
	}
	return &video, nil
}

func (c *Client) ListVideos(ctx context.Context, cred Credential) ([]api.VideoResponse, error) {
	if err := cred.check(true); err != nil {
		return nil, err
	}
	var videos []api.VideoResponse
	if err := c.do(ctx, http.MethodGet, "/videos/user/"+url.PathEscape(cred.UserID), &cred, nil, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

func (c *Client) DeleteVideo(ctx context.Context, cred Credential, videoID string) error {
	if err := cred.check(false); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, "/videos/"+url.PathEscape(videoID), &cred, nil, nil)
}
