package client

import (
	"coachvision/backend/internal/api"
	"context"
	"net/http"
)

func (c *Client) Register(ctx context.Context, name, email, password string) (*api.UserResponse, error) {
	var user api.UserResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", nil,
		api.RegisterRequest{Name: name, Email: email, Password: password}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges email and password for a credential.
func (c *Client) Login(ctx context.Context, email, password string) (Credential, error) {
	var resp api.TokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil,
		api.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return Credential{}, err
	}
	cred := Credential{Token: resp.Token}
	if resp.User != nil {
		cred.UserID = resp.User.ID
	}
	return cred, nil
}

// Refresh returns a new credential. The old token stops working.
func (c *Client) Refresh(ctx context.Context, cred Credential) (Credential, error) {
	if err := cred.check(false); err != nil {
		return Credential{}, err
	}
	var resp api.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", &cred, nil, &resp); err != nil {
		return Credential{}, err
	}
	return Credential{Token: resp.Token, UserID: cred.UserID}, nil
}

func (c *Client) Logout(ctx context.Context, cred Credential) error {
	if err := cred.check(false); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/auth/logout", &cred, nil, nil)
}

func (c *Client) Me(ctx context.Context, cred Credential) (*api.UserResponse, error) {
	if err := cred.check(false); err != nil {
		return nil, err
	}
	var user api.UserResponse
	if err := c.do(ctx, http.MethodGet, "/auth/me", &cred, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) CompleteProfile(ctx context.Context, cred Credential, profile api.CompleteProfileRequest) (*api.UserResponse, error) {
	if err := cred.check(false); err != nil {
		return nil, err
	}
	var user api.UserResponse
	if err := c.do(ctx, http.MethodPost, "/auth/complete-profile", &cred, profile, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
