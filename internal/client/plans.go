package client

import (
	"coachvision/backend/internal/api"
	"coachvision/backend/internal/domain"
	"context"
	"net/http"
	"net/url"
)

func planPath(planID string, rest ...string) string {
	p := "/plans/" + url.PathEscape(planID)
	for _, r := range rest {
		p += "/" + r
	}
	return p
}

func (c *Client) plan(ctx context.Context, method, path string, cred Credential, body any) (*api.PlanResponse, error) {
	var plan api.PlanResponse
	if err := c.do(ctx, method, path, &cred, body, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// GeneratePlan creates a new active plan for cred.UserID. Earlier plans are kept.
func (c *Client) GeneratePlan(ctx context.Context, cred Credential, planType domain.PlanType) (*api.PlanResponse, error) {
	if err := cred.check(true); err != nil {
		return nil, err
	}
	return c.plan(ctx, http.MethodPost, "/plans/generate", cred,
		api.GeneratePlanRequest{UserID: cred.UserID, PlanType: string(planType)})
}

// ReplacePlan deletes the active plans of cred.UserID and generates a new one.
// ErrReplaceInconsistency means the old plans are gone and no new plan exists.
func (c *Client) ReplacePlan(ctx context.Context, cred Credential, planType domain.PlanType) (*api.PlanResponse, error) {
	if err := cred.check(true); err != nil {
		return nil, err
	}
	return c.plan(ctx, http.MethodPost, "/plans/replace", cred,
		api.GeneratePlanRequest{UserID: cred.UserID, PlanType: string(planType)})
}

// ListPlans returns the caller's plans, newest first.
func (c *Client) ListPlans(ctx context.Context, cred Credential) ([]api.PlanResponse, error) {
	if err := cred.check(true); err != nil {
		return nil, err
	}
	var plans []api.PlanResponse
	if err := c.do(ctx, http.MethodGet, "/plans/user/"+url.PathEscape(cred.UserID), &cred, nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (c *Client) ActivePlan(ctx context.Context, cred Credential) (*api.PlanResponse, error) {
	if err := cred.check(true); err != nil {
		return nil, err
	}
	return c.plan(ctx, http.MethodGet, "/plans/user/"+url.PathEscape(cred.UserID)+"/active", cred, nil)
}

func (c *Client) GetPlan(ctx context.Context, cred Credential, planID string) (*api.PlanResponse, error) {
	if err := cred.check(false); err != nil {
		return nil, err
	}
	return c.plan(ctx, http.MethodGet, planPath(planID), cred, nil)
}

func (c *Client) Week(ctx context.Context, cred Credential, planID string) (*api.WeekResponse, error) {
	if err := cred.check(false); err != nil {
		return nil, err
	}
	var week api.WeekResponse
	if err := c.do(ctx, http.MethodGet, planPath(planID, "week"), &cred, nil, &week); err != nil {
		return nil, err
	}
	return &week, nil
}

// SetCompletedDays overwrites the plan's completion set. With a non-zero
// expectedVersion the server refuses the write with ErrConflict once the plan
// has moved past that version.
func (c *Client) SetCompletedDays(ctx context.Context, cred Credential, planID string, days []domain.Weekday, expectedVersion int64) (*api.PlanResponse, error) {
	if err := cred.check(false); err != nil {
		return nil, err
	}
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = string(d)
	}
	return c.plan(ctx, http.MethodPut, planPath(planID, "completed-days"), cred,
		api.CompletedDaysRequest{CompletedDays: names, ExpectedVersion: expectedVersion})
}

// ToggleDay flips one day on the server. See PlanTracker for the optimistic variant.
func (c *Client) ToggleDay(ctx context.Context, cred Credential, planID, day string) (*api.PlanResponse, error) {
	if err := cred.check(false); err != nil {
		return nil, err
	}
	return c.plan(ctx, http.MethodPost, planPath(planID, "days", url.PathEscape(day), "toggle"), cred, nil)
}

func (c *Client) EditDay(ctx context.Context, cred Credential, planID, day string, entry domain.DayEntry) (*api.PlanResponse, error) {
	if err := cred.check(false); err != nil {
		return nil, err
	}
	return c.plan(ctx, http.MethodPut, planPath(planID, "edit-day"), cred,
		api.EditDayRequest{DayName: day, Workout: &entry})
}

func (c *Client) DeletePlan(ctx context.Context, cred Credential, planID string) error {
	if err := cred.check(false); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, planPath(planID), &cred, nil, nil)
}
