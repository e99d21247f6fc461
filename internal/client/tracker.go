package client

import (
	"coachvision/backend/internal/api"
	"coachvision/backend/internal/domain"
	"context"
	"fmt"
	"sync"
)

// PlanTracker keeps a local copy of one plan and applies completion toggles
// optimistically. Mutations on one tracker are serialized, and every write is
// conditional on the version the local copy was read at: if the plan changed
// elsewhere the write fails with ErrConflict and the local copy rolls back.
type PlanTracker struct {
	op     sync.Mutex // serializes ToggleDay and Reload, held across requests
	mu     sync.Mutex // guards plan
	client *Client
	cred   Credential
	plan   api.PlanResponse

	// OnChange, if set, sees every local state: the optimistic one, then the
	// server's or the rolled back one. It runs without the state lock, so it
	// may call Plan, but it must not start another ToggleDay or Reload.
	OnChange func(api.PlanResponse)
}

func NewPlanTracker(client *Client, cred Credential, plan api.PlanResponse) *PlanTracker {
	return &PlanTracker{client: client, cred: cred, plan: plan}
}

// Plan returns the current local copy.
func (t *PlanTracker) Plan() api.PlanResponse {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.plan
}

func (t *PlanTracker) set(p api.PlanResponse) {
	t.mu.Lock()
	t.plan = p
	t.mu.Unlock()
	if t.OnChange != nil {
		t.OnChange(p)
	}
}

// ToggleDay flips day locally, sends the full completion set together with
// the version it was derived from and adopts the server's plan. On failure the
// local copy is restored and the error returned; ErrConflict means the plan
// changed elsewhere and Reload is needed before retrying.
// An invalid day name fails with ErrInvalidDay before any request.
func (t *PlanTracker) ToggleDay(ctx context.Context, day string) (api.PlanResponse, error) {
	d, err := domain.ParseWeekday(day)
	if err != nil {
		return t.Plan(), fmt.Errorf("%w: %w", ErrInvalidDay, err)
	}

	t.op.Lock()
	defer t.op.Unlock()

	prev := t.Plan()
	next := prev
	next.CompletedDays = prev.CompletedDays.Toggle(d)
	next.Progress = domain.Progress(next.CompletedDays)
	t.set(next)

	updated, err := t.client.SetCompletedDays(ctx, t.cred, prev.ID, next.CompletedDays.Days(), prev.Version)
	if err != nil {
		t.set(prev)
		return prev, err
	}
	t.set(*updated)
	return *updated, nil
}

// Reload replaces the local copy with the server's.
func (t *PlanTracker) Reload(ctx context.Context) (api.PlanResponse, error) {
	t.op.Lock()
	defer t.op.Unlock()

	current := t.Plan()
	fresh, err := t.client.GetPlan(ctx, t.cred, current.ID)
	if err != nil {
		return current, err
	}
	t.set(*fresh)
	return *fresh, nil
}
