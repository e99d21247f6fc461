package cli

import (
	"bytes"
	"coachvision/backend/internal/api"
	"coachvision/backend/internal/client"
	"coachvision/backend/internal/domain"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (*kong.Context, *App) {
	t.Helper()
	var app App
	parser, err := kong.New(&app, kong.Name("coachctl"), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	return kctx, &app
}

func TestParse_CredentialFromEnv(t *testing.T) {
	t.Setenv("COACHCTL_TOKEN", "env-token")
	t.Setenv("COACHCTL_USER_ID", "u9")

	kctx, app := parse(t, "plans", "list")
	assert.Equal(t, "plans list", kctx.Command())
	assert.Equal(t, client.Credential{Token: "env-token", UserID: "u9"}, app.Credential())

	_, app = parse(t, "--token", "flag-token", "plans", "week")
	assert.Equal(t, "flag-token", app.Token)
}

func TestEditDayEntry(t *testing.T) {
	_, app := parse(t, "plans", "edit-day", "tuesday", "--workout", "Upper body", "-e", "Push-ups", "-e", "Rows")
	entry, err := app.Plans.EditDay.entry()
	require.NoError(t, err)
	assert.Equal(t, domain.Workout("Upper body", "Push-ups", "Rows"), entry)

	_, app = parse(t, "plans", "edit-day", "sunday", "--rest", "Hike")
	entry, err = app.Plans.EditDay.entry()
	require.NoError(t, err)
	assert.Equal(t, domain.RestDay("Hike"), entry)

	_, app = parse(t, "plans", "edit-day", "sunday")
	_, err = app.Plans.EditDay.entry()
	assert.Error(t, err)
}

func TestPlanCommands(t *testing.T) {
	monday, _ := domain.NewDaySet("monday")
	plan := api.PlanResponse{ID: "p1", PlanType: domain.PlanTypeWeekly, IsActive: true, CompletedDays: monday, Version: 3}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method + " " + r.URL.Path {
		case "GET /api/v1/plans/user/u1/active":
			_ = json.NewEncoder(w).Encode(plan)
		case "PUT /api/v1/plans/p1/completed-days":
			var req api.CompletedDaysRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, []string{"monday", "friday"}, req.CompletedDays)
			updated := plan
			updated.CompletedDays, _ = domain.NewDaySet(req.CompletedDays...)
			updated.Progress = domain.Progress(updated.CompletedDays)
			_ = json.NewEncoder(w).Encode(updated)
		case "GET /api/v1/plans/p1/week":
			_ = json.NewEncoder(w).Encode(api.WeekResponse{
				PlanID: "p1",
				Days: []api.WeekDayView{
					{Day: domain.Monday, Date: "2025-03-03", Entry: domain.Workout("Legs", "Squats"), Completed: true},
					{Day: domain.Tuesday, Date: "2025-03-04", Entry: domain.RestDay("Walk")},
				},
			})
		case "DELETE /api/v1/plans/p1":
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "training plan not found", Code: api.CodeNotFound})
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	var out bytes.Buffer
	ctx := &Context{
		Client: client.New(srv.URL),
		Cred:   client.Credential{Token: "tok", UserID: "u1"},
		Out:    &out,
	}

	require.NoError(t, (&PlanToggleCmd{Day: "Friday"}).Run(ctx))
	assert.Equal(t, "friday marked done. Progress 29%.\n", out.String())

	out.Reset()
	require.NoError(t, (&PlanWeekCmd{PlanID: "p1"}).Run(ctx))
	assert.Contains(t, out.String(), "Legs (Squats)")
	assert.Contains(t, out.String(), "Rest: Walk")

	err := (&PlanDeleteCmd{PlanID: "p1"}).Run(ctx)
	assert.ErrorIs(t, err, client.ErrNotFound)

	err = (&PlanToggleCmd{Day: "funday"}).Run(ctx)
	assert.ErrorIs(t, err, domain.ErrInvalidDay)
}

func TestPlanToggle_ReloadsAfterConflict(t *testing.T) {
	stale := api.PlanResponse{ID: "p1", IsActive: true, Version: 3}
	fresh := stale
	fresh.CompletedDays, _ = domain.NewDaySet("tuesday")
	fresh.Version = 4

	var puts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method + " " + r.URL.Path {
		case "GET /api/v1/plans/p1":
			if puts.Load() == 0 {
				_ = json.NewEncoder(w).Encode(stale)
				return
			}
			_ = json.NewEncoder(w).Encode(fresh)
		case "PUT /api/v1/plans/p1/completed-days":
			var req api.CompletedDaysRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			if puts.Add(1) == 1 {
				assert.Equal(t, int64(3), req.ExpectedVersion)
				w.WriteHeader(http.StatusConflict)
				_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "training plan was modified concurrently", Code: api.CodeConflict})
				return
			}
			assert.Equal(t, int64(4), req.ExpectedVersion)
			assert.Equal(t, []string{"tuesday", "friday"}, req.CompletedDays)
			updated := fresh
			updated.CompletedDays, _ = domain.NewDaySet(req.CompletedDays...)
			updated.Progress = domain.Progress(updated.CompletedDays)
			updated.Version = 5
			_ = json.NewEncoder(w).Encode(updated)
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	var out bytes.Buffer
	ctx := &Context{
		Client: client.New(srv.URL),
		Cred:   client.Credential{Token: "tok", UserID: "u1"},
		Out:    &out,
	}

	require.NoError(t, (&PlanToggleCmd{Day: "friday", PlanID: "p1"}).Run(ctx))
	assert.Equal(t, "friday marked done. Progress 29%.\n", out.String())
	assert.Equal(t, int32(2), puts.Load())
}
