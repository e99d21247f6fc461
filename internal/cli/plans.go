package cli

import (
	"coachvision/backend/internal/api"
	"coachvision/backend/internal/client"
	"coachvision/backend/internal/domain"
	"context"
	"errors"
	"fmt"
	"strings"
)

type PlansCmd struct {
	List     PlanListCmd     `cmd:"" help:"List your plans, newest first."`
	Generate PlanGenerateCmd `cmd:"" help:"Generate a new plan. Existing plans are kept."`
	Replace  PlanReplaceCmd  `cmd:"" help:"Delete the active plan and generate a new one."`
	Toggle   PlanToggleCmd   `cmd:"" help:"Mark a day done or not done."`
	EditDay  PlanEditDayCmd  `cmd:"" name:"edit-day" help:"Replace one day of a plan."`
	Week     PlanWeekCmd     `cmd:"" help:"Show a plan's week day by day."`
	Delete   PlanDeleteCmd   `cmd:"" help:"Delete a plan."`
}

type PlanListCmd struct{}

func (c *PlanListCmd) Run(ctx *Context) error {
	plans, err := ctx.Client.ListPlans(context.Background(), ctx.Cred)
	if err != nil {
		return err
	}
	if len(plans) == 0 {
		fmt.Fprintln(ctx.Out, "No plans yet. Run 'coachctl plans generate'.")
		return nil
	}
	w := ctx.table()
	fmt.Fprintln(w, "ID\tTYPE\tCREATED\tACTIVE\tPROGRESS")
	for _, p := range plans {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n",
			p.ID, p.PlanType, p.CreatedAt.Format("2006-01-02"), p.IsActive, formatPercent(p.Progress))
	}
	return w.Flush()
}

type PlanGenerateCmd struct {
	Type string `help:"Plan type." default:"weekly" enum:"weekly"`
}

func (c *PlanGenerateCmd) Run(ctx *Context) error {
	plan, err := ctx.Client.GeneratePlan(context.Background(), ctx.Cred, domain.PlanType(c.Type))
	if err != nil {
		return err
	}
	printPlan(ctx.Out, plan)
	return nil
}

type PlanReplaceCmd struct {
	Type string `help:"Plan type." default:"weekly" enum:"weekly"`
}

func (c *PlanReplaceCmd) Run(ctx *Context) error {
	plan, err := ctx.Client.ReplacePlan(context.Background(), ctx.Cred, domain.PlanType(c.Type))
	if errors.Is(err, client.ErrReplaceInconsistency) {
		return fmt.Errorf("%w; you have no active plan now, run 'coachctl plans generate'", err)
	}
	if err != nil {
		return err
	}
	printPlan(ctx.Out, plan)
	return nil
}

// resolvePlan returns the named plan, or the active one when id is empty.
func resolvePlan(ctx *Context, id string) (*api.PlanResponse, error) {
	if id == "" {
		return ctx.Client.ActivePlan(context.Background(), ctx.Cred)
	}
	return ctx.Client.GetPlan(context.Background(), ctx.Cred, id)
}

type PlanToggleCmd struct {
	Day    string `arg:"" help:"Weekday name, e.g. monday."`
	PlanID string `name:"plan" help:"Plan ID. Defaults to the active plan."`
}

func (c *PlanToggleCmd) Run(ctx *Context) error {
	if _, err := domain.ParseWeekday(c.Day); err != nil {
		return err
	}
	plan, err := resolvePlan(ctx, c.PlanID)
	if err != nil {
		return err
	}
	tracker := client.NewPlanTracker(ctx.Client, ctx.Cred, *plan)
	updated, err := tracker.ToggleDay(context.Background(), c.Day)
	if errors.Is(err, client.ErrConflict) {
		// changed between our read and the write; toggle against the fresh copy once
		if _, err := tracker.Reload(context.Background()); err != nil {
			return err
		}
		updated, err = tracker.ToggleDay(context.Background(), c.Day)
	}
	if err != nil {
		return err
	}
	day, _ := domain.ParseWeekday(c.Day)
	state := "not done"
	if updated.CompletedDays.Has(day) {
		state = "done"
	}
	fmt.Fprintf(ctx.Out, "%s marked %s. Progress %s.\n", day, state, formatPercent(updated.Progress))
	return nil
}

type PlanEditDayCmd struct {
	Day       string   `arg:"" help:"Weekday name."`
	PlanID    string   `name:"plan" help:"Plan ID. Defaults to the active plan."`
	Rest      string   `help:"Make the day a rest day with this description." xor:"kind"`
	Workout   string   `help:"Workout type, e.g. 'Upper body'." xor:"kind"`
	Exercises []string `name:"exercise" short:"e" help:"Exercise for the workout. Repeatable."`
}

func (c *PlanEditDayCmd) entry() (domain.DayEntry, error) {
	switch {
	case c.Rest != "":
		if len(c.Exercises) > 0 {
			return domain.DayEntry{}, errors.New("--exercise only applies to --workout")
		}
		return domain.RestDay(c.Rest), nil
	case c.Workout != "":
		return domain.Workout(c.Workout, c.Exercises...), nil
	default:
		return domain.DayEntry{}, errors.New("one of --rest or --workout is required")
	}
}

func (c *PlanEditDayCmd) Run(ctx *Context) error {
	entry, err := c.entry()
	if err != nil {
		return err
	}
	plan, err := resolvePlan(ctx, c.PlanID)
	if err != nil {
		return err
	}
	if _, err := ctx.Client.EditDay(context.Background(), ctx.Cred, plan.ID, c.Day, entry); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "%s updated: %s\n", strings.ToLower(c.Day), describeEntry(entry))
	return nil
}

type PlanWeekCmd struct {
	PlanID string `arg:"" optional:"" help:"Plan ID. Defaults to the active plan."`
}

func (c *PlanWeekCmd) Run(ctx *Context) error {
	id := c.PlanID
	if id == "" {
		plan, err := resolvePlan(ctx, "")
		if err != nil {
			return err
		}
		id = plan.ID
	}
	week, err := ctx.Client.Week(context.Background(), ctx.Cred, id)
	if err != nil {
		return err
	}
	w := ctx.table()
	fmt.Fprintln(w, "DAY\tDATE\tDONE\tPLAN")
	for _, d := range week.Days {
		done := ""
		if d.Completed {
			done = "x"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Day, d.Date, done, describeEntry(d.Entry))
	}
	fmt.Fprintf(w, "\t\t\tProgress %s\n", formatPercent(week.Progress))
	return w.Flush()
}

func describeEntry(e domain.DayEntry) string {
	if e.IsRest() {
		return "Rest: " + e.Description
	}
	if len(e.Exercises) == 0 {
		return e.Type
	}
	return fmt.Sprintf("%s (%s)", e.Type, strings.Join(e.Exercises, ", "))
}

type PlanDeleteCmd struct {
	PlanID string `arg:"" help:"Plan ID."`
}

func (c *PlanDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Client.DeletePlan(context.Background(), ctx.Cred, c.PlanID); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Plan %s deleted.\n", c.PlanID)
	return nil
}
