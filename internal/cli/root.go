// Package cli implements the coachctl commands.
package cli

import (
	"coachvision/backend/internal/api"
	"coachvision/backend/internal/client"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Context is handed to every command's Run.
type Context struct {
	Client *client.Client
	Cred   client.Credential
	Out    io.Writer
}

func (c *Context) table() *tabwriter.Writer {
	return tabwriter.NewWriter(c.Out, 0, 4, 2, ' ', 0)
}

func formatPercent(p float64) string {
	return fmt.Sprintf("%.0f%%", p*100)
}

func printPlan(out io.Writer, p *api.PlanResponse) {
	fmt.Fprintf(out, "Plan %s (%s, v%d)\n", p.ID, p.PlanType, p.Version)
	status := "inactive"
	if p.IsActive {
		status = "active"
	}
	fmt.Fprintf(out, "Status:    %s\n", status)
	fmt.Fprintf(out, "Created:   %s\n", p.CreatedAt.Format("2006-01-02 15:04"))
	if len(p.WeekDates) == 7 {
		fmt.Fprintf(out, "Week:      %s .. %s\n", p.WeekDates[0], p.WeekDates[6])
	}
	fmt.Fprintf(out, "Completed: %s (%s)\n", strings.Join(p.CompletedDays.Strings(), ", "), formatPercent(p.Progress))
}

// App is the coachctl command tree.
type App struct {
	Server  string `help:"API base URL." env:"COACHCTL_SERVER" default:"http://localhost:8000"`
	Token   string `help:"Bearer token from 'coachctl login'." env:"COACHCTL_TOKEN"`
	UserID  string `name:"user-id" help:"Your user ID." env:"COACHCTL_USER_ID"`
	Verbose bool   `short:"v" help:"Log API calls."`

	Register RegisterCmd `cmd:"" help:"Create an account."`
	Login    LoginCmd    `cmd:"" help:"Log in and print the credential as shell exports."`
	Logout   LogoutCmd   `cmd:"" help:"Revoke the current token."`
	Plans    PlansCmd    `cmd:"" help:"Manage training plans."`
}

// Credential is the identity taken from flags or the environment.
func (a *App) Credential() client.Credential {
	return client.Credential{Token: a.Token, UserID: a.UserID}
}
