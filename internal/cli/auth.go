package cli

import (
	"context"
	"fmt"
)

type RegisterCmd struct {
	Name     string `arg:"" help:"Display name."`
	Email    string `arg:"" help:"Account email."`
	Password string `help:"Account password (min 8 characters)." env:"COACHCTL_PASSWORD" required:""`
}

func (c *RegisterCmd) Run(ctx *Context) error {
	user, err := ctx.Client.Register(context.Background(), c.Name, c.Email, c.Password)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Registered %s (%s)\n", user.Email, user.ID)
	return nil
}

type LoginCmd struct {
	Email    string `arg:"" help:"Account email."`
	Password string `help:"Account password." env:"COACHCTL_PASSWORD" required:""`
}

// Run prints shell exports so the credential can be picked up by later calls.
func (c *LoginCmd) Run(ctx *Context) error {
	cred, err := ctx.Client.Login(context.Background(), c.Email, c.Password)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "export COACHCTL_TOKEN=%s\n", cred.Token)
	fmt.Fprintf(ctx.Out, "export COACHCTL_USER_ID=%s\n", cred.UserID)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *Context) error {
	if err := ctx.Client.Logout(context.Background(), ctx.Cred); err != nil {
		return err
	}
	fmt.Fprintln(ctx.Out, "Token revoked.")
	return nil
}
