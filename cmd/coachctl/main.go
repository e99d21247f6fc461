package main

import (
	"coachvision/backend/internal/cli"
	"coachvision/backend/internal/client"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
)

func main() {
	var app cli.App
	ctx := kong.Parse(&app,
		kong.Name("coachctl"),
		kong.Description("Command line client for the CoachVision training plan API"),
		kong.UsageOnError(),
	)

	log := zap.NewNop()
	if app.Verbose {
		if dev, err := zap.NewDevelopment(); err == nil {
			log = dev
		}
	}
	defer func() { _ = log.Sync() }()

	appCtx := &cli.Context{
		Client: client.New(app.Server, client.WithLogger(log)),
		Cred:   app.Credential(),
		Out:    os.Stdout,
	}
	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
