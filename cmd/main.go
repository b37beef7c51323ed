package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

// Set at link time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var cli RootCmd
	kongCtx := kong.Parse(&cli,
		kong.Name("seabuild"),
		kong.Description("Package a Node.js program as a single executable for each target platform."),
		kong.UsageOnError(),
		kong.Vars{
			"version":   version,
			"platforms": "linux, darwin, win32",
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.Bind(&cli),
	)

	err := kongCtx.Run()
	cancel()
	kongCtx.FatalIfErrorf(err)
}
