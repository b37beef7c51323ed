package main

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/elskow/seabuild/internal/app"
	"github.com/elskow/seabuild/internal/config"
)

type RootCmd struct {
	Config    string       `short:"c" help:"Path to a seabuild.toml configuration file." placeholder:"FILE" type:"path"`
	Debug     bool         `short:"d" help:"Enable debug output."`
	Quiet     bool         `short:"q" help:"Only log warnings and errors."`
	Build     BuildCmd     `cmd:"" help:"Build single executable applications."`
	Platforms PlatformsCmd `cmd:"" help:"List supported target platforms."`
	Cleanup   CleanupCmd   `cmd:"" help:"Remove workspaces left behind by interrupted builds."`
	Version   VersionCmd   `cmd:"" help:"Show version information."`
}

func (r *RootCmd) source() config.Source {
	src := config.Source{File: r.Config}
	switch {
	case r.Debug:
		src.LogLevel = "debug"
	case r.Quiet:
		src.LogLevel = "warn"
	}
	return src
}

// newApp resolves the application graph and fills targets from it. The
// returned logger should be synced by the caller.
func (r *RootCmd) newApp(targets ...any) (*zap.Logger, error) {
	var logger *zap.Logger

	a := fx.New(
		app.Module(r.source()),
		fx.Populate(append(targets, &logger)...),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			l := &fxevent.ZapLogger{Logger: log}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
	)
	if err := a.Err(); err != nil {
		return nil, err
	}

	return logger, nil
}
