package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/plantuml-generator/internal/config"
	ferrors "git.home.luguber.info/inful/plantuml-generator/internal/foundation/errors"
	"git.home.luguber.info/inful/plantuml-generator/internal/incremental"
	"git.home.luguber.info/inful/plantuml-generator/internal/logfields"
	"git.home.luguber.info/inful/plantuml-generator/internal/plantuml"
	"git.home.luguber.info/inful/plantuml-generator/internal/retry"
	"git.home.luguber.info/inful/plantuml-generator/internal/watch"
)

// DiagramCmd groups the diagram commands.
type DiagramCmd struct {
	Generate DiagramGenerateCmd `cmd:"" help:"Render the .puml files modified since the last generation."`
}

// DiagramGenerateCmd implements 'diagram generate'.
type DiagramGenerateCmd struct {
	config.PlantUMLConfig `embed:""`

	SourceDirectory string             `short:"s" name:"source" help:"The directory where the .puml files are discovered." default:"." env:"PLANTUML_GENERATOR_SOURCE_DIRECTORY"`
	Patterns        string             `short:"p" name:"patterns" help:"Comma separated glob patterns of the sources." default:"**/*.puml" env:"PLANTUML_GENERATOR_SOURCE_PATTERNS"`
	Force           bool               `short:"f" name:"force" help:"Render every discovered source."`
	Args            []string           `short:"a" name:"args" help:"Extra arguments passed to PlantUML."`
	Watch           bool               `name:"watch" help:"Keep running and render sources when they change."`
	PollInterval    time.Duration      `name:"poll-interval" help:"Keep running and look for changes on this interval."`
	Retry           config.RetryConfig `embed:"" prefix:"retry-"`
}

// Config validates the flags into a diagram configuration.
func (d *DiagramGenerateCmd) Config() (config.DiagramConfig, error) {
	cfg := config.DiagramConfig{
		PlantUMLConfig:  d.PlantUMLConfig,
		SourceDirectory: d.SourceDirectory,
		SourcePatterns:  config.SplitPatterns(d.Patterns),
		Force:           d.Force,
		Args:            d.Args,
		Watch:           d.Watch,
		PollInterval:    d.PollInterval,
		Retry:           d.Retry,
	}
	if err := cfg.Normalize(); err != nil {
		return cfg, ferrors.ConfigError("invalid diagram configuration").WithCause(err).Build()
	}
	return cfg, nil
}

func (d *DiagramGenerateCmd) Run(ctx context.Context, root *CLI) error {
	cfg, err := d.Config()
	if err != nil {
		return err
	}
	client := plantuml.NewClient(cfg.PlantUMLConfig, nil)
	if downloaded, err := client.EnsureJar(ctx, retry.FromConfig(cfg.Retry)); err != nil {
		return err
	} else if downloaded {
		slog.Info("PlantUML jar downloaded", logfields.Path(client.Jar))
	}
	return runDiagrams(ctx, root, cfg, client)
}

// runDiagrams builds once, or keeps building in watch and poll mode. The
// force flag only applies to the first build of a session.
func runDiagrams(ctx context.Context, root *CLI, cfg config.DiagramConfig, r incremental.Renderer) error {
	force := cfg.Force
	build := func(ctx context.Context) error {
		b := incremental.NewBuilder(r, incremental.Options{
			CacheDirectory: cfg.CacheDirectory,
			Args:           cfg.Args,
			Force:          force,
			Workers:        root.Workers(),
		})
		b.SetRecorder(root.Recorder())
		force = false
		report, err := b.Run(ctx, cfg.SourceDirectory, cfg.SourcePatterns)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(root.out(), "%d rendered, %d up to date\n", report.Rendered, report.Skipped)
		return nil
	}

	switch {
	case cfg.Watch:
		return watch.NewWatcher(cfg.SourceDirectory, cfg.SourcePatterns, config.DefaultWatchDebounce, build).Run(ctx)
	case cfg.PollInterval > 0:
		return watch.NewPoller(cfg.PollInterval, build).Run(ctx)
	default:
		return build(ctx)
	}
}
