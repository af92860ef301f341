// Package commands holds the kong command tree of plantuml-generator.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/plantuml-generator/internal/config"
	"git.home.luguber.info/inful/plantuml-generator/internal/metrics"
	"git.home.luguber.info/inful/plantuml-generator/internal/version"
	"git.home.luguber.info/inful/plantuml-generator/internal/worker"
)

// CLI is the root of the command tree and carries the global flags.
type CLI struct {
	Verbose     bool             `short:"v" help:"Enable debug logging."`
	LogLevel    string           `short:"l" name:"log-level" help:"Log level (debug, info, warn, error)." default:"info" env:"PLANTUML_GENERATOR_LOG_LEVEL"`
	Threads     int              `short:"t" help:"Worker count in [1,256]. Defaults to PLANTUML_GENERATOR_THREADS, then to the CPU count."`
	MetricsFile string           `name:"metrics-file" help:"Write Prometheus metrics to this file when the command ends." type:"path"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit."`

	Library   LibraryCmd   `cmd:"" help:"Manage icon libraries."`
	Diagram   DiagramCmd   `cmd:"" help:"Manage diagrams."`
	Workspace WorkspaceCmd `cmd:"" help:"Manage the workspace cache."`

	workers  worker.Config
	recorder metrics.Recorder
	prom     *metrics.PrometheusRecorder
	stdout   io.Writer
}

// AfterApply sets up logging, resolves the worker count and creates the
// metrics recorder once flags are parsed.
func (c *CLI) AfterApply() error {
	level := config.NormalizeLogLevel(c.LogLevel).SlogLevel()
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	workers, err := worker.ResolveConfig(c.Threads, os.LookupEnv, runtime.NumCPU())
	if err != nil {
		return err
	}
	c.workers = workers
	slog.Debug("Worker count resolved", slog.Int("workers", workers.Workers), slog.String("source", string(workers.Source)))

	c.recorder = metrics.NoopRecorder{}
	if c.MetricsFile != "" {
		c.prom = metrics.NewPrometheusRecorder(prom.NewRegistry())
		c.recorder = c.prom
	}
	c.recorder.SetWorkers(workers.Workers)
	return nil
}

// Workers returns the resolved worker configuration.
func (c *CLI) Workers() worker.Config { return c.workers }

// Recorder returns the metrics recorder; never nil after parsing.
func (c *CLI) Recorder() metrics.Recorder {
	if c.recorder == nil {
		return metrics.NoopRecorder{}
	}
	return c.recorder
}

func (c *CLI) out() io.Writer {
	if c.stdout == nil {
		return os.Stdout
	}
	return c.stdout
}

// Execute parses args and runs the selected command. The returned CLI is
// nil when parsing failed before the flags were applied.
func Execute(ctx context.Context, args []string, stdout io.Writer, options ...kong.Option) (*CLI, error) {
	cli := &CLI{stdout: stdout}
	opts := append([]kong.Option{
		kong.Name("plantuml-generator"),
		kong.Description("Generate PlantUML icon libraries and render diagrams incrementally."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.BindTo(ctx, (*context.Context)(nil)),
	}, options...)

	parser, err := kong.New(cli, opts...)
	if err != nil {
		return nil, err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return cli, err
	}

	started := time.Now()
	err = kctx.Run(cli)
	cli.Recorder().ObserveRunDuration(kctx.Command(), time.Since(started))
	if cli.prom != nil {
		if werr := cli.prom.WriteTextfile(cli.MetricsFile); werr != nil {
			slog.Error("Failed to write metrics", "error", werr)
		}
	}
	return cli, err
}
