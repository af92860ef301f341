package incremental

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/plantuml-generator/internal/logfields"
	"git.home.luguber.info/inful/plantuml-generator/internal/metrics"
	"git.home.luguber.info/inful/plantuml-generator/internal/worker"
)

// Renderer renders one diagram source.
type Renderer interface {
	Render(ctx context.Context, path string, args []string) error
}

// Options configure a Builder.
type Options struct {
	CacheDirectory string
	// Args are passed to the renderer after the source path.
	Args []string
	// Force renders every source regardless of the watermark.
	Force   bool
	Workers worker.Config
}

// Report summarizes a build.
type Report struct {
	Sources  int
	Rendered int
	Skipped  int
	// Watermark is the persisted watermark after the build; zero when none exists.
	Watermark time.Time
	// Advanced tells whether the build moved the watermark.
	Advanced bool
}

// Builder renders stale diagram sources concurrently. Two sources naming the
// same diagram in one output directory write the same file; the builder
// does not arbitrate between them.
type Builder struct {
	renderer Renderer
	opts     Options
	recorder metrics.Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewBuilder creates a builder rendering with r.
func NewBuilder(r Renderer, opts Options) *Builder {
	return &Builder{
		renderer: r,
		opts:     opts,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
		now:      time.Now,
	}
}

// SetRecorder injects a metrics recorder (optional).
func (b *Builder) SetRecorder(r metrics.Recorder) {
	if r != nil {
		b.recorder = r
	}
}

// SetLogger overrides the logger.
func (b *Builder) SetLogger(l *slog.Logger) {
	if l != nil {
		b.logger = l
	}
}

// Run discovers the sources under root and builds them.
func (b *Builder) Run(ctx context.Context, root string, patterns []string) (Report, error) {
	sources, err := DiscoverSources(root, patterns)
	if err != nil {
		return Report{}, err
	}
	return b.Build(ctx, sources)
}

// Build renders every source modified after the watermark, or all of them
// when forced. The watermark advances to the start of the build only when
// at least one source was rendered and none failed; after a failure the
// next build retries every source this one selected.
func (b *Builder) Build(ctx context.Context, sources []Source) (Report, error) {
	watermark, known, err := LoadWatermark(b.opts.CacheDirectory)
	if err != nil {
		return Report{}, err
	}
	report := Report{Sources: len(sources), Watermark: watermark}
	started := b.now()

	var units []worker.WorkUnit
	for _, src := range sources {
		if !b.opts.Force && known && !src.ModTime.After(watermark) {
			report.Skipped++
			b.recorder.IncDiagramResult(metrics.ResultSkipped)
			continue
		}
		units = append(units, b.unit(src.Path))
	}
	report.Rendered = len(units)

	b.logger.Info("Diagram generation started",
		logfields.Count(report.Rendered),
		slog.Int("skipped", report.Skipped),
		slog.Bool("force", b.opts.Force))
	if len(units) == 0 {
		return report, nil
	}

	pool := worker.NewPool(b.opts.Workers, "diagrams")
	pool.SetRecorder(b.recorder)
	pool.SetLogger(b.logger)
	if err := pool.Execute(ctx, units); err != nil {
		b.logger.Error("Diagram generation failed, watermark kept", logfields.Error(err))
		return report, err
	}

	if err := SaveWatermark(b.opts.CacheDirectory, started); err != nil {
		return report, err
	}
	report.Watermark = started
	report.Advanced = true
	b.logger.Info("Diagram generation completed",
		logfields.Count(report.Rendered),
		logfields.DurationMS(float64(b.now().Sub(started).Milliseconds())))
	return report, nil
}

func (b *Builder) unit(path string) worker.WorkUnit {
	return worker.NewUnit(path, func(ctx context.Context) error {
		b.logger.Debug("Rendering diagram", logfields.File(path))
		err := b.renderer.Render(ctx, path, b.opts.Args)
		if err != nil {
			b.recorder.IncDiagramResult(metrics.ResultFailed)
			return err
		}
		b.recorder.IncDiagramResult(metrics.ResultSuccess)
		return nil
	})
}
