package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	ferrors "git.home.luguber.info/inful/plantuml-generator/internal/foundation/errors"
	"git.home.luguber.info/inful/plantuml-generator/internal/logfields"
	"git.home.luguber.info/inful/plantuml-generator/internal/metrics"
	"git.home.luguber.info/inful/plantuml-generator/internal/worker"
)

// DefaultProgressInterval is the number of completed units between two
// progress log lines.
const DefaultProgressInterval = 100

// Generator drives tasks through the phases.
type Generator struct {
	workers          worker.Config
	recorder         metrics.Recorder
	logger           *slog.Logger
	progressInterval int
}

// NewGenerator creates a generator dispatching on cfg.Workers goroutines.
func NewGenerator(cfg worker.Config) *Generator {
	return &Generator{
		workers:          cfg,
		recorder:         metrics.NoopRecorder{},
		logger:           slog.Default(),
		progressInterval: DefaultProgressInterval,
	}
}

// SetRecorder injects a metrics recorder (optional).
func (g *Generator) SetRecorder(r metrics.Recorder) {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	g.recorder = r
}

// SetLogger overrides the logger, e.g. one carrying a run id.
func (g *Generator) SetLogger(l *slog.Logger) {
	if l != nil {
		g.logger = l
	}
}

// SetProgressInterval changes how often progress is logged; n < 1 disables it.
func (g *Generator) SetProgressInterval(n int) {
	g.progressInterval = n
}

// Run executes the phases over tasks. It returns the first phase failure,
// a classified phase error wrapping the *worker.AggregatedError of that
// phase, or nil.
func (g *Generator) Run(ctx context.Context, tasks []Task, scopes Scopes, rc *RenderContext) error {
	g.logger.Info("Generation started", logfields.Count(len(tasks)), logfields.Workers(g.workers.Workers))
	started := time.Now()
	for _, phase := range Phases() {
		if err := g.RunPhase(ctx, phase, tasks, scopes, rc); err != nil {
			return err
		}
	}
	g.logger.Info("Generation completed",
		logfields.Count(len(tasks)),
		logfields.DurationMS(float64(time.Since(started).Milliseconds())))
	return nil
}

// RunPhase dispatches one phase over tasks and joins it.
func (g *Generator) RunPhase(ctx context.Context, phase Phase, tasks []Task, scopes Scopes, rc *RenderContext) error {
	pool := worker.NewPool(g.workers, string(phase))
	pool.SetRecorder(g.recorder)
	pool.SetLogger(g.logger.With(logfields.Phase(string(phase))))

	g.logger.Info("Phase started", logfields.Phase(string(phase)), logfields.Count(len(tasks)))
	started := time.Now()

	collector := worker.NewCollector()
	var err error
	if phase == PhaseCreateResources {
		for _, group := range resourceGroups {
			batch := g.units(phase, selectGroup(tasks, group), scopes, rc)
			pool.SetProgress(g.progress(phase, group.String()))
			g.logger.Debug("Resource group started",
				logfields.Phase(string(phase)),
				logfields.Group(group.String()),
				logfields.Count(len(batch)))
			if err = pool.ExecuteWith(ctx, batch, collector); err != nil && ctx.Err() != nil {
				break
			}
		}
	} else {
		pool.SetProgress(g.progress(phase, ""))
		err = pool.ExecuteWith(ctx, g.units(phase, tasks, scopes, rc), collector)
	}

	elapsed := time.Since(started)
	g.recorder.ObservePhaseDuration(string(phase), elapsed)
	if err != nil {
		g.recorder.IncPhaseResult(string(phase), metrics.ResultFailed)
		g.logger.Error("Phase failed",
			logfields.Phase(string(phase)),
			logfields.Count(collector.Len()),
			logfields.DurationMS(float64(elapsed.Milliseconds())))
		return ferrors.PhaseError(fmt.Sprintf("phase %s failed", phase)).
			WithCause(err).
			WithContext("phase", string(phase)).
			WithContext("failures", collector.Len()).
			Build()
	}
	g.recorder.IncPhaseResult(string(phase), metrics.ResultSuccess)
	g.logger.Info("Phase completed",
		logfields.Phase(string(phase)),
		logfields.DurationMS(float64(elapsed.Milliseconds())))
	return nil
}

func (g *Generator) progress(phase Phase, group string) worker.ProgressFunc {
	if g.progressInterval < 1 {
		return nil
	}
	interval := g.progressInterval
	return func(done, total int) {
		if done%interval != 0 && done != total {
			return
		}
		attrs := []any{logfields.Phase(string(phase)), slog.Int("done", done), slog.Int("total", total)}
		if group != "" {
			attrs = append(attrs, logfields.Group(group))
		}
		g.logger.Info("Phase progress", attrs...)
	}
}

func selectGroup(tasks []Task, group ResourceGroup) []Task {
	var out []Task
	for _, t := range tasks {
		tg := groupOf(t)
		if tg == group || (group == GroupItemIcon && tg == GroupNone) {
			out = append(out, t)
		}
	}
	return out
}

func (g *Generator) units(phase Phase, tasks []Task, scopes Scopes, rc *RenderContext) []worker.WorkUnit {
	units := make([]worker.WorkUnit, 0, len(tasks))
	for _, t := range tasks {
		units = append(units, phaseUnit{task: t, phase: phase, scopes: scopes, rc: rc})
	}
	return units
}

// phaseUnit binds a task, a phase and the shared context into a work unit.
type phaseUnit struct {
	task   Task
	phase  Phase
	scopes Scopes
	rc     *RenderContext
}

func (u phaseUnit) Identifier() string { return u.task.Identifier() }

func (u phaseUnit) Execute(ctx context.Context) error {
	switch u.phase {
	case PhaseCleanup:
		return u.task.Cleanup(u.scopes)
	case PhaseCreateResources:
		return u.task.CreateResources(ctx)
	case PhaseRenderAtomicTemplates:
		return u.task.RenderAtomicTemplates(ctx, u.rc)
	case PhaseRenderComposedTemplates:
		return u.task.RenderComposedTemplates(ctx, u.rc)
	case PhaseRenderSources:
		return u.task.RenderSources(ctx, u.rc)
	default:
		return fmt.Errorf("unknown phase %q", u.phase)
	}
}
