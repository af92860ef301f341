package worker

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/plantuml-generator/internal/logfields"
	"git.home.luguber.info/inful/plantuml-generator/internal/metrics"
)

// ProgressFunc is called after each unit completes, with the number of
// completed units and the batch size. It runs on worker goroutines.
type ProgressFunc func(done, total int)

// Pool executes batches of work units with a bounded number of goroutines.
type Pool struct {
	cfg      Config
	name     string
	recorder metrics.Recorder
	logger   *slog.Logger
	progress ProgressFunc
}

// NewPool creates a pool; name labels logs and metrics for its batches.
func NewPool(cfg Config, name string) *Pool {
	if cfg.Workers < MinWorkers {
		cfg.Workers = MinWorkers
	}
	return &Pool{
		cfg:      cfg,
		name:     name,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
}

// SetRecorder injects a metrics recorder (optional).
func (p *Pool) SetRecorder(r metrics.Recorder) {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	p.recorder = r
}

// SetLogger overrides the logger used for unit diagnostics.
func (p *Pool) SetLogger(l *slog.Logger) {
	if l != nil {
		p.logger = l
	}
}

// SetProgress registers a completion callback.
func (p *Pool) SetProgress(fn ProgressFunc) {
	p.progress = fn
}

// Workers returns the configured worker count.
func (p *Pool) Workers() int { return p.cfg.Workers }

// Execute runs every unit and returns nil or an *AggregatedError.
func (p *Pool) Execute(ctx context.Context, units []WorkUnit) error {
	return p.ExecuteWith(ctx, units, NewCollector())
}

// ExecuteWith runs every unit, recording failures into c. A context that is
// already done prevents dispatch; once dispatched the batch runs to
// completion and units see a context that is not canceled with ctx.
func (p *Pool) ExecuteWith(ctx context.Context, units []WorkUnit, c *Collector) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("batch %s not started: %w", p.name, err)
	}
	if len(units) == 0 {
		return c.Result()
	}
	p.recorder.SetWorkers(p.cfg.Workers)

	unitCtx := context.WithoutCancel(ctx)
	total := len(units)
	var done atomic.Int64

	var g errgroup.Group
	g.SetLimit(p.cfg.Workers)
	for i, u := range units {
		g.Go(func() error {
			p.run(unitCtx, i, u, c)
			p.reportProgress(int(done.Add(1)), total)
			return nil
		})
	}
	_ = g.Wait()
	return c.Result()
}

// run executes one unit. Identifier is called inside the recover boundary;
// a unit whose Identifier panics is reported as "unit#<index>".
func (p *Pool) run(ctx context.Context, index int, u WorkUnit, c *Collector) {
	id := fmt.Sprintf("unit#%d", index)
	start := time.Now()
	recovered, stack, err := safeExecute(func() error {
		id = u.Identifier()
		return u.Execute(ctx)
	})
	p.recorder.ObserveUnitDuration(p.name, time.Since(start))

	switch {
	case stack != nil:
		c.AddPanic(id, recovered)
		p.recorder.IncUnitResult(p.name, metrics.ResultPanic)
		p.logger.Debug("Work unit panicked",
			logfields.Unit(id),
			slog.String("batch", p.name),
			slog.Any("panic", recovered),
			slog.String("stack", string(stack)))
	case err != nil:
		c.Add(id, err)
		p.recorder.IncUnitResult(p.name, metrics.ResultFailed)
		p.logger.Debug("Work unit failed", logfields.Unit(id), slog.String("batch", p.name), logfields.Error(err))
	default:
		p.recorder.IncUnitResult(p.name, metrics.ResultSuccess)
	}
}

func (p *Pool) reportProgress(done, total int) {
	if p.progress == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warn("Progress callback panicked", slog.String("batch", p.name), slog.Any("panic", r))
		}
	}()
	p.progress(done, total)
}

// safeExecute converts a panic in fn into a recovered value and stack trace.
func safeExecute(fn func() error) (recovered any, stack []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			recovered = r
			stack = debug.Stack()
		}
	}()
	return nil, nil, fn()
}
