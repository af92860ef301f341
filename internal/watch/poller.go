package watch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/plantuml-generator/internal/logfields"
)

// Poller runs a build immediately and then on a fixed interval. A build
// still running when the next one is due delays it instead of overlapping.
type Poller struct {
	interval time.Duration
	build    BuildFunc
	logger   *slog.Logger
}

// NewPoller creates a poller.
func NewPoller(interval time.Duration, build BuildFunc) *Poller {
	return &Poller{interval: interval, build: build, logger: slog.Default()}
}

// SetLogger overrides the logger.
func (p *Poller) SetLogger(l *slog.Logger) {
	if l != nil {
		p.logger = l
	}
}

// Run blocks until ctx is done.
func (p *Poller) Run(ctx context.Context) error {
	if p.interval <= 0 {
		return fmt.Errorf("poll interval must be positive: %s", p.interval)
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	_, err = s.NewJob(
		gocron.DurationJob(p.interval),
		gocron.NewTask(func() { p.poll(ctx) }),
		gocron.WithName("diagram-poll"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = s.Shutdown()
		return fmt.Errorf("failed to create poll job: %w", err)
	}

	p.logger.Info("Polling diagram sources", slog.Duration("interval", p.interval))
	s.Start()
	<-ctx.Done()
	p.logger.Info("Stopping poller")
	if err := s.Shutdown(); err != nil {
		return fmt.Errorf("failed to stop scheduler: %w", err)
	}
	return nil
}

func (p *Poller) poll(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := p.build(ctx); err != nil {
		p.logger.Error("Diagram build failed", logfields.Error(err))
	}
}
