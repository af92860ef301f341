package retry

import (
	"context"
	"log/slog"
	"time"

	ferrors "git.home.luguber.info/inful/plantuml-generator/internal/foundation/errors"
	"git.home.luguber.info/inful/plantuml-generator/internal/logfields"
)

// Retryable reports whether err is a classified error marked for backoff.
func Retryable(err error) bool {
	classified, ok := ferrors.AsClassified(err)
	return ok && classified.CanRetry()
}

// Do runs op until it succeeds, returns a non-retryable error, the policy is
// exhausted, or ctx is done. The last error is returned unchanged.
func Do(ctx context.Context, p Policy, name string, op func(ctx context.Context) error) error {
	var err error
	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			delay := p.Delay(attempt)
			slog.Warn("Retrying operation",
				slog.String("operation", name),
				slog.Int("attempt", attempt),
				logfields.DurationMS(float64(delay.Milliseconds())),
				logfields.Error(err))
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return err
			case <-timer.C:
			}
		}
		err = op(ctx)
		if err == nil || !Retryable(err) || attempt >= p.MaxRetries {
			return err
		}
	}
}
