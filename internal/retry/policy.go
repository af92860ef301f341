package retry

import (
	"time"

	"git.home.luguber.info/inful/plantuml-generator/internal/config"
)

const (
	defaultInitial = time.Second
	defaultMax     = 30 * time.Second
	defaultRetries = 3
)

// Policy describes how long to wait between attempts of a transient
// download and how many extra attempts to make.
type Policy struct {
	Mode       config.RetryBackoffMode
	Initial    time.Duration
	Max        time.Duration
	MaxRetries int
}

// NewPolicy fills unset or invalid fields with the download defaults
// (exponential, 1s, capped at 30s, 3 retries). A zero maxRetries is kept:
// it disables retries.
func NewPolicy(mode config.RetryBackoffMode, initial, maxDelay time.Duration, maxRetries int) Policy {
	p := Policy{Mode: config.RetryBackoffExponential, Initial: defaultInitial, Max: defaultMax, MaxRetries: defaultRetries}
	switch mode {
	case config.RetryBackoffFixed, config.RetryBackoffLinear:
		p.Mode = mode
	}
	if initial > 0 {
		p.Initial = initial
	}
	if maxDelay > 0 {
		p.Max = maxDelay
	}
	if maxRetries >= 0 {
		p.MaxRetries = maxRetries
	}
	p.Initial = min(p.Initial, p.Max)
	return p
}

func FromConfig(cfg config.RetryConfig) Policy {
	return NewPolicy(cfg.Backoff, cfg.InitialDelay, cfg.MaxDelay, cfg.MaxRetries)
}

// Delay is the wait before retry n (the first retry is 1).
func (p Policy) Delay(n int) time.Duration {
	var d time.Duration
	switch {
	case n <= 0:
		return 0
	case p.Mode == config.RetryBackoffFixed:
		d = p.Initial
	case p.Mode == config.RetryBackoffLinear:
		d = time.Duration(n) * p.Initial
	case n > 30:
		d = p.Max
	default:
		d = p.Initial << (n - 1)
	}
	return min(d, p.Max)
}
