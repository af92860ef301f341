package config

import (
	"fmt"
	"strings"
	"time"

	"git.home.luguber.info/inful/plantuml-generator/internal/foundation/normalization"
)

// RetryBackoffMode shapes the growth of the delay between download attempts.
type RetryBackoffMode string

const (
	RetryBackoffFixed       RetryBackoffMode = "fixed"
	RetryBackoffLinear      RetryBackoffMode = "linear"
	RetryBackoffExponential RetryBackoffMode = "exponential"
)

var retryBackoffs = normalization.NewEnum("retry backoff", map[string]RetryBackoffMode{
	"fixed":       RetryBackoffFixed,
	"linear":      RetryBackoffLinear,
	"exponential": RetryBackoffExponential,
}, "")

// RetryConfig configures retries of network downloads (PlantUML jar, workspace archives).
type RetryConfig struct {
	Backoff      RetryBackoffMode `yaml:"backoff" help:"Retry backoff mode (fixed, linear, exponential)." default:"exponential" env:"PLANTUML_GENERATOR_RETRY_BACKOFF"`
	InitialDelay time.Duration    `yaml:"initial_delay" help:"Delay before the first retry." default:"1s" env:"PLANTUML_GENERATOR_RETRY_INITIAL_DELAY"`
	MaxDelay     time.Duration    `yaml:"max_delay" help:"Upper bound of a single retry delay." default:"30s" env:"PLANTUML_GENERATOR_RETRY_MAX_DELAY"`
	MaxRetries   int              `yaml:"max_retries" help:"Retries after the first failed attempt." default:"3" env:"PLANTUML_GENERATOR_RETRY_MAX"`
}

// Normalize canonicalizes the backoff mode and rejects impossible bounds.
func (r *RetryConfig) Normalize() error {
	if strings.TrimSpace(string(r.Backoff)) == "" {
		r.Backoff = RetryBackoffExponential
	} else {
		mode, err := retryBackoffs.Parse(string(r.Backoff))
		if err != nil {
			return err
		}
		r.Backoff = mode
	}
	if r.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative: %d", r.MaxRetries)
	}
	return nil
}
