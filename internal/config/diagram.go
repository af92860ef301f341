package config

import (
	"fmt"
	"strings"
	"time"
)

// DiagramConfig drives `diagram generate`.
type DiagramConfig struct {
	PlantUMLConfig `yaml:",inline"`

	SourceDirectory string        `yaml:"source_directory"`
	SourcePatterns  []string      `yaml:"source_patterns"`
	Force           bool          `yaml:"force"`
	Args            []string      `yaml:"args"`
	Watch           bool          `yaml:"watch"`
	PollInterval    time.Duration `yaml:"poll_interval"`
	Retry           RetryConfig   `yaml:"retry"`
}

// SplitPatterns splits a comma separated pattern list, dropping blanks.
func SplitPatterns(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Normalize fills defaults and derived values.
func (c *DiagramConfig) Normalize() error {
	if err := c.PlantUMLConfig.Normalize(); err != nil {
		return err
	}
	if strings.TrimSpace(c.SourceDirectory) == "" {
		c.SourceDirectory = DefaultSourceDirectory
	}
	if len(c.SourcePatterns) == 0 {
		c.SourcePatterns = SplitPatterns(DefaultSourcePatterns)
	}
	if c.PollInterval < 0 {
		return fmt.Errorf("poll interval cannot be negative: %s", c.PollInterval)
	}
	if c.Watch && c.PollInterval > 0 {
		return fmt.Errorf("--watch and --poll-interval are mutually exclusive")
	}
	return c.Retry.Normalize()
}
