package worker

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/plantuml-generator/internal/config"
	ferrors "git.home.luguber.info/inful/plantuml-generator/internal/foundation/errors"
)

// Bounds of a valid worker count.
const (
	MinWorkers = 1
	MaxWorkers = 256
)

// ConfigSource tells where the worker count came from.
type ConfigSource string

const (
	SourceExplicit ConfigSource = "explicit"
	SourceEnv      ConfigSource = "env"
	SourceCPU      ConfigSource = "cpu"
)

// Config is the validated worker count of a pool.
type Config struct {
	Workers int
	Source  ConfigSource
}

// LookupFunc reads an environment variable; os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// ResolveConfig picks the worker count. An explicit value in [1,256] wins;
// zero means unset and any other explicit value is a config error. Otherwise
// the PLANTUML_GENERATOR_THREADS override is used when it parses into range,
// and the CPU count is the fallback. The result is never below 1.
func ResolveConfig(explicit int, lookup LookupFunc, cpus int) (Config, error) {
	if explicit != 0 {
		if explicit < MinWorkers || explicit > MaxWorkers {
			return Config{}, ferrors.ConfigError(fmt.Sprintf("worker count %d out of range [%d,%d]", explicit, MinWorkers, MaxWorkers)).
				WithContext("workers", explicit).
				Build()
		}
		return Config{Workers: explicit, Source: SourceExplicit}, nil
	}

	fallback := Config{Workers: max(cpus, MinWorkers), Source: SourceCPU}
	if lookup == nil {
		return fallback, nil
	}
	raw, ok := lookup(config.EnvThreads)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < MinWorkers || n > MaxWorkers {
		slog.Warn("Ignoring invalid worker count override",
			slog.String("env", config.EnvThreads),
			slog.String("value", raw),
			slog.Int("fallback", fallback.Workers))
		return fallback, nil
	}
	return Config{Workers: n, Source: SourceEnv}, nil
}

// DefaultConfig resolves the worker count from the process environment and CPU count.
func DefaultConfig() Config {
	cfg, _ := ResolveConfig(0, os.LookupEnv, runtime.NumCPU())
	return cfg
}
