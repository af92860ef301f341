package library

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/plantuml-generator/internal/config"
	ferrors "git.home.luguber.info/inful/plantuml-generator/internal/foundation/errors"
	"git.home.luguber.info/inful/plantuml-generator/internal/logfields"
	"git.home.luguber.info/inful/plantuml-generator/internal/manifest"
	"git.home.luguber.info/inful/plantuml-generator/internal/metrics"
	"git.home.luguber.info/inful/plantuml-generator/internal/pipeline"
	"git.home.luguber.info/inful/plantuml-generator/internal/plantuml"
	"git.home.luguber.info/inful/plantuml-generator/internal/retry"
	"git.home.luguber.info/inful/plantuml-generator/internal/templates"
	"git.home.luguber.info/inful/plantuml-generator/internal/urn"
	"git.home.luguber.info/inful/plantuml-generator/internal/worker"
)

// Service generates libraries from manifests.
type Service struct {
	cfg      config.LibraryConfig
	workers  worker.Config
	recorder metrics.Recorder
	runner   plantuml.Runner
	http     *http.Client
}

// Result summarizes a generation.
type Result struct {
	RunID    string
	Tasks    int
	Duration time.Duration
}

// NewService creates a service; cfg must be normalized.
func NewService(cfg config.LibraryConfig, workers worker.Config) *Service {
	return &Service{cfg: cfg, workers: workers, recorder: metrics.NoopRecorder{}}
}

// SetRecorder injects a metrics recorder (optional).
func (s *Service) SetRecorder(r metrics.Recorder) {
	if r != nil {
		s.recorder = r
	}
}

// SetRunner replaces the runner of java and inkscape; nil runs the real tools.
func (s *Service) SetRunner(r plantuml.Runner) { s.runner = r }

// SetHTTPClient replaces the client downloading the PlantUML jar.
func (s *Service) SetHTTPClient(c *http.Client) { s.http = c }

// Generate loads the manifest, validates its references and runs every
// phase. Manifest problems are reported before anything is written.
func (s *Service) Generate(ctx context.Context, manifestPath string) (*Result, error) {
	runID := uuid.NewString()
	logger := slog.Default().With(logfields.RunID(runID))
	started := time.Now()

	lib, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}
	resolver, err := manifest.NewResolver(lib)
	if err != nil {
		return nil, err
	}
	logger.Info("Manifest loaded",
		logfields.File(manifestPath),
		slog.String("library", lib.Name),
		logfields.Count(resolver.Len()))

	if err := s.clean(logger); err != nil {
		return nil, err
	}

	renderer, err := templates.NewForLibrary(lib.BaseDir(), lib.TemplateDiscoveryPattern)
	if err != nil {
		return nil, err
	}

	client := plantuml.NewClient(s.cfg.PlantUMLConfig, s.runner)
	client.HTTP = s.http
	downloaded, err := client.EnsureJar(ctx, retry.FromConfig(s.cfg.Retry))
	if err != nil {
		return nil, err
	}
	if downloaded {
		logger.Info("PlantUML jar downloaded", logfields.Path(client.Jar))
	}

	tasks := Plan(resolver, PlanOptions{
		OutputDirectory: s.cfg.OutputDirectory,
		CacheDirectory:  s.cfg.CacheDirectory,
		URNs:            urn.ParseAll(s.cfg.URNs),
		Converter:       plantuml.NewInkscape(s.cfg.InkscapeBinary, s.inkscapeRunner()),
		Encoder:         client,
	})

	gen := pipeline.NewGenerator(s.workers)
	gen.SetRecorder(s.recorder)
	gen.SetLogger(logger)
	rc := &pipeline.RenderContext{
		Templates:       renderer,
		PlantUML:        client,
		Resolver:        resolver,
		OutputDirectory: s.cfg.OutputDirectory,
		CacheDirectory:  s.cfg.CacheDirectory,
	}
	if err := gen.Run(ctx, tasks, pipeline.Scopes(s.cfg.CleanupScopes), rc); err != nil {
		return nil, err
	}

	res := &Result{RunID: runID, Tasks: len(tasks), Duration: time.Since(started)}
	logger.Info("Library generated",
		logfields.Path(s.cfg.OutputDirectory),
		logfields.Count(res.Tasks),
		logfields.DurationMS(float64(res.Duration.Milliseconds())))
	return res, nil
}

func (s *Service) inkscapeRunner() plantuml.Runner {
	if s.runner != nil {
		return s.runner
	}
	return plantuml.ExecRunner{Timeout: s.cfg.ToolTimeout}
}

// clean removes the cache directory and the output of the clean URNs.
func (s *Service) clean(logger *slog.Logger) error {
	if s.cfg.CleanCache {
		logger.Info("Cleaning cache", logfields.Path(s.cfg.CacheDirectory))
		if err := os.RemoveAll(s.cfg.CacheDirectory); err != nil {
			return ferrors.FileSystemError("clean cache " + s.cfg.CacheDirectory).WithCause(err).Build()
		}
	}
	for _, u := range urn.ParseAll(s.cfg.CleanURNs) {
		if err := u.Validate(); err != nil {
			return ferrors.ValidationError(fmt.Sprintf("invalid clean urn: %v", err)).Build()
		}
		target := filepath.Join(s.cfg.OutputDirectory, filepath.FromSlash(u.Value))
		logger.Info("Cleaning output", logfields.URN(u.Value), logfields.Path(target))
		if err := os.RemoveAll(target); err != nil {
			return ferrors.FileSystemError("clean " + target).WithCause(err).Build()
		}
	}
	return nil
}
