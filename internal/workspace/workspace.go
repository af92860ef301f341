package workspace

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/plantuml-generator/internal/config"
	ferrors "git.home.luguber.info/inful/plantuml-generator/internal/foundation/errors"
	"git.home.luguber.info/inful/plantuml-generator/internal/logfields"
	"git.home.luguber.info/inful/plantuml-generator/internal/retry"
	"git.home.luguber.info/inful/plantuml-generator/internal/worker"
)

// TmorinReleaseURL is the download location of a tmorin/plantuml-libs
// release; %s is the version without the leading v.
const TmorinReleaseURL = "https://github.com/tmorin/plantuml-libs/releases/download/v%s/tmorin-plantuml-libs.zip"

// Manager initializes workspaces and installs their artifacts.
type Manager struct {
	cfg        config.WorkspaceConfig
	workers    worker.Config
	http       *http.Client
	releaseURL string
	logger     *slog.Logger
}

// NewManager creates a manager. cfg must be normalized.
func NewManager(cfg config.WorkspaceConfig, workers worker.Config) *Manager {
	return &Manager{
		cfg:        cfg,
		workers:    workers,
		releaseURL: TmorinReleaseURL,
		logger:     slog.Default(),
	}
}

// SetHTTPClient overrides the client used for archive downloads.
func (m *Manager) SetHTTPClient(c *http.Client) { m.http = c }

// SetLogger overrides the logger.
func (m *Manager) SetLogger(l *slog.Logger) {
	if l != nil {
		m.logger = l
	}
}

// Init creates the cache directory and an empty manifest. An existing
// manifest is kept unless the config forces a rewrite.
func (m *Manager) Init() (string, error) {
	path := m.cfg.ManifestPath()
	if err := os.MkdirAll(m.cfg.CacheDirectory, 0o750); err != nil {
		return "", ferrors.FileSystemError("create cache directory " + m.cfg.CacheDirectory).WithCause(err).Build()
	}
	if _, err := os.Stat(path); err == nil && !m.cfg.Force {
		m.logger.Info("Workspace manifest already exists", logfields.Path(path))
		return path, nil
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", ferrors.FileSystemError("stat " + path).WithCause(err).Build()
	}

	manifest := Manifest{CacheDirectory: m.cfg.CacheDirectory, Artifacts: []Artifact{}}
	if err := manifest.Save(path); err != nil {
		return "", err
	}
	m.logger.Info("Workspace initialized", logfields.Path(path), slog.String("cache_directory", m.cfg.CacheDirectory))
	return path, nil
}

// Install installs every artifact of the workspace manifest concurrently.
// A failing artifact does not stop the others; all failures are reported
// together.
func (m *Manager) Install(ctx context.Context) error {
	manifest, err := LoadManifest(m.cfg.ManifestPath(), m.cfg.CacheDirectory)
	if err != nil {
		return err
	}
	cache := manifest.CacheDirectory
	if !filepath.IsAbs(cache) {
		// relative cache directories are resolved against the manifest
		cache = filepath.Join(filepath.Dir(m.cfg.ManifestPath()), cache)
	}
	policy := retry.FromConfig(m.cfg.Retry)

	units := make([]worker.WorkUnit, 0, len(manifest.Artifacts))
	for _, a := range manifest.Artifacts {
		var install func(ctx context.Context) error
		switch a.Type {
		case TypeTmorin:
			install = func(ctx context.Context) error { return m.installTmorin(ctx, cache, a.Version, policy) }
		case TypeGit:
			install = func(ctx context.Context) error { return m.installGit(ctx, cache, a) }
		}
		units = append(units, worker.NewUnit(a.Name(), install))
	}
	if len(units) == 0 {
		m.logger.Info("No artifact to install", logfields.Path(m.cfg.ManifestPath()))
		return nil
	}

	m.logger.Info("Installing artifacts", logfields.Count(len(units)), slog.Bool("force", m.cfg.Force))
	pool := worker.NewPool(m.workers, "workspace")
	pool.SetLogger(m.logger)
	return pool.Execute(ctx, units)
}
