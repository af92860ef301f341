package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/plantuml-generator/internal/foundation/errors"
	"git.home.luguber.info/inful/plantuml-generator/internal/logfields"
	"git.home.luguber.info/inful/plantuml-generator/internal/plantuml"
	"git.home.luguber.info/inful/plantuml-generator/internal/retry"
)

// TmorinDirectory is the cache subdirectory holding tmorin releases.
const TmorinDirectory = "tmorin_plantuml-libs"

// TmorinPaths returns the archive and extraction directory of a release.
func TmorinPaths(cache, version string) (archive, dir string) {
	base := filepath.Join(cache, TmorinDirectory)
	return filepath.Join(base, "archive-"+version+".zip"), filepath.Join(base, version)
}

func (m *Manager) installTmorin(ctx context.Context, cache, version string, policy retry.Policy) error {
	archive, dir := TmorinPaths(cache, version)
	if m.cfg.Force {
		for _, p := range []string{archive, dir} {
			if err := os.RemoveAll(p); err != nil {
				return ferrors.FileSystemError("remove " + p).WithCause(err).Build()
			}
		}
	}

	if !exists(archive) {
		url := fmt.Sprintf(m.releaseURL, version)
		if err := plantuml.Download(ctx, m.http, url, archive, policy); err != nil {
			return err
		}
	}
	if exists(dir) {
		m.logger.Debug("Release already extracted", logfields.Path(dir))
		return nil
	}

	// Extract next to the final directory so a failed extraction is retried.
	tmp, err := os.MkdirTemp(filepath.Dir(dir), "."+version+"-*")
	if err != nil {
		return ferrors.FileSystemError("create extraction directory").WithCause(err).Build()
	}
	defer func() { _ = os.RemoveAll(tmp) }()

	n, err := Unzip(archive, tmp)
	if err != nil {
		return err
	}
	if err := os.Rename(tmp, dir); err != nil {
		return ferrors.FileSystemError("move extracted release to " + dir).WithCause(err).Build()
	}
	m.logger.Info("Release installed", slog.String("version", version), logfields.Path(dir), logfields.Count(n))
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
