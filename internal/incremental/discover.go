package incremental

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"git.home.luguber.info/inful/plantuml-generator/internal/pathglob"
)

// ErrNoSources is returned by DiscoverSources when the source directory does not exist.
var ErrNoSources = errors.New("source directory does not exist")

// Source is a discovered diagram source file.
type Source struct {
	Path    string
	ModTime time.Time
}

// DiscoverSources lists the files under root matching any of patterns,
// sorted by path. Hidden directories are not searched.
func DiscoverSources(root string, patterns []string) ([]Source, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoSources, root)
		}
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	paths, err := pathglob.Glob(root, patterns...)
	if err != nil {
		return nil, err
	}
	sources := make([]Source, 0, len(paths))
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		sources = append(sources, Source{Path: p, ModTime: fi.ModTime()})
	}
	return sources, nil
}
