package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/plantuml-generator/internal/logfields"
	"git.home.luguber.info/inful/plantuml-generator/internal/pathglob"
)

// BuildFunc runs one build. Its error is logged and does not stop watching.
type BuildFunc func(ctx context.Context) error

// Watcher runs a build once at start and again after matching files under
// root change. Bursts of events closer than the debounce window collapse
// into a single build.
type Watcher struct {
	root     string
	patterns []string
	debounce time.Duration
	build    BuildFunc
	logger   *slog.Logger
}

// NewWatcher creates a watcher for the files under root matching patterns.
func NewWatcher(root string, patterns []string, debounce time.Duration, build BuildFunc) *Watcher {
	return &Watcher{
		root:     root,
		patterns: patterns,
		debounce: debounce,
		build:    build,
		logger:   slog.Default(),
	}
}

// SetLogger overrides the logger.
func (w *Watcher) SetLogger(l *slog.Logger) {
	if l != nil {
		w.logger = l
	}
}

// Run blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	if err := w.addTree(fw, w.root); err != nil {
		return err
	}
	w.logger.Info("Watching diagram sources", logfields.Path(w.root), slog.Any("patterns", w.patterns))
	w.runBuild(ctx)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Stopping watcher")
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(fw, event) {
				continue
			}
			w.logger.Debug("Source change detected", logfields.File(event.Name), slog.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("File watcher error", logfields.Error(err))
		case <-fire:
			fire = nil
			w.runBuild(ctx)
		}
	}
}

func (w *Watcher) runBuild(ctx context.Context) {
	if err := w.build(ctx); err != nil {
		w.logger.Error("Diagram build failed", logfields.Error(err))
	}
}

// relevant filters events down to matching sources. New directories are
// added to the watch list since fsnotify is not recursive.
func (w *Watcher) relevant(fw *fsnotify.Watcher, event fsnotify.Event) bool {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return false
	}
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil || hidden(rel) {
		return false
	}
	if event.Has(fsnotify.Create) {
		if err := w.addTree(fw, event.Name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			w.logger.Warn("Cannot watch new directory", logfields.Path(event.Name), logfields.Error(err))
		}
	}
	rel = filepath.ToSlash(rel)
	for _, p := range w.patterns {
		if pathglob.Match(p, rel) {
			return true
		}
	}
	return false
}

// addTree watches dir and its non-hidden subdirectories. Non-directories
// are ignored.
func (w *Watcher) addTree(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != w.root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := fw.Add(p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
		return nil
	})
}

func hidden(rel string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(rel), "/") {
		if strings.HasPrefix(seg, ".") && seg != "." && seg != ".." {
			return true
		}
	}
	return strings.HasPrefix(rel, "..")
}
