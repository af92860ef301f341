package markdown

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"git.home.luguber.info/inful/plantuml-generator/internal/logfields"
	"git.home.luguber.info/inful/plantuml-generator/internal/pathglob"
	"git.home.luguber.info/inful/plantuml-generator/internal/worker"
)

// BrokenLink is a relative link whose target does not exist.
type BrokenLink struct {
	File        string
	Line        int
	Destination string
}

func (b BrokenLink) String() string {
	return fmt.Sprintf("%s:%d: %s", b.File, b.Line, b.Destination)
}

// Report summarizes a verification.
type Report struct {
	Files  int
	Links  int
	Broken []BrokenLink
}

// Verifier checks the Markdown files of a directory tree.
type Verifier struct {
	workers worker.Config
	logger  *slog.Logger
}

// NewVerifier creates a verifier.
func NewVerifier(workers worker.Config) *Verifier {
	return &Verifier{workers: workers, logger: slog.Default()}
}

// SetLogger overrides the logger.
func (v *Verifier) SetLogger(l *slog.Logger) {
	if l != nil {
		v.logger = l
	}
}

// Verify checks every relative link and image of the Markdown files under
// root. Broken links are listed in the report sorted by file and line; the
// error reports files that could not be read.
func (v *Verifier) Verify(ctx context.Context, root string) (Report, error) {
	files, err := pathglob.Glob(root, "**/*.md")
	if err != nil {
		return Report{}, err
	}

	var (
		mu     sync.Mutex
		report = Report{Files: len(files)}
	)
	units := make([]worker.WorkUnit, 0, len(files))
	for _, file := range files {
		units = append(units, worker.NewUnit(file, func(context.Context) error {
			checked, broken, err := checkFile(root, file)
			if err != nil {
				return err
			}
			mu.Lock()
			report.Links += checked
			report.Broken = append(report.Broken, broken...)
			mu.Unlock()
			return nil
		}))
	}

	pool := worker.NewPool(v.workers, "verify")
	pool.SetLogger(v.logger)
	err = pool.Execute(ctx, units)

	sort.Slice(report.Broken, func(i, j int) bool {
		a, b := report.Broken[i], report.Broken[j]
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Line < b.Line
	})
	v.logger.Info("Markdown verified",
		logfields.Count(report.Files),
		slog.Int("links", report.Links),
		slog.Int("broken", len(report.Broken)))
	return report, err
}

func checkFile(root, file string) (int, []BrokenLink, error) {
	// #nosec G304 -- files come from walking the verified directory.
	body, err := os.ReadFile(file)
	if err != nil {
		return 0, nil, fmt.Errorf("read %s: %w", file, err)
	}
	checked := 0
	var broken []BrokenLink
	for _, link := range ExtractLinks(body) {
		target, ok := localTarget(root, filepath.Dir(file), link.Destination)
		if !ok {
			continue
		}
		checked++
		if _, err := os.Stat(target); err != nil {
			broken = append(broken, BrokenLink{File: file, Line: link.Line, Destination: link.Destination})
		}
	}
	return checked, broken, nil
}

// localTarget resolves a destination to a file path. ok is false for
// external URLs, fragments and anything else that is not a local file.
func localTarget(root, dir, dest string) (string, bool) {
	dest = strings.TrimSpace(dest)
	if dest == "" || strings.HasPrefix(dest, "#") || strings.HasPrefix(dest, "//") {
		return "", false
	}
	u, err := url.Parse(dest)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" {
		return "", false
	}
	p := filepath.FromSlash(u.Path)
	if strings.HasPrefix(u.Path, "/") {
		return filepath.Join(root, p), true
	}
	return filepath.Join(dir, p), true
}
