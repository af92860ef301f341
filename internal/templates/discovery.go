package templates

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"git.home.luguber.info/inful/plantuml-generator/internal/pathglob"
)

// Discover finds the user templates of a library. pattern is relative to
// baseDir; a template is named by its path relative to the static root of
// the pattern, so "templates/**" names templates/eip/example.tmpl
// "eip/example.tmpl". A missing root directory yields no template.
func Discover(baseDir, pattern string) (map[string]string, error) {
	if pattern == "" {
		return map[string]string{}, nil
	}
	root := filepath.Join(baseDir, filepath.FromSlash(pathglob.Root(pattern)))
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return map[string]string{}, nil
	}

	files, err := pathglob.Glob(baseDir, pattern)
	if err != nil {
		return nil, fmt.Errorf("discover templates: %w", err)
	}
	found := make(map[string]string, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		if err != nil {
			return nil, fmt.Errorf("discover templates: %w", err)
		}
		found[path.Clean(filepath.ToSlash(rel))] = f
	}
	return found, nil
}
