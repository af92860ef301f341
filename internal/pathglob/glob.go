// Package pathglob matches slash separated paths against glob patterns where
// "**" spans any number of directories, and walks a tree for matching files.
package pathglob

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Match reports whether name matches pattern. Both are slash separated.
// A "**" segment matches zero or more segments; other segments follow
// path.Match. A malformed pattern never matches.
func Match(pattern, name string) bool {
	return matchSegments(split(pattern), split(name))
}

func split(p string) []string {
	p = strings.Trim(path.Clean(filepath.ToSlash(p)), "/")
	if p == "." || p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func matchSegments(pattern, name []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			if len(rest) == 0 {
				return true
			}
			for i := 0; i <= len(name); i++ {
				if matchSegments(rest, name[i:]) {
					return true
				}
			}
			return false
		}
		if len(name) == 0 {
			return false
		}
		ok, err := path.Match(pattern[0], name[0])
		if err != nil || !ok {
			return false
		}
		pattern, name = pattern[1:], name[1:]
	}
	return len(name) == 0
}

// Root returns the leading segments of pattern that hold no glob
// metacharacter, e.g. "templates" for "templates/**/*.tmpl".
func Root(pattern string) string {
	var static []string
	for _, seg := range split(pattern) {
		if strings.ContainsAny(seg, `*?[\`) {
			break
		}
		static = append(static, seg)
	}
	return strings.Join(static, "/")
}

// Validate rejects patterns path.Match cannot parse.
func Validate(pattern string) error {
	for _, seg := range split(pattern) {
		if seg == "**" {
			continue
		}
		if _, err := path.Match(seg, ""); err != nil {
			return fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
	}
	return nil
}

// Glob walks root and returns the regular files whose path relative to root
// matches at least one pattern. Hidden directories are not entered. Results
// are sorted and joined with root.
func Glob(root string, patterns ...string) ([]string, error) {
	for _, p := range patterns {
		if err := Validate(p); err != nil {
			return nil, err
		}
	}
	var found []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		for _, pattern := range patterns {
			if Match(pattern, rel) {
				found = append(found, p)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(found)
	return found, nil
}
