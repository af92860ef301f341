package manifest

import (
	"bytes"
	stdErrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/plantuml-generator/internal/foundation/errors"
)

// ErrManifestNotFound is returned by Load when the manifest file does not exist.
var ErrManifestNotFound = stdErrors.New("manifest not found")

// Load reads, defaults and validates a manifest file.
func Load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stdErrors.Is(err, fs.ErrNotExist) {
			return nil, ferrors.WrapError(ErrManifestNotFound, ferrors.CategoryNotFound, "manifest "+path+" does not exist").
				WithContext("path", path).
				Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "read manifest "+path).Build()
	}
	lib, err := Parse(data)
	if err != nil {
		return nil, err
	}
	lib.baseDir = filepath.Dir(path)
	return lib, nil
}

// Parse decodes a YAML manifest, applies defaults and validates the shape of
// the tree. Cross references are validated separately by NewResolver.
func Parse(data []byte) (*Library, error) {
	var lib Library
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&lib); err != nil && !stdErrors.Is(err, io.EOF) {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "invalid manifest").Fatal().Build()
	}
	lib.ApplyDefaults()
	if err := lib.Validate(); err != nil {
		return nil, err
	}
	return &lib, nil
}

// Validate checks required fields and enumerations. Every problem is reported.
func (l *Library) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(l.Name) == "" {
		add("library name is required")
	}
	for _, p := range l.Packages {
		if err := p.URN.Validate(); err != nil {
			add("package: %v", err)
		}
		for _, ex := range p.Examples {
			if ex.Name == "" || ex.Template == "" {
				add("package %s: example needs a name and a template", p.URN)
			}
		}
		for _, m := range p.Modules {
			if err := m.URN.Validate(); err != nil {
				add("module in %s: %v", p.URN, err)
			}
			for _, it := range m.Items {
				if err := it.URN.Validate(); err != nil {
					add("item in %s: %v", m.URN, err)
				}
				if it.Icon != nil {
					switch it.Icon.Type {
					case IconSource:
						if strings.TrimSpace(it.Icon.Source) == "" {
							add("item %s: Source icon needs a source path", it.URN)
						}
					case IconReference:
						if it.Icon.URN.IsZero() {
							add("item %s: Reference icon needs a urn", it.URN)
						}
					default:
						add("item %s: unknown icon type %q", it.URN, it.Icon.Type)
					}
				}
				for _, e := range it.Elements {
					switch e.Shape.Type {
					case ShapeIcon, ShapeIconCard, ShapeIconGroup, ShapeGroup, ShapeCustom:
					default:
						add("item %s: unknown shape type %q", it.URN, e.Shape.Type)
					}
				}
			}
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return ferrors.ConfigError("invalid manifest:\n  - " + strings.Join(problems, "\n  - ")).
		WithContext("problems", len(problems)).
		Build()
}

// ResolvePath resolves a manifest relative path against the manifest directory.
func (l *Library) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || l.baseDir == "" {
		return p
	}
	return filepath.Join(l.baseDir, p)
}
