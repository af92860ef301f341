package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/plantuml-generator/internal/foundation/errors"
)

// Artifact types.
const (
	TypeTmorin = "github.com/tmorin/plantuml-libs"
	TypeGit    = "git"
)

// Manifest is the workspace manifest.
type Manifest struct {
	CacheDirectory string     `yaml:"cache_directory" json:"cache_directory"`
	Artifacts      []Artifact `yaml:"artifacts" json:"artifacts"`
}

// Artifact is one installable library. Version applies to tmorin archives;
// URL, Ref and Directory to git repositories.
type Artifact struct {
	Type      string `yaml:"type" json:"type"`
	Version   string `yaml:"version,omitempty" json:"version,omitempty"`
	URL       string `yaml:"url,omitempty" json:"url,omitempty"`
	Ref       string `yaml:"ref,omitempty" json:"ref,omitempty"`
	Directory string `yaml:"directory,omitempty" json:"directory,omitempty"`
}

// Name identifies the artifact in logs and errors.
func (a Artifact) Name() string {
	switch a.Type {
	case TypeTmorin:
		return "tmorin_plantuml-libs@" + a.Version
	case TypeGit:
		return "git:" + a.Directory
	default:
		return a.Type
	}
}

// Validate checks the fields required by the artifact type.
func (a Artifact) Validate() error {
	switch a.Type {
	case TypeTmorin:
		if strings.TrimSpace(a.Version) == "" {
			return fmt.Errorf("artifact %s: version is required", a.Type)
		}
		if !versionPattern.MatchString(a.Version) {
			return fmt.Errorf("artifact %s: invalid version %q", a.Type, a.Version)
		}
	case TypeGit:
		if strings.TrimSpace(a.URL) == "" {
			return errors.New("git artifact: url is required")
		}
		if strings.TrimSpace(a.Directory) == "" {
			return fmt.Errorf("git artifact %s: directory is required", a.URL)
		}
		if !filepath.IsLocal(a.Directory) {
			return fmt.Errorf("git artifact %s: directory %q must stay inside the cache", a.URL, a.Directory)
		}
	default:
		return fmt.Errorf("unknown artifact type %q", a.Type)
	}
	return nil
}

// versionPattern accepts release versions such as "12.0.0" or "1.2.0-rc1".
// Versions become path segments of the cache, so "." and ".." are excluded.
var versionPattern = regexp.MustCompile(`^[0-9A-Za-z][0-9A-Za-z._+-]*$`)

// LoadManifest reads and validates a workspace manifest. An empty cache
// directory falls back to defaultCache.
func LoadManifest(path, defaultCache string) (*Manifest, error) {
	// #nosec G304 -- the manifest path is chosen by the user.
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ferrors.NotFoundError("workspace manifest "+path+" does not exist, run `workspace init` first").
				WithCause(err).
				UserAction().
				Build()
		}
		return nil, ferrors.FileSystemError("read " + path).WithCause(err).Build()
	}
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, ferrors.ValidationError("parse " + path).WithCause(err).Build()
	}
	if strings.TrimSpace(m.CacheDirectory) == "" {
		m.CacheDirectory = defaultCache
	}
	for i, a := range m.Artifacts {
		if err := a.Validate(); err != nil {
			return nil, ferrors.ValidationError(fmt.Sprintf("%s: artifact %d", path, i)).WithCause(err).Build()
		}
	}
	return &m, nil
}

// Save writes the manifest to path, creating parent directories.
func (m *Manifest) Save(path string) error {
	raw, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode workspace manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return ferrors.FileSystemError("create " + filepath.Dir(path)).WithCause(err).Build()
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return ferrors.FileSystemError("write " + path).WithCause(err).Build()
	}
	return nil
}
