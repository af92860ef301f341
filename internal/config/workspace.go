package config

import (
	"path/filepath"
	"strings"
)

// WorkspaceConfig drives the workspace commands.
type WorkspaceConfig struct {
	SourceDirectory string      `yaml:"source_directory"`
	CacheDirectory  string      `yaml:"cache_directory"`
	Manifest        string      `yaml:"manifest"`
	Force           bool        `yaml:"force"`
	Retry           RetryConfig `yaml:"retry"`
}

// Normalize fills defaults.
func (c *WorkspaceConfig) Normalize() error {
	if strings.TrimSpace(c.SourceDirectory) == "" {
		c.SourceDirectory = DefaultSourceDirectory
	}
	if strings.TrimSpace(c.CacheDirectory) == "" {
		c.CacheDirectory = DefaultCacheDirectory
	}
	if strings.TrimSpace(c.Manifest) == "" {
		c.Manifest = DefaultWorkspaceManifest
	}
	return c.Retry.Normalize()
}

// ManifestPath returns the workspace manifest location inside the source directory.
func (c *WorkspaceConfig) ManifestPath() string {
	if filepath.IsAbs(c.Manifest) {
		return c.Manifest
	}
	return filepath.Join(c.SourceDirectory, c.Manifest)
}
