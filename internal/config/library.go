package config

import (
	"strings"

	"git.home.luguber.info/inful/plantuml-generator/internal/foundation/normalization"
)

// CleanupScope selects which previously generated artifacts are removed
// before a generation so they get rendered again.
type CleanupScope string

const (
	CleanupAll           CleanupScope = "All"
	CleanupExample       CleanupScope = "Example"
	CleanupItem          CleanupScope = "Item"
	CleanupItemIcon      CleanupScope = "ItemIcon"
	CleanupItemSource    CleanupScope = "ItemSource"
	CleanupSnippet       CleanupScope = "Snippet"
	CleanupSnippetSource CleanupScope = "SnippetSource"
	CleanupSnippetImage  CleanupScope = "SnippetImage"
	CleanupSprite        CleanupScope = "Sprite"
	CleanupSpriteIcon    CleanupScope = "SpriteIcon"
	CleanupSpriteValue   CleanupScope = "SpriteValue"
)

var cleanupScopeNormalizer = normalization.NewEnum("cleanup scope", map[string]CleanupScope{
	"all":           CleanupAll,
	"example":       CleanupExample,
	"item":          CleanupItem,
	"itemicon":      CleanupItemIcon,
	"itemsource":    CleanupItemSource,
	"snippet":       CleanupSnippet,
	"snippetsource": CleanupSnippetSource,
	"snippetimage":  CleanupSnippetImage,
	"sprite":        CleanupSprite,
	"spriteicon":    CleanupSpriteIcon,
	"spritevalue":   CleanupSpriteValue,
}, "")

// ParseCleanupScope accepts scope names case-insensitively, with or without
// separators ("item-icon", "ItemIcon").
func ParseCleanupScope(raw string) (CleanupScope, error) {
	return cleanupScopeNormalizer.Parse(raw)
}

// CleanupScopes lists every scope in declaration order.
func CleanupScopes() []CleanupScope {
	return []CleanupScope{
		CleanupAll, CleanupExample, CleanupItem, CleanupItemIcon, CleanupItemSource,
		CleanupSnippet, CleanupSnippetSource, CleanupSnippetImage,
		CleanupSprite, CleanupSpriteIcon, CleanupSpriteValue,
	}
}

// IsIncludedIn reports whether the scope is selected by one of scopes.
func (s CleanupScope) IsIncludedIn(scopes []CleanupScope) bool {
	for _, other := range scopes {
		if other == s || other == CleanupAll {
			return true
		}
		switch s {
		case CleanupItemIcon, CleanupItemSource:
			if other == CleanupItem {
				return true
			}
		case CleanupSnippetSource, CleanupSnippetImage:
			if other == CleanupItem || other == CleanupSnippet {
				return true
			}
		case CleanupSpriteIcon, CleanupSpriteValue:
			if other == CleanupItem || other == CleanupSprite {
				return true
			}
		}
	}
	return false
}

// LibraryConfig drives `library generate`.
type LibraryConfig struct {
	PlantUMLConfig `yaml:",inline"`

	OutputDirectory string         `yaml:"output_directory"`
	InkscapeBinary  string         `yaml:"inkscape_binary"`
	CleanupScopes   []CleanupScope `yaml:"cleanup_scopes"`
	URNs            []string       `yaml:"urns"`
	CleanCache      bool           `yaml:"clean_cache"`
	CleanURNs       []string       `yaml:"clean_urns"`
	Retry           RetryConfig    `yaml:"retry"`
}

// Normalize fills defaults and derived values.
func (c *LibraryConfig) Normalize() error {
	if err := c.PlantUMLConfig.Normalize(); err != nil {
		return err
	}
	if strings.TrimSpace(c.OutputDirectory) == "" {
		c.OutputDirectory = DefaultOutputDirectory
	}
	if strings.TrimSpace(c.InkscapeBinary) == "" {
		c.InkscapeBinary = DefaultInkscapeBinary
	}
	return c.Retry.Normalize()
}
