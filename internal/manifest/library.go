// Package manifest models the library manifest: a tree of packages, modules,
// items and elements, each addressed by a URN.
package manifest

import (
	"git.home.luguber.info/inful/plantuml-generator/internal/urn"
)

// Default template names, resolved against the built-in and discovered templates.
const (
	TemplateLibraryBootstrap     = "library_bootstrap.tmpl"
	TemplateLibraryDocumentation = "library_documentation.tmpl"
	TemplateLibrarySummary       = "library_summary.tmpl"
	TemplatePackageBootstrap     = "package_bootstrap.tmpl"
	TemplatePackageEmbedded      = "package_embedded.tmpl"
	TemplatePackageDocumentation = "package_documentation.tmpl"
	TemplateModuleDocumentation  = "module_documentation.tmpl"
	TemplateItemDocumentation    = "item_documentation.tmpl"
	TemplateItemSource           = "item_source.tmpl"
	TemplateItemSnippet          = "item_snippet.tmpl"
)

// Library is the root of a manifest.
type Library struct {
	// Name of the library.
	Name string `yaml:"name" json:"name" jsonschema:"required,description=The name of the library."`
	// RemoteURL is where the generated library is published.
	RemoteURL string `yaml:"remote_url" json:"remote_url" jsonschema:"required,description=The URL used to fetch the library remotely."`
	// Packages provided by the library.
	Packages []Package `yaml:"packages" json:"packages,omitempty" jsonschema:"description=The packages provided by the library."`
	// Templates overrides the library level template names.
	Templates LibraryTemplates `yaml:"templates" json:"templates,omitempty"`
	// Customization tunes rendered resources.
	Customization Customization `yaml:"customization" json:"customization,omitempty"`
	// TemplateDiscoveryPattern globs user templates, relative to the manifest.
	TemplateDiscoveryPattern string `yaml:"template_discovery_pattern" json:"template_discovery_pattern,omitempty" jsonschema:"description=A glob discovering user templates that override the built-in ones."`

	// baseDir is the directory of the manifest file, set by Load.
	baseDir string
}

// BaseDir returns the directory relative paths of the manifest are resolved against.
func (l *Library) BaseDir() string { return l.baseDir }

// LibraryTemplates names the templates rendering library level files.
type LibraryTemplates struct {
	Bootstrap     string `yaml:"bootstrap" json:"bootstrap,omitempty" jsonschema:"description=Template of <library>/bootstrap.puml."`
	Documentation string `yaml:"documentation" json:"documentation,omitempty" jsonschema:"description=Template of <library>/README.md."`
	Summary       string `yaml:"summary" json:"summary,omitempty" jsonschema:"description=Template of <library>/SUMMARY.md."`
}

// Customization tunes icon and text rendering.
type Customization struct {
	IconFormat     string `yaml:"icon_format" json:"icon_format,omitempty" jsonschema:"description=Image format of generated icons,default=png"`
	IconHeight     int    `yaml:"icon_height" json:"icon_height,omitempty" jsonschema:"description=Height of generated icons,default=50"`
	TextWidthMax   int    `yaml:"text_width_max" json:"text_width_max,omitempty" jsonschema:"default=200"`
	MsgWidthMax    int    `yaml:"msg_width_max" json:"msg_width_max,omitempty" jsonschema:"default=150"`
	FontSizeXS     int    `yaml:"font_size_xs" json:"font_size_xs,omitempty" jsonschema:"default=10"`
	FontSizeSM     int    `yaml:"font_size_sm" json:"font_size_sm,omitempty" jsonschema:"default=12"`
	FontSizeMD     int    `yaml:"font_size_md" json:"font_size_md,omitempty" jsonschema:"default=16"`
	FontSizeLG     int    `yaml:"font_size_lg" json:"font_size_lg,omitempty" jsonschema:"default=20"`
	FontColor      string `yaml:"font_color" json:"font_color,omitempty" jsonschema:"default=#212121"`
	FontColorLight string `yaml:"font_color_light" json:"font_color_light,omitempty" jsonschema:"default=#757575"`
}

// SpriteSize pairs a sprite size name with the font size it is rendered at.
type SpriteSize struct {
	Name   string // xs, sm, md, lg
	Height int
}

// Suffix is the capitalized size name appended to sprite names ("Xs").
func (s SpriteSize) Suffix() string {
	return urn.UpperCamelCase(s.Name)
}

// SpriteSizes lists the four sprite sizes, smallest first.
func (c Customization) SpriteSizes() []SpriteSize {
	return []SpriteSize{
		{Name: "xs", Height: c.FontSizeXS},
		{Name: "sm", Height: c.FontSizeSM},
		{Name: "md", Height: c.FontSizeMD},
		{Name: "lg", Height: c.FontSizeLG},
	}
}

// Package groups modules and examples.
type Package struct {
	URN       urn.URN          `yaml:"urn" json:"urn" jsonschema:"required"`
	Modules   []Module         `yaml:"modules" json:"modules,omitempty"`
	Examples  []Example        `yaml:"examples" json:"examples,omitempty"`
	Templates PackageTemplates `yaml:"templates" json:"templates,omitempty"`
	Rendering PackageRendering `yaml:"rendering" json:"rendering,omitempty"`
}

// PackageTemplates names the templates rendering package level files.
type PackageTemplates struct {
	Bootstrap     string `yaml:"bootstrap" json:"bootstrap,omitempty" jsonschema:"description=Template of <package>/bootstrap.puml."`
	Embedded      string `yaml:"embedded" json:"embedded,omitempty" jsonschema:"description=Template of <package>/single.puml and <package>/full.puml."`
	Documentation string `yaml:"documentation" json:"documentation,omitempty" jsonschema:"description=Template of <package>/README.md."`
}

// PackageRendering toggles optional package outputs.
type PackageRendering struct {
	SkipEmbedded bool `yaml:"skip_embedded" json:"skip_embedded,omitempty" jsonschema:"description=Skip <package>/single.puml and <package>/full.puml."`
}

// Example is a diagram rendered to showcase a package.
type Example struct {
	Name     string `yaml:"name" json:"name" jsonschema:"required"`
	Template string `yaml:"template" json:"template" jsonschema:"required,description=Template rendering the example .puml file."`
}

// Module groups items.
type Module struct {
	URN       urn.URN         `yaml:"urn" json:"urn" jsonschema:"required"`
	Items     []Item          `yaml:"items" json:"items,omitempty"`
	Templates ModuleTemplates `yaml:"templates" json:"templates,omitempty"`
}

// ModuleTemplates names the templates rendering module level files.
type ModuleTemplates struct {
	Documentation string `yaml:"documentation" json:"documentation,omitempty" jsonschema:"description=Template of <module>/README.md."`
}

// Item is one icon with its diagram elements.
type Item struct {
	URN       urn.URN       `yaml:"urn" json:"urn" jsonschema:"required"`
	Family    string        `yaml:"family" json:"family,omitempty"`
	Icon      *Icon         `yaml:"icon" json:"icon,omitempty"`
	Elements  []Element     `yaml:"elements" json:"elements,omitempty"`
	Templates ItemTemplates `yaml:"templates" json:"templates,omitempty"`
}

// ItemTemplates names the templates rendering item level files.
type ItemTemplates struct {
	Documentation string `yaml:"documentation" json:"documentation,omitempty" jsonschema:"description=Template of <item>.md."`
	Source        string `yaml:"source" json:"source,omitempty" jsonschema:"description=Template of <item>.puml."`
	Snippet       string `yaml:"snippet" json:"snippet,omitempty" jsonschema:"description=Template of the element snippets."`
}

// IconType tells whether an icon is rendered from a file or borrowed from another item.
type IconType string

const (
	IconSource    IconType = "Source"
	IconReference IconType = "Reference"
)

// Icon is either an image file (Source) or another item's icon (Reference).
type Icon struct {
	Type   IconType `yaml:"type" json:"type" jsonschema:"required,enum=Source,enum=Reference"`
	Source string   `yaml:"source,omitempty" json:"source,omitempty" jsonschema:"description=Path of the source image for Source icons."`
	URN    urn.URN  `yaml:"urn,omitempty" json:"urn,omitempty" jsonschema:"description=URN of the referenced item for Reference icons."`
}

// ShapeType enumerates the element shapes.
type ShapeType string

const (
	ShapeIcon      ShapeType = "Icon"
	ShapeIconCard  ShapeType = "IconCard"
	ShapeIconGroup ShapeType = "IconGroup"
	ShapeGroup     ShapeType = "Group"
	ShapeCustom    ShapeType = "Custom"
)

// Element is one PlantUML procedure generated for an item.
type Element struct {
	Shape Shape `yaml:"shape" json:"shape" jsonschema:"required"`
}

// Shape selects the element procedure and its stereotype.
type Shape struct {
	Type           ShapeType      `yaml:"type" json:"type" jsonschema:"required,enum=Icon,enum=IconCard,enum=IconGroup,enum=Group,enum=Custom"`
	StereotypeName string         `yaml:"stereotype_name,omitempty" json:"stereotype_name,omitempty"`
	Properties     map[string]any `yaml:"properties,omitempty" json:"properties,omitempty"`
}

// ElementName derives the procedure name of the shape for an item.
func (s Shape) ElementName(item urn.URN) string {
	switch s.Type {
	case ShapeIconCard:
		return item.Name + "Card"
	case ShapeIconGroup:
		return item.Name + "Group"
	default:
		return item.Name
	}
}
