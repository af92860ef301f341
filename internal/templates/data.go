package templates

import "git.home.luguber.info/inful/plantuml-generator/internal/manifest"

// LibraryBootstrapData feeds library_bootstrap.tmpl.
type LibraryBootstrapData struct {
	LibraryName   string
	RemoteURL     string
	Customization manifest.Customization
}

// LibraryDocumentationData feeds library_documentation.tmpl and library_summary.tmpl.
type LibraryDocumentationData struct {
	LibraryName string
	RemoteURL   string
	Packages    []PackageSummary
}

// PackageSummary lists the modules of a package for the library pages.
type PackageSummary struct {
	PackageURN string
	Modules    []ModuleSummary
}

// ModuleSummary lists the item URNs of a module.
type ModuleSummary struct {
	ModuleURN string
	ItemURNs  []string
}

// PackageBootstrapData feeds package_bootstrap.tmpl.
type PackageBootstrapData struct {
	PackageURN  string
	PackageName string
}

// PackageEmbeddedData feeds package_embedded.tmpl. LibraryBootstrap is
// empty in Full mode.
type PackageEmbeddedData struct {
	Mode             string
	PackageURN       string
	LibraryBootstrap string
	PackageBootstrap string
	PackageItems     string
}

// PackageDocumentationData feeds package_documentation.tmpl.
type PackageDocumentationData struct {
	PackageURN      string
	PackageName     string
	RemoteURL       string
	PathToBase      string
	EmbeddedEnabled bool
	Modules         []PackageModule
	Examples        []PackageExample
}

// PackageModule is a module row of the package page.
type PackageModule struct {
	ModuleURN string
	ItemCount int
}

// PackageExample is an example of the package page. Paths are relative to
// the output directory.
type PackageExample struct {
	Name        string
	Source      string
	Destination string
}

// PackageExampleData feeds user example templates.
type PackageExampleData struct {
	PackageURN string
	PathToBase string
}

// ModuleDocumentationData feeds module_documentation.tmpl.
type ModuleDocumentationData struct {
	ModuleURN          string
	ModuleName         string
	PathToBase         string
	ItemCount          int
	Families           []ModuleFamily
	ItemsWithoutFamily []ModuleItem
}

// ModuleFamily groups the items sharing a family.
type ModuleFamily struct {
	Name   string
	Anchor string
	Items  []ModuleItem
}

// ModuleItem is an item row of the module page. Illustration is relative
// to the output directory.
type ModuleItem struct {
	ItemURN      string
	Illustration string
}

// ItemSourceData feeds item_source.tmpl.
type ItemSourceData struct {
	ItemURN  string
	Sprites  []string
	Elements []ElementSource
}

// ElementSource is one procedure of an item source. Type is the shape
// type; fields a shape does not use are empty.
type ElementSource struct {
	Type           string
	ProcedureName  string
	IconURN        string
	SpriteName     string
	StereotypeName string
	FamilyName     string
	DefaultLabel   string
	Properties     map[string]any
}

// ItemDocumentationData feeds item_documentation.tmpl.
type ItemDocumentationData struct {
	ItemURN     string
	ItemName    string
	PathToBase  string
	Icon        *ItemIllustration
	SpriteNames []string
	Elements    []ItemElement
}

// ItemIllustration is the icon of an item page, relative to the output directory.
type ItemIllustration struct {
	Name string
	Path string
}

// ItemElement is an element section of the item page. The snippet paths
// are absolute so the template can read them with readFile.
type ItemElement struct {
	Name              string
	IllustrationPath  string
	LocalSnippetPath  string
	RemoteSnippetPath string
}

// ElementSnippetData feeds item_snippet.tmpl.
type ElementSnippetData struct {
	RemoteURL        string
	PackageURN       string
	ItemURN          string
	PathToBase       string
	ElementShape     string
	SnippetMode      string
	ProcedureName    string
	VariableName     string
	PrimaryLabel     string
	TechnicalLabel   string
	DescriptionLabel string
	Properties       map[string]any
}
