package manifest

import (
	"path"

	"git.home.luguber.info/inful/plantuml-generator/internal/urn"
)

// Output paths are slash separated and relative to the output directory,
// except sprite paths which are relative to the cache directory.

// SnippetMode selects where a snippet loads the library from.
type SnippetMode string

const (
	SnippetLocal  SnippetMode = "Local"
	SnippetRemote SnippetMode = "Remote"
)

// SnippetModes lists both modes.
var SnippetModes = []SnippetMode{SnippetLocal, SnippetRemote}

// IconPath is the rendered icon of an icon URN.
func IconPath(icon urn.URN, format string) string {
	return icon.Value + "." + format
}

// SpriteName is the PlantUML sprite identifier of an icon at a size.
func SpriteName(icon urn.URN, size SpriteSize) string {
	return icon.Name + size.Suffix()
}

// SpriteImagePath is the resized sprite input image, in the cache directory.
func SpriteImagePath(icon urn.URN, size SpriteSize) string {
	return icon.Value + size.Suffix() + ".png"
}

// SpriteValuePath is the encoded sprite text, in the cache directory.
func SpriteValuePath(icon urn.URN, size SpriteSize) string {
	return icon.Value + size.Suffix() + ".puml"
}

// SnippetSourcePath is the .puml snippet of an element.
func SnippetSourcePath(item urn.URN, shape Shape, mode SnippetMode) string {
	return ElementURN(item, shape).Value + "." + string(mode) + ".puml"
}

// SnippetImagePath is the rendered image of an element snippet.
func SnippetImagePath(item urn.URN, shape Shape, mode SnippetMode, format string) string {
	return ElementURN(item, shape).Value + "." + string(mode) + "." + format
}

// ElementURN addresses an element: the element name next to its item.
func ElementURN(item urn.URN, shape Shape) urn.URN {
	return item.Parent().Child(shape.ElementName(item))
}

// ItemSourcePath is the .puml file defining the item procedures.
func ItemSourcePath(item urn.URN) string { return item.Value + ".puml" }

// ItemDocumentationPath is the markdown page of an item.
func ItemDocumentationPath(item urn.URN) string { return item.Value + ".md" }

// ModuleDocumentationPath is the markdown page of a module.
func ModuleDocumentationPath(module urn.URN) string { return path.Join(module.Value, "README.md") }

// PackageBootstrapPath is the bootstrap include of a package.
func PackageBootstrapPath(pkg urn.URN) string { return path.Join(pkg.Value, "bootstrap.puml") }

// PackageEmbeddedPath is the single or full standalone include of a package.
func PackageEmbeddedPath(pkg urn.URN, mode EmbeddedMode) string {
	return path.Join(pkg.Value, mode.FileName())
}

// PackageDocumentationPath is the markdown page of a package.
func PackageDocumentationPath(pkg urn.URN) string { return path.Join(pkg.Value, "README.md") }

// ExampleSourcePath is the .puml file of a package example.
func ExampleSourcePath(pkg urn.URN, ex Example) string {
	return path.Join(pkg.Value, urn.SnakeCase(ex.Name)+".puml")
}

// ExampleImagePath is the rendered image of a package example.
func ExampleImagePath(pkg urn.URN, ex Example, format string) string {
	return path.Join(pkg.Value, urn.SnakeCase(ex.Name)+"."+format)
}

// Library level files.
const (
	LibraryBootstrapPath     = "bootstrap.puml"
	LibraryDocumentationPath = "README.md"
	LibrarySummaryPath       = "SUMMARY.md"
)

// EmbeddedMode selects the standalone package include flavour.
type EmbeddedMode string

const (
	// EmbeddedSingle inlines the library and package bootstraps with the items.
	EmbeddedSingle EmbeddedMode = "Single"
	// EmbeddedFull inlines the package bootstrap with the items.
	EmbeddedFull EmbeddedMode = "Full"
)

// FileName returns single.puml or full.puml.
func (m EmbeddedMode) FileName() string {
	if m == EmbeddedSingle {
		return "single.puml"
	}
	return "full.puml"
}
