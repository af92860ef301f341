// Package plantuml drives the external tools used by the generators: the
// PlantUML jar (rendering and sprite encoding) and Inkscape (SVG to raster).
//
// Every invocation goes through a Runner so tests can substitute a fake.
// Failures surface as external_tool classified errors carrying the captured
// tool output.
package plantuml
