// Package workspace prepares the cache directory that diagram sources
// include libraries from. A workspace manifest (.pgen-workspace.yaml by
// default) lists the artifacts to install: release archives of
// tmorin/plantuml-libs and arbitrary git repositories.
package workspace
