package config

import "time"

// Environment variables read outside kong struct tags.
const (
	EnvThreads  = "PLANTUML_GENERATOR_THREADS"
	EnvJavaHome = "JAVA_HOME"
)

// Defaults shared by every command.
const (
	DefaultSourceDirectory   = "."
	DefaultOutputDirectory   = "distribution"
	DefaultCacheDirectory    = ".cache"
	DefaultSourcePatterns    = "**/*.puml"
	DefaultPlantUMLVersion   = "1.2024.7"
	DefaultJavaBinary        = "java"
	DefaultInkscapeBinary    = "inkscape"
	DefaultWorkspaceManifest = ".pgen-workspace.yaml"
	DefaultTemplatePattern   = "templates/**"
	DefaultWatchDebounce     = 500 * time.Millisecond
)

// PlantUMLJarName returns the file name of the PlantUML jar for a release.
func PlantUMLJarName(version string) string {
	return "plantuml-" + version + ".jar"
}
