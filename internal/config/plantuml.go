package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// PlantUMLConfig locates the PlantUML jar and the JVM used to run it.
type PlantUMLConfig struct {
	CacheDirectory  string        `yaml:"cache_directory" short:"C" name:"cache" help:"The cache directory." default:".cache" env:"PLANTUML_GENERATOR_CACHE_DIRECTORY"`
	PlantUMLVersion string        `yaml:"plantuml_version" short:"V" name:"plantuml-version" help:"The PlantUML version." default:"1.2024.7" env:"PLANTUML_GENERATOR_PLANTUML_VERSION"`
	PlantUMLJar     string        `yaml:"plantuml_jar" short:"P" name:"plantuml-jar" help:"The PlantUML jar, defaults to <cache>/plantuml-<version>.jar." env:"PLANTUML_GENERATOR_PLANTUML_JAR"`
	JavaBinary      string        `yaml:"java_binary" short:"J" name:"java-binary" help:"The java binary path or command." env:"PLANTUML_GENERATOR_JAVA_BINARY"`
	ToolTimeout     time.Duration `yaml:"tool_timeout" name:"tool-timeout" help:"Kill an external tool running longer than this (0 disables)." default:"0s" env:"PLANTUML_GENERATOR_TOOL_TIMEOUT"`
}

// Normalize fills derived values: the jar path from the cache directory and
// version, and the java binary from JAVA_HOME.
func (p *PlantUMLConfig) Normalize() error {
	if strings.TrimSpace(p.CacheDirectory) == "" {
		p.CacheDirectory = DefaultCacheDirectory
	}
	if strings.TrimSpace(p.PlantUMLVersion) == "" {
		p.PlantUMLVersion = DefaultPlantUMLVersion
	}
	if strings.TrimSpace(p.PlantUMLJar) == "" {
		p.PlantUMLJar = filepath.Join(p.CacheDirectory, PlantUMLJarName(p.PlantUMLVersion))
	}
	if strings.TrimSpace(p.JavaBinary) == "" {
		p.JavaBinary = DefaultJavaBinary
		if home := os.Getenv(EnvJavaHome); home != "" {
			p.JavaBinary = filepath.Join(home, "bin", "java")
		}
	}
	if p.ToolTimeout < 0 {
		return fmt.Errorf("tool timeout cannot be negative: %s", p.ToolTimeout)
	}
	return nil
}
