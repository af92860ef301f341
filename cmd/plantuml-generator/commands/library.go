package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/plantuml-generator/internal/config"
	ferrors "git.home.luguber.info/inful/plantuml-generator/internal/foundation/errors"
	"git.home.luguber.info/inful/plantuml-generator/internal/library"
	"git.home.luguber.info/inful/plantuml-generator/internal/manifest"
	"git.home.luguber.info/inful/plantuml-generator/internal/markdown"
	"git.home.luguber.info/inful/plantuml-generator/internal/urn"
)

// LibraryCmd groups the library commands.
type LibraryCmd struct {
	Generate LibraryGenerateCmd `cmd:"" help:"Generate a library from a manifest."`
	Schema   LibrarySchemaCmd   `cmd:"" help:"Print the JSON schema of the library manifest."`
	Verify   LibraryVerifyCmd   `cmd:"" help:"Check the links of a generated library."`
}

// LibraryGenerateCmd implements 'library generate'.
type LibraryGenerateCmd struct {
	config.PlantUMLConfig `embed:""`

	Manifest        string             `arg:"" help:"The manifest of the library."`
	OutputDirectory string             `short:"o" name:"output" help:"The output directory." default:"distribution" env:"PLANTUML_GENERATOR_OUTPUT_DIRECTORY"`
	InkscapeBinary  string             `short:"I" name:"inkscape-binary" help:"The inkscape binary path or command." default:"inkscape" env:"PLANTUML_GENERATOR_INKSCAPE_BINARY"`
	CleanupScopes   []string           `short:"c" name:"cleanup-scope" help:"Regenerate the artifacts of these scopes (All, Example, Item, ItemIcon, ItemSource, Snippet, SnippetSource, SnippetImage, Sprite, SpriteIcon, SpriteValue)."`
	URNs            []string           `short:"u" name:"urn" help:"Handle only the artifacts included in these URNs."`
	CleanCache      bool               `name:"clean-cache" help:"Delete the cache directory before the generation."`
	CleanURNs       []string           `name:"clean-urn" help:"Delete these URNs from the output directory before the generation."`
	Retry           config.RetryConfig `embed:"" prefix:"retry-"`
}

// Config validates the flags into a library configuration.
func (g *LibraryGenerateCmd) Config() (config.LibraryConfig, error) {
	cfg := config.LibraryConfig{
		PlantUMLConfig:  g.PlantUMLConfig,
		OutputDirectory: g.OutputDirectory,
		InkscapeBinary:  g.InkscapeBinary,
		URNs:            g.URNs,
		CleanCache:      g.CleanCache,
		CleanURNs:       g.CleanURNs,
		Retry:           g.Retry,
	}
	for _, raw := range g.CleanupScopes {
		scope, err := config.ParseCleanupScope(raw)
		if err != nil {
			return cfg, ferrors.ValidationError("--cleanup-scope " + raw).WithCause(err).Build()
		}
		cfg.CleanupScopes = append(cfg.CleanupScopes, scope)
	}
	for _, raw := range g.URNs {
		if err := urn.Parse(raw).Validate(); err != nil {
			return cfg, ferrors.ValidationError("--urn " + raw).WithCause(err).Build()
		}
	}
	if err := cfg.Normalize(); err != nil {
		return cfg, ferrors.ConfigError("invalid library configuration").WithCause(err).Build()
	}
	return cfg, nil
}

func (g *LibraryGenerateCmd) Run(ctx context.Context, root *CLI) error {
	cfg, err := g.Config()
	if err != nil {
		return err
	}
	svc := library.NewService(cfg, root.Workers())
	svc.SetRecorder(root.Recorder())
	res, err := svc.Generate(ctx, g.Manifest)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(root.out(), "generated %d tasks into %s in %s\n", res.Tasks, cfg.OutputDirectory, res.Duration.Round(time.Millisecond))
	return nil
}

// LibrarySchemaCmd implements 'library schema'.
type LibrarySchemaCmd struct {
	Output string `short:"o" name:"output" help:"Write the schema to this file instead of stdout." type:"path"`
}

func (s *LibrarySchemaCmd) Run(root *CLI) error {
	raw, err := manifest.SchemaJSON()
	if err != nil {
		return ferrors.InternalError("render manifest schema").WithCause(err).Build()
	}
	if s.Output == "" {
		_, err = root.out().Write(raw)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.Output), 0o750); err != nil {
		return ferrors.FileSystemError("create " + filepath.Dir(s.Output)).WithCause(err).Build()
	}
	if err := os.WriteFile(s.Output, raw, 0o644); err != nil {
		return ferrors.FileSystemError("write " + s.Output).WithCause(err).Build()
	}
	return nil
}

// LibraryVerifyCmd implements 'library verify'.
type LibraryVerifyCmd struct {
	OutputDirectory string `short:"o" name:"output" help:"The generated library." default:"distribution" env:"PLANTUML_GENERATOR_OUTPUT_DIRECTORY"`
}

func (v *LibraryVerifyCmd) Run(ctx context.Context, root *CLI) error {
	info, err := os.Stat(v.OutputDirectory)
	if err != nil || !info.IsDir() {
		return ferrors.NotFoundError("library directory " + v.OutputDirectory + " does not exist").WithCause(err).Build()
	}
	verifier := markdown.NewVerifier(root.Workers())
	report, err := verifier.Verify(ctx, v.OutputDirectory)
	if err != nil {
		return err
	}
	for _, b := range report.Broken {
		_, _ = fmt.Fprintln(root.out(), b.String())
	}
	if len(report.Broken) > 0 {
		return ferrors.ValidationError(fmt.Sprintf("%d broken links in %s", len(report.Broken), v.OutputDirectory)).
			WithContext("files", report.Files).
			Build()
	}
	_, _ = fmt.Fprintf(root.out(), "%d links checked in %d files\n", report.Links, report.Files)
	return nil
}
