package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/plantuml-generator/internal/config"
	ferrors "git.home.luguber.info/inful/plantuml-generator/internal/foundation/errors"
	"git.home.luguber.info/inful/plantuml-generator/internal/workspace"
)

// WorkspaceCmd groups the workspace commands.
type WorkspaceCmd struct {
	Init    WorkspaceInitCmd    `cmd:"" help:"Create the workspace manifest and cache directory."`
	Install WorkspaceInstallCmd `cmd:"" help:"Install the artifacts listed in the workspace manifest."`
}

// WorkspaceInitCmd implements 'workspace init'.
type WorkspaceInitCmd struct {
	SourceDirectory string `short:"s" name:"source" help:"The directory holding the workspace manifest." default:"." env:"PLANTUML_GENERATOR_SOURCE_DIRECTORY"`
	CacheDirectory  string `short:"C" name:"cache" help:"The cache directory." default:".cache" env:"PLANTUML_GENERATOR_CACHE_DIRECTORY"`
	Manifest        string `short:"m" name:"manifest" help:"The workspace manifest file name." default:".pgen-workspace.yaml"`
	Force           bool   `name:"force" help:"Overwrite an existing manifest."`
}

func (w *WorkspaceInitCmd) Run(root *CLI) error {
	cfg := config.WorkspaceConfig{
		SourceDirectory: w.SourceDirectory,
		CacheDirectory:  w.CacheDirectory,
		Manifest:        w.Manifest,
		Force:           w.Force,
	}
	if err := cfg.Normalize(); err != nil {
		return ferrors.ConfigError("invalid workspace configuration").WithCause(err).Build()
	}
	path, err := workspace.NewManager(cfg, root.Workers()).Init()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(root.out(), path)
	return nil
}

// WorkspaceInstallCmd implements 'workspace install'.
type WorkspaceInstallCmd struct {
	SourceDirectory string             `short:"s" name:"source" help:"The directory holding the workspace manifest." default:"." env:"PLANTUML_GENERATOR_SOURCE_DIRECTORY"`
	Manifest        string             `short:"m" name:"manifest" help:"The workspace manifest file name." default:".pgen-workspace.yaml"`
	Force           bool               `name:"force" help:"Reinstall artifacts already in the cache."`
	Retry           config.RetryConfig `embed:"" prefix:"retry-"`
}

func (w *WorkspaceInstallCmd) Run(ctx context.Context, root *CLI) error {
	cfg := config.WorkspaceConfig{
		SourceDirectory: w.SourceDirectory,
		Manifest:        w.Manifest,
		Force:           w.Force,
		Retry:           w.Retry,
	}
	if err := cfg.Normalize(); err != nil {
		return ferrors.ConfigError("invalid workspace configuration").WithCause(err).Build()
	}
	mgr := workspace.NewManager(cfg, root.Workers())
	return mgr.Install(ctx)
}
