package library

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/plantuml-generator/internal/config"
	"git.home.luguber.info/inful/plantuml-generator/internal/logfields"
	"git.home.luguber.info/inful/plantuml-generator/internal/pipeline"
)

// Task kinds, used as identifier suffixes.
const (
	kindLibraryBootstrap     = "library_bootstrap"
	kindLibraryDocumentation = "library_documentation"
	kindLibrarySummary       = "library_summary"
	kindPackageExample       = "package_example"
	kindPackageBootstrap     = "package_bootstrap"
	kindPackageEmbedded      = "package_embedded"
	kindPackageDocumentation = "package_documentation"
	kindModuleDocumentation  = "module_documentation"
	kindItemIcon             = "item_icon"
	kindSpriteIcon           = "sprite_icon"
	kindSpriteValue          = "sprite_value"
	kindItemSource           = "item_source"
	kindElementSnippet       = "element_snippet"
	kindItemDocumentation    = "item_documentation"
)

func taskID(owner, kind string, qualifiers ...string) string {
	id := owner + "#" + kind
	for _, q := range qualifiers {
		id += "/" + q
	}
	return id
}

// templateTask renders one template into one file. It runs in the atomic
// phase unless composed is set, in which case it may read files written by
// atomic tasks.
type templateTask struct {
	pipeline.NopTask
	id       string
	urn      string
	template string
	dest     string
	composed bool
	// scope guards Cleanup; an empty scope always removes dest.
	scope config.CleanupScope
	data  func() (any, error)
}

func (t *templateTask) Identifier() string { return t.id }

func (t *templateTask) Cleanup(scopes pipeline.Scopes) error {
	if t.scope != "" && !scopes.Includes(t.scope) {
		return nil
	}
	return removeFile(t.dest)
}

func (t *templateTask) RenderAtomicTemplates(_ context.Context, rc *pipeline.RenderContext) error {
	if t.composed {
		return nil
	}
	return t.render(rc)
}

func (t *templateTask) RenderComposedTemplates(_ context.Context, rc *pipeline.RenderContext) error {
	if !t.composed {
		return nil
	}
	return t.render(rc)
}

func (t *templateTask) render(rc *pipeline.RenderContext) error {
	if exists(t.dest) {
		return nil
	}
	data, err := t.data()
	if err != nil {
		return err
	}
	slog.Debug("Rendering template",
		logfields.URN(t.urn),
		slog.String("template", t.template),
		logfields.Path(t.dest))
	return rc.Templates.RenderToFile(t.template, data, t.dest)
}

func staticData(v any) func() (any, error) {
	return func() (any, error) { return v, nil }
}

// diagramTask renders a .puml file from a template and, in RenderSources,
// turns it into an image with PlantUML.
type diagramTask struct {
	*templateTask
	image       string
	imageScope  config.CleanupScope
	renderImage bool
	format      string
}

func (t *diagramTask) Cleanup(scopes pipeline.Scopes) error {
	if err := t.templateTask.Cleanup(scopes); err != nil {
		return err
	}
	if scopes.Includes(t.imageScope) {
		return removeFile(t.image)
	}
	return nil
}

func (t *diagramTask) RenderSources(ctx context.Context, rc *pipeline.RenderContext) error {
	if !t.renderImage || exists(t.image) {
		return nil
	}
	slog.Debug("Rendering diagram", logfields.URN(t.urn), logfields.Path(t.dest))
	if err := rc.PlantUML.Render(ctx, t.dest, renderArgs(t.format)); err != nil {
		// A partial image would be kept by the next run's existence check.
		if rmErr := removeFile(t.image); rmErr != nil {
			slog.Warn("Failed to remove partial image", logfields.Path(t.image), logfields.Error(rmErr))
		}
		return err
	}
	return nil
}
