package pipeline

import (
	"context"

	"git.home.luguber.info/inful/plantuml-generator/internal/config"
	"git.home.luguber.info/inful/plantuml-generator/internal/manifest"
	"git.home.luguber.info/inful/plantuml-generator/internal/plantuml"
	"git.home.luguber.info/inful/plantuml-generator/internal/templates"
)

// Scopes selects the artifacts removed during Cleanup.
type Scopes []config.CleanupScope

// Includes reports whether scope is selected.
func (s Scopes) Includes(scope config.CleanupScope) bool {
	return scope.IsIncludedIn(s)
}

// Task is a manifest scoped unit of generation. Implementations must be
// safe to call from any goroutine; a task is only ever called once per phase.
type Task interface {
	Identifier() string
	Cleanup(scopes Scopes) error
	CreateResources(ctx context.Context) error
	RenderAtomicTemplates(ctx context.Context, rc *RenderContext) error
	RenderComposedTemplates(ctx context.Context, rc *RenderContext) error
	RenderSources(ctx context.Context, rc *RenderContext) error
}

// Grouped is implemented by tasks whose CreateResources belongs to an
// ordered resource group. Other tasks are treated as GroupNone.
type Grouped interface {
	ResourceGroup() ResourceGroup
}

// NopTask implements every phase as a no-op; embed it and override the
// phases a task takes part in.
type NopTask struct{}

func (NopTask) Cleanup(Scopes) error                                          { return nil }
func (NopTask) CreateResources(context.Context) error                         { return nil }
func (NopTask) RenderAtomicTemplates(context.Context, *RenderContext) error   { return nil }
func (NopTask) RenderComposedTemplates(context.Context, *RenderContext) error { return nil }
func (NopTask) RenderSources(context.Context, *RenderContext) error           { return nil }

// RenderContext is the read-only state shared by every render unit.
type RenderContext struct {
	Templates       *templates.Renderer
	PlantUML        *plantuml.Client
	Resolver        *manifest.Resolver
	OutputDirectory string
	CacheDirectory  string
}

func groupOf(t Task) ResourceGroup {
	if g, ok := t.(Grouped); ok {
		return g.ResourceGroup()
	}
	return GroupNone
}
