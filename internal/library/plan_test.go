package library

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/plantuml-generator/internal/manifest"
	"git.home.luguber.info/inful/plantuml-generator/internal/pipeline"
	"git.home.luguber.info/inful/plantuml-generator/internal/urn"
)

const testManifest = `
name: testlib
remote_url: https://testlib.local/distribution
packages:
  - urn: eip
    examples:
      - name: Basic Example
        template: eip/basic_example.tmpl
    modules:
      - urn: eip/Construction
        items:
          - urn: eip/Construction/Command
            family: Message
            icon:
              type: Source
              source: icons/command.png
            elements:
              - shape:
                  type: Icon
              - shape:
                  type: IconCard
          - urn: eip/Construction/Document
            icon:
              type: Reference
              urn: eip/Construction/Command
            elements:
              - shape:
                  type: Group
  - urn: aws
    modules:
      - urn: aws/Compute
        items:
          - urn: aws/Compute/Lambda
            icon:
              type: Source
              source: icons/lambda.svg
            elements:
              - shape:
                  type: IconGroup
`

func testResolver(t *testing.T) *manifest.Resolver {
	t.Helper()
	lib, err := manifest.Parse([]byte(testManifest))
	require.NoError(t, err)
	r, err := manifest.NewResolver(lib)
	require.NoError(t, err)
	return r
}

func identifiers(tasks []pipeline.Task) []string {
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.Identifier())
	}
	return ids
}

func TestPlanCoversEveryEntity(t *testing.T) {
	tasks := Plan(testResolver(t), PlanOptions{OutputDirectory: "out", CacheDirectory: "cache"})
	ids := identifiers(tasks)

	for _, want := range []string{
		"library#library_bootstrap",
		"library#library_documentation",
		"library#library_summary",
		"eip#package_example/basic_example",
		"eip#package_bootstrap",
		"eip#package_embedded/single",
		"eip#package_embedded/full",
		"eip#package_documentation",
		"eip/Construction#module_documentation",
		"eip/Construction/Command#item_icon",
		"eip/Construction/Command#sprite_icon/xs",
		"eip/Construction/Command#sprite_value/lg",
		"eip/Construction/Command#item_source",
		"eip/Construction/Command#element_snippet/Command/local",
		"eip/Construction/Command#element_snippet/CommandCard/remote",
		"eip/Construction/Command#item_documentation",
		"eip/Construction/Document#item_source",
		"eip/Construction/Document#element_snippet/Document/local",
		"aws/Compute/Lambda#item_icon",
		"aws/Compute/Lambda#element_snippet/LambdaGroup/local",
	} {
		assert.Contains(t, ids, want)
	}
	assert.NotContains(t, ids, "eip/Construction/Document#item_icon", "reference icons reuse the owner's icon")

	seen := map[string]bool{}
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate task %s", id)
		seen[id] = true
	}
}

func TestPlanResourceGroups(t *testing.T) {
	tasks := Plan(testResolver(t), PlanOptions{OutputDirectory: "out", CacheDirectory: "cache"})
	counts := map[pipeline.ResourceGroup]int{}
	for _, task := range tasks {
		if g, ok := task.(pipeline.Grouped); ok {
			counts[g.ResourceGroup()]++
		}
	}
	assert.Equal(t, 2, counts[pipeline.GroupItemIcon])
	assert.Equal(t, 8, counts[pipeline.GroupSpriteIcon])
	assert.Equal(t, 8, counts[pipeline.GroupSpriteValue])
}

func TestPlanURNFilter(t *testing.T) {
	tasks := Plan(testResolver(t), PlanOptions{
		OutputDirectory: "out",
		CacheDirectory:  "cache",
		URNs:            urn.ParseAll([]string{"eip/Construction/Document"}),
	})
	ids := identifiers(tasks)

	assert.Contains(t, ids, "library#library_bootstrap")
	assert.Contains(t, ids, "eip#package_bootstrap")
	assert.Contains(t, ids, "eip/Construction#module_documentation")
	assert.Contains(t, ids, "eip/Construction/Document#item_source")
	assert.Contains(t, ids, "eip/Construction/Command#item_icon", "icon owner outside the filter")
	assert.Contains(t, ids, "eip/Construction/Command#sprite_value/md")
	assert.NotContains(t, ids, "eip/Construction/Command#item_source")
	assert.NotContains(t, ids, "aws#package_bootstrap")
	assert.NotContains(t, ids, "aws/Compute/Lambda#item_icon")
}

func TestPlanPaths(t *testing.T) {
	tasks := Plan(testResolver(t), PlanOptions{OutputDirectory: "out", CacheDirectory: "cache"})
	byID := map[string]pipeline.Task{}
	for _, task := range tasks {
		byID[task.Identifier()] = task
	}

	iconTask := byID["eip/Construction/Command#item_icon"].(*itemIconTask)
	assert.Equal(t, filepath.Join("icons", "command.png"), iconTask.src)
	assert.Equal(t, filepath.Join("out", "eip", "Construction", "Command.png"), iconTask.dest)
	assert.Equal(t, 50, iconTask.height)

	sprite := byID["eip/Construction/Command#sprite_icon/sm"].(*spriteIconTask)
	assert.Equal(t, iconTask.dest, sprite.src)
	assert.Equal(t, filepath.Join("cache", "eip", "Construction", "CommandSm.png"), sprite.dest)
	assert.Equal(t, 12, sprite.height)

	value := byID["eip/Construction/Command#sprite_value/sm"].(*spriteValueTask)
	assert.Equal(t, sprite.dest, value.src)
	assert.Equal(t, filepath.Join("cache", "eip", "Construction", "CommandSm.puml"), value.dest)

	local := byID["eip/Construction/Command#element_snippet/CommandCard/local"].(*diagramTask)
	assert.Equal(t, filepath.Join("out", "eip", "Construction", "CommandCard.Local.puml"), local.dest)
	assert.Equal(t, filepath.Join("out", "eip", "Construction", "CommandCard.Local.png"), local.image)
	assert.True(t, local.renderImage)
	remote := byID["eip/Construction/Command#element_snippet/CommandCard/remote"].(*diagramTask)
	assert.False(t, remote.renderImage)

	doc := byID["eip/Construction/Command#item_documentation"].(*templateTask)
	assert.True(t, doc.composed)
}

func TestModuleIllustrations(t *testing.T) {
	r := testResolver(t)
	p := &planner{lib: r.Library(), r: r}
	mod := &r.Library().Packages[0].Modules[0]

	assert.Equal(t, "eip/Construction/Command.png", p.illustration(&mod.Items[0]))
	assert.Equal(t, "eip/Construction/Command.png", p.illustration(&mod.Items[1]), "reference icons point at the owner")
	assert.Empty(t, p.illustration(&manifest.Item{URN: urn.Parse("p/m/Bare")}))
	withElement := &manifest.Item{
		URN:      urn.Parse("p/m/Shape"),
		Elements: []manifest.Element{{Shape: manifest.Shape{Type: manifest.ShapeGroup}}},
	}
	assert.Equal(t, "p/m/Shape.Local.png", p.illustration(withElement))
}
