package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/plantuml-generator/internal/foundation/errors"
)

const sampleManifest = `
name: testlib
remote_url: https://testlib.local/distribution
customization:
  icon_format: svg
packages:
  - urn: eip
    examples:
      - name: Basic Example
        template: eip/basic_example.tmpl
    modules:
      - urn: eip/MessageConstruction
        items:
          - urn: eip/MessageConstruction/CommandMessage
            family: Message
            icon:
              type: Source
              source: icons/command.svg
            elements:
              - shape:
                  type: Icon
              - shape:
                  type: IconCard
                  stereotype_name: CustomCard
          - urn: eip/MessageConstruction/DocumentMessage
            icon:
              type: Reference
              urn: eip/MessageConstruction/CommandMessage
            elements:
              - shape:
                  type: Custom
                  properties:
                    color: red
`

func TestParseAppliesDefaults(t *testing.T) {
	lib, err := Parse([]byte(sampleManifest))
	require.NoError(t, err)

	assert.Equal(t, "testlib", lib.Name)
	assert.Equal(t, "svg", lib.Customization.IconFormat)
	assert.Equal(t, 50, lib.Customization.IconHeight)
	assert.Equal(t, 10, lib.Customization.FontSizeXS)
	assert.Equal(t, "#757575", lib.Customization.FontColorLight)
	assert.Equal(t, TemplateLibraryBootstrap, lib.Templates.Bootstrap)
	assert.Equal(t, "templates/**", lib.TemplateDiscoveryPattern)

	pkg := lib.Packages[0]
	assert.Equal(t, TemplatePackageEmbedded, pkg.Templates.Embedded)
	assert.False(t, pkg.Rendering.SkipEmbedded)

	items := pkg.Modules[0].Items
	require.Len(t, items, 2)
	assert.Equal(t, "Command Message", items[0].URN.Label)
	assert.Equal(t, TemplateItemSnippet, items[0].Templates.Snippet)
	assert.Equal(t, "IconElement", items[0].Elements[0].Shape.StereotypeName)
	assert.Equal(t, "CustomCard", items[0].Elements[1].Shape.StereotypeName)
	assert.Equal(t, IconReference, items[1].Icon.Type)
	assert.Equal(t, "CommandMessage", items[1].Icon.URN.Name)
	assert.Equal(t, "red", items[1].Elements[0].Shape.Properties["color"])
	assert.Empty(t, items[1].Elements[0].Shape.StereotypeName)
}

func TestParseRejectsInvalidShapes(t *testing.T) {
	_, err := Parse([]byte(`
name: lib
remote_url: x
packages:
  - urn: p
    modules:
      - urn: p//m
        items:
          - urn: p/m/i
            icon:
              type: Source
            elements:
              - shape:
                  type: Hexagon
`))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
	assert.Contains(t, err.Error(), "empty segment")
	assert.Contains(t, err.Error(), "Source icon needs a source path")
	assert.Contains(t, err.Error(), `unknown shape type "Hexagon"`)
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("name: [unterminated"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestLoadResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "library.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleManifest), 0o600))

	lib, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, dir, lib.BaseDir())
	assert.Equal(t, filepath.Join(dir, "icons/command.svg"), lib.ResolvePath("icons/command.svg"))
	assert.Equal(t, "/abs/icon.png", lib.ResolvePath("/abs/icon.png"))
}

func TestLoadMissingManifest(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, ErrManifestNotFound)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
}
