package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/plantuml-generator/internal/foundation/errors"
	"git.home.luguber.info/inful/plantuml-generator/internal/manifest"
)

func newBuiltinRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(nil)
	require.NoError(t, err)
	return r
}

func TestBuiltinNames(t *testing.T) {
	assert.Equal(t, []string{
		manifest.TemplateItemDocumentation,
		manifest.TemplateItemSnippet,
		manifest.TemplateItemSource,
		manifest.TemplateLibraryBootstrap,
		manifest.TemplateLibraryDocumentation,
		manifest.TemplateLibrarySummary,
		manifest.TemplateModuleDocumentation,
		manifest.TemplatePackageBootstrap,
		manifest.TemplatePackageDocumentation,
		manifest.TemplatePackageEmbedded,
	}, BuiltinNames())
}

func TestRenderLibraryBootstrap(t *testing.T) {
	r := newBuiltinRenderer(t)
	out, err := r.Render(manifest.TemplateLibraryBootstrap, LibraryBootstrapData{
		LibraryName: "a library",
		RemoteURL:   "a remote url",
		Customization: manifest.Customization{
			IconFormat: "png", FontSizeXS: 2, FontColor: "black",
		},
	})
	require.NoError(t, err)
	assert.Contains(t, out, `!global $LIB_BASE_LOCATION="a remote url"`)
	assert.Contains(t, out, `!global $ICON_FORMAT="png"`)
	assert.Contains(t, out, `!global $FONT_SIZE_XS=2`)
	assert.Contains(t, out, `!global $FONT_COLOR="black"`)
}

func TestRenderItemSnippet(t *testing.T) {
	r := newBuiltinRenderer(t)
	data := ElementSnippetData{
		RemoteURL:     "https://lib.local/distribution",
		PackageURN:    "c4model",
		ItemURN:       "c4model/Element/Person",
		PathToBase:    "../..",
		ElementShape:  "Icon",
		SnippetMode:   "Local",
		ProcedureName: "Person",
		VariableName:  "Person",
		PrimaryLabel:  "Person",
	}

	local, err := r.Render(manifest.TemplateItemSnippet, data)
	require.NoError(t, err)
	assert.Contains(t, local, `!global $INCLUSION_MODE="local"`)
	assert.Contains(t, local, `!global $LIB_BASE_LOCATION="../.."`)
	assert.Contains(t, local, `include('c4model/bootstrap')`)
	assert.Contains(t, local, `Person('Person', 'Person', 'an optional tech label', 'an optional description')`)

	data.SnippetMode = "Remote"
	data.ElementShape = "IconGroup"
	data.ProcedureName = "PersonGroup"
	data.TechnicalLabel = "tech"
	remote, err := r.Render(manifest.TemplateItemSnippet, data)
	require.NoError(t, err)
	assert.Contains(t, remote, `!global $LIB_BASE_LOCATION="https://lib.local/distribution"`)
	assert.NotContains(t, remote, "INCLUSION_MODE")
	assert.Contains(t, remote, `PersonGroup('Person', 'Person', 'tech') {`)
}

func TestRenderItemSource(t *testing.T) {
	r := newBuiltinRenderer(t)
	out, err := r.Render(manifest.TemplateItemSource, ItemSourceData{
		ItemURN: "eip/Message/Command",
		Sprites: []string{"sprite $CommandXs [10x10/16z] abc\n"},
		Elements: []ElementSource{
			{Type: "Icon", ProcedureName: "Command", IconURN: "eip/Message/Command", StereotypeName: "IconElement"},
			{Type: "IconCard", ProcedureName: "CommandCard", SpriteName: "CommandLg", StereotypeName: "IconCardElement", FamilyName: "Message"},
			{Type: "Group", ProcedureName: "Command", StereotypeName: "GroupElement", DefaultLabel: "Command"},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, out, "' definition of the Item eip/Message/Command")
	assert.Contains(t, out, "sprite $CommandXs [10x10/16z] abc")
	assert.Contains(t, out, "IconElement($id, 'IconElement', 'eip/Message/Command', $name, $tech, $desc)")
	assert.Contains(t, out, "IconCardElement($id, 'IconCardElement', '<$CommandLg>', 'Message', $funcName, $content)")
	assert.Contains(t, out, "GroupElement($id, 'GroupElement', $name, $tech)")
}

func TestRenderItemDocumentationReadsSnippets(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "Person.Local.puml")
	remote := filepath.Join(dir, "Person.Remote.puml")
	require.NoError(t, os.WriteFile(local, []byte("@startuml\nlocal\n@enduml\n"), 0o600))
	require.NoError(t, os.WriteFile(remote, []byte("@startuml\nremote\n@enduml\n"), 0o600))

	r := newBuiltinRenderer(t)
	out, err := r.Render(manifest.TemplateItemDocumentation, ItemDocumentationData{
		ItemURN:     "c4model/Element/Person",
		ItemName:    "Person",
		PathToBase:  "../..",
		Icon:        &ItemIllustration{Name: "Illustration", Path: "c4model/Element/Person.png"},
		SpriteNames: []string{"PersonXs", "PersonSm"},
		Elements: []ItemElement{{
			Name:              "Person",
			IllustrationPath:  "c4model/Element/Person.Local.png",
			LocalSnippetPath:  local,
			RemoteSnippetPath: remote,
		}},
	})
	require.NoError(t, err)
	assert.Contains(t, out, "# Person")
	assert.Contains(t, out, "![illustration for Illustration](../../c4model/Element/Person.png)")
	assert.Contains(t, out, "![illustration for Person](../../c4model/Element/Person.Local.png)")
	assert.Contains(t, out, "- `<$PersonXs>`")
	assert.Contains(t, out, "@startuml\nremote\n@enduml")
	assert.Contains(t, out, "@startuml\nlocal\n@enduml")
}

func TestRenderItemDocumentationMissingSnippet(t *testing.T) {
	r := newBuiltinRenderer(t)
	_, err := r.Render(manifest.TemplateItemDocumentation, ItemDocumentationData{
		ItemURN:  "p/m/I",
		ItemName: "I",
		Elements: []ItemElement{{Name: "I", LocalSnippetPath: "/does/not/exist", RemoteSnippetPath: "/does/not/exist"}},
	})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryTemplate))
}

func TestRenderModuleAndLibraryPages(t *testing.T) {
	r := newBuiltinRenderer(t)

	module, err := r.Render(manifest.TemplateModuleDocumentation, ModuleDocumentationData{
		ModuleURN:  "eip/Message",
		ModuleName: "Message",
		PathToBase: "../..",
		ItemCount:  2,
		Families: []ModuleFamily{{
			Name: "Channel", Anchor: "family-channel",
			Items: []ModuleItem{{ItemURN: "eip/Message/Pipe", Illustration: "eip/Message/Pipe.png"}},
		}},
		ItemsWithoutFamily: []ModuleItem{{ItemURN: "eip/Message/Command", Illustration: "eip/Message/Command.png"}},
	})
	require.NoError(t, err)
	assert.Contains(t, module, "The module contains 2 items.")
	assert.Contains(t, module, "- [Channel](#family-channel)")
	assert.Contains(t, module, "| ![illustration of eip/Message/Command](../../eip/Message/Command.png) | [eip/Message/Command](../../eip/Message/Command.md) |")
	assert.Contains(t, module, `<span id="family-channel"></span>`)

	summary, err := r.Render(manifest.TemplateLibrarySummary, LibraryDocumentationData{
		LibraryName: "lib",
		Packages: []PackageSummary{{
			PackageURN: "eip",
			Modules:    []ModuleSummary{{ModuleURN: "eip/Message", ItemURNs: []string{"eip/Message/Command"}}},
		}},
	})
	require.NoError(t, err)
	assert.Contains(t, summary, "- [eip/Message](eip/Message/README.md)")
	assert.Contains(t, summary, "    - [eip/Message/Command](eip/Message/Command.md)")
}

func TestRenderPackageEmbeddedFullMode(t *testing.T) {
	r := newBuiltinRenderer(t)
	out, err := r.Render(manifest.TemplatePackageEmbedded, PackageEmbeddedData{
		Mode:             "Full",
		PackageURN:       "eip",
		PackageBootstrap: "' package\n",
		PackageItems:     "' item a\n' item b",
	})
	require.NoError(t, err)
	assert.NotContains(t, out, "library bootstrap")
	assert.Contains(t, out, "' package\n")
	assert.Contains(t, out, "' item a\n' item b")
}

func TestRenderUnknownTemplate(t *testing.T) {
	r := newBuiltinRenderer(t)
	_, err := r.Render("nope.tmpl", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `template "nope.tmpl" is not defined`)
}

func TestRenderMissingMapKey(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "custom.tmpl")
	require.NoError(t, os.WriteFile(file, []byte("{{ .Missing }}"), 0o600))

	r, err := New(map[string]string{"custom.tmpl": file})
	require.NoError(t, err)
	_, err = r.Render("custom.tmpl", map[string]any{})
	require.Error(t, err)
}

func TestUserTemplateOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	tplDir := filepath.Join(dir, "templates", "eip")
	require.NoError(t, os.MkdirAll(tplDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "templates", manifest.TemplatePackageBootstrap), []byte("custom {{ .PackageURN }}"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tplDir, "example.tmpl"), []byte("example of {{ .PackageURN }}"), 0o600))

	r, err := NewForLibrary(dir, "templates/**")
	require.NoError(t, err)

	out, err := r.Render(manifest.TemplatePackageBootstrap, PackageBootstrapData{PackageURN: "eip"})
	require.NoError(t, err)
	assert.Equal(t, "custom eip", out)
	assert.Equal(t, filepath.Join(dir, "templates", manifest.TemplatePackageBootstrap), r.Source(manifest.TemplatePackageBootstrap))

	out, err = r.Render("eip/example.tmpl", PackageExampleData{PackageURN: "eip"})
	require.NoError(t, err)
	assert.Equal(t, "example of eip", out)
	assert.Equal(t, "builtin", r.Source(manifest.TemplateItemSource))
}

func TestNewRejectsBrokenTemplate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "broken.tmpl")
	require.NoError(t, os.WriteFile(file, []byte("{{ if }"), 0o600))

	_, err := New(map[string]string{"broken.tmpl": file})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryTemplate))
}

func TestDiscoverWithoutTemplateDirectory(t *testing.T) {
	found, err := Discover(t.TempDir(), "templates/**")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestRenderToFile(t *testing.T) {
	r := newBuiltinRenderer(t)
	dest := filepath.Join(t.TempDir(), "eip", "bootstrap.puml")
	require.NoError(t, r.RenderToFile(manifest.TemplatePackageBootstrap, PackageBootstrapData{PackageURN: "eip"}, dest))

	// #nosec G304 -- test path
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "' bootstrap of the package eip")
}
