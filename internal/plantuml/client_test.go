package plantuml

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/plantuml-generator/internal/config"
)

func TestNewClientFromConfig(t *testing.T) {
	cfg := config.PlantUMLConfig{CacheDirectory: ".cache", PlantUMLVersion: "1.2024.7", JavaBinary: "java"}
	require.NoError(t, cfg.Normalize())

	c := NewClient(cfg, nil)
	assert.Equal(t, filepath.Join(".cache", "plantuml-1.2024.7.jar"), c.Jar)
	assert.Equal(t, "java", c.Java)
	assert.IsType(t, ExecRunner{}, c.Runner)
}

func TestClientRender(t *testing.T) {
	runner := &fakeRunner{}
	c := &Client{Java: "java", Jar: "plantuml.jar", Runner: runner}

	require.NoError(t, c.Render(t.Context(), "docs/a.puml", []string{"-tsvg"}))
	assert.Equal(t, []string{"java -jar plantuml.jar docs/a.puml -tsvg"}, runner.commandLines())
}

func TestClientRenderWrapsFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("exit status 1")}
	c := &Client{Java: "java", Jar: "plantuml.jar", Runner: runner}

	err := c.Render(t.Context(), "a.puml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render a.puml")
}

func TestClientEncodeSprite(t *testing.T) {
	runner := &fakeRunner{stdout: []byte("sprite $Foo [16x16/16z] {\nabc\n}\n\n")}
	c := &Client{Java: "java", Jar: "plantuml.jar", Runner: runner}

	out, err := c.EncodeSprite(t.Context(), "Foo.png")
	require.NoError(t, err)
	assert.Equal(t, "sprite $Foo [16x16/16z] {\nabc\n}", string(out))
	assert.Equal(t, []string{"java -jar plantuml.jar -encodesprite 16z Foo.png"}, runner.commandLines())
}

func TestInkscapeConvert(t *testing.T) {
	runner := &fakeRunner{}
	ink := NewInkscape("inkscape", runner)

	require.NoError(t, ink.Convert(t.Context(), "icon.svg", "out/icon.png", 50))
	assert.Equal(t, []string{"inkscape icon.svg --export-filename=out/icon.png --export-height=50"}, runner.commandLines())
}

func TestJarURL(t *testing.T) {
	assert.Equal(t,
		"https://github.com/plantuml/plantuml/releases/download/v1.2024.7/plantuml-1.2024.7.jar",
		JarURL("1.2024.7"))
}

func TestEnsureJarSkipsExistingJar(t *testing.T) {
	jar := filepath.Join(t.TempDir(), "plantuml.jar")
	require.NoError(t, os.WriteFile(jar, []byte("jar"), 0o600))

	c := &Client{Jar: jar, ReleaseURL: "http://127.0.0.1:1/never"}
	downloaded, err := c.EnsureJar(t.Context(), fastPolicy())
	require.NoError(t, err)
	assert.False(t, downloaded)
}
