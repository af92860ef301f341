package pathglob

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		name    string
		want    bool
	}{
		{"**/*.puml", "a.puml", true},
		{"**/*.puml", "docs/c4/a.puml", true},
		{"**/*.puml", "docs/a.png", false},
		{"templates/**", "templates/item_snippet.tmpl", true},
		{"templates/**", "templates/eip/example.tmpl", true},
		{"templates/**", "other/item_snippet.tmpl", false},
		{"docs/*.puml", "docs/a.puml", true},
		{"docs/*.puml", "docs/sub/a.puml", false},
		{"docs/**/diagrams/*.puml", "docs/diagrams/a.puml", true},
		{"docs/**/diagrams/*.puml", "docs/x/y/diagrams/a.puml", true},
		{"[", "[", false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"|"+tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.pattern, tt.name))
		})
	}
}

func TestRoot(t *testing.T) {
	assert.Equal(t, "templates", Root("templates/**"))
	assert.Equal(t, "a/b", Root("a/b/*.tmpl"))
	assert.Equal(t, "", Root("**/*.puml"))
}

func TestGlob(t *testing.T) {
	root := t.TempDir()
	for _, f := range []string{"a.puml", "sub/b.puml", "sub/c.txt", ".cache/lib/d.puml"} {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte("@startuml\n@enduml\n"), 0o600))
	}

	got, err := Glob(root, "**/*.puml")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a.puml"), filepath.Join(root, "sub", "b.puml")}, got)

	got, err = Glob(root, "**/*.txt", "a.*")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestGlobRejectsBadPattern(t *testing.T) {
	_, err := Glob(t.TempDir(), "[")
	require.Error(t, err)
}
