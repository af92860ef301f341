package templates

import (
	"embed"
	"io/fs"
	"path"
	"sort"
)

//go:embed builtin/*.tmpl
var builtinFS embed.FS

// builtins returns the embedded templates keyed by name.
func builtins() (map[string]string, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		data, err := fs.ReadFile(builtinFS, path.Join("builtin", e.Name()))
		if err != nil {
			return nil, err
		}
		out[e.Name()] = string(data)
	}
	return out, nil
}

// BuiltinNames lists the names of the embedded templates.
func BuiltinNames() []string {
	entries, _ := fs.ReadDir(builtinFS, "builtin")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}
