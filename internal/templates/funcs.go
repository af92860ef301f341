package templates

import (
	"fmt"
	"os"
	"strings"
	"text/template"
)

func funcMap() template.FuncMap {
	return template.FuncMap{
		"readFile": readFile,
		"default": func(def, value string) string {
			if value == "" {
				return def
			}
			return value
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		"trim":  strings.TrimSpace,
		"join": func(sep string, values []string) string {
			return strings.Join(values, sep)
		},
	}
}

// readFile inlines a previously generated file, e.g. a snippet in the item page.
func readFile(path string) (string, error) {
	// #nosec G304 -- paths come from the generator, not from template authors.
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("readFile %s: %w", path, err)
	}
	return string(data), nil
}
