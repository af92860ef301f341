package templates

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"text/template"

	ferrors "git.home.luguber.info/inful/plantuml-generator/internal/foundation/errors"
)

// Renderer holds the parsed template set. It is read-only after New and
// safe for concurrent use.
type Renderer struct {
	set     *template.Template
	sources map[string]string // name -> "builtin" or file path
}

// New parses the built-in templates, then the user files keyed by name.
// A user file replaces the built-in of the same name.
func New(userFiles map[string]string) (*Renderer, error) {
	defaults, err := builtins()
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "load built-in templates").Build()
	}
	r := &Renderer{
		set:     template.New("").Funcs(funcMap()).Option("missingkey=error"),
		sources: make(map[string]string, len(defaults)+len(userFiles)),
	}
	for _, name := range sortedKeys(defaults) {
		if err := r.add(name, defaults[name]); err != nil {
			return nil, err
		}
		r.sources[name] = "builtin"
	}
	for _, name := range sortedKeys(userFiles) {
		file := userFiles[name]
		// #nosec G304 -- files come from template discovery under the manifest directory.
		body, err := os.ReadFile(file)
		if err != nil {
			return nil, ferrors.FileSystemError("read template " + file).WithCause(err).Build()
		}
		if err := r.add(name, string(body)); err != nil {
			return nil, err
		}
		r.sources[name] = file
	}
	return r, nil
}

// NewForLibrary discovers the user templates of a library and parses them
// over the built-ins.
func NewForLibrary(baseDir, pattern string) (*Renderer, error) {
	files, err := Discover(baseDir, pattern)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryTemplate, "discover templates").Build()
	}
	return New(files)
}

func (r *Renderer) add(name, body string) error {
	if _, err := r.set.New(name).Parse(body); err != nil {
		return ferrors.TemplateError("parse template "+name).
			WithCause(err).
			WithContext("template", name).
			Build()
	}
	return nil
}

// Has reports whether a template is defined.
func (r *Renderer) Has(name string) bool {
	return r.set.Lookup(name) != nil
}

// Source tells where a template comes from: "builtin" or its file path.
func (r *Renderer) Source(name string) string {
	return r.sources[name]
}

// Names lists the defined templates.
func (r *Renderer) Names() []string {
	return sortedKeys(r.sources)
}

// Render executes the named template with data.
func (r *Renderer) Render(name string, data any) (string, error) {
	tpl := r.set.Lookup(name)
	if tpl == nil {
		return "", ferrors.TemplateError(fmt.Sprintf("template %q is not defined", name)).
			WithContext("template", name).
			Build()
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", ferrors.TemplateError("render template "+name).
			WithCause(err).
			WithContext("template", name).
			Build()
	}
	return buf.String(), nil
}

// RenderToFile renders the named template into dest, creating parent directories.
func (r *Renderer) RenderToFile(name string, data any, dest string) error {
	content, err := r.Render(name, data)
	if err != nil {
		return err
	}
	return WriteFile(dest, content)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
