// Package normalization maps loosely typed user input onto typed enums.
package normalization

import (
	"fmt"
	"slices"
	"strings"
)

var separators = strings.NewReplacer("-", "", "_", "", " ", "")

// Key folds raw into the lookup form: lower case without dashes,
// underscores or spaces, so "Item-Icon" and "itemicon" match.
func Key(raw string) string {
	return separators.Replace(strings.ToLower(strings.TrimSpace(raw)))
}

// Enum looks up values of T by their folded name.
type Enum[T comparable] struct {
	name     string
	values   map[string]T
	keys     []string
	fallback T
}

// NewEnum indexes values by Key(name). name labels the enum in errors.
func NewEnum[T comparable](name string, values map[string]T, fallback T) *Enum[T] {
	e := &Enum[T]{name: name, values: make(map[string]T, len(values)), fallback: fallback}
	for k, v := range values {
		e.values[Key(k)] = v
		e.keys = append(e.keys, Key(k))
	}
	slices.Sort(e.keys)
	return e
}

// Normalize returns the fallback for unknown input.
func (e *Enum[T]) Normalize(raw string) T {
	if v, ok := e.values[Key(raw)]; ok {
		return v
	}
	return e.fallback
}

// Parse rejects unknown input, listing the accepted names.
func (e *Enum[T]) Parse(raw string) (T, error) {
	if v, ok := e.values[Key(raw)]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q, valid options: %s", e.name, raw, strings.Join(e.keys, ", "))
}
