// Package urn implements the hierarchical identifiers that address every
// entity of a library manifest (package/module/item[/element]) and derive
// its output paths.
package urn

import (
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

// Separator splits URN segments.
const Separator = "/"

// URN is a parsed hierarchical identifier. Two URNs are equal when their
// Value is equal.
type URN struct {
	// Value is the full identifier, e.g. "c4model/Element/Person".
	Value string
	// Name is the last segment.
	Name string
	// Label is Name in title case split on word boundaries.
	Label string
	// PathToBase climbs from the URN directory back to the library root.
	PathToBase string
}

// Parse builds a URN from its string form. It does not validate; see Validate.
func Parse(value string) URN {
	segments := strings.Split(value, Separator)
	ups := make([]string, len(segments))
	for i := range ups {
		ups[i] = ".."
	}
	name := segments[len(segments)-1]
	return URN{
		Value:      value,
		Name:       name,
		Label:      TitleCase(name),
		PathToBase: strings.Join(ups, Separator),
	}
}

// Validate rejects empty identifiers and segments that would escape the
// output directory.
func (u URN) Validate() error {
	if strings.TrimSpace(u.Value) == "" {
		return fmt.Errorf("urn is empty")
	}
	for _, seg := range strings.Split(u.Value, Separator) {
		switch {
		case seg == "":
			return fmt.Errorf("urn %q has an empty segment", u.Value)
		case seg == "." || seg == "..":
			return fmt.Errorf("urn %q has a relative segment", u.Value)
		case strings.ContainsAny(seg, `\:`):
			return fmt.Errorf("urn %q has an invalid character in %q", u.Value, seg)
		}
	}
	return nil
}

// String returns Value.
func (u URN) String() string { return u.Value }

// IsZero reports an unset URN.
func (u URN) IsZero() bool { return u.Value == "" }

// Segments returns the URN split on its separator.
func (u URN) Segments() []string { return strings.Split(u.Value, Separator) }

// Parent drops the last segment. A single-segment URN is its own parent.
func (u URN) Parent() URN {
	i := strings.LastIndex(u.Value, Separator)
	if i < 0 {
		return u
	}
	return Parse(u.Value[:i])
}

// Child appends a segment.
func (u URN) Child(name string) URN {
	return Parse(u.Value + Separator + name)
}

// HasPrefix reports whether other is u or one of its ancestors.
func (u URN) HasPrefix(other URN) bool {
	return u.Value == other.Value || strings.HasPrefix(u.Value, other.Value+Separator)
}

// IsIncludedIn reports whether u is selected by a URN filter: an empty
// filter selects everything, and a filter entry selects its ancestors and
// descendants.
func (u URN) IsIncludedIn(urns []URN) bool {
	if len(urns) == 0 {
		return true
	}
	for _, other := range urns {
		if u.HasPrefix(other) || other.HasPrefix(u) {
			return true
		}
	}
	return false
}

// ParseAll parses every value.
func ParseAll(values []string) []URN {
	out := make([]URN, 0, len(values))
	for _, v := range values {
		out = append(out, Parse(v))
	}
	return out
}

// UnmarshalYAML reads a URN from a scalar.
func (u *URN) UnmarshalYAML(node *yaml.Node) error {
	var value string
	if err := node.Decode(&value); err != nil {
		return fmt.Errorf("line %d: urn must be a string: %w", node.Line, err)
	}
	*u = Parse(value)
	return nil
}

// MarshalYAML writes the URN as a scalar.
func (u URN) MarshalYAML() (any, error) {
	return u.Value, nil
}

// MarshalText writes the URN as text, which also makes it a plain string in JSON.
func (u URN) MarshalText() ([]byte, error) {
	return []byte(u.Value), nil
}

// UnmarshalText reads a URN from text.
func (u *URN) UnmarshalText(b []byte) error {
	*u = Parse(string(b))
	return nil
}

// JSONSchema describes a URN as a slash separated string.
func (URN) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Pattern:     `^[^/\\:]+(/[^/\\:]+)*$`,
		Description: "A hierarchical identifier: <package>[/<module>[/<item>]].",
	}
}
