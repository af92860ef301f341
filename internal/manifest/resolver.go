package manifest

import (
	"fmt"
	"sort"
	"strings"

	ferrors "git.home.luguber.info/inful/plantuml-generator/internal/foundation/errors"
	"git.home.luguber.info/inful/plantuml-generator/internal/urn"
)

// EntityKind tells which level of the tree a URN addresses.
type EntityKind string

const (
	KindPackage EntityKind = "package"
	KindModule  EntityKind = "module"
	KindItem    EntityKind = "item"
)

// Entry is one indexed entity.
type Entry struct {
	Kind    EntityKind
	URN     urn.URN
	Package *Package
	Module  *Module
	Item    *Item
}

// Resolver indexes every entity of a library by URN and resolves icon
// references. It is read-only once built and safe for concurrent use.
type Resolver struct {
	lib     *Library
	entries map[string]*Entry
	icons   map[string]*Item // item urn -> item owning the icon source
}

// NewResolver indexes lib and validates it: URNs must be unique, element
// addresses must not collide with each other or with another entity, and
// every icon reference must end, without a cycle, at an item with a Source
// icon.
// All problems are reported together as one config error.
func NewResolver(lib *Library) (*Resolver, error) {
	r := &Resolver{
		lib:     lib,
		entries: make(map[string]*Entry),
		icons:   make(map[string]*Item),
	}
	var problems []string
	index := func(e *Entry) {
		if prev, dup := r.entries[e.URN.Value]; dup {
			problems = append(problems, fmt.Sprintf("duplicate urn %s (%s and %s)", e.URN, prev.Kind, e.Kind))
			return
		}
		r.entries[e.URN.Value] = e
	}

	for pi := range lib.Packages {
		p := &lib.Packages[pi]
		index(&Entry{Kind: KindPackage, URN: p.URN, Package: p})
		for mi := range p.Modules {
			m := &p.Modules[mi]
			index(&Entry{Kind: KindModule, URN: m.URN, Package: p, Module: m})
			for ii := range m.Items {
				it := &m.Items[ii]
				index(&Entry{Kind: KindItem, URN: it.URN, Package: p, Module: m, Item: it})
			}
		}
	}

	problems = append(problems, r.checkElements()...)

	for _, e := range r.sortedItems() {
		if e.Item.Icon == nil {
			continue
		}
		owner, err := r.followIcon(e.Item)
		if err != nil {
			problems = append(problems, err.Error())
			continue
		}
		r.icons[e.URN.Value] = owner
	}

	if len(problems) > 0 {
		return nil, ferrors.ConfigError("manifest references are invalid:\n  - "+strings.Join(problems, "\n  - ")).
			WithContext("problems", len(problems)).
			Build()
	}
	return r, nil
}

func (r *Resolver) sortedItems() []*Entry {
	var items []*Entry
	for _, e := range r.entries {
		if e.Kind == KindItem {
			items = append(items, e)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].URN.Value < items[j].URN.Value })
	return items
}

// checkElements derives the address of every element, the URN its snippet
// files are named after, and reports collisions.
func (r *Resolver) checkElements() []string {
	var problems []string
	owners := make(map[string]urn.URN)
	for _, e := range r.sortedItems() {
		for _, el := range e.Item.Elements {
			addr := ElementURN(e.URN, el.Shape)
			if owner, dup := owners[addr.Value]; dup {
				if owner.Value == e.URN.Value {
					problems = append(problems, fmt.Sprintf("item %s declares element %s twice", e.URN, addr))
				} else {
					problems = append(problems, fmt.Sprintf("duplicate element %s (items %s and %s)", addr, owner, e.URN))
				}
				continue
			}
			if other, ok := r.entries[addr.Value]; ok && other.URN.Value != e.URN.Value {
				problems = append(problems, fmt.Sprintf("element %s of item %s collides with %s %s", addr, e.URN, other.Kind, other.URN))
				continue
			}
			owners[addr.Value] = e.URN
		}
	}
	return problems
}

func (r *Resolver) followIcon(start *Item) (*Item, error) {
	seen := map[string]bool{start.URN.Value: true}
	chain := []string{start.URN.Value}
	current := start
	for current.Icon.Type == IconReference {
		target := current.Icon.URN.Value
		e, ok := r.entries[target]
		if !ok {
			return nil, fmt.Errorf("item %s references missing urn %s", current.URN, target)
		}
		if e.Kind != KindItem {
			return nil, fmt.Errorf("item %s references %s %s, not an item", current.URN, e.Kind, target)
		}
		chain = append(chain, target)
		if seen[target] {
			return nil, fmt.Errorf("icon reference cycle %s", strings.Join(chain, " -> "))
		}
		seen[target] = true
		if e.Item.Icon == nil {
			return nil, fmt.Errorf("item %s references %s which has no icon", current.URN, target)
		}
		current = e.Item
	}
	return current, nil
}

// Library returns the indexed library.
func (r *Resolver) Library() *Library { return r.lib }

// Lookup returns the entity addressed by u.
func (r *Resolver) Lookup(u urn.URN) (*Entry, bool) {
	e, ok := r.entries[u.Value]
	return e, ok
}

// ResolveIcon returns the item whose Source icon item uses: item itself, or
// the end of its reference chain. It returns false for items without icon.
func (r *Resolver) ResolveIcon(item *Item) (*Item, bool) {
	owner, ok := r.icons[item.URN.Value]
	return owner, ok
}

// IconURN is the URN the icon and sprite paths of item derive from.
func (r *Resolver) IconURN(item *Item) (urn.URN, bool) {
	owner, ok := r.ResolveIcon(item)
	if !ok {
		return urn.URN{}, false
	}
	return owner.URN, true
}

// Len is the number of indexed entities.
func (r *Resolver) Len() int { return len(r.entries) }
