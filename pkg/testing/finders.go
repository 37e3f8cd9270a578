package testing

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-drift/arbor/pkg/core"
	"github.com/go-drift/arbor/pkg/graphics"
)

// Finder locates widgets in a tree.
type Finder interface {
	// Evaluate returns all matching widgets (depth-first pre-order).
	Evaluate(tree *core.Tree) []core.WidgetID
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	tree    *core.Tree
	widgets []core.WidgetID
	finder  Finder
}

func (r FinderResult) description() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() core.WidgetID {
	if len(r.widgets) == 0 {
		panic(fmt.Sprintf("Finder found no widgets: %s", r.description()))
	}
	return r.widgets[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) core.WidgetID {
	if index < 0 || index >= len(r.widgets) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.widgets), r.description()))
	}
	return r.widgets[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []core.WidgetID {
	return r.widgets
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.widgets)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.widgets) > 0
}

// Size returns the computed size of the first match.
func (r FinderResult) Size() graphics.Size {
	return r.tree.Size(r.First())
}

// Position returns the parent-relative position of the first match.
func (r FinderResult) Position() graphics.Offset {
	return r.tree.Position(r.First())
}

// Bounds returns the global bounds of the first match.
func (r FinderResult) Bounds() graphics.Rect {
	return r.tree.GlobalBounds(r.First())
}

// --- Concrete finders ---

type nameFinder struct {
	name string
}

func (f *nameFinder) Evaluate(tree *core.Tree) []core.WidgetID {
	return collectMatches(tree, func(id core.WidgetID) bool {
		return tree.Name(id) == f.name
	})
}

func (f *nameFinder) Description() string {
	return fmt.Sprintf("ByName(%q)", f.name)
}

// ByName matches widgets with exactly the given name.
func ByName(name string) Finder {
	return &nameFinder{name: name}
}

type namePrefixFinder struct {
	prefix string
}

func (f *namePrefixFinder) Evaluate(tree *core.Tree) []core.WidgetID {
	return collectMatches(tree, func(id core.WidgetID) bool {
		return strings.HasPrefix(tree.Name(id), f.prefix)
	})
}

func (f *namePrefixFinder) Description() string {
	return fmt.Sprintf("ByNamePrefix(%q)", f.prefix)
}

// ByNamePrefix matches widgets whose name starts with prefix.
func ByNamePrefix(prefix string) Finder {
	return &namePrefixFinder{prefix: prefix}
}

type predicateFinder struct {
	fn   func(*core.Tree, core.WidgetID) bool
	desc string
}

func (f *predicateFinder) Evaluate(tree *core.Tree) []core.WidgetID {
	return collectMatches(tree, func(id core.WidgetID) bool { return f.fn(tree, id) })
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate matches widgets satisfying fn.
func ByPredicate(fn func(*core.Tree, core.WidgetID) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

// descendantFinder finds widgets matching 'matching' below widgets matching
// 'of'.
type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(tree *core.Tree) []core.WidgetID {
	ancestors := f.of.Evaluate(tree)
	if len(ancestors) == 0 {
		return nil
	}
	var results []core.WidgetID
	for _, id := range f.matching.Evaluate(tree) {
		for p := tree.Parent(id); !p.IsZero(); p = tree.Parent(p) {
			if slices.Contains(ancestors, p) {
				results = append(results, id)
				break
			}
		}
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant matches widgets found by matching that sit below a widget
// found by of.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}

func collectMatches(tree *core.Tree, match func(core.WidgetID) bool) []core.WidgetID {
	var results []core.WidgetID
	tree.Walk(func(id core.WidgetID) bool {
		if match(id) {
			results = append(results, id)
		}
		return true
	})
	return results
}
