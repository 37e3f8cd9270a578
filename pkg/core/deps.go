package core

import "github.com/go-drift/arbor/pkg/layout"

// graph is one snapshot of the update graph: the nodes of every visible
// widget and the edges derived from the tree's policies.
type graph struct {
	tree  *Tree
	nodes []Node
	// feeds maps an entry to the links that declared it as an output.
	feeds map[Entry][]*Link
}

// collect walks the visible tree depth-first and gathers every entry and
// link. Hidden widgets and their subtrees contribute nothing.
func (t *Tree) collect() *graph {
	g := &graph{tree: t, feeds: make(map[Entry][]*Link)}
	stack := []*widget{t.get(t.root)}
	for len(stack) > 0 {
		w := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !w.visible {
			continue
		}
		for _, k := range entryKinds(w) {
			g.nodes = append(g.nodes, Entry{Widget: w.id, Kind: k})
		}
		for _, l := range w.links {
			g.nodes = append(g.nodes, l)
			for _, out := range l.outputs {
				g.feeds[out] = append(g.feeds[out], l)
			}
		}
		for i := len(w.children) - 1; i >= 0; i-- {
			if c := t.get(w.children[i]); c != nil {
				stack = append(stack, c)
			}
		}
	}
	return g
}

// parents returns the nodes n waits for.
func (g *graph) parents(n Node) []Node {
	switch n := n.(type) {
	case *Link:
		return n.inputs
	case Entry:
		deps := g.entryParents(n)
		for _, l := range g.feeds[n] {
			deps = append(deps, l)
		}
		return deps
	}
	return nil
}

func (g *graph) entryParents(e Entry) []Node {
	t := g.tree
	w := t.get(e.Widget)
	if w == nil {
		return nil
	}
	p := t.get(w.parent)
	a := e.Kind.axis()
	var deps []Node

	switch e.Kind {
	case EntrySizeX, EntrySizeY:
		deps = append(deps, Entry{w.id, EntryNormal})
		switch w.policy[a] {
		case PolicyParent:
			if p != nil {
				deps = append(deps, Entry{p.id, EntryNormal}, Entry{p.id, sizeKind(a)})
			}
		case PolicyExpand:
			if p != nil {
				deps = append(deps, Entry{p.id, sizeKind(a)})
				if p.container != nil {
					deps = append(deps, Entry{p.id, childrenKind(a)})
				}
			}
		case PolicyChildren:
			if w.container != nil {
				deps = append(deps, Entry{w.id, childrenKind(a)})
			}
			for _, c := range t.visibleChildren(w) {
				if !c.expands(a) {
					deps = append(deps, Entry{c.id, EntryNormal}, Entry{c.id, sizeKind(a)})
				}
			}
		}

	case EntryPositionX, EntryPositionY:
		if p == nil {
			break
		}
		if p.container != nil {
			deps = append(deps, Entry{p.id, childrenKind(a)})
		}
		if w.anchor.needsParentSize(a) {
			deps = append(deps, Entry{p.id, sizeKind(a)})
		}
		if p.container == nil && w.anchor.needsOwnSize(a) {
			deps = append(deps, Entry{w.id, sizeKind(a)})
		}

	case EntryChildrenX, EntryChildrenY:
		deps = g.childrenParents(w, a)
	}
	return deps
}

func (g *graph) childrenParents(w *widget, a layout.Axis) []Node {
	var deps []Node
	if w.policy[a] != PolicyChildren {
		deps = append(deps, Entry{w.id, sizeKind(a)})
	}
	for _, c := range g.tree.visibleChildren(w) {
		if !c.expands(a) {
			deps = append(deps, Entry{c.id, sizeKind(a)})
		}
	}
	return deps
}
