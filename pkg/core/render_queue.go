package core

import (
	"cmp"
	"fmt"
	"slices"
)

// GlobalLayer is the coarse render pass a widget draws in.
type GlobalLayer int

const (
	LayerBase GlobalLayer = iota
	LayerOverlay
	LayerDebug
)

func (l GlobalLayer) String() string {
	switch l {
	case LayerOverlay:
		return "overlay"
	case LayerDebug:
		return "debug"
	default:
		return "base"
	}
}

// ParseGlobalLayer converts a layer name as printed by String.
func ParseGlobalLayer(s string) (GlobalLayer, error) {
	switch s {
	case "", "base":
		return LayerBase, nil
	case "overlay":
		return LayerOverlay, nil
	case "debug":
		return LayerDebug, nil
	}
	return LayerBase, fmt.Errorf("unknown layer %q", s)
}

// RenderPass is the ordered list of widgets drawn with one layer key.
type RenderPass struct {
	Global  GlobalLayer
	Local   int
	Widgets []WidgetID
}

// RenderQueue groups the visible widgets into passes ordered by
// (global layer, local layer). Inside a pass widgets keep depth-first order,
// so parents draw before their children.
type RenderQueue struct {
	passes []RenderPass
	valid  bool
}

func (q *RenderQueue) invalidate() {
	q.valid = false
	q.passes = nil
}

// Valid reports whether the queue matches the current tree.
func (q *RenderQueue) Valid() bool {
	return q.valid
}

// Passes returns the passes of the last build.
func (q *RenderQueue) Passes() []RenderPass {
	return q.passes
}

type layerKey struct {
	global GlobalLayer
	local  int
}

// build regroups every visible widget of t.
func (q *RenderQueue) build(t *Tree) {
	type item struct {
		w   *widget
		key layerKey
	}
	var order []layerKey
	groups := make(map[layerKey][]WidgetID)

	stack := []item{{w: t.get(t.root), key: layerKey{global: LayerBase}}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		w := it.w
		if !w.visible {
			continue
		}
		key := effectiveLayer(it.key, w)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], w.id)
		for i := len(w.children) - 1; i >= 0; i-- {
			if c := t.get(w.children[i]); c != nil {
				stack = append(stack, item{w: c, key: key})
			}
		}
	}

	slices.SortStableFunc(order, func(a, b layerKey) int {
		if c := cmp.Compare(a.global, b.global); c != 0 {
			return c
		}
		return cmp.Compare(a.local, b.local)
	})
	q.passes = make([]RenderPass, len(order))
	for i, k := range order {
		q.passes[i] = RenderPass{Global: k.global, Local: k.local, Widgets: groups[k]}
	}
	q.valid = true
}

// effectiveLayer combines the parent's effective key with the widget's own
// layers. A widget never draws below its parent's global layer. Local
// layers accumulate while the global layer is inherited and restart when
// the widget escalates to a higher one.
func effectiveLayer(parent layerKey, w *widget) layerKey {
	if w.layer > parent.global {
		return layerKey{global: w.layer, local: w.localLayer}
	}
	return layerKey{global: parent.global, local: parent.local + w.localLayer}
}

// RenderQueue returns the tree's render queue, rebuilding it first if the
// tree changed since the last build.
func (t *Tree) RenderQueue() *RenderQueue {
	if !t.queue.valid {
		t.queue.build(t)
	}
	return &t.queue
}
