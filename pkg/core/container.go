package core

import "github.com/go-drift/arbor/pkg/layout"

// layoutChildren runs the container pass for one axis. On the primary axis
// free space is distributed and children are stacked; on the secondary axis
// every child is aligned within the widest child's extent. The results are
// written to each child's slot and assigned size and picked up by the
// children's own size and position entries.
func (t *Tree) layoutChildren(w *widget, a layout.Axis) {
	c := w.container
	kids := t.visibleChildren(w)
	if a == c.Direction {
		t.distribute(w, a, kids)
		return
	}

	extent := t.crossExtent(w, a)
	box := extent
	if w.policy[a] != PolicyChildren {
		box = max(w.size[a]-c.EdgePadding*2, 0)
	}
	for _, k := range kids {
		size := k.size[a]
		if k.expands(a) {
			k.assigned[a] = box
			size = layout.Clamp(box, k.min[a], k.max[a])
		}
		// Expanders wider than the extent start at the edge.
		k.slot[a] = c.EdgePadding + max(layout.Align(c.Align, extent, size), 0)
	}
}

func (t *Tree) distribute(w *widget, a layout.Axis, kids []*widget) {
	c := w.container
	in := make([]layout.Child, len(kids))
	for i, k := range kids {
		in[i] = layout.Child{Size: k.size[a], Min: k.min[a], Max: k.max[a], Expand: k.expands(a)}
	}
	padding := layout.Padding(len(kids), c.EdgePadding, c.Gap)

	available := w.size[a]
	if w.policy[a] == PolicyChildren {
		// The container is sized after this pass, from what it holds, so
		// there is nothing left over for expanding children.
		available = padding
		for _, ch := range in {
			if ch.Expand {
				available += ch.Min
			} else {
				available += ch.Size
			}
		}
	}

	sizes := layout.Distribute(in, available, padding)
	offsets := layout.Place(sizes, c.EdgePadding, c.Gap)
	for i, k := range kids {
		if k.expands(a) {
			k.assigned[a] = sizes[i]
		}
		k.slot[a] = offsets[i]
	}
}

// contentExtent is the PolicyChildren size of a container along a.
func (t *Tree) contentExtent(w *widget, a layout.Axis) float64 {
	c := w.container
	if a != c.Direction {
		return c.EdgePadding*2 + t.crossExtent(w, a)
	}
	kids := t.visibleChildren(w)
	sizes := make([]float64, len(kids))
	for i, k := range kids {
		sizes[i] = k.extent(a)
	}
	return layout.Extent(sizes, c.EdgePadding, c.Gap)
}

// crossExtent is the widest child on the secondary axis. Expanding
// children fill whatever the others need and only count with their
// minimum.
func (t *Tree) crossExtent(w *widget, a layout.Axis) float64 {
	widest := 0.0
	for _, k := range t.visibleChildren(w) {
		if k.expands(a) {
			widest = max(widest, k.min[a])
		} else {
			widest = max(widest, k.size[a])
		}
	}
	return widest
}
