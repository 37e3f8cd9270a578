package core

import (
	"image"

	"github.com/go-drift/arbor/pkg/graphics"
)

// geometryCache holds values derived from a widget's position in the laid
// out tree. Both parts are computed on demand and dropped by
// invalidateGeometry.
type geometryCache struct {
	transform      graphics.Transform
	transformValid bool

	clip      graphics.Rect
	quantized image.Rectangle
	clipValid bool
}

// invalidateGeometry drops the cached transform and clip of w and every
// descendant, hidden ones included.
func (t *Tree) invalidateGeometry(w *widget) {
	if w == nil {
		return
	}
	stack := []*widget{w}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n.geom.transformValid = false
		n.geom.clipValid = false
		for _, cid := range n.children {
			if c := t.get(cid); c != nil {
				stack = append(stack, c)
			}
		}
	}
}

// InvalidateGeometry drops the cached geometry of id and its subtree.
// Size and position changes do this automatically.
func (t *Tree) InvalidateGeometry(id WidgetID) {
	t.invalidateGeometry(t.get(id))
}

// transform returns w's local-to-global transform, filling the cache of
// every ancestor on the way.
func (t *Tree) transform(w *widget) graphics.Transform {
	if w.geom.transformValid {
		return w.geom.transform
	}
	var chain []*widget
	for n := w; n != nil && !n.geom.transformValid; n = t.get(n.parent) {
		chain = append(chain, n)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		n := chain[i]
		local := graphics.Translation(graphics.Offset{X: n.pos[0], Y: n.pos[1]})
		if p := t.get(n.parent); p != nil {
			n.geom.transform = local.Then(p.geom.transform)
		} else {
			n.geom.transform = local
		}
		n.geom.transformValid = true
	}
	return w.geom.transform
}

// GlobalTransform returns the widget's local-to-global transform.
func (t *Tree) GlobalTransform(id WidgetID) graphics.Transform {
	w := t.get(id)
	if w == nil {
		return graphics.Identity()
	}
	return t.transform(w)
}

// GlobalBounds returns the widget's rectangle in global coordinates,
// ignoring clipping.
func (t *Tree) GlobalBounds(id WidgetID) graphics.Rect {
	w := t.get(id)
	if w == nil {
		return graphics.Rect{}
	}
	return t.bounds(w)
}

func (t *Tree) bounds(w *widget) graphics.Rect {
	return t.transform(w).ApplyRect(graphics.RectFromLTWH(0, 0, w.size[0], w.size[1]))
}

// clip returns the part of w's global bounds that survives every clipping
// ancestor. The nearest clipping ancestor's own region already accounts
// for the ones above it, so the walk stops there.
func (t *Tree) clip(w *widget) graphics.Rect {
	if w.geom.clipValid {
		return w.geom.clip
	}
	region := t.bounds(w)
	for a := t.get(w.parent); a != nil; a = t.get(a.parent) {
		if !a.clipChildren {
			continue
		}
		r, ok := region.Intersect(t.clip(a))
		if !ok {
			r = graphics.RectFromOffsetSize(region.Origin(), graphics.Size{})
		}
		region = r
		break
	}
	w.geom.clip = region
	w.geom.quantized = region.Quantize()
	w.geom.clipValid = true
	return region
}

// UnclippedRegion returns the part of the widget that is not clipped away
// by its ancestors, in global coordinates. When nothing is left the result
// is an empty rectangle at the widget's global origin.
func (t *Tree) UnclippedRegion(id WidgetID) graphics.Rect {
	w := t.get(id)
	if w == nil {
		return graphics.Rect{}
	}
	return t.clip(w)
}

// QuantizedUnclippedRegion is UnclippedRegion snapped to whole pixels.
func (t *Tree) QuantizedUnclippedRegion(id WidgetID) image.Rectangle {
	w := t.get(id)
	if w == nil {
		return image.Rectangle{}
	}
	t.clip(w)
	return w.geom.quantized
}

// ClipValid reports whether the widget's clip region is currently cached.
func (t *Tree) ClipValid(id WidgetID) bool {
	w := t.get(id)
	return w != nil && w.geom.clipValid
}
