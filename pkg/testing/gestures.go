package testing

import (
	"fmt"

	"github.com/go-drift/arbor/pkg/core"
	"github.com/go-drift/arbor/pkg/graphics"
)

// TapTarget returns the widget a tap at the center of the first match
// would reach, taking layers and clipping into account.
func (t *TreeTester) TapTarget(finder Finder) (core.WidgetID, error) {
	result := t.Find(finder)
	if !result.Exists() {
		return core.WidgetID{}, fmt.Errorf("TapTarget: finder matched no widgets: %s", finder.Description())
	}
	region := t.tree.UnclippedRegion(result.First())
	if region.IsEmpty() {
		return core.WidgetID{}, fmt.Errorf("TapTarget: widget is clipped away: %s", finder.Description())
	}
	return t.TapAt(center(region))
}

// TapAt returns the widget a tap at pos would reach.
func (t *TreeTester) TapAt(pos graphics.Offset) (core.WidgetID, error) {
	id, ok := t.tree.HitTest(pos)
	if !ok {
		return core.WidgetID{}, fmt.Errorf("TapAt: no widget at (%v, %v)", pos.X, pos.Y)
	}
	return id, nil
}

func center(r graphics.Rect) graphics.Offset {
	return graphics.Offset{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}
