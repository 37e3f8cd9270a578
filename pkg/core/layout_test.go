package core

import (
	"testing"

	"github.com/shoenig/test/must"

	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/go-drift/arbor/pkg/layout"
)

func frame(t *testing.T, tree *Tree) {
	t.Helper()
	must.NoError(t, tree.Frame())
}

func widths(tree *Tree, ids ...WidgetID) []float64 {
	out := make([]float64, len(ids))
	for i, id := range ids {
		out[i] = tree.Size(id).Width
	}
	return out
}

func xs(tree *Tree, ids ...WidgetID) []float64 {
	out := make([]float64, len(ids))
	for i, id := range ids {
		out[i] = tree.Position(id).X
	}
	return out
}

func TestLayout_CappedExpanderGetsItsMax(t *testing.T) {
	tree := newTestTree()
	row := mustCreate(t, tree, WidgetID{}, WidgetSpec{
		Name:      "row",
		Size:      graphics.Size{Width: 400, Height: 50},
		Container: &layout.Container{Direction: layout.AxisX},
	})
	capped := mustCreate(t, tree, row, WidgetSpec{Name: "capped", PolicyX: PolicyExpand, MaxSize: &graphics.Size{Width: 10, Height: -1}})
	b := mustCreate(t, tree, row, WidgetSpec{Name: "b", PolicyX: PolicyExpand})
	c := mustCreate(t, tree, row, WidgetSpec{Name: "c", PolicyX: PolicyExpand})
	d := mustCreate(t, tree, row, WidgetSpec{Name: "d", PolicyX: PolicyExpand})
	frame(t, tree)

	must.Eq(t, []float64{10, 130, 130, 130}, widths(tree, capped, b, c, d))
	must.Eq(t, []float64{0, 10, 140, 270}, xs(tree, capped, b, c, d))
}

func TestLayout_ExpanderTakesRemainder(t *testing.T) {
	tree := newTestTree()
	row := mustCreate(t, tree, WidgetID{}, WidgetSpec{
		Name:      "row",
		Size:      graphics.Size{Width: 300, Height: 40},
		Container: &layout.Container{Direction: layout.AxisX, EdgePadding: 10, Gap: 5},
	})
	a := mustCreate(t, tree, row, WidgetSpec{Name: "a", Size: graphics.Size{Width: 40, Height: 20}})
	fill := mustCreate(t, tree, row, WidgetSpec{Name: "fill", PolicyX: PolicyExpand})
	b := mustCreate(t, tree, row, WidgetSpec{Name: "b", Size: graphics.Size{Width: 60, Height: 20}})
	frame(t, tree)

	// 300 - 2*10 - 2*5 - 40 - 60
	must.Eq(t, []float64{40, 170, 60}, widths(tree, a, fill, b))
	must.Eq(t, []float64{10, 55, 230}, xs(tree, a, fill, b))

	// Resizing the container re-runs the distribution.
	must.NoError(t, tree.SetSize(row, graphics.Size{Width: 400, Height: 40}))
	frame(t, tree)
	must.Eq(t, 270.0, tree.Size(fill).Width)
}

func TestLayout_ChildrenPolicyContainer(t *testing.T) {
	tree := newTestTree()
	row := mustCreate(t, tree, WidgetID{}, WidgetSpec{
		Name:      "row",
		PolicyX:   PolicyChildren,
		PolicyY:   PolicyChildren,
		Container: &layout.Container{Direction: layout.AxisX, EdgePadding: 5, Gap: 10, Align: layout.AlignCenter},
	})
	a := mustCreate(t, tree, row, WidgetSpec{Name: "a", Size: graphics.Size{Width: 50, Height: 30}})
	b := mustCreate(t, tree, row, WidgetSpec{Name: "b", Size: graphics.Size{Width: 70, Height: 20}})
	frame(t, tree)

	must.Eq(t, graphics.Size{Width: 140, Height: 40}, tree.Size(row))
	must.Eq(t, graphics.Offset{X: 5, Y: 5}, tree.Position(a))
	must.Eq(t, graphics.Offset{X: 65, Y: 10}, tree.Position(b))
}

func TestLayout_EmptyChildrenContainerIsPadding(t *testing.T) {
	tree := newTestTree()
	box := mustCreate(t, tree, WidgetID{}, WidgetSpec{
		Name:      "box",
		PolicyX:   PolicyChildren,
		PolicyY:   PolicyChildren,
		Container: &layout.Container{Direction: layout.AxisY, EdgePadding: 6, Gap: 100},
	})
	frame(t, tree)

	must.Eq(t, graphics.Size{Width: 12, Height: 12}, tree.Size(box))
}

func TestLayout_ExpanderInChildrenContainerGetsMin(t *testing.T) {
	tree := newTestTree()
	row := mustCreate(t, tree, WidgetID{}, WidgetSpec{
		Name:      "row",
		PolicyX:   PolicyChildren,
		Size:      graphics.Size{Height: 30},
		Container: &layout.Container{Direction: layout.AxisX},
	})
	fixed := mustCreate(t, tree, row, WidgetSpec{Name: "fixed", Size: graphics.Size{Width: 40, Height: 10}})
	grow := mustCreate(t, tree, row, WidgetSpec{
		Name:    "grow",
		PolicyX: PolicyExpand,
		PolicyY: PolicyExpand,
		MinSize: graphics.Size{Width: 15},
	})
	frame(t, tree)

	must.Eq(t, []float64{40, 15}, widths(tree, fixed, grow))
	must.Eq(t, 55.0, tree.Size(row).Width)
	// On the secondary axis the expander fills the container.
	must.Eq(t, 30.0, tree.Size(grow).Height)
}

func TestLayout_SecondaryAxisAlignsToWidestChild(t *testing.T) {
	tree := newTestTree()
	col := mustCreate(t, tree, WidgetID{}, WidgetSpec{
		Name:      "col",
		Size:      graphics.Size{Width: 200, Height: 100},
		Container: &layout.Container{Direction: layout.AxisY, Align: layout.AlignCenter},
	})
	wide := mustCreate(t, tree, col, WidgetSpec{Name: "wide", Size: graphics.Size{Width: 100, Height: 10}})
	narrow := mustCreate(t, tree, col, WidgetSpec{Name: "narrow", Size: graphics.Size{Width: 50, Height: 10}})
	frame(t, tree)

	// Centered within the 100 wide children, not the 200 wide container.
	must.Eq(t, []float64{0, 25}, xs(tree, wide, narrow))
}

func TestLayout_SecondaryAxisExpandFillsInnerBox(t *testing.T) {
	tree := newTestTree()
	col := mustCreate(t, tree, WidgetID{}, WidgetSpec{
		Name:      "col",
		Size:      graphics.Size{Width: 100, Height: 200},
		Container: &layout.Container{Direction: layout.AxisY, EdgePadding: 8, Align: layout.AlignEnd},
	})
	fill := mustCreate(t, tree, col, WidgetSpec{Name: "fill", PolicyX: PolicyExpand, Size: graphics.Size{Height: 10}})
	wide := mustCreate(t, tree, col, WidgetSpec{Name: "wide", Size: graphics.Size{Width: 60, Height: 10}})
	narrow := mustCreate(t, tree, col, WidgetSpec{Name: "narrow", Size: graphics.Size{Width: 20, Height: 10}})
	capped := mustCreate(t, tree, col, WidgetSpec{
		Name:    "capped",
		PolicyX: PolicyExpand,
		MaxSize: &graphics.Size{Width: 30, Height: -1},
		Size:    graphics.Size{Height: 10},
	})
	frame(t, tree)

	must.Eq(t, []float64{84, 60, 20, 30}, widths(tree, fill, wide, narrow, capped))
	// Aligned to the end of the 60 wide extent; the filler starts at the edge.
	must.Eq(t, []float64{8, 8, 48, 38}, xs(tree, fill, wide, narrow, capped))
	must.Eq(t, graphics.Offset{X: 48, Y: 28}, tree.Position(narrow))
}

func TestLayout_OverflowKeepsMinSizes(t *testing.T) {
	tree := newTestTree()
	row := mustCreate(t, tree, WidgetID{}, WidgetSpec{
		Name:      "row",
		Size:      graphics.Size{Width: 100, Height: 10},
		Container: &layout.Container{Direction: layout.AxisX},
	})
	a := mustCreate(t, tree, row, WidgetSpec{Name: "a", Size: graphics.Size{Width: 80}})
	grow := mustCreate(t, tree, row, WidgetSpec{Name: "grow", PolicyX: PolicyExpand, MinSize: graphics.Size{Width: 5}})
	b := mustCreate(t, tree, row, WidgetSpec{Name: "b", Size: graphics.Size{Width: 80}})
	frame(t, tree)

	must.Eq(t, []float64{80, 5, 80}, widths(tree, a, grow, b))
	must.Eq(t, []float64{0, 80, 85}, xs(tree, a, grow, b))
}

func TestLayout_AnchorsInPlainParent(t *testing.T) {
	tree := newTestTree()
	plain := mustCreate(t, tree, WidgetID{}, WidgetSpec{Name: "plain", Size: graphics.Size{Width: 200, Height: 100}})
	centered := mustCreate(t, tree, plain, WidgetSpec{
		Name:   "centered",
		Size:   graphics.Size{Width: 20, Height: 10},
		Anchor: Anchor{Parent: Center, Origin: Center},
	})
	corner := mustCreate(t, tree, plain, WidgetSpec{
		Name:   "corner",
		Size:   graphics.Size{Width: 20, Height: 10},
		Anchor: Anchor{Parent: BottomRight, Origin: BottomRight, Offset: graphics.Offset{X: -5, Y: -5}},
	})
	topRight := mustCreate(t, tree, plain, WidgetSpec{
		Name:   "top-right",
		Size:   graphics.Size{Width: 20, Height: 10},
		Anchor: Anchor{Parent: TopRight, Origin: TopLeft},
	})
	frame(t, tree)

	must.Eq(t, graphics.Offset{X: 90, Y: 45}, tree.Position(centered))
	must.Eq(t, graphics.Offset{X: 175, Y: 85}, tree.Position(corner))
	must.Eq(t, graphics.Offset{X: 200, Y: 0}, tree.Position(topRight))
}

func TestLayout_ParentAndExpandInPlainParent(t *testing.T) {
	tree := newTestTree()
	plain := mustCreate(t, tree, WidgetID{}, WidgetSpec{Name: "plain", Size: graphics.Size{Width: 200, Height: 100}})
	copyW := mustCreate(t, tree, plain, WidgetSpec{Name: "copy", PolicyX: PolicyParent, PolicyY: PolicyParent})
	fill := mustCreate(t, tree, plain, WidgetSpec{
		Name:    "fill",
		PolicyX: PolicyExpand,
		PolicyY: PolicyExpand,
		MaxSize: &graphics.Size{Width: -1, Height: 60},
	})
	frame(t, tree)

	must.Eq(t, graphics.Size{Width: 200, Height: 100}, tree.Size(copyW))
	must.Eq(t, graphics.Size{Width: 200, Height: 60}, tree.Size(fill))
}

func TestLayout_ChildrenPolicyPlainParent(t *testing.T) {
	tree := newTestTree()
	group := mustCreate(t, tree, WidgetID{}, WidgetSpec{Name: "group", PolicyX: PolicyChildren, PolicyY: PolicyChildren})
	mustCreate(t, tree, group, WidgetSpec{
		Name:   "a",
		Size:   graphics.Size{Width: 20, Height: 10},
		Anchor: Anchor{Offset: graphics.Offset{X: 10, Y: 5}},
	})
	mustCreate(t, tree, group, WidgetSpec{
		Name:   "b",
		Size:   graphics.Size{Width: 50, Height: 5},
		Anchor: Anchor{Offset: graphics.Offset{Y: 30}},
	})
	mustCreate(t, tree, group, WidgetSpec{Name: "ignored", PolicyX: PolicyExpand, PolicyY: PolicyExpand})
	frame(t, tree)

	must.Eq(t, graphics.Size{Width: 50, Height: 35}, tree.Size(group))
}

func TestLayout_HiddenChildTakesNoSpace(t *testing.T) {
	tree := newTestTree()
	row := mustCreate(t, tree, WidgetID{}, WidgetSpec{
		Name:      "row",
		PolicyX:   PolicyChildren,
		Container: &layout.Container{Direction: layout.AxisX, Gap: 10},
	})
	mustCreate(t, tree, row, WidgetSpec{Name: "a", Size: graphics.Size{Width: 30}})
	hidden := mustCreate(t, tree, row, WidgetSpec{Name: "hidden", Size: graphics.Size{Width: 1000}, Hidden: true})
	b := mustCreate(t, tree, row, WidgetSpec{Name: "b", Size: graphics.Size{Width: 30}})
	frame(t, tree)
	must.Eq(t, 70.0, tree.Size(row).Width)
	must.Eq(t, 40.0, tree.Position(b).X)

	must.NoError(t, tree.SetVisible(hidden, true))
	frame(t, tree)
	must.Eq(t, 1080.0, tree.Size(row).Width)
	must.Eq(t, 1050.0, tree.Position(b).X)
}
