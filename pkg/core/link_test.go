package core

import (
	"errors"
	"testing"

	"github.com/shoenig/test/must"

	arborerrors "github.com/go-drift/arbor/pkg/errors"
	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/go-drift/arbor/pkg/layout"
)

// scrollView builds a 100x100 clipping view holding a 150 tall list.
func scrollView(t *testing.T) (tree *Tree, view, list WidgetID) {
	t.Helper()
	tree = newTestTree()
	view = mustCreate(t, tree, WidgetID{}, WidgetSpec{
		Name:         "view",
		Size:         graphics.Size{Width: 100, Height: 100},
		ClipChildren: true,
	})
	list = mustCreate(t, tree, view, WidgetSpec{
		Name:      "list",
		PolicyX:   PolicyParent,
		PolicyY:   PolicyChildren,
		Container: &layout.Container{Direction: layout.AxisY},
	})
	for _, name := range []string{"one", "two", "three"} {
		mustCreate(t, tree, list, WidgetSpec{Name: name, PolicyX: PolicyExpand, Size: graphics.Size{Height: 50}})
	}
	return tree, view, list
}

func TestLink_RunsBetweenInputsAndOutputs(t *testing.T) {
	tree, view, list := scrollView(t)
	_, err := tree.AddLink(view, LinkSpec{
		Name:    "scroll-to-end",
		Inputs:  []Node{EntryOf(list, EntrySizeY), EntryOf(view, EntrySizeY)},
		Outputs: []Entry{EntryOf(list, EntryPositionY)},
		Run: func(ctx *UpdateContext) {
			overflow := ctx.Size(list).Height - ctx.Size(ctx.Widget()).Height
			ctx.SetAnchorOffset(list, graphics.Offset{Y: -overflow})
		},
	})
	must.NoError(t, err)
	frame(t, tree)

	must.Eq(t, 150.0, tree.Size(list).Height)
	must.Eq(t, -50.0, tree.Position(list).Y)
}

func TestLink_ChainedLinksRunInOrder(t *testing.T) {
	tree := newTestTree()
	w := mustCreate(t, tree, WidgetID{}, WidgetSpec{Name: "w"})
	var order []string
	first, err := tree.AddLink(w, LinkSpec{Name: "first", Run: func(*UpdateContext) { order = append(order, "first") }})
	must.NoError(t, err)
	second, err := tree.AddLink(w, LinkSpec{
		Name:   "second",
		Inputs: []Node{first},
		Run:    func(*UpdateContext) { order = append(order, "second") },
	})
	must.NoError(t, err)
	dropped, err := tree.AddLink(w, LinkSpec{Name: "dropped", Run: func(*UpdateContext) { order = append(order, "dropped") }})
	must.NoError(t, err)
	tree.RemoveLink(dropped)

	frame(t, tree)
	must.Eq(t, []string{"first", "second"}, order)
	s := tree.Scheduler()
	must.Less(t, s.LayerOf(second), s.LayerOf(first))
}

func TestLink_InvalidInputs(t *testing.T) {
	tree := newTestTree()
	leaf := mustCreate(t, tree, WidgetID{}, WidgetSpec{Name: "leaf"})
	gone := mustCreate(t, tree, WidgetID{}, WidgetSpec{Name: "gone"})
	removed, err := tree.AddLink(leaf, LinkSpec{Name: "removed"})
	must.NoError(t, err)
	tree.RemoveLink(removed)
	must.NoError(t, tree.Remove(gone, true))

	tests := []struct {
		name string
		spec LinkSpec
	}{
		{"no name", LinkSpec{}},
		{"children entry on leaf", LinkSpec{Name: "x", Inputs: []Node{EntryOf(leaf, EntryChildrenX)}}},
		{"removed widget", LinkSpec{Name: "x", Inputs: []Node{EntryOf(gone, EntrySizeX)}}},
		{"removed link", LinkSpec{Name: "x", Inputs: []Node{removed}}},
		{"bad output", LinkSpec{Name: "x", Outputs: []Entry{EntryOf(leaf, EntryChildrenY)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tree.AddLink(leaf, tt.spec)
			var ce *arborerrors.ConfigError
			must.True(t, errors.As(err, &ce))
		})
	}
}

func TestLink_CycleThroughLink(t *testing.T) {
	tree := newTestTree()
	w := mustCreate(t, tree, WidgetID{}, WidgetSpec{Name: "w"})
	_, err := tree.AddLink(w, LinkSpec{
		Name:    "feedback",
		Inputs:  []Node{EntryOf(w, EntrySizeX)},
		Outputs: []Entry{EntryOf(w, EntrySizeX)},
	})
	must.NoError(t, err)

	err = tree.Frame()
	var ce *arborerrors.CycleError
	must.True(t, errors.As(err, &ce))
	must.SliceContains(t, ce.Loops[0], "link:feedback")
	must.SliceContains(t, ce.Loops[0], "w.SizeX")
}

func TestLink_SkippedWhileOwnerHidden(t *testing.T) {
	tree := newTestTree()
	w := mustCreate(t, tree, WidgetID{}, WidgetSpec{Name: "w", Hidden: true})
	runs := 0
	l, err := tree.AddLink(w, LinkSpec{Name: "count", Run: func(*UpdateContext) { runs++ }})
	must.NoError(t, err)

	frame(t, tree)
	must.Eq(t, 0, runs)
	must.Eq(t, -1, tree.Scheduler().LayerOf(l))

	must.NoError(t, tree.SetVisible(w, true))
	frame(t, tree)
	must.Eq(t, 1, runs)
}

func TestLink_DroppedWithOwner(t *testing.T) {
	tree := newTestTree()
	w := mustCreate(t, tree, WidgetID{}, WidgetSpec{Name: "w"})
	child := mustCreate(t, tree, w, WidgetSpec{Name: "child"})
	runs := 0
	l, err := tree.AddLink(child, LinkSpec{Name: "count", Run: func(*UpdateContext) { runs++ }})
	must.NoError(t, err)
	frame(t, tree)
	must.Eq(t, 1, runs)

	must.NoError(t, tree.Remove(w, true))
	must.True(t, l.Removed())
	frame(t, tree)
	must.Eq(t, 1, runs)
}
