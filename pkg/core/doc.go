// Package core holds the retained widget tree and the machinery that keeps
// it laid out from frame to frame.
//
// # Widgets
//
// A Tree owns every widget in an arena; callers address widgets through
// WidgetID handles, which stop resolving once the widget is removed. Each
// widget carries per-axis size policies and an anchor relative to its
// parent, along with size bounds, flags and optionally a
// layout.Container configuration that stacks its children in a row or
// column.
//
// # Update schedule
//
// Every widget contributes a fixed set of entries: Normal, SizeX/SizeY,
// PositionX/PositionY and, for containers, ChildrenX/ChildrenY. The
// Scheduler derives dependency edges between entries from the size
// policies, adds any user-declared Link nodes, and orders the result into
// layers with package toposort. A cycle anywhere in the graph fails the
// rebuild with an *errors.CycleError naming every loop.
//
//	t := core.NewTree(core.Options{Viewport: graphics.Size{Width: 800, Height: 600}})
//	row, _ := t.Create(t.Root(), core.WidgetSpec{
//	    Name:      "row",
//	    PolicyX:   core.PolicyParent,
//	    PolicyY:   core.PolicyChildren,
//	    Container: &layout.Container{Direction: layout.AxisX, EdgePadding: 4},
//	})
//	t.Create(row, core.WidgetSpec{Name: "fill", PolicyX: core.PolicyExpand, Size: graphics.Size{Height: 20}})
//	if err := t.Frame(); err != nil {
//	    // inspect err with errors.As(err, new(*errors.CycleError))
//	}
//
// # Phases
//
// Structural and configuration edits are only legal while the tree is
// idle. Scheduler.Run locks the tree for update and Tree.Render locks it
// for rendering; editing the tree from inside either panics with an
// *errors.ReentrancyError.
//
// # Derived geometry
//
// Global transforms and clip regions are cached per widget and dropped
// whenever a size or position changes. The render queue groups visible
// widgets by (GlobalLayer, local layer) and is regrouped after any edit
// that can change the drawing order.
package core
