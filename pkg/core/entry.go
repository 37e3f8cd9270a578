package core

import (
	"fmt"

	"github.com/go-drift/arbor/pkg/errors"
	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/go-drift/arbor/pkg/layout"
)

// EntryKind selects which recompute an Entry performs.
type EntryKind uint8

const (
	EntryNormal EntryKind = iota
	EntryPositionX
	EntryPositionY
	EntrySizeX
	EntrySizeY
	EntryChildrenX
	EntryChildrenY
)

var entryKindNames = [...]string{"Normal", "PositionX", "PositionY", "SizeX", "SizeY", "ChildrenX", "ChildrenY"}

func (k EntryKind) String() string {
	if int(k) < len(entryKindNames) {
		return entryKindNames[k]
	}
	return fmt.Sprintf("EntryKind(%d)", k)
}

// ParseEntryKind converts a kind name as printed by String.
func ParseEntryKind(s string) (EntryKind, error) {
	for i, name := range entryKindNames {
		if name == s {
			return EntryKind(i), nil
		}
	}
	return EntryNormal, fmt.Errorf("unknown entry kind %q", s)
}

// containerOnly reports whether the kind exists only on containers.
func (k EntryKind) containerOnly() bool {
	return k == EntryChildrenX || k == EntryChildrenY
}

// axis returns the axis a per-axis kind works on.
func (k EntryKind) axis() layout.Axis {
	switch k {
	case EntryPositionY, EntrySizeY, EntryChildrenY:
		return layout.AxisY
	}
	return layout.AxisX
}

func positionKind(a layout.Axis) EntryKind {
	if a == layout.AxisY {
		return EntryPositionY
	}
	return EntryPositionX
}

func sizeKind(a layout.Axis) EntryKind {
	if a == layout.AxisY {
		return EntrySizeY
	}
	return EntrySizeX
}

func childrenKind(a layout.Axis) EntryKind {
	if a == layout.AxisY {
		return EntryChildrenY
	}
	return EntryChildrenX
}

// Node is a vertex of the update graph: an Entry or a *Link.
type Node interface {
	fmt.Stringer
	isNode()
}

// Entry is one schedulable recompute of one widget.
type Entry struct {
	Widget WidgetID
	Kind   EntryKind
}

func (Entry) isNode() {}

func (e Entry) String() string {
	return e.Widget.String() + "." + e.Kind.String()
}

// EntryOf is shorthand for Entry{Widget: id, Kind: kind}.
func EntryOf(id WidgetID, kind EntryKind) Entry {
	return Entry{Widget: id, Kind: kind}
}

// entryKinds returns the kinds a widget carries.
func entryKinds(w *widget) []EntryKind {
	if w.container != nil {
		return []EntryKind{EntryNormal, EntryPositionX, EntryPositionY, EntrySizeX, EntrySizeY, EntryChildrenX, EntryChildrenY}
	}
	return []EntryKind{EntryNormal, EntryPositionX, EntryPositionY, EntrySizeX, EntrySizeY}
}

// validEntry checks that e names a live widget carrying that kind.
func (t *Tree) validEntry(op string, e Entry) error {
	w := t.get(e.Widget)
	if w == nil {
		return &errors.ConfigError{Op: op, Field: "entry " + e.String(), Reason: ErrUnknownWidget.Error()}
	}
	if e.Kind > EntryChildrenY {
		return &errors.ConfigError{Op: op, Field: "entry " + e.String(), Reason: "unknown entry kind"}
	}
	if e.Kind.containerOnly() && w.container == nil {
		return &errors.ConfigError{Op: op, Field: "entry " + t.NodeName(e), Reason: "children entries exist only on containers"}
	}
	return nil
}

// NodeName renders a node for diagnostics using widget names, such as
// "panel.SizeX" or "link:scroll".
func (t *Tree) NodeName(n Node) string {
	switch n := n.(type) {
	case Entry:
		return t.Name(n.Widget) + "." + n.Kind.String()
	case *Link:
		return n.String()
	}
	return fmt.Sprint(n)
}

// nodeLabel defers NodeName until a panic report needs it.
type nodeLabel struct {
	tree *Tree
	node Node
}

func (l nodeLabel) String() string {
	return l.tree.NodeName(l.node)
}

// UpdateContext is handed to behaviors and link functions while the tree
// is locked for update. Its setters bypass the idle check: they are the
// sanctioned way for update code to feed values into later entries.
type UpdateContext struct {
	tree   *Tree
	widget WidgetID
}

// Tree returns the tree being updated. Its mutating methods panic while
// the update runs.
func (c *UpdateContext) Tree() *Tree {
	return c.tree
}

// Widget returns the widget that owns the running behavior or link.
func (c *UpdateContext) Widget() WidgetID {
	return c.widget
}

// Size returns a widget's current computed size.
func (c *UpdateContext) Size(id WidgetID) graphics.Size {
	return c.tree.Size(id)
}

// DeclaredSize returns a widget's declared size.
func (c *UpdateContext) DeclaredSize(id WidgetID) graphics.Size {
	if w := c.tree.get(id); w != nil {
		return toSize(w.declared)
	}
	return graphics.Size{}
}

// SetDeclaredSize changes a widget's declared size. Entries that run later
// in the same pass observe the new value.
func (c *UpdateContext) SetDeclaredSize(id WidgetID, size graphics.Size) {
	if w := c.tree.get(id); w != nil {
		w.declared = fromSize(size)
	}
}

// SetAnchorOffset shifts a widget relative to its anchor point, e.g. for
// scrolling. Position entries that run later observe the new value.
func (c *UpdateContext) SetAnchorOffset(id WidgetID, off graphics.Offset) {
	if w := c.tree.get(id); w != nil {
		w.anchor.Offset = off
	}
}

// execute runs the recompute for one entry.
func (t *Tree) execute(e Entry) {
	w := t.get(e.Widget)
	if w == nil {
		return
	}
	switch e.Kind {
	case EntryNormal:
		if w.behavior != nil {
			errors.Guard("Run", nodeLabel{t, e}, func() {
				w.behavior.Update(&UpdateContext{tree: t, widget: w.id})
			})
		}
	case EntrySizeX, EntrySizeY:
		t.recomputeSize(w, e.Kind.axis())
	case EntryPositionX, EntryPositionY:
		t.recomputePosition(w, e.Kind.axis())
	case EntryChildrenX, EntryChildrenY:
		if w.container != nil {
			t.layoutChildren(w, e.Kind.axis())
		}
	}
}

func (t *Tree) recomputeSize(w *widget, a layout.Axis) {
	parent := t.get(w.parent)
	size := w.declared[a]
	switch w.policy[a] {
	case PolicyParent:
		if parent != nil {
			size = parent.size[a]
		}
	case PolicyExpand:
		switch {
		case parent == nil:
		case parent.container != nil:
			size = w.assigned[a]
		default:
			size = parent.size[a]
		}
	case PolicyChildren:
		if w.container != nil {
			size = t.contentExtent(w, a)
		} else {
			size = t.childrenBounds(w, a)
		}
	}
	t.setSize(w, a, layout.Clamp(size, w.min[a], w.max[a]))
}

func (t *Tree) recomputePosition(w *widget, a layout.Axis) {
	parent := t.get(w.parent)
	pos := w.anchor.offset(a)
	switch {
	case parent == nil:
	case parent.container != nil:
		pos += w.slot[a]
	default:
		pos += parent.size[a]*w.anchor.Parent.factor(a) - w.size[a]*w.anchor.Origin.factor(a)
	}
	t.setPosition(w, a, pos)
}

func (t *Tree) setSize(w *widget, a layout.Axis, v float64) {
	if w.size[a] == v {
		return
	}
	w.size[a] = v
	t.geometryMoved(w)
}

func (t *Tree) setPosition(w *widget, a layout.Axis, v float64) {
	if w.pos[a] == v {
		return
	}
	w.pos[a] = v
	t.geometryMoved(w)
}

// geometryMoved defers invalidation to the end of an update pass, where a
// single top-down sweep replaces one sweep per changed widget.
func (t *Tree) geometryMoved(w *widget) {
	if t.phase == PhaseUpdating {
		t.geometryChanged = true
		return
	}
	t.invalidateGeometry(w)
}

// visibleChildren returns w's visible children in order.
func (t *Tree) visibleChildren(w *widget) []*widget {
	kids := make([]*widget, 0, len(w.children))
	for _, id := range w.children {
		if c := t.get(id); c != nil && c.visible {
			kids = append(kids, c)
		}
	}
	return kids
}

// childrenBounds is the PolicyChildren size of a plain widget: the far edge
// of the furthest non-expanding child.
func (t *Tree) childrenBounds(w *widget, a layout.Axis) float64 {
	bound := 0.0
	for _, c := range t.visibleChildren(w) {
		if c.expands(a) {
			continue
		}
		bound = max(bound, c.anchor.offset(a)+c.size[a])
	}
	return bound
}
