package core

import (
	stderrors "errors"
	"slices"

	"github.com/hashicorp/go-hclog"

	"github.com/go-drift/arbor/pkg/errors"
	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/go-drift/arbor/pkg/layout"
)

// ErrUnknownWidget is returned for a zero, stale or foreign WidgetID.
var ErrUnknownWidget = stderrors.New("core: unknown or removed widget")

// Options configures a Tree.
type Options struct {
	// Viewport is the root widget's declared size.
	Viewport graphics.Size
	// RootName names the root widget. Default: "root".
	RootName string
	// Logger receives trace and error records. Default: a null logger.
	Logger hclog.Logger
}

// Tree owns every widget of one widget hierarchy, the update schedule
// derived from it and the caches built on top of the laid out tree.
//
// A Tree is not safe for concurrent use; the whole model runs on the
// calling goroutine, one frame at a time.
type Tree struct {
	widgets arena
	root    WidgetID
	phase   Phase
	logger  hclog.Logger

	// generation advances whenever the dependency graph may have changed.
	generation uint64
	// geometryChanged records a size or position change during Run.
	geometryChanged bool

	scheduler *Scheduler
	queue     RenderQueue
}

// NewTree creates a tree holding only a root widget sized to the viewport.
func NewTree(opts Options) *Tree {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	name := opts.RootName
	if name == "" {
		name = "root"
	}
	t := &Tree{logger: logger.Named("tree")}
	root := t.widgets.alloc(WidgetSpec{Name: name, Size: opts.Viewport})
	root.size = root.declared
	t.root = root.id
	t.scheduler = newScheduler(t, logger.Named("scheduler"))
	return t
}

// Root returns the root widget.
func (t *Tree) Root() WidgetID {
	return t.root
}

// Len returns the number of live widgets, root included.
func (t *Tree) Len() int {
	return t.widgets.live
}

// Scheduler returns the tree's update scheduler.
func (t *Tree) Scheduler() *Scheduler {
	return t.scheduler
}

func (t *Tree) get(id WidgetID) *widget {
	return t.widgets.get(id)
}

func (t *Tree) lookup(op string, id WidgetID) (*widget, error) {
	w := t.get(id)
	if w == nil {
		return nil, &errors.ConfigError{Op: op, Field: "widget " + id.String(), Reason: ErrUnknownWidget.Error()}
	}
	return w, nil
}

// graphChanged invalidates the schedule and the render queue.
func (t *Tree) graphChanged() {
	t.generation++
	t.queue.invalidate()
}

// Create adds a new widget as the last child of parent, or of the root when
// parent is the zero WidgetID.
func (t *Tree) Create(parent WidgetID, spec WidgetSpec) (WidgetID, error) {
	t.mustBeIdle("Create")
	if parent.IsZero() {
		parent = t.root
	}
	p, err := t.lookup("Create", parent)
	if err != nil {
		return WidgetID{}, err
	}
	w := t.widgets.alloc(spec)
	w.parent = p.id
	p.children = append(p.children, w.id)
	t.graphChanged()
	t.logger.Trace("widget created", "widget", w.label(), "parent", p.label())
	return w.id, nil
}

// AddChild moves child under parent at index; a negative or out of range
// index appends. Moving a widget under itself or one of its descendants is
// rejected with a StructureError and leaves the tree unchanged.
func (t *Tree) AddChild(parent, child WidgetID, index int) error {
	t.mustBeIdle("AddChild")
	p, err := t.lookup("AddChild", parent)
	if err != nil {
		return err
	}
	c, err := t.lookup("AddChild", child)
	if err != nil {
		return err
	}
	if c.id == t.root {
		return &errors.StructureError{Op: "AddChild", Widget: c.label(), Target: p.label(), Reason: "the root cannot be reparented"}
	}
	for a := p; a != nil; a = t.get(a.parent) {
		if a.id == c.id {
			return &errors.StructureError{Op: "AddChild", Widget: c.label(), Target: p.label(), Reason: "target is the widget itself or one of its descendants"}
		}
	}

	if old := t.get(c.parent); old != nil {
		old.children = slices.DeleteFunc(old.children, func(id WidgetID) bool { return id == c.id })
	}
	if index < 0 || index > len(p.children) {
		index = len(p.children)
	}
	p.children = slices.Insert(p.children, index, c.id)
	c.parent = p.id
	c.slot = [2]float64{}
	c.assigned = [2]float64{}
	t.graphChanged()
	t.invalidateGeometry(c)
	return nil
}

// Reparent moves child to the end of newParent's children.
func (t *Tree) Reparent(child, newParent WidgetID) error {
	return t.AddChild(newParent, child, -1)
}

// Reorder moves child to index among its siblings.
func (t *Tree) Reorder(child WidgetID, index int) error {
	t.mustBeIdle("Reorder")
	c, err := t.lookup("Reorder", child)
	if err != nil {
		return err
	}
	p := t.get(c.parent)
	if p == nil {
		return &errors.StructureError{Op: "Reorder", Widget: c.label(), Reason: "widget has no parent"}
	}
	p.children = slices.DeleteFunc(p.children, func(id WidgetID) bool { return id == c.id })
	if index < 0 || index > len(p.children) {
		index = len(p.children)
	}
	p.children = slices.Insert(p.children, index, c.id)
	t.graphChanged()
	return nil
}

// Remove destroys a widget. With recursive set its whole subtree is
// destroyed; otherwise its children take its place in its parent. Links
// owned by destroyed widgets are dropped.
func (t *Tree) Remove(id WidgetID, recursive bool) error {
	t.mustBeIdle("Remove")
	w, err := t.lookup("Remove", id)
	if err != nil {
		return err
	}
	if w.id == t.root {
		return &errors.StructureError{Op: "Remove", Widget: w.label(), Reason: "the root cannot be removed"}
	}
	p := t.get(w.parent)
	at := slices.Index(p.children, w.id)
	p.children = slices.Delete(p.children, at, at+1)

	if recursive {
		t.destroy(w)
	} else {
		p.children = slices.Insert(p.children, at, w.children...)
		for _, cid := range w.children {
			c := t.get(cid)
			c.parent = p.id
			c.slot = [2]float64{}
			c.assigned = [2]float64{}
		}
		w.children = nil
		t.destroy(w)
	}
	t.graphChanged()
	t.invalidateGeometry(p)
	t.logger.Trace("widget removed", "widget", w.label(), "recursive", recursive)
	return nil
}

// destroy releases w and its remaining subtree without recursion.
func (t *Tree) destroy(w *widget) {
	stack := []*widget{w}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, cid := range n.children {
			if c := t.get(cid); c != nil {
				stack = append(stack, c)
			}
		}
		for _, l := range n.links {
			l.removed = true
		}
		n.links = nil
		t.widgets.release(n.id)
	}
}

// SetPolicy changes the size policy of one axis.
func (t *Tree) SetPolicy(id WidgetID, axis layout.Axis, p SizePolicy) error {
	t.mustBeIdle("SetPolicy")
	w, err := t.lookup("SetPolicy", id)
	if err != nil {
		return err
	}
	if w.policy[axis] != p {
		w.policy[axis] = p
		t.graphChanged()
	}
	return nil
}

// SetAnchor changes how the widget is positioned in its parent.
func (t *Tree) SetAnchor(id WidgetID, a Anchor) error {
	t.mustBeIdle("SetAnchor")
	w, err := t.lookup("SetAnchor", id)
	if err != nil {
		return err
	}
	if w.anchor.Parent != a.Parent || w.anchor.Origin != a.Origin {
		t.graphChanged()
	}
	w.anchor = a
	return nil
}

// SetSize changes the declared size used by PolicyNone axes. The computed
// size follows on the next frame.
func (t *Tree) SetSize(id WidgetID, size graphics.Size) error {
	t.mustBeIdle("SetSize")
	w, err := t.lookup("SetSize", id)
	if err != nil {
		return err
	}
	w.declared = fromSize(size)
	return nil
}

// SetMinSize changes the lower size bound.
func (t *Tree) SetMinSize(id WidgetID, size graphics.Size) error {
	t.mustBeIdle("SetMinSize")
	w, err := t.lookup("SetMinSize", id)
	if err != nil {
		return err
	}
	w.min = fromSize(size)
	return nil
}

// SetMaxSize changes the upper size bound; a negative component is unbounded.
func (t *Tree) SetMaxSize(id WidgetID, size graphics.Size) error {
	t.mustBeIdle("SetMaxSize")
	w, err := t.lookup("SetMaxSize", id)
	if err != nil {
		return err
	}
	w.max = fromSize(size)
	return nil
}

// SetVisible shows or hides a widget and its subtree.
func (t *Tree) SetVisible(id WidgetID, visible bool) error {
	t.mustBeIdle("SetVisible")
	w, err := t.lookup("SetVisible", id)
	if err != nil {
		return err
	}
	if w.visible != visible {
		w.visible = visible
		t.graphChanged()
	}
	return nil
}

// SetClipChildren enables or disables clipping of descendants.
func (t *Tree) SetClipChildren(id WidgetID, clip bool) error {
	t.mustBeIdle("SetClipChildren")
	w, err := t.lookup("SetClipChildren", id)
	if err != nil {
		return err
	}
	if w.clipChildren != clip {
		w.clipChildren = clip
		t.invalidateGeometry(w)
	}
	return nil
}

// SetLayer moves the widget to another render pass.
func (t *Tree) SetLayer(id WidgetID, global GlobalLayer, local int) error {
	t.mustBeIdle("SetLayer")
	w, err := t.lookup("SetLayer", id)
	if err != nil {
		return err
	}
	if w.layer != global || w.localLayer != local {
		w.layer, w.localLayer = global, local
		t.queue.invalidate()
	}
	return nil
}

// SetContainer turns the widget into a container, or back into a plain
// widget when c is nil.
func (t *Tree) SetContainer(id WidgetID, c *layout.Container) error {
	t.mustBeIdle("SetContainer")
	w, err := t.lookup("SetContainer", id)
	if err != nil {
		return err
	}
	if c == nil {
		w.container = nil
	} else {
		cc := *c
		w.container = &cc
	}
	for _, cid := range w.children {
		if ch := t.get(cid); ch != nil {
			ch.slot = [2]float64{}
			ch.assigned = [2]float64{}
		}
	}
	t.graphChanged()
	return nil
}

// SetBehavior replaces the widget's Normal-entry behavior.
func (t *Tree) SetBehavior(id WidgetID, b Behavior) error {
	t.mustBeIdle("SetBehavior")
	w, err := t.lookup("SetBehavior", id)
	if err != nil {
		return err
	}
	w.behavior = b
	return nil
}

// SetViewport changes the root's declared size.
func (t *Tree) SetViewport(size graphics.Size) {
	t.mustBeIdle("SetViewport")
	t.get(t.root).declared = fromSize(size)
}

// Parent returns the parent of id, or the zero WidgetID for the root.
func (t *Tree) Parent(id WidgetID) WidgetID {
	if w := t.get(id); w != nil {
		return w.parent
	}
	return WidgetID{}
}

// Children returns a copy of id's ordered children.
func (t *Tree) Children(id WidgetID) []WidgetID {
	if w := t.get(id); w != nil {
		return slices.Clone(w.children)
	}
	return nil
}

// Contains reports whether id refers to a live widget of this tree.
func (t *Tree) Contains(id WidgetID) bool {
	return t.get(id) != nil
}

// Name returns the widget's name, or its handle when unnamed.
func (t *Tree) Name(id WidgetID) string {
	if w := t.get(id); w != nil {
		return w.label()
	}
	return id.String()
}

// Lookup returns the first widget in depth-first order with the given name.
func (t *Tree) Lookup(name string) (WidgetID, bool) {
	var found WidgetID
	t.Walk(func(id WidgetID) bool {
		if t.get(id).name == name {
			found = id
			return false
		}
		return true
	})
	return found, !found.IsZero()
}

// Walk visits the tree depth-first in child order, hidden widgets included,
// until fn returns false.
func (t *Tree) Walk(fn func(id WidgetID) bool) {
	stack := []WidgetID{t.root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(id) {
			return
		}
		w := t.get(id)
		for i := len(w.children) - 1; i >= 0; i-- {
			stack = append(stack, w.children[i])
		}
	}
}

// Size returns the computed size.
func (t *Tree) Size(id WidgetID) graphics.Size {
	if w := t.get(id); w != nil {
		return toSize(w.size)
	}
	return graphics.Size{}
}

// Position returns the computed top-left corner relative to the parent.
func (t *Tree) Position(id WidgetID) graphics.Offset {
	if w := t.get(id); w != nil {
		return graphics.Offset{X: w.pos[0], Y: w.pos[1]}
	}
	return graphics.Offset{}
}

// Policy returns the size policy of one axis.
func (t *Tree) Policy(id WidgetID, axis layout.Axis) SizePolicy {
	if w := t.get(id); w != nil {
		return w.policy[axis]
	}
	return PolicyNone
}

// Visible reports the widget's own visibility flag.
func (t *Tree) Visible(id WidgetID) bool {
	w := t.get(id)
	return w != nil && w.visible
}

// IsContainer reports whether the widget lays out its children.
func (t *Tree) IsContainer(id WidgetID) bool {
	w := t.get(id)
	return w != nil && w.container != nil
}
