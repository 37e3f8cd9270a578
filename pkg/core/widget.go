package core

import (
	"fmt"

	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/go-drift/arbor/pkg/layout"
)

// SizePolicy is the per-axis rule that derives a widget's size.
type SizePolicy int

const (
	// PolicyNone uses the explicitly declared size.
	PolicyNone SizePolicy = iota
	// PolicyChildren fits the bounding box of the children.
	PolicyChildren
	// PolicyParent copies the parent's size.
	PolicyParent
	// PolicyExpand claims a share of the parent container's free space, or
	// fills the parent when the parent is not a container.
	PolicyExpand
)

func (p SizePolicy) String() string {
	switch p {
	case PolicyChildren:
		return "children"
	case PolicyParent:
		return "parent"
	case PolicyExpand:
		return "expand"
	default:
		return "none"
	}
}

// ParsePolicy converts a policy name as printed by String.
func ParsePolicy(s string) (SizePolicy, error) {
	switch s {
	case "", "none":
		return PolicyNone, nil
	case "children":
		return PolicyChildren, nil
	case "parent":
		return PolicyParent, nil
	case "expand":
		return PolicyExpand, nil
	}
	return PolicyNone, fmt.Errorf("unknown size policy %q", s)
}

// AnchorPoint names one of nine reference points on a rectangle.
type AnchorPoint int

const (
	TopLeft AnchorPoint = iota
	Top
	TopRight
	Left
	Center
	Right
	BottomLeft
	Bottom
	BottomRight
)

var anchorNames = [...]string{
	"top-left", "top", "top-right",
	"left", "center", "right",
	"bottom-left", "bottom", "bottom-right",
}

func (p AnchorPoint) String() string {
	if p < 0 || int(p) >= len(anchorNames) {
		return fmt.Sprintf("AnchorPoint(%d)", int(p))
	}
	return anchorNames[p]
}

// ParseAnchorPoint converts an anchor name as printed by String.
func ParseAnchorPoint(s string) (AnchorPoint, error) {
	if s == "" {
		return TopLeft, nil
	}
	for i, name := range anchorNames {
		if name == s {
			return AnchorPoint(i), nil
		}
	}
	return TopLeft, fmt.Errorf("unknown anchor %q", s)
}

// factor returns where along axis the point sits: 0 (start), 0.5 or 1 (end).
func (p AnchorPoint) factor(axis layout.Axis) float64 {
	col, row := int(p)%3, int(p)/3
	i := col
	if axis == layout.AxisY {
		i = row
	}
	return float64(i) * 0.5
}

// Anchor places a widget relative to its parent: the widget's Origin point
// is put on the parent's Parent point, shifted by Offset.
type Anchor struct {
	Parent AnchorPoint
	Origin AnchorPoint
	Offset graphics.Offset
}

// needsParentSize reports whether the parent point moves with the parent's size.
func (a Anchor) needsParentSize(axis layout.Axis) bool {
	return a.Parent.factor(axis) != 0
}

// needsOwnSize reports whether the origin point moves with the widget's size.
func (a Anchor) needsOwnSize(axis layout.Axis) bool {
	return a.Origin.factor(axis) != 0
}

func (a Anchor) offset(axis layout.Axis) float64 {
	if axis == layout.AxisY {
		return a.Offset.Y
	}
	return a.Offset.X
}

// Behavior is the widget-type specific recompute run by a widget's Normal
// entry, before any of its size entries. Concrete widget types use it to
// publish their desired size, e.g. a label measuring its text.
type Behavior interface {
	Update(ctx *UpdateContext)
}

// BehaviorFunc adapts a function to Behavior.
type BehaviorFunc func(ctx *UpdateContext)

// Update calls f(ctx).
func (f BehaviorFunc) Update(ctx *UpdateContext) { f(ctx) }

// WidgetSpec describes a widget for Tree.Create.
type WidgetSpec struct {
	// Name identifies the widget in diagnostics and Lookup.
	Name string
	// PolicyX and PolicyY select how each axis is sized.
	PolicyX, PolicyY SizePolicy
	// Size is the declared size used by PolicyNone.
	Size graphics.Size
	// MinSize bounds every computed size from below.
	MinSize graphics.Size
	// MaxSize bounds computed sizes from above; nil means unbounded.
	MaxSize *graphics.Size
	Anchor  Anchor
	// Hidden excludes the widget and its subtree from update and rendering.
	Hidden bool
	// ClipChildren clips descendants to this widget's visible region.
	ClipChildren bool
	// Layer and LocalLayer select the render pass.
	Layer      GlobalLayer
	LocalLayer int
	// Container makes the widget lay out its children in a row or column.
	Container *layout.Container
	Behavior  Behavior
}

// widget is the arena record behind a WidgetID.
type widget struct {
	id       WidgetID
	name     string
	parent   WidgetID
	children []WidgetID

	policy   [2]SizePolicy
	anchor   Anchor
	declared [2]float64
	min      [2]float64
	max      [2]float64 // negative = unbounded

	size [2]float64
	pos  [2]float64

	// Written by the parent container's children pass.
	slot     [2]float64
	assigned [2]float64

	visible      bool
	clipChildren bool
	layer        GlobalLayer
	localLayer   int

	container *layout.Container
	behavior  Behavior
	links     []*Link

	geom geometryCache
}

func newWidget(id WidgetID, spec WidgetSpec) *widget {
	w := &widget{
		id:           id,
		name:         spec.Name,
		policy:       [2]SizePolicy{spec.PolicyX, spec.PolicyY},
		anchor:       spec.Anchor,
		declared:     [2]float64{spec.Size.Width, spec.Size.Height},
		min:          [2]float64{spec.MinSize.Width, spec.MinSize.Height},
		max:          [2]float64{-1, -1},
		visible:      !spec.Hidden,
		clipChildren: spec.ClipChildren,
		layer:        spec.Layer,
		localLayer:   spec.LocalLayer,
		behavior:     spec.Behavior,
	}
	if spec.MaxSize != nil {
		w.max = [2]float64{spec.MaxSize.Width, spec.MaxSize.Height}
	}
	if spec.Container != nil {
		c := *spec.Container
		w.container = &c
	}
	return w
}

func (w *widget) label() string {
	if w.name != "" {
		return w.name
	}
	return w.id.String()
}

// expands reports whether the widget claims free space along axis.
func (w *widget) expands(axis layout.Axis) bool {
	return w.policy[axis] == PolicyExpand
}

// extent is the size a parent should count for this child along axis:
// the container-assigned size for expanding children, the current size
// otherwise.
func (w *widget) extent(axis layout.Axis) float64 {
	if w.expands(axis) {
		return w.assigned[axis]
	}
	return w.size[axis]
}

func toSize(v [2]float64) graphics.Size {
	return graphics.Size{Width: v[0], Height: v[1]}
}

func fromSize(s graphics.Size) [2]float64 {
	return [2]float64{s.Width, s.Height}
}
