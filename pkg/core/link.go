package core

import (
	"slices"

	"github.com/go-drift/arbor/pkg/errors"
)

// LinkSpec declares a reactive link for Tree.AddLink.
type LinkSpec struct {
	// Name identifies the link in schedules and cycle reports.
	Name string
	// Inputs are the entries and links that must run before the link. No
	// other edges are derived for it.
	Inputs []Node
	// Outputs are entries that must run after the link, typically the
	// entries reading values the link writes.
	Outputs []Entry
	// Run is called once per update pass.
	Run func(ctx *UpdateContext)
}

// Link is a user-declared node of the update graph. It lives as long as
// its owner widget and is skipped while the owner is hidden.
type Link struct {
	name    string
	owner   WidgetID
	inputs  []Node
	outputs []Entry
	run     func(ctx *UpdateContext)
	removed bool
}

func (*Link) isNode() {}

func (l *Link) String() string {
	return "link:" + l.name
}

// Name returns the link's name.
func (l *Link) Name() string {
	return l.name
}

// Owner returns the widget the link belongs to.
func (l *Link) Owner() WidgetID {
	return l.owner
}

// Inputs returns a copy of the link's declared inputs.
func (l *Link) Inputs() []Node {
	return slices.Clone(l.inputs)
}

// Removed reports whether the link was removed, directly or with its owner.
func (l *Link) Removed() bool {
	return l.removed
}

// AddLink attaches a reactive link to owner. Every input must be an entry
// of a live widget or a link of this tree that has not been removed.
func (t *Tree) AddLink(owner WidgetID, spec LinkSpec) (*Link, error) {
	t.mustBeIdle("AddLink")
	w, err := t.lookup("AddLink", owner)
	if err != nil {
		return nil, err
	}
	if spec.Name == "" {
		return nil, &errors.ConfigError{Op: "AddLink", Field: "name", Reason: "link name is required"}
	}
	for _, in := range spec.Inputs {
		switch in := in.(type) {
		case Entry:
			if err := t.validEntry("AddLink", in); err != nil {
				return nil, err
			}
		case *Link:
			if in == nil || in.removed || t.get(in.owner) == nil {
				return nil, &errors.ConfigError{Op: "AddLink", Field: "input " + spec.Name, Reason: "input link was removed"}
			}
		default:
			return nil, &errors.ConfigError{Op: "AddLink", Field: "input " + spec.Name, Reason: "unsupported input node"}
		}
	}
	for _, out := range spec.Outputs {
		if err := t.validEntry("AddLink", out); err != nil {
			return nil, err
		}
	}

	l := &Link{
		name:    spec.Name,
		owner:   w.id,
		inputs:  slices.Clone(spec.Inputs),
		outputs: slices.Clone(spec.Outputs),
		run:     spec.Run,
	}
	w.links = append(w.links, l)
	t.graphChanged()
	return l, nil
}

// RemoveLink detaches a link from its owner. Removing a link twice is a
// no-op.
func (t *Tree) RemoveLink(l *Link) {
	t.mustBeIdle("RemoveLink")
	if l == nil || l.removed {
		return
	}
	l.removed = true
	if w := t.get(l.owner); w != nil {
		w.links = slices.DeleteFunc(w.links, func(x *Link) bool { return x == l })
	}
	t.graphChanged()
}

func (l *Link) execute(t *Tree) {
	if l.run == nil {
		return
	}
	errors.Guard("Run", l, func() {
		l.run(&UpdateContext{tree: t, widget: l.owner})
	})
}
