package core

import "fmt"

// WidgetID is a stable handle to a widget in a Tree. A handle stays valid
// until the widget is removed; after that it never resolves again, even if
// the arena slot is reused. The zero WidgetID refers to no widget.
type WidgetID struct {
	index      uint32
	generation uint32
}

// IsZero reports whether id is the zero handle.
func (id WidgetID) IsZero() bool {
	return id.generation == 0
}

func (id WidgetID) String() string {
	if id.IsZero() {
		return "#nil"
	}
	return fmt.Sprintf("#%d.%d", id.index, id.generation)
}

type arenaSlot struct {
	generation uint32
	w          *widget
}

// arena stores widgets by index with a free list.
type arena struct {
	slots []arenaSlot
	free  []uint32
	live  int
}

func (a *arena) alloc(spec WidgetSpec) *widget {
	var index uint32
	if n := len(a.free); n > 0 {
		index = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		index = uint32(len(a.slots))
		a.slots = append(a.slots, arenaSlot{})
	}
	s := &a.slots[index]
	s.generation++
	s.w = newWidget(WidgetID{index: index, generation: s.generation}, spec)
	a.live++
	return s.w
}

func (a *arena) get(id WidgetID) *widget {
	if id.IsZero() || int(id.index) >= len(a.slots) {
		return nil
	}
	s := a.slots[id.index]
	if s.generation != id.generation {
		return nil
	}
	return s.w
}

func (a *arena) release(id WidgetID) {
	if a.get(id) == nil {
		return
	}
	a.slots[id.index].w = nil
	a.free = append(a.free, id.index)
	a.live--
}
