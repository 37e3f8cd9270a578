package core

import "github.com/go-drift/arbor/pkg/errors"

// Phase is the tree's lock state. Structural and configuration edits are
// only allowed while the tree is idle; update and render callbacks run with
// the tree locked so they cannot invalidate the traversal they are part of.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseUpdating
	PhaseRendering
)

func (p Phase) String() string {
	switch p {
	case PhaseUpdating:
		return "updating"
	case PhaseRendering:
		return "rendering"
	default:
		return "idle"
	}
}

// Phase returns the tree's current lock state.
func (t *Tree) Phase() Phase {
	return t.phase
}

// mustBeIdle panics with a ReentrancyError when the tree is locked.
func (t *Tree) mustBeIdle(op string) {
	if t.phase != PhaseIdle {
		panic(&errors.ReentrancyError{Op: op, Phase: t.phase.String()})
	}
}

// enter locks the tree for p and returns the function that unlocks it.
func (t *Tree) enter(op string, p Phase) func() {
	t.mustBeIdle(op)
	t.phase = p
	return func() { t.phase = PhaseIdle }
}
