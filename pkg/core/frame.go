package core

import (
	"time"

	"github.com/go-drift/arbor/pkg/errors"
	"github.com/go-drift/arbor/pkg/graphics"
)

// Frame brings the tree up to date: the schedule is rebuilt if the tree
// changed shape, every entry and link runs once, and the render queue is
// regrouped. A failed rebuild aborts the frame before anything runs; the
// error is reported through errors.Report and returned.
func (t *Tree) Frame() error {
	t.mustBeIdle("Frame")
	if t.scheduler.Stale() {
		if err := t.scheduler.Rebuild(); err != nil {
			ae := &errors.ArborError{
				Op:        "Frame",
				Kind:      errors.KindSchedule,
				Err:       err,
				Timestamp: time.Now(),
			}
			errors.Report(ae)
			return ae
		}
	}
	t.scheduler.Run()
	if !t.queue.valid {
		t.queue.build(t)
	}
	return nil
}

// Render calls fn with the current render passes while the tree is locked
// for rendering. Mutating the tree from fn panics.
func (t *Tree) Render(fn func(passes []RenderPass)) {
	q := t.RenderQueue()
	unlock := t.enter("Render", PhaseRendering)
	defer unlock()
	fn(q.passes)
}

// HitTest returns the topmost visible widget whose unclipped region
// contains p, in render order.
func (t *Tree) HitTest(p graphics.Offset) (WidgetID, bool) {
	passes := t.RenderQueue().Passes()
	for i := len(passes) - 1; i >= 0; i-- {
		ws := passes[i].Widgets
		for j := len(ws) - 1; j >= 0; j-- {
			if t.UnclippedRegion(ws[j]).Contains(p) {
				return ws[j], true
			}
		}
	}
	return WidgetID{}, false
}
