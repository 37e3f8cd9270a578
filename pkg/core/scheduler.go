package core

import (
	"slices"
	"time"

	"github.com/hashicorp/go-hclog"
	metrics "github.com/hashicorp/go-metrics"

	"github.com/go-drift/arbor/pkg/errors"
	"github.com/go-drift/arbor/pkg/toposort"
)

// Scheduler turns the tree into an ordered list of layers and runs them.
type Scheduler struct {
	tree   *Tree
	logger hclog.Logger

	layers [][]Node
	// generation is the tree generation the layers were built from.
	generation uint64
	built      bool
}

func newScheduler(t *Tree, logger hclog.Logger) *Scheduler {
	return &Scheduler{tree: t, logger: logger}
}

// Stale reports whether the tree changed shape since the last successful
// Rebuild.
func (s *Scheduler) Stale() bool {
	return !s.built || s.generation != s.tree.generation
}

// Rebuild recomputes the schedule from the current tree. If the update
// graph has any cycle, the schedule is cleared and a *errors.CycleError
// listing every distinct loop is returned.
func (s *Scheduler) Rebuild() error {
	defer metrics.MeasureSince([]string{"arbor", "scheduler", "rebuild"}, time.Now())
	t := s.tree
	t.mustBeIdle("Rebuild")

	g := t.collect()
	var loops [][]string
	layers, err := toposort.Layers(g.nodes, g.parents, func(loop []Node) {
		names := make([]string, len(loop))
		for i, n := range loop {
			names[i] = t.NodeName(n)
		}
		loops = append(loops, names)
	})
	if err == nil && len(loops) > 0 {
		err = errors.NewCycleError(loops)
	}
	if err != nil {
		s.layers = nil
		s.built = false
		s.logger.Error("update graph has cycles", "loops", len(loops), "error", err)
		return err
	}

	s.layers = layers
	s.generation = t.generation
	s.built = true
	metrics.SetGauge([]string{"arbor", "scheduler", "nodes"}, float32(len(g.nodes)))
	metrics.SetGauge([]string{"arbor", "scheduler", "layers"}, float32(len(layers)))
	s.logger.Trace("schedule rebuilt", "nodes", len(g.nodes), "layers", len(layers))
	return nil
}

// Run executes the schedule layer by layer with the tree locked for update.
// Geometry caches are invalidated once at the end if anything moved.
func (s *Scheduler) Run() {
	defer metrics.MeasureSince([]string{"arbor", "scheduler", "run"}, time.Now())
	t := s.tree
	unlock := t.enter("Run", PhaseUpdating)
	t.geometryChanged = false
	func() {
		defer unlock()
		for _, layer := range s.layers {
			for _, n := range layer {
				switch n := n.(type) {
				case Entry:
					t.execute(n)
				case *Link:
					if !n.removed {
						n.execute(t)
					}
				}
			}
		}
	}()
	if t.geometryChanged {
		t.geometryChanged = false
		t.invalidateGeometry(t.get(t.root))
	}
}

// Layers returns a copy of the current schedule.
func (s *Scheduler) Layers() [][]Node {
	out := make([][]Node, len(s.layers))
	for i, l := range s.layers {
		out[i] = slices.Clone(l)
	}
	return out
}

// LayerOf returns the index of the layer holding n, or -1.
func (s *Scheduler) LayerOf(n Node) int {
	for i, l := range s.layers {
		if slices.Contains(l, n) {
			return i
		}
	}
	return -1
}
