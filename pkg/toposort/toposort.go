// Package toposort orders a dependency graph into layers.
//
// The graph is given implicitly: a slice of nodes plus a function returning
// the parents (dependencies) of a node. Layers returns a sequence of layers
// where every parent of a node sits in a strictly earlier layer, so nodes of
// one layer are mutually independent and may run in any order.
//
// Cycles are either fatal (no callback) or reported once each through a
// callback, in which case the nodes in and downstream of every cycle are left
// out of the result.
package toposort

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-set/v3"
)

// unresolved marks a node that sits in or depends on a cycle.
const unresolved = -1

// LoopError reports a dependency cycle found while sorting without a loop
// callback. Loop lists the members in discovery order.
type LoopError[T any] struct {
	Loop []T
}

func (e *LoopError[T]) Error() string {
	parts := make([]string, 0, len(e.Loop)+1)
	for _, n := range e.Loop {
		parts = append(parts, fmt.Sprint(n))
	}
	if len(e.Loop) > 0 {
		parts = append(parts, fmt.Sprint(e.Loop[0]))
	}
	return "toposort: dependency loop: " + strings.Join(parts, " -> ")
}

type memo struct {
	layer int
	epoch int
}

type frame[T comparable] struct {
	node       T
	parents    []T
	next       int
	layer      int
	unresolved bool
}

type sorter[T comparable] struct {
	members map[T]struct{}
	parents func(T) []T
	onLoop  func([]T)

	memo    map[T]memo
	epoch   int
	stack   []frame[T]
	onStack *set.Set[T]
	seen    []*set.Set[T]
	err     error
}

// Layers sorts nodes into dependency layers.
//
// Parents that are not part of nodes are treated as already satisfied. The
// order of nodes inside a layer follows their order in the input.
//
// With a nil onLoop the first cycle aborts the sort with a *LoopError. With a
// callback every distinct cycle (by member set) is reported exactly once and
// the returned layers hold every node that neither belongs to nor depends on
// a cycle; the error is always nil in that mode.
func Layers[T comparable](nodes []T, parents func(T) []T, onLoop func(loop []T)) ([][]T, error) {
	s := &sorter[T]{
		members: make(map[T]struct{}, len(nodes)),
		parents: parents,
		onLoop:  onLoop,
		memo:    make(map[T]memo, len(nodes)),
		onStack: set.New[T](16),
	}
	for _, n := range nodes {
		s.members[n] = struct{}{}
	}

	// A newly found loop invalidates memo entries from earlier epochs, so
	// keep passing over the nodes until no pass discovers a new loop.
	for {
		start := s.epoch
		for _, n := range nodes {
			if m, ok := s.memo[n]; ok && m.epoch == s.epoch {
				continue
			}
			s.resolve(n)
			if s.err != nil {
				return nil, s.err
			}
		}
		if s.epoch == start {
			break
		}
	}

	depth := 0
	for _, n := range nodes {
		depth = max(depth, s.memo[n].layer+1)
	}
	layers := make([][]T, depth)
	for _, n := range nodes {
		if l := s.memo[n].layer; l >= 0 {
			layers[l] = append(layers[l], n)
		}
	}
	return layers, nil
}

// Must is like Layers without a loop callback but panics on a cycle.
func Must[T comparable](nodes []T, parents func(T) []T) [][]T {
	layers, err := Layers(nodes, parents, nil)
	if err != nil {
		panic(err)
	}
	return layers
}

// resolve assigns a layer to root and every not yet resolved ancestor. The
// traversal keeps its own stack instead of recursing so deep trees cannot
// exhaust the goroutine stack.
func (s *sorter[T]) resolve(root T) {
	s.push(root)
	for len(s.stack) > 0 {
		top := &s.stack[len(s.stack)-1]
		if top.next < len(top.parents) {
			p := top.parents[top.next]
			top.next++
			if _, ok := s.members[p]; !ok {
				continue
			}
			if s.onStack.Contains(p) {
				s.loop(p)
				if s.err != nil {
					s.stack = s.stack[:0]
					s.onStack = set.New[T](16)
					return
				}
				top.unresolved = true
				continue
			}
			if m, ok := s.memo[p]; ok && m.epoch == s.epoch {
				top.absorb(m.layer)
				continue
			}
			s.push(p)
			continue
		}

		done := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]
		s.onStack.Remove(done.node)

		layer := done.layer
		if done.unresolved {
			layer = unresolved
		}
		s.memo[done.node] = memo{layer: layer, epoch: s.epoch}
		if len(s.stack) > 0 {
			s.stack[len(s.stack)-1].absorb(layer)
		}
	}
}

func (s *sorter[T]) push(n T) {
	s.stack = append(s.stack, frame[T]{node: n, parents: s.parents(n)})
	s.onStack.Insert(n)
}

// loop records the cycle closed by parent p, which is somewhere on the stack.
func (s *sorter[T]) loop(p T) {
	start := 0
	for i := range s.stack {
		if s.stack[i].node == p {
			start = i
			break
		}
	}
	members := make([]T, 0, len(s.stack)-start)
	for _, f := range s.stack[start:] {
		members = append(members, f.node)
	}

	if s.onLoop == nil {
		s.err = &LoopError[T]{Loop: members}
		return
	}

	key := set.From(members)
	for _, seen := range s.seen {
		if seen.Equal(key) {
			return
		}
	}
	s.seen = append(s.seen, key)
	s.epoch++
	s.onLoop(members)
}

func (f *frame[T]) absorb(parentLayer int) {
	if parentLayer < 0 {
		f.unresolved = true
		return
	}
	f.layer = max(f.layer, parentLayer+1)
}
