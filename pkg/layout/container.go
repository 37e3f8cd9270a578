package layout

import (
	"fmt"
	"slices"
)

// Axis selects the horizontal or vertical dimension.
type Axis int

const (
	// AxisX is the horizontal axis.
	AxisX Axis = iota
	// AxisY is the vertical axis.
	AxisY
)

func (a Axis) String() string {
	if a == AxisY {
		return "Y"
	}
	return "X"
}

// Alignment positions children on a container's secondary axis.
type Alignment int

const (
	// AlignStart places children at the leading edge.
	AlignStart Alignment = iota
	// AlignCenter centers children.
	AlignCenter
	// AlignEnd places children at the trailing edge.
	AlignEnd
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	default:
		return "start"
	}
}

// ParseAlignment converts "start", "center" or "end".
func ParseAlignment(s string) (Alignment, error) {
	switch s {
	case "", "start":
		return AlignStart, nil
	case "center":
		return AlignCenter, nil
	case "end":
		return AlignEnd, nil
	}
	return AlignStart, fmt.Errorf("unknown alignment %q", s)
}

// Container configures a widget that lays its children out in a row or
// column.
type Container struct {
	// Direction is the primary axis children are stacked along.
	Direction Axis
	// EdgePadding is the space between the container edge and its children,
	// applied on both sides of both axes.
	EdgePadding float64
	// Gap is the space between adjacent children on the primary axis.
	Gap float64
	// Align positions children on the secondary axis.
	Align Alignment
}

// Child is one child's input to Distribute along a single axis.
type Child struct {
	// Size is the current size, used as-is for non-expanding children.
	Size float64
	// Min is the smallest size an expanding child may take.
	Min float64
	// Max caps an expanding child; negative means unbounded.
	Max float64
	// Expand marks a child that claims a share of the free space.
	Expand bool
}

// Padding returns the fixed space consumed by padding for n children:
// both edges plus one gap between each adjacent pair.
func Padding(n int, edge, gap float64) float64 {
	if n <= 1 {
		return edge * 2
	}
	return edge*2 + gap*float64(n-1)
}

// Distribute resolves the primary-axis size of every child.
//
// Fixed children keep their size. Expanding children start at their minimum
// and then share the free space left after padding and fixed sizes. Children
// with the tightest maximum are served first: each one is offered an even
// share of what is left, and if that would take it past its maximum it is
// clamped and the leftover stays in the pool. Once a child fits under its
// cap, it and every child after it split the rest evenly.
//
// Negative free space is treated as zero, so children may overflow the
// container.
func Distribute(children []Child, available, padding float64) []float64 {
	sizes := make([]float64, len(children))
	fixed := 0.0
	var expanding []int
	for i, c := range children {
		if c.Expand {
			sizes[i] = c.Min
			fixed += c.Min
			expanding = append(expanding, i)
			continue
		}
		sizes[i] = c.Size
		fixed += c.Size
	}

	free := max(available-padding-fixed, 0)
	if len(expanding) == 0 || free == 0 {
		return sizes
	}

	slices.SortStableFunc(expanding, func(a, b int) int {
		return compareMax(children[a].Max, children[b].Max)
	})

	remaining := len(expanding)
	k := 0
	for ; k < len(expanding); k++ {
		c := children[expanding[k]]
		share := free / float64(remaining)
		if c.Max < 0 || c.Min+share <= c.Max {
			break
		}
		grant := max(c.Max-c.Min, 0)
		sizes[expanding[k]] = c.Min + grant
		free -= grant
		remaining--
	}

	if remaining > 0 {
		share := free / float64(remaining)
		for _, i := range expanding[k:] {
			sizes[i] += share
		}
	}
	return sizes
}

// compareMax orders maximum sizes ascending with unbounded (negative) last.
func compareMax(a, b float64) int {
	switch {
	case a < 0 && b < 0:
		return 0
	case a < 0:
		return 1
	case b < 0:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Place returns the primary-axis offset of each child from a single forward
// pass: the edge padding, then every preceding child's size plus the gap.
func Place(sizes []float64, edge, gap float64) []float64 {
	offsets := make([]float64, len(sizes))
	cursor := edge
	for i, s := range sizes {
		offsets[i] = cursor
		cursor += s + gap
	}
	return offsets
}

// Extent returns the primary-axis size needed to hold sizes with padding.
func Extent(sizes []float64, edge, gap float64) float64 {
	total := Padding(len(sizes), edge, gap)
	for _, s := range sizes {
		total += s
	}
	return total
}

// Align returns the offset of a child of the given size inside extent.
func Align(a Alignment, extent, size float64) float64 {
	switch a {
	case AlignCenter:
		return (extent - size) * 0.5
	case AlignEnd:
		return extent - size
	default:
		return 0
	}
}

// Clamp limits size to [lo, hi]; a negative hi means no upper bound. The
// lower bound wins when the two conflict.
func Clamp(size, lo, hi float64) float64 {
	if hi >= 0 && size > hi {
		size = hi
	}
	return max(size, lo)
}
