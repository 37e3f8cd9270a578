package graphics

import "golang.org/x/image/math/f64"

// Transform maps widget-local coordinates to global coordinates.
//
// The matrix is stored row-major as [a b c d e f] meaning
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
type Transform f64.Aff3

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{1, 0, 0, 0, 1, 0}
}

// Translation returns a transform that moves points by o.
func Translation(o Offset) Transform {
	return Transform{1, 0, o.X, 0, 1, o.Y}
}

// Then returns the transform that applies t first and then outer.
func (t Transform) Then(outer Transform) Transform {
	return Transform{
		outer[0]*t[0] + outer[1]*t[3],
		outer[0]*t[1] + outer[1]*t[4],
		outer[0]*t[2] + outer[1]*t[5] + outer[2],
		outer[3]*t[0] + outer[4]*t[3],
		outer[3]*t[1] + outer[4]*t[4],
		outer[3]*t[2] + outer[4]*t[5] + outer[5],
	}
}

// Apply maps a local point.
func (t Transform) Apply(p Offset) Offset {
	return Offset{
		X: t[0]*p.X + t[1]*p.Y + t[2],
		Y: t[3]*p.X + t[4]*p.Y + t[5],
	}
}

// Origin returns where the local origin lands.
func (t Transform) Origin() Offset {
	return Offset{X: t[2], Y: t[5]}
}

// ApplyRect maps an axis-aligned local rect. Only translation and scale
// keep the result axis-aligned; the bounding box of the corners is returned.
func (t Transform) ApplyRect(r Rect) Rect {
	a := t.Apply(Offset{X: r.Left, Y: r.Top})
	b := t.Apply(Offset{X: r.Right, Y: r.Bottom})
	return Rect{Left: min(a.X, b.X), Top: min(a.Y, b.Y), Right: max(a.X, b.X), Bottom: max(a.Y, b.Y)}
}
