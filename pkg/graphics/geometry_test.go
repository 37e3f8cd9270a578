package graphics

import (
	"image"
	"testing"
)

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Rect
		want    Rect
		overlap bool
	}{
		{"contained", RectFromLTWH(0, 0, 100, 100), RectFromLTWH(10, 10, 20, 20), RectFromLTWH(10, 10, 20, 20), true},
		{"partial", RectFromLTWH(0, 0, 50, 50), RectFromLTWH(25, 25, 50, 50), RectFromLTWH(25, 25, 25, 25), true},
		{"disjoint", RectFromLTWH(0, 0, 10, 10), RectFromLTWH(20, 20, 10, 10), Rect{}, false},
		{"touching edges", RectFromLTWH(0, 0, 10, 10), RectFromLTWH(10, 0, 10, 10), Rect{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.Intersect(tt.b)
			if ok != tt.overlap {
				t.Fatalf("overlap = %v, want %v", ok, tt.overlap)
			}
			if got != tt.want {
				t.Errorf("Intersect = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRectQuantizeFloorsEdges(t *testing.T) {
	r := Rect{Left: 1.7, Top: -0.5, Right: 10.2, Bottom: 4.999}
	want := image.Rect(1, -1, 10, 4)
	if got := r.Quantize(); got != want {
		t.Errorf("Quantize = %v, want %v", got, want)
	}
}

func TestRectContains(t *testing.T) {
	r := RectFromLTWH(10, 10, 5, 5)
	if !r.Contains(Offset{X: 10, Y: 10}) {
		t.Error("top-left corner should be inside")
	}
	if r.Contains(Offset{X: 15, Y: 12}) {
		t.Error("right edge should be outside")
	}
}

func TestTransformThen(t *testing.T) {
	parent := Translation(Offset{X: 10, Y: 20})
	child := Translation(Offset{X: 1, Y: 2}).Then(parent)
	if got := child.Origin(); got != (Offset{X: 11, Y: 22}) {
		t.Errorf("Origin = %+v, want {11 22}", got)
	}
	r := child.ApplyRect(RectFromLTWH(0, 0, 5, 5))
	if !r.ApproxEqual(RectFromLTWH(11, 22, 5, 5)) {
		t.Errorf("ApplyRect = %+v", r)
	}
}
