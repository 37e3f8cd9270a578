// Package debugdraw renders a laid out tree as a wireframe image, drawing
// widgets in render-queue order so overlapping layers look the way they
// would on screen.
package debugdraw

import (
	"image"
	"io"

	"github.com/fogleman/gg"

	"github.com/go-drift/arbor/pkg/core"
	"github.com/go-drift/arbor/pkg/graphics"
)

// Options tunes the output.
type Options struct {
	// Scale multiplies every coordinate. Default: 1.
	Scale float64
	// Labels draws each widget's name in its top-left corner.
	Labels bool
	// ShowClipped outlines the clipped-away part of each widget with a
	// dashed line.
	ShowClipped bool
}

// layerColors tints each global layer.
var layerColors = map[core.GlobalLayer][3]float64{
	core.LayerBase:    {0.20, 0.45, 0.85},
	core.LayerOverlay: {0.90, 0.55, 0.10},
	core.LayerDebug:   {0.85, 0.15, 0.30},
}

// Renderer draws trees onto a gg context sized to the root widget.
type Renderer struct {
	context *gg.Context
	opts    Options
}

// NewRenderer creates a renderer for a tree whose root is size.
func NewRenderer(size graphics.Size, opts Options) *Renderer {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	w := max(int(size.Width*opts.Scale+0.5), 1)
	h := max(int(size.Height*opts.Scale+0.5), 1)
	return &Renderer{context: gg.NewContext(w, h), opts: opts}
}

// Render draws every visible widget of tree. The tree is locked for
// rendering while drawing.
func (r *Renderer) Render(tree *core.Tree) {
	dc := r.context
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.Push()
	dc.Scale(r.opts.Scale, r.opts.Scale)
	defer dc.Pop()

	tree.Render(func(passes []core.RenderPass) {
		for _, pass := range passes {
			c := layerColors[pass.Global]
			for _, id := range pass.Widgets {
				r.drawWidget(tree, id, id == tree.Root(), c)
			}
		}
	})
}

func (r *Renderer) drawWidget(tree *core.Tree, id core.WidgetID, root bool, c [3]float64) {
	dc := r.context
	bounds := tree.GlobalBounds(id)
	region := tree.UnclippedRegion(id)

	if r.opts.ShowClipped && region != bounds {
		dc.SetRGBA(c[0], c[1], c[2], 0.6)
		dc.SetDash(3, 3)
		dc.SetLineWidth(1 / r.opts.Scale)
		dc.DrawRectangle(bounds.Left, bounds.Top, bounds.Width(), bounds.Height())
		dc.Stroke()
		dc.SetDash()
	}
	if region.IsEmpty() {
		return
	}

	if !root {
		dc.SetRGBA(c[0], c[1], c[2], 0.15)
		dc.DrawRectangle(region.Left, region.Top, region.Width(), region.Height())
		dc.Fill()
	}
	dc.SetRGBA(c[0], c[1], c[2], 1)
	dc.SetLineWidth(1 / r.opts.Scale)
	dc.DrawRectangle(region.Left+0.5, region.Top+0.5, max(region.Width()-1, 0), max(region.Height()-1, 0))
	dc.Stroke()

	if r.opts.Labels {
		dc.Push()
		dc.DrawRectangle(region.Left, region.Top, region.Width(), region.Height())
		dc.Clip()
		dc.DrawString(tree.Name(id), region.Left+3, region.Top+12)
		dc.ResetClip()
		dc.Pop()
	}
}

// Image returns the rendered image.
func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

// SavePNG writes the rendered image to path.
func (r *Renderer) SavePNG(path string) error {
	return r.context.SavePNG(path)
}

// EncodePNG writes the rendered image to w.
func (r *Renderer) EncodePNG(w io.Writer) error {
	return r.context.EncodePNG(w)
}
