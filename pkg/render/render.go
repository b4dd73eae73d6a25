// Package render rasterizes finished frames onto pages. It is a thin
// backend over gg used by the CLI; the layout core never depends on it.
package render

import (
	"image"

	"github.com/fogleman/gg"

	"github.com/01mf02/typst/pkg/frame"
	"github.com/01mf02/typst/pkg/geom"
)

// Renderer draws frames onto one page-sized raster context.
type Renderer struct {
	ctx *gg.Context
}

// New creates a renderer for a white page of the given pixel size.
func New(width, height int) *Renderer {
	ctx := gg.NewContext(width, height)
	ctx.SetRGB(1, 1, 1)
	ctx.Clear()
	ctx.SetRGB(0, 0, 0)
	return &Renderer{ctx: ctx}
}

// LoadFontFace switches text drawing to the given TTF font at the given
// point size. Without it, gg's built-in bitmap face is used.
func (r *Renderer) LoadFontFace(path string, points float64) error {
	return r.ctx.LoadFontFace(path, points)
}

// DrawFrame draws the frame with its top-left corner at the given point,
// recursing into nested frames.
func (r *Renderer) DrawFrame(f *frame.Frame, at geom.Point) {
	for _, item := range f.Items {
		pos := geom.Point{X: at.X + item.Pos.X, Y: at.Y + item.Pos.Y}
		if item.Frame != nil {
			r.DrawFrame(item.Frame, pos)
			continue
		}
		switch e := item.Elem.(type) {
		case frame.Box:
			if e.Fill != nil {
				r.ctx.SetRGB(e.Fill.R, e.Fill.G, e.Fill.B)
				r.ctx.DrawRectangle(pos.X, pos.Y, e.Size.Width, e.Size.Height)
				r.ctx.Fill()
				r.ctx.SetRGB(0, 0, 0)
			}
		case frame.Text:
			// The item position is the top of the line; gg draws from
			// the baseline.
			r.ctx.DrawString(e.Content, pos.X, pos.Y+e.Size)
		case frame.Line:
			r.ctx.SetLineWidth(e.Thickness)
			r.ctx.DrawLine(pos.X, pos.Y, pos.X+e.To.X, pos.Y+e.To.Y)
			r.ctx.Stroke()
		}
	}
}

// Image returns the rendered page.
func (r *Renderer) Image() image.Image {
	return r.ctx.Image()
}

// SavePNG writes the rendered page to a PNG file.
func (r *Renderer) SavePNG(path string) error {
	return r.ctx.SavePNG(path)
}
