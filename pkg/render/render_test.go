package render

import (
	"image/color"
	"testing"

	"github.com/01mf02/typst/pkg/frame"
	"github.com/01mf02/typst/pkg/geom"
)

func rgbaAt(r *Renderer, x, y int) color.RGBA {
	return color.RGBAModel.Convert(r.Image().At(x, y)).(color.RGBA)
}

func TestNewClearsToWhite(t *testing.T) {
	r := New(20, 20)
	if c := rgbaAt(r, 10, 10); c.R != 255 || c.G != 255 || c.B != 255 {
		t.Errorf("fresh page pixel = %v, want white", c)
	}
}

func TestDrawFilledBox(t *testing.T) {
	f := frame.New(geom.Size{Width: 20, Height: 20})
	f.Push(geom.Point{X: 5, Y: 5}, frame.Box{
		Size: geom.Size{Width: 10, Height: 10},
		Fill: &frame.RGB{R: 1},
	})

	r := New(20, 20)
	r.DrawFrame(f, geom.Point{})

	if c := rgbaAt(r, 10, 10); c.R != 255 || c.G != 0 || c.B != 0 {
		t.Errorf("box interior = %v, want red", c)
	}
	if c := rgbaAt(r, 1, 1); c.R != 255 || c.G != 255 || c.B != 255 {
		t.Errorf("outside the box = %v, want white", c)
	}
}

func TestDrawNestedFrameOffset(t *testing.T) {
	inner := frame.New(geom.Size{Width: 10, Height: 10})
	inner.Push(geom.Point{}, frame.Box{
		Size: geom.Size{Width: 4, Height: 4},
		Fill: &frame.RGB{B: 1},
	})
	outer := frame.New(geom.Size{Width: 30, Height: 30})
	outer.PushFrame(geom.Point{X: 20, Y: 20}, inner)

	r := New(30, 30)
	r.DrawFrame(outer, geom.Point{})

	// The inner box lands at the accumulated offset, not at the origin.
	if c := rgbaAt(r, 21, 21); c.B != 255 {
		t.Errorf("nested box pixel = %v, want blue", c)
	}
	if c := rgbaAt(r, 1, 1); c.B == 255 && c.R == 0 {
		t.Error("origin should stay white")
	}
}

func TestDrawLine(t *testing.T) {
	f := frame.New(geom.Size{Width: 20, Height: 20})
	f.Push(geom.Point{X: 0, Y: 10}, frame.Line{To: geom.Point{X: 20}, Thickness: 2})

	r := New(20, 20)
	r.DrawFrame(f, geom.Point{})

	if c := rgbaAt(r, 10, 10); c.R == 255 && c.G == 255 && c.B == 255 {
		t.Error("stroked line should darken the pixel row")
	}
}

func TestDrawText(t *testing.T) {
	f := frame.New(geom.Size{Width: 60, Height: 20})
	f.Push(geom.Point{}, frame.Text{Content: "MMMM", Size: 12})

	r := New(60, 20)
	r.DrawFrame(f, geom.Point{})

	// The built-in bitmap face must leave some ink behind.
	inked := false
	for y := 0; y < 20 && !inked; y++ {
		for x := 0; x < 60; x++ {
			if c := rgbaAt(r, x, y); c.R < 255 || c.G < 255 || c.B < 255 {
				inked = true
				break
			}
		}
	}
	if !inked {
		t.Error("drawing text left the page blank")
	}
}
