// Package frame defines the output model of layout: positioned frames of
// rendering primitives, fragments (one frame per region) and the region
// cursor that layout advances through page-sized areas.
package frame

import "github.com/01mf02/typst/pkg/geom"

// RGB is a simple color for fills. Components are in [0, 1].
type RGB struct {
	R, G, B float64
}

// Element is a rendering primitive placed inside a frame.
type Element interface {
	element()
}

// Text is a single run of text on one line. Size is the font size; the
// run's baseline sits Size below the item position.
type Text struct {
	Content string
	Size    float64
}

// Box is a filled rectangle.
type Box struct {
	Size geom.Size
	Fill *RGB
}

// Line is a stroked segment from the item position to position + To.
type Line struct {
	To        geom.Point
	Thickness float64
}

func (Text) element() {}
func (Box) element()  {}
func (Line) element() {}

// Item is one positioned entry of a frame: either a nested frame or an
// element, never both.
type Item struct {
	Pos   geom.Point
	Frame *Frame
	Elem  Element
}

// Frame is a fully positioned piece of layout output for one region.
// Unlike the mutable state threaded through layout, a finished frame is
// never repositioned: items carry their final offsets from creation.
type Frame struct {
	Size  geom.Size
	Items []Item
}

// New creates an empty frame of the given size.
func New(size geom.Size) *Frame {
	return &Frame{Size: size}
}

// Width returns the frame's width.
func (f *Frame) Width() float64 {
	return f.Size.Width
}

// Height returns the frame's height.
func (f *Frame) Height() float64 {
	return f.Size.Height
}

// IsEmpty reports whether the frame contains no items.
func (f *Frame) IsEmpty() bool {
	return len(f.Items) == 0
}

// Push places an element at the given position.
func (f *Frame) Push(pos geom.Point, e Element) {
	f.Items = append(f.Items, Item{Pos: pos, Elem: e})
}

// PushFrame places a nested frame at the given position.
func (f *Frame) PushFrame(pos geom.Point, sub *Frame) {
	f.Items = append(f.Items, Item{Pos: pos, Frame: sub})
}

// Fragment is the output of laying content into a sequence of regions:
// one frame per consumed region, in region order.
type Fragment []*Frame

// IntoFrame extracts the single frame of a fragment produced by a
// one-region pod. An empty fragment yields an empty zero-size frame.
func (f Fragment) IntoFrame() *Frame {
	if len(f) == 0 {
		return New(geom.Size{})
	}
	return f[0]
}
