// Package style provides the resolved style properties layout consults.
//
// The full cascade lives outside this module; layout only ever asks for a
// handful of already-resolved values through a Chain. Chains are
// immutable: the With* methods return modified copies, so a chain handed
// to a cell layout cannot be changed under the caller's feet during
// measurement retries.
package style

import "github.com/01mf02/typst/pkg/geom"

// Chain holds the resolved properties relevant to grid and text layout.
type Chain struct {
	dir      geom.Dir
	textSize float64
	leading  float64
}

// New returns a chain with default properties: left-to-right direction,
// 11pt text and 1.4 line spacing.
func New() *Chain {
	return &Chain{
		dir:      geom.LTR,
		textSize: 11,
		leading:  1.4,
	}
}

// Dir returns the writing direction.
func (c *Chain) Dir() geom.Dir {
	return c.dir
}

// TextSize returns the font size in points.
func (c *Chain) TextSize() float64 {
	return c.textSize
}

// LineHeight returns the vertical advance of one line of text.
func (c *Chain) LineHeight() float64 {
	return c.textSize * c.leading
}

// WithDir returns a copy of the chain with the given writing direction.
func (c *Chain) WithDir(dir geom.Dir) *Chain {
	out := *c
	out.dir = dir
	return &out
}

// WithTextSize returns a copy of the chain with the given font size.
func (c *Chain) WithTextSize(size float64) *Chain {
	out := *c
	out.textSize = size
	return &out
}

// WithLeading returns a copy of the chain with the given line spacing
// factor.
func (c *Chain) WithLeading(leading float64) *Chain {
	out := *c
	out.leading = leading
	return &out
}
