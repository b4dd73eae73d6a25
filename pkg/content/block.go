package content

import (
	"fmt"

	"github.com/01mf02/typst/pkg/frame"
	"github.com/01mf02/typst/pkg/geom"
	"github.com/01mf02/typst/pkg/style"
)

// Block is a rectangle of fixed or region-relative size, optionally
// filled. A block never breaks across regions: it always produces exactly
// one frame, overflowing its region if it must.
type Block struct {
	Width  geom.Rel
	Height geom.Rel
	Fill   *frame.RGB
}

// NewBlock creates a block content of the given size.
func NewBlock(width, height geom.Rel, fill *frame.RGB) *Block {
	return &Block{Width: width, Height: height, Fill: fill}
}

// Layout resolves the block's size against the region base and emits a
// single frame containing the filled box.
func (b *Block) Layout(regions frame.Regions, styles *style.Chain) (frame.Fragment, error) {
	w := b.Width.Resolve(regions.Base.Width)
	h := b.Height.Resolve(regions.Base.Height)
	if w < 0 || h < 0 {
		return nil, fmt.Errorf("block resolved to negative size (%gpt x %gpt)", w, h)
	}
	if regions.Expand.X {
		w = regions.Size.Width
	}

	f := frame.New(geom.Size{Width: w, Height: h})
	f.Push(geom.Point{}, frame.Box{Size: f.Size, Fill: b.Fill})
	return frame.Fragment{f}, nil
}
