// Package content defines the capability interface between the grid core
// and the things placed into its cells, plus the basic content kinds the
// module ships: wrapped text and fixed-size blocks.
//
// The grid depends only on Layoutable and never on a concrete content
// type; anything that can turn a region sequence into frames can sit in a
// cell.
package content

import (
	"github.com/01mf02/typst/pkg/frame"
	"github.com/01mf02/typst/pkg/style"
)

// Layoutable is implemented by every content kind. Layout renders the
// content into the given region sequence and returns one frame per
// consumed region. Implementations must not mutate the caller's regions
// value beyond their own local copy.
type Layoutable interface {
	Layout(regions frame.Regions, styles *style.Chain) (frame.Fragment, error)
}
