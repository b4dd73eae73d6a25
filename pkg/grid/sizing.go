// Package grid implements grid and table layout: given per-track sizing
// rules and a row-major list of cells, it computes concrete column widths
// and row heights and places every cell's output into one or more
// page-sized regions, paginating content that overflows.
package grid

import "github.com/01mf02/typst/pkg/geom"

// SizingKind discriminates the three track sizing rules.
type SizingKind int

const (
	// SizingAuto fits the track to its cells' contents, capped by the
	// available space.
	SizingAuto SizingKind = iota
	// SizingFixed resolves to a concrete length before layout, possibly
	// relative to the base region size.
	SizingFixed
	// SizingFrac takes a share of whatever space remains after auto and
	// fixed tracks have claimed theirs.
	SizingFrac
)

// Sizing is the sizing rule for one column or row track.
type Sizing struct {
	Kind SizingKind
	Rel  geom.Rel // for SizingFixed
	Fr   geom.Fr  // for SizingFrac
}

// Auto returns an automatically sized track.
func Auto() Sizing {
	return Sizing{Kind: SizingAuto}
}

// Fixed returns a track of the given fixed or region-relative length.
func Fixed(rel geom.Rel) Sizing {
	return Sizing{Kind: SizingFixed, Rel: rel}
}

// Frac returns a fractional track with the given share.
func Frac(fr geom.Fr) Sizing {
	return Sizing{Kind: SizingFrac, Fr: fr}
}

// AutoTracks returns n auto tracks. This is the expansion of the integer
// shorthand in track specifications: columns=3 means three auto columns.
// A single scalar track never expands into multiple tracks.
func AutoTracks(n int) []Sizing {
	tracks := make([]Sizing, n)
	for i := range tracks {
		tracks[i] = Auto()
	}
	return tracks
}

// IsAuto reports whether the track is automatically sized.
func (s Sizing) IsAuto() bool {
	return s.Kind == SizingAuto
}

// IsFrac reports whether the track is fractionally sized.
func (s Sizing) IsFrac() bool {
	return s.Kind == SizingFrac
}

// Tracks bundles the column and row track lists of one axis pair.
type Tracks struct {
	Columns []Sizing
	Rows    []Sizing
}
