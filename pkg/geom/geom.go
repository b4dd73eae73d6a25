// Package geom provides the scalar geometry used by layout: points, sizes,
// relative lengths, fractional shares and writing direction.
//
// All absolute lengths are float64 values in typographic points (pt).
package geom

import "math"

// Eps is the tolerance used for fit checks. Layout accumulates rounding
// error when many row heights are summed, so exact comparisons would
// spuriously reject content that fits.
const Eps = 1e-6

// Point is a 2D coordinate.
type Point struct {
	X float64
	Y float64
}

// Size holds a width and a height.
type Size struct {
	Width  float64
	Height float64
}

// Min returns the component-wise minimum of s and o.
func (s Size) Min(o Size) Size {
	return Size{
		Width:  math.Min(s.Width, o.Width),
		Height: math.Min(s.Height, o.Height),
	}
}

// Axes holds one boolean per axis. Used for region expansion flags.
type Axes struct {
	X bool
	Y bool
}

// Dir is a writing direction.
type Dir int

const (
	LTR Dir = iota
	RTL
)

// Rel is a length with an absolute part and a part relative to some base
// size. The base is only known at resolve time (usually the region's base
// width or height).
type Rel struct {
	Abs   float64 // absolute part in points
	Ratio float64 // fraction of the base size
}

// Pt returns a purely absolute relative length.
func Pt(v float64) Rel {
	return Rel{Abs: v}
}

// Ratio returns a purely relative length. The argument is a fraction, so
// Ratio(0.5) means 50% of the base.
func Ratio(v float64) Rel {
	return Rel{Ratio: v}
}

// Resolve computes the concrete length against the given base. A ratio of
// an infinite base contributes nothing.
func (r Rel) Resolve(base float64) float64 {
	if r.Ratio == 0 || !IsFinite(base) {
		return r.Abs
	}
	return r.Abs + r.Ratio*base
}

// IsZero reports whether both parts are zero.
func (r Rel) IsZero() bool {
	return r.Abs == 0 && r.Ratio == 0
}

// Fr is a fractional share of leftover space. Shares are only meaningful
// relative to the total share of all fractional tracks in the same axis.
type Fr float64

// Share returns this share's portion of the remaining space. If the total
// is not positive or the remaining space is unbounded, the share is zero.
func (f Fr) Share(total Fr, remaining float64) float64 {
	if total <= 0 || !IsFinite(remaining) {
		return 0
	}
	s := float64(f) / float64(total) * remaining
	if s < 0 {
		return 0
	}
	return s
}

// Inf returns positive infinity, used as the height of an unbounded region.
func Inf() float64 {
	return math.Inf(1)
}

// IsFinite reports whether v is neither infinite nor NaN.
func IsFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Fits reports whether something of the given extent fits into the
// available space, within Eps tolerance.
func Fits(available, extent float64) bool {
	return available+Eps >= extent
}

// ApproxEq reports whether two lengths are equal within Eps.
func ApproxEq(a, b float64) bool {
	return math.Abs(a-b) <= Eps
}
