package frame

import "github.com/01mf02/typst/pkg/geom"

// Regions is the cursor over the sequence of page-sized areas available
// for placement. Size is the remaining space in the current region and
// shrinks as rows are placed; Full is the current region's height when it
// was fresh. After the backlog is exhausted the cursor stays in a region
// of height Last forever if HasLast is set, otherwise it stops advancing.
//
// Regions values are copied freely: a copy acts as an independent pod for
// measurement without disturbing the caller's cursor.
type Regions struct {
	// Remaining size of the current region.
	Size geom.Size
	// Base size that relative lengths resolve against.
	Base geom.Size
	// Height of the current region when it was fresh.
	Full float64
	// Heights of the following regions.
	Backlog []float64
	// Height repeated for all regions beyond the backlog.
	Last float64
	// Whether Last is meaningful.
	HasLast bool
	// Whether the frame produced for a region should take up the full
	// region extent on each axis even if its content is smaller.
	Expand geom.Axes
}

// One creates a region sequence with exactly one region.
func One(size geom.Size, expand geom.Axes) Regions {
	return Regions{
		Size:   size,
		Base:   size,
		Full:   size.Height,
		Expand: expand,
	}
}

// Repeat creates a region sequence that repeats the same size forever.
func Repeat(size geom.Size, expand geom.Axes) Regions {
	r := One(size, expand)
	r.Last = size.Height
	r.HasLast = true
	return r
}

// Next advances to the next region if there is one, resetting the current
// size and full height. Without a backlog entry or a repeating last
// region, the cursor stays where it is.
func (r *Regions) Next() {
	if len(r.Backlog) > 0 {
		h := r.Backlog[0]
		r.Backlog = r.Backlog[1:]
		r.Size.Height = h
		r.Full = h
		return
	}
	if r.HasLast {
		r.Size.Height = r.Last
		r.Full = r.Last
	}
}

// MayProgress reports whether another region follows the current one.
func (r *Regions) MayProgress() bool {
	return len(r.Backlog) > 0 || r.HasLast
}

// IsFull reports whether the current region has no remaining height while
// a later region could still take content.
func (r *Regions) IsFull() bool {
	return r.Size.Height <= geom.Eps && r.MayProgress()
}

// InLast reports whether the cursor is in its last usable region, i.e.
// advancing further would not yield a fresh region.
func (r *Regions) InLast() bool {
	return len(r.Backlog) == 0 && (!r.HasLast || r.Size.Height == r.Last)
}

// Heights returns the heights of the current and following regions, up to
// n entries. The first entry is the current region's remaining height.
func (r *Regions) Heights(n int) []float64 {
	out := make([]float64, 0, n)
	if n == 0 {
		return out
	}
	out = append(out, r.Size.Height)
	for _, h := range r.Backlog {
		if len(out) == n {
			return out
		}
		out = append(out, h)
	}
	for r.HasLast && len(out) < n {
		out = append(out, r.Last)
	}
	return out
}
