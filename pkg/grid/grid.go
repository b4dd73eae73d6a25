package grid

import (
	"fmt"

	"github.com/01mf02/typst/pkg/content"
	"github.com/01mf02/typst/pkg/frame"
	"github.com/01mf02/typst/pkg/geom"
	"github.com/01mf02/typst/pkg/style"
)

// Layouter performs grid layout. It owns the unified track lists, the
// resolved column widths and the pending rows of the region currently
// being filled. A Layouter is used for exactly one Layout call.
type Layouter struct {
	// The grid cells in row-major order.
	cells []content.Layoutable
	// Whether this is a right-to-left grid.
	isRTL bool
	// Whether gutter tracks are interleaved with content tracks.
	hasGutter bool
	// The column tracks including gutter tracks.
	cols []Sizing
	// The row tracks including gutter tracks.
	rows []Sizing
	// The regions to lay the rows into.
	regions frame.Regions
	// The resolved styles.
	styles *style.Chain
	// Resolved column widths.
	rcols []float64
	// The sum of rcols.
	width float64
	// Finished row heights by region.
	rrows []RowSegment
	// Rows in the current region.
	lrows []pendingRow
	// The size of the current region before rows were subtracted.
	initial geom.Size
	// Frames for finished regions.
	finished []*frame.Frame
}

// Layout is the result of laying out a grid. Alongside the rendered
// frames it reports the concrete column widths and the per-region row
// heights, so that callers drawing grid strokes can align them without
// re-running layout.
type Layout struct {
	// One frame per finished region.
	Fragment frame.Fragment
	// The resolved width of every expanded column.
	Cols []float64
	// The row heights per region.
	Rows []RowSegment
}

// RowSegment records which rows ended up in one region: the index of the
// first row and the height of every row placed there.
type RowSegment struct {
	Start   int
	Heights []float64
}

// pendingRow is one row placed in the current region. Auto and fixed rows
// are already finished; fractional rows keep their share unresolved until
// the region is finalized, since their height depends on the space left
// over then.
type pendingRow struct {
	frame *frame.Frame // nil for fractional rows
	fr    geom.Fr
	index int
}

// NewLayouter prepares grid layout by unifying content and gutter tracks.
//
// There is always at least one column, and at least as many rows as given
// and as needed to place every cell. Missing tracks repeat the last
// specified one (auto and zero-width gutter as fallbacks); with gutters
// enabled, gutter tracks sit at odd indices strictly between content
// tracks. Right-to-left styles reverse the column track order.
func NewLayouter(
	tracks Tracks,
	gutter Tracks,
	cells []content.Layoutable,
	regions frame.Regions,
	styles *style.Chain,
) *Layouter {
	c := len(tracks.Columns)
	if c < 1 {
		c = 1
	}

	r := len(tracks.Rows)
	needed := len(cells) / c
	if len(cells)%c > 0 {
		needed++
	}
	if needed > r {
		r = needed
	}

	hasGutter := len(gutter.Columns) > 0 || len(gutter.Rows) > 0
	getOr := func(tracks []Sizing, i int, def Sizing) Sizing {
		if i < len(tracks) {
			return tracks[i]
		}
		if len(tracks) > 0 {
			return tracks[len(tracks)-1]
		}
		return def
	}

	var cols, rows []Sizing
	for x := 0; x < c; x++ {
		cols = append(cols, getOr(tracks.Columns, x, Auto()))
		if hasGutter {
			cols = append(cols, getOr(gutter.Columns, x, Fixed(geom.Rel{})))
		}
	}
	for y := 0; y < r; y++ {
		rows = append(rows, getOr(tracks.Rows, y, Auto()))
		if hasGutter {
			rows = append(rows, getOr(gutter.Rows, y, Fixed(geom.Rel{})))
		}
	}

	// Remove the superfluous trailing gutter tracks. There is always at
	// least one column, but a grid without cells may have no rows at all.
	if hasGutter {
		cols = cols[:len(cols)-1]
		if len(rows) > 0 {
			rows = rows[:len(rows)-1]
		}
	}

	isRTL := styles.Dir() == geom.RTL
	if isRTL {
		for i, j := 0, len(cols)-1; i < j; i, j = i+1, j-1 {
			cols[i], cols[j] = cols[j], cols[i]
		}
	}

	// Columns are sized before any row is laid out, so rows may expand
	// horizontally into their full resolved width.
	regions.Expand = geom.Axes{X: true, Y: false}

	return &Layouter{
		cells:     cells,
		isRTL:     isRTL,
		hasGutter: hasGutter,
		cols:      cols,
		rows:      rows,
		regions:   regions,
		styles:    styles,
		rcols:     make([]float64, len(cols)),
		initial:   regions.Size,
	}
}

// Layout determines the column sizes and then lays out the grid row by
// row. A layout failure of any cell aborts the whole call; no partial
// result is produced.
func (l *Layouter) Layout() (*Layout, error) {
	if err := l.measureColumns(); err != nil {
		return nil, err
	}

	for y := 0; y < len(l.rows); y++ {
		// Skip to the next region if the current one is full, but only
		// for content rows, not for gutter rows.
		if (!l.hasGutter || y%2 == 0) && l.regions.IsFull() {
			if err := l.finishRegion(); err != nil {
				return nil, err
			}
		}

		switch track := l.rows[y]; track.Kind {
		case SizingAuto:
			if err := l.layoutAutoRow(y); err != nil {
				return nil, err
			}
		case SizingFixed:
			if err := l.layoutFixedRow(track.Rel, y); err != nil {
				return nil, err
			}
		case SizingFrac:
			l.lrows = append(l.lrows, pendingRow{fr: track.Fr, index: y})
		}
	}

	if err := l.finishRegion(); err != nil {
		return nil, err
	}

	return &Layout{
		Fragment: l.finished,
		Cols:     l.rcols,
		Rows:     l.rrows,
	}, nil
}

// measureColumns determines all column sizes: fixed columns are resolved
// against the base width, auto columns are measured from their cells and
// leftover space goes to fractional columns. If the auto columns overshoot
// instead, they are shrunk to a fair share.
func (l *Layouter) measureColumns() error {
	// Sum of the resolved fixed column widths and of all fractional
	// shares.
	var rel float64
	var fr geom.Fr
	for x, col := range l.cols {
		switch col.Kind {
		case SizingFixed:
			resolved := col.Rel.Resolve(l.regions.Base.Width)
			l.rcols[x] = resolved
			rel += resolved
		case SizingFrac:
			fr += col.Fr
		}
	}

	// Size that is not used by fixed columns. If the fixed columns
	// already overflow, auto and fractional columns all collapse to zero.
	available := l.regions.Size.Width - rel
	if available >= 0 {
		auto, count, err := l.measureAutoColumns(available)
		if err != nil {
			return err
		}

		remaining := available - auto
		if remaining >= 0 {
			l.growFractionalColumns(remaining, fr)
		} else {
			l.shrinkAutoColumns(available, count)
		}
	}

	for _, rcol := range l.rcols {
		l.width += rcol
	}

	return nil
}

// measureAutoColumns sizes each auto column to the widest frame any of
// its cells produces in a single measurement pod of the given width.
func (l *Layouter) measureAutoColumns(available float64) (float64, int, error) {
	var auto float64
	var count int

	for x, col := range l.cols {
		if !col.IsAuto() {
			continue
		}

		var resolved float64
		for y := 0; y < len(l.rows); y++ {
			cell := l.cell(x, y)
			if cell == nil {
				continue
			}

			// For fixed rows the height is known already; for auto and
			// fractional rows the base height is as good a guess as any.
			height := l.regions.Base.Height
			if l.rows[y].Kind == SizingFixed {
				height = l.rows[y].Rel.Resolve(l.regions.Base.Height)
			}

			pod := frame.One(geom.Size{Width: available, Height: height}, geom.Axes{})
			frag, err := cell.Layout(pod, l.styles)
			if err != nil {
				return 0, 0, fmt.Errorf("measuring column %d: %w", x, err)
			}
			if w := frag.IntoFrame().Width(); w > resolved {
				resolved = w
			}
		}

		l.rcols[x] = resolved
		auto += resolved
		count++
	}

	return auto, count, nil
}

// growFractionalColumns distributes the remaining space to fractional
// columns proportional to their shares.
func (l *Layouter) growFractionalColumns(remaining float64, fr geom.Fr) {
	if fr == 0 {
		return
	}
	for x, col := range l.cols {
		if col.IsFrac() {
			l.rcols[x] = col.Fr.Share(fr, remaining)
		}
	}
}

// shrinkAutoColumns redistributes the available space among the auto
// columns so that each gets a fair share. Columns that already fit below
// the fair share keep their measured width and leave the pool; every pass
// either removes a column or converges, so the loop terminates after at
// most one pass per column.
func (l *Layouter) shrinkAutoColumns(available float64, count int) {
	var last float64
	fair := -geom.Inf()
	redistribute := available
	overlarge := count
	changed := true

	for changed && overlarge > 0 {
		changed = false
		last = fair
		fair = redistribute / float64(overlarge)

		for x, col := range l.cols {
			// Remove an auto column if it is not overlarge (width <=
			// fair) and hasn't been removed in an earlier pass (width >
			// last).
			rcol := l.rcols[x]
			if col.IsAuto() && rcol <= fair && rcol > last {
				redistribute -= rcol
				overlarge--
				changed = true
			}
		}
	}

	// Cap the columns that are still overlarge at the fair share.
	for x, col := range l.cols {
		if col.IsAuto() && l.rcols[x] > fair {
			l.rcols[x] = fair
		}
	}
}

// layoutAutoRow lays out a row with automatic height. Such a row may
// break across multiple regions.
func (l *Layouter) layoutAutoRow(y int) error {
	// The maximum height any column needs, per region.
	var resolved []float64
	skip := false

	for x, rcol := range l.rcols {
		cell := l.cell(x, y)
		if cell == nil {
			continue
		}

		pod := l.regions
		pod.Size.Width = rcol
		frames, err := cell.Layout(pod, l.styles)
		if err != nil {
			return fmt.Errorf("laying out cell in row %d: %w", y, err)
		}

		// A cell whose first frame is empty while a later one is not
		// started in leftover space too small to hold anything; the
		// whole row then skips the first region to avoid a blank slice.
		if len(frames) > 0 && frames[0].IsEmpty() {
			for _, rest := range frames[1:] {
				if !rest.IsEmpty() {
					skip = true
					break
				}
			}
		}

		for i, f := range frames {
			if i < len(resolved) {
				if f.Height() > resolved[i] {
					resolved[i] = f.Height()
				}
			} else {
				resolved = append(resolved, f.Height())
			}
		}
	}

	// Nothing to lay out.
	if len(resolved) == 0 {
		return nil
	}

	// The row fits into a single region.
	if len(resolved) == 1 {
		f, err := l.layoutSingleRow(resolved[0], y)
		if err != nil {
			return err
		}
		l.pushRow(f, y)
		return nil
	}

	if skip && !l.regions.InLast() {
		if err := l.finishRegion(); err != nil {
			return err
		}
		resolved = resolved[1:]
	}

	// Expand all but the last region to its full height, so that the row
	// slices line up with region boundaries. The first region is skipped
	// when a fractional row already claims its leftover space.
	start := 0
	for _, row := range l.lrows {
		if row.frame == nil {
			start = 1
			break
		}
	}
	heights := l.regions.Heights(len(resolved) - 1)
	for i := start; i < len(resolved)-1 && i < len(heights); i++ {
		if heights[i] > resolved[i] {
			resolved[i] = heights[i]
		}
	}

	frag, err := l.layoutMultiRow(resolved, y)
	if err != nil {
		return err
	}
	for i, f := range frag {
		l.pushRow(f, y)
		if i+1 < len(frag) {
			if err := l.finishRegion(); err != nil {
				return err
			}
		}
	}

	return nil
}

// layoutFixedRow lays out a row with fixed height. Such a row is never
// split across regions, but it may force region breaks until it fits or
// the last region is reached.
func (l *Layouter) layoutFixedRow(rel geom.Rel, y int) error {
	height := rel.Resolve(l.regions.Base.Height)
	f, err := l.layoutSingleRow(height, y)
	if err != nil {
		return err
	}

	for !geom.Fits(l.regions.Size.Height, f.Height()) && !l.regions.InLast() {
		if err := l.finishRegion(); err != nil {
			return err
		}

		// A gutter row that does not fit is dropped instead of forcing
		// further region breaks.
		if l.hasGutter && y%2 == 1 {
			return nil
		}
	}

	l.pushRow(f, y)
	return nil
}

// layoutSingleRow lays out a row of known height and returns its frame.
func (l *Layouter) layoutSingleRow(height float64, y int) (*frame.Frame, error) {
	output := frame.New(geom.Size{Width: l.width, Height: height})
	var pos geom.Point

	for x, rcol := range l.rcols {
		if cell := l.cell(x, y); cell != nil {
			pod := frame.One(geom.Size{Width: rcol, Height: height}, geom.Axes{X: true, Y: true})
			if l.rows[y].IsAuto() {
				pod.Full = l.regions.Full
			}
			frag, err := cell.Layout(pod, l.styles)
			if err != nil {
				return nil, fmt.Errorf("laying out cell in row %d: %w", y, err)
			}
			output.PushFrame(pos, frag.IntoFrame())
		}
		pos.X += rcol
	}

	return output, nil
}

// layoutMultiRow lays out an auto row that spans multiple regions, one
// frame slice per region height.
func (l *Layouter) layoutMultiRow(heights []float64, y int) (frame.Fragment, error) {
	outputs := make(frame.Fragment, len(heights))
	for i, h := range heights {
		outputs[i] = frame.New(geom.Size{Width: l.width, Height: h})
	}

	pod := frame.One(geom.Size{Width: l.width, Height: heights[0]}, geom.Axes{X: true, Y: true})
	pod.Full = l.regions.Full
	pod.Backlog = heights[1:]

	var pos geom.Point
	for x, rcol := range l.rcols {
		if cell := l.cell(x, y); cell != nil {
			pod.Size.Width = rcol
			frag, err := cell.Layout(pod, l.styles)
			if err != nil {
				return nil, fmt.Errorf("laying out cell in row %d: %w", y, err)
			}
			for i, f := range frag {
				if i < len(outputs) {
					outputs[i].PushFrame(pos, f)
				}
			}
		}
		pos.X += rcol
	}

	return outputs, nil
}

// pushRow subtracts the row's height from the current region and records
// the finished row.
func (l *Layouter) pushRow(f *frame.Frame, y int) {
	l.regions.Size.Height -= f.Height()
	l.lrows = append(l.lrows, pendingRow{frame: f, index: y})
}

// finishRegion resolves the pending fractional rows, stamps all rows of
// the current region into one output frame and advances the region
// cursor. Past this point the region's rows are final.
func (l *Layouter) finishRegion() error {
	// Height of the finished rows and sum of the fractional shares.
	var used float64
	var fr geom.Fr
	for _, row := range l.lrows {
		if row.frame != nil {
			used += row.frame.Height()
		} else {
			fr += row.fr
		}
	}

	// Determine the size of the grid in this region, expanding fully if
	// fractional rows consume the leftover space.
	size := geom.Size{Width: l.width, Height: used}.Min(l.initial)
	if fr > 0 && geom.IsFinite(l.initial.Height) {
		size.Height = l.initial.Height
	}

	output := frame.New(size)
	var pos geom.Point
	heights := make([]float64, 0, len(l.lrows))
	first := 0
	hasFirst := false

	rows := l.lrows
	l.lrows = nil

	for _, row := range rows {
		f := row.frame
		if f == nil {
			remaining := l.regions.Full - used
			height := row.fr.Share(fr, remaining)
			var err error
			f, err = l.layoutSingleRow(height, row.index)
			if err != nil {
				return err
			}
		}

		if !hasFirst {
			first = row.index
			hasFirst = true
		}
		output.PushFrame(pos, f)
		heights = append(heights, f.Height())
		pos.Y += f.Height()
	}

	l.finished = append(l.finished, output)
	l.rrows = append(l.rrows, RowSegment{Start: first, Heights: heights})
	l.regions.Next()
	l.initial = l.regions.Size

	return nil
}

// cell returns the content of the cell in expanded column x and row y, or
// nil for gutter coordinates and unfilled slots.
func (l *Layouter) cell(x, y int) content.Layoutable {
	// Column tracks are reversed for RTL, the cell list is not.
	if l.isRTL {
		x = len(l.cols) - 1 - x
	}

	idx, ok := cellIndex(x, y, len(l.cols), l.hasGutter)
	if !ok || idx >= len(l.cells) {
		return nil
	}
	return l.cells[idx]
}
