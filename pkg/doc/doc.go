// Package doc loads document descriptions from TOML files and drives the
// grid core: it builds the region sequence and style chain from the page
// setup, turns cell entries into content, runs layout and derives grid
// stroke decorations from the returned column widths and row heights.
package doc

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/01mf02/typst/pkg/content"
	"github.com/01mf02/typst/pkg/frame"
	"github.com/01mf02/typst/pkg/geom"
	"github.com/01mf02/typst/pkg/grid"
	"github.com/01mf02/typst/pkg/style"
)

// Document is a complete grid document description.
type Document struct {
	Page  Page   `toml:"page"`
	Grid  Spec   `toml:"grid"`
	Cells []Cell `toml:"cell"`
}

// Page describes the page geometry and base text properties.
type Page struct {
	Width    float64 `toml:"width"`
	Height   float64 `toml:"height"`
	Margin   float64 `toml:"margin"`
	Dir      string  `toml:"dir"`
	TextSize float64 `toml:"text_size"`
	Leading  float64 `toml:"leading"`
}

// Spec describes the grid tracks. ColumnGutter and RowGutter take
// precedence over Gutter on their axis.
type Spec struct {
	Columns      TrackList `toml:"columns"`
	Rows         TrackList `toml:"rows"`
	Gutter       TrackList `toml:"gutter"`
	ColumnGutter TrackList `toml:"column_gutter"`
	RowGutter    TrackList `toml:"row_gutter"`
}

// Cell is one grid cell: either a paragraph of text or a filled block.
type Cell struct {
	Text   string `toml:"text"`
	Width  string `toml:"width"`
	Height string `toml:"height"`
	Fill   string `toml:"fill"`
}

// Load reads a document description from a TOML file.
func Load(path string) (*Document, error) {
	var d Document
	if _, err := toml.DecodeFile(path, &d); err != nil {
		return nil, fmt.Errorf("loading document %s: %w", path, err)
	}
	d.applyDefaults()
	return &d, nil
}

// Parse reads a document description from TOML source text.
func Parse(src string) (*Document, error) {
	var d Document
	if _, err := toml.Decode(src, &d); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	d.applyDefaults()
	return &d, nil
}

// applyDefaults fills in A4 page geometry and base text defaults.
func (d *Document) applyDefaults() {
	if d.Page.Width == 0 {
		d.Page.Width = 595
	}
	if d.Page.Height == 0 {
		d.Page.Height = 842
	}
	if d.Page.Margin == 0 {
		d.Page.Margin = 56
	}
	if d.Page.TextSize == 0 {
		d.Page.TextSize = 11
	}
	if d.Page.Leading == 0 {
		d.Page.Leading = 1.4
	}
}

// Styles builds the style chain for this document.
func (d *Document) Styles() (*style.Chain, error) {
	styles := style.New().
		WithTextSize(d.Page.TextSize).
		WithLeading(d.Page.Leading)
	switch d.Page.Dir {
	case "", "ltr":
	case "rtl":
		styles = styles.WithDir(geom.RTL)
	default:
		return nil, fmt.Errorf("unknown writing direction %q", d.Page.Dir)
	}
	return styles, nil
}

// Contents turns the cell entries into layoutable content.
func (d *Document) Contents() ([]content.Layoutable, error) {
	cells := make([]content.Layoutable, len(d.Cells))
	for i, c := range d.Cells {
		if c.Text != "" {
			if c.Width != "" || c.Height != "" || c.Fill != "" {
				return nil, fmt.Errorf("cell %d: text and block fields are mutually exclusive", i)
			}
			cells[i] = content.NewText(c.Text)
			continue
		}
		w, err := ParseLength(c.Width)
		if err != nil {
			return nil, fmt.Errorf("cell %d width: %w", i, err)
		}
		h, err := ParseLength(c.Height)
		if err != nil {
			return nil, fmt.Errorf("cell %d height: %w", i, err)
		}
		var fill *frame.RGB
		if c.Fill != "" {
			rgb, err := ParseColor(c.Fill)
			if err != nil {
				return nil, fmt.Errorf("cell %d fill: %w", i, err)
			}
			fill = &rgb
		}
		cells[i] = content.NewBlock(w, h, fill)
	}
	return cells, nil
}

// Layout runs grid layout over a repeating sequence of page-sized regions
// (page size minus margins) and returns the result.
func (d *Document) Layout() (*grid.Layout, error) {
	styles, err := d.Styles()
	if err != nil {
		return nil, err
	}
	cells, err := d.Contents()
	if err != nil {
		return nil, err
	}

	inner := geom.Size{
		Width:  d.Page.Width - 2*d.Page.Margin,
		Height: d.Page.Height - 2*d.Page.Margin,
	}
	regions := frame.Repeat(inner, geom.Axes{})

	columnGutter := d.Grid.ColumnGutter
	if len(columnGutter) == 0 {
		columnGutter = d.Grid.Gutter
	}
	rowGutter := d.Grid.RowGutter
	if len(rowGutter) == 0 {
		rowGutter = d.Grid.Gutter
	}

	layouter := grid.NewLayouter(
		grid.Tracks{Columns: d.Grid.Columns, Rows: d.Grid.Rows},
		grid.Tracks{Columns: columnGutter, Rows: rowGutter},
		cells,
		regions,
		styles,
	)
	return layouter.Layout()
}

// StrokeFrame builds a frame of grid lines for one region of a finished
// layout, using the reported column widths and row heights. Drawing the
// strokes from the returned metadata keeps them aligned with the cells
// without re-running layout.
func StrokeFrame(gl *grid.Layout, region int, thickness float64) *frame.Frame {
	if region < 0 || region >= len(gl.Fragment) || region >= len(gl.Rows) {
		return frame.New(geom.Size{})
	}

	size := gl.Fragment[region].Size
	f := frame.New(size)

	x := 0.0
	f.Push(geom.Point{}, frame.Line{To: geom.Point{Y: size.Height}, Thickness: thickness})
	for _, w := range gl.Cols {
		x += w
		f.Push(geom.Point{X: x}, frame.Line{To: geom.Point{Y: size.Height}, Thickness: thickness})
	}

	y := 0.0
	f.Push(geom.Point{}, frame.Line{To: geom.Point{X: size.Width}, Thickness: thickness})
	for _, h := range gl.Rows[region].Heights {
		y += h
		f.Push(geom.Point{Y: y}, frame.Line{To: geom.Point{X: size.Width}, Thickness: thickness})
	}

	return f
}
