package content

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/01mf02/typst/pkg/frame"
	"github.com/01mf02/typst/pkg/geom"
	"github.com/01mf02/typst/pkg/style"
)

// Text is a paragraph of plain text. Lines are broken greedily at spaces
// against the region width and flow across as many regions as needed.
//
// Real shaping and font metrics live outside this module; text advance is
// approximated as half an em per display cell, which keeps measurement
// deterministic.
type Text struct {
	Text string
}

// NewText creates a text content from the given string.
func NewText(s string) *Text {
	return &Text{Text: s}
}

type line struct {
	text  string
	width float64
}

// advance returns the horizontal extent of s at the given font size.
func advance(s string, size float64) float64 {
	return float64(runewidth.StringWidth(s)) * size / 2
}

// wrap greedily breaks the text into lines no wider than maxWidth. A
// single word wider than maxWidth gets a line of its own and overflows.
func wrap(text string, maxWidth, size float64) []line {
	var lines []line
	words := strings.Fields(text)
	space := advance(" ", size)

	var cur strings.Builder
	var curWidth float64
	flush := func() {
		if cur.Len() == 0 {
			return
		}
		lines = append(lines, line{text: cur.String(), width: curWidth})
		cur.Reset()
		curWidth = 0
	}

	for _, word := range words {
		w := advance(word, size)
		need := w
		if cur.Len() > 0 {
			need += space
		}
		if cur.Len() > 0 && !geom.Fits(maxWidth, curWidth+need) {
			flush()
			need = w
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
		curWidth += need
	}
	flush()

	return lines
}

// Layout breaks the text into lines and fills them into the regions, one
// frame per consumed region. Region heights that fit no line at all yield
// an empty frame for that region; in the final region, leftover lines are
// placed even if they overflow.
func (t *Text) Layout(regions frame.Regions, styles *style.Chain) (frame.Fragment, error) {
	size := styles.TextSize()
	lineH := styles.LineHeight()
	lines := wrap(t.Text, regions.Size.Width, size)

	var frames frame.Fragment
	pod := regions
	i := 0
	for {
		n := 0
		for i+n < len(lines) && geom.Fits(pod.Size.Height, float64(n+1)*lineH) {
			n++
		}
		if n == 0 && i < len(lines) && (!pod.MayProgress() || pod.InLast()) {
			// No later region can do better; overflow the rest here.
			n = len(lines) - i
		}

		width := 0.0
		for _, l := range lines[i : i+n] {
			if l.width > width {
				width = l.width
			}
		}
		if pod.Expand.X {
			width = pod.Size.Width
		}

		f := frame.New(geom.Size{Width: width, Height: float64(n) * lineH})
		for j, l := range lines[i : i+n] {
			f.Push(geom.Point{Y: float64(j) * lineH}, frame.Text{Content: l.text, Size: size})
		}
		frames = append(frames, f)

		i += n
		if i >= len(lines) || !pod.MayProgress() {
			break
		}
		pod.Next()
	}

	return frames, nil
}
