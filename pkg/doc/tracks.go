package doc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/01mf02/typst/pkg/frame"
	"github.com/01mf02/typst/pkg/geom"
	"github.com/01mf02/typst/pkg/grid"
)

// TrackList is a list of track sizings with the shorthand construction
// rules of the document format:
//
//   - an integer n expands into n auto tracks,
//   - a single scalar (e.g. "1fr") stays a single track,
//   - an array lists the tracks explicitly.
//
// Note the asymmetry: only the integer form multiplies. columns = 3 gives
// three auto columns, columns = "3pt" gives one 3pt column.
type TrackList []grid.Sizing

// UnmarshalTOML implements toml.Unmarshaler for the shorthand forms.
func (t *TrackList) UnmarshalTOML(v interface{}) error {
	switch val := v.(type) {
	case int64:
		if val < 0 {
			return fmt.Errorf("track count must not be negative, got %d", val)
		}
		*t = grid.AutoTracks(int(val))
		return nil
	case string:
		s, err := ParseTrack(val)
		if err != nil {
			return err
		}
		*t = TrackList{s}
		return nil
	case []interface{}:
		out := make(TrackList, 0, len(val))
		for _, entry := range val {
			str, ok := entry.(string)
			if !ok {
				return fmt.Errorf("track entry must be a string, got %T", entry)
			}
			s, err := ParseTrack(str)
			if err != nil {
				return err
			}
			out = append(out, s)
		}
		*t = out
		return nil
	default:
		return fmt.Errorf("invalid track specification %v", v)
	}
}

// ParseTrack parses one track sizing: "auto", a fractional share like
// "1fr", a percentage like "25%", or a length like "60pt" (the unit may
// be omitted).
func ParseTrack(s string) (grid.Sizing, error) {
	s = strings.TrimSpace(s)
	if s == "auto" {
		return grid.Auto(), nil
	}
	if num, ok := strings.CutSuffix(s, "fr"); ok {
		v, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return grid.Sizing{}, fmt.Errorf("invalid fraction %q", s)
		}
		return grid.Frac(geom.Fr(v)), nil
	}
	rel, err := ParseLength(s)
	if err != nil {
		return grid.Sizing{}, err
	}
	return grid.Fixed(rel), nil
}

// ParseLength parses a fixed or relative length: "60pt", "25%" or a bare
// number of points. The empty string is a zero length.
func ParseLength(s string) (geom.Rel, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return geom.Rel{}, nil
	}
	if num, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return geom.Rel{}, fmt.Errorf("invalid percentage %q", s)
		}
		return geom.Ratio(v / 100), nil
	}
	num := strings.TrimSuffix(s, "pt")
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return geom.Rel{}, fmt.Errorf("invalid length %q", s)
	}
	return geom.Pt(v), nil
}

// ParseColor parses a "#rrggbb" hex color.
func ParseColor(s string) (frame.RGB, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return frame.RGB{}, fmt.Errorf("invalid color %q, want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return frame.RGB{}, fmt.Errorf("invalid color %q, want #rrggbb", s)
	}
	return frame.RGB{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
	}, nil
}
