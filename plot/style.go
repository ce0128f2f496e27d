package plot

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/woozymasta/mapplot/coords"
	"github.com/woozymasta/mapplot/palette"
)

// RadiusUnit is the unit of circle radii.
type RadiusUnit string

const (
	Meters     RadiusUnit = "meters"
	Kilometers RadiusUnit = "kilometers"
)

// ParseRadiusUnit accepts "meters" (or empty) and "kilometers".
func ParseRadiusUnit(s string) (RadiusUnit, error) {
	switch u := RadiusUnit(strings.ToLower(strings.TrimSpace(s))); u {
	case "", Meters:
		return Meters, nil
	case Kilometers:
		return Kilometers, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrRadiusUnit, s)
	}
}

// meters converts r from unit to meters.
func (u RadiusUnit) meters(r float64) (float64, error) {
	unit, err := ParseRadiusUnit(string(u))
	if err != nil {
		return 0, err
	}
	if unit == Kilometers {
		return r * 1000, nil
	}
	return r, nil
}

// Style controls the colors and sizes of plotted objects.
//
// Border colors come from, in order: IDs with IDColors or IDColorMode,
// Colors, ColorMode, Color. Fill colors come from IDs with IDFillColors or
// IDFillColorMode, FillColors, FillColorMode, FillSame (the border
// colors), FillColor. FillTransparency then replaces the alpha of every fill.
type Style struct {
	Color     color.Color
	Colors    []color.Color
	ColorMode palette.Mode

	FillColor        color.Color
	FillColors       []color.Color
	FillColorMode    palette.Mode
	FillSame         bool
	FillTransparency *uint8

	IDs             []string
	IDColors        map[string]color.Color
	IDColorMode     palette.Mode
	IDFillColors    map[string]color.Color
	IDFillColorMode palette.Mode

	Width      float64
	PointSize  float64
	RadiusUnit RadiusUnit
	FlipCoords bool
}

func (s Style) hasIDColors() bool {
	return len(s.IDs) > 0 && (len(s.IDColors) > 0 || s.IDColorMode != "")
}

func (s Style) hasIDFills() bool {
	return len(s.IDs) > 0 && (len(s.IDFillColors) > 0 || s.IDFillColorMode != "")
}

// borders resolves n border colors, def being used when the style names none.
func (s Style) borders(n int, def color.Color) ([]color.NRGBA, error) {
	if s.hasIDColors() {
		if len(s.IDs) != n {
			return nil, coords.Mismatch("ids", len(s.IDs), n)
		}
		return palette.IDColors(s.IDs, s.IDColors, s.IDColorMode)
	}

	c := s.Color
	if c == nil {
		c = def
	}
	return palette.Resolve(palette.Spec{Colors: s.Colors, Mode: s.ColorMode}, n, c)
}

// fills resolves one fill color per border color.
func (s Style) fills(borders []color.NRGBA) ([]color.NRGBA, error) {
	n := len(borders)

	var explicit []color.NRGBA
	var err error
	switch {
	case s.hasIDFills():
		if len(s.IDs) != n {
			return nil, coords.Mismatch("ids", len(s.IDs), n)
		}
		explicit, err = palette.IDColors(s.IDs, s.IDFillColors, s.IDFillColorMode)
	case len(s.FillColors) > 0 || s.FillColorMode != "":
		explicit, err = palette.Resolve(palette.Spec{Colors: s.FillColors, Mode: s.FillColorMode}, n, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("fill colors: %w", err)
	}

	def := s.FillColor
	if def == nil {
		def = palette.TransparentRed
	}
	return palette.FillColors(borders, palette.Fill{
		Colors:  explicit,
		Same:    s.FillSame,
		Alpha:   s.FillTransparency,
		Default: def,
	})
}

// flip applies FlipCoords to caller supplied coordinates.
func (s Style) flip(cs []coords.Coordinate) []coords.Coordinate {
	if s.FlipCoords {
		return coords.Flip(cs)
	}
	return cs
}
