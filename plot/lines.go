package plot

import (
	"fmt"
	"image"
	"image/color"

	sm "github.com/flopp/go-staticmaps"
	"github.com/woozymasta/mapplot/coords"
	"github.com/woozymasta/mapplot/palette"
)

const minLinePoints = 2

// AddLine adds a polyline through line.
func (m *Map) AddLine(line []coords.Coordinate, col color.Color, width float64) error {
	if err := checkPath("line", line, minLinePoints); err != nil {
		return err
	}
	width = orDefault(width, DefaultLineWidth)
	m.add(sm.NewPath(latLngs(line), palette.ToNRGBA(col), width), width)
	return nil
}

// AddLines adds one polyline per entry. Lines are red unless style says
// otherwise.
func (m *Map) AddLines(lines [][]coords.Coordinate, style Style) error {
	if len(lines) == 0 {
		return coords.Empty("lines")
	}

	lines = flipAll(lines, style)
	for i, l := range lines {
		if err := checkPath("line", l, minLinePoints); err != nil {
			return fmt.Errorf("line %d: %w", i, err)
		}
	}

	cols, err := style.borders(len(lines), palette.Red)
	if err != nil {
		return fmt.Errorf("line colors: %w", err)
	}

	for i, l := range lines {
		if err := m.AddLine(l, cols[i], style.Width); err != nil {
			return err
		}
	}
	return nil
}

// PlotLine renders a single polyline.
func PlotLine(line []coords.Coordinate, style Style, opts RenderOptions) (image.Image, error) {
	return PlotLines([][]coords.Coordinate{line}, style, opts)
}

// PlotLines renders several polylines.
func PlotLines(lines [][]coords.Coordinate, style Style, opts RenderOptions) (image.Image, error) {
	return withMap(opts, func(m *Map) error {
		return m.AddLines(lines, style)
	})
}

// checkPath requires at least need valid coordinates.
func checkPath(field string, cs []coords.Coordinate, need int) error {
	if len(cs) == 0 {
		return coords.Empty(field)
	}
	if len(cs) < need {
		return coords.TooShort(field, len(cs), need)
	}
	return coords.ValidateAll(cs)
}

func flipAll(paths [][]coords.Coordinate, style Style) [][]coords.Coordinate {
	if !style.FlipCoords {
		return paths
	}
	out := make([][]coords.Coordinate, len(paths))
	for i, p := range paths {
		out[i] = coords.Flip(p)
	}
	return out
}
