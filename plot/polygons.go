package plot

import (
	"fmt"
	"image"
	"image/color"

	sm "github.com/flopp/go-staticmaps"
	"github.com/woozymasta/mapplot/coords"
	"github.com/woozymasta/mapplot/palette"
)

const minPolygonPoints = 3

// AddPolygon adds a filled area outlined by ring.
func (m *Map) AddPolygon(ring []coords.Coordinate, col, fill color.Color, width float64) error {
	if err := checkPath("polygon", ring, minPolygonPoints); err != nil {
		return err
	}
	width = orDefault(width, DefaultLineWidth)
	m.add(sm.NewArea(latLngs(ring), palette.ToNRGBA(col), palette.ToNRGBA(fill), width), width)
	return nil
}

// AddPolygons adds one area per ring. Outlines are red and fills
// translucent red unless style says otherwise.
func (m *Map) AddPolygons(rings [][]coords.Coordinate, style Style) error {
	if len(rings) == 0 {
		return coords.Empty("polygons")
	}

	rings = flipAll(rings, style)
	for i, r := range rings {
		if err := checkPath("polygon", r, minPolygonPoints); err != nil {
			return fmt.Errorf("polygon %d: %w", i, err)
		}
	}

	cols, err := style.borders(len(rings), palette.Red)
	if err != nil {
		return fmt.Errorf("polygon colors: %w", err)
	}
	fills, err := style.fills(cols)
	if err != nil {
		return fmt.Errorf("polygon fills: %w", err)
	}

	for i, r := range rings {
		if err := m.AddPolygon(r, cols[i], fills[i], style.Width); err != nil {
			return err
		}
	}
	return nil
}

// PlotPolygon renders a single polygon.
func PlotPolygon(ring []coords.Coordinate, style Style, opts RenderOptions) (image.Image, error) {
	return PlotPolygons([][]coords.Coordinate{ring}, style, opts)
}

// PlotPolygons renders several polygons.
func PlotPolygons(rings [][]coords.Coordinate, style Style, opts RenderOptions) (image.Image, error) {
	return withMap(opts, func(m *Map) error {
		return m.AddPolygons(rings, style)
	})
}
