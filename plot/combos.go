package plot

import (
	"fmt"
	"image"
	"image/color"

	"github.com/woozymasta/mapplot/coords"
	"github.com/woozymasta/mapplot/palette"
)

// AddPointsAndPolygons adds markers on top of polygons. Polygon borders are
// resolved once from style; point i takes the border color of polygon
// i mod len(rings).
func (m *Map) AddPointsAndPolygons(points []coords.Coordinate, rings [][]coords.Coordinate, style Style) error {
	if len(rings) == 0 {
		return coords.Empty("polygons")
	}
	if len(points) == 0 {
		return coords.Empty("points")
	}

	borders, err := style.borders(len(rings), palette.Red)
	if err != nil {
		return fmt.Errorf("polygon colors: %w", err)
	}

	// IDs stay on the polygon style so ID fill colors still apply.
	polyStyle := style
	polyStyle.Color = nil
	polyStyle.ColorMode = ""
	polyStyle.IDColors = nil
	polyStyle.IDColorMode = ""
	polyStyle.Colors = make([]color.Color, len(borders))
	for i, c := range borders {
		polyStyle.Colors[i] = c
	}
	if err := m.AddPolygons(rings, polyStyle); err != nil {
		return err
	}

	pointStyle := Style{
		Colors:     make([]color.Color, len(points)),
		PointSize:  style.PointSize,
		FlipCoords: style.FlipCoords,
	}
	for i := range points {
		pointStyle.Colors[i] = borders[i%len(borders)]
	}
	return m.AddCoordinates(points, pointStyle)
}

// PlotPointsAndPolygons renders markers on top of polygons with the colors
// of AddPointsAndPolygons.
func PlotPointsAndPolygons(points []coords.Coordinate, rings [][]coords.Coordinate, style Style, opts RenderOptions) (image.Image, error) {
	return withMap(opts, func(m *Map) error {
		return m.AddPointsAndPolygons(points, rings, style)
	})
}
