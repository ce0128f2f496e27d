package plot

import (
	"fmt"
	"image"
	"image/color"

	sm "github.com/flopp/go-staticmaps"
	"github.com/woozymasta/mapplot/coords"
	"github.com/woozymasta/mapplot/palette"
)

// AddPoint adds one marker.
func (m *Map) AddPoint(c coords.Coordinate, col color.Color, size float64) error {
	if err := coords.Validate(c); err != nil {
		return err
	}
	size = orDefault(size, DefaultPointSize)
	m.add(sm.NewMarker(c.LatLng(), palette.ToNRGBA(col), size), size)
	return nil
}

// AddPoints adds one marker per latitude/longitude pair. Markers are blue
// unless style says otherwise.
func (m *Map) AddPoints(lats, lons []float64, style Style) error {
	cs, err := coords.FromLatsLons(lats, lons)
	if err != nil {
		return err
	}
	return m.AddCoordinates(cs, style)
}

// AddCoordinates adds one marker per coordinate.
func (m *Map) AddCoordinates(cs []coords.Coordinate, style Style) error {
	if len(cs) == 0 {
		return coords.Empty("points")
	}
	cs = style.flip(cs)
	if err := coords.ValidateAll(cs); err != nil {
		return err
	}

	cols, err := style.borders(len(cs), palette.Blue)
	if err != nil {
		return fmt.Errorf("point colors: %w", err)
	}

	for i, c := range cs {
		if err := m.AddPoint(c, cols[i], style.PointSize); err != nil {
			return err
		}
	}
	return nil
}

// PlotPoints renders markers at the given latitudes and longitudes.
func PlotPoints(lats, lons []float64, style Style, opts RenderOptions) (image.Image, error) {
	return withMap(opts, func(m *Map) error {
		return m.AddPoints(lats, lons, style)
	})
}

// PlotPointPairs renders markers from coordinate pairs read in order.
func PlotPointPairs(pairs [][2]float64, order coords.Order, style Style, opts RenderOptions) (image.Image, error) {
	cs, err := coords.FromPairs(pairs, order)
	if err != nil {
		return nil, err
	}
	return withMap(opts, func(m *Map) error {
		return m.AddCoordinates(cs, style)
	})
}
