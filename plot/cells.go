package plot

import (
	"fmt"
	"image"

	"github.com/woozymasta/mapplot/coords"
)

// AddCells adds the boundary of every H3 cell as a polygon. Style applies
// as for AddPolygons, so IDs can group cells by color.
func (m *Map) AddCells(cells []string, style Style) error {
	if len(cells) == 0 {
		return coords.Empty("cells")
	}

	rings := make([][]coords.Coordinate, 0, len(cells))
	for _, cell := range cells {
		ring, err := coords.FromH3Cell(cell)
		if err != nil {
			return err
		}
		rings = append(rings, ring)
	}

	// boundaries are already (lat, lon)
	style.FlipCoords = false
	if err := m.AddPolygons(rings, style); err != nil {
		return fmt.Errorf("h3 cells: %w", err)
	}
	return nil
}

// PlotCells renders H3 cells as polygons.
func PlotCells(cells []string, style Style, opts RenderOptions) (image.Image, error) {
	return withMap(opts, func(m *Map) error {
		return m.AddCells(cells, style)
	})
}
