package plot

import (
	"fmt"
	"image"
	"image/color"

	sm "github.com/flopp/go-staticmaps"
	"github.com/woozymasta/mapplot/coords"
	"github.com/woozymasta/mapplot/palette"
)

// Circle is a center with a radius in the style's RadiusUnit.
type Circle struct {
	Center coords.Coordinate
	Radius float64
}

// AddCircle adds a circle of radius (in unit) around center.
func (m *Map) AddCircle(center coords.Coordinate, radius float64, unit RadiusUnit, col, fill color.Color, width float64) error {
	if err := coords.Validate(center); err != nil {
		return err
	}
	meters, err := unit.meters(radius)
	if err != nil {
		return err
	}
	if meters <= 0 {
		return fmt.Errorf("circle radius %g: must be positive", radius)
	}

	width = orDefault(width, DefaultLineWidth)
	m.add(sm.NewCircle(center.LatLng(), palette.ToNRGBA(col), palette.ToNRGBA(fill), meters, width), width)
	return nil
}

// AddCircles adds every circle with colors resolved from style.
func (m *Map) AddCircles(circles []Circle, style Style) error {
	if len(circles) == 0 {
		return coords.Empty("circles")
	}
	if _, err := ParseRadiusUnit(string(style.RadiusUnit)); err != nil {
		return err
	}

	if style.FlipCoords {
		flipped := make([]Circle, len(circles))
		for i, c := range circles {
			flipped[i] = Circle{Center: c.Center.Flip(), Radius: c.Radius}
		}
		circles = flipped
	}
	for i, c := range circles {
		if err := coords.Validate(c.Center); err != nil {
			return fmt.Errorf("circle %d: %w", i, err)
		}
		if c.Radius <= 0 {
			return fmt.Errorf("circle %d: radius %g must be positive", i, c.Radius)
		}
	}

	cols, err := style.borders(len(circles), palette.Red)
	if err != nil {
		return fmt.Errorf("circle colors: %w", err)
	}
	fills, err := style.fills(cols)
	if err != nil {
		return fmt.Errorf("circle fills: %w", err)
	}

	for i, c := range circles {
		if err := m.AddCircle(c.Center, c.Radius, style.RadiusUnit, cols[i], fills[i], style.Width); err != nil {
			return err
		}
	}
	return nil
}

// CirclesFrom zips centers given as latitudes and longitudes with radii.
func CirclesFrom(lats, lons, radii []float64) ([]Circle, error) {
	cs, err := coords.FromLatsLons(lats, lons)
	if err != nil {
		return nil, err
	}
	if len(radii) != len(cs) {
		return nil, coords.Mismatch("radii", len(radii), len(cs))
	}

	out := make([]Circle, len(cs))
	for i, c := range cs {
		out[i] = Circle{Center: c, Radius: radii[i]}
	}
	return out, nil
}

// PlotCircle renders a single circle.
func PlotCircle(c Circle, style Style, opts RenderOptions) (image.Image, error) {
	return PlotCircles([]Circle{c}, style, opts)
}

// PlotCircles renders several circles.
func PlotCircles(circles []Circle, style Style, opts RenderOptions) (image.Image, error) {
	return withMap(opts, func(m *Map) error {
		return m.AddCircles(circles, style)
	})
}
