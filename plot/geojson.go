package plot

import (
	"fmt"
	"image"
	"image/color"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"
	"github.com/woozymasta/mapplot/coords"
	"github.com/woozymasta/mapplot/geo"
	"github.com/woozymasta/mapplot/palette"
)

// DefaultFeatureColor is used for features without a color property.
const DefaultFeatureColor = "blue"

// FeatureStyle is the resolved look of one feature.
type FeatureStyle struct {
	Color color.Color
	Fill  color.Color
	Width float64
	Size  float64
}

// AddGeoJSON parses data and adds every feature, styled from its
// simplestyle properties.
func (m *Map) AddGeoJSON(data []byte) error {
	doc, err := geo.Parse(data)
	if err != nil {
		return err
	}
	return m.addDocument(doc)
}

func (m *Map) addDocument(doc *geo.Document) error {
	features, err := doc.Features()
	if err != nil {
		return err
	}
	return m.AddFeatures(features)
}

// AddFeatures adds decoded features, styled from their properties.
func (m *Map) AddFeatures(features []geo.Feature) error {
	if len(features) == 0 {
		return ErrNoGeometries
	}

	for i, f := range features {
		fs, err := propertyStyle(f.Properties)
		if err != nil {
			return fmt.Errorf("feature %d: %w", i, err)
		}
		if err := m.AddGeometry(f.Geometry, fs); err != nil {
			return fmt.Errorf("feature %d: %w", i, err)
		}
	}

	log.Debug().Int("features", len(features)).Int("objects", m.Len()).Msg("GeoJSON features added")
	return nil
}

func propertyStyle(props map[string]any) (FeatureStyle, error) {
	col, err := palette.Parse(geo.StyleColor(props, DefaultFeatureColor))
	if err != nil {
		return FeatureStyle{}, err
	}
	return FeatureStyle{
		Color: col,
		Width: geo.StyleWidth(props, DefaultLineWidth),
		Size:  geo.StyleSize(props, DefaultPointSize),
	}, nil
}

// AddGeometry adds an orb geometry. Points become markers, lines
// polylines and every polygon ring (holes included) a filled area.
func (m *Map) AddGeometry(g orb.Geometry, fs FeatureStyle) error {
	if c, ok := g.(orb.Collection); ok {
		for _, part := range c {
			if err := m.AddGeometry(part, fs); err != nil {
				return err
			}
		}
		return nil
	}

	shape, err := coords.FromOrb(g)
	if err != nil {
		return err
	}
	if shape.Len() == 0 {
		return coords.Empty(string(shape.Kind))
	}

	if fs.Color == nil {
		fs.Color = palette.Blue
	}
	if fs.Fill == nil {
		fs.Fill = palette.TransparentRed
	}

	switch {
	case len(shape.Points) > 0:
		if err := coords.ValidateAll(shape.Points); err != nil {
			return err
		}
		for _, p := range shape.Points {
			if err := m.AddPoint(p, fs.Color, fs.Size); err != nil {
				return err
			}
		}
	case len(shape.Lines) > 0:
		for i, l := range shape.Lines {
			if err := checkPath("line", l, minLinePoints); err != nil {
				return fmt.Errorf("%s part %d: %w", shape.Kind, i, err)
			}
		}
		for _, l := range shape.Lines {
			if err := m.AddLine(l, fs.Color, fs.Width); err != nil {
				return err
			}
		}
	default:
		for i, r := range shape.Rings {
			if err := checkPath("polygon", r, minPolygonPoints); err != nil {
				return fmt.Errorf("%s ring %d: %w", shape.Kind, i, err)
			}
		}
		for _, r := range shape.Rings {
			if err := m.AddPolygon(r, fs.Color, fs.Fill, fs.Width); err != nil {
				return err
			}
		}
	}
	return nil
}

// PlotGeoJSON renders a GeoJSON document.
func PlotGeoJSON(data []byte, opts RenderOptions) (image.Image, error) {
	doc, err := geo.Parse(data)
	if err != nil {
		return nil, err
	}
	return withMap(opts, func(m *Map) error {
		return m.addDocument(doc)
	})
}

// PlotGeoJSONFile renders the GeoJSON document stored at path.
func PlotGeoJSONFile(path string, opts RenderOptions) (image.Image, error) {
	doc, err := geo.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return withMap(opts, func(m *Map) error {
		if err := m.addDocument(doc); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return nil
	})
}

// PlotGeometry renders a single geometry in the default blue.
func PlotGeometry(g orb.Geometry, opts RenderOptions) (image.Image, error) {
	return PlotGeometries([]orb.Geometry{g}, nil, opts)
}

// PlotGeometries renders geometries. Geometry i takes colors[i]; missing
// entries fall back to the first color, then to blue.
func PlotGeometries(gs []orb.Geometry, colors []color.Color, opts RenderOptions) (image.Image, error) {
	if len(gs) == 0 {
		return nil, coords.Empty("geometries")
	}
	return withMap(opts, func(m *Map) error {
		for i, g := range gs {
			fs := FeatureStyle{Color: palette.Blue, Width: DefaultLineWidth, Size: DefaultPointSize}
			switch {
			case i < len(colors):
				fs.Color = colors[i]
			case len(colors) > 0:
				fs.Color = colors[0]
			}
			if err := m.AddGeometry(g, fs); err != nil {
				return fmt.Errorf("geometry %d: %w", i, err)
			}
		}
		return nil
	})
}

// FeatureColumns names the properties holding per-feature color and size.
type FeatureColumns struct {
	Color string
	Size  string
	// Colors is used for features whose color property is missing, indexed
	// like PlotGeometries colors.
	Colors []color.Color
}

// PlotFeatureCollection renders an orb feature collection, reading color
// and marker size from the named properties.
func PlotFeatureCollection(fc *geojson.FeatureCollection, cols FeatureColumns, opts RenderOptions) (image.Image, error) {
	features := geo.FromFeatureCollection(fc)
	if len(features) == 0 {
		return nil, ErrNoGeometries
	}

	return withMap(opts, func(m *Map) error {
		for i, f := range features {
			fs, err := columnStyle(f.Properties, cols, i)
			if err != nil {
				return fmt.Errorf("feature %d: %w", i, err)
			}
			if err := m.AddGeometry(f.Geometry, fs); err != nil {
				return fmt.Errorf("feature %d: %w", i, err)
			}
		}
		return nil
	})
}

func columnStyle(props map[string]any, cols FeatureColumns, i int) (FeatureStyle, error) {
	fs := FeatureStyle{Color: palette.Blue, Width: DefaultLineWidth, Size: DefaultPointSize}

	switch {
	case i < len(cols.Colors):
		fs.Color = cols.Colors[i]
	case len(cols.Colors) > 0:
		fs.Color = cols.Colors[0]
	}

	if cols.Color != "" {
		if v, ok := props[cols.Color]; ok && v != nil {
			c, err := palette.Convert(v)
			if err != nil {
				return fs, fmt.Errorf("property %q: %w", cols.Color, err)
			}
			fs.Color = c
		}
	}
	if cols.Size != "" {
		fs.Size = geo.Number(props, DefaultPointSize, cols.Size)
	}
	return fs, nil
}
