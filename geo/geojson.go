// Package geo reads GeoJSON documents into drawable features.
package geo

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"
	"github.com/woozymasta/mapplot/coords"
)

var (
	ErrInvalidJSON     = errors.New("invalid JSON")
	ErrMissingType     = errors.New("GeoJSON must have a type field")
	ErrUnsupportedType = errors.New("unsupported GeoJSON type")
)

// Top level types accepted by Parse.
const (
	TypeFeature            = "Feature"
	TypeFeatureCollection  = "FeatureCollection"
	TypeGeometryCollection = "GeometryCollection"
)

var geometryTypes = map[string]bool{
	"Point":           true,
	"LineString":      true,
	"Polygon":         true,
	"MultiPoint":      true,
	"MultiLineString": true,
	"MultiPolygon":    true,
}

// Document is a parsed GeoJSON object. Depending on Type it is a
// collection, a single feature or a bare geometry.
type Document struct {
	Type        string          `json:"type" yaml:"type"`
	RawFeatures []RawFeature    `json:"features,omitempty" yaml:"features,omitempty"`
	Geometry    *Geometry       `json:"geometry,omitempty" yaml:"geometry,omitempty"`
	Properties  map[string]any  `json:"properties,omitempty" yaml:"properties,omitempty"`
	Coordinates json.RawMessage `json:"coordinates,omitempty" yaml:"-"`
}

// RawFeature is a feature whose coordinates have not been checked yet.
type RawFeature struct {
	Properties map[string]any `json:"properties" yaml:"properties"`
	Type       string         `json:"type" yaml:"type"`
	Geometry   *Geometry      `json:"geometry" yaml:"geometry"`
}

// Geometry keeps coordinates raw; their nesting depends on Type.
type Geometry struct {
	Type        string          `json:"type" yaml:"type"`
	Coordinates json.RawMessage `json:"coordinates" yaml:"-"` // [Lon, Lat] positions
	Geometries  []Geometry      `json:"geometries,omitempty" yaml:"-"`
}

// Feature is a validated geometry with its properties.
type Feature struct {
	Geometry   orb.Geometry
	Properties map[string]any
}

// Parse decodes and checks the top level of a GeoJSON document.
func Parse(data []byte) (*Document, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if _, ok := probe["type"]; !ok {
		return nil, ErrMissingType
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	if doc.Type != TypeFeature && doc.Type != TypeFeatureCollection && !geometryTypes[doc.Type] {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, doc.Type)
	}

	return &doc, nil
}

// ParseFile reads and parses a GeoJSON file.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read geojson: %w", err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Features extracts every drawable geometry with its properties.
// Null geometries and geometry collections are skipped.
func (d *Document) Features() ([]Feature, error) {
	var raw []RawFeature
	switch d.Type {
	case TypeFeatureCollection:
		raw = d.RawFeatures
	case TypeFeature:
		raw = []RawFeature{{Type: d.Type, Geometry: d.Geometry, Properties: d.Properties}}
	default:
		raw = []RawFeature{{Geometry: &Geometry{Type: d.Type, Coordinates: d.Coordinates}}}
	}

	out := make([]Feature, 0, len(raw))
	for i, f := range raw {
		if f.Geometry == nil {
			continue
		}
		if f.Geometry.Type == TypeGeometryCollection {
			log.Debug().Int("feature", i).Msg("Skipping geometry collection")
			continue
		}

		g, err := decodeGeometry(f.Geometry)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}

		props := f.Properties
		if props == nil {
			props = map[string]any{}
		}
		out = append(out, Feature{Geometry: g, Properties: props})
	}

	return out, nil
}

// FromFeatureCollection adapts an already decoded orb collection.
// Features without geometry and geometry collections are skipped.
func FromFeatureCollection(fc *geojson.FeatureCollection) []Feature {
	if fc == nil {
		return nil
	}

	out := make([]Feature, 0, len(fc.Features))
	for _, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		if _, ok := f.Geometry.(orb.Collection); ok {
			continue
		}

		props := map[string]any(f.Properties)
		if props == nil {
			props = map[string]any{}
		}
		out = append(out, Feature{Geometry: f.Geometry, Properties: props})
	}
	return out
}

func decodeGeometry(g *Geometry) (orb.Geometry, error) {
	if !geometryTypes[g.Type] {
		return nil, fmt.Errorf("%w: geometry %q", ErrUnsupportedType, g.Type)
	}

	switch g.Type {
	case "Point":
		var p []float64
		if err := unmarshalCoords(g, &p); err != nil {
			return nil, err
		}
		pt, err := toPoint(p)
		if err != nil {
			return nil, err
		}
		return pt, nil

	case "MultiPoint", "LineString":
		var ps [][]float64
		if err := unmarshalCoords(g, &ps); err != nil {
			return nil, err
		}
		pts, err := toPoints(ps)
		if err != nil {
			return nil, err
		}
		if g.Type == "MultiPoint" {
			return orb.MultiPoint(pts), nil
		}
		return orb.LineString(pts), nil

	case "MultiLineString", "Polygon":
		var pss [][][]float64
		if err := unmarshalCoords(g, &pss); err != nil {
			return nil, err
		}
		if g.Type == "Polygon" {
			return toPolygon(pss)
		}
		mls := make(orb.MultiLineString, 0, len(pss))
		for _, ps := range pss {
			pts, err := toPoints(ps)
			if err != nil {
				return nil, err
			}
			mls = append(mls, orb.LineString(pts))
		}
		return mls, nil

	default:
		var psss [][][][]float64
		if err := unmarshalCoords(g, &psss); err != nil {
			return nil, err
		}
		mp := make(orb.MultiPolygon, 0, len(psss))
		for _, pss := range psss {
			poly, err := toPolygon(pss)
			if err != nil {
				return nil, err
			}
			mp = append(mp, poly)
		}
		return mp, nil
	}
}

func unmarshalCoords(g *Geometry, v any) error {
	if len(g.Coordinates) == 0 {
		return fmt.Errorf("%s: %w", g.Type, coords.Empty("coordinates"))
	}
	if err := json.Unmarshal(g.Coordinates, v); err != nil {
		return fmt.Errorf("%s coordinates: %w: %v", g.Type, coords.ErrMalformed, err)
	}
	return nil
}

func toPoint(p []float64) (orb.Point, error) {
	c, err := coords.FromPosition(p)
	if err != nil {
		return orb.Point{}, err
	}
	return c.Point(), nil
}

func toPoints(ps [][]float64) ([]orb.Point, error) {
	cs, err := coords.FromPositions(ps)
	if err != nil {
		return nil, err
	}
	out := make([]orb.Point, len(cs))
	for i, c := range cs {
		out[i] = c.Point()
	}
	return out, nil
}

func toPolygon(pss [][][]float64) (orb.Polygon, error) {
	poly := make(orb.Polygon, 0, len(pss))
	for _, ps := range pss {
		pts, err := toPoints(ps)
		if err != nil {
			return nil, err
		}
		poly = append(poly, orb.Ring(pts))
	}
	return poly, nil
}
