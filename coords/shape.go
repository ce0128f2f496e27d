package coords

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/uber/h3-go/v4"
)

// Kind is the drawable family of a geometry.
type Kind string

const (
	KindPoint           Kind = "Point"
	KindMultiPoint      Kind = "MultiPoint"
	KindLineString      Kind = "LineString"
	KindMultiLineString Kind = "MultiLineString"
	KindPolygon         Kind = "Polygon"
	KindMultiPolygon    Kind = "MultiPolygon"
)

// Shape is a geometry reduced to (lat, lon) coordinates: markers in
// Points, polylines in Lines and closed outlines in Rings. Polygon holes
// are kept as additional rings.
type Shape struct {
	Kind   Kind
	Points []Coordinate
	Lines  [][]Coordinate
	Rings  [][]Coordinate
}

// Len is the number of drawable parts.
func (s Shape) Len() int {
	return len(s.Points) + len(s.Lines) + len(s.Rings)
}

// FromOrb flattens an orb geometry. Collections are rejected; callers
// iterate them.
func FromOrb(g orb.Geometry) (Shape, error) {
	switch v := g.(type) {
	case nil:
		return Shape{}, newError("geometry", nil, ErrEmpty, "no geometry")
	case orb.Point:
		return Shape{Kind: KindPoint, Points: []Coordinate{fromPoint(v)}}, nil
	case orb.MultiPoint:
		return Shape{Kind: KindMultiPoint, Points: fromPoints(v)}, nil
	case orb.LineString:
		return Shape{Kind: KindLineString, Lines: [][]Coordinate{fromPoints(v)}}, nil
	case orb.MultiLineString:
		lines := make([][]Coordinate, len(v))
		for i, ls := range v {
			lines[i] = fromPoints(ls)
		}
		return Shape{Kind: KindMultiLineString, Lines: lines}, nil
	case orb.Ring:
		return Shape{Kind: KindPolygon, Rings: [][]Coordinate{fromPoints(v)}}, nil
	case orb.Polygon:
		return Shape{Kind: KindPolygon, Rings: fromRings(v)}, nil
	case orb.MultiPolygon:
		var rings [][]Coordinate
		for _, p := range v {
			rings = append(rings, fromRings(p)...)
		}
		return Shape{Kind: KindMultiPolygon, Rings: rings}, nil
	case orb.Bound:
		return Shape{Kind: KindPolygon, Rings: [][]Coordinate{fromPoints(v.ToRing())}}, nil
	default:
		return Shape{}, newError("geometry", g.GeoJSONType(), ErrUnsupported, "cannot be drawn directly")
	}
}

func fromPoint(p orb.Point) Coordinate {
	return Coordinate{Lat: p.Lat(), Lon: p.Lon()}
}

func fromPoints[P ~[]orb.Point](ps P) []Coordinate {
	out := make([]Coordinate, len(ps))
	for i, p := range ps {
		out[i] = fromPoint(p)
	}
	return out
}

func fromRings(p orb.Polygon) [][]Coordinate {
	out := make([][]Coordinate, len(p))
	for i, r := range p {
		out[i] = fromPoints(r)
	}
	return out
}

// FromH3Cell returns the closed boundary ring of an H3 cell given in its
// hexadecimal string form.
func FromH3Cell(cell string) ([]Coordinate, error) {
	var c h3.Cell
	if err := c.UnmarshalText([]byte(cell)); err != nil {
		return nil, newError("cell", cell, ErrMalformed, err.Error())
	}
	if !c.IsValid() {
		return nil, newError("cell", cell, ErrMalformed, "not a valid h3 cell")
	}

	b, err := c.Boundary()
	if err != nil {
		return nil, fmt.Errorf("h3 boundary of %s: %w", cell, err)
	}
	if len(b) < 3 {
		return nil, newError("cell", cell, ErrMalformed, "degenerate boundary")
	}

	ring := make([]Coordinate, 0, len(b)+1)
	for _, ll := range b {
		ring = append(ring, Coordinate{Lat: ll.Lat, Lon: ll.Lng})
	}
	return append(ring, ring[0]), nil
}
