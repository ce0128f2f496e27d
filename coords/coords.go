// Package coords normalizes user coordinates into (latitude, longitude)
// pairs and converts back to GeoJSON [longitude, latitude] positions.
package coords

import (
	"fmt"
	"math"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// Coordinate is a WGS84 position in degrees.
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// Order of values in a coordinate pair.
type Order int

const (
	LatLon Order = iota
	LonLat
)

// New returns a coordinate from latitude and longitude.
func New(lat, lon float64) Coordinate {
	return Coordinate{Lat: lat, Lon: lon}
}

// LatLng converts to the spherical type used by the renderer.
func (c Coordinate) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(c.Lat, c.Lon)
}

// Point returns the orb point, which stores longitude first.
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Lon, c.Lat}
}

// Flip swaps the two axes.
func (c Coordinate) Flip() Coordinate {
	return Coordinate{Lat: c.Lon, Lon: c.Lat}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%g, %g)", c.Lat, c.Lon)
}

// FromLatsLons zips parallel latitude and longitude slices.
func FromLatsLons(lats, lons []float64) ([]Coordinate, error) {
	if len(lats) == 0 {
		return nil, newError("latitudes", lats, ErrEmpty, "no latitudes given")
	}
	if len(lats) != len(lons) {
		return nil, newError("longitudes", len(lons), ErrLengthMismatch,
			fmt.Sprintf("%d latitudes but %d longitudes", len(lats), len(lons)))
	}

	out := make([]Coordinate, len(lats))
	for i := range lats {
		out[i] = Coordinate{Lat: lats[i], Lon: lons[i]}
	}
	return out, nil
}

// FromPairs reads two-value tuples in the given order.
func FromPairs(pairs [][2]float64, order Order) ([]Coordinate, error) {
	if len(pairs) == 0 {
		return nil, newError("pairs", pairs, ErrEmpty, "no coordinate pairs given")
	}

	out := make([]Coordinate, len(pairs))
	for i, p := range pairs {
		out[i] = Coordinate{Lat: p[0], Lon: p[1]}
		if order == LonLat {
			out[i] = out[i].Flip()
		}
	}
	return out, nil
}

// FromPosition reads a GeoJSON position [lon, lat] or [lon, lat, alt].
// The altitude is dropped.
func FromPosition(p []float64) (Coordinate, error) {
	if len(p) != 2 && len(p) != 3 {
		return Coordinate{}, newError("position", p, ErrMalformed,
			fmt.Sprintf("want 2 or 3 values, got %d", len(p)))
	}
	return Coordinate{Lat: p[1], Lon: p[0]}, nil
}

// FromPositions converts a list of GeoJSON positions.
func FromPositions(ps [][]float64) ([]Coordinate, error) {
	if len(ps) == 0 {
		return nil, newError("positions", ps, ErrEmpty, "no positions given")
	}

	out := make([]Coordinate, 0, len(ps))
	for _, p := range ps {
		c, err := FromPosition(p)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// ToPosition emits c as a GeoJSON [lon, lat] position.
func ToPosition(c Coordinate) []float64 {
	return []float64{c.Lon, c.Lat}
}

// ToPositions emits every coordinate with ToPosition.
func ToPositions(cs []Coordinate) [][]float64 {
	out := make([][]float64, len(cs))
	for i, c := range cs {
		out[i] = ToPosition(c)
	}
	return out
}

// Flip swaps the axes of every coordinate into a new slice.
func Flip(cs []Coordinate) []Coordinate {
	out := make([]Coordinate, len(cs))
	for i, c := range cs {
		out[i] = c.Flip()
	}
	return out
}

// Validate checks that latitude lies in [-90, 90] and longitude in [-180, 180].
func Validate(c Coordinate) error {
	if math.IsNaN(c.Lat) || c.Lat < -90 || c.Lat > 90 {
		return newError("latitude", c.Lat, ErrOutOfRange, "must be within [-90, 90]")
	}
	if math.IsNaN(c.Lon) || c.Lon < -180 || c.Lon > 180 {
		return newError("longitude", c.Lon, ErrOutOfRange, "must be within [-180, 180]")
	}
	return nil
}

// ValidateAll validates every coordinate and reports the first failure
// with its index.
func ValidateAll(cs []Coordinate) error {
	for i, c := range cs {
		if err := Validate(c); err != nil {
			return fmt.Errorf("coordinate %d: %w", i, err)
		}
	}
	return nil
}
