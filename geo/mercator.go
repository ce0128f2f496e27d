package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
	"github.com/paulmach/orb/project"
)

// MaxLat is the latitude limit of the square Web Mercator world, the same
// bound maptile.Fraction applies.
const MaxLat = 85.0511

// half the width of the projected world in meters
const halfWorld = orb.EarthRadius * math.Pi

// MercatorX maps longitude [-180, 180] to [0, 1].
func MercatorX(lon float64) float64 {
	return maptile.Fraction(orb.Point{lon, 0}, 0).X()
}

// MercatorY maps latitude to [0, 1] with north at 0, matching tile rows.
// Latitudes beyond MaxLat are clamped.
func MercatorY(lat float64) float64 {
	return maptile.Fraction(orb.Point{0, clampLat(lat)}, 0).Y()
}

// MercatorToLatLon is the inverse of MercatorX and MercatorY. The unit
// square is scaled to EPSG:3857 meters and unprojected.
func MercatorToLatLon(x, y float64) (lat, lon float64) {
	p := project.Mercator.ToWGS84(orb.Point{
		(2*x - 1) * halfWorld,
		(1 - 2*y) * halfWorld,
	})
	return clampLat(p.Lat()), p.Lon()
}

func clampLat(lat float64) float64 {
	return math.Max(-MaxLat, math.Min(MaxLat, lat))
}
