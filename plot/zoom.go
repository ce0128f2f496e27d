package plot

import (
	"math"

	"github.com/golang/geo/s2"
	"github.com/woozymasta/mapplot/geo"
)

const (
	// zoom used when all objects sit on a single point
	pointZoom   = 15
	baseMargin  = 4.0
	maxFitZoom  = 30
	defaultTile = 256
)

// view picks zoom and center for a w x h window.
func (m *Map) view(w, h int, opts RenderOptions) (int, s2.LatLng) {
	tileSize := m.cfg.TileProvider.TileSize
	if tileSize <= 0 {
		tileSize = defaultTile
	}

	zoom := FitZoom(m.bounds, w, h, tileSize, m.margin) + opts.Zoom
	if opts.SetZoom != nil {
		zoom = *opts.SetZoom
	}

	return clampZoom(zoom, m.cfg.MaxZoom), Center(m.bounds)
}

func clampZoom(zoom, max int) int {
	if zoom < 0 {
		return 0
	}
	if zoom > max {
		return max
	}
	return zoom
}

// FitZoom returns the largest zoom level at which bounds fit into a
// w x h pixel window, keeping margin extra pixels free on every side.
func FitZoom(bounds s2.Rect, w, h, tileSize int, margin float64) int {
	if bounds.IsEmpty() || bounds.IsPoint() {
		return pointZoom
	}

	margin += baseMargin
	tilesW := (float64(w) - 2.0*margin) / float64(tileSize)
	tilesH := (float64(h) - 2.0*margin) / float64(tileSize)

	dx, dy := extent(bounds)
	for zoom := 1; zoom < maxFitZoom; zoom++ {
		tiles := float64(uint(1) << uint(zoom))
		if dx*tiles > tilesW || dy*tiles > tilesH {
			return zoom - 1
		}
	}
	return maxFitZoom - 1
}

// extent is the size of bounds in unit Mercator space.
func extent(b s2.Rect) (dx, dy float64) {
	dx = geo.MercatorX(b.Hi().Lng.Degrees()) - geo.MercatorX(b.Lo().Lng.Degrees())
	// bounds crossing the antimeridian
	for dx < 0 {
		dx++
	}
	dy = math.Abs(geo.MercatorY(b.Hi().Lat.Degrees()) - geo.MercatorY(b.Lo().Lat.Degrees()))
	return dx, dy
}

// Center is the middle of bounds in Mercator space, which is where the
// rendered image is centered.
func Center(b s2.Rect) s2.LatLng {
	if b.IsEmpty() {
		return s2.LatLngFromDegrees(0, 0)
	}

	dx, _ := extent(b)
	x := math.Mod(geo.MercatorX(b.Lo().Lng.Degrees())+dx/2, 1)
	y := (geo.MercatorY(b.Lo().Lat.Degrees()) + geo.MercatorY(b.Hi().Lat.Degrees())) / 2

	lat, lon := geo.MercatorToLatLon(x, y)
	return s2.LatLngFromDegrees(lat, lon)
}
