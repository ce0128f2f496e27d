// Package plot draws points, lines, polygons, circles and GeoJSON features
// onto static map images.
//
// A Map collects objects through its Add methods and renders them once.
// The Plot functions are one-call shortcuts that build a Map, add the
// input and render it.
package plot

import (
	"errors"
	"fmt"
	"image"

	sm "github.com/flopp/go-staticmaps"
	"github.com/golang/geo/s2"
	"github.com/rs/zerolog/log"
	"github.com/woozymasta/mapplot/coords"
)

// Defaults used when options leave a value unset.
const (
	DefaultWidth     = 500
	DefaultHeight    = 400
	DefaultMaxZoom   = 19
	DefaultPointSize = 10.0
	DefaultLineWidth = 2.0
)

var (
	ErrNoGeometries = errors.New("no geometries found")
	ErrRadiusUnit   = errors.New("radius unit must be meters or kilometers")
)

// Config sets up where tiles come from.
type Config struct {
	// TileProvider defaults to OpenStreetMap.
	TileProvider *sm.TileProvider
	// Cache stores downloaded tiles; nil keeps the renderer's user cache.
	Cache       sm.TileCache
	UserAgent   string
	Attribution string
	MaxZoom     int
	Offline     bool
}

// RenderOptions control the output image.
type RenderOptions struct {
	Config

	Width  int
	Height int
	// Zoom is added to the fitted zoom level.
	Zoom int
	// SetZoom replaces the fitted zoom level when not nil.
	SetZoom *int
}

func (o RenderOptions) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

// Map collects map objects and renders them onto tiles.
type Map struct {
	ctx     *sm.Context
	cfg     Config
	objects []sm.MapObject
	bounds  s2.Rect
	margin  float64
}

// NewMap returns an empty map using cfg for tiles.
func NewMap(cfg Config) *Map {
	if cfg.TileProvider == nil {
		cfg.TileProvider = sm.NewTileProviderOpenStreetMaps()
	}
	if cfg.MaxZoom <= 0 {
		cfg.MaxZoom = DefaultMaxZoom
	}

	ctx := sm.NewContext()
	ctx.SetTileProvider(cfg.TileProvider)
	if cfg.Cache != nil {
		ctx.SetCache(cfg.Cache)
	}
	if cfg.UserAgent != "" {
		ctx.SetUserAgent(cfg.UserAgent)
	}
	if cfg.Attribution != "" {
		ctx.OverrideAttribution(cfg.Attribution)
	}
	ctx.SetOnline(!cfg.Offline)

	return &Map{ctx: ctx, cfg: cfg, bounds: s2.EmptyRect()}
}

// Objects returns the objects added so far.
func (m *Map) Objects() []sm.MapObject {
	return append([]sm.MapObject(nil), m.objects...)
}

// Len is the number of objects added so far.
func (m *Map) Len() int {
	return len(m.objects)
}

// Bounds is the smallest rectangle holding every object.
func (m *Map) Bounds() s2.Rect {
	return m.bounds
}

// Clear removes every object.
func (m *Map) Clear() {
	m.ctx.ClearObjects()
	m.objects = nil
	m.bounds = s2.EmptyRect()
	m.margin = 0
}

// add registers obj; margin is the pixel extent it draws beyond its bounds.
func (m *Map) add(obj sm.MapObject, margin float64) {
	m.ctx.AddObject(obj)
	m.objects = append(m.objects, obj)
	m.bounds = m.bounds.Union(obj.Bounds())
	if margin > m.margin {
		m.margin = margin
	}
}

// Render draws every object. The zoom level is fitted to the objects and
// the window, then shifted by opts.Zoom or replaced by opts.SetZoom.
func (m *Map) Render(opts RenderOptions) (image.Image, error) {
	if len(m.objects) == 0 {
		return nil, coords.Empty("map objects")
	}

	w, h := opts.size()
	zoom, center := m.view(w, h, opts)

	m.ctx.SetSize(w, h)
	m.ctx.SetZoom(zoom)
	m.ctx.SetCenter(center)

	log.Debug().
		Int("objects", len(m.objects)).
		Int("width", w).
		Int("height", h).
		Int("zoom", zoom).
		Str("provider", m.cfg.TileProvider.Name).
		Msg("Rendering map")

	img, err := m.ctx.Render()
	if err != nil {
		return nil, fmt.Errorf("render map: %w", err)
	}
	return img, nil
}

// withMap runs add on a fresh map and renders the result.
func withMap(opts RenderOptions, add func(m *Map) error) (image.Image, error) {
	m := NewMap(opts.Config)
	if err := add(m); err != nil {
		return nil, err
	}
	return m.Render(opts)
}

func latLngs(cs []coords.Coordinate) []s2.LatLng {
	out := make([]s2.LatLng, len(cs))
	for i, c := range cs {
		out[i] = c.LatLng()
	}
	return out
}

func orDefault(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}
