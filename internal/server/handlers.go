// Package server renders GeoJSON documents to map images over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/cast"
	"github.com/woozymasta/mapplot/coords"
	"github.com/woozymasta/mapplot/geo"
	"github.com/woozymasta/mapplot/internal/config"
	"github.com/woozymasta/mapplot/internal/imageio"
	"github.com/woozymasta/mapplot/internal/tiles"
	"github.com/woozymasta/mapplot/palette"
	"github.com/woozymasta/mapplot/plot"
)

// MaxImageSide bounds the requested width and height.
const MaxImageSide = 4096

// inputErrors are failures caused by the request rather than the renderer.
var inputErrors = []error{
	coords.ErrEmpty,
	coords.ErrMalformed,
	coords.ErrOutOfRange,
	coords.ErrLengthMismatch,
	coords.ErrUnsupported,
	geo.ErrInvalidJSON,
	geo.ErrMissingType,
	geo.ErrUnsupportedType,
	plot.ErrNoGeometries,
	palette.ErrInvalidColor,
}

type renderRequest struct {
	provider string
	format   imageio.Format
	render   config.Render
}

// String is the canonical form of the request options used in cache keys.
func (q renderRequest) String() string {
	setZoom := "-"
	if q.render.SetZoom != nil {
		setZoom = strconv.Itoa(*q.render.SetZoom)
	}
	return fmt.Sprintf("%s|%s|%d|%d|%d|%s|%d|%d",
		q.provider, q.format,
		q.render.Width, q.render.Height, q.render.Zoom, setZoom,
		q.render.Quality, q.render.Thumbnail)
}

type providerInfo struct {
	Name        string `json:"name"`
	Attribution string `json:"attribution,omitempty"`
	Error       string `json:"error,omitempty"`
	TileSize    int    `json:"tile_size"`
	Probed      bool   `json:"probed"`
	OK          bool   `json:"ok"`
}

// HandleHealth reports liveness.
func (s *ServerContext) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// HandleProvidersList serves the names of every tile provider.
func (s *ServerContext) HandleProvidersList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Registry.Names())
}

// HandleProvider describes one provider; ?probe=true also downloads its
// top-level tile.
func (s *ServerContext) HandleProvider(w http.ResponseWriter, r *http.Request) {
	tp, err := s.Registry.Resolve(chi.URLParam(r, "name"))
	if err != nil {
		httpError(w, http.StatusNotFound, err)
		return
	}

	info := providerInfo{
		Name:        tp.Name,
		Attribution: tp.Attribution,
		TileSize:    tp.TileSize,
		OK:          true,
	}

	if cast.ToBool(r.URL.Query().Get("probe")) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		info.Probed = true
		if err := tiles.Probe(ctx, s.Client, tp, 0, 0, 0); err != nil {
			info.OK = false
			info.Error = err.Error()
			log.Warn().Err(err).Str("provider", tp.Name).Msg("Provider probe failed")
		}
	}

	writeJSON(w, http.StatusOK, info)
}

// HandleRender renders the GeoJSON request body. Responses are cached by a
// hash of the minified body and the render options.
func (s *ServerContext) HandleRender(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodySize))
	if err != nil {
		httpError(w, http.StatusRequestEntityTooLarge, err)
		return
	}

	req, err := parseRenderQuery(r.URL.Query(), s.Config.Render, s.Config.Provider)
	if err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}

	doc, err := s.minifier.Bytes(jsonMIME, body)
	if err != nil {
		err = fmt.Errorf("%w: %v", geo.ErrInvalidJSON, err)
		httpError(w, renderStatus(err), err)
		return
	}

	key := cacheKey(doc, req)
	etag := fmt.Sprintf(`"%016x"`, key)

	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if hit, ok := s.cache.Get(key); ok {
		incCache("hit")
		writeImage(w, hit, etag, "HIT")
		return
	}
	incCache("miss")

	pc, err := s.Registry.PlotConfig(s.Config, req.provider)
	if err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}

	start := time.Now()
	img, err := plot.PlotGeoJSON(doc, tiles.RenderOptions(pc, req.render))
	if err != nil {
		httpError(w, renderStatus(err), err)
		return
	}

	data, err := imageio.Bytes(imageio.Scale(img, req.render.Thumbnail), req.format, req.render.Quality)
	if err != nil {
		httpError(w, http.StatusInternalServerError, err)
		return
	}
	observeRender(req.provider, string(req.format), time.Since(start).Seconds())

	out := rendered{data: data, format: req.format}
	s.cache.Add(key, out)
	writeImage(w, out, etag, "MISS")
}

func parseRenderQuery(q url.Values, def config.Render, provider string) (renderRequest, error) {
	req := renderRequest{render: def, provider: provider}

	ints := []struct {
		dst *int
		key string
	}{
		{&req.render.Width, "width"},
		{&req.render.Height, "height"},
		{&req.render.Zoom, "zoom"},
		{&req.render.Quality, "quality"},
		{&req.render.Thumbnail, "thumbnail"},
	}
	for _, f := range ints {
		v := q.Get(f.key)
		if v == "" {
			continue
		}
		n, err := cast.ToIntE(v)
		if err != nil {
			return req, fmt.Errorf("query %s: %w", f.key, err)
		}
		*f.dst = n
	}

	if v := q.Get("set_zoom"); v != "" {
		n, err := cast.ToIntE(v)
		if err != nil {
			return req, fmt.Errorf("query set_zoom: %w", err)
		}
		req.render.SetZoom = &n
	}

	if req.render.Width > MaxImageSide || req.render.Height > MaxImageSide ||
		req.render.Width < 0 || req.render.Height < 0 {
		return req, fmt.Errorf("image size must be within 0..%d", MaxImageSide)
	}

	if v := q.Get("provider"); v != "" {
		req.provider = v
	}
	if v := q.Get("format"); v != "" {
		req.render.Format = v
	}

	format, err := imageio.ParseFormat(req.render.Format)
	if err != nil {
		return req, err
	}
	req.format = format

	return req, nil
}

func cacheKey(doc []byte, req renderRequest) uint64 {
	d := xxhash.New()
	_, _ = d.Write(doc)
	_, _ = d.WriteString("\x00" + req.String())
	return d.Sum64()
}

func renderStatus(err error) int {
	if lo.ContainsBy(inputErrors, func(target error) bool { return errors.Is(err, target) }) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadGateway
}

func writeImage(w http.ResponseWriter, out rendered, etag, cacheStatus string) {
	w.Header().Set("Content-Type", out.format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(out.data)))
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")
	w.Header().Set("X-Cache", cacheStatus)
	_, _ = w.Write(out.data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, status int, err error) {
	log.Debug().Err(err).Int("status", status).Msg("Request failed")
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
