package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/json"
	"github.com/woozymasta/mapplot/internal/config"
	"github.com/woozymasta/mapplot/internal/imageio"
	"github.com/woozymasta/mapplot/internal/tiles"
)

// MaxBodySize limits accepted GeoJSON documents.
const MaxBodySize = 10 << 20

const jsonMIME = "application/json"

// rendered is a cached response body.
type rendered struct {
	data   []byte
	format imageio.Format
}

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config   *config.Config
	Registry *tiles.Registry
	Client   *http.Client

	cache    *lru.Cache[uint64, rendered]
	minifier *minify.M
}

// NewServerContext prepares the provider registry and the render cache.
func NewServerContext(cfg *config.Config) (*ServerContext, error) {
	reg, err := tiles.NewRegistry(cfg.Providers)
	if err != nil {
		return nil, err
	}

	if _, err := reg.Resolve(cfg.Provider); err != nil {
		return nil, fmt.Errorf("default provider: %w", err)
	}

	cache, err := lru.New[uint64, rendered](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("render cache: %w", err)
	}

	m := minify.New()
	m.AddFunc(jsonMIME, json.Minify)

	log.Info().
		Int("providers", len(reg.Names())).
		Str("default_provider", cfg.Provider).
		Int("cache_size", cfg.CacheSize).
		Msg("Server context initialized successfully")

	return &ServerContext{
		Config:   cfg,
		Registry: reg,
		Client:   &http.Client{Timeout: 15 * time.Second},
		cache:    cache,
		minifier: m,
	}, nil
}

// Router registers every route.
func (s *ServerContext) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger)

	r.Get("/healthz", s.HandleHealth)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/api/providers", s.HandleProvidersList)
	r.Get("/api/providers/{name}", s.HandleProvider)
	r.Post("/render", s.HandleRender)

	return r
}

// Run serves handler on addr until ctx is done.
func Run(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("Web server started")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
