// Package tiles resolves tile providers by name and builds providers from
// URL templates.
package tiles

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	sm "github.com/flopp/go-staticmaps"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/woozymasta/mapplot/internal/config"
	"github.com/woozymasta/mapplot/plot"
)

var (
	ErrUnknownProvider = errors.New("unknown tile provider")
	ErrTemplate        = errors.New("invalid tile URL template")
)

// DefaultShards are used for templates with {s} and no explicit shards.
var DefaultShards = []string{"a", "b", "c"}

// Resolve returns a built-in provider by name.
func Resolve(name string) (*sm.TileProvider, error) {
	if tp, ok := sm.GetTileProviders()[name]; ok {
		return tp, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
}

// FromTemplate builds a provider from a URL such as
// https://{s}.tile.example.org/{z}/{x}/{y}.png.
func FromTemplate(name, url, attribution string) (*sm.TileProvider, error) {
	return FromConfig(config.Provider{Name: name, URL: url, Attribution: attribution})
}

// FromConfig builds a provider from a configured template.
func FromConfig(p config.Provider) (*sm.TileProvider, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("%w: provider name is empty", ErrTemplate)
	}

	pattern, sharded, err := urlPattern(p.URL)
	if err != nil {
		return nil, fmt.Errorf("provider %s: %w", p.Name, err)
	}

	shards := p.Shards
	if sharded && len(shards) == 0 {
		shards = DefaultShards
	}

	size := p.TileSize
	if size <= 0 {
		size = 256
	}

	return &sm.TileProvider{
		Name:           p.Name,
		Attribution:    p.Attribution,
		IgnoreNotFound: p.IgnoreNotFound,
		TileSize:       size,
		URLPattern:     pattern,
		Shards:         shards,
	}, nil
}

// urlPattern turns {s}{z}{x}{y} placeholders into the indexed verbs the
// renderer formats tile URLs with.
func urlPattern(tpl string) (string, bool, error) {
	if tpl == "" {
		return "", false, fmt.Errorf("%w: empty URL", ErrTemplate)
	}
	if strings.Contains(tpl, "{tms_y}") || strings.Contains(tpl, "{-y}") {
		return "", false, fmt.Errorf("%w: TMS rows are not supported", ErrTemplate)
	}
	for _, p := range []string{"{z}", "{x}", "{y}"} {
		if !strings.Contains(tpl, p) {
			return "", false, fmt.Errorf("%w: %s is missing in %s", ErrTemplate, p, tpl)
		}
	}

	s := strings.ReplaceAll(tpl, "%", "%%")
	s = strings.NewReplacer(
		"{s}", "%[1]s",
		"{z}", "%[2]d",
		"{x}", "%[3]d",
		"{y}", "%[4]d",
	).Replace(s)

	return s, strings.Contains(tpl, "{s}"), nil
}

// URL formats the address of one tile.
func URL(tp *sm.TileProvider, z, x, y int) string {
	shard := ""
	if len(tp.Shards) > 0 {
		shard = tp.Shards[(x+y)%len(tp.Shards)]
	}
	return fmt.Sprintf(tp.URLPattern, shard, z, x, y)
}

// Cache returns an on-disk tile cache rooted at dir; an empty dir keeps
// the renderer's default user cache.
func Cache(dir string) sm.TileCache {
	if dir == "" {
		return nil
	}
	return sm.NewTileCache(dir, os.FileMode(0o755))
}

// Registry holds built-in and configured providers.
type Registry struct {
	providers map[string]*sm.TileProvider
}

// NewRegistry adds the configured providers on top of the built-in ones.
// A configured provider replaces a built-in one with the same name.
func NewRegistry(custom []config.Provider) (*Registry, error) {
	providers := make(map[string]*sm.TileProvider)
	for name, tp := range sm.GetTileProviders() {
		providers[name] = tp
	}

	for _, p := range custom {
		tp, err := FromConfig(p)
		if err != nil {
			return nil, err
		}
		if _, ok := providers[p.Name]; ok {
			log.Debug().Str("provider", p.Name).Msg("Configured provider overrides built-in")
		}
		providers[p.Name] = tp
	}

	return &Registry{providers: providers}, nil
}

// Resolve returns the provider registered under name.
func (r *Registry) Resolve(name string) (*sm.TileProvider, error) {
	if tp, ok := r.providers[name]; ok {
		return tp, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
}

// Names lists every registered provider, sorted.
func (r *Registry) Names() []string {
	names := lo.Keys(r.providers)
	slices.Sort(names)
	return names
}

// PlotConfig builds renderer settings from the file configuration using the
// named provider, or the configured default when name is empty.
func (r *Registry) PlotConfig(cfg *config.Config, name string) (plot.Config, error) {
	if name == "" {
		name = cfg.Provider
	}

	tp, err := r.Resolve(name)
	if err != nil {
		return plot.Config{}, err
	}

	return plot.Config{
		TileProvider: tp,
		Cache:        Cache(cfg.CacheDir),
		UserAgent:    cfg.UserAgent,
		Attribution:  cfg.Attribution,
		MaxZoom:      cfg.ZoomLimit,
	}, nil
}

// RenderOptions combines renderer settings with output settings.
func RenderOptions(pc plot.Config, r config.Render) plot.RenderOptions {
	return plot.RenderOptions{
		Config:  pc,
		Width:   r.Width,
		Height:  r.Height,
		Zoom:    r.Zoom,
		SetZoom: r.SetZoom,
	}
}
