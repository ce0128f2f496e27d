// Package config handles configuration loading and shared data structures.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	Attribution string     `yaml:"attribution,omitempty" json:"attribution,omitempty"`
	Provider    string     `yaml:"provider,omitempty" json:"provider,omitempty"`
	CacheDir    string     `yaml:"cache_dir,omitempty" json:"-"`
	UserAgent   string     `yaml:"user_agent,omitempty" json:"-"`
	Providers   []Provider `yaml:"providers,omitempty" json:"providers,omitempty"`
	Jobs        []Job      `yaml:"jobs,omitempty" json:"-"`
	Render      Render     `yaml:"render" json:"render"`
	ZoomLimit   int        `yaml:"zoom,omitempty" json:"zoom,omitempty"`
	CacheSize   int        `yaml:"cache_size,omitempty" json:"-"` // rendered images kept by the server
}

// Provider is a tile source defined by a URL template with {s}, {z}, {x},
// {y} or {tms_y} placeholders.
type Provider struct {
	Name           string   `yaml:"name" json:"name"`
	URL            string   `yaml:"url" json:"-"`
	Attribution    string   `yaml:"attribution,omitempty" json:"attribution,omitempty"`
	Shards         []string `yaml:"shards,omitempty" json:"-"`
	TileSize       int      `yaml:"tile_size,omitempty" json:"tile_size,omitempty"`
	IgnoreNotFound bool     `yaml:"ignore_not_found,omitempty" json:"-"`
}

// Render holds output defaults, overridable per job and per request.
type Render struct {
	SetZoom   *int   `yaml:"set_zoom,omitempty" json:"set_zoom,omitempty"`
	Format    string `yaml:"format,omitempty" json:"format,omitempty"`
	Width     int    `yaml:"width,omitempty" json:"width,omitempty"`
	Height    int    `yaml:"height,omitempty" json:"height,omitempty"`
	Zoom      int    `yaml:"zoom,omitempty" json:"zoom,omitempty"`
	Quality   int    `yaml:"quality,omitempty" json:"quality,omitempty"`
	Thumbnail int    `yaml:"thumbnail,omitempty" json:"thumbnail,omitempty"` // output width after scaling, 0 keeps size
}

// Job renders one GeoJSON file.
type Job struct {
	Render   Render `yaml:",inline" json:"render"`
	Name     string `yaml:"name" json:"name"`
	Input    string `yaml:"input" json:"input"`
	Output   string `yaml:"output" json:"output"`
	Provider string `yaml:"provider,omitempty" json:"provider,omitempty"`
}

// Defaults for values left empty in the file.
const (
	DefaultProvider  = "osm"
	DefaultFormat    = "png"
	DefaultQuality   = 85
	DefaultZoom      = 19
	DefaultCacheSize = 128
)

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &cfg, nil
}

// ApplyDefaults fills empty settings.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = DefaultProvider
	}
	if c.ZoomLimit <= 0 {
		c.ZoomLimit = DefaultZoom
	}
	if c.CacheSize <= 0 {
		c.CacheSize = DefaultCacheSize
	}
	c.Render = c.Render.Merge(Render{Format: DefaultFormat, Quality: DefaultQuality})

	for i := range c.Jobs {
		c.Jobs[i].Render = c.Jobs[i].Render.Merge(c.Render)
		if c.Jobs[i].Provider == "" {
			c.Jobs[i].Provider = c.Provider
		}
	}
}

// Validate checks settings the loader cannot default.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Providers))
	for i, p := range c.Providers {
		if p.Name == "" || p.URL == "" {
			return fmt.Errorf("provider %d: name and url are required", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("provider %q defined twice", p.Name)
		}
		seen[p.Name] = true
	}

	for i, j := range c.Jobs {
		if j.Input == "" || j.Output == "" {
			return fmt.Errorf("job %d (%s): input and output are required", i, j.Name)
		}
	}
	return nil
}

// Merge returns r with its empty fields taken from def.
func (r Render) Merge(def Render) Render {
	if r.SetZoom == nil {
		r.SetZoom = def.SetZoom
	}
	if r.Format == "" {
		r.Format = def.Format
	}
	if r.Width <= 0 {
		r.Width = def.Width
	}
	if r.Height <= 0 {
		r.Height = def.Height
	}
	if r.Zoom == 0 {
		r.Zoom = def.Zoom
	}
	if r.Quality <= 0 {
		r.Quality = def.Quality
	}
	if r.Thumbnail <= 0 {
		r.Thumbnail = def.Thumbnail
	}
	return r
}
