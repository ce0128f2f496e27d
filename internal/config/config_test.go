package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

const sample = `
provider: carto-light
cache_dir: /tmp/tiles
providers:
  - name: local
    url: http://{s}.tiles.local/{z}/{x}/{y}.png
    shards: [a, b]
render:
  width: 800
  height: 600
  format: webp
jobs:
  - name: parks
    input: parks.geojson
    output: parks.png
    format: png
    zoom: -1
  - name: roads
    input: roads.geojson
    output: roads.webp
    provider: local
    set_zoom: 12
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	is := is.New(t)

	cfg, err := Load(writeConfig(t, sample))
	is.NoErr(err)

	is.Equal(cfg.Provider, "carto-light")
	is.Equal(cfg.ZoomLimit, DefaultZoom)
	is.Equal(cfg.CacheSize, DefaultCacheSize)
	is.Equal(cfg.Render.Quality, DefaultQuality)
	is.Equal(len(cfg.Providers), 1)
	is.Equal(cfg.Providers[0].Shards, []string{"a", "b"})

	parks := cfg.Jobs[0]
	is.Equal(parks.Render.Format, "png")
	is.Equal(parks.Render.Width, 800)
	is.Equal(parks.Render.Zoom, -1)
	is.Equal(parks.Provider, "carto-light")

	roads := cfg.Jobs[1]
	is.Equal(roads.Render.Format, "webp")
	is.Equal(*roads.Render.SetZoom, 12)
	is.Equal(roads.Provider, "local")
}

func TestLoadRejectsIncompleteEntries(t *testing.T) {
	is := is.New(t)

	_, err := Load(writeConfig(t, "jobs:\n  - name: x\n    input: a.geojson\n"))
	is.True(err != nil)

	_, err = Load(writeConfig(t, "providers:\n  - name: x\n"))
	is.True(err != nil)

	_, err = Load(writeConfig(t, "render: [1, 2"))
	is.True(err != nil)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	is.True(os.IsNotExist(err))
}
