package tiles

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matryer/is"
	"github.com/woozymasta/mapplot/internal/config"
)

func TestFromTemplate(t *testing.T) {
	is := is.New(t)

	tp, err := FromTemplate("local", "https://{s}.tiles.local/{z}/{x}/{y}.png?fmt=%20", "(c) local")
	is.NoErr(err)
	is.Equal(tp.URLPattern, "https://%[1]s.tiles.local/%[2]d/%[3]d/%[4]d.png?fmt=%%20")
	is.Equal(tp.Shards, DefaultShards)
	is.Equal(tp.TileSize, 256)
	is.Equal(tp.Attribution, "(c) local")

	is.Equal(URL(tp, 3, 1, 2), "https://a.tiles.local/3/1/2.png?fmt=%20")
	is.Equal(URL(tp, 3, 1, 1), "https://c.tiles.local/3/1/1.png?fmt=%20")
}

func TestFromTemplateRejectsBadTemplates(t *testing.T) {
	is := is.New(t)

	for _, url := range []string{
		"",
		"https://tiles.local/{z}/{x}.png",
		"https://tiles.local/{z}/{x}/{tms_y}.png",
	} {
		_, err := FromTemplate("x", url, "")
		is.True(errors.Is(err, ErrTemplate))
	}

	_, err := FromTemplate("", "https://tiles.local/{z}/{x}/{y}.png", "")
	is.True(errors.Is(err, ErrTemplate))
}

func TestRegistry(t *testing.T) {
	is := is.New(t)

	reg, err := NewRegistry([]config.Provider{
		{Name: "local", URL: "http://tiles.local/{z}/{x}/{y}.png", TileSize: 512},
	})
	is.NoErr(err)

	tp, err := reg.Resolve("local")
	is.NoErr(err)
	is.Equal(tp.TileSize, 512)
	is.Equal(len(tp.Shards), 0)

	_, err = reg.Resolve("osm")
	is.NoErr(err)

	_, err = reg.Resolve("nowhere")
	is.True(errors.Is(err, ErrUnknownProvider))

	names := reg.Names()
	is.True(len(names) > 1)
	for i := 1; i < len(names); i++ {
		is.True(names[i-1] < names[i])
	}
}

func TestPlotConfigUsesDefaults(t *testing.T) {
	is := is.New(t)

	cfg := &config.Config{CacheDir: t.TempDir(), UserAgent: "mapplot-test"}
	cfg.ApplyDefaults()

	reg, err := NewRegistry(nil)
	is.NoErr(err)

	pc, err := reg.PlotConfig(cfg, "")
	is.NoErr(err)
	is.Equal(pc.TileProvider.Name, "osm")
	is.Equal(pc.MaxZoom, config.DefaultZoom)
	is.True(pc.Cache != nil)
	is.Equal(pc.UserAgent, "mapplot-test")

	is.True(Cache("") == nil)

	zoom := 4
	opts := RenderOptions(pc, config.Render{Width: 10, Height: 20, SetZoom: &zoom})
	is.Equal(opts.Width, 10)
	is.Equal(*opts.SetZoom, 4)
}

func TestProbe(t *testing.T) {
	is := is.New(t)

	tile := func(size int) []byte {
		var buf bytes.Buffer
		_ = png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, size, size)))
		return buf.Bytes()
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/0/0/0.png":
			_, _ = w.Write(tile(256))
		case "/1/0/0.png":
			_, _ = w.Write(tile(1))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	tp, err := FromTemplate("test", srv.URL+"/{z}/{x}/{y}.png", "")
	is.NoErr(err)

	ctx := context.Background()
	is.NoErr(Probe(ctx, srv.Client(), tp, 0, 0, 0))
	is.True(errors.Is(Probe(ctx, srv.Client(), tp, 1, 0, 0), ErrEmptyTile))
	is.True(errors.Is(Probe(ctx, srv.Client(), tp, 2, 0, 0), ErrTileNotFound))
}
