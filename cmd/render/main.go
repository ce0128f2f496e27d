package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/woozymasta/mapplot/internal/config"
	"github.com/woozymasta/mapplot/internal/imageio"
	"github.com/woozymasta/mapplot/internal/logger"
	"github.com/woozymasta/mapplot/internal/tiles"
	"github.com/woozymasta/mapplot/plot"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config"    env:"CONFIG_FILE"   description:"Optional configuration file with providers and render defaults"`
	Input      string `short:"i" long:"in"        description:"Input GeoJSON file. Reads from stdin if empty"`
	Output     string `short:"o" long:"out"       description:"Output image (.png, .jpg or .webp)" required:"true"`
	Provider   string `short:"t" long:"provider"  env:"TILE_PROVIDER" description:"Tile provider name"`
	CacheDir   string `short:"d" long:"cache-dir" env:"TILE_CACHE"    description:"Tile cache directory"`
	Width      int    `short:"W" long:"width"     description:"Image width (default 500)"`
	Height     int    `short:"H" long:"height"    description:"Image height (default 400)"`
	Zoom       int    `short:"z" long:"zoom"      description:"Added to the fitted zoom level"`
	SetZoom    int    `short:"Z" long:"set-zoom"  description:"Fixed zoom level, negative fits the data" default:"-1"`
	Thumbnail  int    `long:"thumbnail"           description:"Scale the output to this width"`
	Quality    int    `short:"q" long:"quality"   description:"JPEG/WebP quality (default 85)"`
	List       bool   `short:"l" long:"list"      description:"List tile providers and exit"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg := &config.Config{}
	if opts.ConfigFile != "" {
		var err error
		if cfg, err = config.Load(opts.ConfigFile); err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
	}
	if opts.CacheDir != "" {
		cfg.CacheDir = opts.CacheDir
	}
	cfg.ApplyDefaults()

	reg, err := tiles.NewRegistry(cfg.Providers)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid tile providers")
	}

	if opts.List {
		fmt.Println(strings.Join(reg.Names(), "\n"))
		return
	}

	// Read Input
	var data []byte
	if opts.Input != "" {
		data, err = os.ReadFile(opts.Input)
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read input")
	}

	pc, err := reg.PlotConfig(cfg, opts.Provider)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to resolve tile provider")
	}

	render := config.Render{
		Width:     opts.Width,
		Height:    opts.Height,
		Zoom:      opts.Zoom,
		Quality:   opts.Quality,
		Thumbnail: opts.Thumbnail,
	}.Merge(cfg.Render)
	if opts.SetZoom >= 0 {
		render.SetZoom = &opts.SetZoom
	}

	img, err := plot.PlotGeoJSON(data, tiles.RenderOptions(pc, render))
	if err != nil {
		log.Fatal().Err(err).Str("input", opts.Input).Msg("Failed to render map")
	}

	if err := imageio.Save(opts.Output, imageio.Scale(img, render.Thumbnail), render.Quality); err != nil {
		log.Fatal().Err(err).Msg("Failed to save image")
	}

	log.Info().
		Str("output", opts.Output).
		Str("provider", pc.TileProvider.Name).
		Msg("Map rendered")
}
