package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/woozymasta/mapplot/internal/batch"
	"github.com/woozymasta/mapplot/internal/config"
	"github.com/woozymasta/mapplot/internal/logger"
	"github.com/woozymasta/mapplot/internal/tiles"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile  string   `short:"c" long:"config"      env:"CONFIG_FILE" description:"Path to configuration file" default:"config.yaml"`
	Limit       []string `short:"l" long:"limit"       env:"LIMIT_NAMES" description:"Limit processing to specific job names"`
	Concurrency int      `short:"p" long:"concurrency" env:"CONCURRENCY" description:"Concurrency" default:"4"`
	Force       bool     `short:"f" long:"force"       description:"Force overwrite of existing files"`
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

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	reg, err := tiles.NewRegistry(cfg.Providers)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid tile providers")
	}

	jobs, err := batch.FromConfig(cfg, reg)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid jobs")
	}

	// Filter jobs if limit is set
	if len(opts.Limit) > 0 {
		available := make(map[string]batch.Job, len(jobs))
		for _, j := range jobs {
			available[j.Name] = j
		}

		seen := make(map[string]bool)
		selected := make([]batch.Job, 0, len(opts.Limit))
		for _, name := range opts.Limit {
			if seen[name] {
				continue
			}
			seen[name] = true

			if j, ok := available[name]; ok {
				selected = append(selected, j)
			} else {
				log.Error().
					Str("name", name).
					Msg("Job specified in --limit not found in configuration")
			}
		}
		jobs = selected
	}

	log.Info().
		Int("jobs_total", len(cfg.Jobs)).
		Int("jobs_queued", len(jobs)).
		Int("concurrency", opts.Concurrency).
		Msg("Starting batch")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results := batch.Run(ctx, jobs, batch.Options{Concurrency: opts.Concurrency, Force: opts.Force})
	for _, r := range results {
		if r.Err != nil {
			log.Error().Err(r.Err).Str("job", r.Job.Name).Msg("Job failed")
		}
	}

	failed := batch.Failed(results)
	if failed > 0 {
		log.Error().Int("failed", failed).Msg("Batch finished with errors")
		stop()
		os.Exit(1)
	}

	log.Info().Msg("Batch finished successfully")
}
