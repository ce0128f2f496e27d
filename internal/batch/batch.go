// Package batch renders many GeoJSON files with a bounded worker pool.
package batch

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/woozymasta/mapplot/internal/config"
	"github.com/woozymasta/mapplot/internal/imageio"
	"github.com/woozymasta/mapplot/internal/tiles"
	"github.com/woozymasta/mapplot/plot"
)

// DefaultConcurrency is used when Options.Concurrency is not positive.
const DefaultConcurrency = 4

// Job renders one GeoJSON file to one image file.
type Job struct {
	Name      string
	Input     string
	Output    string
	Render    plot.RenderOptions
	Quality   int
	Thumbnail int
}

// Result reports the outcome of one job.
type Result struct {
	Err      error
	Job      Job
	Duration time.Duration
	Skipped  bool
}

// Options control a batch run.
type Options struct {
	Concurrency int
	// Force re-renders outputs that already exist.
	Force bool
}

type task struct {
	job   Job
	index int
}

// Run renders every job and returns one result per job, in job order.
// Jobs not started before ctx is done report the context error.
func Run(ctx context.Context, jobs []Job, opts Options) []Result {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if concurrency > len(jobs) {
		concurrency = len(jobs)
	}

	results := make([]Result, len(jobs))
	queue := make(chan task, len(jobs))

	for i, j := range jobs {
		queue <- task{index: i, job: j}
	}
	close(queue)

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range queue {
				if err := ctx.Err(); err != nil {
					results[t.index] = Result{Job: t.job, Err: err}
					continue
				}
				results[t.index] = render(t.job, opts.Force)
			}
		}()
	}
	wg.Wait()

	return results
}

func render(j Job, force bool) Result {
	start := time.Now()
	res := Result{Job: j}

	if !force {
		if info, err := os.Stat(j.Output); err == nil && info.Size() > 0 {
			log.Debug().Str("job", j.Name).Str("output", j.Output).Msg("Output exists, skipping")
			res.Skipped = true
			return res
		}
	}

	img, err := plot.PlotGeoJSONFile(j.Input, j.Render)
	if err != nil {
		res.Err = fmt.Errorf("job %s: %w", j.Name, err)
		return res
	}

	if err := imageio.Save(j.Output, imageio.Scale(img, j.Thumbnail), j.Quality); err != nil {
		res.Err = fmt.Errorf("job %s: %w", j.Name, err)
		return res
	}

	res.Duration = time.Since(start)
	log.Info().
		Str("job", j.Name).
		Str("output", j.Output).
		Dur("duration", res.Duration).
		Msg("Map rendered")

	return res
}

// FromConfig builds jobs from the configuration file, resolving each job's
// tile provider in reg.
func FromConfig(cfg *config.Config, reg *tiles.Registry) ([]Job, error) {
	jobs := make([]Job, 0, len(cfg.Jobs))
	for i, j := range cfg.Jobs {
		pc, err := reg.PlotConfig(cfg, j.Provider)
		if err != nil {
			return nil, fmt.Errorf("job %d (%s): %w", i, j.Name, err)
		}

		name := j.Name
		if name == "" {
			name = j.Input
		}

		jobs = append(jobs, Job{
			Name:      name,
			Input:     j.Input,
			Output:    j.Output,
			Render:    tiles.RenderOptions(pc, j.Render),
			Quality:   j.Render.Quality,
			Thumbnail: j.Render.Thumbnail,
		})
	}
	return jobs, nil
}

// Failed counts results with an error.
func Failed(results []Result) int {
	return lo.CountBy(results, func(r Result) bool { return r.Err != nil })
}
