package cmd

import (
	"context"
	"fmt"

	"vacuum-research/services"
	"vacuum-research/storage"
)

// collect scrapes every job, writes the records under OUTPUT_DIR and fails
// only when not a single job produced a record.
func collect(ctx context.Context, jobs []services.Job) error {
	if len(jobs) == 0 {
		return fmt.Errorf("no URLs to scrape")
	}

	collector := services.NewCollector(
		services.NewNormalizer(logger),
		storage.NewJSONWriter(cfg.OutputDir),
		logger,
	)
	outcomes := collector.Collect(ctx, jobs)

	saved := 0
	for _, o := range outcomes {
		if o.Err == nil {
			saved++
		}
	}
	logger.Info("[collector] Saved %d of %d pages to %s", saved, len(outcomes), cfg.OutputDir)
	if saved == 0 {
		return fmt.Errorf("none of the %d pages produced a record", len(outcomes))
	}
	return nil
}

func jobsFor(target services.Target, urls []string) []services.Job {
	jobs := make([]services.Job, 0, len(urls))
	for _, u := range urls {
		if u == "" {
			continue
		}
		jobs = append(jobs, services.Job{Target: target, URL: u})
	}
	return jobs
}
