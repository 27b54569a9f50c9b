package services

import (
	"context"
	"errors"
	"fmt"

	"vacuum-research/fetch"
	"vacuum-research/models"
	"vacuum-research/scraper"
	"vacuum-research/storage"
	"vacuum-research/utils"
)

// ErrNoResult marks a target that was reached but produced nothing to keep.
var ErrNoResult = errors.New("no result")

// Target extracts the raw fields of one page for a single source.
type Target interface {
	Source() models.Source
	Scrape(ctx context.Context, url string) (*models.ExtractedFields, error)
}

// Job pairs a target with the page to scrape.
type Job struct {
	Target Target
	URL    string
}

// Outcome reports what happened to one job. Path is set only on success.
type Outcome struct {
	URL    string
	Source models.Source
	Path   string
	Err    error
}

// Collector runs jobs one after another, normalizes each result and hands
// it to the record writer. A failing job never stops the ones after it.
type Collector struct {
	normalizer *Normalizer
	writer     storage.RecordWriter
	logger     *utils.Logger
}

func NewCollector(normalizer *Normalizer, writer storage.RecordWriter, logger *utils.Logger) *Collector {
	return &Collector{normalizer: normalizer, writer: writer, logger: logger}
}

// Collect processes jobs in order and returns one Outcome per job.
func (c *Collector) Collect(ctx context.Context, jobs []Job) []Outcome {
	outcomes := make([]Outcome, 0, len(jobs))
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			outcomes = append(outcomes, Outcome{URL: job.URL, Source: job.Target.Source(), Err: err})
			continue
		}
		out := c.collectOne(ctx, job)
		c.report(out)
		outcomes = append(outcomes, out)
	}
	return outcomes
}

func (c *Collector) collectOne(ctx context.Context, job Job) (out Outcome) {
	src := job.Target.Source()
	out = Outcome{URL: job.URL, Source: src}

	defer func() {
		if r := recover(); r != nil {
			out.Path = ""
			out.Err = fmt.Errorf("panic while scraping %s: %v", job.URL, r)
		}
	}()

	fields, err := job.Target.Scrape(ctx, job.URL)
	if err != nil {
		out.Err = err
		return out
	}
	if fields == nil {
		out.Err = ErrNoResult
		return out
	}

	rec, err := c.normalizer.Normalize(fields, src, job.URL)
	if err != nil {
		out.Err = err
		return out
	}

	path, err := c.writer.WriteRecord(rec, FileName(rec))
	if err != nil {
		out.Err = fmt.Errorf("write record: %w", err)
		return out
	}
	out.Path = path
	return out
}

func (c *Collector) report(out Outcome) {
	tag := out.Source.Tag

	var navErr *fetch.NavigationError
	var challenge *scraper.ChallengeError

	switch {
	case out.Err == nil:
		c.logger.Info("[%s] Saved %s", tag, out.Path)
	case errors.As(out.Err, &challenge):
		if challenge.Snapshot != "" {
			c.logger.Error("[%s] Challenge page at %s, screenshot saved to %s", tag, out.URL, challenge.Snapshot)
		} else {
			c.logger.Error("[%s] Challenge page at %s, no screenshot could be taken", tag, out.URL)
		}
	case errors.As(out.Err, &navErr):
		c.logger.Error("[%s] Could not load %s: %v", tag, out.URL, navErr.Err)
	case errors.Is(out.Err, scraper.ErrExtractionFailed), errors.Is(out.Err, ErrMissingModelName):
		c.logger.Error("[%s] No product title at %s, page skipped", tag, out.URL)
	case errors.Is(out.Err, ErrNoResult):
		c.logger.Warn("[%s] Nothing to save for %s", tag, out.URL)
	default:
		c.logger.Error("[%s] %s failed: %v", tag, out.URL, out.Err)
	}
}
