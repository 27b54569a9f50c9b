package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"vacuum-research/models"
)

// CSVWriter writes brand sentiment reports as CSV, one row per brand in
// vocabulary order.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)

	// Write header
	if err := w.Write([]string{"brand", "mentions", "positive", "negative", "neutral"}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// WriteReport appends one row per vocabulary brand.
func (c *CSVWriter) WriteReport(r *models.BrandSentimentReport) error {
	for _, brand := range r.Brands {
		s := r.Sentiment[brand]
		row := []string{
			brand,
			strconv.Itoa(r.Mentions[brand]),
			strconv.Itoa(s.Positive),
			strconv.Itoa(s.Negative),
			strconv.Itoa(s.Neutral),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
