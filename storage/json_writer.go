package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"vacuum-research/models"
)

// JSONWriter writes records into a tree partitioned by source tag and UTC
// scrape date: <root>/<tag>/<YYYY-MM-DD>/<fileName>.
type JSONWriter struct {
	root string
}

// NewJSONWriter creates a JSONWriter rooted at root.
func NewJSONWriter(root string) *JSONWriter {
	return &JSONWriter{root: root}
}

// RecordDir is the directory a record is written into.
func (w *JSONWriter) RecordDir(rec *models.CanonicalRecord) string {
	return filepath.Join(w.root, rec.SourceTag, rec.ScrapedAt.UTC().Format("2006-01-02"))
}

// WriteRecord writes rec as 4-space indented UTF-8 JSON.
func (w *JSONWriter) WriteRecord(rec *models.CanonicalRecord, fileName string) (string, error) {
	dir := w.RecordDir(rec)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("json: create output dir: %w", err)
	}

	data, err := marshal(rec, "    ")
	if err != nil {
		return "", fmt.Errorf("json: encode record: %w", err)
	}

	path := filepath.Join(dir, fileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("json: write %q: %w", path, err)
	}
	return path, nil
}

// WriteCorpus writes posts as one 2-space indented JSON array. Non-ASCII
// text and HTML characters are written as-is.
func (w *JSONWriter) WriteCorpus(path string, posts []*models.DiscussionPost) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("json: create corpus dir: %w", err)
		}
	}
	if posts == nil {
		posts = []*models.DiscussionPost{}
	}

	data, err := marshal(posts, "  ")
	if err != nil {
		return fmt.Errorf("json: encode corpus: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("json: write %q: %w", path, err)
	}
	return nil
}

func marshal(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
