package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vacuum-research/models"
)

func TestWriteRecordPartitionsBySourceAndUTCDate(t *testing.T) {
	root := t.TempDir()
	w := NewJSONWriter(root)

	// 23:30 in UTC-5 is already the next day in UTC.
	scraped := time.Date(2026, 1, 31, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))
	price := 499.0
	rec := &models.CanonicalRecord{
		ModelName:         "Eufy X10",
		Source:            "Amazon",
		SourceTag:         "amazon",
		ScrapedAt:         scraped,
		ScrapedTimestamp:  scraped.UTC().Format(time.RFC3339),
		ManufacturerSpecs: &models.ManufacturerSpecs{Price: &price},
	}

	path, err := w.WriteRecord(rec, "eufy_x10_amazon.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "amazon", "2026-02-01", "eufy_x10_amazon.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n    \"model_name\": \"Eufy X10\"")

	var decoded models.CanonicalRecord
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 499.0, *decoded.ManufacturerSpecs.Price)
}

func TestWriteCorpusKeepsUnicodeUnescaped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "vacuum_discussions.json")
	w := NewJSONWriter("")

	err := w.WriteCorpus(path, []*models.DiscussionPost{{
		ID:       "abc",
		Title:    "Roborock vs Dreame — which one? 🤖 <3 & more",
		Comments: []models.Comment{},
	}})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	s := string(data)
	assert.Contains(t, s, "— which one? 🤖 <3 & more")
	assert.True(t, strings.HasPrefix(s, "[\n  {"))
}

func TestWriteCorpusEmptyIsArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, NewJSONWriter("").WriteCorpus(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestCSVWriterReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "brand_sentiment.csv")
	w, err := NewCSVWriter(path)
	require.NoError(t, err)

	err = w.WriteReport(&models.BrandSentimentReport{
		Brands:   []string{"roomba", "eufy"},
		Mentions: map[string]int{"roomba": 3, "eufy": 0},
		Sentiment: map[string]models.SentimentCounts{
			"roomba": {Positive: 2, Negative: 1},
			"eufy":   {},
		},
	})
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "brand,mentions,positive,negative,neutral\nroomba,3,2,1,0\neufy,0,0,0,0\n", string(data))
}
