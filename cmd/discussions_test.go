package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vacuum-research/config"
	"vacuum-research/models"
	"vacuum-research/services"
	"vacuum-research/utils"
)

type memCorpus struct {
	path  string
	posts []*models.DiscussionPost
	err   error
}

func (m *memCorpus) WriteCorpus(path string, posts []*models.DiscussionPost) error {
	m.path, m.posts = path, posts
	return m.err
}

type memReports struct {
	reports []*models.BrandSentimentReport
}

func (m *memReports) WriteReport(r *models.BrandSentimentReport) error {
	m.reports = append(m.reports, r)
	return nil
}

func (m *memReports) Close() error { return nil }

type positiveScorer struct{}

func (positiveScorer) Compound(string) float64 { return 0.8 }

func setupDiscussionGlobals(t *testing.T) {
	cfg = &config.Config{Brands: []string{"roomba", "eufy"}}
	logger = utils.NewNopLogger()
	t.Cleanup(func() { cfg, logger = nil, nil })
}

func TestPublishDiscussions(t *testing.T) {
	setupDiscussionGlobals(t)

	posts := []*models.DiscussionPost{{ID: "a", Title: "My roomba is a great little robot"}}
	corpus := &memCorpus{}
	reports := &memReports{}
	var out bytes.Buffer

	err := publishDiscussions(&out, posts, corpus, "corpus.json", reports,
		services.NewSentimentAggregator(positiveScorer{}, logger))
	require.NoError(t, err)

	assert.Equal(t, "corpus.json", corpus.path)
	assert.Equal(t, posts, corpus.posts)
	require.Len(t, reports.reports, 1)
	assert.Equal(t, 1, reports.reports[0].Mentions["roomba"])
	assert.Equal(t, 0, reports.reports[0].Mentions["eufy"])
	assert.True(t, strings.Contains(strings.ToLower(out.String()), "roomba"))
}

func TestPublishDiscussionsStopsOnCorpusFailure(t *testing.T) {
	setupDiscussionGlobals(t)

	corpus := &memCorpus{err: errors.New("read-only fs")}
	reports := &memReports{}

	err := publishDiscussions(&bytes.Buffer{}, nil, corpus, "corpus.json", reports,
		services.NewSentimentAggregator(positiveScorer{}, logger))
	assert.EqualError(t, err, "read-only fs")
	assert.Empty(t, reports.reports)
}
