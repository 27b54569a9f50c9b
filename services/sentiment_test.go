package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vacuum-research/models"
	"vacuum-research/utils"
)

// stubScorer returns fixed scores per sentence and 0 otherwise.
type stubScorer struct {
	scores map[string]float64
	calls  int
}

func (s *stubScorer) Compound(sentence string) float64 {
	s.calls++
	return s.scores[sentence]
}

func TestClassifyThresholds(t *testing.T) {
	tests := []struct {
		score float64
		want  Bucket
	}{
		{0.05, Positive},
		{0.049999, Neutral},
		{0, Neutral},
		{-0.049999, Neutral},
		{-0.05, Negative},
		{0.9, Positive},
		{-1, Negative},
	}

	for _, tt := range tests {
		if got := Classify(tt.score); got != tt.want {
			t.Errorf("Classify(%v) = %s; want %s", tt.score, got, tt.want)
		}
	}
}

func TestSentencesLengthBoundary(t *testing.T) {
	got := Sentences("123456789. 1234567890! short? a longer sentence here")
	assert.Equal(t, []string{"1234567890", "a longer sentence here"}, got)
}

func TestAggregateCountsEveryBrandInSentence(t *testing.T) {
	scorer := &stubScorer{scores: map[string]float64{
		"the roomba beats the roborock": 0.6,
		"my eufy broke down again":      -0.7,
	}}
	agg := NewSentimentAggregator(scorer, utils.NewNopLogger())

	posts := []*models.DiscussionPost{{
		Title:    "The Roomba beats the Roborock!",
		Selftext: "",
		Comments: []models.Comment{
			{Body: "My Eufy broke down again."},
			{Body: "Eufy ok."},
		},
	}}

	r := agg.Aggregate(posts, []string{"roomba", "roborock", "eufy", "neato"})

	assert.Equal(t, map[string]int{"roomba": 1, "roborock": 1, "eufy": 1, "neato": 0}, r.Mentions)
	assert.Equal(t, models.SentimentCounts{Positive: 1}, r.Sentiment["roomba"])
	assert.Equal(t, models.SentimentCounts{Positive: 1}, r.Sentiment["roborock"])
	assert.Equal(t, models.SentimentCounts{Negative: 1}, r.Sentiment["eufy"])
	assert.Equal(t, models.SentimentCounts{}, r.Sentiment["neato"])
	assert.Equal(t, 2, scorer.calls, "each matching sentence is scored once")
}

func TestAggregateEmptyCorpusKeepsEveryBrand(t *testing.T) {
	brands := []string{"roomba", "shark", "mova"}
	r := NewSentimentAggregator(&stubScorer{}, utils.NewNopLogger()).Aggregate(nil, brands)

	require.Len(t, r.Mentions, 3)
	require.Len(t, r.Sentiment, 3)
	for _, b := range brands {
		assert.Zero(t, r.Mentions[b])
		assert.Equal(t, models.SentimentCounts{}, r.Sentiment[b])
	}
	assert.Equal(t, brands, r.Brands)
}

func TestAggregateSubstringMatchHasNoWordBoundary(t *testing.T) {
	agg := NewSentimentAggregator(&stubScorer{}, utils.NewNopLogger())
	posts := []*models.DiscussionPost{{Title: "Hair removal from the brush roll"}}

	r := agg.Aggregate(posts, []string{"mova"})
	assert.Equal(t, 1, r.Mentions["mova"])
	assert.Equal(t, 1, r.Sentiment["mova"].Neutral)
}

func TestAggregateJoinsTitleAndBodyWithSpace(t *testing.T) {
	agg := NewSentimentAggregator(&stubScorer{}, utils.NewNopLogger())
	posts := []*models.DiscussionPost{{Title: "Thinking about", Selftext: "shark vacuums"}}

	r := agg.Aggregate(posts, []string{"shark"})
	assert.Equal(t, 1, r.Mentions["shark"])
}

func TestDefaultScorerIsShared(t *testing.T) {
	a := DefaultScorer()
	b := DefaultScorer()
	assert.Same(t, a.(vaderScorer).analyzer, b.(vaderScorer).analyzer)

	assert.Equal(t, Positive, Classify(a.Compound("this robot vacuum is great and i love it")))
	assert.Equal(t, Negative, Classify(a.Compound("this robot vacuum is terrible and i hate it")))
}
