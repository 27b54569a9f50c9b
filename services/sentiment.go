package services

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/jonreiter/govader"

	"vacuum-research/models"
	"vacuum-research/utils"
)

const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
	minSentenceLength = 10
)

// Bucket is one of the three sentiment classes.
type Bucket string

const (
	Positive Bucket = "positive"
	Negative Bucket = "negative"
	Neutral  Bucket = "neutral"
)

// Scorer computes a compound polarity score in [-1, 1] for one sentence.
type Scorer interface {
	Compound(sentence string) float64
}

type vaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func (v vaderScorer) Compound(sentence string) float64 {
	return v.analyzer.PolarityScores(sentence).Compound
}

var (
	defaultScorer Scorer
	scorerOnce    sync.Once
)

// DefaultScorer returns the process-wide VADER scorer, building its lexicon
// on first use.
func DefaultScorer() Scorer {
	scorerOnce.Do(func() {
		defaultScorer = vaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
	})
	return defaultScorer
}

// Classify maps a compound score onto a bucket.
func Classify(score float64) Bucket {
	switch {
	case score >= positiveThreshold:
		return Positive
	case score <= negativeThreshold:
		return Negative
	default:
		return Neutral
	}
}

// Sentences splits text on '.', '!' and '?', trims each piece and drops
// those shorter than minSentenceLength characters.
func Sentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if utf8.RuneCountInString(p) < minSentenceLength {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SentimentAggregator tallies brand mentions and per-brand sentiment over a
// discussion corpus.
type SentimentAggregator struct {
	scorer Scorer
	logger *utils.Logger
}

// NewSentimentAggregator creates an aggregator. A nil scorer selects DefaultScorer.
func NewSentimentAggregator(scorer Scorer, logger *utils.Logger) *SentimentAggregator {
	if scorer == nil {
		scorer = DefaultScorer()
	}
	return &SentimentAggregator{scorer: scorer, logger: logger}
}

// Aggregate scans every post. Brands match as plain lower-case substrings,
// so "mova" also counts inside "removal"; that is accepted behaviour.
func (a *SentimentAggregator) Aggregate(posts []*models.DiscussionPost, brands []string) *models.BrandSentimentReport {
	vocab := utils.NewOrderedSet()
	for _, b := range brands {
		vocab.Add(b)
	}

	report := &models.BrandSentimentReport{
		Brands:    vocab.Keys(),
		Mentions:  make(map[string]int, vocab.Size()),
		Sentiment: make(map[string]models.SentimentCounts, vocab.Size()),
	}
	needles := make(map[string]string, vocab.Size())
	for _, b := range report.Brands {
		report.Mentions[b] = 0
		report.Sentiment[b] = models.SentimentCounts{}
		needles[b] = strings.ToLower(b)
	}

	var sentences int
	for _, post := range posts {
		for _, sentence := range Sentences(postText(post)) {
			sentences++
			scored := false
			var bucket Bucket

			for _, brand := range report.Brands {
				if !strings.Contains(sentence, needles[brand]) {
					continue
				}
				if !scored {
					bucket = Classify(a.scorer.Compound(sentence))
					scored = true
				}
				report.Mentions[brand]++

				counts := report.Sentiment[brand]
				switch bucket {
				case Positive:
					counts.Positive++
				case Negative:
					counts.Negative++
				default:
					counts.Neutral++
				}
				report.Sentiment[brand] = counts
			}
		}
	}

	a.logger.Info("[sentiment] Scanned %d posts, %d sentences", len(posts), sentences)
	return report
}

// postText is the lower-cased title, body and kept comments of one post.
func postText(post *models.DiscussionPost) string {
	var b strings.Builder
	b.WriteString(post.Title)
	b.WriteString(" ")
	b.WriteString(post.Selftext)
	for _, c := range post.Comments {
		b.WriteString(" ")
		b.WriteString(c.Body)
	}
	return strings.ToLower(b.String())
}
