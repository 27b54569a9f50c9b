package models

// SentimentCounts is the 3-bucket distribution for one brand.
type SentimentCounts struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// Total returns the number of classified sentences.
func (c SentimentCounts) Total() int {
	return c.Positive + c.Negative + c.Neutral
}

// BrandSentimentReport holds per-brand mention counts and sentiment buckets.
// Both maps always carry every brand of the configured vocabulary.
type BrandSentimentReport struct {
	Brands    []string                   `json:"-"`
	Mentions  map[string]int             `json:"brand_mentions"`
	Sentiment map[string]SentimentCounts `json:"brand_sentiment"`
}
