package services

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"vacuum-research/models"
)

// BrandRank is one row of the brand ranking.
type BrandRank struct {
	Brand         string
	Mentions      int
	Counts        models.SentimentCounts
	PositiveShare float64 // percent of classified sentences that were positive
}

// Rank orders mentioned brands by mention count, ties kept in vocabulary
// order, and returns at most top entries (all when top <= 0).
func Rank(r *models.BrandSentimentReport, top int) []BrandRank {
	var ranks []BrandRank
	for _, brand := range r.Brands {
		n := r.Mentions[brand]
		if n == 0 {
			continue
		}
		counts := r.Sentiment[brand]
		total := counts.Total()
		if total < 1 {
			total = 1
		}
		ranks = append(ranks, BrandRank{
			Brand:         brand,
			Mentions:      n,
			Counts:        counts,
			PositiveShare: float64(counts.Positive) / float64(total) * 100,
		})
	}

	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Mentions > ranks[j].Mentions
	})
	if top > 0 && len(ranks) > top {
		ranks = ranks[:top]
	}
	return ranks
}

// PrintReport renders the most-mentioned brands as a table.
func PrintReport(w io.Writer, r *models.BrandSentimentReport, top int) {
	ranks := Rank(r, top)
	if len(ranks) == 0 {
		fmt.Fprintln(w, "  No brand mentions found")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetTitle("Most mentioned brands")
	t.AppendHeader(table.Row{"#", "Brand", "Mentions", "Positive", "Negative", "Neutral", "% Positive"})
	for i, rank := range ranks {
		t.AppendRow(table.Row{
			i + 1,
			text.FormatTitle.Apply(rank.Brand),
			rank.Mentions,
			rank.Counts.Positive,
			rank.Counts.Negative,
			rank.Counts.Neutral,
			fmt.Sprintf("%.1f%%", rank.PositiveShare),
		})
	}
	t.Render()
}
