package reviewsite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vacuum-research/fetch/fetchtest"
	"vacuum-research/scraper"
	"vacuum-research/utils"
)

const articleURL = "https://vacuumwars.com/mova-v50-ultra-complete-review/"

func newScraper(pages map[string]fetchtest.Page) (*Scraper, *fetchtest.Opener) {
	opener := fetchtest.NewOpener(pages)
	visitor := scraper.NewVisitor(opener, "", utils.NewNopLogger())
	return New(visitor, "Vacuum Wars Scores", utils.NewNopLogger()), opener
}

func TestModelName(t *testing.T) {
	tests := []struct {
		heading string
		want    string
	}{
		{"Mova V50 Ultra Complete Review", "Mova V50 Ultra Complete"},
		{"Roborock S8 MaxV Ultra Review: Worth It?", "Roborock S8 MaxV Ultra"},
		{"Eufy X10 Pro Omni – Review", "Eufy X10 Pro Omni"},
		{"Narwal Freo X Ultra", "Narwal Freo X Ultra"},
		{"Review", "Review"},
	}

	for _, tt := range tests {
		if got := ModelName(tt.heading); got != tt.want {
			t.Errorf("ModelName(%q) = %q; want %q", tt.heading, got, tt.want)
		}
	}
}

func TestParseScoreTableModelColumn(t *testing.T) {
	doc, err := scraper.Parse(`<html><body>
		<table><tr><th>Unrelated</th><th>1</th></tr><tr><td>x</td><td>2</td></tr></table>
		<div class="scores">
			<h3>Vacuum Wars Scores</h3>
			<table>
				<tr><th>Feature</th><th>Model X</th></tr>
				<tr><td>Suction</td><td>9</td></tr>
				<tr><td>Noise</td><td>7</td></tr>
			</table>
			<table><tr><th>Feature</th><th>Model X</th></tr><tr><td>Suction</td><td>1</td></tr></table>
		</div>
	</body></html>`)
	require.NoError(t, err)

	scores, ok := ParseScoreTable(doc, "vacuum wars scores", "Model X", utils.NewNopLogger())
	require.True(t, ok)
	assert.Equal(t, map[string]float64{"Suction": 9, "Noise": 7}, scores)
}

func TestParseScoreTablePicksNamedColumn(t *testing.T) {
	doc, err := scraper.Parse(`<html><body><section>
		<p>Vacuum Wars Scores</p>
		<table>
			<thead><tr><th>Metric</th><th>Roborock S8</th><th>Mova V50 Ultra Complete</th></tr></thead>
			<tbody>
				<tr><td>Carpet</td><td>8.1</td><td>9.4/10</td></tr>
				<tr><td>Mopping</td><td>7</td><td>n/a</td></tr>
			</tbody>
		</table>
	</section></body></html>`)
	require.NoError(t, err)

	scores, ok := ParseScoreTable(doc, "Vacuum Wars Scores", "Mova V50 Ultra Complete", utils.NewNopLogger())
	require.True(t, ok)
	assert.Equal(t, map[string]float64{"Carpet": 9.4}, scores)
}

func TestParseScoreTableNoContainer(t *testing.T) {
	doc, err := scraper.Parse(`<html><body><div><h3>Specs</h3><table><tr><th>a</th><th>b</th></tr><tr><td>x</td><td>1</td></tr></table></div></body></html>`)
	require.NoError(t, err)

	_, ok := ParseScoreTable(doc, "Vacuum Wars Scores", "X", utils.NewNopLogger())
	assert.False(t, ok)
}

func TestParseScoreTableLabelWithoutTable(t *testing.T) {
	doc, err := scraper.Parse(`<html><body><div><h3>Vacuum Wars Scores</h3><p>coming soon</p></div></body></html>`)
	require.NoError(t, err)

	_, ok := ParseScoreTable(doc, "Vacuum Wars Scores", "X", utils.NewNopLogger())
	assert.False(t, ok)
}

func TestScrapeArticle(t *testing.T) {
	s, opener := newScraper(map[string]fetchtest.Page{articleURL: {Markup: `<html><body>
		<h1>Mova V50 Ultra Complete Review</h1>
		<figure><figcaption>Vacuum Wars Scores</figcaption>
			<table><tr><th>Test</th><th>Mova V50 Ultra Complete</th></tr>
			<tr><td>Hard floor</td><td>97</td></tr></table>
		</figure>
	</body></html>`}})

	fields, err := s.Scrape(context.Background(), articleURL)
	require.NoError(t, err)
	require.NotNil(t, fields)
	assert.Equal(t, "Mova V50 Ultra Complete", fields.Title)
	assert.Equal(t, map[string]float64{"Hard floor": 97}, fields.ExpertScores)
	assert.Equal(t, 1, opener.Closed)
}

func TestScrapeArticleWithoutTableIsNoResult(t *testing.T) {
	s, _ := newScraper(map[string]fetchtest.Page{articleURL: {Markup: `<html><body><h1>Some Review</h1></body></html>`}})

	fields, err := s.Scrape(context.Background(), articleURL)
	assert.NoError(t, err)
	assert.Nil(t, fields)
}

func TestHarvestReviewURLs(t *testing.T) {
	doc, err := scraper.Parse(`<html><body>
		<a href="https://vacuumwars.com/review/outside-container/">skip</a>
		<div id="ocs-site">
			<a href="https://vacuumwars.com/review/mova-v50/#scores">a</a>
			<a href="https://vacuumwars.com/review/mova-v50/">dup</a>
			<a href="https://vacuumwars.com/guide/mops/">b</a>
			<a href="https://vacuumwars.com/best-robot-vacuums/">c</a>
			<a href="https://vacuumwars.com/about/">skip</a>
			<a href="https://example.com/review/x/">skip</a>
		</div>
	</body></html>`)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://vacuumwars.com/best-robot-vacuums/",
		"https://vacuumwars.com/guide/mops/",
		"https://vacuumwars.com/review/mova-v50/",
	}, HarvestReviewURLs(doc))
}
