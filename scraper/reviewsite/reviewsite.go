// Package reviewsite reads expert test scores from a review site's article
// page. The score table sits in a container identified by its label text.
package reviewsite

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"vacuum-research/models"
	"vacuum-research/scraper"
	"vacuum-research/utils"
)

// reviewSuffix trims "Review" and anything after it off article headings:
// "Mova V50 Ultra Complete Review: Worth It?" → "Mova V50 Ultra Complete".
var reviewSuffix = regexp.MustCompile(`(?i)\s*[-–:|]*\s*\breview\b.*$`)

// containerSelector lists the elements that may hold a labeled score table.
const containerSelector = "div, section, figure, article, table"

var Rules = scraper.Rules{
	Title:           "h1",
	Ready:           "table",
	ChallengeTitles: []string{"just a moment", "attention required", "captcha"},
	ChallengeSelectors: []string{
		"#challenge-form",
		"#cf-challenge-running",
	},
}

// Scraper extracts the score table from one review article.
type Scraper struct {
	visitor   *scraper.Visitor
	extractor *scraper.Extractor
	label     string
	logger    *utils.Logger
}

// New creates a review-site Scraper that looks for a container labeled label.
func New(visitor *scraper.Visitor, label string, logger *utils.Logger) *Scraper {
	return &Scraper{
		visitor:   visitor,
		extractor: scraper.NewExtractor(Rules, logger),
		label:     label,
		logger:    logger,
	}
}

func (s *Scraper) Source() models.Source {
	return models.VacuumWars
}

// Scrape returns the model name and expert scores of one article. A page
// without a labeled score table yields nil fields and a nil error.
func (s *Scraper) Scrape(ctx context.Context, url string) (*models.ExtractedFields, error) {
	doc, err := s.visitor.Visit(ctx, models.VacuumWars, url, s.extractor)
	if err != nil {
		return nil, err
	}

	fields, err := s.extractor.Extract(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	fields.Title = ModelName(fields.Title)

	scores, ok := ParseScoreTable(doc, s.label, fields.Title, s.logger)
	if !ok {
		s.logger.Warn("[vacuumwars] No %q table found for %s", s.label, fields.Title)
		return nil, nil
	}
	fields.ExpertScores = scores

	s.logger.Info("[vacuumwars] %s: %d expert scores", fields.Title, len(scores))
	return fields, nil
}

// ModelName derives the reviewed model from an article heading.
func ModelName(heading string) string {
	if name := strings.TrimSpace(reviewSuffix.ReplaceAllString(heading, "")); name != "" {
		return name
	}
	return heading
}

// ParseScoreTable locates the innermost container whose text contains label,
// takes the first table inside it, and maps each row's metric (first column)
// to its score in the column whose header names model. When no header names
// the model, the second column is used.
func ParseScoreTable(doc *goquery.Document, label, model string, logger *utils.Logger) (map[string]float64, bool) {
	table := findLabeledTable(doc, label)
	if table == nil {
		return nil, false
	}

	rows := table.Find("tr")
	if rows.Length() < 2 {
		return nil, false
	}

	header := cells(rows.First())
	if len(header) < 2 {
		return nil, false
	}
	scoreCol := modelColumn(header, model)

	scores := make(map[string]float64)
	rows.Slice(1, goquery.ToEnd).Each(func(_ int, row *goquery.Selection) {
		cols := cells(row)
		if len(cols) <= scoreCol || cols[0] == "" {
			return
		}
		v, ok := scraper.ParseScore(cols[scoreCol])
		if !ok {
			logger.Warn("[vacuumwars] Non-numeric score %q for %q", cols[scoreCol], cols[0])
			return
		}
		scores[cols[0]] = v
	})

	if len(scores) == 0 {
		return nil, false
	}
	return scores, true
}

func findLabeledTable(doc *goquery.Document, label string) *goquery.Selection {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return nil
	}

	candidates := doc.Find(containerSelector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		if !strings.Contains(strings.ToLower(scraper.NormaliseText(s.Text())), label) {
			return false
		}
		return s.Is("table") || s.Find("table").Length() > 0
	})
	if candidates.Length() == 0 {
		return nil
	}

	innermost := candidates.NotSelection(candidates.HasSelection(candidates)).First()
	if innermost.Is("table") {
		return innermost
	}
	return innermost.Find("table").First()
}

func cells(row *goquery.Selection) []string {
	var out []string
	row.Find("th, td").Each(func(_ int, c *goquery.Selection) {
		out = append(out, scraper.NormaliseText(c.Text()))
	})
	return out
}

func modelColumn(header []string, model string) int {
	model = strings.ToLower(model)
	if model != "" {
		for i := 1; i < len(header); i++ {
			h := strings.ToLower(header[i])
			if h != "" && (strings.Contains(h, model) || strings.Contains(model, h)) {
				return i
			}
		}
	}
	return 1
}
