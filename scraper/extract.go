// Package scraper holds the rule-table field extractor shared by every site
// adapter, plus the session handling around a single page visit.
package scraper

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"vacuum-research/models"
	"vacuum-research/utils"
)

// numberRegexp captures the first numeric token, e.g. "4.3" in "4.3 out of 5 stars".
var numberRegexp = regexp.MustCompile(`\d+(?:\.\d+)?`)

// Rules is the per-source selector table. Empty selectors disable a field.
type Rules struct {
	Title string

	Price string

	Rating     string
	RatingAttr string // read the rating from this attribute instead of the text

	Reviews     string
	ReviewLimit int // 0 keeps every match

	// Ready is the selector a renderer may wait for before capturing markup.
	Ready string

	ChallengeTitles    []string // lower-case substrings of <title>
	ChallengeSelectors []string
}

// Extractor pulls typed fields out of rendered markup using a Rules table.
type Extractor struct {
	rules  Rules
	logger *utils.Logger
}

// NewExtractor creates an Extractor for one source.
func NewExtractor(rules Rules, logger *utils.Logger) *Extractor {
	return &Extractor{rules: rules, logger: logger}
}

// Rules returns the selector table the extractor was built with.
func (e *Extractor) Rules() Rules {
	return e.rules
}

// Parse turns markup into a queryable document.
func Parse(markup string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}
	return doc, nil
}

// Challenged reports whether the document is an anti-bot interstitial.
func (e *Extractor) Challenged(doc *goquery.Document) bool {
	title := strings.ToLower(doc.Find("title").First().Text())
	for _, marker := range e.rules.ChallengeTitles {
		if strings.Contains(title, marker) {
			return true
		}
	}
	for _, sel := range e.rules.ChallengeSelectors {
		if doc.Find(sel).Length() > 0 {
			return true
		}
	}
	return false
}

// HasTitle reports whether the document carries a non-blank title element.
// Rules without a title selector always pass.
func (e *Extractor) HasTitle(doc *goquery.Document) bool {
	if e.rules.Title == "" {
		return true
	}
	return NormaliseText(doc.Find(e.rules.Title).First().Text()) != ""
}

// Extract reads every configured field. Only a missing title is an error;
// other fields degrade to nil.
func (e *Extractor) Extract(doc *goquery.Document) (*models.ExtractedFields, error) {
	title := NormaliseText(doc.Find(e.rules.Title).First().Text())
	if title == "" {
		return nil, fmt.Errorf("%w: no title at %q", ErrExtractionFailed, e.rules.Title)
	}

	fields := &models.ExtractedFields{Title: title, Reviews: []string{}}
	if e.rules.Price != "" {
		fields.Price = e.price(doc)
	}
	if e.rules.Rating != "" {
		fields.Rating = e.rating(doc)
	}
	if e.rules.Reviews != "" {
		fields.Reviews = e.reviews(doc)
	}
	return fields, nil
}

func (e *Extractor) price(doc *goquery.Document) *float64 {
	sel := doc.Find(e.rules.Price).First()
	if sel.Length() == 0 {
		e.logger.Debug("[extract] Price element %q not found", e.rules.Price)
		return nil
	}
	raw := strings.TrimSpace(sel.Text())
	v, ok := parsePrice(raw)
	if !ok {
		e.logger.Warn("[extract] Unparseable price %q", raw)
		return nil
	}
	return &v
}

func (e *Extractor) rating(doc *goquery.Document) *float64 {
	sel := doc.Find(e.rules.Rating).First()
	if sel.Length() == 0 {
		e.logger.Debug("[extract] Rating element %q not found", e.rules.Rating)
		return nil
	}
	raw := sel.Text()
	if e.rules.RatingAttr != "" {
		raw, _ = sel.Attr(e.rules.RatingAttr)
	}
	v, ok := parseRating(raw)
	if !ok {
		e.logger.Warn("[extract] Unparseable rating %q", raw)
		return nil
	}
	return &v
}

// reviews reads the first ReviewLimit snippet elements; blank ones among
// them are dropped, not replaced.
func (e *Extractor) reviews(doc *goquery.Document) []string {
	reviews := []string{}
	sel := doc.Find(e.rules.Reviews)
	if e.rules.ReviewLimit > 0 {
		sel = sel.Slice(0, min(e.rules.ReviewLimit, sel.Length()))
	}
	sel.Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			reviews = append(reviews, text)
		}
	})
	return reviews
}

// parsePrice strips currency symbols, thousands separators and spaces, then
// parses what is left. "$1,234.56" → 1234.56; "N/A" → not ok.
func parsePrice(raw string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) || unicode.Is(unicode.Sc, r) {
			return -1
		}
		return r
	}, raw)
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// parseRating takes the first numeric token and accepts it only within 0–5.
func parseRating(raw string) (float64, bool) {
	v, ok := ParseScore(raw)
	if !ok || v > 5 {
		return 0, false
	}
	return v, true
}

// ParseScore returns the first numeric token of raw.
func ParseScore(raw string) (float64, bool) {
	match := numberRegexp.FindString(raw)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// NormaliseText strips leading/trailing whitespace and collapses internal whitespace.
func NormaliseText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
