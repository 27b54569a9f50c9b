package reviewsite

import (
	"context"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"vacuum-research/models"
	"vacuum-research/scraper"
)

// Exploratory tooling: reads a single HTML sitemap page and never follows
// the links it finds.

var sitemapRules = scraper.Rules{
	Ready:              "#ocs-site",
	ChallengeTitles:    Rules.ChallengeTitles,
	ChallengeSelectors: Rules.ChallengeSelectors,
}

// ReviewURLs renders one sitemap page and returns the review-like links on it.
func (s *Scraper) ReviewURLs(ctx context.Context, sitemapURL string) ([]string, error) {
	ex := scraper.NewExtractor(sitemapRules, s.logger)
	doc, err := s.visitor.Visit(ctx, models.VacuumWars, sitemapURL, ex)
	if err != nil {
		return nil, err
	}
	urls := HarvestReviewURLs(doc)
	s.logger.Info("[vacuumwars] Found %d potential review URLs", len(urls))
	return urls, nil
}

// HarvestReviewURLs collects unique, fragment-free review/guide links from
// the sitemap's main container, sorted.
func HarvestReviewURLs(doc *goquery.Document) []string {
	seen := make(map[string]struct{})
	doc.Find("div#ocs-site a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !strings.Contains(href, "vacuumwars.com/") {
			return
		}
		if !strings.Contains(href, "/review/") &&
			!strings.Contains(href, "/guide/") &&
			!strings.Contains(href, "best-robot-vacuums") {
			return
		}
		if i := strings.IndexByte(href, '#'); i >= 0 {
			href = href[:i]
		}
		seen[href] = struct{}{}
	})

	urls := make([]string, 0, len(seen))
	for u := range seen {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls
}
