// Package retailer extracts price, star rating and review snippets from
// retailer product pages. Every retailer shares one extraction path and
// differs only in its selector table.
package retailer

import (
	"context"
	"fmt"

	"vacuum-research/models"
	"vacuum-research/scraper"
	"vacuum-research/utils"
)

// reviewLimit bounds the snippets read from a page; the canonical record
// applies its own cap on top.
const reviewLimit = 20

// Site pairs a retailer source with its selector table.
type Site struct {
	Source models.Source
	Rules  scraper.Rules
}

var (
	Amazon = Site{
		Source: models.Amazon,
		Rules: scraper.Rules{
			Title:           "span#productTitle",
			Price:           ".a-price .a-offscreen",
			Rating:          "#averageCustomerReviews_feature_div #acrPopover",
			RatingAttr:      "title",
			Reviews:         `span[data-hook="review-body"] span`,
			ReviewLimit:     reviewLimit,
			Ready:           "span#productTitle",
			ChallengeTitles: []string{"captcha", "robot check"},
			ChallengeSelectors: []string{
				`form[action*="validateCaptcha"]`,
			},
		},
	}

	BestBuy = Site{
		Source: models.BestBuy,
		Rules: scraper.Rules{
			Title:           "h1.heading-5.v-fw-regular",
			Price:           "div.priceView-hero-price.priceView-customer-price span",
			Rating:          "span.c-review-average",
			Reviews:         "p.pre-white-space",
			ReviewLimit:     10,
			Ready:           "h1.heading-5",
			ChallengeTitles: []string{"captcha", "access denied"},
		},
	}
)

// SiteFor looks a retailer up by its tag.
func SiteFor(tag string) (Site, error) {
	switch tag {
	case Amazon.Source.Tag:
		return Amazon, nil
	case BestBuy.Source.Tag:
		return BestBuy, nil
	default:
		return Site{}, fmt.Errorf("unknown retailer %q", tag)
	}
}

// Scraper extracts one retailer's product pages.
type Scraper struct {
	site      Site
	visitor   *scraper.Visitor
	extractor *scraper.Extractor
	logger    *utils.Logger
}

// New creates a retailer Scraper.
func New(site Site, visitor *scraper.Visitor, logger *utils.Logger) *Scraper {
	return &Scraper{
		site:      site,
		visitor:   visitor,
		extractor: scraper.NewExtractor(site.Rules, logger),
		logger:    logger,
	}
}

func (s *Scraper) Source() models.Source {
	return s.site.Source
}

// Scrape renders one product page and returns its raw fields.
func (s *Scraper) Scrape(ctx context.Context, url string) (*models.ExtractedFields, error) {
	tag := s.site.Source.Tag

	doc, err := s.visitor.Visit(ctx, s.site.Source, url, s.extractor)
	if err != nil {
		return nil, err
	}

	fields, err := s.extractor.Extract(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}

	s.logger.Info("[%s] Found product: %s", tag, fields.Title)
	if fields.Price != nil {
		s.logger.Info("[%s] Price found: %.2f", tag, *fields.Price)
	} else {
		s.logger.Warn("[%s] No price on page", tag)
	}
	if fields.Rating != nil {
		s.logger.Info("[%s] Rating found: %.1f", tag, *fields.Rating)
	}
	s.logger.Info("[%s] Extracted %d review snippets", tag, len(fields.Reviews))
	return fields, nil
}
