package models

import "time"

// SourceKind separates retailer product pages from expert review sites; it
// decides which metric group a CanonicalRecord carries.
type SourceKind string

const (
	Retailer   SourceKind = "retailer"
	ReviewSite SourceKind = "review_site"
)

// Source identifies one fixed site adapter.
type Source struct {
	Name string     // display name written into records, e.g. "Amazon"
	Tag  string     // lower-case tag used for directories and file suffixes
	Kind SourceKind
}

var (
	Amazon     = Source{Name: "Amazon", Tag: "amazon", Kind: Retailer}
	BestBuy    = Source{Name: "BestBuy", Tag: "bestbuy", Kind: Retailer}
	VacuumWars = Source{Name: "VacuumWars", Tag: "vacuumwars", Kind: ReviewSite}
)

// ExtractedFields is the raw field bag produced by one extraction attempt.
// Nil pointers mean the field was absent or unparseable.
type ExtractedFields struct {
	Title        string
	Price        *float64
	Rating       *float64
	Reviews      []string
	ExpertScores map[string]float64
}

// CanonicalRecord is the normalized, source-tagged output for one scraped page.
type CanonicalRecord struct {
	ModelName        string     `json:"model_name"`
	Source           string     `json:"source"`
	SourceType       SourceKind `json:"source_type"`
	URL              string     `json:"url,omitempty"`
	ScrapedTimestamp string     `json:"scraped_timestamp"`

	ManufacturerSpecs *ManufacturerSpecs `json:"manufacturer_specs,omitempty"`
	CustomerFeedback  *CustomerFeedback  `json:"customer_feedback,omitempty"`
	ExpertScores      map[string]float64 `json:"expert_scores,omitempty"`

	SourceTag string    `json:"-"`
	ScrapedAt time.Time `json:"-"`
}

type ManufacturerSpecs struct {
	Price *float64 `json:"price"`
}

type CustomerFeedback struct {
	AverageStarRating *float64 `json:"average_star_rating"`
	ReviewsText       []string `json:"reviews_text"`
}
