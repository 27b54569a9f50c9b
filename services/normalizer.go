package services

import (
	"errors"
	"strings"
	"time"

	"vacuum-research/models"
	"vacuum-research/utils"
)

const (
	// maxReviews caps reviews_text in every retailer record.
	maxReviews = 20
	// maxStemLength bounds the model-name part of output file names, in runes.
	maxStemLength = 50

	timestampLayout = "2006-01-02T15:04:05.000000Z"
)

// ErrMissingModelName is returned when a field bag has no usable title.
var ErrMissingModelName = errors.New("normalize: empty model name")

// Normalizer turns one extractor's field bag into a CanonicalRecord.
type Normalizer struct {
	logger *utils.Logger
	now    func() time.Time
}

// NewNormalizer creates a Normalizer stamping records with the current time.
func NewNormalizer(logger *utils.Logger) *Normalizer {
	return &Normalizer{logger: logger, now: time.Now}
}

// Normalize builds the record for src. The result depends only on its
// inputs apart from the scrape timestamp.
func (n *Normalizer) Normalize(fields *models.ExtractedFields, src models.Source, url string) (*models.CanonicalRecord, error) {
	name := strings.Join(strings.Fields(fields.Title), " ")
	if name == "" {
		return nil, ErrMissingModelName
	}

	scrapedAt := n.now().UTC()
	rec := &models.CanonicalRecord{
		ModelName:        name,
		Source:           src.Name,
		SourceType:       src.Kind,
		URL:              url,
		ScrapedTimestamp: scrapedAt.Format(timestampLayout),
		SourceTag:        src.Tag,
		ScrapedAt:        scrapedAt,
	}

	switch src.Kind {
	case models.Retailer:
		reviews := fields.Reviews
		if len(reviews) > maxReviews {
			n.logger.Debug("[normalizer] Truncating %d reviews to %d for %s", len(reviews), maxReviews, name)
			reviews = reviews[:maxReviews]
		}
		rec.ManufacturerSpecs = &models.ManufacturerSpecs{Price: fields.Price}
		rec.CustomerFeedback = &models.CustomerFeedback{
			AverageStarRating: fields.Rating,
			ReviewsText:       append([]string{}, reviews...),
		}
	case models.ReviewSite:
		scores := make(map[string]float64, len(fields.ExpertScores))
		for k, v := range fields.ExpertScores {
			scores[k] = v
		}
		rec.ExpertScores = scores
	}

	return rec, nil
}

// FileStem derives the file-name stem for a model: slashes removed,
// whitespace runs collapsed to underscores, lower-cased, length-capped.
// "Mova V50 Ultra / Pro" → "mova_v50_ultra_pro".
func FileStem(modelName string) string {
	cleaned := strings.ReplaceAll(modelName, "/", "")
	stem := strings.ToLower(strings.Join(strings.Fields(cleaned), "_"))

	if runes := []rune(stem); len(runes) > maxStemLength {
		stem = string(runes[:maxStemLength])
	}
	stem = strings.TrimRight(stem, "_")
	if stem == "" {
		return "unknown"
	}
	return stem
}

// FileName is the output file name of rec: "<stem>_<source tag>.json".
func FileName(rec *models.CanonicalRecord) string {
	return FileStem(rec.ModelName) + "_" + rec.SourceTag + ".json"
}
