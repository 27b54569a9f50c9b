package storage

import "vacuum-research/models"

// RecordWriter persists one canonical record and returns the written path.
type RecordWriter interface {
	WriteRecord(rec *models.CanonicalRecord, fileName string) (string, error)
}

// CorpusWriter persists a mined discussion corpus.
type CorpusWriter interface {
	WriteCorpus(path string, posts []*models.DiscussionPost) error
}

// ReportWriter persists a brand sentiment report.
type ReportWriter interface {
	WriteReport(r *models.BrandSentimentReport) error
	Close() error
}

var (
	_ RecordWriter = (*JSONWriter)(nil)
	_ CorpusWriter = (*JSONWriter)(nil)
	_ ReportWriter = (*CSVWriter)(nil)
)
