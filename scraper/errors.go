package scraper

import (
	"errors"
	"fmt"
)

var (
	// ErrExtractionFailed means the page lacked its primary identity field.
	ErrExtractionFailed = errors.New("extraction failed")
	// ErrChallenge means an anti-automation interstitial replaced the page.
	ErrChallenge = errors.New("challenge page detected")
)

// ChallengeError carries the diagnostic snapshot saved for a challenge page.
// Snapshot is empty when the capture itself failed.
type ChallengeError struct {
	URL      string
	Snapshot string
}

func (e *ChallengeError) Error() string {
	if e.Snapshot == "" {
		return fmt.Sprintf("%s: %v", e.URL, ErrChallenge)
	}
	return fmt.Sprintf("%s: %v (snapshot %s)", e.URL, ErrChallenge, e.Snapshot)
}

func (e *ChallengeError) Is(target error) bool {
	return target == ErrChallenge
}
