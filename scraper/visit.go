package scraper

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/PuerkitoBio/goquery"

	"vacuum-research/fetch"
	"vacuum-research/models"
	"vacuum-research/utils"
)

// Visitor renders one target inside its own session and screens the result
// for challenge pages before any field is read.
type Visitor struct {
	opener      fetch.Opener
	snapshotDir string
	logger      *utils.Logger
}

// NewVisitor creates a Visitor. Diagnostic snapshots land in snapshotDir.
func NewVisitor(opener fetch.Opener, snapshotDir string, logger *utils.Logger) *Visitor {
	return &Visitor{opener: opener, snapshotDir: snapshotDir, logger: logger}
}

// ChallengeSnapshotPath is where a challenge-page capture for src is written.
func (v *Visitor) ChallengeSnapshotPath(src models.Source) string {
	return filepath.Join(v.snapshotDir, src.Tag+"_captcha_error.png")
}

// ErrorSnapshotPath is where a navigation-failure capture for src is written.
func (v *Visitor) ErrorSnapshotPath(src models.Source) string {
	return filepath.Join(v.snapshotDir, src.Tag+"_error.png")
}

// Visit acquires a session, renders url and returns the parsed document.
// The session is released before Visit returns, whatever the outcome.
func (v *Visitor) Visit(ctx context.Context, src models.Source, url string, ex *Extractor) (*goquery.Document, error) {
	sess, err := v.opener.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			v.logger.Warn("[%s] Closing session: %v", src.Tag, cerr)
		}
	}()

	v.logger.Info("[%s] Navigating to %s", src.Tag, url)
	markup, err := sess.Render(url, ex.Rules().Ready)
	var notReady *fetch.ReadyTimeoutError
	if err != nil && !errors.As(err, &notReady) {
		var navErr *fetch.NavigationError
		if errors.As(err, &navErr) {
			v.capture(sess, src, v.ErrorSnapshotPath(src))
		}
		return nil, err
	}
	if notReady != nil {
		v.logger.Warn("[%s] %v", src.Tag, notReady)
	}

	doc, err := Parse(markup)
	if err != nil {
		return nil, err
	}

	if ex.Challenged(doc) {
		v.logger.Warn("[%s] Challenge page detected at %s, saving snapshot and aborting", src.Tag, url)
		return nil, &ChallengeError{URL: url, Snapshot: v.capture(sess, src, v.ChallengeSnapshotPath(src))}
	}

	// A page that never showed its ready element and has no title is a
	// timed-out load, not just a sparse page.
	if notReady != nil && !ex.HasTitle(doc) {
		path := v.capture(sess, src, v.ErrorSnapshotPath(src))
		return nil, fmt.Errorf("%s: %w: no title at %q after ready wait timed out (snapshot %q)",
			url, ErrExtractionFailed, ex.Rules().Title, path)
	}
	return doc, nil
}

// capture saves a snapshot and returns its path, or "" if it failed.
func (v *Visitor) capture(sess fetch.Session, src models.Source, path string) string {
	if err := sess.Snapshot(path); err != nil {
		v.logger.Warn("[%s] Snapshot failed: %v", src.Tag, err)
		return ""
	}
	v.logger.Info("[%s] Diagnostic snapshot saved to %s", src.Tag, path)
	return path
}
