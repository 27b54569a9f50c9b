// Package fetchtest provides an in-memory fetch.Opener for tests.
package fetchtest

import (
	"context"
	"errors"

	"vacuum-research/fetch"
)

// Page is the canned outcome of rendering one URL. NotReady makes Render
// return the markup with a *fetch.ReadyTimeoutError.
type Page struct {
	Markup   string
	Err      error
	NotReady bool
}

// Opener serves canned pages and counts session lifecycles.
type Opener struct {
	Pages   map[string]Page
	OpenErr error

	Opened    int
	Closed    int
	Rendered  []string
	Readies   []string
	Snapshots []string
}

// NewOpener creates an Opener serving pages keyed by URL.
func NewOpener(pages map[string]Page) *Opener {
	return &Opener{Pages: pages}
}

func (o *Opener) Open(context.Context) (fetch.Session, error) {
	if o.OpenErr != nil {
		return nil, o.OpenErr
	}
	o.Opened++
	return &session{o: o}, nil
}

type session struct {
	o *Opener
}

func (s *session) Render(url, ready string) (string, error) {
	s.o.Rendered = append(s.o.Rendered, url)
	s.o.Readies = append(s.o.Readies, ready)
	page, ok := s.o.Pages[url]
	if !ok {
		return "", &fetch.NavigationError{URL: url, Err: errors.New("no such host")}
	}
	if page.NotReady && page.Err == nil {
		return page.Markup, &fetch.ReadyTimeoutError{URL: url, Selector: ready, Err: context.DeadlineExceeded}
	}
	return page.Markup, page.Err
}

func (s *session) Snapshot(path string) error {
	s.o.Snapshots = append(s.o.Snapshots, path)
	return nil
}

func (s *session) Close() error {
	s.o.Closed++
	return nil
}
