package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"

	"vacuum-research/utils"
)

// HTTPOptions configures an HTTPOpener.
type HTTPOptions struct {
	UserAgent         string
	NavigationTimeout time.Duration
	CloudflareBypass  bool
}

// HTTPOpener serves static pages without a browser. It cannot run page
// scripts, so it only suits sites that render server-side.
type HTTPOpener struct {
	opts   HTTPOptions
	logger *utils.Logger
}

// NewHTTPOpener creates an HTTPOpener.
func NewHTTPOpener(opts HTTPOptions, logger *utils.Logger) *HTTPOpener {
	return &HTTPOpener{opts: opts, logger: logger}
}

type httpSession struct {
	ctx      context.Context
	client   *resty.Client
	lastURL  string
	lastBody []byte
}

func (o *HTTPOpener) Open(ctx context.Context) (Session, error) {
	client := resty.New().
		SetTimeout(o.opts.NavigationTimeout).
		SetHeader("User-Agent", o.opts.UserAgent).
		SetHeader("Accept-Language", "en-US,en;q=0.9")
	if o.opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	return &httpSession{ctx: ctx, client: client}, nil
}

// challengeStatus lists statuses that anti-bot interstitials are served
// with; their bodies are returned so the caller can recognise the challenge.
func challengeStatus(code int) bool {
	return code == http.StatusForbidden ||
		code == http.StatusTooManyRequests ||
		code == http.StatusServiceUnavailable
}

func (s *httpSession) Render(url, _ string) (string, error) {
	s.lastURL = url

	res, err := s.client.R().SetContext(s.ctx).Get(url)
	if err != nil {
		return "", &NavigationError{URL: url, Err: err}
	}
	s.lastBody = res.Body()

	if res.IsError() && !challengeStatus(res.StatusCode()) {
		return "", &NavigationError{URL: url, Err: fmt.Errorf("unexpected status %s", res.Status())}
	}
	return string(res.Body()), nil
}

// Snapshot writes the last response body, the closest thing to a page image
// without a browser.
func (s *httpSession) Snapshot(path string) error {
	if s.lastBody == nil {
		return fmt.Errorf("snapshot: nothing fetched yet")
	}
	return writeSnapshot(path, s.lastBody)
}

func (s *httpSession) Close() error {
	s.client.GetClient().CloseIdleConnections()
	return nil
}
