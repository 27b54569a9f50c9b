package fetch

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"vacuum-research/utils"
)

// maskAutomation hides the most common headless-browser tells before any
// page script runs.
const maskAutomation = `
Object.defineProperty(navigator, 'webdriver', {get: () => undefined});
Object.defineProperty(navigator, 'languages', {get: () => ['en-US', 'en']});
Object.defineProperty(navigator, 'plugins', {get: () => [1, 2, 3, 4, 5]});
window.chrome = window.chrome || {runtime: {}};
`

// ChromeOptions configures a ChromeOpener.
type ChromeOptions struct {
	Headless          bool
	ChromeBin         string
	ProfileDir        string
	UserAgent         string
	NavigationTimeout time.Duration
	ReadyTimeout      time.Duration
}

// ChromeOpener launches a Chrome session per extraction call, reusing a
// persisted profile directory when one is configured.
type ChromeOpener struct {
	opts   ChromeOptions
	logger *utils.Logger
}

// NewChromeOpener creates a ChromeOpener.
func NewChromeOpener(opts ChromeOptions, logger *utils.Logger) *ChromeOpener {
	return &ChromeOpener{opts: opts, logger: logger}
}

type chromeSession struct {
	ctx     context.Context
	cancel  func()
	opts    ChromeOptions
	logger  *utils.Logger
	lastURL string
}

// Open starts the browser and prepares a stealth page.
func (o *ChromeOpener) Open(ctx context.Context) (Session, error) {
	chromeBin := o.opts.ChromeBin
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	o.logger.Debug("[browser] Using browser binary: %s", chromeBin)

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", o.opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(o.opts.UserAgent),
	)
	if chromeBin != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(chromeBin))
	}
	if o.opts.ProfileDir != "" {
		if err := os.MkdirAll(o.opts.ProfileDir, 0755); err != nil {
			return nil, fmt.Errorf("browser: create profile dir: %w", err)
		}
		allocOpts = append(allocOpts, chromedp.UserDataDir(o.opts.ProfileDir))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	s := &chromeSession{
		ctx: browserCtx,
		cancel: func() {
			cancelBrowser()
			cancelAlloc()
		},
		opts:   o.opts,
		logger: o.logger,
	}

	// The first Run owns the browser process, so it must not carry a timeout.
	err := chromedp.Run(browserCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(maskAutomation).Do(ctx)
			return err
		}),
	)
	if err != nil {
		s.cancel()
		return nil, fmt.Errorf("browser: start: %w", err)
	}
	return s, nil
}

func (s *chromeSession) Render(url, ready string) (string, error) {
	s.lastURL = url

	navCtx, cancelNav := context.WithTimeout(s.ctx, s.opts.NavigationTimeout)
	defer cancelNav()
	if err := chromedp.Run(navCtx, chromedp.Navigate(url)); err != nil {
		return "", &NavigationError{URL: url, Err: err}
	}

	var notReady error
	if ready != "" && s.opts.ReadyTimeout > 0 {
		waitCtx, cancelWait := context.WithTimeout(s.ctx, s.opts.ReadyTimeout)
		err := chromedp.Run(waitCtx, chromedp.WaitVisible(ready, chromedp.ByQuery))
		cancelWait()
		if err != nil {
			notReady = &ReadyTimeoutError{URL: url, Selector: ready, Err: err}
		}
	}

	var html string
	captureCtx, cancelCapture := context.WithTimeout(s.ctx, s.opts.NavigationTimeout)
	defer cancelCapture()
	if err := chromedp.Run(captureCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", &NavigationError{URL: url, Err: fmt.Errorf("capture markup: %w", err)}
	}
	return html, notReady
}

func (s *chromeSession) Snapshot(path string) error {
	ctx, cancel := context.WithTimeout(s.ctx, 30*time.Second)
	defer cancel()

	var buf []byte
	if err := chromedp.Run(ctx, chromedp.FullScreenshot(&buf, 90)); err != nil {
		return fmt.Errorf("browser: screenshot %s: %w", s.lastURL, err)
	}
	return writeSnapshot(path, buf)
}

func (s *chromeSession) Close() error {
	s.cancel()
	return nil
}

func writeSnapshot(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("snapshot: create dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("snapshot: write %q: %w", path, err)
	}
	return nil
}

// findChromeBinary locates Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
