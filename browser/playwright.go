package browser

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	pw "github.com/playwright-community/playwright-go"
)

const attrScript = `(el, name) => el.getAttribute(name)`

var chromiumPaths = []string{
	"/usr/bin/chromium",
	"/usr/bin/google-chrome",
	"/bin/google-chrome",
	"/usr/bin/chromium-browser",
}

// PlaywrightOptions configures PlaywrightLauncher.
type PlaywrightOptions struct {
	Headless        bool
	ExecutablePath  string
	UserAgent       string
	InstallBrowsers bool
}

// PlaywrightLauncher launches one headless Chromium per session on a shared
// playwright driver.
type PlaywrightLauncher struct {
	opts PlaywrightOptions
	pw   *pw.Playwright

	mu     sync.Mutex
	closed bool
}

// NewPlaywrightLauncher starts the playwright driver.
func NewPlaywrightLauncher(opts PlaywrightOptions) (*PlaywrightLauncher, error) {
	if opts.InstallBrowsers {
		slog.Info("installing playwright chromium")
		if err := pw.Install(&pw.RunOptions{Browsers: []string{"chromium"}}); err != nil {
			slog.Warn("playwright install failed, continuing", slog.Any("error", err))
		}
	}

	if opts.ExecutablePath == "" {
		for _, p := range chromiumPaths {
			if _, err := os.Stat(p); err == nil {
				opts.ExecutablePath = p
				break
			}
		}
	}

	instance, err := pw.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}
	return &PlaywrightLauncher{opts: opts, pw: instance}, nil
}

// Launch starts a fresh browser and opens one page in it.
func (l *PlaywrightLauncher) Launch(ctx context.Context) (Session, error) {
	l.mu.Lock()
	closed := l.closed
	l.mu.Unlock()
	if closed {
		return nil, ErrSessionClosed
	}

	launchOpts := pw.BrowserTypeLaunchOptions{
		Headless: pw.Bool(l.opts.Headless),
	}
	if l.opts.ExecutablePath != "" {
		launchOpts.ExecutablePath = pw.String(l.opts.ExecutablePath)
	}

	b, err := l.pw.Chromium.Launch(launchOpts)
	if err != nil {
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	pageOpts := pw.BrowserNewPageOptions{}
	if l.opts.UserAgent != "" {
		pageOpts.UserAgent = pw.String(l.opts.UserAgent)
	}
	page, err := b.NewPage(pageOpts)
	if err != nil {
		if closeErr := b.Close(); closeErr != nil {
			slog.Debug("close browser after failed page", slog.Any("error", closeErr))
		}
		return nil, fmt.Errorf("new page: %w", err)
	}

	return &playwrightSession{browser: b, page: page}, nil
}

// Close stops the playwright driver.
func (l *PlaywrightLauncher) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	return l.pw.Stop()
}

type playwrightSession struct {
	browser pw.Browser
	page    pw.Page

	closeOnce sync.Once
	closeErr  error
}

func (s *playwrightSession) Navigate(_ context.Context, url string, timeout time.Duration) error {
	_, err := s.page.Goto(url, pw.PageGotoOptions{
		WaitUntil: pw.WaitUntilStateDomcontentloaded,
		Timeout:   pw.Float(float64(timeout.Milliseconds())),
	})
	return err
}

func (s *playwrightSession) WaitForSelector(_ context.Context, selector string, timeout time.Duration) error {
	_, err := s.page.WaitForSelector(selector, pw.PageWaitForSelectorOptions{
		Timeout: pw.Float(float64(timeout.Milliseconds())),
	})
	return err
}

func (s *playwrightSession) QueryAll(_ context.Context, selector string) ([]Scope, error) {
	handles, err := s.page.QuerySelectorAll(selector)
	if err != nil {
		return nil, err
	}
	scopes := make([]Scope, 0, len(handles))
	for _, h := range handles {
		scopes = append(scopes, handleScope{h})
	}
	return scopes, nil
}

func (s *playwrightSession) Text(selector string) (string, error) {
	el, err := s.page.QuerySelector(selector)
	if err != nil {
		return "", err
	}
	return textOf(el)
}

func (s *playwrightSession) Attr(selector, name string) (string, error) {
	el, err := s.page.QuerySelector(selector)
	if err != nil {
		return "", err
	}
	return attrOf(el, name)
}

func (s *playwrightSession) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.browser.Close()
	})
	return s.closeErr
}

type handleScope struct {
	el pw.ElementHandle
}

func (h handleScope) Text(selector string) (string, error) {
	el, err := h.el.QuerySelector(selector)
	if err != nil {
		return "", err
	}
	return textOf(el)
}

func (h handleScope) Attr(selector, name string) (string, error) {
	el, err := h.el.QuerySelector(selector)
	if err != nil {
		return "", err
	}
	return attrOf(el, name)
}

func textOf(el pw.ElementHandle) (string, error) {
	if el == nil {
		return "", ErrElementNotFound
	}
	return el.TextContent()
}

// attrOf evaluates getAttribute in the page so a missing attribute comes
// back as null rather than an empty string.
func attrOf(el pw.ElementHandle, name string) (string, error) {
	if el == nil {
		return "", ErrElementNotFound
	}
	v, err := el.Evaluate(attrScript, name)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", ErrAttributeMissing
	}
	return s, nil
}
