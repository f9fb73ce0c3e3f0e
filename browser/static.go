package browser

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
)

// StaticLauncher answers queries from server-rendered HTML fetched with
// colly. Scripts are not executed.
type StaticLauncher struct {
	userAgent string
	transport http.RoundTripper
}

// StaticOption configures a StaticLauncher.
type StaticOption func(*StaticLauncher)

// WithTransport replaces the HTTP transport, e.g. with an httpmock transport.
func WithTransport(rt http.RoundTripper) StaticOption {
	return func(l *StaticLauncher) {
		l.transport = rt
	}
}

// NewStaticLauncher builds a launcher sending userAgent on every fetch.
func NewStaticLauncher(userAgent string, opts ...StaticOption) *StaticLauncher {
	l := &StaticLauncher{userAgent: userAgent}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *StaticLauncher) Launch(_ context.Context) (Session, error) {
	return &staticSession{launcher: l}, nil
}

func (l *StaticLauncher) Close() error {
	return nil
}

type staticSession struct {
	launcher *StaticLauncher

	mu     sync.Mutex
	doc    *goquery.Selection
	closed bool
}

func (s *staticSession) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	collector := colly.NewCollector(colly.UserAgent(s.launcher.userAgent))
	collector.SetRequestTimeout(timeout)
	if s.launcher.transport != nil {
		collector.WithTransport(s.launcher.transport)
	}

	var (
		doc      *goquery.Selection
		fetchErr error
	)
	collector.OnHTML("html", func(e *colly.HTMLElement) {
		doc = e.DOM
	})
	collector.OnError(func(r *colly.Response, err error) {
		fetchErr = err
		if r != nil && r.StatusCode >= http.StatusBadRequest {
			fetchErr = fmt.Errorf("http status %d: %w", r.StatusCode, err)
		}
	})

	if err := collector.Visit(url); err != nil && fetchErr == nil {
		fetchErr = err
	}
	if fetchErr != nil {
		return fmt.Errorf("fetch %s: %w", url, fetchErr)
	}
	if doc == nil {
		return fmt.Errorf("fetch %s: response is not an html document", url)
	}

	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
	return nil
}

// WaitForSelector cannot wait for scripts to render, so it only checks the
// fetched document.
func (s *staticSession) WaitForSelector(_ context.Context, selector string, timeout time.Duration) error {
	doc, err := s.document()
	if err != nil {
		return err
	}
	if doc.Find(selector).Length() == 0 {
		return fmt.Errorf("waiting for %q (timeout %s): %w", selector, timeout, ErrElementNotFound)
	}
	return nil
}

func (s *staticSession) QueryAll(_ context.Context, selector string) ([]Scope, error) {
	doc, err := s.document()
	if err != nil {
		return nil, err
	}
	var scopes []Scope
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		scopes = append(scopes, selectionScope{sel})
	})
	return scopes, nil
}

func (s *staticSession) Text(selector string) (string, error) {
	doc, err := s.document()
	if err != nil {
		return "", err
	}
	return selectionScope{doc}.Text(selector)
}

func (s *staticSession) Attr(selector, name string) (string, error) {
	doc, err := s.document()
	if err != nil {
		return "", err
	}
	return selectionScope{doc}.Attr(selector, name)
}

func (s *staticSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.doc = nil
	return nil
}

func (s *staticSession) checkOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	return nil
}

func (s *staticSession) document() (*goquery.Selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSessionClosed
	}
	if s.doc == nil {
		return nil, fmt.Errorf("no page loaded")
	}
	return s.doc, nil
}

type selectionScope struct {
	sel *goquery.Selection
}

func (s selectionScope) Text(selector string) (string, error) {
	match := s.sel.Find(selector).First()
	if match.Length() == 0 {
		return "", ErrElementNotFound
	}
	return match.Text(), nil
}

func (s selectionScope) Attr(selector, name string) (string, error) {
	match := s.sel.Find(selector).First()
	if match.Length() == 0 {
		return "", ErrElementNotFound
	}
	value, ok := match.Attr(name)
	if !ok {
		return "", ErrAttributeMissing
	}
	return value, nil
}
