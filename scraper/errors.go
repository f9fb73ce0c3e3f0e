package scraper

import (
	"context"
	"errors"
	"fmt"
	"net"

	pw "github.com/playwright-community/playwright-go"
)

// ErrLaunch indicates the browser session could not be started.
type ErrLaunch struct {
	Err error
}

func (e ErrLaunch) Error() string {
	return fmt.Errorf("launch: %w", e.Err).Error()
}

func (e ErrLaunch) Unwrap() error {
	return e.Err
}

// ErrNavigation indicates the page did not load within the navigation timeout.
type ErrNavigation struct {
	Err error
}

func (e ErrNavigation) Error() string {
	return fmt.Errorf("navigation: %w", e.Err).Error()
}

func (e ErrNavigation) Unwrap() error {
	return e.Err
}

// ErrContentWait indicates review cards did not render within the content timeout.
type ErrContentWait struct {
	Err error
}

func (e ErrContentWait) Error() string {
	return fmt.Errorf("content_wait: %w", e.Err).Error()
}

func (e ErrContentWait) Unwrap() error {
	return e.Err
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, pw.ErrTimeout) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func errorTypeLabel(err error) string {
	if err == nil {
		return "unknown"
	}
	if isTimeout(err) {
		return "timeout"
	}
	var launch ErrLaunch
	if errors.As(err, &launch) {
		return "launch"
	}
	var nav ErrNavigation
	if errors.As(err, &nav) {
		return "navigation"
	}
	var wait ErrContentWait
	if errors.As(err, &wait) {
		return "content_wait"
	}
	return "other"
}
