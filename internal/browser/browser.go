// Package browser defines the narrow set of page operations the interaction
// protocol needs, with Playwright and chromedp implementations.
package browser

import (
	"context"
	"fmt"
	"regexp"
	"time"
)

// Driver opens pages in a single browser session
type Driver interface {
	NewPage(ctx context.Context) (Page, error)
	Close() error
}

// Page is one tab pointed at the target site
type Page interface {
	Navigate(ctx context.Context, url string) error
	Reload(ctx context.Context) error
	Locate(sel Selector) Element
	Sleep(ctx context.Context, d time.Duration) error
	Close() error
}

// Element is the first node matched by a Selector
type Element interface {
	WaitVisible(ctx context.Context, timeout time.Duration) error
	Click(ctx context.Context) error
	Fill(ctx context.Context, text string) error
	Type(ctx context.Context, text string, delay time.Duration) error
	Press(ctx context.Context, key string) error
	WaitForText(ctx context.Context, pattern *regexp.Regexp, timeout time.Duration) error
	Text(ctx context.Context) (string, error)
}

// Selector locates an element by ARIA role or CSS selector. Role wins when both are set.
type Selector struct {
	Role string
	CSS  string
}

// Role returns a role selector
func Role(role string) Selector {
	return Selector{Role: role}
}

// CSS returns a CSS selector
func CSS(css string) Selector {
	return Selector{CSS: css}
}

func (s Selector) String() string {
	if s.Role != "" {
		return "role=" + s.Role
	}
	return s.CSS
}

// Options configures a Driver
type Options struct {
	Headless          bool
	Width             int
	Height            int
	ActionTimeout     time.Duration
	NavigationTimeout time.Duration
}

const (
	DriverPlaywright = "playwright"
	DriverChromedp   = "chromedp"
)

// Launch starts the named driver
func Launch(ctx context.Context, name string, opts Options) (Driver, error) {
	switch name {
	case "", DriverPlaywright:
		return NewPlaywright(opts)
	case DriverChromedp:
		return NewChromedp(ctx, opts)
	default:
		return nil, fmt.Errorf("unknown browser driver %q (want %s or %s)", name, DriverPlaywright, DriverChromedp)
	}
}

// sleep blocks for d or until ctx is done
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
