package interaction

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"ttp/internal/browser"
)

// Session is a fresh page with a protocol bound to it
type Session struct {
	*Protocol
	page browser.Page
}

// Close closes the page
func (s *Session) Close() error {
	return s.page.Close()
}

// Opener opens one session per case on a shared driver
type Opener struct {
	driver browser.Driver
	opts   Options
	log    logr.Logger
}

// NewOpener creates an opener over driver
func NewOpener(driver browser.Driver, opts Options, log logr.Logger) *Opener {
	return &Opener{
		driver: driver,
		opts:   opts,
		log:    log,
	}
}

// Open opens a new page and binds a protocol to it
func (o *Opener) Open(ctx context.Context) (*Session, error) {
	page, err := o.driver.NewPage(ctx)
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	return &Session{
		Protocol: New(page, o.opts, o.log),
		page:     page,
	}, nil
}

// Options returns the options sessions are opened with
func (o *Opener) Options() Options {
	return o.opts
}
