package browsertest

import (
	"context"
	"sync"

	"ttp/internal/browser"
)

// Driver hands out scripted pages
type Driver struct {
	mu sync.Mutex

	// NewPageFunc builds each page; nil yields an empty Page.
	NewPageFunc func() *Page
	// Err is returned from NewPage when set.
	Err error

	pages  []*Page
	closed bool
}

// NewPage implements browser.Driver
func (d *Driver) NewPage(ctx context.Context) (browser.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return nil, d.Err
	}
	page := &Page{}
	if d.NewPageFunc != nil {
		page = d.NewPageFunc()
	}
	d.pages = append(d.pages, page)
	return page, nil
}

// Close implements browser.Driver
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

// Pages returns every page opened so far
func (d *Driver) Pages() []*Page {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*Page(nil), d.pages...)
}

// Closed reports whether Close was called
func (d *Driver) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}
