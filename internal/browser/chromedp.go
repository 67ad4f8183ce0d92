package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
)

// roleSelectors maps the ARIA roles the protocol uses onto CSS for chromedp,
// which has no role engine.
var roleSelectors = map[string]string{
	"textbox": `textarea, input[type="text"], input:not([type]), [role="textbox"]`,
	"button":  `button, [role="button"], input[type="submit"]`,
}

// textPollInterval is how often chromedp re-evaluates a text predicate
const textPollInterval = 100 * time.Millisecond

var keyNames = map[string]string{
	"End":       kb.End,
	"Home":      kb.Home,
	"Enter":     kb.Enter,
	"Backspace": kb.Backspace,
	"Tab":       kb.Tab,
}

// Chromedp drives a local Chrome through the DevTools protocol
type Chromedp struct {
	browserCtx    context.Context
	cancelAlloc   context.CancelFunc
	cancelBrowser context.CancelFunc
	opts          Options
}

// NewChromedp starts a Chrome process
func NewChromedp(ctx context.Context, opts Options) (*Chromedp, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.WindowSize(opts.Width, opts.Height),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.WithoutCancel(ctx), allocOpts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	// The first Run starts the browser.
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("start chrome: %w", err)
	}

	return &Chromedp{
		browserCtx:    browserCtx,
		cancelAlloc:   cancelAlloc,
		cancelBrowser: cancelBrowser,
		opts:          opts,
	}, nil
}

// NewPage opens a new tab in the running browser
func (c *Chromedp) NewPage(ctx context.Context) (Page, error) {
	tabCtx, cancel := chromedp.NewContext(c.browserCtx)
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("open tab: %w", err)
	}
	return &chromedpPage{ctx: tabCtx, cancel: cancel, opts: c.opts}, nil
}

// Close shuts down the browser process
func (c *Chromedp) Close() error {
	err := chromedp.Cancel(c.browserCtx)
	c.cancelBrowser()
	c.cancelAlloc()
	return err
}

type chromedpPage struct {
	ctx    context.Context
	cancel context.CancelFunc
	opts   Options
}

// run executes actions on the tab, bounded by timeout and by the caller's ctx.
func (p *chromedpPage) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithTimeout(p.ctx, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(runCtx, actions...)
}

func (p *chromedpPage) Navigate(ctx context.Context, url string) error {
	return p.run(ctx, p.opts.NavigationTimeout, chromedp.Navigate(url))
}

func (p *chromedpPage) Reload(ctx context.Context) error {
	return p.run(ctx, p.opts.NavigationTimeout, chromedp.Reload())
}

func (p *chromedpPage) Locate(sel Selector) Element {
	css := sel.CSS
	if sel.Role != "" {
		if mapped, ok := roleSelectors[sel.Role]; ok {
			css = mapped
		} else {
			css = fmt.Sprintf(`[role=%q]`, sel.Role)
		}
	}
	return &chromedpElement{page: p, css: css}
}

func (p *chromedpPage) Sleep(ctx context.Context, d time.Duration) error {
	return sleep(ctx, d)
}

func (p *chromedpPage) Close() error {
	err := chromedp.Cancel(p.ctx)
	p.cancel()
	return err
}

// chromedpElement addresses the first node matching css; ByQuery always picks the first.
type chromedpElement struct {
	page *chromedpPage
	css  string
}

func (e *chromedpElement) WaitVisible(ctx context.Context, timeout time.Duration) error {
	return e.page.run(ctx, timeout, chromedp.WaitVisible(e.css, chromedp.ByQuery))
}

func (e *chromedpElement) Click(ctx context.Context) error {
	return e.page.run(ctx, e.page.opts.ActionTimeout, chromedp.Click(e.css, chromedp.ByQuery, chromedp.NodeVisible))
}

func (e *chromedpElement) Fill(ctx context.Context, text string) error {
	actions := []chromedp.Action{chromedp.Clear(e.css, chromedp.ByQuery)}
	if text != "" {
		actions = append(actions, chromedp.SendKeys(e.css, text, chromedp.ByQuery))
	}
	return e.page.run(ctx, e.page.opts.ActionTimeout, actions...)
}

func (e *chromedpElement) Type(ctx context.Context, text string, delay time.Duration) error {
	for _, r := range text {
		if err := e.page.run(ctx, e.page.opts.ActionTimeout, chromedp.SendKeys(e.css, string(r), chromedp.ByQuery)); err != nil {
			return err
		}
		if err := sleep(ctx, delay); err != nil {
			return err
		}
	}
	return nil
}

func (e *chromedpElement) Press(ctx context.Context, key string) error {
	if mapped, ok := keyNames[key]; ok {
		key = mapped
	}
	return e.page.run(ctx, e.page.opts.ActionTimeout, chromedp.SendKeys(e.css, key, chromedp.ByQuery))
}

func (e *chromedpElement) WaitForText(ctx context.Context, pattern *regexp.Regexp, timeout time.Duration) error {
	var matched bool
	return e.page.run(ctx, timeout, chromedp.Poll(textPredicate(e.css, pattern), &matched,
		chromedp.WithPollingInterval(textPollInterval),
		chromedp.WithPollingTimeout(timeout),
	))
}

// textPredicate is a JS expression that is true once the first node matching
// css has innerText matching pattern.
func textPredicate(css string, pattern *regexp.Regexp) string {
	sel, _ := json.Marshal(css)
	re, _ := json.Marshal(pattern.String())
	return fmt.Sprintf(`(function() { const el = document.querySelector(%s); return !!el && new RegExp(%s).test(el.innerText || ''); })()`, sel, re)
}

func (e *chromedpElement) Text(ctx context.Context) (string, error) {
	var text string
	js := "(document.querySelector(" + strconv.Quote(e.css) + ") || {}).innerText || ''"
	if err := e.page.run(ctx, e.page.opts.ActionTimeout, chromedp.Evaluate(js, &text)); err != nil {
		return "", err
	}
	return text, nil
}
