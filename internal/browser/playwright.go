package browser

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Playwright drives chromium through playwright-go
type Playwright struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	opts    Options
}

// NewPlaywright starts playwright and launches chromium
func NewPlaywright(opts Options) (*Playwright, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	bctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: opts.Width, Height: opts.Height},
	})
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("create browser context: %w", err)
	}
	bctx.SetDefaultTimeout(millis(opts.ActionTimeout))
	bctx.SetDefaultNavigationTimeout(millis(opts.NavigationTimeout))

	return &Playwright{pw: pw, browser: browser, context: bctx, opts: opts}, nil
}

// Install downloads the chromium build used by the Playwright driver
func Install() error {
	return playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}})
}

// NewPage opens a new tab
func (p *Playwright) NewPage(ctx context.Context) (Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page, err := p.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	return &playwrightPage{page: page, opts: p.opts}, nil
}

// Close shuts down the browser and the playwright server
func (p *Playwright) Close() error {
	if err := p.context.Close(); err != nil {
		return fmt.Errorf("close browser context: %w", err)
	}
	if err := p.browser.Close(); err != nil {
		return fmt.Errorf("close browser: %w", err)
	}
	return p.pw.Stop()
}

type playwrightPage struct {
	page playwright.Page
	opts Options
}

func (p *playwrightPage) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(millis(p.opts.NavigationTimeout)),
	})
	return err
}

func (p *playwrightPage) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.page.Reload(playwright.PageReloadOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(millis(p.opts.NavigationTimeout)),
	})
	return err
}

func (p *playwrightPage) Locate(sel Selector) Element {
	var loc playwright.Locator
	if sel.Role != "" {
		loc = p.page.GetByRole(playwright.AriaRole(sel.Role))
	} else {
		loc = p.page.Locator(sel.CSS)
	}
	return &playwrightElement{loc: loc.First()}
}

func (p *playwrightPage) Sleep(ctx context.Context, d time.Duration) error {
	return sleep(ctx, d)
}

func (p *playwrightPage) Close() error {
	return p.page.Close()
}

type playwrightElement struct {
	loc playwright.Locator
}

func (e *playwrightElement) WaitVisible(ctx context.Context, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(millis(timeout)),
	})
}

func (e *playwrightElement) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.loc.Click()
}

func (e *playwrightElement) Fill(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.loc.Fill(text)
}

func (e *playwrightElement) Type(ctx context.Context, text string, delay time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.loc.PressSequentially(text, playwright.LocatorPressSequentiallyOptions{
		Delay: playwright.Float(millis(delay)),
	})
}

func (e *playwrightElement) Press(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.loc.Press(key)
}

func (e *playwrightElement) WaitForText(ctx context.Context, pattern *regexp.Regexp, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return playwright.NewPlaywrightAssertions().Locator(e.loc).ToHaveText(pattern, toHaveTextOptions(timeout))
}

// toHaveTextOptions matches against innerText, as Text reads it
func toHaveTextOptions(timeout time.Duration) playwright.LocatorAssertionsToHaveTextOptions {
	return playwright.LocatorAssertionsToHaveTextOptions{
		Timeout:      playwright.Float(millis(timeout)),
		UseInnerText: playwright.Bool(true),
	}
}

func (e *playwrightElement) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return e.loc.InnerText()
}

func millis(d time.Duration) float64 {
	return float64(d.Milliseconds())
}
