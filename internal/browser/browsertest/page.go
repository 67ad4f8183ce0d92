// Package browsertest provides a scripted in-memory browser for tests.
package browsertest

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"ttp/internal/browser"
)

// Snapshot is the page state handed to an Output script
type Snapshot struct {
	Input       string // Current input field value
	Reads       int    // Output reads since the input last changed through Fill
	Navigations int    // Navigate and Reload calls so far
	Nudges      int    // Press calls on the input so far
}

// Page is a scripted browser.Page. Role selectors address the input field,
// CSS selectors address the output field.
type Page struct {
	mu sync.Mutex

	// Output computes the output field text for each read; nil means always empty.
	Output func(Snapshot) string
	// NavigateErrs is consumed one entry per Navigate or Reload call.
	NavigateErrs []error
	// InputHidden and OutputHidden make WaitVisible time out.
	InputHidden  bool
	OutputHidden bool

	state  Snapshot
	calls  []string
	slept  time.Duration
	closed bool
}

// Calls returns the operations performed on the page, in order
func (p *Page) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.calls...)
}

// Slept returns the total simulated time spent in Sleep and waits
func (p *Page) Slept() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.slept
}

// Closed reports whether Close was called
func (p *Page) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// Input returns the current input field value
func (p *Page) Input() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Input
}

func (p *Page) record(format string, args ...any) {
	p.calls = append(p.calls, fmt.Sprintf(format, args...))
}

func (p *Page) navigate(ctx context.Context, call string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("%s", call)
	p.state.Navigations++
	p.state.Input = ""
	p.state.Reads = 0
	if len(p.NavigateErrs) > 0 {
		err := p.NavigateErrs[0]
		p.NavigateErrs = p.NavigateErrs[1:]
		return err
	}
	return nil
}

func (p *Page) Navigate(ctx context.Context, url string) error {
	return p.navigate(ctx, "navigate "+url)
}

func (p *Page) Reload(ctx context.Context) error {
	return p.navigate(ctx, "reload")
}

func (p *Page) Locate(sel browser.Selector) browser.Element {
	return &element{page: p, input: sel.Role != ""}
}

func (p *Page) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("sleep %s", d)
	p.slept += d
	return nil
}

func (p *Page) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// readOutput must be called with p.mu held.
func (p *Page) readOutput() string {
	p.state.Reads++
	if p.Output == nil {
		return ""
	}
	return p.Output(p.state)
}

type element struct {
	page  *Page
	input bool
}

func (e *element) name() string {
	if e.input {
		return "input"
	}
	return "output"
}

func (e *element) WaitVisible(ctx context.Context, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p := e.page
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("wait-visible %s", e.name())
	hidden := p.OutputHidden
	if e.input {
		hidden = p.InputHidden
	}
	if hidden {
		p.slept += timeout
		return fmt.Errorf("%s not visible after %s", e.name(), timeout)
	}
	return nil
}

func (e *element) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.page.mu.Lock()
	defer e.page.mu.Unlock()
	e.page.record("click %s", e.name())
	return nil
}

func (e *element) Fill(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p := e.page
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("fill %s %q", e.name(), text)
	if e.input {
		p.state.Input = text
		p.state.Reads = 0
	}
	return nil
}

func (e *element) Type(ctx context.Context, text string, delay time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p := e.page
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("type %s %q", e.name(), text)
	if e.input {
		p.state.Input += text
	}
	p.slept += time.Duration(len([]rune(text))) * delay
	return nil
}

func (e *element) Press(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p := e.page
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("press %s %s", e.name(), key)
	if e.input {
		p.state.Nudges++
	}
	return nil
}

func (e *element) WaitForText(ctx context.Context, pattern *regexp.Regexp, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p := e.page
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("wait-text %s %s", e.name(), pattern)
	if !e.input && pattern.MatchString(p.readOutput()) {
		return nil
	}
	p.slept += timeout
	return fmt.Errorf("text did not match %s within %s", pattern, timeout)
}

func (e *element) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p := e.page
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("text %s", e.name())
	if e.input {
		return p.state.Input, nil
	}
	return p.readOutput(), nil
}

// Constant returns an Output script that always shows text
func Constant(text string) func(Snapshot) string {
	return func(Snapshot) string { return text }
}

// AfterReads returns an Output script that shows text from the n-th read after a fill
func AfterReads(n int, text string) func(Snapshot) string {
	return func(s Snapshot) string {
		if s.Reads >= n {
			return text
		}
		return ""
	}
}

// AfterNudge returns an Output script that stays empty until the input is nudged
func AfterNudge(text string) func(Snapshot) string {
	return func(s Snapshot) string {
		if s.Nudges > 0 {
			return text
		}
		return ""
	}
}

// Translations returns an Output script that answers from a lookup table keyed
// by the trimmed input value.
func Translations(table map[string]string) func(Snapshot) string {
	return func(s Snapshot) string {
		return table[strings.TrimSpace(s.Input)]
	}
}
