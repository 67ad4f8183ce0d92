// Package interaction drives the translator page through the
// navigate, submit, poll and retry cycle.
package interaction

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/go-logr/logr"

	"ttp/internal/browser"
	"ttp/internal/textnorm"
)

// ErrFieldsNotReady is returned when the input or output field never becomes visible
var ErrFieldsNotReady = errors.New("translator fields not ready")

var anyText = regexp.MustCompile(`.+`)

// Translator turns source text into the text the page displays
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Stats describes what the last call did
type Stats struct {
	Cycles      int
	Polls       int
	Navigations int
	Nudged      bool
	Final       State
}

// Protocol runs the interaction state machine over one page
type Protocol struct {
	page  browser.Page
	opts  Options
	log   logr.Logger
	state State
	stats Stats
}

// New creates a protocol bound to page
func New(page browser.Page, opts Options, log logr.Logger) *Protocol {
	return &Protocol{
		page: page,
		opts: opts,
		log:  log,
	}
}

// State returns the current state
func (p *Protocol) State() State {
	return p.state
}

// Stats returns the stats of the last Translate or TypeAndWait call
func (p *Protocol) Stats() Stats {
	return p.stats
}

func (p *Protocol) enter(to State, kv ...any) {
	if !p.state.CanTransition(to) {
		p.log.Error(nil, "unexpected transition", "from", p.state, "to", to)
	}
	p.log.V(1).Info("transition", append([]any{"from", p.state, "to", to, "cycle", p.stats.Cycles}, kv...)...)
	p.state = to
	p.stats.Final = to
}

func (p *Protocol) reset() {
	p.state = Idle
	p.stats = Stats{Final: Idle}
}

// Translate submits text and returns the normalized output. When the cycles run
// out after the page loaded at least once it returns whatever the output field
// holds, possibly empty, with a nil error, even if the later loads failed. A
// page that never loads is an error. Fields that never become ready end the
// call with ErrFieldsNotReady.
func (p *Protocol) Translate(ctx context.Context, text string) (string, error) {
	p.reset()
	input := p.page.Locate(p.opts.Input)
	output := p.page.Locate(p.opts.Output)

	loaded, everLoaded := false, false
	var navErr error
	for cycle := 1; cycle <= p.opts.MaxCycles; cycle++ {
		p.stats.Cycles = cycle
		p.enter(Navigating)
		if err := p.load(ctx, loaded); err != nil {
			if ctx.Err() != nil {
				p.enter(Done)
				return "", ctx.Err()
			}
			navErr = err
			loaded = false
			p.log.Info("navigation failed", "cycle", cycle, "error", err.Error())
			p.enter(Retry)
			continue
		}
		loaded, everLoaded = true, true

		if err := p.ready(ctx, input, output); err != nil {
			p.enter(Done)
			return "", err
		}

		p.enter(Submitted)
		if err := p.submit(ctx, input, text); err != nil {
			p.enter(Done)
			return "", err
		}

		p.enter(PollingOutput)
		out, err := p.poll(ctx, input, output, text)
		if err != nil {
			p.enter(Done)
			return "", err
		}
		if out != "" {
			p.enter(Stable, "polls", p.stats.Polls)
			p.enter(Done)
			return out, nil
		}
		p.enter(Stalled)
		p.enter(Retry)
	}

	if !everLoaded {
		p.enter(Done)
		return "", fmt.Errorf("navigate %s after %d cycles: %w", p.opts.URL, p.opts.MaxCycles, navErr)
	}

	out, err := output.Text(ctx)
	p.enter(Done)
	if err != nil {
		if !loaded && ctx.Err() == nil {
			p.log.Info("output unreadable after failed reload", "error", err.Error())
			return "", nil
		}
		return "", fmt.Errorf("read output: %w", err)
	}
	return textnorm.Normalize(out), nil
}

// load navigates on a fresh page and reloads once the target has been reached
func (p *Protocol) load(ctx context.Context, loaded bool) error {
	p.stats.Navigations++
	if loaded {
		return p.page.Reload(ctx)
	}
	return p.page.Navigate(ctx, p.opts.URL)
}

func (p *Protocol) ready(ctx context.Context, input, output browser.Element) error {
	if err := input.WaitVisible(ctx, p.opts.ReadyTimeout); err != nil {
		return fmt.Errorf("%w: input %s: %v", ErrFieldsNotReady, p.opts.Input, err)
	}
	if err := output.WaitVisible(ctx, p.opts.ReadyTimeout); err != nil {
		return fmt.Errorf("%w: output %s: %v", ErrFieldsNotReady, p.opts.Output, err)
	}
	p.enter(InputReady)
	return nil
}

func (p *Protocol) submit(ctx context.Context, input browser.Element, text string) error {
	if err := input.Click(ctx); err != nil {
		return fmt.Errorf("focus input: %w", err)
	}
	if err := input.Fill(ctx, ""); err != nil {
		return fmt.Errorf("clear input: %w", err)
	}
	if err := p.page.Sleep(ctx, p.opts.SettleDelay); err != nil {
		return err
	}
	if err := input.Fill(ctx, text); err != nil {
		return fmt.Errorf("fill input: %w", err)
	}
	return nil
}

// poll reads the output until it is non-empty or the attempts run out
func (p *Protocol) poll(ctx context.Context, input, output browser.Element, text string) (string, error) {
	for attempt := 1; attempt <= p.opts.PollAttempts; attempt++ {
		if err := p.page.Sleep(ctx, p.opts.PollInterval); err != nil {
			return "", err
		}
		p.stats.Polls++
		raw, err := output.Text(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			p.log.V(1).Info("read output failed", "attempt", attempt, "error", err.Error())
		}
		if out := textnorm.Normalize(raw); out != "" {
			return out, nil
		}

		if p.opts.nudges() && attempt == p.opts.NudgeAfter {
			if err := p.nudge(ctx, input, text); err != nil {
				if ctx.Err() != nil {
					return "", ctx.Err()
				}
				p.log.V(1).Info("nudge failed", "error", err.Error())
			}
		}
	}
	return "", nil
}

// nudge retypes the last input character so the page recomputes its output
func (p *Protocol) nudge(ctx context.Context, input browser.Element, text string) error {
	p.stats.Nudged = true
	last := "."
	if r := []rune(text); len(r) > 0 {
		last = string(r[len(r)-1])
	}
	p.log.V(1).Info("nudge", "cycle", p.stats.Cycles, "char", last)
	if err := input.Press(ctx, "End"); err != nil {
		return err
	}
	return input.Type(ctx, last, p.opts.NudgeDelay)
}

// TypeAndWait types text gradually and waits for any output to appear. A
// page that never shows output yields an empty string and a nil error.
func (p *Protocol) TypeAndWait(ctx context.Context, text string) (string, error) {
	p.reset()
	p.stats.Cycles = 1
	input := p.page.Locate(p.opts.Input)
	output := p.page.Locate(p.opts.Output)

	p.enter(Navigating)
	p.stats.Navigations++
	if err := p.page.Navigate(ctx, p.opts.URL); err != nil {
		p.enter(Done)
		return "", fmt.Errorf("navigate %s: %w", p.opts.URL, err)
	}
	if err := input.WaitVisible(ctx, p.opts.ReadyTimeout); err != nil {
		p.enter(Done)
		return "", fmt.Errorf("%w: input %s: %v", ErrFieldsNotReady, p.opts.Input, err)
	}
	p.enter(InputReady)

	p.enter(Submitted)
	if err := input.Click(ctx); err != nil {
		p.enter(Done)
		return "", fmt.Errorf("focus input: %w", err)
	}
	if err := input.Type(ctx, text, p.opts.TypeDelay); err != nil {
		p.enter(Done)
		return "", fmt.Errorf("type input: %w", err)
	}

	p.enter(PollingOutput)
	p.stats.Polls++
	if err := output.WaitForText(ctx, anyText, p.opts.UIOutputTimeout); err != nil {
		if ctx.Err() != nil {
			p.enter(Done)
			return "", ctx.Err()
		}
		p.log.Info("output stayed empty", "timeout", p.opts.UIOutputTimeout.String())
		p.enter(Stalled)
		p.enter(Done)
		return "", nil
	}

	out, err := output.Text(ctx)
	if err != nil {
		p.enter(Done)
		return "", fmt.Errorf("read output: %w", err)
	}
	p.enter(Stable)
	p.enter(Done)
	return textnorm.Normalize(out), nil
}
