package interaction

import (
	"time"

	"ttp/internal/browser"
	"ttp/internal/config"
)

// Options bounds every wait in the protocol
type Options struct {
	URL    string
	Input  browser.Selector
	Output browser.Selector

	ReadyTimeout    time.Duration
	SettleDelay     time.Duration
	PollInterval    time.Duration
	PollAttempts    int
	NudgeAfter      int
	NudgeDelay      time.Duration
	MaxCycles       int
	TypeDelay       time.Duration
	UIOutputTimeout time.Duration
}

// OptionsFromConfig maps the interaction knobs of cfg
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		URL:             cfg.TargetURL,
		Input:           browser.Role(cfg.InputRole),
		Output:          browser.CSS(cfg.OutputSelector),
		ReadyTimeout:    cfg.ReadyTimeout,
		SettleDelay:     cfg.SettleDelay,
		PollInterval:    cfg.PollInterval,
		PollAttempts:    cfg.PollAttempts,
		NudgeAfter:      cfg.NudgeAfter,
		NudgeDelay:      cfg.NudgeDelay,
		MaxCycles:       cfg.MaxCycles,
		TypeDelay:       cfg.TypeDelay,
		UIOutputTimeout: cfg.UIOutputTimeout,
	}
}

// DefaultOptions returns the options built from the default config
func DefaultOptions() Options {
	return OptionsFromConfig(config.New())
}

// nudges reports whether a nudge can fire within a cycle
func (o Options) nudges() bool {
	return o.NudgeAfter > 0 && o.NudgeAfter < o.PollAttempts
}

// MaxPollingDuration is the longest time Translate spends waiting on the page
// when every field is ready at once. With no settle or nudge delay it equals
// MaxCycles × PollAttempts × PollInterval.
func (o Options) MaxPollingDuration() time.Duration {
	perCycle := o.SettleDelay + time.Duration(o.PollAttempts)*o.PollInterval
	if o.nudges() {
		perCycle += o.NudgeDelay
	}
	return time.Duration(o.MaxCycles) * perCycle
}
