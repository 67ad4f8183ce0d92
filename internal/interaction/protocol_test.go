package interaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ttp/internal/browser/browsertest"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.URL = "https://translator.test/"
	return opts
}

func count(calls []string, call string) int {
	n := 0
	for _, c := range calls {
		if c == call {
			n++
		}
	}
	return n
}

func TestTranslate_StableOnFirstPoll(t *testing.T) {
	page := &browsertest.Page{Output: browsertest.Translations(map[string]string{
		"mama gedhara yanavaa.": "මම   ගෙදර\nයනවා. ",
	})}
	p := New(page, testOptions(), logr.Discard())

	out, err := p.Translate(context.Background(), "mama gedhara yanavaa.")
	require.NoError(t, err)
	assert.Equal(t, "මම ගෙදර යනවා.", out)

	stats := p.Stats()
	assert.Equal(t, 1, stats.Cycles)
	assert.Equal(t, 1, stats.Polls)
	assert.False(t, stats.Nudged)
	assert.Equal(t, Done, p.State())

	assert.Equal(t, []string{
		"navigate https://translator.test/",
		"wait-visible input",
		"wait-visible output",
		"click input",
		`fill input ""`,
		"sleep 150ms",
		`fill input "mama gedhara yanavaa."`,
		"sleep 1.5s",
		"text output",
	}, page.Calls())
}

func TestTranslate_StableAfterSeveralPolls(t *testing.T) {
	page := &browsertest.Page{Output: browsertest.AfterReads(2, "මට කියන්න.")}
	p := New(page, testOptions(), logr.Discard())

	out, err := p.Translate(context.Background(), "mata kiyanna.")
	require.NoError(t, err)
	assert.Equal(t, "මට කියන්න.", out)
	assert.Equal(t, 2, p.Stats().Polls)
	assert.False(t, p.Stats().Nudged)
}

func TestTranslate_NudgeRecovers(t *testing.T) {
	page := &browsertest.Page{Output: browsertest.AfterNudge("ඔයාට කොහොමද?")}
	p := New(page, testOptions(), logr.Discard())

	out, err := p.Translate(context.Background(), "oyaata kohomadha?")
	require.NoError(t, err)
	assert.Equal(t, "ඔයාට කොහොමද?", out)

	stats := p.Stats()
	assert.True(t, stats.Nudged)
	assert.Equal(t, 1, stats.Cycles)
	assert.Equal(t, 4, stats.Polls)

	calls := page.Calls()
	assert.Equal(t, 1, count(calls, "press input End"))
	assert.Equal(t, 1, count(calls, `type input "?"`))
	assert.Equal(t, "oyaata kohomadha??", page.Input())
}

func TestTranslate_NudgeEmptyInputTypesDot(t *testing.T) {
	page := &browsertest.Page{Output: browsertest.AfterNudge("ok")}
	p := New(page, testOptions(), logr.Discard())

	_, err := p.Translate(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 1, count(page.Calls(), `type input "."`))
}

func TestTranslate_ReloadCycles(t *testing.T) {
	// Output appears only after the page has been loaded three times.
	page := &browsertest.Page{Output: func(s browsertest.Snapshot) string {
		if s.Navigations >= 3 && s.Input != "" {
			return "හෙට"
		}
		return ""
	}}
	p := New(page, testOptions(), logr.Discard())

	out, err := p.Translate(context.Background(), "heta")
	require.NoError(t, err)
	assert.Equal(t, "හෙට", out)

	calls := page.Calls()
	assert.Equal(t, 1, count(calls, "navigate https://translator.test/"))
	assert.Equal(t, 2, count(calls, "reload"))
	assert.Equal(t, 3, p.Stats().Cycles)
	assert.Equal(t, 13, p.Stats().Polls)
}

func TestTranslate_ExhaustionReturnsEmptyWithinBound(t *testing.T) {
	opts := testOptions()
	opts.SettleDelay = 0
	opts.NudgeDelay = 0
	page := &browsertest.Page{}
	p := New(page, opts, logr.Discard())

	out, err := p.Translate(context.Background(), "asdfgh")
	require.NoError(t, err)
	assert.Empty(t, out)

	bound := time.Duration(opts.MaxCycles*opts.PollAttempts) * opts.PollInterval
	assert.Equal(t, bound, opts.MaxPollingDuration())
	assert.LessOrEqual(t, page.Slept(), bound)

	stats := p.Stats()
	assert.Equal(t, opts.MaxCycles, stats.Cycles)
	assert.Equal(t, opts.MaxCycles*opts.PollAttempts, stats.Polls)
	assert.True(t, stats.Nudged)
	assert.Equal(t, opts.MaxCycles, count(page.Calls(), "press input End"))
	assert.Equal(t, Done, p.State())
}

func TestTranslate_ExhaustionWithDefaultsStaysWithinMaxPollingDuration(t *testing.T) {
	opts := testOptions()
	page := &browsertest.Page{}
	p := New(page, opts, logr.Discard())

	out, err := p.Translate(context.Background(), "xyz")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.LessOrEqual(t, page.Slept(), opts.MaxPollingDuration())
}

func TestTranslate_FinalReadReturnsLateOutput(t *testing.T) {
	opts := testOptions()
	opts.MaxCycles = 1
	opts.NudgeAfter = 0
	page := &browsertest.Page{Output: browsertest.AfterReads(opts.PollAttempts+1, "late")}
	p := New(page, opts, logr.Discard())

	out, err := p.Translate(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "late", out)
	assert.False(t, p.Stats().Nudged)
}

func TestTranslate_NavigationErrorIsRetried(t *testing.T) {
	page := &browsertest.Page{
		Output:       browsertest.Constant("මම"),
		NavigateErrs: []error{errors.New("net::ERR_CONNECTION_RESET")},
	}
	p := New(page, testOptions(), logr.Discard())

	out, err := p.Translate(context.Background(), "mama")
	require.NoError(t, err)
	assert.Equal(t, "මම", out)
	assert.Equal(t, 2, p.Stats().Cycles)
	// A failed load is followed by a fresh navigation, not a reload.
	assert.Equal(t, 2, count(page.Calls(), "navigate https://translator.test/"))
	assert.Equal(t, 0, count(page.Calls(), "reload"))
}

func TestTranslate_NavigationErrorsExhaustCycles(t *testing.T) {
	boom := errors.New("net::ERR_NAME_NOT_RESOLVED")
	page := &browsertest.Page{NavigateErrs: []error{boom, boom, boom}}
	p := New(page, testOptions(), logr.Discard())

	_, err := p.Translate(context.Background(), "mama")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotContains(t, page.Calls(), "text output")
}

func TestTranslate_ReloadFailuresAfterStallReadOutput(t *testing.T) {
	boom := errors.New("net::ERR_CONNECTION_RESET")
	tests := []struct {
		name   string
		output func(browsertest.Snapshot) string
		want   string
	}{
		{name: "empty field", want: ""},
		{
			name: "output left by the first load",
			output: func(s browsertest.Snapshot) string {
				if s.Navigations >= 3 {
					return "  මම  "
				}
				return ""
			},
			want: "මම",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := &browsertest.Page{Output: tt.output, NavigateErrs: []error{nil, boom, boom}}
			p := New(page, testOptions(), logr.Discard())

			out, err := p.Translate(context.Background(), "mama")
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
			assert.Equal(t, 3, p.Stats().Cycles)
			assert.Equal(t, "text output", page.Calls()[len(page.Calls())-1])
			assert.Equal(t, Done, p.State())
		})
	}
}

func TestTranslate_FieldsNotReady(t *testing.T) {
	tests := []struct {
		name string
		page *browsertest.Page
		want string
	}{
		{name: "input hidden", page: &browsertest.Page{InputHidden: true}, want: "input"},
		{name: "output hidden", page: &browsertest.Page{OutputHidden: true}, want: "output"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions()
			p := New(tt.page, opts, logr.Discard())

			_, err := p.Translate(context.Background(), "mama")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrFieldsNotReady)
			assert.Contains(t, err.Error(), tt.want)
			assert.Equal(t, 1, p.Stats().Cycles)
			assert.Equal(t, opts.ReadyTimeout, tt.page.Slept())
		})
	}
}

func TestTranslate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	page := &browsertest.Page{}
	p := New(page, testOptions(), logr.Discard())

	_, err := p.Translate(ctx, "mama")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTypeAndWait(t *testing.T) {
	page := &browsertest.Page{Output: func(s browsertest.Snapshot) string {
		if s.Input == "" {
			return ""
		}
		return "මම ගෙදර යනවා"
	}}
	opts := testOptions()
	p := New(page, opts, logr.Discard())

	out, err := p.TypeAndWait(context.Background(), "mama gedhara yanavaa")
	require.NoError(t, err)
	assert.Equal(t, "මම ගෙදර යනවා", out)
	assert.Equal(t, []string{
		"navigate https://translator.test/",
		"wait-visible input",
		"click input",
		`type input "mama gedhara yanavaa"`,
		"wait-text output .+",
		"text output",
	}, page.Calls())
	assert.Equal(t, time.Duration(len("mama gedhara yanavaa"))*opts.TypeDelay, page.Slept())
}

func TestTypeAndWait_OutputStaysEmpty(t *testing.T) {
	page := &browsertest.Page{}
	opts := testOptions()
	p := New(page, opts, logr.Discard())

	out, err := p.TypeAndWait(context.Background(), "abc")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, Done, p.State())
	assert.GreaterOrEqual(t, page.Slept(), opts.UIOutputTimeout)
}

func TestTypeAndWait_InputNotReady(t *testing.T) {
	page := &browsertest.Page{InputHidden: true}
	p := New(page, testOptions(), logr.Discard())

	_, err := p.TypeAndWait(context.Background(), "abc")
	assert.ErrorIs(t, err, ErrFieldsNotReady)
}

func TestMaxPollingDuration(t *testing.T) {
	opts := DefaultOptions()
	// 3 × (150ms + 25ms + 6 × 1.5s)
	assert.Equal(t, 27525*time.Millisecond, opts.MaxPollingDuration())

	opts.NudgeAfter = opts.PollAttempts
	assert.Equal(t, 27450*time.Millisecond, opts.MaxPollingDuration())
}
