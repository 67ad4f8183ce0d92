package browser

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelector_String(t *testing.T) {
	assert.Equal(t, "role=textbox", Role("textbox").String())
	assert.Equal(t, ".output", CSS(".output").String())
	assert.Equal(t, "role=textbox", Selector{Role: "textbox", CSS: ".ignored"}.String())
}

func TestLaunch_UnknownDriver(t *testing.T) {
	_, err := Launch(context.Background(), "selenium", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "selenium")
}

func TestTextPredicate(t *testing.T) {
	tests := []struct {
		name    string
		css     string
		pattern *regexp.Regexp
		want    []string
	}{
		{
			name:    "any text",
			css:     ".output",
			pattern: regexp.MustCompile(`.+`),
			want:    []string{`document.querySelector(".output")`, `new RegExp(".+")`, `!!el &&`},
		},
		{
			name:    "quotes and backslashes are escaped",
			css:     `div[data-role="out"]`,
			pattern: regexp.MustCompile(`\S+`),
			want:    []string{`document.querySelector("div[data-role=\"out\"]")`, `new RegExp("\\S+")`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			js := textPredicate(tt.css, tt.pattern)
			for _, w := range tt.want {
				assert.Contains(t, js, w)
			}
		})
	}
}

func TestToHaveTextOptions(t *testing.T) {
	opts := toHaveTextOptions(60 * time.Second)
	require.NotNil(t, opts.Timeout)
	assert.Equal(t, float64(60000), *opts.Timeout)
	require.NotNil(t, opts.UseInnerText)
	assert.True(t, *opts.UseInnerText)
}

func TestSleep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleep(ctx, time.Hour), context.Canceled)
}
