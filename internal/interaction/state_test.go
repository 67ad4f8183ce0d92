package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_String(t *testing.T) {
	assert.Equal(t, "PollingOutput", PollingOutput.String())
	assert.Equal(t, "Unknown", State(99).String())
}

func TestState_CanTransition(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{Idle, Navigating, true},
		{Navigating, InputReady, true},
		{PollingOutput, Stable, true},
		{PollingOutput, Stalled, true},
		{Stalled, Retry, true},
		{Retry, Navigating, true},
		{Idle, PollingOutput, false},
		{Stable, Retry, false},
		{Submitted, Navigating, false},
	}
	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}
