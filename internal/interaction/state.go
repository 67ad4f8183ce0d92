package interaction

// State is a step of the translate cycle
type State int

const (
	Idle State = iota
	Navigating
	InputReady
	Submitted
	PollingOutput
	Stable
	Stalled
	Retry
	Done
)

var stateNames = [...]string{
	Idle:          "Idle",
	Navigating:    "Navigating",
	InputReady:    "InputReady",
	Submitted:     "Submitted",
	PollingOutput: "PollingOutput",
	Stable:        "Stable",
	Stalled:       "Stalled",
	Retry:         "Retry",
	Done:          "Done",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// transitions lists the states reachable from each state
var transitions = map[State][]State{
	Idle:          {Navigating},
	Navigating:    {InputReady, Retry, Done},
	InputReady:    {Submitted, Done},
	Submitted:     {PollingOutput, Done},
	PollingOutput: {Stable, Stalled, Done},
	Stable:        {Done},
	Stalled:       {Retry, Done},
	Retry:         {Navigating, Done},
	Done:          {Idle},
}

// CanTransition reports whether to is reachable from s in one step
func (s State) CanTransition(to State) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}
