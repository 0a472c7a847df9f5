package controller

type State int

const (
	StateIdle State = iota
	StatePreviewing
	StateAnalyzing
	StateResultsShown
	StateErrorShown
)

var stateNames = map[State]string{
	StateIdle:         "idle",
	StatePreviewing:   "previewing",
	StateAnalyzing:    "analyzing",
	StateResultsShown: "results-shown",
	StateErrorShown:   "error-shown",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}
