package model

// State is the state of a chain run.
type State string

const (
	StatePending   State = "pending"
	StateRunning   State = "running"
	StateBroken    State = "broken"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

// Terminal reports whether no transition can leave the state.
func (s State) Terminal() bool {
	switch s {
	case StateBroken, StateCompleted, StateFailed:
		return true
	case StatePending, StateRunning:
		return false
	}

	return false
}

// Succeeded reports whether the command is usable downstream.
func (s State) Succeeded() bool {
	return s == StateBroken || s == StateCompleted
}

// LinkInfo describes a link of a chain.
type LinkInfo struct {
	Name  string
	Index int
}

var (
	StartLink = &LinkInfo{Name: "start", Index: -1}
	EndLink   = &LinkInfo{Name: "end", Index: -1}
)

// RunInfo describes one run of a chain against one command.
type RunInfo struct {
	ID        string
	CommandID string
	Kind      string
	State     State
	// Current is the link being performed, or the link that ended the run.
	Current *LinkInfo
	// BrokenAt is the name of the link that stopped the run early.
	BrokenAt string
	Err      error
}
