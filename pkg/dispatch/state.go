package dispatch

// State is the lifecycle of a single dispatch run.
type State int

const (
	NotStarted State = iota
	Running
	Terminated
)

func (s State) String() string {
	switch s {
	case Running:
		return "RUNNING"
	case Terminated:
		return "TERMINATED"
	default:
		return "NOT_STARTED"
	}
}
