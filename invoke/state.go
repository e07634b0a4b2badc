package invoke

// State is the position of a run in the load, resolve, invoke sequence.
type State int

const (
	StateUnloaded State = iota
	StateLoaded
	StateResolved
	StateInvoked
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoaded:
		return "loaded"
	case StateResolved:
		return "resolved"
	case StateInvoked:
		return "invoked"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Stage identifies which step of a run failed.
type Stage int

const (
	StageNone Stage = iota
	StageLoad
	StageResolve
)

func (s Stage) String() string {
	switch s {
	case StageNone:
		return "none"
	case StageLoad:
		return "load"
	case StageResolve:
		return "resolve"
	default:
		return "unknown"
	}
}

// Process exit statuses returned by Outcome.ExitCode.
const (
	ExitSuccess       = 0
	ExitUsage         = 1
	ExitLoadFailed    = 2
	ExitResolveFailed = 3
)

// Outcome is the terminal result of Run.
type Outcome struct {
	State State
	// Stage is StageNone unless State is StateFailed.
	Stage Stage
	Err   error
}

// Failed reports whether the run stopped before invoking the export.
func (o Outcome) Failed() bool {
	return o.State != StateInvoked
}

// ExitCode maps the outcome to a process exit status.
func (o Outcome) ExitCode() int {
	switch {
	case o.State == StateInvoked && o.Err == nil:
		return ExitSuccess
	case o.State == StateFailed && o.Stage == StageLoad:
		return ExitLoadFailed
	case o.State == StateFailed && o.Stage == StageResolve:
		return ExitResolveFailed
	default:
		return ExitUsage
	}
}
