package errors

import (
	"github.com/cockroachdb/errors"
)

// Dispatch errors.
var (
	// ErrUnknownTask is returned when the requested task has no registry entry.
	ErrUnknownTask = errors.New("unknown task")
	// ErrTaskFailed is returned when a task terminates with a non-zero status.
	ErrTaskFailed = errors.New("task failed")
	// ErrHelpRequested short-circuits dispatch to print usage. It is not a failure.
	ErrHelpRequested = errors.New("help requested")
	// ErrTaskPanicked is returned when a task body panics.
	ErrTaskPanicked = errors.New("task panicked")
	// ErrInterrupted is the cancellation cause used when a signal stops the run.
	ErrInterrupted = errors.New("interrupted")
)

// Registry errors.
var (
	ErrDuplicateTask = errors.New("task already registered")
	ErrEmptyTaskName = errors.New("task name must not be empty")
	ErrNilTaskFunc   = errors.New("task has no body")
	ErrTaskDepth     = errors.New("task call depth exceeded")
)

// Taskfile and configuration errors.
var (
	ErrTaskfileNotFound       = errors.New("taskfile not found")
	ErrReadTaskfile           = errors.New("failed to read taskfile")
	ErrParseTaskfile          = errors.New("failed to parse taskfile")
	ErrInvalidStep            = errors.New("invalid task step")
	ErrStepInvalidFormat      = errors.New("invalid step format")
	ErrStepUnexpectedKind     = errors.New("unexpected step node kind")
	ErrLoadConfig             = errors.New("failed to load configuration")
	ErrInvalidFlag            = errors.New("invalid flag")
	ErrLoadDotenv             = errors.New("failed to load dotenv file")
	ErrParseShellCommand      = errors.New("failed to parse shell command")
	ErrCreateShellInterpreter = errors.New("failed to create shell interpreter")
)
