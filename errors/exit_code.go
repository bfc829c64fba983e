package errors

import (
	"fmt"
	"os/exec"

	"github.com/cockroachdb/errors"
)

// Well-known exit codes.
const (
	// ExitCodeUnknownTask follows the shell convention for "command not found".
	ExitCodeUnknownTask = 127
	// ExitCodePanic is used when a task body panics.
	ExitCodePanic = 2
	// ExitCodeInterrupt is 128 + SIGINT, used when a run is cancelled without a signal-specific code.
	ExitCodeInterrupt = 130
)

// ExitCodeError carries the exit status of a task or shell command.
type ExitCodeError struct {
	Code int
}

func (e ExitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// exitCoder wraps an error and specifies an exit code.
type exitCoder struct {
	cause error
	code  int
}

func (e *exitCoder) Error() string {
	return e.cause.Error()
}

func (e *exitCoder) Cause() error {
	return e.cause
}

func (e *exitCoder) Unwrap() error {
	return e.cause
}

// ExitCode returns the exit code.
func (e *exitCoder) ExitCode() int {
	return e.code
}

// WithExitCode attaches an exit code to an error.
// The exit code can be retrieved later using GetExitCode.
func WithExitCode(err error, code int) error {
	if err == nil {
		return nil
	}
	return &exitCoder{
		cause: err,
		code:  code,
	}
}

// GetExitCode extracts the exit code from an error chain.
// Returns 0 if err is nil, 1 by default, or the specified exit code.
//
// It checks for exit codes in this order:
//  1. exitCoder attached via WithExitCode.
//  2. ExitCodeError from shell execution.
//  3. exec.ExitError from command execution.
//  4. Default to 1.
func GetExitCode(err error) int {
	if err == nil {
		return 0
	}

	var ec *exitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}

	var exitCodeErr ExitCodeError
	if errors.As(err, &exitCodeErr) {
		return exitCodeErr.Code
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	return 1
}

// IsExitStatusOnly reports whether err says nothing beyond an exit status,
// such as a shell command that failed after printing its own diagnostics.
func IsExitStatusOnly(err error) bool {
	var status ExitCodeError
	if !errors.As(err, &status) {
		return false
	}
	return err.Error() == status.Error()
}
