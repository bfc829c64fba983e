package task

import (
	"fmt"

	errUtils "github.com/cloudposse/dispatch/errors"
)

// UnknownTaskError reports a name with no registry entry.
// The error carries exit code 127 and a hint pointing at the task listing.
func UnknownTaskError(name string) error {
	return errUtils.Build(fmt.Errorf("%w: %s", errUtils.ErrUnknownTask, name)).
		WithHint("Run 'dispatch tasks' to list the available tasks").
		WithContext("task", name).
		WithExitCode(errUtils.ExitCodeUnknownTask).
		Err()
}

func callDepthError(name string) error {
	return errUtils.Build(fmt.Errorf("%w: %s", errUtils.ErrTaskDepth, name)).
		WithExplanationf("calling %q would exceed %d nested task calls", name, MaxDepth).
		Err()
}
