package taskfile

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -source=$GOFILE -destination=mock_$GOFILE -package=$GOPACKAGE

import (
	"context"
	"os"

	"mvdan.cc/sh/v3/interp"

	log "github.com/cloudposse/dispatch/pkg/logger"
	"github.com/cloudposse/dispatch/pkg/shell"
	"github.com/cloudposse/dispatch/pkg/task"
)

// StepRequest describes one step of a task about to run.
type StepRequest struct {
	Task    string
	Step    string
	Command string
	Dir     string
	Env     []string
	Args    []string

	// Invocation is the task call the step belongs to. Streams are taken
	// from it and nested task calls are made through it.
	Invocation *task.Invocation
}

// StepRunner executes a single step.
type StepRunner interface {
	RunStep(ctx context.Context, req *StepRequest) error
}

// ShellStepRunner runs steps with the in-process shell. Every registered
// task is available to the step as a command of the same name, and `log`
// writes lines prefixed with the base name of the Taskfile. All steps,
// including parallel ones, log through the same Prefixer.
type ShellStepRunner struct {
	logger *log.Prefixer
}

// NewShellStepRunner creates a ShellStepRunner for program.
func NewShellStepRunner(program string) *ShellStepRunner {
	return &ShellStepRunner{logger: log.NewPrefixer(os.Stderr, program)}
}

// RunStep implements StepRunner.
func (r *ShellStepRunner) RunStep(ctx context.Context, req *StepRequest) error {
	inv := req.Invocation
	return shell.Run(ctx, req.Command, shell.Options{
		Name:     req.Task + ": " + req.Step,
		Dir:      req.Dir,
		Env:      req.Env,
		Args:     req.Args,
		Stdin:    inv.Stdin,
		Stdout:   inv.Stdout,
		Stderr:   inv.Stderr,
		Builtins: r.builtins(inv),
	})
}

func (r *ShellStepRunner) builtins(inv *task.Invocation) map[string]shell.Builtin {
	builtins := make(map[string]shell.Builtin, inv.Registry.Len()+1)
	for _, name := range inv.Registry.Names() {
		builtins[name] = taskBuiltin(inv, name)
	}
	// log always refers to the logging helper, even if a task shadows it.
	builtins[shell.LogBuiltinName] = shell.LogBuiltin(r.logger)
	return builtins
}

// taskBuiltin calls the task name with the script's current streams,
// directory and exported environment.
func taskBuiltin(inv *task.Invocation, name string) shell.Builtin {
	return func(ctx context.Context, hc interp.HandlerContext, args []string) error {
		caller := *inv
		caller.Stdin = hc.Stdin
		caller.Stdout = hc.Stdout
		caller.Stderr = hc.Stderr
		caller.Dir = hc.Dir
		caller.Env = shell.Environ(hc)
		return task.Call(ctx, &caller, name, args...)
	}
}
