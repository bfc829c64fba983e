// Package dispatch resolves a task name from the command line, runs the task
// and frames the run with begin, end and outcome markers.
package dispatch

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"al.essio.dev/pkg/shellescape"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	errUtils "github.com/cloudposse/dispatch/errors"
	"github.com/cloudposse/dispatch/pkg/env"
	log "github.com/cloudposse/dispatch/pkg/logger"
	"github.com/cloudposse/dispatch/pkg/task"
	"github.com/cloudposse/dispatch/pkg/ui"
)

// DefaultTaskName is run when no task is named on the command line.
const DefaultTaskName = "default"

// HelpFunc returns the usage text, one entry per line.
type HelpFunc func() ([]string, error)

// Options configures a Dispatcher.
type Options struct {
	// Program is the name markers and log lines are prefixed with.
	Program string
	// DefaultTask replaces DefaultTaskName when set.
	DefaultTask string
	// Help supplies the text printed for -h and --help.
	Help HelpFunc

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Dir is the working directory tasks start in.
	Dir string
	// Env is the environment handed to tasks. Nil means os.Environ().
	Env []string

	// Now is the clock used for timing. Nil means time.Now.
	Now func() time.Time
}

// Dispatcher runs one task per call to Dispatch.
type Dispatcher struct {
	registry *task.Registry
	opts     Options
}

// New creates a Dispatcher resolving names against registry.
func New(registry *task.Registry, opts Options) *Dispatcher {
	if opts.DefaultTask == "" {
		opts.DefaultTask = DefaultTaskName
	}
	if opts.Program == "" {
		opts.Program = os.Args[0]
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Dispatcher{registry: registry, opts: opts}
}

// HelpRequested reports whether any of args is exactly -h or --help.
// Substrings such as "--helpful" or "a-h" do not count.
func HelpRequested(args []string) bool {
	return lo.ContainsBy(args, func(arg string) bool {
		return arg == "-h" || arg == "--help"
	})
}

// ParseArgs splits args into the task name and its arguments, falling back to
// defaultTask when args is empty. It returns ErrHelpRequested when help was asked for.
func ParseArgs(args []string, defaultTask string) (string, []string, error) {
	if HelpRequested(args) {
		return "", nil, errUtils.ErrHelpRequested
	}
	if len(args) == 0 {
		return defaultTask, nil, nil
	}
	return args[0], args[1:], nil
}

// Dispatch runs the task named by args[0] with the remaining arguments and
// returns the process exit code. With no arguments the default task runs.
// Cancelling ctx stops the task; the run still ends with ERROR and END.
func (d *Dispatcher) Dispatch(ctx context.Context, args []string) int {
	name, rest, err := ParseArgs(args, d.opts.DefaultTask)
	if errors.Is(err, errUtils.ErrHelpRequested) {
		return d.PrintHelp()
	}

	run := d.NewRun()
	run.Begin()
	defer run.End()

	t, ok := d.registry.Lookup(name)
	if !ok {
		d.printError(task.UnknownTaskError(name))
		return run.Abort(errUtils.ExitCodeUnknownTask)
	}

	log.Debug("Dispatching task", "task", name, "command", shellescape.QuoteCommand(append([]string{name}, rest...)))
	err = execute(ctx, t, d.invocation(name, rest))
	if err != nil && ctx.Err() != nil {
		log.Debug("Task interrupted", "task", name, "cause", context.Cause(ctx))
		return run.Finish(interruptCode(ctx))
	}
	if err != nil {
		d.reportFailure(name, err)
	}
	return run.Finish(errUtils.GetExitCode(err))
}

// interruptCode returns the exit code carried by the cancellation cause when it
// is ErrInterrupted, and ExitCodeInterrupt otherwise.
func interruptCode(ctx context.Context) int {
	cause := context.Cause(ctx)
	if errors.Is(cause, errUtils.ErrInterrupted) {
		if code := errUtils.GetExitCode(cause); code > 1 {
			return code
		}
	}
	return errUtils.ExitCodeInterrupt
}

// NewRun returns an unstarted run handle writing markers to stderr.
func (d *Dispatcher) NewRun() *Run {
	return newRun(log.NewPrefixer(d.opts.Stderr, d.opts.Program), ui.NewStyles(d.opts.Stderr), d.opts.Now)
}

// PrintHelp writes the usage text to stdout and returns the exit code.
func (d *Dispatcher) PrintHelp() int {
	if d.opts.Help == nil {
		return 0
	}
	lines, err := d.opts.Help()
	if err != nil {
		d.printError(err)
		return errUtils.GetExitCode(err)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(d.opts.Stdout, line); err != nil {
			log.Debug("Failed to write help", "err", err)
			return 1
		}
	}
	return 0
}

func (d *Dispatcher) invocation(name string, args []string) *task.Invocation {
	environ := d.opts.Env
	if environ == nil {
		environ = os.Environ()
	}
	return &task.Invocation{
		Name:     name,
		Args:     args,
		Stdin:    d.opts.Stdin,
		Stdout:   d.opts.Stdout,
		Stderr:   d.opts.Stderr,
		Dir:      d.opts.Dir,
		Env:      env.Merge(environ, map[string]string{env.TaskEnvVar: name}),
		Registry: d.registry,
	}
}

// execute runs t, turning a panic into an error with ExitCodePanic.
func execute(ctx context.Context, t task.Task, inv *task.Invocation) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errUtils.Build(fmt.Errorf("%w: %v", errUtils.ErrTaskPanicked, r)).
				WithContext("task", inv.Name).
				WithExitCode(errUtils.ExitCodePanic).
				Err()
		}
	}()
	return t.Run(ctx, inv)
}

// reportFailure prints errors that carry more than an exit status.
// A bare status means the task already wrote its own diagnostics.
func (d *Dispatcher) reportFailure(name string, err error) {
	log.Debug("Task failed", "task", name, "err", err)

	if errUtils.IsExitStatusOnly(err) {
		return
	}
	d.printError(errUtils.Build(errUtils.ErrTaskFailed).
		WithCause(err).
		WithContext("task", name).
		Err())
}

func (d *Dispatcher) printError(err error) {
	errUtils.Print(d.opts.Stderr, err, errUtils.DefaultFormatterConfig())
}
