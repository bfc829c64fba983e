// Package shell runs task steps with an in-process POSIX shell interpreter.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	errUtils "github.com/cloudposse/dispatch/errors"
	log "github.com/cloudposse/dispatch/pkg/logger"
)

// Options configures a single script run.
type Options struct {
	// Name identifies the script in parse errors.
	Name string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env is the full environment in KEY=value form. Nil means os.Environ().
	Env []string
	// Args become the positional parameters $1..$n.
	Args []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Builtins intercept commands before they are looked up on PATH.
	Builtins map[string]Builtin
}

// Builtin is a command implemented in Go and callable from scripts.
type Builtin func(ctx context.Context, hc interp.HandlerContext, args []string) error

// Run parses script and executes it with errexit enabled, so the first
// failing command stops the script. A non-zero exit status is returned as
// errors.ExitCodeError.
func Run(ctx context.Context, script string, opts Options) error {
	file, err := syntax.NewParser().Parse(strings.NewReader(script), opts.Name)
	if err != nil {
		return errUtils.Build(errUtils.ErrParseShellCommand).
			WithCause(err).
			WithContext("script", opts.Name).
			Err()
	}

	env := opts.Env
	if env == nil {
		env = os.Environ()
	}

	params := append([]string{"-e", "--"}, opts.Args...)
	runner, err := interp.New(
		interp.Dir(opts.Dir),
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(opts.Stdin, opts.Stdout, opts.Stderr),
		interp.Params(params...),
		interp.ExecHandlers(builtinMiddleware(opts.Builtins)),
	)
	if err != nil {
		return errUtils.Build(errUtils.ErrCreateShellInterpreter).WithCause(err).Err()
	}

	log.Trace("Running shell script", "name", opts.Name, "dir", opts.Dir)
	return toExitCodeError(runner.Run(ctx, file))
}

// builtinMiddleware routes commands named in builtins to their Go handlers.
func builtinMiddleware(builtins map[string]Builtin) func(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
		return func(ctx context.Context, args []string) error {
			if b, ok := builtins[args[0]]; ok {
				hc := interp.HandlerCtx(ctx)
				return toInterpStatus(hc.Stderr, b(ctx, hc, args[1:]))
			}
			return next(ctx, args)
		}
	}
}

// toInterpStatus converts a Go error into an exit status the interpreter
// understands, so errexit and $? behave as for external commands.
// Errors that are more than a bare status are printed to stderr first.
func toInterpStatus(stderr io.Writer, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := interp.IsExitStatus(err); ok {
		return err
	}
	var status errUtils.ExitCodeError
	if !errors.As(err, &status) && stderr != nil {
		errUtils.Print(stderr, err, errUtils.DefaultFormatterConfig())
	}
	code := errUtils.GetExitCode(err)
	if code > 255 || code < 1 {
		code = 1
	}
	return interp.NewExitStatus(uint8(code))
}

func toExitCodeError(err error) error {
	if err == nil {
		return nil
	}
	if status, ok := interp.IsExitStatus(err); ok {
		if status == 0 {
			return nil
		}
		return errUtils.ExitCodeError{Code: int(status)}
	}
	return err
}

// Environ flattens the exported variables of a handler context into
// KEY=value form.
func Environ(hc interp.HandlerContext) []string {
	var env []string
	hc.Env.Each(func(name string, vr expand.Variable) bool {
		if vr.Exported && vr.IsSet() {
			env = append(env, name+"="+vr.String())
		}
		return true
	})
	return env
}
