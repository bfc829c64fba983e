// Package task defines named units of work and the immutable registry the
// dispatcher resolves them from.
package task

import (
	"context"
	"io"
)

// Visibility controls whether a task appears in the task listing.
type Visibility int

const (
	// Public tasks are listed and invocable.
	Public Visibility = iota
	// Internal tasks are invocable but hidden from the listing.
	Internal
)

func (v Visibility) String() string {
	if v == Internal {
		return "internal"
	}
	return "public"
}

// Func is the body of a task. A non-nil error marks the task as failed;
// its exit code is taken from the error chain (see errors.GetExitCode).
type Func func(ctx context.Context, inv *Invocation) error

// Task is a named, callable unit of work.
type Task struct {
	Name        string
	Description string
	Visibility  Visibility
	Run         Func
}

// Invocation carries everything a task body needs for one call.
type Invocation struct {
	// Name is the task name as resolved by the dispatcher.
	Name string
	// Args are passed through unmodified from the command line.
	Args []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Dir is the working directory for commands started by the task.
	Dir string
	// Env is the environment in KEY=value form.
	Env []string

	// Registry lets a task call other tasks by name.
	Registry *Registry
	// Depth counts nested task calls; the dispatcher starts at zero.
	Depth int
}

// Child returns an invocation for calling another task from within this one,
// inheriting streams, directory, environment and registry.
func (inv *Invocation) Child(name string, args []string) *Invocation {
	return &Invocation{
		Name:     name,
		Args:     args,
		Stdin:    inv.Stdin,
		Stdout:   inv.Stdout,
		Stderr:   inv.Stderr,
		Dir:      inv.Dir,
		Env:      inv.Env,
		Registry: inv.Registry,
		Depth:    inv.Depth + 1,
	}
}
