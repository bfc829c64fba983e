package task

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Parallel starts every fn and waits for all of them.
// The first error is returned and cancels the context shared by the others.
func Parallel(ctx context.Context, fns ...func(ctx context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, fn := range fns {
		g.Go(func() error {
			return fn(gctx)
		})
	}
	return g.Wait()
}

// Call runs the task registered as name from within inv.
func Call(ctx context.Context, inv *Invocation, name string, args ...string) error {
	if inv.Depth >= MaxDepth {
		return callDepthError(name)
	}
	t, ok := inv.Registry.Lookup(name)
	if !ok {
		return UnknownTaskError(name)
	}
	return t.Run(ctx, inv.Child(name, args))
}
