package task

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/cloudposse/dispatch/errors"
)

func TestParallel_WaitsForAll(t *testing.T) {
	var count atomic.Int32
	fn := func(context.Context) error {
		count.Add(1)
		return nil
	}

	require.NoError(t, Parallel(context.Background(), fn, fn, fn))
	assert.Equal(t, int32(3), count.Load())
}

func TestParallel_FirstErrorCancelsSiblings(t *testing.T) {
	failing := func(context.Context) error {
		return errUtils.ExitCodeError{Code: 3}
	}
	blocking := func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}

	err := Parallel(context.Background(), blocking, failing)

	assert.Equal(t, 3, errUtils.GetExitCode(err))
}

func TestParallel_NoFuncs(t *testing.T) {
	assert.NoError(t, Parallel(context.Background()))
}

func TestCall(t *testing.T) {
	b := NewBuilder()
	b.MustRegister(Task{
		Name: "greet",
		Run: func(_ context.Context, inv *Invocation) error {
			assert.Equal(t, "greet", inv.Name)
			assert.Equal(t, []string{"world"}, inv.Args)
			assert.Equal(t, 1, inv.Depth)
			return nil
		},
	})
	inv := &Invocation{Name: "outer", Registry: b.Build()}

	require.NoError(t, Call(context.Background(), inv, "greet", "world"))
}

func TestCall_UnknownTask(t *testing.T) {
	inv := &Invocation{Registry: NewBuilder().Build()}

	err := Call(context.Background(), inv, "missing")

	assert.ErrorIs(t, err, errUtils.ErrUnknownTask)
	assert.Contains(t, err.Error(), "missing")
	assert.Equal(t, errUtils.ExitCodeUnknownTask, errUtils.GetExitCode(err))
}

func TestCall_RecursionIsBounded(t *testing.T) {
	b := NewBuilder()
	b.MustRegister(Task{
		Name: "loop",
		Run: func(ctx context.Context, inv *Invocation) error {
			return Call(ctx, inv, "loop")
		},
	})
	inv := &Invocation{Registry: b.Build()}

	err := Call(context.Background(), inv, "loop")

	assert.ErrorIs(t, err, errUtils.ErrTaskDepth)
}
