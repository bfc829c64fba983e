package task

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/cloudposse/dispatch/errors"
)

func noop(context.Context, *Invocation) error { return nil }

func TestBuilder_RegisterLookup(t *testing.T) {
	b := NewBuilder()
	hit := false
	require.NoError(t, b.Register(Task{
		Name: "sample",
		Run: func(_ context.Context, inv *Invocation) error {
			hit = true
			assert.Equal(t, []string{"a", "b"}, inv.Args)
			return nil
		},
	}))

	r := b.Build()
	task, ok := r.Lookup("sample")
	require.True(t, ok)
	require.NoError(t, task.Run(context.Background(), &Invocation{Args: []string{"a", "b"}}))
	assert.True(t, hit)
}

func TestBuilder_RegisterErrors(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Register(Task{Name: "dup", Run: noop}))

	tests := []struct {
		name     string
		task     Task
		expected error
	}{
		{name: "duplicate", task: Task{Name: "dup", Run: noop}, expected: errUtils.ErrDuplicateTask},
		{name: "empty name", task: Task{Name: "", Run: noop}, expected: errUtils.ErrEmptyTaskName},
		{name: "blank name", task: Task{Name: "  ", Run: noop}, expected: errUtils.ErrEmptyTaskName},
		{name: "missing body", task: Task{Name: "body"}, expected: errUtils.ErrNilTaskFunc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, b.Register(tt.task), tt.expected)
		})
	}
}

func TestBuilder_MustRegisterPanicsOnDuplicate(t *testing.T) {
	b := NewBuilder()
	b.MustRegister(Task{Name: "dup", Run: noop})

	assert.Panics(t, func() {
		b.MustRegister(Task{Name: "dup", Run: noop})
	})
}

func TestRegistry_LookupIsExact(t *testing.T) {
	b := NewBuilder()
	b.MustRegister(Task{Name: "lint", Run: noop})
	r := b.Build()

	for _, name := range []string{"Lint", "lin", "lint ", "linter"} {
		_, ok := r.Lookup(name)
		assert.False(t, ok, "lookup of %q should miss", name)
	}
}

func TestRegistry_IsImmutableAfterBuild(t *testing.T) {
	b := NewBuilder()
	b.MustRegister(Task{Name: "clean", Run: noop})
	r := b.Build()

	b.MustRegister(Task{Name: "late", Run: noop})

	assert.Equal(t, 1, r.Len())
	_, ok := r.Lookup("late")
	assert.False(t, ok)
	assert.True(t, b.Has("late"))
}

func TestRegistry_PublicIsSortedAndHidesInternal(t *testing.T) {
	b := NewBuilder()
	b.MustRegister(Task{Name: "run", Run: noop})
	b.MustRegister(Task{Name: "clean", Run: noop})
	b.MustRegister(Task{Name: "helper", Visibility: Internal, Run: noop})
	b.MustRegister(Task{Name: "lint", Run: noop})
	r := b.Build()

	var names []string
	for _, task := range r.Public() {
		names = append(names, task.Name)
	}

	assert.Equal(t, []string{"clean", "lint", "run"}, names)
	assert.Equal(t, []string{"run", "clean", "helper", "lint"}, r.Names())
}

func TestRegistry_NilIsEmpty(t *testing.T) {
	var r *Registry

	_, ok := r.Lookup("anything")
	assert.False(t, ok)
	assert.Zero(t, r.Len())
	assert.Empty(t, r.Names())
	assert.Empty(t, r.Public())
}

func TestVisibility_String(t *testing.T) {
	assert.Equal(t, "public", Public.String())
	assert.Equal(t, "internal", Internal.String())
}
