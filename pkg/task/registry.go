package task

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	errUtils "github.com/cloudposse/dispatch/errors"
)

// MaxDepth bounds nested task calls so a task calling itself terminates.
const MaxDepth = 32

// Builder collects tasks before the registry is frozen.
type Builder struct {
	tasks map[string]Task
	order []string
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{tasks: make(map[string]Task)}
}

// Register adds t. Names must be non-empty and unique.
func (b *Builder) Register(t Task) error {
	name := t.Name
	if strings.TrimSpace(name) == "" {
		return errUtils.ErrEmptyTaskName
	}
	if t.Run == nil {
		return fmt.Errorf("%w: %s", errUtils.ErrNilTaskFunc, name)
	}
	if _, exists := b.tasks[name]; exists {
		return fmt.Errorf("%w: %s", errUtils.ErrDuplicateTask, name)
	}
	b.tasks[name] = t
	b.order = append(b.order, name)
	return nil
}

// MustRegister is Register for static tables; it panics on error.
func (b *Builder) MustRegister(t Task) {
	if err := b.Register(t); err != nil {
		panic(err)
	}
}

// Has reports whether a task with name was registered.
func (b *Builder) Has(name string) bool {
	_, ok := b.tasks[name]
	return ok
}

// Build freezes the collected tasks into a Registry.
// The builder may keep being used; the registry does not see later changes.
func (b *Builder) Build() *Registry {
	tasks := make(map[string]Task, len(b.tasks))
	for k, v := range b.tasks {
		tasks[k] = v
	}
	return &Registry{
		tasks: tasks,
		order: append([]string(nil), b.order...),
	}
}

// Registry is an immutable name to task mapping for one process run.
type Registry struct {
	tasks map[string]Task
	order []string
}

// Lookup returns the task registered under exactly name.
func (r *Registry) Lookup(name string) (Task, bool) {
	if r == nil {
		return Task{}, false
	}
	t, ok := r.tasks[name]
	return t, ok
}

// Len returns the number of registered tasks.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.tasks)
}

// Names returns the names of every task in registration order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.order...)
}

// Public returns the public tasks sorted by name.
func (r *Registry) Public() []Task {
	if r == nil {
		return nil
	}
	public := lo.Filter(lo.Values(r.tasks), func(t Task, _ int) bool {
		return t.Visibility == Public
	})
	sort.Slice(public, func(i, j int) bool { return public[i].Name < public[j].Name })
	return public
}
