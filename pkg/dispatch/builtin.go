package dispatch

import (
	"context"
	"fmt"

	"github.com/cloudposse/dispatch/pkg/task"
	"github.com/cloudposse/dispatch/pkg/ui"
)

// Names of the reserved listing tasks.
const (
	TasksTaskName = "tasks"
	ListTaskName  = "list"
)

// RegisterBuiltins adds the reserved listing tasks to b. They are internal,
// so they do not list themselves.
func RegisterBuiltins(b *task.Builder) error {
	for _, name := range []string{TasksTaskName, ListTaskName} {
		err := b.Register(task.Task{
			Name:        name,
			Description: "list the available tasks",
			Visibility:  task.Internal,
			Run:         listTasks,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// listTasks prints the public tasks as a 1-indexed list, one per line.
func listTasks(_ context.Context, inv *task.Invocation) error {
	styles := ui.NewStyles(inv.Stdout)
	for i, t := range inv.Registry.Public() {
		index := styles.Index.Render(fmt.Sprintf("%d.", i+1))
		if _, err := fmt.Fprintf(inv.Stdout, "%s %s\n", index, t.Name); err != nil {
			return err
		}
	}
	return nil
}
