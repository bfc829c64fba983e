package taskfile

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	errUtils "github.com/cloudposse/dispatch/errors"
	"github.com/cloudposse/dispatch/pkg/env"
	log "github.com/cloudposse/dispatch/pkg/logger"
	"github.com/cloudposse/dispatch/pkg/schema"
	"github.com/cloudposse/dispatch/pkg/task"
)

// Register adds one task per Taskfile entry to b, in name order.
func Register(b *task.Builder, tf *schema.Taskfile, runner StepRunner) error {
	names := make([]string, 0, len(tf.Tasks))
	for name := range tf.Tasks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		def := tf.Tasks[name]
		if err := validate(name, def); err != nil {
			return err
		}
		visibility := task.Public
		if def.Internal {
			visibility = task.Internal
		}
		err := b.Register(task.Task{
			Name:        name,
			Description: def.Description,
			Visibility:  visibility,
			Run:         newTaskFunc(def, runner),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// validate rejects steps without a command.
func validate(name string, def schema.TaskDefinition) error {
	for i := range def.Steps {
		if strings.TrimSpace(def.Steps[i].Command) == "" {
			return errUtils.Build(errUtils.ErrInvalidStep).
				WithExplanationf("%s in task %q has no command", def.Steps[i].DisplayName(i), name).
				WithContext("task", name).
				Err()
		}
	}
	return nil
}

func newTaskFunc(def schema.TaskDefinition, runner StepRunner) task.Func {
	return func(ctx context.Context, inv *task.Invocation) error {
		dir := resolveDir(inv.Dir, def.WorkingDirectory)
		taskEnv := env.Merge(inv.Env, def.Env)
		taskEnv = env.Merge(taskEnv, map[string]string{env.TaskEnvVar: inv.Name})

		requests := make([]*StepRequest, 0, len(def.Steps))
		for i := range def.Steps {
			step := &def.Steps[i]
			requests = append(requests, &StepRequest{
				Task:       inv.Name,
				Step:       step.DisplayName(i),
				Command:    step.Command,
				Dir:        resolveDir(dir, step.WorkingDirectory),
				Env:        env.Merge(taskEnv, step.Env),
				Args:       inv.Args,
				Invocation: inv,
			})
		}

		if def.Parallel {
			fns := make([]func(context.Context) error, 0, len(requests))
			for _, req := range requests {
				fns = append(fns, func(ctx context.Context) error {
					return runStep(ctx, runner, req)
				})
			}
			return task.Parallel(ctx, fns...)
		}

		for _, req := range requests {
			if err := runStep(ctx, runner, req); err != nil {
				return err
			}
		}
		return nil
	}
}

func runStep(ctx context.Context, runner StepRunner, req *StepRequest) error {
	log.Debug("Running step", "task", req.Task, "step", req.Step, "dir", req.Dir)
	if err := runner.RunStep(ctx, req); err != nil {
		log.Debug("Step failed", "task", req.Task, "step", req.Step, "err", err)
		return err
	}
	return nil
}

// resolveDir joins a relative dir onto base. An empty dir means base.
func resolveDir(base, dir string) string {
	if dir == "" {
		return base
	}
	if filepath.IsAbs(dir) || base == "" {
		return dir
	}
	return filepath.Join(base, dir)
}
