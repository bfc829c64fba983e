package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"

	errUtils "github.com/cloudposse/dispatch/errors"
)

// Taskfile is the top-level document of a Taskfile.yaml.
type Taskfile struct {
	Tasks map[string]TaskDefinition `yaml:"tasks" json:"tasks"`
}

// TaskDefinition is one named task in the Taskfile.
//
// A definition may be written as a single command, a list of commands,
// or a mapping:
//
//	tasks:
//	  clean: rm -rf dist
//	  deps:
//	    - pip install -r requirements.txt
//	    - pip install -r requirements-dev.txt
//	  lint:
//	    description: run linters
//	    parallel: true
//	    steps:
//	      - flake8 "$APP_DIR"
//	      - name: security
//	        command: bandit -r "$APP_DIR"
type TaskDefinition struct {
	Description      string            `yaml:"description,omitempty" json:"description,omitempty"`
	Internal         bool              `yaml:"internal,omitempty" json:"internal,omitempty"`
	Parallel         bool              `yaml:"parallel,omitempty" json:"parallel,omitempty"`
	WorkingDirectory string            `yaml:"working_directory,omitempty" json:"working_directory,omitempty"`
	Env              map[string]string `yaml:"env,omitempty" json:"env,omitempty"`
	Steps            Steps             `yaml:"steps" json:"steps"`
}

// taskDefinitionFields avoids recursing into UnmarshalYAML.
type taskDefinitionFields TaskDefinition

// UnmarshalYAML accepts a scalar (one step), a sequence (steps) or a mapping.
func (d *TaskDefinition) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*d = TaskDefinition{Steps: Steps{{Command: value.Value}}}
		return nil
	case yaml.SequenceNode:
		var steps Steps
		if err := value.Decode(&steps); err != nil {
			return err
		}
		*d = TaskDefinition{Steps: steps}
		return nil
	case yaml.MappingNode:
		var fields taskDefinitionFields
		if err := value.Decode(&fields); err != nil {
			return err
		}
		*d = TaskDefinition(fields)
		return nil
	default:
		return fmt.Errorf("%w at line %d: expected string, sequence or mapping", errUtils.ErrStepInvalidFormat, value.Line)
	}
}

// Step is a single shell command within a task.
type Step struct {
	// Name is an optional identifier used in logs.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
	// Command is the shell source to execute.
	Command string `yaml:"command" json:"command"`
	// WorkingDirectory overrides the task's working directory for this step.
	WorkingDirectory string `yaml:"working_directory,omitempty" json:"working_directory,omitempty"`
	// Env adds variables for this step only.
	Env map[string]string `yaml:"env,omitempty" json:"env,omitempty"`
}

// Steps is a slice of Step that supports both simple string syntax and
// structured syntax:
//
//	steps:
//	  - "echo simple"
//	  - name: complex
//	    command: echo structured
//	    working_directory: app
type Steps []Step

// UnmarshalYAML handles both string elements (simple syntax) and mapping
// elements (structured syntax).
func (s *Steps) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("%w: expected sequence, got %v", errUtils.ErrStepInvalidFormat, value.Kind)
	}

	steps := make([]Step, 0, len(value.Content))
	for i, node := range value.Content {
		var step Step
		switch node.Kind {
		case yaml.ScalarNode:
			step.Command = node.Value
		case yaml.MappingNode:
			if err := node.Decode(&step); err != nil {
				return fmt.Errorf("failed to decode step at index %d: %w", i, err)
			}
		default:
			return fmt.Errorf("%w at index %d: got %v (expected string or mapping)", errUtils.ErrStepUnexpectedKind, i, node.Kind)
		}
		steps = append(steps, step)
	}
	*s = steps
	return nil
}

// DisplayName returns the step name, falling back to its position.
func (s *Step) DisplayName(index int) string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("step %d", index+1)
}
