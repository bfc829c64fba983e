package taskfile

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/cloudposse/dispatch/errors"
	"github.com/cloudposse/dispatch/pkg/task"
)

func runShellTask(t *testing.T, yamlDoc, name string, args ...string) (string, string, error) {
	t.Helper()
	tf, err := Parse([]byte(yamlDoc), "Taskfile.yaml")
	require.NoError(t, err)

	reg := buildRegistry(t, tf, NewShellStepRunner("/project/Taskfile.yaml"))
	tk, ok := reg.Lookup(name)
	require.True(t, ok)

	var stdout, stderr bytes.Buffer
	err = tk.Run(context.Background(), &task.Invocation{
		Name:     name,
		Args:     args,
		Stdout:   &stdout,
		Stderr:   &stderr,
		Dir:      t.TempDir(),
		Env:      os.Environ(),
		Registry: reg,
	})
	return stdout.String(), stderr.String(), err
}

func TestShellStepRunner_PositionalArgs(t *testing.T) {
	stdout, _, err := runShellTask(t, "tasks:\n  greet: echo \"hello $1 ($#)\"\n", "greet", "world", "x")

	require.NoError(t, err)
	assert.Equal(t, "hello world (2)\n", stdout)
}

func TestShellStepRunner_LogBuiltin(t *testing.T) {
	doc := `
tasks:
  say:
    - log starting up
    - echo piped | log
`
	stdout, stderr, err := runShellTask(t, doc, "say")

	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Equal(t, "[Taskfile.yaml] starting up\n[Taskfile.yaml] piped\n", stderr)
}

func TestShellStepRunner_CallsOtherTasks(t *testing.T) {
	doc := `
tasks:
  helper:
    internal: true
    steps: ['echo "helper:$*:$DISPATCH_TASK"']
  build:
    - export STAGE=one
    - helper a b
    - echo "back in $DISPATCH_TASK"
`
	stdout, _, err := runShellTask(t, doc, "build")

	require.NoError(t, err)
	assert.Equal(t, "helper:a b:helper\nback in build\n", stdout)
}

func TestShellStepRunner_ExitCode(t *testing.T) {
	stdout, _, err := runShellTask(t, "tasks:\n  fail:\n    - echo before\n    - exit 3\n    - echo after\n", "fail")

	assert.Equal(t, 3, errUtils.GetExitCode(err))
	assert.Equal(t, "before\n", stdout)
}

func TestShellStepRunner_NestedFailurePropagates(t *testing.T) {
	doc := `
tasks:
  inner: exit 5
  outer:
    - inner
    - echo unreachable
`
	stdout, _, err := runShellTask(t, doc, "outer")

	assert.Equal(t, 5, errUtils.GetExitCode(err))
	assert.Empty(t, stdout)
}

func TestShellStepRunner_RecursionIsBounded(t *testing.T) {
	_, stderr, err := runShellTask(t, "tasks:\n  loop: loop\n", "loop")

	require.Error(t, err)
	assert.Equal(t, 1, errUtils.GetExitCode(err))
	assert.Contains(t, stderr, errUtils.ErrTaskDepth.Error())
}

func TestShellStepRunner_StopsOnCancel(t *testing.T) {
	tf, err := Parse([]byte("tasks:\n  slow: sleep 5\n"), "Taskfile.yaml")
	require.NoError(t, err)
	reg := buildRegistry(t, tf, NewShellStepRunner("Taskfile.yaml"))
	tk, _ := reg.Lookup("slow")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err = tk.Run(ctx, &task.Invocation{
		Name:     "slow",
		Stdout:   &bytes.Buffer{},
		Stderr:   &bytes.Buffer{},
		Dir:      t.TempDir(),
		Env:      os.Environ(),
		Registry: reg,
	})

	require.Error(t, err)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestShellStepRunner_ParallelLogLinesStayWhole(t *testing.T) {
	doc := `
tasks:
  noisy:
    parallel: true
    steps:
      - i=0; while [ $i -lt 50 ]; do log alpha; i=$((i+1)); done
      - i=0; while [ $i -lt 50 ]; do log beta; i=$((i+1)); done
`
	_, stderr, err := runShellTask(t, doc, "noisy")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(stderr, "\n"), "\n")
	assert.Len(t, lines, 100)
	for _, line := range lines {
		assert.Contains(t, []string{"[Taskfile.yaml] alpha", "[Taskfile.yaml] beta"}, line)
	}
}
