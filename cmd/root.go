package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	errUtils "github.com/cloudposse/dispatch/errors"
	cfg "github.com/cloudposse/dispatch/pkg/config"
	"github.com/cloudposse/dispatch/pkg/dispatch"
	"github.com/cloudposse/dispatch/pkg/env"
	log "github.com/cloudposse/dispatch/pkg/logger"
	"github.com/cloudposse/dispatch/pkg/schema"
	"github.com/cloudposse/dispatch/pkg/task"
	"github.com/cloudposse/dispatch/pkg/taskfile"
)

// logFile is the open logs file when logs go somewhere other than a standard stream.
var logFile *os.File

// RootCmd represents the base command. Only flags before the task name belong to dispatch;
// everything from the first unrecognized argument on is handed to the task.
var RootCmd = &cobra.Command{
	Use:   "dispatch [task] [args...]",
	Short: "Run named tasks from a Taskfile",
	Long: `dispatch runs a named task from a Taskfile.yaml, passes the remaining arguments through to it,
and reports how long it took and whether it succeeded. With no task name the default task runs.`,
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	RunE:               runDispatch,
}

func init() {
	flags := RootCmd.Flags()
	flags.String(cfg.TaskfileFlag, "", "Path to the Taskfile (default \""+cfg.DefaultTaskfile+"\")")
	flags.String(cfg.ConfigFlag, "", "Path to an additional configuration file")
	flags.String(cfg.LogsLevelFlag, "", "Logs level. Supported log levels are Trace, Debug, Info, Warning, Off (default \""+cfg.DefaultLogsLevel+"\")")
	flags.String(cfg.LogsFileFlag, "", "The file to write logs to. Logs can be written to any file or any standard file descriptor, including '/dev/stdout', '/dev/stderr' and '/dev/null' (default \""+cfg.DefaultLogsFile+"\")")
	flags.Bool(cfg.VerboseFlag, false, "Show error context and the full error chain")
	flags.BoolP("help", "h", false, "Show the Taskfile help")

	RootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Execute runs the root command with os.Args. Cancelling ctx stops the running task.
// A failed task is returned as an error carrying the task's exit code.
func Execute(ctx context.Context) error {
	return RootCmd.ExecuteContext(ctx)
}

// Cleanup releases resources opened while running a command.
func Cleanup() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

func runDispatch(c *cobra.Command, args []string) error {
	flagArgs, args := splitLeadingFlags(c.Flags(), args)
	if err := c.Flags().Parse(flagArgs); err != nil {
		return errUtils.Build(errUtils.ErrInvalidFlag).
			WithCause(err).
			WithHint("Run 'dispatch --help' for usage").
			Err()
	}

	config, err := cfg.LoadConfig(c.Flags())
	if err != nil {
		return err
	}
	if err := setupLogger(&config); err != nil {
		return err
	}

	help, _ := c.Flags().GetBool("help")
	if _, _, err := dispatch.ParseArgs(args, config.DefaultTask); help || errors.Is(err, errUtils.ErrHelpRequested) {
		return printHelp(c.OutOrStdout(), &config)
	}

	runID := uuid.NewString()
	environ, err := env.Setup(&config, runID)
	if err != nil {
		return err
	}

	registry, err := buildRegistry(&config)
	if err != nil {
		return err
	}
	log.Debug("Registered tasks", "count", registry.Len(), "run_id", runID)

	d := dispatch.New(registry, dispatch.Options{
		Program:     config.Taskfile,
		DefaultTask: config.DefaultTask,
		Help:        func() ([]string, error) { return taskfile.ReadHelp(config.Taskfile, config.HelpMarker) },
		Stdin:       c.InOrStdin(),
		Stdout:      c.OutOrStdout(),
		Stderr:      c.ErrOrStderr(),
		Dir:         config.BasePath,
		Env:         environ,
	})

	if code := d.Dispatch(c.Context(), args); code != 0 {
		return exitError(c.Context(), code)
	}
	return nil
}

// splitLeadingFlags separates the dispatch flags at the front of args from the task
// name and its arguments. Scanning stops at the first argument that is not a known
// flag; a "--" there is dropped so a task name may itself start with a dash.
func splitLeadingFlags(flags *pflag.FlagSet, args []string) (flagArgs, rest []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return args[:i], args[i+1:]
		}
		if len(arg) < 2 || arg[0] != '-' {
			return args[:i], args[i:]
		}

		name, _, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		var f *pflag.Flag
		switch {
		case strings.HasPrefix(arg, "--"):
			f = flags.Lookup(name)
		case len(name) == 1:
			f = flags.ShorthandLookup(name)
		}
		if f == nil {
			return args[:i], args[i:]
		}
		if !hasValue && f.NoOptDefVal == "" {
			i++
		}
	}
	return args, nil
}

// exitError reports a failed run by its exit status alone; the task has already said why.
func exitError(ctx context.Context, code int) error {
	sentinel := errUtils.ErrTaskFailed
	switch {
	case ctx.Err() != nil:
		sentinel = errUtils.ErrInterrupted
	case code == errUtils.ExitCodeUnknownTask:
		sentinel = errUtils.ErrUnknownTask
	}
	return errUtils.Build(errUtils.ExitCodeError{Code: code}).WithSentinel(sentinel).Err()
}

// buildRegistry registers the listing tasks followed by every Taskfile task.
func buildRegistry(config *schema.Configuration) (*task.Registry, error) {
	tf, err := taskfile.Load(config.Taskfile)
	if err != nil {
		return nil, err
	}

	b := task.NewBuilder()
	if err := dispatch.RegisterBuiltins(b); err != nil {
		return nil, err
	}
	if err := taskfile.Register(b, tf, taskfile.NewShellStepRunner(config.Taskfile)); err != nil {
		builder := errUtils.Build(errUtils.ErrParseTaskfile).
			WithCause(err).
			WithContext("path", config.Taskfile)
		if errors.Is(err, errUtils.ErrDuplicateTask) {
			builder = builder.WithHintf("'%s' and '%s' are reserved task names", dispatch.TasksTaskName, dispatch.ListTaskName)
		}
		return nil, builder.Err()
	}
	return b.Build(), nil
}

func printHelp(w io.Writer, config *schema.Configuration) error {
	lines, err := taskfile.ReadHelp(config.Taskfile, config.HelpMarker)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// setupLogger applies the configured level and destination to the default logger.
func setupLogger(config *schema.Configuration) error {
	level, err := log.ParseLogLevel(config.Logs.Level)
	if err != nil {
		return errUtils.Build(errUtils.ErrLoadConfig).
			WithCause(err).
			WithHint("Supported log levels are Trace, Debug, Info, Warning, Off").
			Err()
	}
	log.SetLevel(level.Level())
	errUtils.SetVerbose(config.Logs.Verbose)

	switch config.Logs.File {
	case "", "/dev/stderr":
		log.SetOutput(os.Stderr)
	case "/dev/stdout":
		log.SetOutput(os.Stdout)
	case "/dev/null":
		log.SetOutput(io.Discard)
	default:
		Cleanup()
		f, err := os.OpenFile(config.Logs.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return errUtils.Build(errUtils.ErrLoadConfig).
				WithCause(err).
				WithContext("logs_file", config.Logs.File).
				Err()
		}
		logFile = f
		log.SetOutput(f)
	}
	log.Debug("Logger configured", "level", log.Default().GetLevelString(), "file", config.Logs.File, "verbose", config.Logs.Verbose)
	return nil
}
