package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudposse/dispatch/cmd"
	errUtils "github.com/cloudposse/dispatch/errors"
	log "github.com/cloudposse/dispatch/pkg/logger"
)

// shutdownGrace bounds how long a cancelled run may take to report before the process is killed.
const shutdownGrace = 10 * time.Second

func main() {
	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go watchSignals(sigChan, cancel, shutdownGrace, func(code int) {
		cmd.Cleanup()
		errUtils.OsExit(code)
	})

	log.Default().SetReportTimestamp(false)

	// Use errUtils.OsExit to allow test interception.
	errUtils.OsExit(run(ctx))
}

// watchSignals cancels the run on the first signal so the dispatcher can print its
// failure and end markers. A second signal, or the grace period running out, calls exit.
func watchSignals(sigs <-chan os.Signal, cancel context.CancelCauseFunc, grace time.Duration, exit func(int)) {
	sig, ok := <-sigs
	if !ok {
		return
	}
	code := signalExitCode(sig)
	log.Debug("Received signal, cancelling run", "signal", sig, "code", code)
	cancel(errUtils.WithExitCode(errUtils.ErrInterrupted, code))

	timer := time.NewTimer(grace)
	defer timer.Stop()
	select {
	case <-sigs:
	case <-timer.C:
		log.Warn("Run did not stop in time, exiting", "grace", grace)
	}
	exit(code)
}

// signalExitCode returns the POSIX exit code for sig (128 + signal number).
func signalExitCode(sig os.Signal) int {
	if s, ok := sig.(syscall.Signal); ok {
		return 128 + int(s)
	}
	return errUtils.ExitCodeInterrupt
}

// run executes the root command and returns an exit code.
// This separation allows proper cleanup via defer before os.Exit in main().
func run(ctx context.Context) int {
	defer cmd.Cleanup()

	err := cmd.Execute(ctx)
	if err != nil {
		// A bare exit status means the task already reported its failure.
		if !errUtils.IsExitStatusOnly(err) {
			errUtils.Print(os.Stderr, err, errUtils.DefaultFormatterConfig())
		}

		exitCode := errUtils.GetExitCode(err)
		log.Debug("Exiting with exit code", "code", exitCode)
		return exitCode
	}

	return 0
}
