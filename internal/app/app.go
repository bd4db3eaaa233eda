// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"offtarget/internal/cmdutil"
	"offtarget/internal/config"
	"offtarget/internal/writers"
)

// Exit codes.
const (
	ExitOK          = 0
	ExitUsage       = 2
	ExitRuntime     = 3
	ExitInterrupted = 130
)

// exitError carries the exit code a failure maps to.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageErr(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: ExitUsage, err: err}
}

func runtimeErr(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: ExitRuntime, err: err}
}

// exitCode maps a command error to a process exit code. Errors raised by
// cobra itself (unknown command, bad flag) are usage errors.
func exitCode(err error) int {
	var ee *exitError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case writers.IsBrokenPipe(err):
		return ExitOK
	case errors.As(err, &ee):
		return ee.code
	}
	return ExitUsage
}

// RunContext executes argv and returns the exit code. Output goes to stdout;
// logs and errors go to stderr.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	e := &env{stdout: outw, stderr: stderr}

	root := newRootCmd(e)
	root.SetArgs(argv)
	root.SetOut(outw)
	root.SetErr(stderr)

	cmd, err := root.ExecuteContextC(parent)
	if ferr := outw.Flush(); err == nil && ferr != nil && !writers.IsBrokenPipe(ferr) {
		err = runtimeErr(ferr)
	}

	code := exitCode(err)
	if code != ExitOK && code != ExitInterrupted {
		log := e.log
		if log == nil {
			log, _ = cmdutil.NewLogger(stderr, "", false)
		}
		log.Error(err.Error())
		if code == ExitUsage && cmd != nil {
			_, _ = fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.CommandPath())
		}
	}
	if code == ExitInterrupted && e.log != nil {
		e.log.Warn("interrupted")
	}
	return code
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// env is the state shared by one invocation's commands.
type env struct {
	stdout io.Writer
	stderr io.Writer
	log    *slog.Logger
	cfg    config.Config
}
