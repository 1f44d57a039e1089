// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"

	"github.com/bureau-foundation/bigbwt/lib/stage"
)

// Kind classifies a stage failure.
type Kind int

const (
	// KindLaunch means the executable could not be started (missing
	// binary, permission denied, not an executable).
	KindLaunch Kind = iota + 1

	// KindExit means the process ran and exited with a non-zero status
	// or was terminated by a signal.
	KindExit

	// KindCanceled means the stage was not started because the run had
	// already been canceled.
	KindCanceled
)

// String returns "launch", "exit", or "canceled".
func (k Kind) String() string {
	switch k {
	case KindLaunch:
		return "launch"
	case KindExit:
		return "exit"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Error describes a failed stage invocation.
type Error struct {
	Kind Kind

	// Command is the failing command line as shown to operators.
	Command string

	// LogPath is the log the stage's output went to. Empty when the
	// runner was given a log writer without a path.
	LogPath string

	// ExitCode is the process exit status for KindExit, or -1 when the
	// process was killed by a signal or never ran.
	ExitCode int

	// Err is the underlying error from os/exec or the context.
	Err error
}

func (e *Error) Error() string {
	var message string
	switch e.Kind {
	case KindLaunch:
		message = fmt.Sprintf("cannot start %s: %v", e.Command, e.Err)
	case KindExit:
		if e.ExitCode >= 0 {
			message = fmt.Sprintf("%s: exit status %d", e.Command, e.ExitCode)
		} else {
			message = fmt.Sprintf("%s: %v", e.Command, e.Err)
		}
	case KindCanceled:
		message = fmt.Sprintf("%s not started: %v", e.Command, e.Err)
	default:
		message = fmt.Sprintf("%s: %v", e.Command, e.Err)
	}
	if e.LogPath != "" {
		message += " (see " + e.LogPath + ")"
	}
	return message
}

func (e *Error) Unwrap() error { return e.Err }

// Runner launches stage processes with their output captured in a
// shared log.
type Runner struct {
	// Log receives every byte the stage writes to stdout and stderr.
	// When Log is an *os.File the child writes to it directly.
	Log io.Writer

	// LogPath names Log in error messages.
	LogPath string

	// Environment holds variables added to the inherited environment
	// of every stage.
	Environment map[string]string
}

// Run executes invocation and waits for it to exit. A nil error means
// the stage exited with status zero. Run does not interrupt a stage
// once it has started: ctx is only consulted before launch.
func (r *Runner) Run(ctx context.Context, invocation stage.Invocation) error {
	command := invocation.String()

	if err := ctx.Err(); err != nil {
		return &Error{Kind: KindCanceled, Command: command, LogPath: r.LogPath, ExitCode: -1, Err: err}
	}

	cmd := exec.Command(invocation.Executable, invocation.Args...)
	log := r.Log
	if log == nil {
		log = io.Discard
	}
	cmd.Stdout = log
	cmd.Stderr = log
	cmd.Stdin = nil

	if len(r.Environment) > 0 {
		cmd.Env = os.Environ()
		names := make([]string, 0, len(r.Environment))
		for name := range r.Environment {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			cmd.Env = append(cmd.Env, name+"="+r.Environment[name])
		}
	}

	if err := cmd.Start(); err != nil {
		return &Error{Kind: KindLaunch, Command: command, LogPath: r.LogPath, ExitCode: -1, Err: err}
	}

	err := cmd.Wait()
	if err == nil {
		return nil
	}

	var exitError *exec.ExitError
	if errors.As(err, &exitError) {
		return &Error{Kind: KindExit, Command: command, LogPath: r.LogPath, ExitCode: exitError.ExitCode(), Err: err}
	}
	// Copying output into a non-file log failed after the process ran.
	return &Error{Kind: KindExit, Command: command, LogPath: r.LogPath, ExitCode: -1, Err: err}
}
