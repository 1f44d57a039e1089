// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/bureau-foundation/bigbwt/lib/runner"
	"github.com/bureau-foundation/bigbwt/lib/verify"
)

// Stage identifies one step of a run.
type Stage int

const (
	Parsing Stage = iota + 1
	ParseBWT
	FinalBWT
	Cleanup
	Verify
)

// String returns the stage name used in logs and result records.
func (s Stage) String() string {
	switch s {
	case Parsing:
		return "parsing"
	case ParseBWT:
		return "parse-bwt"
	case FinalBWT:
		return "final-bwt"
	case Cleanup:
		return "cleanup"
	case Verify:
		return "verify"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// State is where a run ended up.
type State int

const (
	// Running is the state of a record whose run has not finished.
	Running State = iota

	// Done means every requested stage succeeded. A verification
	// mismatch still ends in Done.
	Done

	// Failed means a stage failed; Record.FailedStage names it.
	Failed
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// StageResult is the record of one completed stage.
type StageResult struct {
	Stage Stage

	// Command is the command line shown to the operator. Empty for
	// in-process stages.
	Command string

	// Variant is the selected build for stages that have two, empty
	// otherwise.
	Variant string

	Started  time.Time
	Duration time.Duration
}

// Record describes a run: what was asked for, which stages completed,
// and how it ended.
type Record struct {
	Input   string
	Options Options

	// LogPath is the stage log. After a successful run with log
	// compression it names the compressed file.
	LogPath string

	// Stages lists the completed stages in order. A failed stage is
	// not listed.
	Stages []StageResult

	State       State
	FailedStage Stage

	// Verification is set when the comparison ran.
	Verification *verify.Result

	// Warnings holds preflight warnings that did not stop the run.
	Warnings []string

	Started time.Time
	Total   time.Duration
}

// Stage returns the result for stage s and whether it completed.
func (r *Record) Stage(s Stage) (StageResult, bool) {
	for _, result := range r.Stages {
		if result.Stage == s {
			return result, true
		}
	}
	return StageResult{}, false
}

// StageError is returned by [Driver.Run] when a stage fails. Err is a
// *runner.Error for stages that launch a program.
type StageError struct {
	Stage Stage

	// Command is the failing command line, empty when the stage failed
	// before one was built.
	Command string

	// LogPath is the stage log to inspect.
	LogPath string

	Err error
}

func (e *StageError) Error() string {
	message := fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
	// A runner error already names the log.
	var runnerErr *runner.Error
	if !errors.As(e.Err, &runnerErr) && e.LogPath != "" {
		message += " (see " + e.LogPath + ")"
	}
	return message
}

func (e *StageError) Unwrap() error { return e.Err }
