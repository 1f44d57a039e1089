// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/bureau-foundation/bigbwt/lib/artifact"
	"github.com/bureau-foundation/bigbwt/lib/clock"
	"github.com/bureau-foundation/bigbwt/lib/console"
	"github.com/bureau-foundation/bigbwt/lib/logarchive"
	"github.com/bureau-foundation/bigbwt/lib/resultlog"
	"github.com/bureau-foundation/bigbwt/lib/runner"
	"github.com/bureau-foundation/bigbwt/lib/stage"
	"github.com/bureau-foundation/bigbwt/lib/verify"
)

// referenceBytesPerSymbol is the working-set estimate of the reference
// construction: 9n bytes for an n-byte input.
const referenceBytesPerSymbol = 9

// Driver runs the construction pipeline. A Driver holds no per-run
// state and may be reused for several runs, one at a time.
type Driver struct {
	// Executables are the stage programs. Required.
	Executables stage.Executables

	// Console receives operator-facing progress. Nil discards it.
	Console *console.Console

	// Logger receives structured events. Nil discards them.
	Logger *slog.Logger

	// Clock times the stages. Nil uses the real clock.
	Clock clock.Clock

	// Results receives the structured run record. Nil disables it.
	Results *resultlog.Log

	// MemoryProbe reports physical memory for the verification
	// preflight. Nil skips the preflight.
	MemoryProbe func() (uint64, bool)

	// SizeOf measures artifacts for variant selection. Nil uses
	// [artifact.Size].
	SizeOf func(path string) (int64, error)

	// Environment is added to the environment of every stage.
	Environment map[string]string
}

// run is the state of one Driver.Run call.
type run struct {
	ctx     context.Context
	options Options
	record  *Record

	console *console.Console
	logger  *slog.Logger
	clock   clock.Clock
	results *resultlog.Log
	sizeOf  func(string) (int64, error)

	executables stage.Executables
	runner      *runner.Runner
	log         *os.File
	logClosed   bool
}

// Run executes every requested stage for options.Input. It returns the
// run's record and, when a stage failed, a *StageError. Errors that
// prevent the run from starting at all (invalid options, an
// uncreatable log) are returned with a nil record.
func (d *Driver) Run(ctx context.Context, options Options) (*Record, error) {
	if err := options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := d.Executables.Validate(); err != nil {
		return nil, fmt.Errorf("invalid executables: %w", err)
	}

	r := &run{
		ctx:         ctx,
		options:     options,
		console:     d.Console,
		logger:      d.Logger,
		clock:       d.Clock,
		results:     d.Results,
		sizeOf:      d.SizeOf,
		executables: d.Executables,
	}
	if r.console == nil {
		r.console = console.Discard()
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	if r.clock == nil {
		r.clock = clock.Real()
	}
	if r.sizeOf == nil {
		r.sizeOf = artifact.Size
	}

	logPath := artifact.Path(options.Input, artifact.Log)
	r.console.Printf("Sending logging messages to file: %s", logPath)
	logFile, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("creating stage log: %w", err)
	}
	r.log = logFile
	defer r.closeLog()

	r.runner = &runner.Runner{Log: logFile, LogPath: logPath, Environment: d.Environment}
	r.record = &Record{
		Input:   options.Input,
		Options: options,
		LogPath: logPath,
		State:   Running,
		Started: r.clock.Now(),
	}

	inputSize, sizeErr := r.sizeOf(options.Input)
	if sizeErr != nil {
		inputSize = -1
	}
	r.results.WriteStart(resultlog.StartEntry{
		Input:           options.Input,
		InputSize:       inputSize,
		WindowSize:      options.WindowSize,
		Modulus:         options.Modulus,
		KeepTemporaries: options.KeepTemporaries,
		Check:           options.Check,
		LogPath:         logPath,
	}, r.record.Started)
	r.logger.Info("starting construction",
		"input", options.Input,
		"input_size", inputSize,
		"window_size", options.WindowSize,
		"modulus", options.Modulus,
		"keep_temporaries", options.KeepTemporaries,
		"check", options.Check,
		"log", logPath,
	)

	if options.Check && d.MemoryProbe != nil && inputSize > 0 {
		r.preflightMemory(d.MemoryProbe, inputSize)
	}

	if err := r.execute(); err != nil {
		return r.record, err
	}
	r.finish()
	return r.record, nil
}

// execute runs the stages in order and returns the first failure.
func (r *run) execute() error {
	options := r.options

	invocation, err := stage.ParseInvocation(r.executables, options.WindowSize, options.Modulus, options.Input)
	if err != nil {
		return r.fail(Parsing, "", err)
	}
	r.console.Header("Parsing. Command: %s", invocation)
	if err := r.launch(Parsing, invocation); err != nil {
		return err
	}

	parsePath := artifact.Path(options.Input, artifact.Parse)
	parseSize, err := r.sizeOf(parsePath)
	if err != nil {
		r.logFailure("measuring parse: %v", err)
		return r.fail(ParseBWT, "", fmt.Errorf("measuring parse: %w", err))
	}
	variant := stage.SelectParseBWT(parseSize)
	r.logger.Info("selected parse BWT build",
		"variant", variant.String(),
		"parse_size", parseSize,
		"threshold", stage.ParseBWTThreshold,
	)
	invocation, err = stage.ParseBWTInvocation(r.executables, variant, options.Input)
	if err != nil {
		return r.fail(ParseBWT, "", err)
	}
	r.console.Header("Computing BWT of parsing. Command: %s", invocation)
	if err := r.launch(ParseBWT, invocation); err != nil {
		return err
	}

	invocation, err = stage.FinalBWTInvocation(r.executables, options.WindowSize, options.Input)
	if err != nil {
		return r.fail(FinalBWT, "", err)
	}
	r.console.Header("Computing final BWT. Command: %s", invocation)
	if err := r.launch(FinalBWT, invocation); err != nil {
		return err
	}
	r.console.Printf("Total construction time: %.4f", clock.Since(r.clock, r.record.Started).Seconds())

	if !options.KeepTemporaries {
		if err := r.cleanup(); err != nil {
			return err
		}
	}

	if options.Check {
		if err := r.verify(); err != nil {
			return err
		}
	}
	return nil
}

// launch runs one external stage, recording and printing its duration
// on success.
func (r *run) launch(s Stage, invocation stage.Invocation) error {
	command := invocation.String()
	variant := ""
	if s == ParseBWT || s == Verify {
		variant = invocation.Variant.String()
	}

	r.logger.Info("stage started", "stage", s.String(), "command", command)
	started := r.clock.Now()
	if err := r.runner.Run(r.ctx, invocation); err != nil {
		return r.fail(s, command, err)
	}
	duration := clock.Since(r.clock, started)

	r.complete(StageResult{Stage: s, Command: command, Variant: variant, Started: started, Duration: duration})
	r.console.Printf("Elapsed time: %.4f", duration.Seconds())
	return nil
}

// cleanup deletes the intermediate artifacts as one request.
func (r *run) cleanup() error {
	paths := artifact.Paths(r.options.Input, artifact.Intermediates)
	command := "rm " + strings.Join(paths, " ")

	if err := r.ctx.Err(); err != nil {
		return r.fail(Cleanup, command, fmt.Errorf("not started: %w", err))
	}

	r.console.Header("Deleting temporary files.")
	started := r.clock.Now()
	if err := artifact.Remove(r.options.Input, artifact.Intermediates); err != nil {
		r.logFailure("%s: %v", command, err)
		return r.fail(Cleanup, command, err)
	}
	r.logger.Info("removed intermediate artifacts", "count", len(paths))
	r.complete(StageResult{Stage: Cleanup, Started: started, Duration: clock.Since(r.clock, started)})
	return nil
}

// verify runs the reference construction and compares the two
// transforms. Only a failure of the reference program fails the stage.
func (r *run) verify() error {
	input := r.options.Input
	started := r.clock.Now()

	inputSize, err := r.sizeOf(input)
	if err != nil {
		r.logFailure("measuring input: %v", err)
		return r.fail(Verify, "", fmt.Errorf("measuring input: %w", err))
	}
	variant := stage.SelectReference(inputSize)
	r.logger.Info("selected reference build",
		"variant", variant.String(),
		"input_size", inputSize,
		"threshold", stage.ReferenceThreshold,
	)

	invocation, err := stage.ReferenceInvocation(r.executables, variant, input)
	if err != nil {
		return r.fail(Verify, "", err)
	}
	command := invocation.String()
	r.console.Header("Computing BWT using sacak. Command: %s", command)
	if err := r.runner.Run(r.ctx, invocation); err != nil {
		return r.fail(Verify, command, err)
	}
	r.console.Printf("Elapsed time: %.4f", clock.Since(r.clock, started).Seconds())

	r.console.Header("Comparing BWTs.")
	result := verify.Compare(artifact.Path(input, artifact.BWT), artifact.Path(input, artifact.ReferenceBWT))
	r.record.Verification = &result
	if result.Match {
		r.console.Success("BWTs match")
	} else {
		r.logFailure("compare: %s", result.Reason)
		r.console.Failure("BWTs differ")
	}
	r.logger.Info("verification finished",
		"outcome", result.Outcome(),
		"offset", result.Offset,
		"reason", result.Reason,
		"pipeline_digest", result.PipelineDigest,
		"reference_digest", result.ReferenceDigest,
	)
	r.results.WriteVerify(result)

	r.complete(StageResult{
		Stage:    Verify,
		Command:  command,
		Variant:  variant.String(),
		Started:  started,
		Duration: clock.Since(r.clock, started),
	})
	return nil
}

// complete appends a finished stage to the record and result log.
func (r *run) complete(result StageResult) {
	r.record.Stages = append(r.record.Stages, result)
	total := clock.Since(r.clock, r.record.Started)
	r.logger.Info("stage finished",
		"stage", result.Stage.String(),
		"duration", result.Duration,
	)
	r.results.WriteStage(result.Stage.String(), result.Command, result.Variant, result.Duration, total)
}

// fail moves the run to Failed(s), tells the operator which command
// failed and where its output went, and returns the error for Run.
func (r *run) fail(s Stage, command string, err error) error {
	r.record.State = Failed
	r.record.FailedStage = s
	r.record.Total = clock.Since(r.clock, r.record.Started)

	if command != "" {
		r.console.Failure("Error executing command line:")
		r.console.Printf("\t%s", command)
	} else {
		r.console.Failure(fmt.Sprintf("Error in stage %s: %v", s, err))
	}
	r.console.Printf("Check log file: %s", r.record.LogPath)

	r.logger.Error("stage failed",
		"stage", s.String(),
		"command", command,
		"log", r.record.LogPath,
		"error", err,
	)
	r.results.WriteFailed(s.String(), command, err.Error(), r.record.Total)

	return &StageError{Stage: s, Command: command, LogPath: r.record.LogPath, Err: err}
}

// finish moves the run to Done and, if requested, compresses the log.
func (r *run) finish() {
	r.record.State = Done
	r.record.Total = clock.Since(r.clock, r.record.Started)
	r.console.Header("Done")
	r.logger.Info("construction finished", "input", r.options.Input, "total", r.record.Total)
	r.results.WriteComplete(r.record.Total)

	if r.options.CompressLog == "" || r.options.CompressLog == logarchive.None {
		return
	}
	r.closeLog()
	compressed, err := logarchive.Compress(r.record.LogPath, r.options.CompressLog)
	if err != nil {
		r.logger.Warn("leaving stage log uncompressed", "log", r.record.LogPath, "error", err)
		return
	}
	r.record.LogPath = compressed
	r.logger.Info("compressed stage log", "log", compressed, "format", string(r.options.CompressLog))
}

// preflightMemory warns when the reference construction is likely to
// exceed physical memory.
func (r *run) preflightMemory(probe func() (uint64, bool), inputSize int64) {
	total, ok := probe()
	if !ok {
		return
	}
	estimate := uint64(inputSize) * referenceBytesPerSymbol
	if estimate <= total {
		return
	}
	warning := fmt.Sprintf("reference construction needs about %d bytes but only %d bytes of memory are installed", estimate, total)
	r.record.Warnings = append(r.record.Warnings, warning)
	r.logger.Warn("verification may exhaust memory",
		"input_size", inputSize,
		"estimate_bytes", estimate,
		"memory_bytes", total,
	)
}

// logFailure writes one line about an in-process failure to the stage
// log, next to the children's output.
func (r *run) logFailure(format string, args ...any) {
	if r.logClosed {
		return
	}
	fmt.Fprintf(r.log, "bigbwt: "+format+"\n", args...)
}

func (r *run) closeLog() {
	if r.logClosed {
		return
	}
	r.logClosed = true
	if err := r.log.Close(); err != nil {
		r.logger.Warn("closing stage log", "log", r.record.LogPath, "error", err)
	}
}

