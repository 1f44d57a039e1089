// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// bigbwt builds the Burrows-Wheeler transform of a large, highly
// repetitive file using prefix-free parsing.
//
// The construction itself is done by external programs (newscan.x,
// bwtparse, pfbwt.x, and for checking simplebwt). bigbwt runs them in
// order, picks the 64-bit builds when the inputs outgrow 32-bit
// offsets, sends their output to "<input>.log", deletes the
// intermediate files, and with -c checks the result against an
// independent construction.
//
// The input must not contain the bytes 0, 1, or 2, which are used
// internally; byte 0 is the end-of-text marker in the output
// "<input>.bwt". Checking builds a second transform in about 9n bytes
// of memory.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/bigbwt/lib/clock"
	"github.com/bureau-foundation/bigbwt/lib/config"
	"github.com/bureau-foundation/bigbwt/lib/console"
	"github.com/bureau-foundation/bigbwt/lib/logarchive"
	"github.com/bureau-foundation/bigbwt/lib/pipeline"
	"github.com/bureau-foundation/bigbwt/lib/process"
	"github.com/bureau-foundation/bigbwt/lib/resultlog"
	"github.com/bureau-foundation/bigbwt/lib/sysmem"
	"github.com/bureau-foundation/bigbwt/lib/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		process.Fatal(err)
	}
}

// flags holds the parsed command line.
type flags struct {
	configPath    string
	executableDir string
	resultPath    string
	compressLog   string
	color         string
	logLevel      string
	windowSize    int
	modulus       int
	keep          bool
	check         bool
}

func newFlagSet(values *flags, stderr io.Writer) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("bigbwt", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.IntVarP(&values.windowSize, "wsize", "w", 10, "sliding window size")
	flagSet.IntVarP(&values.modulus, "mod", "p", 100, "hash modulus")
	flagSet.BoolVarP(&values.keep, "keep", "k", false, "keep temporary files")
	flagSet.BoolVarP(&values.check, "check", "c", false, "check the BWT against an independent construction")
	flagSet.StringVar(&values.configPath, "config", "", "config file (default: $"+config.EnvironmentVariable+")")
	flagSet.StringVar(&values.executableDir, "exe-dir", "", "directory holding the stage programs")
	flagSet.StringVar(&values.resultPath, "result", "", "write a structured run record (JSON lines, or CBOR for *.cbor)")
	flagSet.StringVar(&values.compressLog, "compress-log", "none", "compress the log after a successful run: none, zstd, lz4")
	flagSet.StringVar(&values.color, "color", "auto", "color progress output: auto, always, never")
	flagSet.StringVar(&values.logLevel, "log-level", "info", "structured log level: debug, info, warn, error")
	flagSet.BoolP("help", "h", false, "show help")
	flagSet.Usage = func() { printHelp(stderr, flagSet) }
	return flagSet
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Handle --version before flag parsing so no other flag can reject it.
	if len(args) > 0 && args[0] == "--version" {
		version.Fprint(stdout, "bigbwt")
		return nil
	}

	var values flags
	flagSet := newFlagSet(&values, stderr)
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		fmt.Fprintln(stderr, "Run 'bigbwt --help' for usage.")
		return &ExitError{Code: 2}
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(stderr, flagSet)
		return nil
	}

	positional := flagSet.Args()
	if len(positional) != 1 {
		fmt.Fprintf(stderr, "error: expected exactly one input file, got %d\n", len(positional))
		printHelp(stderr, flagSet)
		return &ExitError{Code: 2}
	}
	input := positional[0]

	cfg, err := loadConfig(values.configPath)
	if err != nil {
		return err
	}
	applyFlags(cfg, flagSet, &values)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return &ExitError{Code: 2}
	}

	logger, err := newLogger(stderr, values.logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return &ExitError{Code: 2}
	}

	colorMode, _ := console.ParseColorMode(cfg.Color)
	compression, _ := logarchive.ParseFormat(cfg.CompressLog)

	var results *resultlog.Log
	if cfg.ResultPath != "" {
		results, err = resultlog.Create(cfg.ResultPath, logger)
		if err != nil {
			return err
		}
		defer results.Close()
	}

	driver := &pipeline.Driver{
		Executables: cfg.ResolvedExecutables(),
		Console:     console.New(stdout, colorMode),
		Logger:      logger,
		Clock:       clock.Real(),
		Results:     results,
		MemoryProbe: sysmem.Total,
	}
	options := pipeline.Options{
		Input:           input,
		WindowSize:      cfg.WindowSize,
		Modulus:         cfg.Modulus,
		KeepTemporaries: cfg.KeepTemporaries,
		Check:           cfg.Check,
		CompressLog:     compression,
	}

	if _, err := driver.Run(ctx, options); err != nil {
		var stageErr *pipeline.StageError
		if errors.As(err, &stageErr) {
			// The driver has printed the command line and the log path.
			return &ExitError{Code: 1}
		}
		return err
	}
	return nil
}

// loadConfig loads the --config file, or the BIGBWT_CONFIG file, or the
// defaults, in that order of preference.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// applyFlags overrides cfg with every flag given on the command line.
func applyFlags(cfg *config.Config, flagSet *pflag.FlagSet, values *flags) {
	if flagSet.Changed("wsize") {
		cfg.WindowSize = values.windowSize
	}
	if flagSet.Changed("mod") {
		cfg.Modulus = values.modulus
	}
	if flagSet.Changed("keep") {
		cfg.KeepTemporaries = values.keep
	}
	if flagSet.Changed("check") {
		cfg.Check = values.check
	}
	if flagSet.Changed("exe-dir") {
		cfg.ExecutableDir = values.executableDir
	}
	if flagSet.Changed("result") {
		cfg.ResultPath = values.resultPath
	}
	if flagSet.Changed("compress-log") {
		cfg.CompressLog = values.compressLog
	}
	if flagSet.Changed("color") {
		cfg.Color = values.color
	}
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `bigbwt builds the BWT of a highly repetitive file using prefix-free parsing.

The input cannot contain the bytes 0, 1, or 2, which are used internally.
Byte 0 is the end-of-text marker in the output <input>.bwt. Stage output
is written to <input>.log.

Inputs larger than 2GB are fine, but -c builds a second BWT the
traditional way in about 9n bytes of memory.

Usage:
  bigbwt [flags] <input>

Examples:
  # Build chr19.fa.bwt with the default window and modulus
  bigbwt chr19.fa

  # Keep the parse and dictionary, and verify the result
  bigbwt -k -c chr19.fa

  # Use stage programs installed elsewhere
  bigbwt --exe-dir /opt/bigbwt -w 12 -p 50 chr19.fa

Flags:
`)
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}

// parseLevel parses a --log-level value.
func parseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("invalid log level %q (want debug, info, warn, or error)", name)
	}
	return level, nil
}
