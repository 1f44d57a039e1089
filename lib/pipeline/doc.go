// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package pipeline drives one BWT construction from an input file to a
// finished "<input>.bwt".
//
// A run is a fixed sequence of stages:
//
//	Parsing -> ParseBWT -> FinalBWT -> [Cleanup] -> [Verify] -> Done
//
// Parsing, ParseBWT, and FinalBWT each launch one external program
// through [runner.Runner]. Cleanup removes the seven intermediate
// artifacts and is skipped when temporaries are kept. Verify runs the
// reference construction and byte-compares the two transforms; it runs
// only when checking is requested.
//
// Stages run strictly one at a time. The first failing stage ends the
// run in Failed(stage): nothing after it is started, and the operator
// is shown the failing command line and the log path. A verification
// mismatch is not a failure. The run still reaches Done and the
// outcome is reported as "BWTs differ".
//
// Every child writes stdout and stderr to one log, "<input>.log",
// created fresh for each run. Operator-facing progress goes to a
// [console.Console]; structured events go to a [slog.Logger]; an
// optional [resultlog.Log] receives a machine-readable record.
//
// Cancellation (SIGINT, SIGTERM) is honored only between stages. A
// stage that has started always runs to completion.
package pipeline
