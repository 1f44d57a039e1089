// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package runner executes one external stage at a time.
//
// A [Runner] owns nothing but a writable log target. [Runner.Run]
// starts the stage's executable directly (no shell), points its
// standard output and standard error at the log, and blocks until the
// process exits. There is no timeout and no retry: a stage that hangs
// hangs the run, and a stage that fails is reported once.
//
// Failures are returned as [*Error], which carries the exact command
// line and the log path so an operator can inspect the diagnostics the
// stage wrote without re-running anything. [Kind] distinguishes a
// program that could not be started from one that ran and exited
// non-zero.
package runner
