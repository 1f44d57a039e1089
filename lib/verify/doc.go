// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package verify compares the pipeline's transform with an
// independently computed reference transform.
//
// [Compare] streams both files and stops at the first differing byte,
// the way cmp(1) does. It never writes to either file. The outcome is
// always a [Result], never an error: verification is diagnostic, so a
// difference, a length mismatch, and an unreadable file are all
// reported as "differ" with a reason rather than failing the run.
package verify
