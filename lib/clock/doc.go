// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source so stage timings
// can be tested deterministically.
//
// Production code holds a Clock and calls Now instead of time.Now. In
// production, Real() provides the standard library behavior. In tests,
// Fake() returns a clock that only moves when told to: explicitly with
// Advance, or by a fixed step on every reading with Step.
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	c.Step(1500 * time.Millisecond)
//	driver := &pipeline.Driver{Clock: c}
//	// every stage now takes exactly 1.5s
package clock
