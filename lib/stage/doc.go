// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package stage describes the external programs a BWT construction
// runs and decides which build of each program to use.
//
// Four roles exist: parsing, parse-BWT, final-BWT merge, and the
// reference BWT used for verification. Two of them ship in a standard
// build and a large-offset build whose offsets are 64 bits wide. The
// choice is a pure function of an artifact size:
//
//   - [SelectParseBWT] inspects the parse. The parse-BWT program reads
//     fixed 4-byte records and the standard build indexes them with a
//     32-bit integer, so a parse of [ParseBWTThreshold] bytes or more
//     needs the large-offset build.
//   - [SelectReference] inspects the original input and switches at
//     [ReferenceThreshold] (2 GiB).
//
// Parsing and merging always use their single build.
//
// [Executables] holds the identity (path or PATH-resolvable name) of
// every build. One value is built at startup and passed down; nothing
// in this package holds mutable state.
//
// An [Invocation] is an argv vector, never a shell string. Each role has
// its own constructor that validates the arguments before any process
// can be launched.
package stage
