// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package digest provides BLAKE3 content hashing for transform
// artifacts.
//
// Verification records a digest of the pipeline's transform and of the
// reference transform alongside the byte comparison, so a run record
// identifies exactly which outputs were compared even after the files
// are gone.
//
//   - [HashFile] -- streams a file through BLAKE3, returning a [32]byte
//     digest with constant memory usage regardless of file size
//   - [Format] -- converts a digest to its canonical hex string
//   - [Parse] -- parses a hex string back to a digest, validating length
//     and encoding
package digest
