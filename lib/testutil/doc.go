// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for bigbwt packages.
//
// [WriteScript] writes an executable #!/bin/sh script into a test
// directory. Tests use scripts to stand in for the external stage
// programs: a script can create the artifacts a real stage would, print
// to the shared log, record that it ran, or exit non-zero.
//
// [StageScripts] writes a complete set of fake stages that produce
// every artifact a real run produces, with a final transform one byte
// longer than the input, and returns the matching stage.Executables.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
