// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/bigbwt/lib/stage"
)

// Fake stage bodies. Each appends its own name to $BIGBWT_TEST_TRACE
// when the variable is set, so tests can assert the exact sequence of
// invocations, then writes the artifacts the real program would.
//
// The final transform is a NUL end-of-file marker followed by the
// input, so its size is the input size plus one. The reference stage
// produces the same bytes, so verification of an untouched run
// matches.
const (
	// FakeParse is invoked as "<wsize> <mod> <input>".
	FakeParse = `
[ -n "$BIGBWT_TEST_TRACE" ] && echo "parse $*" >> "$BIGBWT_TEST_TRACE"
echo "parsing $3 with window $1 and modulus $2"
printf 'PPPPPPPP' > "$3.parse"
printf 'PPPP' > "$3.parse_old"
printf 'LL' > "$3.last"
printf 'dictionary' > "$3.dict"
printf 'OO' > "$3.occ"
`

	// FakeParseBWT is invoked as "<input>".
	FakeParseBWT = `
[ -n "$BIGBWT_TEST_TRACE" ] && echo "parse-bwt $*" >> "$BIGBWT_TEST_TRACE"
echo "computing BWT of parse for $1"
test -f "$1.parse"
printf 'BB' > "$1.bwlast"
printf 'II' > "$1.ilist"
`

	// FakeFinalBWT is invoked as "<wsize> <input>".
	FakeFinalBWT = `
[ -n "$BIGBWT_TEST_TRACE" ] && echo "final-bwt $*" >> "$BIGBWT_TEST_TRACE"
echo "merging dictionary for $2"
test -f "$2.dict"
test -f "$2.bwlast"
{ printf '\000'; cat "$2"; } > "$2.bwt"
`

	// FakeReference is invoked as "<input>".
	FakeReference = `
[ -n "$BIGBWT_TEST_TRACE" ] && echo "reference $*" >> "$BIGBWT_TEST_TRACE"
echo "computing reference BWT for $1" >&2
{ printf '\000'; cat "$1"; } > "$1.Bwt"
`
)

// StageScripts writes the fake stages into directory and returns
// executables pointing at them. The large-offset builds are separate
// scripts (named *64) that record a "64" suffix in the trace.
func StageScripts(t testing.TB, directory string) stage.Executables {
	t.Helper()

	return stage.Executables{
		Parse:       WriteScript(t, directory, "newscan.x", FakeParse),
		ParseBWT:    WriteScript(t, directory, "bwtparse", FakeParseBWT),
		ParseBWT64:  WriteScript(t, directory, "bwtparse64", large(FakeParseBWT, "parse-bwt")),
		FinalBWT:    WriteScript(t, directory, "pfbwt.x", FakeFinalBWT),
		Reference:   WriteScript(t, directory, "simplebwt", FakeReference),
		Reference64: WriteScript(t, directory, "simplebwt64", large(FakeReference, "reference")),
	}
}

// TracePath returns the trace file path tests should export as
// BIGBWT_TEST_TRACE.
func TracePath(directory string) string {
	return filepath.Join(directory, "trace")
}

func large(body, name string) string {
	return strings.Replace(body, `echo "`+name+` $*"`, `echo "`+name+`64 $*"`, 1)
}
