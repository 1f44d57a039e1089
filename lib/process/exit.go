// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ExitCoder is implemented by errors that select the process exit
// status and have already been reported to the user.
type ExitCoder interface {
	ExitCode() int
}

// Fatal reports err and exits. Errors implementing [ExitCoder] exit
// with their code and print nothing; anything else prints
// "error: err" to stderr and exits with code 1.
func Fatal(err error) {
	os.Exit(Report(os.Stderr, err))
}

// Report writes err to w the way [Fatal] does and returns the exit
// code Fatal would use. A nil error returns 0.
func Report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	var coder ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	fmt.Fprintf(w, "error: %v\n", err)
	return 1
}
