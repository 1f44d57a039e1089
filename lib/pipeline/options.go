// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bureau-foundation/bigbwt/lib/logarchive"
)

// Options are the parameters of one run.
type Options struct {
	// Input is the path of the text to transform. Every artifact is
	// named after it.
	Input string

	// WindowSize is the parsing window, also passed to the final merge.
	WindowSize int

	// Modulus is the parsing hash modulus.
	Modulus int

	// KeepTemporaries skips the Cleanup stage.
	KeepTemporaries bool

	// Check adds the Verify stage.
	Check bool

	// CompressLog compresses the stage log after a run reaches Done.
	// The zero value leaves it as plain text.
	CompressLog logarchive.Format
}

// DefaultOptions returns the options for input with the default window
// size (10) and modulus (100).
func DefaultOptions(input string) Options {
	return Options{
		Input:       input,
		WindowSize:  10,
		Modulus:     100,
		CompressLog: logarchive.None,
	}
}

// Validate reports every problem with the options.
func (o Options) Validate() error {
	var errs []error
	if o.Input == "" {
		errs = append(errs, errors.New("input file is required"))
	} else if strings.HasPrefix(o.Input, "-") {
		errs = append(errs, fmt.Errorf("input %q must not start with '-'", o.Input))
	}
	if o.WindowSize <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %d", o.WindowSize))
	}
	if o.Modulus <= 0 {
		errs = append(errs, fmt.Errorf("modulus must be positive, got %d", o.Modulus))
	}
	if _, err := logarchive.ParseFormat(string(o.CompressLog)); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
