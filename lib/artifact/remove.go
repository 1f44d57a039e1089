// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package artifact

import (
	"errors"
	"fmt"
	"os"
)

// Remove deletes the artifacts of input named by suffixes. Every path
// is attempted even after a failure; the request as a whole fails if
// any deletion failed. There is no existence check: an artifact that
// is already gone is a failure, the same as one that cannot be
// unlinked.
//
// The returned error joins one error per failed path, each wrapping the
// underlying *os.PathError so callers can test for os.ErrNotExist.
func Remove(input string, suffixes []string) error {
	if input == "" {
		return fmt.Errorf("removing artifacts: empty input path")
	}

	var errs []error
	for _, suffix := range suffixes {
		path := Path(input, suffix)
		if err := os.Remove(path); err != nil {
			errs = append(errs, fmt.Errorf("removing %s: %w", path, err))
		}
	}
	return errors.Join(errs...)
}

// Paths returns the artifact paths of input for each suffix, in order.
func Paths(input string, suffixes []string) []string {
	paths := make([]string, len(suffixes))
	for index, suffix := range suffixes {
		paths[index] = Path(input, suffix)
	}
	return paths
}
