// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !linux

package sysmem

// Total reports that physical memory is unknown on this platform.
func Total() (uint64, bool) {
	return 0, false
}
