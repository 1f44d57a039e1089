// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build linux

package sysmem

import "golang.org/x/sys/unix"

// Total returns the physical memory of the host in bytes. The second
// result is false when the size could not be determined.
func Total() (uint64, bool) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0, false
	}
	return uint64(info.Totalram) * uint64(info.Unit), true
}
