// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sysmem reports the physical memory of the host.
//
// The reference BWT used for verification is built in memory and needs
// roughly nine bytes per input byte. The pipeline driver compares that
// estimate with [Total] before a checked run and warns when the
// reference construction is unlikely to fit.
package sysmem
