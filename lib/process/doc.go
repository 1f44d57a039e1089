// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides the binary entrypoint error handler.
//
// Errors that reach main() may arrive before the structured logger
// exists (a bad flag, an unreadable config file), so they are written
// to stderr as plain text. Errors that carry an exit code have already
// been reported and only set the process status.
package process
