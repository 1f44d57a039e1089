// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the optional bigbwt configuration file.
//
// Configuration comes from at most one file, named by either the
// BIGBWT_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no discovery and no search path: without
// one of the two, the built-in [Default] is used as is. Command-line
// flags override whatever the file sets.
//
// Files ending in .json or .jsonc are read as JSON with comments and
// trailing commas allowed; everything else is read as YAML.
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${VAR}, and ${VAR:-default} patterns are expanded. No
// environment variable overrides a config value directly.
//
// Key exports:
//
//   - [Config] -- executables, stage parameters, and output options
//   - [Default] -- the configuration used when no file is given
//   - [Load] and [LoadFile] -- the two entry points for loading
package config
