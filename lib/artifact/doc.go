// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package artifact names and manages the on-disk byproducts of a BWT
// construction run.
//
// Every file a stage reads or writes is identified by the input file's
// path plus a fixed suffix: the parse of "genome.fa" is
// "genome.fa.parse", its dictionary "genome.fa.dict", and so on. [Path]
// is the only place that convention is spelled out; every other package
// names artifacts through it.
//
// The intermediate set ([Intermediates]) is produced by the parse,
// parse-BWT, and merge stages and is no longer needed once the final
// transform exists. [Remove] deletes it as a single request that fails
// if any member could not be deleted, including members that are
// already gone.
package artifact
