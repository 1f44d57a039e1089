// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec is the CBOR encoding used for binary run records.
//
// All CBOR produced by bigbwt goes through this package, which fixes
// the encoder to Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. The
// same record always encodes to the same bytes, so two run records can
// be compared or hashed directly.
//
// Records are written as a CBOR sequence (RFC 8742): concatenated data
// items with no framing. [NewEncoder] and [NewDecoder] stream them;
// [Diagnose] renders one for humans.
//
// The type aliases ([Encoder], [Decoder], [RawMessage]) let callers
// use the CBOR library's types without importing it directly.
package codec
