// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// Size is the length of a digest in bytes.
const Size = 32

// HashFile computes the BLAKE3 digest of the file at path.
func HashFile(path string) ([Size]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return [Size]byte{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	return HashReader(file)
}

// HashReader computes the BLAKE3 digest of everything read from r.
func HashReader(r io.Reader) ([Size]byte, error) {
	hasher := blake3.New()
	if _, err := io.Copy(hasher, r); err != nil {
		return [Size]byte{}, fmt.Errorf("hashing: %w", err)
	}

	var sum [Size]byte
	copy(sum[:], hasher.Sum(nil))
	return sum, nil
}

// Format returns the hex encoding of a digest.
func Format(sum [Size]byte) string {
	return hex.EncodeToString(sum[:])
}

// Parse parses a hex-encoded digest.
func Parse(hexString string) ([Size]byte, error) {
	var sum [Size]byte
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return sum, fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != Size {
		return sum, fmt.Errorf("digest is %d bytes, want %d", len(decoded), Size)
	}
	copy(sum[:], decoded)
	return sum, nil
}
