// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
)

// fileFingerprint hashes kind, the absolute path, size and mtime of every
// file. Missing files are an error.
func fileFingerprint(kind string, paths ...string) (string, error) {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00", kind)
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			return "", fmt.Errorf("fingerprint %s: %w", p, err)
		}
		fmt.Fprintf(h, "%s\x00%d\x00%d\x00", p, fi.Size(), fi.ModTime().UnixNano())
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
