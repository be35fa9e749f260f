package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
)

// SHA256Hex returns the hex-encoded sha256 digest of data.
//
// File-backed stores keep the digest of the last content they parsed and
// compare it on every access, so a reparse only happens after the file
// actually changed.
func SHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ReadFileWithHash reads path and returns its content along with its digest.
func ReadFileWithHash(path string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	return data, SHA256Hex(data), nil
}
