package gateways

import (
	"crypto/sha1" //nolint:gosec // G505: SHA-1 is what the vendor catalog publishes
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"
)

// Hex digest lengths used to pick the hash algorithm.
const (
	sha1HexLen   = 40
	sha256HexLen = 64
)

// ChecksumVerifier checks downloaded media against published digests. The
// product catalog publishes SHA-1; standalone checksum files are usually
// SHA-256.
type ChecksumVerifier struct{}

// NewChecksumVerifier creates a new checksum verifier
func NewChecksumVerifier() *ChecksumVerifier {
	return &ChecksumVerifier{}
}

// Verify computes the digest of the file at path and compares it to expected,
// choosing the algorithm from the digest length
func (v *ChecksumVerifier) Verify(path, expected string) error {
	expected = strings.TrimSpace(expected)

	var h hash.Hash
	var algo string
	switch len(expected) {
	case sha1HexLen:
		h = sha1.New() //nolint:gosec // G401: catalog digests are SHA-1
		algo = "SHA-1"
	case sha256HexLen:
		h = sha256.New()
		algo = "SHA-256"
	default:
		return fmt.Errorf("unrecognized digest length %d, expected %d (SHA-1) or %d (SHA-256)",
			len(expected), sha1HexLen, sha256HexLen)
	}

	actual, err := v.digest(path, h)
	if err != nil {
		return err
	}

	if !strings.EqualFold(actual, expected) {
		return fmt.Errorf("%s mismatch for %s: got %s, want %s", algo, path, actual, expected)
	}
	return nil
}

// CalculateSHA1 returns the hex SHA-1 digest of the file at path
func (v *ChecksumVerifier) CalculateSHA1(path string) (string, error) {
	return v.digest(path, sha1.New()) //nolint:gosec // G401: catalog digests are SHA-1
}

// CalculateSHA256 returns the hex SHA-256 digest of the file at path
func (v *ChecksumVerifier) CalculateSHA256(path string) (string, error) {
	return v.digest(path, sha256.New())
}

func (v *ChecksumVerifier) digest(path string, h hash.Hash) (string, error) {
	//nolint:gosec // G304: path is the operator-chosen artifact location
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file for hashing: %w", err)
	}
	//nolint:errcheck // Defer close on file opened read-only
	defer f.Close()

	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
