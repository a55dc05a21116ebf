package gateways

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Digests of the string "abc".
const (
	abcSHA1   = "a9993e364706816aba3e25717850c26c9cd0d89d"
	abcSHA256 = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
)

func writeTestFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "artifact")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestChecksumVerifier_Verify(t *testing.T) {
	v := NewChecksumVerifier()
	path := writeTestFile(t, "abc")

	tests := []struct {
		name     string
		expected string
		wantErr  bool
	}{
		{"sha1 match", abcSHA1, false},
		{"sha256 match", abcSHA256, false},
		{"uppercase digest", strings.ToUpper(abcSHA1), false},
		{"digest with whitespace", "  " + abcSHA256 + "\n", false},
		{"sha1 mismatch", strings.Repeat("0", 40), true},
		{"sha256 mismatch", strings.Repeat("0", 64), true},
		{"unrecognized length", "abc123", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Verify(path, tt.expected)
			if (err != nil) != tt.wantErr {
				t.Errorf("Verify() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestChecksumVerifier_Verify_MissingFile(t *testing.T) {
	v := NewChecksumVerifier()

	if err := v.Verify("/nonexistent/win.esd", abcSHA1); err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestChecksumVerifier_Calculate(t *testing.T) {
	v := NewChecksumVerifier()
	path := writeTestFile(t, "abc")

	sha1Sum, err := v.CalculateSHA1(path)
	if err != nil {
		t.Fatalf("CalculateSHA1() error: %v", err)
	}
	if sha1Sum != abcSHA1 {
		t.Errorf("CalculateSHA1() = %s, want %s", sha1Sum, abcSHA1)
	}

	sha256Sum, err := v.CalculateSHA256(path)
	if err != nil {
		t.Fatalf("CalculateSHA256() error: %v", err)
	}
	if sha256Sum != abcSHA256 {
		t.Errorf("CalculateSHA256() = %s, want %s", sha256Sum, abcSHA256)
	}
}
