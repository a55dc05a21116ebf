package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeChecksumFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "win.esd.sha256")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadChecksumFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{
			name:    "bare digest",
			content: "a9993e364706816aba3e25717850c26c9cd0d89d\n",
			want:    "a9993e364706816aba3e25717850c26c9cd0d89d",
		},
		{
			name:    "sha256sum output format",
			content: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad  win.esd\n",
			want:    "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
		{
			name:    "empty file",
			content: "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			content: " \n\t\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeChecksumFile(t, tt.content)

			got, err := readChecksumFile(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("readChecksumFile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !strings.Contains(err.Error(), "no digest") {
					t.Errorf("error = %v, want mention of missing digest", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("readChecksumFile() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadChecksumFile_MissingFile(t *testing.T) {
	if _, err := readChecksumFile("/nonexistent/win.esd.sha256"); err == nil {
		t.Fatal("Expected error for missing checksum file")
	}
}
