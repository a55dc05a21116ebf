package gpg

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestVerifier_ImportKeyFromFile_NonexistentFile(t *testing.T) {
	v := NewVerifier()

	err := v.ImportKeyFromFile("/nonexistent/key.asc")
	if err == nil {
		t.Fatal("Expected error for nonexistent file, got nil")
	}
	if !strings.Contains(err.Error(), "failed to open key file") {
		t.Errorf("Expected 'failed to open key file' error, got: %v", err)
	}
}

func TestVerifier_ImportKeyFromFile_InvalidKey(t *testing.T) {
	v := NewVerifier()
	tmpDir := t.TempDir()

	keyPath := filepath.Join(tmpDir, "garbage.asc")
	if err := os.WriteFile(keyPath, []byte("not a gpg key"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := v.ImportKeyFromFile(keyPath); err == nil {
		t.Fatal("Expected error for invalid key file, got nil")
	}
	if v.KeyringSize() != 0 {
		t.Errorf("KeyringSize() = %d, want 0 after failed import", v.KeyringSize())
	}
}

func TestVerifier_VerifyDetachedFromFile_NoKeys(t *testing.T) {
	v := NewVerifier()
	tmpDir := t.TempDir()

	dataPath := filepath.Join(tmpDir, "win.esd")
	sigPath := filepath.Join(tmpDir, "win.esd.asc")
	if err := os.WriteFile(dataPath, []byte("media bytes"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(sigPath, []byte("-----BEGIN PGP SIGNATURE-----\n..."), 0600); err != nil {
		t.Fatal(err)
	}

	err := v.VerifyDetachedFromFile(dataPath, sigPath)
	if err == nil {
		t.Fatal("Expected error when no keys are imported")
	}
	if !strings.Contains(err.Error(), "no keys imported") {
		t.Errorf("Expected 'no keys imported' error, got: %v", err)
	}
}

func TestVerifier_ImportKeysFromURL_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	v := NewVerifier()
	err := v.ImportKeysFromURL(context.Background(), srv.URL+"/KEYS")
	if err == nil {
		t.Fatal("Expected error for server failure")
	}
	if !strings.Contains(err.Error(), "status 500") {
		t.Errorf("Expected status 500 in error, got: %v", err)
	}
}

func TestVerifier_ImportKeysFromURL_InvalidBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("definitely not key material"))
	}))
	defer srv.Close()

	v := NewVerifier()
	if err := v.ImportKeysFromURL(context.Background(), srv.URL+"/KEYS"); err == nil {
		t.Fatal("Expected error for invalid key material")
	}
}

func TestVerifier_ImportKeys_NoIDs(t *testing.T) {
	v := NewVerifier()

	if err := v.ImportKeys(context.Background(), nil); err == nil {
		t.Fatal("Expected error for empty key ID list")
	}
}

func TestVerifier_ClearKeyring(t *testing.T) {
	v := NewVerifier()
	v.ClearKeyring()

	if v.KeyringSize() != 0 {
		t.Errorf("KeyringSize() = %d, want 0", v.KeyringSize())
	}
}
