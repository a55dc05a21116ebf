// Package gpg provides detached-signature verification for downloaded media.
package gpg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"
)

const armoredSigPrefix = "-----BEGIN PGP SIGNATURE---"

// Verifier holds an in-memory keyring and checks detached signatures against it
type Verifier struct {
	keyring    openpgp.EntityList
	httpClient *http.Client
}

// NewVerifier creates a new verifier with an empty keyring
func NewVerifier() *Verifier {
	return &Verifier{
		keyring: make(openpgp.EntityList, 0),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ImportKeyFromFile imports a public key from a local file, armored or binary
func (v *Verifier) ImportKeyFromFile(keyPath string) error {
	//nolint:gosec // G304: keyPath is operator-provided for key import
	data, err := os.ReadFile(keyPath)
	if err != nil {
		return fmt.Errorf("failed to open key file: %w", err)
	}

	keys, err := readKeyring(data)
	if err != nil {
		return fmt.Errorf("failed to read key: %w", err)
	}

	v.keyring = append(v.keyring, keys...)
	return nil
}

// ImportKeysFromURL imports every key from a published KEYS file
func (v *Verifier) ImportKeysFromURL(ctx context.Context, keysURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, keysURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download KEYS file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("KEYS file download failed with status %d", resp.StatusCode)
	}

	// Some projects publish large keyring files; cap at 10MB.
	data, err := io.ReadAll(io.LimitReader(resp.Body, 10*1024*1024))
	if err != nil {
		return fmt.Errorf("failed to read KEYS file: %w", err)
	}

	keys, err := readKeyring(data)
	if err != nil {
		return fmt.Errorf("failed to parse KEYS file: %w", err)
	}

	v.keyring = append(v.keyring, keys...)
	return nil
}

// ImportKeys fetches keys by ID from public keyservers, trying each server
// until one responds with a key whose fingerprint matches the requested ID
func (v *Verifier) ImportKeys(ctx context.Context, keyIDs []string) error {
	if len(keyIDs) == 0 {
		return fmt.Errorf("no key IDs provided")
	}

	keyservers := []string{
		"https://keys.openpgp.org",
		"https://keyserver.ubuntu.com",
		"https://pgp.mit.edu",
	}

	for _, keyID := range keyIDs {
		if keyID == "" {
			continue
		}

		var lastErr error
		imported := false

		for _, server := range keyservers {
			urls := []string{
				fmt.Sprintf("%s/vks/v1/by-fingerprint/%s", server, keyID),
				fmt.Sprintf("%s/pks/lookup?op=get&search=0x%s", server, keyID),
			}

			for _, url := range urls {
				keys, err := v.fetchKey(ctx, url)
				if err != nil {
					lastErr = err
					continue
				}

				if !keyringMatchesID(keys, keyID) {
					lastErr = fmt.Errorf("no key matching fingerprint %s in keyserver response", keyID)
					continue
				}

				v.keyring = append(v.keyring, keys...)
				imported = true
				break
			}
			if imported {
				break
			}
		}

		if !imported {
			return fmt.Errorf("failed to import key %s from all keyservers: %w", keyID, lastErr)
		}
	}

	return nil
}

// VerifyDetachedFromFile checks a detached signature stored on disk
func (v *Verifier) VerifyDetachedFromFile(filePath, sigPath string) error {
	//nolint:gosec // G304: sigPath is operator-provided for verification
	sigData, err := os.ReadFile(sigPath)
	if err != nil {
		return fmt.Errorf("failed to read signature file: %w", err)
	}
	return v.verifyDetached(filePath, sigData)
}

// VerifyDetachedFromURL downloads a detached signature and checks it
func (v *Verifier) VerifyDetachedFromURL(ctx context.Context, filePath, sigURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sigURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create signature download request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download signature: %w", err)
	}
	//nolint:errcheck // Defer close
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("signature download failed with status %d", resp.StatusCode)
	}

	// Detached signatures are tiny; cap at 10KB.
	sigData, err := io.ReadAll(io.LimitReader(resp.Body, 10*1024))
	if err != nil {
		return fmt.Errorf("failed to read signature: %w", err)
	}

	return v.verifyDetached(filePath, sigData)
}

// KeyringSize returns the number of keys in the keyring
func (v *Verifier) KeyringSize() int {
	return len(v.keyring)
}

// ClearKeyring clears all imported keys
func (v *Verifier) ClearKeyring() {
	v.keyring = make(openpgp.EntityList, 0)
}

func (v *Verifier) verifyDetached(filePath string, sigData []byte) error {
	if len(v.keyring) == 0 {
		return fmt.Errorf("no keys imported, import keys before verifying")
	}
	if len(sigData) < 10 {
		return fmt.Errorf("signature too small to be a valid detached signature")
	}

	//nolint:gosec // G304: filePath is the downloaded artifact to verify
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	sig := bytes.NewReader(sigData)
	if strings.HasPrefix(string(sigData[:min(len(sigData), len(armoredSigPrefix))]), armoredSigPrefix) {
		_, err = openpgp.CheckArmoredDetachedSignature(v.keyring, f, sig, nil)
	} else {
		_, err = openpgp.CheckDetachedSignature(v.keyring, f, sig, nil)
	}
	if err != nil {
		return fmt.Errorf("signature verification failed: %w", err)
	}

	return nil
}

func (v *Verifier) fetchKey(ctx context.Context, url string) (openpgp.EntityList, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	//nolint:errcheck // Defer close
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("keyserver returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
	if err != nil {
		return nil, err
	}

	keys, err := readKeyring(data)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("no keys found in response")
	}

	return keys, nil
}

// readKeyring parses key material, trying armored first and binary second
func readKeyring(data []byte) (openpgp.EntityList, error) {
	keys, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	if err == nil && len(keys) > 0 {
		return keys, nil
	}

	keys, binErr := openpgp.ReadKeyRing(bytes.NewReader(data))
	if binErr != nil {
		if err != nil {
			return nil, err
		}
		return nil, binErr
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("no keys found")
	}

	return keys, nil
}

// keyringMatchesID reports whether any key's fingerprint matches the
// requested ID, accepting both full fingerprints and the short 16-hex form
func keyringMatchesID(keys openpgp.EntityList, keyID string) bool {
	want := strings.ToUpper(keyID)
	for _, entity := range keys {
		fingerprint := fmt.Sprintf("%X", entity.PrimaryKey.Fingerprint)
		if fingerprint == want {
			return true
		}
		if len(fingerprint) >= 16 && fingerprint[len(fingerprint)-16:] == want {
			return true
		}
	}
	return false
}
