package gateways

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkrail/winmedia/internal/domain/entities"
	"github.com/mkrail/winmedia/internal/external-adapters/gpg"
)

// SignatureVerifier checks detached GPG signatures on downloaded media. It
// wraps the gpg adapter with recipe-level key sourcing: keys come either from
// a KEYS-style URL or from key IDs looked up on public keyservers.
type SignatureVerifier struct {
	verifier *gpg.Verifier
}

// NewSignatureVerifier creates a new signature verifier with an empty keyring
func NewSignatureVerifier() *SignatureVerifier {
	return &SignatureVerifier{verifier: gpg.NewVerifier()}
}

// VerifyArtifact imports the keys named by the security configuration and
// checks the artifact at path against its detached signature. The signature
// location may be an HTTP(S) URL or a local file path.
func (s *SignatureVerifier) VerifyArtifact(ctx context.Context, path string, sec entities.SecurityConfig) error {
	if sec.SignatureURL == "" {
		return fmt.Errorf("signature verification enabled but no signature location configured")
	}

	if err := s.importKeys(ctx, sec); err != nil {
		return err
	}

	if isHTTPURL(sec.SignatureURL) {
		return s.verifier.VerifyDetachedFromURL(ctx, path, sec.SignatureURL)
	}
	return s.verifier.VerifyDetachedFromFile(path, sec.SignatureURL)
}

func (s *SignatureVerifier) importKeys(ctx context.Context, sec entities.SecurityConfig) error {
	if sec.GPGKeysURL != "" {
		if err := s.verifier.ImportKeysFromURL(ctx, sec.GPGKeysURL); err != nil {
			return fmt.Errorf("failed to import keys from %s: %w", sec.GPGKeysURL, err)
		}
	}
	if len(sec.GPGKeyIDs) > 0 {
		if err := s.verifier.ImportKeys(ctx, sec.GPGKeyIDs); err != nil {
			return fmt.Errorf("failed to import keys from keyservers: %w", err)
		}
	}

	if s.verifier.KeyringSize() == 0 {
		return fmt.Errorf("signature verification enabled but no GPG keys configured")
	}
	return nil
}

// ImportKeyFile adds a local public key to the keyring, for operators who
// keep vendor keys on disk
func (s *SignatureVerifier) ImportKeyFile(path string) error {
	return s.verifier.ImportKeyFromFile(path)
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
