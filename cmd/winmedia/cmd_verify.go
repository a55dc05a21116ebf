package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mkrail/winmedia/internal/domain-adapters/gateways"
	"github.com/mkrail/winmedia/internal/domain/entities"
)

func runVerify(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	var (
		checksum     = fs.String("checksum", "", "Expected SHA-1 or SHA-256 hex digest")
		checksumFile = fs.String("checksum-file", "", "File containing the expected digest (first field is used)")
		sigLocation  = fs.String("sig", "", "Detached GPG signature (URL or local path)")
		keyFile      = fs.String("key-file", "", "Local GPG public key file")
		keyIDs       = fs.String("key-ids", "", "Comma-separated GPG key IDs to fetch from keyservers")
		keysURL      = fs.String("keys-url", "", "URL of a KEYS file with the signing keys")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: winmedia verify <file> [options]

Verify a downloaded media file against a checksum and/or a detached GPG
signature.

Examples:
  winmedia verify win.esd --checksum 2f0e5c...
  winmedia verify win.esd --checksum-file win.esd.sha256
  winmedia verify win.iso --sig https://example.com/win.iso.asc --keys-url https://example.com/KEYS

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fs.Usage()
		os.Exit(1)
	}
	filePath := fs.Arg(0)

	expected := *checksum
	if expected == "" && *checksumFile != "" {
		digest, err := readChecksumFile(*checksumFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		expected = digest
	}

	if expected == "" && *sigLocation == "" {
		fmt.Fprintln(os.Stderr, "Error: nothing to verify, give --checksum, --checksum-file or --sig")
		os.Exit(1)
	}

	if expected != "" {
		if err := gateways.NewChecksumVerifier().Verify(filePath, expected); err != nil {
			fmt.Fprintf(os.Stderr, "Checksum FAILED: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Checksum OK: %s\n", filePath)
	}

	if *sigLocation != "" {
		verifier := gateways.NewSignatureVerifier()
		if *keyFile != "" {
			if err := verifier.ImportKeyFile(*keyFile); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}

		sec := entities.SecurityConfig{
			VerifySignature: true,
			SignatureURL:    *sigLocation,
			GPGKeysURL:      *keysURL,
		}
		if *keyIDs != "" {
			sec.GPGKeyIDs = strings.Split(*keyIDs, ",")
		}

		if err := verifier.VerifyArtifact(ctx, filePath, sec); err != nil {
			fmt.Fprintf(os.Stderr, "Signature FAILED: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Signature OK: %s\n", filePath)
	}
}

// readChecksumFile reads the expected digest from a checksum file, taking the
// first whitespace-separated field (sha1sum/sha256sum output format)
func readChecksumFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read checksum file: %w", err)
	}

	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return "", fmt.Errorf("checksum file %s contains no digest", path)
	}
	return fields[0], nil
}
