package findings

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"

	"filippo.io/age"

	"github.com/mrz1836/seedscan/internal/fileutil"
	scanerr "github.com/mrz1836/seedscan/pkg/errors"
)

// SealedExt is appended to the findings path for the encrypted copy.
const SealedExt = ".age"

// MinPassphraseLen is the shortest passphrase accepted by Seal.
const MinPassphraseLen = 8

// Seal encrypts plaintext with an age scrypt recipient.
func Seal(plaintext []byte, passphrase string) ([]byte, error) {
	if len(passphrase) < MinPassphraseLen {
		return nil, scanerr.WithSuggestion(scanerr.ErrInvalidInput, "passphrase must be at least 8 characters")
	}

	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, recipient)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(plaintext); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unseal decrypts data produced by Seal.
func Unseal(ciphertext []byte, passphrase string) ([]byte, error) {
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, scanerr.WithCause(scanerr.ErrDecryptionFailed, err)
	}

	r, err := age.Decrypt(bytes.NewReader(ciphertext), identity)
	if err != nil {
		return nil, scanerr.WithCause(scanerr.ErrDecryptionFailed, err)
	}

	plaintext, err := io.ReadAll(r)
	if err != nil {
		return nil, scanerr.WithCause(scanerr.ErrDecryptionFailed, err)
	}
	return plaintext, nil
}

// SealFile encrypts the findings file at src into dst. With remove set, src
// is truncated afterwards so the plaintext no longer sits on disk.
func SealFile(src, dst, passphrase string, remove bool) (int, error) {
	// #nosec G304 -- findings path is from validated config
	plaintext, err := os.ReadFile(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, scanerr.WithDetails(scanerr.ErrNotFound, map[string]string{"path": src})
		}
		return 0, scanerr.WithCause(scanerr.ErrFindingsRead, err)
	}

	found, _, err := Parse(bytes.NewReader(plaintext))
	if err != nil {
		return 0, err
	}

	sealed, err := Seal(plaintext, passphrase)
	if err != nil {
		return 0, err
	}

	if err := fileutil.WriteAtomic(dst, sealed, filePermissions); err != nil {
		return 0, scanerr.WithDetails(scanerr.WithCause(scanerr.ErrFindingsWrite, err), map[string]string{"path": dst})
	}

	if remove {
		if err := os.Truncate(src, 0); err != nil {
			return len(found), scanerr.WithCause(scanerr.ErrFindingsWrite, err)
		}
	}
	return len(found), nil
}

// ReadSealedFile decrypts and parses a sealed findings file.
func ReadSealedFile(path, passphrase string) ([]Finding, int, error) {
	// #nosec G304 -- sealed path is from user input
	ciphertext, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, scanerr.WithDetails(scanerr.WithCause(scanerr.ErrFindingsRead, err), map[string]string{"path": path})
	}

	plaintext, err := Unseal(ciphertext, passphrase)
	if err != nil {
		return nil, 0, err
	}
	return Parse(bytes.NewReader(plaintext))
}
