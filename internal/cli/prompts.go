package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/mrz1836/seedscan/internal/findings"
	"github.com/mrz1836/seedscan/internal/secure"
	scanerr "github.com/mrz1836/seedscan/pkg/errors"
)

// Prompt hooks, replaced in tests.
//
//nolint:gochecknoglobals // swapped by tests to avoid reading a terminal
var (
	promptPasswordFn    = promptPassword
	promptNewPasswordFn = promptNewPassword
	promptMnemonicFn    = promptMnemonic
)

// promptPassword prompts for a password with hidden input.
// The caller is responsible for zeroing the returned bytes after use.
func promptPassword(prompt string) ([]byte, error) {
	out(os.Stderr, "%s", prompt)

	password, err := term.ReadPassword(syscall.Stdin)
	outln(os.Stderr)

	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}

	return password, nil
}

// promptNewPassword prompts for a passphrase with confirmation.
func promptNewPassword() ([]byte, error) {
	password, err := promptPasswordFn("Enter findings passphrase: ")
	if err != nil {
		return nil, err
	}

	if len(password) < findings.MinPassphraseLen {
		secure.Zero(password)
		return nil, scanerr.WithSuggestion(
			scanerr.ErrInvalidInput,
			fmt.Sprintf("passphrase must be at least %d characters", findings.MinPassphraseLen),
		)
	}

	confirm, err := promptPasswordFn("Confirm passphrase: ")
	if err != nil {
		secure.Zero(password)
		return nil, err
	}
	defer secure.Zero(confirm)

	if string(password) != string(confirm) {
		secure.Zero(password)
		return nil, scanerr.WithSuggestion(scanerr.ErrInvalidInput, "passphrases do not match")
	}

	return password, nil
}

// promptMnemonic reads a seed phrase from one line of stdin.
func promptMnemonic() (string, error) {
	out(os.Stderr, "Enter mnemonic (all words on one line): ")

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", scanerr.WithSuggestion(scanerr.ErrInvalidInput, "no input provided")
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return "", scanerr.WithSuggestion(scanerr.ErrInvalidInput, "no input provided")
	}
	return line, nil
}
