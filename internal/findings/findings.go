// Package findings appends positive-balance discoveries to a plain-text file,
// one line per (seed, coin, index) hit.
package findings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mrz1836/seedscan/internal/coin"
	"github.com/mrz1836/seedscan/internal/provider"
	scanerr "github.com/mrz1836/seedscan/pkg/errors"
)

// DefaultFile is the findings file used when none is configured.
const DefaultFile = "valid_wallets.txt"

const (
	filePermissions = 0o600
	dirPermissions  = 0o750
)

// Finding is an address with a positive balance and the seed that derives it.
type Finding struct {
	Mnemonic string
	Coin     coin.Kind
	Index    uint32
	Address  string
	Balance  *provider.Balance
}

// FormatLine renders f as a single findings line without the trailing newline.
func FormatLine(f Finding) string {
	return fmt.Sprintf("Seed: %s | %s Address (index %d): %s | Balance: %s %s",
		f.Mnemonic, f.Coin.Symbol(), f.Index, f.Address, f.Balance.String(), f.Coin.Symbol())
}

// File is an append-only findings file. Safe for concurrent use.
type File struct {
	mu    sync.Mutex
	file  *os.File
	path  string
	count int
}

// Open opens path for appending, creating it and its parent directories.
func Open(path string) (*File, error) {
	if path == "" {
		path = DefaultFile
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return nil, scanerr.WithDetails(scanerr.WithCause(scanerr.ErrFindingsWrite, err), map[string]string{
				"path": path,
			})
		}
	}

	// #nosec G304 -- findings path is from validated config
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePermissions)
	if err != nil {
		return nil, scanerr.WithDetails(scanerr.WithCause(scanerr.ErrFindingsWrite, err), map[string]string{
			"path": path,
		})
	}

	return &File{file: f, path: path}, nil
}

// Path returns the file path.
func (f *File) Path() string {
	return f.path
}

// Count returns the number of lines appended through this handle.
func (f *File) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count
}

// Append writes one finding line and syncs it to disk before returning.
func (f *File) Append(finding Finding) error {
	line := FormatLine(finding)
	if strings.ContainsAny(line, "\r\n") {
		return scanerr.WithDetails(scanerr.ErrFindingsWrite, map[string]string{
			"reason": "line contains a newline",
		})
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file == nil {
		return scanerr.WithDetails(scanerr.ErrFindingsWrite, map[string]string{
			"reason": "file closed",
		})
	}

	if _, err := f.file.WriteString(line + "\n"); err != nil {
		return scanerr.WithCause(scanerr.ErrFindingsWrite, err)
	}
	if err := f.file.Sync(); err != nil {
		return scanerr.WithCause(scanerr.ErrFindingsWrite, err)
	}

	f.count++
	return nil
}

// Close closes the file. Further appends fail.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	return err
}
