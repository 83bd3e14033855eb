// Package errors provides structured error handling for seedscan.
// It defines sentinel errors, exit codes, and helpers for adding
// context, details, and suggestions to errors.
//
//nolint:revive // Package name intentionally shadows stdlib for domain-specific error handling
package errors

import (
	"errors"
	"fmt"
	"sort"
)

// Exit codes returned by the seedscan binary.
const (
	ExitSuccess  = 0 // Successful execution
	ExitGeneral  = 1 // General/unknown error
	ExitInput    = 2 // Invalid input
	ExitConfig   = 3 // Missing or malformed configuration
	ExitNotFound = 4 // Resource not found
)

// SeedscanError is the structured error type for seedscan.
type SeedscanError struct {
	Code       string            // Machine-readable error code
	Message    string            // Human-readable message
	Details    map[string]string // Additional context
	Suggestion string            // Actionable suggestion for user
	Cause      error             // Underlying error
	ExitCode   int               // Exit code for CLI
}

func (e *SeedscanError) Error() string {
	msg := e.Message

	// Details are sorted for deterministic output
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *SeedscanError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for SeedscanError.
func (e *SeedscanError) Is(target error) bool {
	var t *SeedscanError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors.
var (
	ErrGeneral = &SeedscanError{
		Code:     "GENERAL_ERROR",
		Message:  "an error occurred",
		ExitCode: ExitGeneral,
	}

	ErrInvalidInput = &SeedscanError{
		Code:     "INVALID_INPUT",
		Message:  "invalid input",
		ExitCode: ExitInput,
	}

	ErrNotFound = &SeedscanError{
		Code:     "NOT_FOUND",
		Message:  "resource not found",
		ExitCode: ExitNotFound,
	}

	// Wallet-specific errors.
	ErrInvalidMnemonic = &SeedscanError{
		Code:     "INVALID_MNEMONIC",
		Message:  "invalid mnemonic phrase",
		ExitCode: ExitInput,
	}

	ErrEntropy = &SeedscanError{
		Code:     "ENTROPY_UNAVAILABLE",
		Message:  "system entropy source unavailable",
		ExitCode: ExitGeneral,
	}

	ErrUnsupportedCoin = &SeedscanError{
		Code:     "UNSUPPORTED_COIN",
		Message:  "unsupported coin",
		ExitCode: ExitInput,
	}

	// Provider errors.
	ErrInvalidAddress = &SeedscanError{
		Code:     "INVALID_ADDRESS",
		Message:  "invalid address format",
		ExitCode: ExitInput,
	}

	ErrNetworkError = &SeedscanError{
		Code:     "NETWORK_ERROR",
		Message:  "network communication failed",
		ExitCode: ExitGeneral,
	}

	ErrAPIError = &SeedscanError{
		Code:     "API_ERROR",
		Message:  "balance API returned an error",
		ExitCode: ExitGeneral,
	}

	ErrInvalidBalance = &SeedscanError{
		Code:     "INVALID_BALANCE",
		Message:  "invalid balance value in API response",
		ExitCode: ExitGeneral,
	}

	// Config-specific errors.
	ErrConfigNotFound = &SeedscanError{
		Code:     "CONFIG_NOT_FOUND",
		Message:  "configuration file not found",
		ExitCode: ExitConfig,
	}

	ErrConfigInvalid = &SeedscanError{
		Code:     "CONFIG_INVALID",
		Message:  "configuration file is invalid",
		ExitCode: ExitConfig,
	}

	ErrUnknownConfigKey = &SeedscanError{
		Code:     "UNKNOWN_CONFIG_KEY",
		Message:  "unknown configuration key",
		ExitCode: ExitInput,
	}

	// Findings-specific errors.
	ErrFindingsWrite = &SeedscanError{
		Code:     "FINDINGS_WRITE_FAILED",
		Message:  "failed to write findings file",
		ExitCode: ExitGeneral,
	}

	ErrInvalidAmount = &SeedscanError{
		Code:     "INVALID_AMOUNT",
		Message:  "invalid amount format",
		ExitCode: ExitInput,
	}

	ErrFindingsRead = &SeedscanError{
		Code:     "FINDINGS_READ_FAILED",
		Message:  "failed to read findings file",
		ExitCode: ExitGeneral,
	}

	ErrDecryptionFailed = &SeedscanError{
		Code:     "DECRYPTION_FAILED",
		Message:  "decryption failed",
		ExitCode: ExitInput,
	}
)

// New creates a new SeedscanError with the given code and message.
func New(code, message string) *SeedscanError {
	return &SeedscanError{
		Code:     code,
		Message:  message,
		ExitCode: ExitGeneral,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)

	var se *SeedscanError
	if errors.As(err, &se) {
		return &SeedscanError{
			Code:       se.Code,
			Message:    fmt.Sprintf("%s: %s", msg, se.Message),
			Details:    se.Details,
			Suggestion: se.Suggestion,
			Cause:      err,
			ExitCode:   se.ExitCode,
		}
	}

	return &SeedscanError{
		Code:     "GENERAL_ERROR",
		Message:  msg,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithCause attaches an underlying cause to a sentinel error while keeping its code.
func WithCause(sentinel *SeedscanError, cause error) error {
	return &SeedscanError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		Details:    sentinel.Details,
		Suggestion: sentinel.Suggestion,
		Cause:      cause,
		ExitCode:   sentinel.ExitCode,
	}
}

// WithDetails adds details to an error.
func WithDetails(err error, details map[string]string) error {
	if err == nil {
		return nil
	}

	var se *SeedscanError
	if errors.As(err, &se) {
		return &SeedscanError{
			Code:       se.Code,
			Message:    se.Message,
			Details:    details,
			Suggestion: se.Suggestion,
			Cause:      se.Cause,
			ExitCode:   se.ExitCode,
		}
	}

	return &SeedscanError{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		Details:  details,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithSuggestion adds a suggestion to an error.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}

	var se *SeedscanError
	if errors.As(err, &se) {
		return &SeedscanError{
			Code:       se.Code,
			Message:    se.Message,
			Details:    se.Details,
			Suggestion: suggestion,
			Cause:      se.Cause,
			ExitCode:   se.ExitCode,
		}
	}

	return &SeedscanError{
		Code:       "GENERAL_ERROR",
		Message:    err.Error(),
		Suggestion: suggestion,
		Cause:      err,
		ExitCode:   ExitGeneral,
	}
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var se *SeedscanError
	if errors.As(err, &se) {
		return se.ExitCode
	}

	return ExitGeneral
}

// Code returns the error code for an error.
func Code(err error) string {
	var se *SeedscanError
	if errors.As(err, &se) {
		return se.Code
	}
	return "GENERAL_ERROR"
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}
