package findings

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"regexp"
	"strconv"

	"github.com/mrz1836/seedscan/internal/coin"
	"github.com/mrz1836/seedscan/internal/provider"
	scanerr "github.com/mrz1836/seedscan/pkg/errors"
)

// ErrMalformedLine indicates a findings line does not match FormatLine.
var ErrMalformedLine = &scanerr.SeedscanError{
	Code:     "MALFORMED_FINDING",
	Message:  "malformed findings line",
	ExitCode: scanerr.ExitInput,
}

var linePattern = regexp.MustCompile(
	`^Seed: (.+) \| ([A-Z]+) Address \(index (\d+)\): (\S+) \| Balance: (\S+) ([A-Z]+)$`)

// ParseLine is the inverse of FormatLine.
func ParseLine(line string) (Finding, error) {
	m := linePattern.FindStringSubmatch(line)
	if m == nil || m[2] != m[6] {
		return Finding{}, ErrMalformedLine
	}

	kind, ok := coin.Parse(m[2])
	if !ok {
		return Finding{}, scanerr.WithDetails(ErrMalformedLine, map[string]string{"coin": m[2]})
	}

	index, err := strconv.ParseUint(m[3], 10, 32)
	if err != nil {
		return Finding{}, scanerr.WithCause(ErrMalformedLine, err)
	}

	amount, err := coin.ParseDecimalAmount(m[5], kind.Decimals(), ErrMalformedLine)
	if err != nil {
		return Finding{}, err
	}

	return Finding{
		Mnemonic: m[1],
		Coin:     kind,
		Index:    uint32(index),
		Address:  m[4],
		Balance:  provider.NewBalance(kind, m[4], amount),
	}, nil
}

// Parse reads every finding from r. Blank lines are skipped; the count of
// lines that failed to parse is returned alongside the findings.
func Parse(r io.Reader) ([]Finding, int, error) {
	var (
		out       []Finding
		malformed int
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		f, err := ParseLine(string(line))
		if err != nil {
			malformed++
			continue
		}
		out = append(out, f)
	}
	if err := sc.Err(); err != nil {
		return out, malformed, scanerr.WithCause(scanerr.ErrFindingsRead, err)
	}
	return out, malformed, nil
}

// ReadFile parses the findings file at path. A missing file has no findings.
func ReadFile(path string) ([]Finding, int, error) {
	// #nosec G304 -- findings path is from validated config
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, scanerr.WithDetails(scanerr.WithCause(scanerr.ErrFindingsRead, err), map[string]string{
			"path": path,
		})
	}
	return Parse(bytes.NewReader(data))
}
