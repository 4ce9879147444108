// Package input reads URL lists from delimited files.
package input

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxLineBytes bounds a single input line; URL lists never come close.
const maxLineBytes = 1 << 20

// ReadFile opens path and reads its URL column. A missing or unreadable
// file is a run-level fatal error.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from the CLI flag
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	rows, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read input %s: %w", path, err)
	}
	return rows, nil
}

// Read parses a delimited URL list. The first line is a header and is
// skipped. Every subsequent line yields exactly one entry: the first field.
// Blank lines and empty first fields are preserved as empty strings so the
// caller can report them instead of silently dropping rows.
func Read(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var rows []string
	header := false
	for scanner.Scan() {
		if !header {
			header = true
			continue
		}
		rows = append(rows, firstField(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan input: %w", err)
	}
	if !header {
		return nil, errors.New("input is missing a header row")
	}
	return rows, nil
}

// firstField extracts the URL column from one raw line, honoring CSV
// quoting when present.
func firstField(line string) string {
	if strings.TrimSpace(line) == "" {
		return ""
	}
	record, err := csv.NewReader(strings.NewReader(line)).Read()
	if err != nil || len(record) == 0 {
		// Unbalanced quotes or similar; fall back to a plain split so the
		// row still surfaces as an invalid outcome downstream.
		return strings.TrimSpace(strings.SplitN(line, ",", 2)[0])
	}
	return record[0]
}
