// Package gencheck reports whether a checked-in Crystal file still matches
// what the generator produces for its TypeScript source.
package gencheck

import (
	"bufio"
	"bytes"
	"os"
	"strings"

	"github.com/teranos/tscr/crystal"
	"github.com/teranos/tscr/errors"
)

// Result holds the outcome of one comparison.
type Result struct {
	Path     string `json:"path"`
	UpToDate bool   `json:"up_to_date"`
	// FirstDiff is the 1-based line of the first difference, 0 when equal.
	FirstDiff int    `json:"first_diff,omitempty"`
	Want      string `json:"want,omitempty"`
	Got       string `json:"got,omitempty"`
}

// CompareFile compares generated output against the file at path.
func CompareFile(generated, path string) (*Result, error) {
	existing, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	res, err := Compare([]byte(generated), existing)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to compare %s", path)
	}
	res.Path = path
	return res, nil
}

// Compare compares two renderings line by line, ignoring the generated-code
// header comment so files produced by older tscr builds still compare equal.
func Compare(generated, existing []byte) (*Result, error) {
	want, err := filterHeaderLines(generated)
	if err != nil {
		return nil, err
	}
	got, err := filterHeaderLines(existing)
	if err != nil {
		return nil, err
	}

	for i := 0; i < len(want) || i < len(got); i++ {
		var w, g string
		if i < len(want) {
			w = want[i]
		}
		if i < len(got) {
			g = got[i]
		}
		if i >= len(want) || i >= len(got) || w != g {
			return &Result{FirstDiff: i + 1, Want: w, Got: g}, nil
		}
	}
	return &Result{UpToDate: true}, nil
}

// filterHeaderLines splits content into lines, dropping the header comment
// and trailing blank lines.
func filterHeaderLines(content []byte) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "# Code generated by tscr") {
			continue
		}
		lines = append(lines, strings.TrimRight(line, "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to scan generated output")
	}

	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

// IsGenerated reports whether content starts with the tscr header comment.
func IsGenerated(content []byte) bool {
	return bytes.HasPrefix(content, []byte(crystal.HeaderComment))
}
