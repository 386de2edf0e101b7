package gen

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Status is the outcome of comparing a rendering with the file on disk.
type Status int

const (
	StatusUpToDate Status = iota
	StatusStale
	StatusMissing
	// StatusOrphaned marks a generated file on disk for a package that no
	// longer produces one.
	StatusOrphaned
)

// String returns a human-readable status.
func (s Status) String() string {
	switch s {
	case StatusUpToDate:
		return "up to date"
	case StatusStale:
		return "stale"
	case StatusMissing:
		return "missing"
	case StatusOrphaned:
		return "orphaned"
	default:
		return "unknown"
	}
}

// CheckResult describes one checked file.
type CheckResult struct {
	Path   string
	Status Status
	// Diff is a line diff from the file on disk to the expected content.
	Diff string
}

// OK reports whether the file needs no regeneration.
func (r CheckResult) OK() bool {
	return r.Status == StatusUpToDate
}

// IsGenerated reports whether content starts with the generated-code header.
func IsGenerated(content []byte) bool {
	return bytes.HasPrefix(content, []byte(Header))
}

// Check compares file with what is on disk.
func Check(file *GeneratedFile) (CheckResult, error) {
	res := CheckResult{Path: file.Path()}

	current, err := os.ReadFile(res.Path)
	if errors.Is(err, os.ErrNotExist) {
		res.Status = StatusMissing
		res.Diff = Diff("", string(file.Content))

		return res, nil
	}

	if err != nil {
		return res, fmt.Errorf("reading %s: %w", res.Path, err)
	}

	if bytes.Equal(current, file.Content) {
		return res, nil
	}

	res.Status = StatusStale
	res.Diff = Diff(string(current), string(file.Content))

	return res, nil
}

// CheckOrphan reports a generated file left in dir although nothing is
// generated there anymore. It returns ok=false when there is no such file.
func CheckOrphan(dir, filename string) (CheckResult, bool, error) {
	f := &GeneratedFile{Dir: dir, Filename: filename}
	res := CheckResult{Path: f.Path()}

	current, err := os.ReadFile(res.Path)
	if errors.Is(err, os.ErrNotExist) {
		return res, false, nil
	}

	if err != nil {
		return res, false, fmt.Errorf("reading %s: %w", res.Path, err)
	}

	if !IsGenerated(current) {
		return res, false, nil
	}

	res.Status = StatusOrphaned
	res.Diff = Diff(string(current), "")

	return res, true, nil
}

// contextLines is the number of unchanged lines shown around a change.
const contextLines = 2

// Diff renders a line diff from old to updated. Removed lines start with
// "-", added lines with "+" and context lines with a space. Runs of
// unchanged lines longer than the context are elided as "...".
func Diff(old, updated string) string {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(old, updated)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	if !slices.ContainsFunc(diffs, func(d diffpatch.Diff) bool { return d.Type != diffpatch.DiffEqual }) {
		return ""
	}

	var sb strings.Builder

	for i, d := range diffs {
		text := splitLines(d.Text)

		switch d.Type {
		case diffpatch.DiffDelete:
			writeLines(&sb, "-", text)
		case diffpatch.DiffInsert:
			writeLines(&sb, "+", text)
		case diffpatch.DiffEqual:
			head, tail := contextLines, contextLines
			if i == 0 {
				head = 0
			}

			if i == len(diffs)-1 {
				tail = 0
			}

			if len(text) <= head+tail {
				writeLines(&sb, " ", text)

				continue
			}

			writeLines(&sb, " ", text[:head])
			sb.WriteString("...\n")
			writeLines(&sb, " ", text[len(text)-tail:])
		}
	}

	return sb.String()
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}

	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func writeLines(sb *strings.Builder, prefix string, lines []string) {
	for _, l := range lines {
		sb.WriteString(prefix)
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
}
