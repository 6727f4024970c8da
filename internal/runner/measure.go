package runner

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// The measurement utility (/usr/bin/time -v compatible) appends a trailer to
// the combined output. Its report starts with "Command being timed:" on
// success or "Command exited with non-zero status" on a nonzero exit;
// everything before the first marker is the wrapped tool's own output.

var maxResidentRe = regexp.MustCompile(`Maximum resident set size \(kbytes\): (\d+)`)

// memoryFromMeasuredOutput extracts the peak resident set size from the
// measurement trailer and converts it to whole MiB, rounding down with a
// floor of 1 when the tool reported any nonzero memory. Returns 0 when no
// report is present.
func memoryFromMeasuredOutput(out string) int {
	m := maxResidentRe.FindStringSubmatch(out)
	if m == nil {
		return 0
	}
	kb, err := strconv.Atoi(m[1])
	if err != nil || kb == 0 {
		return 0
	}
	mb := kb / 1024
	if mb == 0 {
		mb = 1
	}
	return mb
}

// stripMeasuredOutput cuts the measurement trailer so only the wrapped
// tool's own output remains.
func stripMeasuredOutput(out string) string {
	out, _, _ = strings.Cut(out, "Command being timed:")
	out, _, _ = strings.Cut(out, "Command exited with non-zero status")
	return strings.TrimRightFunc(out, unicode.IsSpace)
}
