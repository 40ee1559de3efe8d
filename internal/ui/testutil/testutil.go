// Package testutil helps testing bubbletea models.
package testutil

import (
	"regexp"
	"strings"
)

var ansiSeq = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)

// StripANSI removes terminal escape sequences so rendered views can be
// compared as plain text.
func StripANSI(s string) string {
	return ansiSeq.ReplaceAllString(s, "")
}

// FindLine returns the first line of output containing substr, or "".
func FindLine(output, substr string) string {
	for line := range strings.SplitSeq(output, "\n") {
		if strings.Contains(line, substr) {
			return line
		}
	}
	return ""
}
