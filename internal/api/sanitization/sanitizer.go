package sanitization

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// SingleLine collapses every whitespace run, including CR and LF, into one
// space and trims the result. Values that end up in mail headers go through
// here so a submitter cannot start a new header line.
func SingleLine(input string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(input, " "))
}
