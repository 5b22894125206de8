package markup

import (
	"regexp"
	"strings"
)

var (
	blankLineRun    = regexp.MustCompile(`\n(?:[ \t]*\n){2,}`)
	whitespaceChars = regexp.MustCompile(`[ \t\r\n\f\v]+`)
)

// Normalize collapses runs of blank lines to a single blank line and trims
// the result. It is applied to every converted body.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = blankLineRun.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

func collapseSpace(s string) string {
	return whitespaceChars.ReplaceAllString(s, " ")
}
