package idmap

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxSlugLength bounds slugs in runes.
const MaxSlugLength = 200

// MaxSlugBytes bounds the encoded slug so the file name, with extension and
// a dedupe suffix, stays under the common 255 byte limit.
const MaxSlugBytes = 240

// forbiddenSlugRunes are stripped from titles; they are unsafe in file names
// or carry meaning inside note links.
const forbiddenSlugRunes = `<>:"/\|?*#^`

var whitespaceRun = regexp.MustCompile(`\s+`)

// NoteSlug derives the note-vault identifier for a title: non-breaking spaces
// become spaces, forbidden characters are removed, edges are trimmed and the
// result is cut to MaxSlugLength runes and MaxSlugBytes bytes.
func NoteSlug(title string) string {
	s := strings.Map(func(r rune) rune {
		switch {
		case r == '\u00a0':
			return ' '
		case strings.ContainsRune(forbiddenSlugRunes, r):
			return -1
		case r == '\t' || r == '\n' || r == '\r':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, title)
	return bound(strings.TrimSpace(s))
}

// HTMLSlug derives the static-site file name for a title. It starts from
// NoteSlug, lowercases and joins whitespace runs with underscores, so the two
// dialects produce different slugs from the same title.
func HTMLSlug(title string) string {
	s := NoteSlug(title)
	// Casers are stateful; build one per call.
	s = cases.Lower(language.Und).String(s)
	return bound(whitespaceRun.ReplaceAllString(s, "_"))
}

// bound applies both length limits and trims whatever edge the cut exposed.
func bound(s string) string {
	s = truncateRunes(s, MaxSlugLength)
	if len(s) > MaxSlugBytes {
		cut := MaxSlugBytes
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	return strings.TrimSpace(s)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
