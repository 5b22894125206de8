package config

import (
	"sort"
	"strings"
)

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

// LinkText is the link text capture convention.
type LinkText string

const (
	LinkTextPlain     LinkText = "plain"
	LinkTextFormatted LinkText = "formatted"
)

// Output dialects.
const (
	DialectNotes = "notes"
	DialectHTML  = "html"
)

// enum maps case-insensitive spellings to canonical values.
type enum[T ~string] struct {
	values map[string]T
	def    T
}

func newEnum[T ~string](def T, values ...T) enum[T] {
	m := make(map[string]T, len(values))
	for _, v := range values {
		m[fold(string(v))] = v
	}
	return enum[T]{values: m, def: def}
}

// lookup returns the canonical value of raw, if any.
func (e enum[T]) lookup(raw string) (T, bool) {
	v, ok := e.values[fold(raw)]
	return v, ok
}

// keys lists the canonical values, sorted.
func (e enum[T]) keys() []string {
	out := make([]string, 0, len(e.values))
	for k := range e.values {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func fold(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

var (
	logLevels  = newEnum(LogLevelInfo, LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError)
	logFormats = newEnum(LogFormatText, LogFormatText, LogFormatJSON)
	linkTexts  = newEnum(LinkTextPlain, LinkTextPlain, LinkTextFormatted)
	dialects   = newEnum(DialectNotes, DialectNotes, DialectHTML)
)

// NormalizeDialect returns the canonical dialect name and whether raw named one.
func NormalizeDialect(raw string) (string, bool) {
	return dialects.lookup(raw)
}

// Dialects lists every supported dialect.
func Dialects() []string { return []string{DialectNotes, DialectHTML} }
