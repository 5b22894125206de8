package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyCollection = "collection"
	KeyDocument   = "document"
	KeyDialect    = "dialect"
	KeyPath       = "path"
	KeyURL        = "url"
	KeyCount      = "count"
	KeyLinkKind   = "link_kind"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr         { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr       { return slog.String(KeyStage, name) }
func Collection(c string) slog.Attr     { return slog.String(KeyCollection, c) }
func Document(id string) slog.Attr      { return slog.String(KeyDocument, id) }
func Dialect(d string) slog.Attr        { return slog.String(KeyDialect, d) }
func Path(p string) slog.Attr           { return slog.String(KeyPath, p) }
func URL(u string) slog.Attr            { return slog.String(KeyURL, u) }
func Count(n int) slog.Attr             { return slog.Int(KeyCount, n) }
func LinkKind(k string) slog.Attr       { return slog.String(KeyLinkKind, k) }
func DurationMS(ms float64) slog.Attr   { return slog.Float64(KeyDurationMS, ms) }
func Elapsed(d time.Duration) slog.Attr { return DurationMS(float64(d.Microseconds()) / 1000) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
