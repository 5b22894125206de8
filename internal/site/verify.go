package site

import (
	"git.home.luguber.info/inful/forumarchive/internal/foundation/errors"
	"git.home.luguber.info/inful/forumarchive/internal/linkverify"
	"git.home.luguber.info/inful/forumarchive/internal/render"
	"git.home.luguber.info/inful/forumarchive/internal/sink"
)

// Verify checks the links of an existing dialect output.
func Verify(out *sink.FS, dialect, origin string) (*linkverify.Result, error) {
	switch dialect {
	case render.DialectNotes:
		return linkverify.VerifyNotes(out.Fs(), out.Root(), origin)
	case render.DialectHTML:
		return linkverify.VerifyHTML(out.Fs(), out.Root(), origin)
	}
	return nil, errors.ValidationError("unknown output dialect").
		WithContext("dialect", dialect).
		Build()
}
