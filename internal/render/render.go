// Package render turns one archived document into a finished output file in
// either the note dialect or the static HTML dialect.
package render

import (
	"embed"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/forumarchive/internal/archive"
	"git.home.luguber.info/inful/forumarchive/internal/foundation/errors"
	"git.home.luguber.info/inful/forumarchive/internal/idmap"
	"git.home.luguber.info/inful/forumarchive/internal/links"
	"git.home.luguber.info/inful/forumarchive/internal/markup"
)

//go:embed templates/*
var templateFS embed.FS

// Dialect names.
const (
	DialectNotes = "notes"
	DialectHTML  = "html"
)

// Dialects lists the supported output dialects.
var Dialects = []string{DialectNotes, DialectHTML}

// Renderer renders documents of one dialect.
type Renderer interface {
	Dialect() string
	// Render produces the file content for doc, addressed by target.
	Render(doc *archive.Document, target idmap.Target) ([]byte, error)
	// Fallback produces degraded output that cannot fail, used when Render does.
	Fallback(doc *archive.Document, target idmap.Target) []byte
}

// Options configures a renderer.
type Options struct {
	// Origin is the live site URL internal links are classified against.
	Origin string
	// IDs resolves canonical URLs; it must be built with the dialect's scheme.
	IDs     *idmap.Map
	Capture markup.LinkTextCapture
	// Observer sees every link resolution.
	Observer func(links.Resolution)

	SiteTitle string
	// Sanitize runs HTML bodies through the sanitizer policy.
	Sanitize bool
}

// New returns the renderer for dialect.
func New(dialect string, opts Options) (Renderer, error) {
	switch dialect {
	case DialectNotes:
		return NewNoteRenderer(opts), nil
	case DialectHTML:
		return NewHTMLRenderer(opts)
	}
	return nil, errors.ValidationError("unknown output dialect").
		WithContext("dialect", dialect).
		Build()
}

// section is one authored entry below the document body.
type section struct {
	Heading string
	Byline  string
	Body    string
}

// converter converts bodies with a shared resolver.
type converter struct {
	opts     markup.Options
	resolver *links.Resolver
}

func newConverter(dialect markup.Dialect, opts Options) converter {
	resolver := links.NewResolver(opts.Origin, opts.IDs)
	if opts.Observer != nil {
		resolver.WithObserver(opts.Observer)
	}
	return converter{
		resolver: resolver,
		opts:     markup.Options{Dialect: dialect, Resolver: resolver, Capture: opts.Capture},
	}
}

func (c converter) convert(body string) string {
	return markup.Convert(body, c.opts)
}

// sections builds the reply or comment sections of a document.
func (c converter) sections(doc *archive.Document) (replies, comments []section) {
	if doc.IsTopic() {
		for i, rep := range doc.Replies {
			s := section{Body: c.convert(rep.Body)}
			if i == 0 {
				s.Heading = "Original Post"
				s.Byline = "Posted by " + authorOr(rep.Author) + " on " + dateOr(rep.Date)
			} else {
				s.Heading = "Reply by " + authorOr(rep.Author)
				s.Byline = dateOr(rep.Date)
			}
			replies = append(replies, s)
		}
		return replies, nil
	}
	for _, cm := range doc.Comments {
		comments = append(comments, section{
			Heading: "Comment by " + authorOr(cm.Author),
			Byline:  dateOr(cm.Date),
			Body:    c.convert(cm.Body),
		})
	}
	return nil, comments
}

func authorOr(author string) string {
	if a := strings.TrimSpace(author); a != "" {
		return a
	}
	return "Anonymous"
}

func dateOr(d archive.DateStamp) string {
	if d.IsZero() {
		return "unknown date"
	}
	return d.String()
}

func displayTitle(doc *archive.Document, target idmap.Target) string {
	if doc.Title != "" {
		return doc.Title
	}
	return target.Slug
}

// byline is the summary line under a document title.
func byline(doc *archive.Document) string {
	var b strings.Builder
	if doc.IsTopic() {
		b.WriteString("Started by " + authorOr(doc.Author))
	} else {
		b.WriteString("Posted")
		if doc.Author != "" {
			b.WriteString(" by " + doc.Author)
		}
	}
	b.WriteString(" on " + dateOr(doc.Date))
	if doc.IsTopic() {
		n := doc.ReplyCount()
		fmt.Fprintf(&b, " · %d %s", n, plural(n, "reply", "replies"))
		if n > 0 {
			b.WriteString(" · last activity " + dateOr(doc.LastActivity()))
		}
	}
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// renderFailure wraps a render problem for one document. Render failures are
// warnings: the run continues with fallback output.
func renderFailure(cause error, doc *archive.Document, target idmap.Target, dialect, msg string) error {
	b := errors.RenderError(msg).
		WithContext("document", doc.ID.String()).
		WithContext("collection", target.Collection.Key()).
		WithContext("dialect", dialect)
	if cause != nil {
		b = b.WithCause(cause)
	}
	return b.Build()
}

// guard converts a panic during rendering into a render error.
func guard(err *error, doc *archive.Document, target idmap.Target, dialect string) {
	if p := recover(); p != nil {
		*err = renderFailure(fmt.Errorf("panic: %v", p), doc, target, dialect, "document rendering failed")
	}
}
