package render

import (
	"bytes"
	"strings"
	"text/template"

	"git.home.luguber.info/inful/forumarchive/internal/archive"
	"git.home.luguber.info/inful/forumarchive/internal/frontmatter"
	"git.home.luguber.info/inful/forumarchive/internal/frontmatterops"
	"git.home.luguber.info/inful/forumarchive/internal/idmap"
	"git.home.luguber.info/inful/forumarchive/internal/markup"
)

var noteTemplate = template.Must(template.New("note.md.tmpl").ParseFS(templateFS, "templates/note.md.tmpl"))

// NoteRenderer renders Markdown notes with front matter and [[target|text]] links.
type NoteRenderer struct {
	conv converter
}

// NewNoteRenderer creates a note renderer.
func NewNoteRenderer(opts Options) *NoteRenderer {
	return &NoteRenderer{conv: newConverter(markup.NoteDialect{}, opts)}
}

func (r *NoteRenderer) Dialect() string { return DialectNotes }

type noteData struct {
	Title    string
	Body     string
	Sections []section
	Comments []section
}

// Render produces the note for doc.
func (r *NoteRenderer) Render(doc *archive.Document, target idmap.Target) (out []byte, err error) {
	defer guard(&err, doc, target, DialectNotes)

	data := noteData{Title: displayTitle(doc, target)}
	if !doc.IsTopic() {
		data.Body = r.conv.convert(doc.Body)
	}
	data.Sections, data.Comments = r.conv.sections(doc)

	var buf bytes.Buffer
	if err := noteTemplate.Execute(&buf, data); err != nil {
		return nil, renderFailure(err, doc, target, DialectNotes, "note template failed")
	}
	body := markup.Normalize(buf.String()) + "\n"

	out, err = frontmatterops.Write(NoteFields(doc, target), body)
	if err != nil {
		return nil, renderFailure(err, doc, target, DialectNotes, "note front matter failed")
	}
	return out, nil
}

// Fallback keeps the raw body in a fenced block under minimal front matter.
func (r *NoteRenderer) Fallback(doc *archive.Document, target idmap.Target) []byte {
	var b strings.Builder
	b.WriteString("---\nid: \"" + strings.ReplaceAll(doc.ID.String(), `"`, "") + "\"\nrender_fallback: true\n---\n")
	b.WriteString("# " + displayTitle(doc, target) + "\n\n```html\n")
	if doc.IsTopic() {
		for _, rep := range doc.Replies {
			b.WriteString(rep.Body + "\n")
		}
	} else {
		b.WriteString(doc.Body + "\n")
	}
	b.WriteString("```\n")
	return []byte(b.String())
}

// NoteFields is the ordered front matter of a note. The fingerprint is
// appended when the note is written.
func NoteFields(doc *archive.Document, target idmap.Target) frontmatter.Fields {
	f := frontmatter.Fields{
		{Key: "id", Value: doc.ID.String()},
		{Key: "title", Value: doc.Title},
	}
	if !doc.Date.IsZero() {
		f.Set("date", doc.Date.String())
	}
	if doc.Author != "" {
		f.Set("author", doc.Author)
	}
	if doc.HasTags() {
		f.Set("tags", doc.CleanTags())
	}
	f.Set("collection", target.Collection.Title())
	url := doc.CanonicalURL()
	if url != "" {
		f.Set("source", url)
	}
	f.Set(frontmatterops.UIDField, frontmatterops.DocumentUID(url, target.Collection.Key(), doc.ID.String()))
	if doc.IsTopic() {
		f.Set("replies", doc.ReplyCount())
		if last := doc.LastActivity(); !last.IsZero() {
			f.Set("last_activity", last.String())
		}
	}
	return f
}
