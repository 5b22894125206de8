// Package markdown analyzes rendered notes with goldmark.
package markdown

// Options controls how Markdown is parsed for analysis.
type Options struct{}

type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindAuto                LinkKind = "auto"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
	LinkKindWiki                LinkKind = "wiki"
)

// Link is one link-like construct found in a note.
type Link struct {
	Kind        LinkKind
	Destination string
	// Text is the display text of wiki links, if any.
	Text string
}
