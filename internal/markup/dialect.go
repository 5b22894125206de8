package markup

import "git.home.luguber.info/inful/forumarchive/internal/links"

// Dialect renders the constructs the scanner recognizes. Methods taking open
// are called once when a construct opens and once when it closes.
type Dialect interface {
	Name() string
	// Text renders character data. Verbatim text comes from <pre> or <code>
	// and must not be reflowed.
	Text(s string, verbatim bool) string
	Paragraph(open bool) string
	LineBreak() string
	Strong(open bool) string
	Emphasis(open bool) string
	// InlineCode renders a whole code span around rendered verbatim content.
	InlineCode(content string) string
	Preformatted(open bool) string
	Heading(level int, open bool) string
	// List wraps a whole list; depth counts enclosing lists including this one.
	List(ordered bool, depth int, open bool) string
	// ListItem renders item number index (1-based) of a list at depth.
	ListItem(ordered bool, depth, index int, open bool) string
	// ItemParagraph replaces Paragraph inside a list item; first is set when
	// the paragraph is the item's first content.
	ItemParagraph(ordered bool, depth, index int, first, open bool) string
	// Blockquote renders captured quote content.
	Blockquote(content string) string
	// Link renders a resolved anchor around its captured text.
	Link(res links.Resolution, text string) string
	Image(src, alt string) string
	Rule() string
}
