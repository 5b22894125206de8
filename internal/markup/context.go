package markup

// TagContext is one open formatting construct on the scanner stack.
// The set of variants is closed; closing tags are matched by variant.
type TagContext interface {
	tagContext()
}

// EmphasisContext is an open <em> or <i>. Mark is the index of its opening
// marker in the current buffer.
type EmphasisContext struct {
	Quiet bool
	Mark  int
}

// StrongContext is an open <strong> or <b>.
type StrongContext struct {
	Quiet bool
	Mark  int
}

// InlineCodeContext is an open <code> outside preformatted text. Its content
// is captured and rendered as one span on close.
type InlineCodeContext struct{ Quiet bool }

// LinkContext is an open <a>. Its text is captured separately and handed
// to the dialect when the anchor closes.
type LinkContext struct{ Href string }

// HeaderContext is an open <h1>..<h6>.
type HeaderContext struct{ Level int }

// ListContext is an open <ul> or <ol>.
type ListContext struct {
	Ordered bool
	// Items counts <li> elements seen so far.
	Items int
	// ItemOpen is set while an item is open and not yet closed.
	ItemOpen bool
	// ItemMark is the buffer length right after the open item's marker.
	ItemMark int
}

// BlockquoteContext is an open <blockquote>; its content is captured like a link.
type BlockquoteContext struct{}

func (*EmphasisContext) tagContext()   {}
func (*StrongContext) tagContext()     {}
func (*InlineCodeContext) tagContext() {}
func (*LinkContext) tagContext()       {}
func (*HeaderContext) tagContext()     {}
func (*ListContext) tagContext()       {}
func (*BlockquoteContext) tagContext() {}
