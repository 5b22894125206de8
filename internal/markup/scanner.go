// Package markup converts the HTML subset found in archived bodies into an
// output dialect, resolving links on the way.
package markup

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/forumarchive/internal/links"
)

// LinkTextCapture selects how formatting inside anchor text is handled.
type LinkTextCapture int

const (
	// CapturePlain drops emphasis markers inside link text.
	CapturePlain LinkTextCapture = iota
	// CaptureFormatted keeps them.
	CaptureFormatted
)

// ParseLinkTextCapture maps a configuration value to a capture mode.
func ParseLinkTextCapture(s string) (LinkTextCapture, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "plain":
		return CapturePlain, true
	case "formatted":
		return CaptureFormatted, true
	}
	return CapturePlain, false
}

func (c LinkTextCapture) String() string {
	if c == CaptureFormatted {
		return "formatted"
	}
	return "plain"
}

// LinkResolver resolves an href found in a body.
type LinkResolver interface {
	Resolve(href string) links.Resolution
}

// FragmentKind distinguishes flowed output from verbatim output.
type FragmentKind int

const (
	FragmentText FragmentKind = iota
	FragmentCode
)

// Fragment is one piece of converted output.
type Fragment struct {
	Kind    FragmentKind
	Payload string
}

// Options configures a conversion.
type Options struct {
	Dialect  Dialect
	Resolver LinkResolver
	Capture  LinkTextCapture
}

// Convert renders body in the configured dialect. It never fails: markup it
// does not understand is dropped and its text kept, and anything still open
// at the end is closed.
func Convert(body string, opts Options) string {
	return Join(Scan(body, opts))
}

// Join concatenates fragments and normalizes the result.
func Join(frags []Fragment) string {
	var b strings.Builder
	for _, f := range frags {
		b.WriteString(f.Payload)
	}
	return Normalize(b.String())
}

// Scan converts body into raw fragments without final normalization.
func Scan(body string, opts Options) (out []Fragment) {
	s := newScanner(opts)
	defer func() {
		if r := recover(); r != nil {
			out = s.salvage()
		}
	}()
	s.run(body)
	return s.buffers[0]
}

// closesImmediately lists container tags whose self-closing form opens and
// closes at once.
var closesImmediately = map[string]bool{
	"b": true, "strong": true, "i": true, "em": true, "code": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "li": true, "blockquote": true,
}

type noResolver struct{}

func (noResolver) Resolve(href string) links.Resolution {
	href = strings.TrimSpace(href)
	if href == "" {
		return links.Resolution{Kind: links.KindEmpty}
	}
	return links.Resolution{Kind: links.KindExternal, Href: href}
}

type scanner struct {
	opts  Options
	stack []TagContext
	// buffers[0] is the document; links and blockquotes push capture buffers.
	buffers [][]Fragment
	pre     int
	skip    string
	// paraLevel is the buffer depth of the open paragraph, 0 if none.
	paraLevel int
	// paraItem is the list whose item holds the open paragraph, if any.
	paraItem  *ListContext
	paraDepth int
}

func newScanner(opts Options) *scanner {
	if opts.Dialect == nil {
		opts.Dialect = NoteDialect{}
	}
	if opts.Resolver == nil {
		opts.Resolver = noResolver{}
	}
	return &scanner{opts: opts, buffers: [][]Fragment{nil}}
}

func (s *scanner) run(body string) {
	z := html.NewTokenizer(strings.NewReader(body))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// io.EOF or a tokenizer failure; either way keep what we have.
			break
		}
		tok := z.Token()
		switch tt {
		case html.TextToken:
			s.text(tok.Data)
		case html.StartTagToken:
			s.start(tok, false)
		case html.SelfClosingTagToken:
			s.start(tok, true)
			if closesImmediately[tok.Data] {
				s.end(tok.Data)
			}
		case html.EndTagToken:
			s.end(tok.Data)
		}
	}
	s.unwind()
}

func (s *scanner) d() Dialect { return s.opts.Dialect }

func (s *scanner) verbatim() bool {
	return s.pre > 0 || s.inInlineCode()
}

func (s *scanner) inInlineCode() bool {
	for _, c := range s.stack {
		if _, ok := c.(*InlineCodeContext); ok {
			return true
		}
	}
	return false
}

// quiet reports whether formatting markers are currently suppressed.
func (s *scanner) quiet() bool {
	if s.opts.Capture != CapturePlain {
		return false
	}
	for _, c := range s.stack {
		if _, ok := c.(*LinkContext); ok {
			return true
		}
	}
	return false
}

func (s *scanner) top() TagContext {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

func (s *scanner) push(c TagContext) { s.stack = append(s.stack, c) }

func (s *scanner) pop() TagContext {
	c := s.top()
	if c != nil {
		s.stack = s.stack[:len(s.stack)-1]
	}
	return c
}

func (s *scanner) emit(payload string) {
	if payload == "" {
		return
	}
	i := len(s.buffers) - 1
	s.buffers[i] = append(s.buffers[i], Fragment{Kind: FragmentText, Payload: payload})
}

func (s *scanner) emitCode(payload string) {
	if payload == "" {
		return
	}
	i := len(s.buffers) - 1
	s.buffers[i] = append(s.buffers[i], Fragment{Kind: FragmentCode, Payload: payload})
}

// afterSpace reports whether the current buffer is empty or ends in whitespace.
func (s *scanner) afterSpace() bool {
	buf := s.buffers[len(s.buffers)-1]
	if len(buf) == 0 {
		return true
	}
	last := buf[len(buf)-1].Payload
	return strings.HasSuffix(last, "\n") || strings.HasSuffix(last, " ")
}

func (s *scanner) beginCapture() { s.buffers = append(s.buffers, nil) }

func (s *scanner) endCapture() string {
	s.closeParagraph()
	n := len(s.buffers) - 1
	buf := s.buffers[n]
	s.buffers = s.buffers[:n]
	if s.paraLevel > n {
		s.paraLevel = 0
		s.paraItem = nil
	}
	var b strings.Builder
	for _, f := range buf {
		b.WriteString(f.Payload)
	}
	return b.String()
}

func (s *scanner) text(data string) {
	if s.skip != "" {
		return
	}
	if s.verbatim() {
		s.emitCode(s.d().Text(data, true))
		return
	}
	t := collapseSpace(data)
	if s.afterSpace() {
		t = strings.TrimLeft(t, " ")
	}
	if t == "" {
		return
	}
	s.emit(s.d().Text(t, false))
}

func (s *scanner) openParagraph() {
	s.closeParagraph()
	if l, ok := s.top().(*ListContext); ok && l.ItemOpen {
		depth := s.listDepth()
		first := s.mark() == l.ItemMark
		s.emit(s.d().ItemParagraph(l.Ordered, depth, l.Items, first, true))
		s.paraItem, s.paraDepth = l, depth
	} else {
		s.emit(s.d().Paragraph(true))
	}
	s.paraLevel = len(s.buffers)
}

// closeParagraph closes a paragraph opened at the current capture depth.
func (s *scanner) closeParagraph() {
	if s.paraLevel == 0 || s.paraLevel != len(s.buffers) {
		return
	}
	if l := s.paraItem; l != nil {
		s.emit(s.d().ItemParagraph(l.Ordered, s.paraDepth, l.Items, false, false))
	} else {
		s.emit(s.d().Paragraph(false))
	}
	s.paraLevel = 0
	s.paraItem = nil
}

// mark is the index the next fragment of the current buffer will get.
func (s *scanner) mark() int { return len(s.buffers[len(s.buffers)-1]) }

// closeInline emits closer for an inline context whose opening marker sits
// at index start. Whitespace at the edges of its content moves outside the
// markers, and a context with no content leaves no markers.
func (s *scanner) closeInline(start int, closer string) {
	i := len(s.buffers) - 1
	buf := s.buffers[i]
	if start < 0 || start >= len(buf) {
		s.emit(closer)
		return
	}
	opener := buf[start]
	var b strings.Builder
	for _, f := range buf[start+1:] {
		b.WriteString(f.Payload)
	}
	content := b.String()
	s.buffers[i] = buf[:start]

	inner := strings.TrimLeft(content, " \n")
	lead := content[:len(content)-len(inner)]
	trimmed := strings.TrimRight(inner, " \n")
	trail := inner[len(trimmed):]

	if strings.Trim(lead, " ") != "" || !s.afterSpace() {
		s.emit(lead)
	}
	if trimmed == "" {
		return
	}
	s.buffers[i] = append(s.buffers[i], opener, Fragment{Kind: FragmentText, Payload: trimmed})
	s.emit(closer)
	s.emit(trail)
}

func (s *scanner) listDepth() int {
	n := 0
	for _, c := range s.stack {
		if _, ok := c.(*ListContext); ok {
			n++
		}
	}
	return n
}

func (s *scanner) innermostList() *ListContext {
	for i := len(s.stack) - 1; i >= 0; i-- {
		if l, ok := s.stack[i].(*ListContext); ok {
			return l
		}
	}
	return nil
}

func attr(tok html.Token, name string) string {
	for _, a := range tok.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func headingLevel(name string) int {
	if len(name) == 2 && name[0] == 'h' {
		if n, err := strconv.Atoi(name[1:]); err == nil && n >= 1 && n <= 6 {
			return n
		}
	}
	return 0
}

func (s *scanner) start(tok html.Token, selfClosing bool) {
	name := tok.Data
	if s.skip != "" {
		return
	}

	if s.pre > 0 {
		// Inside preformatted text only line breaks and nesting matter.
		switch name {
		case "br":
			s.emitCode(s.d().Text("\n", true))
		case "pre":
			if !selfClosing {
				s.pre++
			}
		}
		return
	}
	if s.inInlineCode() {
		if name == "br" {
			s.emitCode(s.d().Text(" ", true))
		}
		return
	}

	switch name {
	case "script", "style":
		if !selfClosing {
			s.skip = name
		}
	case "p", "div":
		s.openParagraph()
		if selfClosing {
			s.closeParagraph()
		}
	case "br":
		s.emit(s.d().LineBreak())
	case "b", "strong":
		c := &StrongContext{Quiet: s.quiet(), Mark: -1}
		if !c.Quiet {
			c.Mark = s.mark()
			s.emit(s.d().Strong(true))
		}
		s.push(c)
	case "i", "em":
		c := &EmphasisContext{Quiet: s.quiet(), Mark: -1}
		if !c.Quiet {
			c.Mark = s.mark()
			s.emit(s.d().Emphasis(true))
		}
		s.push(c)
	case "code":
		s.push(&InlineCodeContext{Quiet: s.quiet()})
		s.beginCapture()
	case "pre":
		s.closeParagraph()
		s.emit(s.d().Preformatted(true))
		s.pre++
		if selfClosing {
			s.end("pre")
		}
	case "a":
		if selfClosing {
			s.emit(s.d().Link(s.opts.Resolver.Resolve(attr(tok, "href")), ""))
			return
		}
		s.push(&LinkContext{Href: attr(tok, "href")})
		s.beginCapture()
	case "h1", "h2", "h3", "h4", "h5", "h6":
		s.closeParagraph()
		level := headingLevel(name)
		s.emit(s.d().Heading(level, true))
		s.push(&HeaderContext{Level: level})
	case "ul", "ol":
		s.closeParagraph()
		ordered := name == "ol"
		s.push(&ListContext{Ordered: ordered})
		s.emit(s.d().List(ordered, s.listDepth(), true))
	case "li":
		l := s.innermostList()
		if l == nil || s.top() != TagContext(l) {
			// Items outside a list, or behind unclosed inline markup, flow as text.
			return
		}
		s.closeParagraph()
		if l.ItemOpen {
			s.emit(s.d().ListItem(l.Ordered, s.listDepth(), l.Items, false))
		}
		l.Items++
		l.ItemOpen = true
		s.emit(s.d().ListItem(l.Ordered, s.listDepth(), l.Items, true))
		l.ItemMark = s.mark()
	case "blockquote":
		s.closeParagraph()
		s.push(&BlockquoteContext{})
		s.beginCapture()
	case "img":
		s.emit(s.d().Image(strings.TrimSpace(attr(tok, "src")), attr(tok, "alt")))
	case "hr":
		s.closeParagraph()
		s.emit(s.d().Rule())
	}
}

func (s *scanner) end(name string) {
	if s.skip != "" {
		if name == s.skip {
			s.skip = ""
		}
		return
	}

	if s.pre > 0 {
		if name == "pre" {
			s.pre--
			if s.pre == 0 {
				s.emit(s.d().Preformatted(false))
			}
		}
		return
	}
	if s.inInlineCode() && name != "code" {
		return
	}

	switch name {
	case "p", "div":
		s.closeParagraph()
	case "b", "strong":
		if c, ok := s.top().(*StrongContext); ok {
			s.pop()
			if !c.Quiet {
				s.closeInline(c.Mark, s.d().Strong(false))
			}
		}
	case "i", "em":
		if c, ok := s.top().(*EmphasisContext); ok {
			s.pop()
			if !c.Quiet {
				s.closeInline(c.Mark, s.d().Emphasis(false))
			}
		}
	case "code":
		if _, ok := s.top().(*InlineCodeContext); ok {
			s.closeCode()
		}
	case "a":
		if _, ok := s.top().(*LinkContext); ok {
			s.closeLink()
		}
	case "h1", "h2", "h3", "h4", "h5", "h6":
		if c, ok := s.top().(*HeaderContext); ok {
			s.pop()
			s.emit(s.d().Heading(c.Level, false))
		}
	case "ul", "ol":
		if _, ok := s.top().(*ListContext); ok {
			s.closeList()
		}
	case "li":
		if l, ok := s.top().(*ListContext); ok && l.ItemOpen {
			s.closeParagraph()
			l.ItemOpen = false
			s.emit(s.d().ListItem(l.Ordered, s.listDepth(), l.Items, false))
		}
	case "blockquote":
		if _, ok := s.top().(*BlockquoteContext); ok {
			s.closeBlockquote()
		}
	}
}

func (s *scanner) closeLink() {
	c := s.pop().(*LinkContext)
	text := strings.TrimSpace(s.endCapture())
	s.emit(s.d().Link(s.opts.Resolver.Resolve(c.Href), text))
}

func (s *scanner) closeCode() {
	c := s.pop().(*InlineCodeContext)
	content := s.endCapture()
	if c.Quiet {
		s.emitCode(content)
		return
	}
	s.emitCode(s.d().InlineCode(content))
}

func (s *scanner) closeBlockquote() {
	s.closeParagraph()
	s.pop()
	content := s.endCapture()
	s.emit(s.d().Blockquote(content))
}

func (s *scanner) closeList() {
	s.closeParagraph()
	l := s.top().(*ListContext)
	depth := s.listDepth()
	if l.ItemOpen {
		s.emit(s.d().ListItem(l.Ordered, depth, l.Items, false))
	}
	s.emit(s.d().List(l.Ordered, depth, false))
	s.pop()
}

// unwind closes everything still open at end of input, innermost first.
func (s *scanner) unwind() {
	s.skip = ""
	if s.pre > 0 {
		s.pre = 0
		s.emit(s.d().Preformatted(false))
	}
	for len(s.stack) > 0 {
		switch c := s.top().(type) {
		case *StrongContext:
			s.pop()
			if !c.Quiet {
				s.closeInline(c.Mark, s.d().Strong(false))
			}
		case *EmphasisContext:
			s.pop()
			if !c.Quiet {
				s.closeInline(c.Mark, s.d().Emphasis(false))
			}
		case *InlineCodeContext:
			s.closeCode()
		case *LinkContext:
			s.closeLink()
		case *HeaderContext:
			s.pop()
			s.emit(s.d().Heading(c.Level, false))
		case *ListContext:
			s.closeList()
		case *BlockquoteContext:
			s.closeBlockquote()
		default:
			s.pop()
		}
	}
	s.closeParagraph()
}

// salvage flattens every buffer into one fragment list after a failure.
func (s *scanner) salvage() []Fragment {
	var out []Fragment
	for _, buf := range s.buffers {
		out = append(out, buf...)
	}
	return out
}
