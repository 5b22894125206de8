package markup

import (
	"strconv"
	"strings"

	"git.home.luguber.info/inful/forumarchive/internal/links"
)

// NoteDialect renders Markdown with double-bracket links for note vaults.
type NoteDialect struct{}

var _ Dialect = NoteDialect{}

func (NoteDialect) Name() string { return "notes" }

func (NoteDialect) Text(s string, _ bool) string { return s }

func (NoteDialect) Paragraph(bool) string { return "\n\n" }

func (NoteDialect) LineBreak() string { return "\n" }

func (NoteDialect) Strong(bool) string { return "**" }

func (NoteDialect) Emphasis(bool) string { return "*" }

// InlineCode fences content with one backtick more than its longest
// backtick run, padding when the content touches a fence.
func (NoteDialect) InlineCode(content string) string {
	if content == "" {
		return ""
	}
	fence := strings.Repeat("`", longestRun(content, '`')+1)
	edgeTick := strings.HasPrefix(content, "`") || strings.HasSuffix(content, "`")
	spaced := strings.HasPrefix(content, " ") && strings.HasSuffix(content, " ") && strings.Trim(content, " ") != ""
	if edgeTick || spaced {
		content = " " + content + " "
	}
	return fence + content + fence
}

func longestRun(s string, c byte) int {
	best, run := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] != c {
			run = 0
			continue
		}
		run++
		best = max(best, run)
	}
	return best
}

func (NoteDialect) Preformatted(open bool) string {
	if open {
		return "\n\n```\n"
	}
	return "\n```\n\n"
}

func (NoteDialect) Heading(level int, open bool) string {
	if !open {
		return "\n"
	}
	return "\n\n" + strings.Repeat("#", level) + " "
}

func (NoteDialect) List(_ bool, depth int, _ bool) string {
	if depth <= 1 {
		return "\n\n"
	}
	return ""
}

func (NoteDialect) ListItem(ordered bool, depth, index int, open bool) string {
	if !open {
		return ""
	}
	return "\n" + itemIndent(depth) + listMarker(ordered, index)
}

// ItemParagraph joins the first paragraph to the bullet and indents later
// ones to the item's content column.
func (NoteDialect) ItemParagraph(ordered bool, depth, index int, first, open bool) string {
	if !open || first {
		return ""
	}
	return "\n\n" + itemIndent(depth) + strings.Repeat(" ", len(listMarker(ordered, index)))
}

func itemIndent(depth int) string { return strings.Repeat("  ", max(depth-1, 0)) }

func listMarker(ordered bool, index int) string {
	if ordered {
		return strconv.Itoa(index) + ". "
	}
	return "- "
}

func (NoteDialect) Blockquote(content string) string {
	content = Normalize(content)
	if content == "" {
		return ""
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ">"
			continue
		}
		lines[i] = "> " + line
	}
	return "\n\n" + strings.Join(lines, "\n") + "\n\n"
}

var wikiTextCleaner = strings.NewReplacer("[[", "", "]]", "", "|", "/")

func (NoteDialect) Link(res links.Resolution, text string) string {
	text = strings.TrimSpace(collapseSpace(text))
	switch res.Kind {
	case links.KindEmpty:
		return text
	case links.KindInternal:
		text = strings.TrimSpace(wikiTextCleaner.Replace(text))
		if text == "" || text == res.Target.Ref {
			return "[[" + res.Target.Ref + "]]"
		}
		return "[[" + res.Target.Ref + "|" + text + "]]"
	case links.KindMalformed:
		if text == "" {
			return res.Href
		}
		return text + " (" + res.Href + ")"
	default:
		if text == "" {
			text = res.Href
		}
		return "[" + text + "](" + markdownDestination(res.Href) + ")"
	}
}

func (NoteDialect) Image(src, alt string) string {
	if src == "" {
		return alt
	}
	return "![" + strings.TrimSpace(alt) + "](" + markdownDestination(src) + ")"
}

func (NoteDialect) Rule() string { return "\n\n---\n\n" }

// markdownDestination wraps destinations that would end a Markdown link early.
func markdownDestination(href string) string {
	if strings.ContainsAny(href, "()<> ") {
		return "<" + strings.NewReplacer("<", "%3C", ">", "%3E").Replace(href) + ">"
	}
	return href
}
