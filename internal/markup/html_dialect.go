package markup

import (
	"html"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/forumarchive/internal/links"
)

// HTMLDialect renders escaped HTML fragments for the static site. Output is
// run through the sanitizer afterwards.
type HTMLDialect struct{}

var _ Dialect = HTMLDialect{}

func (HTMLDialect) Name() string { return "html" }

func (HTMLDialect) Text(s string, _ bool) string { return html.EscapeString(s) }

func (HTMLDialect) Paragraph(open bool) string { return tag("p", open) + nlIf(!open) }

func (HTMLDialect) LineBreak() string { return "<br>\n" }

func (HTMLDialect) Strong(open bool) string { return tag("strong", open) }

func (HTMLDialect) Emphasis(open bool) string { return tag("em", open) }

func (HTMLDialect) InlineCode(content string) string {
	if content == "" {
		return ""
	}
	return "<code>" + content + "</code>"
}

func (HTMLDialect) Preformatted(open bool) string {
	if open {
		return "<pre><code>"
	}
	return "</code></pre>\n"
}

func (HTMLDialect) Heading(level int, open bool) string {
	return tag("h"+strconv.Itoa(level), open) + nlIf(!open)
}

func (HTMLDialect) List(ordered bool, _ int, open bool) string {
	name := "ul"
	if ordered {
		name = "ol"
	}
	return tag(name, open) + "\n"
}

func (HTMLDialect) ListItem(_ bool, _, _ int, open bool) string {
	return tag("li", open) + nlIf(!open)
}

func (d HTMLDialect) ItemParagraph(_ bool, _, _ int, _, open bool) string {
	return d.Paragraph(open)
}

func (HTMLDialect) Blockquote(content string) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return ""
	}
	return "<blockquote>" + content + "</blockquote>\n"
}

func (HTMLDialect) Link(res links.Resolution, text string) string {
	text = strings.TrimSpace(text)
	switch res.Kind {
	case links.KindEmpty:
		return text
	case links.KindInternal:
		if text == "" {
			text = html.EscapeString(res.Target.Slug)
		}
		return `<a href="` + html.EscapeString(res.Target.Ref+res.Fragment) + `">` + text + "</a>"
	case links.KindMalformed:
		if text == "" {
			return html.EscapeString(res.Href)
		}
		return text + " (" + html.EscapeString(res.Href) + ")"
	default:
		if !safeHref(res.Href) {
			if text == "" {
				return html.EscapeString(res.Href)
			}
			return text
		}
		if text == "" {
			text = html.EscapeString(res.Href)
		}
		return `<a href="` + html.EscapeString(res.Href) + `" class="external" rel="nofollow noopener">` + text + "</a>"
	}
}

func (HTMLDialect) Image(src, alt string) string {
	if src == "" || !safeHref(src) {
		return html.EscapeString(alt)
	}
	return `<img src="` + html.EscapeString(src) + `" alt="` + html.EscapeString(alt) + `">`
}

func (HTMLDialect) Rule() string { return "<hr>\n" }

func tag(name string, open bool) string {
	if open {
		return "<" + name + ">"
	}
	return "</" + name + ">"
}

func nlIf(ok bool) string {
	if ok {
		return "\n"
	}
	return ""
}

// safeHref rejects script-bearing schemes.
func safeHref(href string) bool {
	h := strings.ToLower(strings.TrimSpace(href))
	for _, scheme := range []string{"javascript:", "data:", "vbscript:"} {
		if strings.HasPrefix(h, scheme) {
			return false
		}
	}
	return true
}
