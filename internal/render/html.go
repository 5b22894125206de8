package render

import (
	"bytes"
	"html/template"
	"regexp"

	"github.com/microcosm-cc/bluemonday"

	"git.home.luguber.info/inful/forumarchive/internal/archive"
	"git.home.luguber.info/inful/forumarchive/internal/idmap"
	"git.home.luguber.info/inful/forumarchive/internal/markup"
)

var (
	documentTemplate = template.Must(template.New("document.html.tmpl").ParseFS(templateFS, "templates/document.html.tmpl"))
	pageTemplate     = template.Must(template.New("page.html.tmpl").ParseFS(templateFS, "templates/page.html.tmpl"))
)

// BodyPolicy is the sanitizer applied to converted bodies.
func BodyPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^external$`)).OnElements("a")
	return p
}

// HTMLRenderer renders static pages inside the shared page shell.
type HTMLRenderer struct {
	conv      converter
	policy    *bluemonday.Policy
	siteTitle string
}

// NewHTMLRenderer creates an HTML renderer.
func NewHTMLRenderer(opts Options) (*HTMLRenderer, error) {
	r := &HTMLRenderer{
		conv:      newConverter(markup.HTMLDialect{}, opts),
		siteTitle: opts.SiteTitle,
	}
	if opts.Sanitize {
		r.policy = BodyPolicy()
	}
	return r, nil
}

func (r *HTMLRenderer) Dialect() string { return DialectHTML }

type htmlSection struct {
	Heading string
	Byline  string
	Body    template.HTML
}

type documentData struct {
	ID       string
	Kind     string
	Title    string
	Byline   string
	Tags     []string
	Body     template.HTML
	Sections []htmlSection
	Comments []htmlSection
}

func (r *HTMLRenderer) safe(s string) template.HTML {
	if r.policy != nil {
		s = r.policy.Sanitize(s)
	}
	// #nosec G203 -- produced by the HTML dialect and sanitized when enabled
	return template.HTML(s)
}

func (r *HTMLRenderer) htmlSections(in []section) []htmlSection {
	out := make([]htmlSection, 0, len(in))
	for _, s := range in {
		out = append(out, htmlSection{Heading: s.Heading, Byline: s.Byline, Body: r.safe(s.Body)})
	}
	return out
}

// Render produces the page for doc.
func (r *HTMLRenderer) Render(doc *archive.Document, target idmap.Target) (out []byte, err error) {
	defer guard(&err, doc, target, DialectHTML)

	data := documentData{
		ID:     doc.ID.String(),
		Kind:   doc.Kind.String(),
		Title:  displayTitle(doc, target),
		Byline: byline(doc),
		Tags:   doc.CleanTags(),
	}
	if !doc.IsTopic() {
		data.Body = r.safe(r.conv.convert(doc.Body))
	}
	replies, comments := r.conv.sections(doc)
	data.Sections = r.htmlSections(replies)
	data.Comments = r.htmlSections(comments)

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return nil, renderFailure(err, doc, target, DialectHTML, "document template failed")
	}
	page := Page{
		Title:     data.Title,
		SiteTitle: r.siteTitle,
		Root:      "../",
		Nav:       Nav("../", target.Collection, true),
		// #nosec G203 -- assembled from escaped template output
		Content: template.HTML(buf.String()),
	}
	out, err = RenderPage(page)
	if err != nil {
		return nil, renderFailure(err, doc, target, DialectHTML, "page template failed")
	}
	return out, nil
}

// Fallback shows the escaped raw body without the shared shell.
func (r *HTMLRenderer) Fallback(doc *archive.Document, target idmap.Target) []byte {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head><meta charset=\"utf-8\"><title>")
	template.HTMLEscape(&buf, []byte(displayTitle(doc, target)))
	buf.WriteString("</title><link rel=\"stylesheet\" href=\"../style.css\"></head>\n<body>\n<h1>")
	template.HTMLEscape(&buf, []byte(displayTitle(doc, target)))
	buf.WriteString("</h1>\n<pre>")
	if doc.IsTopic() {
		for _, rep := range doc.Replies {
			template.HTMLEscape(&buf, []byte(rep.Body+"\n"))
		}
	} else {
		template.HTMLEscape(&buf, []byte(doc.Body))
	}
	buf.WriteString("</pre>\n</body>\n</html>\n")
	return buf.Bytes()
}
