// Package index builds the per-collection index pages and the site landing page.
package index

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	"regexp"
	"slices"
	"strings"
	"text/template"

	"git.home.luguber.info/inful/forumarchive/internal/archive"
	"git.home.luguber.info/inful/forumarchive/internal/frontmatter"
	"git.home.luguber.info/inful/forumarchive/internal/idmap"
	"git.home.luguber.info/inful/forumarchive/internal/markup"
	"git.home.luguber.info/inful/forumarchive/internal/render"
)

//go:embed templates/*
var templateFS embed.FS

var (
	noteIndexTemplate = template.Must(template.New("index.md.tmpl").ParseFS(templateFS, "templates/index.md.tmpl"))
	htmlIndexTemplate = htmltemplate.Must(htmltemplate.New("index.html.tmpl").ParseFS(templateFS, "templates/index.html.tmpl"))
	landingTemplate   = htmltemplate.Must(htmltemplate.New("landing.html.tmpl").ParseFS(templateFS, "templates/landing.html.tmpl"))
)

// Output file names relative to a dialect's output root.
const (
	LandingFile    = "index.html"
	StylesheetFile = "style.css"
)

// NoteFile is the vault-level index note of a collection.
func NoteFile(kind archive.CollectionKind) string { return kind.Title() + ".md" }

// HTMLFile is the index page inside a collection's directory.
func HTMLFile(kind archive.CollectionKind) string { return kind.Dir() + "/index.html" }

// Entry is one document in index order.
type Entry struct {
	Doc    *archive.Document
	Target idmap.Target
	Key    archive.DateStamp
}

// SortKey is the date a document is ordered by: last activity for topics,
// the post date for blog posts.
func SortKey(doc *archive.Document) archive.DateStamp {
	if doc.IsTopic() {
		return doc.LastActivity()
	}
	return doc.Date
}

// Order lists the collection most recent first. Equal keys keep input order.
// targets must be aligned with the collection's documents.
func Order(coll *archive.Collection, targets []idmap.Target) []Entry {
	entries := make([]Entry, 0, len(coll.Documents))
	for i := range coll.Documents {
		doc := &coll.Documents[i]
		var t idmap.Target
		if i < len(targets) {
			t = targets[i]
		}
		entries = append(entries, Entry{Doc: doc, Target: t, Key: SortKey(doc)})
	}
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return b.Key.Compare(a.Key)
	})
	return entries
}

type line struct {
	Ref          string
	Href         string
	Display      string
	Created      string
	Topic        bool
	Author       string
	LastActivity string
	Replies      int
	Tags         []string
}

type page struct {
	Title   string
	Count   int
	Noun    string
	Topics  bool
	Entries []line
}

var hashtagUnsafe = regexp.MustCompile(`[\s#]+`)

// Hashtag turns a tag into a single #-prefixable word.
func Hashtag(tag string) string {
	return strings.Trim(hashtagUnsafe.ReplaceAllString(strings.TrimSpace(tag), "-"), "-")
}

var wikiDisplay = strings.NewReplacer("|", "/", "[[", "", "]]", "")

func buildPage(coll *archive.Collection, targets []idmap.Target) page {
	p := page{
		Title:  coll.Kind.Title(),
		Count:  coll.Len(),
		Topics: coll.Kind.DocumentKind() == archive.KindTopic,
	}
	p.Noun = noun(p.Count, p.Topics)
	for _, e := range Order(coll, targets) {
		doc := e.Doc
		l := line{
			Ref:     e.Target.Ref,
			Href:    e.Target.Ref,
			Display: doc.Title,
			Created: dateOr(doc.Date),
			Topic:   doc.IsTopic(),
		}
		if l.Display == "" {
			l.Display = e.Target.Slug
		}
		if l.Topic {
			l.Author = doc.Author
			if l.Author == "" {
				l.Author = "Anonymous"
			}
			l.LastActivity = dateOr(doc.LastActivity())
			l.Replies = doc.ReplyCount()
		}
		for _, tag := range doc.CleanTags() {
			if h := Hashtag(tag); h != "" {
				l.Tags = append(l.Tags, h)
			}
		}
		p.Entries = append(p.Entries, l)
	}
	return p
}

func noun(n int, topics bool) string {
	switch {
	case topics && n == 1:
		return "topic"
	case topics:
		return "topics"
	case n == 1:
		return "post"
	default:
		return "posts"
	}
}

func dateOr(d archive.DateStamp) string {
	if d.IsZero() {
		return "undated"
	}
	return d.Date()
}

// Notes renders the index note of a collection.
func Notes(coll *archive.Collection, targets []idmap.Target) ([]byte, error) {
	p := buildPage(coll, targets)
	for i := range p.Entries {
		p.Entries[i].Display = strings.TrimSpace(wikiDisplay.Replace(p.Entries[i].Display))
	}
	var buf bytes.Buffer
	if err := noteIndexTemplate.Execute(&buf, p); err != nil {
		return nil, err
	}
	fields := frontmatter.Fields{
		{Key: "title", Value: p.Title},
		{Key: "collection", Value: coll.Kind.Key()},
		{Key: "count", Value: p.Count},
	}
	return frontmatter.Render(fields, markup.Normalize(buf.String())+"\n")
}

// HTML renders the index page of a collection inside the page shell.
func HTML(coll *archive.Collection, targets []idmap.Target, siteTitle string) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlIndexTemplate.Execute(&buf, buildPage(coll, targets)); err != nil {
		return nil, err
	}
	return render.RenderPage(render.Page{
		Title:     coll.Kind.Title(),
		SiteTitle: siteTitle,
		Root:      "../",
		Nav:       render.Nav("../", coll.Kind, true),
		// #nosec G203 -- escaped template output
		Content: htmltemplate.HTML(buf.String()),
	})
}

type landingCollection struct {
	Title string
	Href  string
	Count int
	Noun  string
}

// Landing renders the top-level page summarizing collection counts.
func Landing(arc *archive.Archive, siteTitle, description string) ([]byte, error) {
	data := struct {
		Title       string
		Description string
		Collections []landingCollection
		Total       int
	}{Title: siteTitle, Description: description, Total: arc.Total()}
	for _, st := range arc.Stats() {
		topics := st.Kind.DocumentKind() == archive.KindTopic
		data.Collections = append(data.Collections, landingCollection{
			Title: st.Kind.Title(),
			Href:  HTMLFile(st.Kind),
			Count: st.Count,
			Noun:  noun(st.Count, topics),
		})
	}
	var buf bytes.Buffer
	if err := landingTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return render.RenderPage(render.Page{
		SiteTitle: siteTitle,
		Root:      "",
		Nav:       render.Nav("", 0, false),
		// #nosec G203 -- escaped template output
		Content: htmltemplate.HTML(buf.String()),
	})
}
