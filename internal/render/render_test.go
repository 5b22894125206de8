package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/forumarchive/internal/archive"
	"git.home.luguber.info/inful/forumarchive/internal/foundation/errors"
	"git.home.luguber.info/inful/forumarchive/internal/frontmatterops"
	"git.home.luguber.info/inful/forumarchive/internal/idmap"
	"git.home.luguber.info/inful/forumarchive/internal/links"
)

const origin = "https://site"

func fixture() *archive.Archive {
	arc := archive.New()
	arc.Blog.Documents = []archive.Document{
		{
			Kind: archive.KindPost, ID: "1", Title: "Hello", URL: origin + "/x",
			Date: archive.NewDateStamp(2019, 12, 24, "18:30"),
			Body: "<p>Merry <b>christmas</b></p>",
			Tags: []string{"news", " "},
			Comments: []archive.Entry{
				{Author: "Carol", Date: archive.NewDateStamp(2019, 12, 25, ""), Body: "Thanks!"},
				{Author: "", Date: archive.NewDateStamp(2019, 12, 26, ""), Body: "<i>+1</i>"},
			},
		},
		{Kind: archive.KindPost, ID: "2", Title: "Quiet", URL: origin + "/quiet", Body: "nothing"},
	}
	arc.ForumA.Documents = []archive.Document{
		{
			Kind: archive.KindTopic, ID: "5", Title: "Engine trouble", URL: origin + "/t/5",
			Author: "Alice", Date: archive.NewDateStamp(2020, 1, 1, ""),
			Replies: []archive.Entry{
				{Author: "Alice", Date: archive.NewDateStamp(2020, 1, 1, ""), Body: `<p>First <a href="https://site/x">post</a></p>`},
				{Author: "Bob", Date: archive.NewDateStamp(2020, 1, 2, "10:00"), Body: "<p>Second</p>"},
			},
		},
	}
	return arc
}

func renderNote(t *testing.T, arc *archive.Archive, kind archive.CollectionKind, i int, opts Options) string {
	t.Helper()
	ids := idmap.Build(arc, idmap.NoteScheme, nil)
	opts.Origin = origin
	opts.IDs = ids
	r := NewNoteRenderer(opts)
	out, err := r.Render(&arc.Collection(kind).Documents[i], ids.Assigned(kind)[i])
	require.NoError(t, err)
	return string(out)
}

func TestNoteRenderer_Topic(t *testing.T) {
	out := renderNote(t, fixture(), archive.ForumA, 0, Options{})

	fields, body, err := frontmatterops.Read([]byte(out))
	require.NoError(t, err)
	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, f.Key)
	}
	require.Equal(t, []string{"id", "title", "date", "author", "collection", "source", "uid", "replies", "last_activity", "fingerprint"}, keys)
	replies, _ := fields.Get("replies")
	require.Equal(t, 1, replies)
	last, _ := fields.Get("last_activity")
	require.Equal(t, "2020-01-02 10:00", last)

	require.True(t, strings.HasPrefix(body, "# Engine trouble\n\n## Original Post\n"))
	require.Contains(t, body, "*Posted by Alice on 2020-01-01 00:00*")
	require.Contains(t, body, "First [[Blog/Hello|post]]")
	require.Contains(t, body, "---\n\n## Reply by Bob\n\n*2020-01-02 10:00*\n\nSecond")
	require.NotContains(t, body, "\n\n\n")

	ok, err := frontmatterops.Verify(fields, body)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestNoteRenderer_PostWithComments(t *testing.T) {
	out := renderNote(t, fixture(), archive.Blog, 0, Options{})

	require.Contains(t, out, "tags:\n  - news\n")
	require.Contains(t, out, "# Hello\n\nMerry **christmas**\n\n## Comments (2)\n")
	require.Contains(t, out, "### Comment by Carol\n\n*2019-12-25 00:00*\n\nThanks!")
	require.Contains(t, out, "### Comment by Anonymous")
	require.NotContains(t, out, "replies:")
}

func TestNoteRenderer_OmitsAbsentSections(t *testing.T) {
	out := renderNote(t, fixture(), archive.Blog, 1, Options{})

	require.NotContains(t, out, "Comments")
	require.NotContains(t, out, "tags:")
	require.NotContains(t, out, "date:")
	require.True(t, strings.HasSuffix(out, "# Quiet\n\nnothing\n"))
}

func TestNoteRenderer_CountsLinks(t *testing.T) {
	stats := links.NewStats()
	renderNote(t, fixture(), archive.ForumA, 0, Options{Observer: stats.Observe})
	require.Equal(t, 1, stats.Count(links.KindInternal))
}

func TestHTMLRenderer_Topic(t *testing.T) {
	arc := fixture()
	ids := idmap.Build(arc, idmap.HTMLScheme, nil)
	r, err := NewHTMLRenderer(Options{Origin: origin, IDs: ids, SiteTitle: "Club", Sanitize: true})
	require.NoError(t, err)

	out, err := r.Render(&arc.ForumA.Documents[0], ids.Assigned(archive.ForumA)[0])
	require.NoError(t, err)
	page := string(out)

	require.Contains(t, page, `<article class="topic" id="doc-5" data-id="5">`)
	require.Contains(t, page, `<link rel="stylesheet" href="../style.css">`)
	require.Contains(t, page, `<title>Engine trouble · Club</title>`)
	require.Contains(t, page, `href="../blog/hello.html"`)
	require.Contains(t, page, `<h2>Original Post</h2>`)
	require.Contains(t, page, `<h2>Reply by Bob</h2>`)
	require.Contains(t, page, "<hr>")
	require.Contains(t, page, `<a href="../fvp/index.html" class="current">FVP Forum</a>`)
	require.Contains(t, page, "1 reply")
}

func TestHTMLRenderer_EscapesTitles(t *testing.T) {
	arc := archive.New()
	arc.Blog.Documents = []archive.Document{{Kind: archive.KindPost, ID: "9", Title: "<script>x</script>", Body: "ok"}}
	ids := idmap.Build(arc, idmap.HTMLScheme, nil)
	r, err := NewHTMLRenderer(Options{Origin: origin, IDs: ids, Sanitize: true})
	require.NoError(t, err)

	out, err := r.Render(&arc.Blog.Documents[0], ids.Assigned(archive.Blog)[0])
	require.NoError(t, err)
	require.NotContains(t, string(out), "<script>")
	require.Contains(t, string(out), "&lt;script&gt;")
}

func TestFallbacks(t *testing.T) {
	arc := fixture()
	doc := &arc.Blog.Documents[0]
	target := idmap.Build(arc, idmap.NoteScheme, nil).Assigned(archive.Blog)[0]

	note := string(NewNoteRenderer(Options{}).Fallback(doc, target))
	require.Contains(t, note, "render_fallback: true")
	require.Contains(t, note, "```html\n<p>Merry <b>christmas</b></p>\n```")

	r, err := NewHTMLRenderer(Options{})
	require.NoError(t, err)
	page := string(r.Fallback(doc, target))
	require.Contains(t, page, "&lt;p&gt;Merry")
}

func TestNew_UnknownDialect(t *testing.T) {
	_, err := New("pdf", Options{})
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryValidation))

	r, err := New(DialectHTML, Options{})
	require.NoError(t, err)
	require.Equal(t, DialectHTML, r.Dialect())
}

func TestStylesheet(t *testing.T) {
	require.Contains(t, string(Stylesheet()), "nav {")
}
