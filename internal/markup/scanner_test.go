package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/forumarchive/internal/archive"
	"git.home.luguber.info/inful/forumarchive/internal/idmap"
	"git.home.luguber.info/inful/forumarchive/internal/links"
)

func noteOptions(t *testing.T) Options {
	t.Helper()
	arc := archive.New()
	arc.Blog.Documents = []archive.Document{{ID: "1", Title: "hello-world", URL: "https://site/x"}}
	ids := idmap.Build(arc, idmap.NoteScheme, nil)
	return Options{Dialect: NoteDialect{}, Resolver: links.NewResolver("https://site", ids)}
}

func htmlOptions(t *testing.T) Options {
	t.Helper()
	arc := archive.New()
	arc.Blog.Documents = []archive.Document{{ID: "1", Title: "Hello World", URL: "https://site/x"}}
	ids := idmap.Build(arc, idmap.HTMLScheme, nil)
	return Options{Dialect: HTMLDialect{}, Resolver: links.NewResolver("https://site", ids)}
}

func TestConvert_InternalLinkBecomesWikiLink(t *testing.T) {
	opts := noteOptions(t)
	body := `<p>Hello <a href="https://site/x">there</a></p>`

	frags := Scan(body, opts)
	require.NotEmpty(t, frags)
	require.Equal(t, "\n\n", frags[0].Payload, "paragraph opens with a block separator")
	require.Equal(t, "Hello [[Blog/hello-world|there]]", Join(frags))
}

func TestConvert_EmptyHrefIsPlainText(t *testing.T) {
	opts := noteOptions(t)
	require.Equal(t, "click", Convert(`<a href="">click</a>`, opts))
	require.Equal(t, "click", Convert(`<a>click</a>`, opts))

	opts = htmlOptions(t)
	require.Equal(t, "click", Convert(`<a href="">click</a>`, opts))
}

func TestConvert_LinkKindsInNotes(t *testing.T) {
	opts := noteOptions(t)
	cases := map[string]string{
		`<a href="https://other.example/x">ext</a>`: "[ext](https://other.example/x)",
		`<a href="https://site/missing">gone</a>`:   "[gone](https://site/missing)",
		`<a href="not a url!!">bad</a>`:             "bad (not a url!!)",
		`<a href="/x">same</a>`:                     "[[Blog/hello-world|same]]",
		`<a href="https://site/x"></a>`:             "[[Blog/hello-world]]",
		`<a href="https://site/x">a|b</a>`:          "[[Blog/hello-world|a/b]]",
	}
	for body, want := range cases {
		require.Equal(t, want, Convert(body, opts), body)
	}
}

func TestConvert_LinkKindsInHTML(t *testing.T) {
	opts := htmlOptions(t)
	require.Equal(t, `<a href="../blog/hello_world.html#c1">x</a>`,
		Convert(`<a href="https://site/x#c1">x</a>`, opts))
	require.Equal(t, `<a href="https://other.example/" class="external" rel="nofollow noopener">o</a>`,
		Convert(`<a href="https://other.example/">o</a>`, opts))
	require.Equal(t, "js", Convert(`<a href="javascript:alert(1)">js</a>`, opts))
}

func TestConvert_Formatting(t *testing.T) {
	opts := noteOptions(t)
	require.Equal(t, "**bold** and *it* and `c`", Convert("<b>bold</b> and <em>it</em> and <code>c</code>", opts))
	require.Equal(t, "## Title\n\nbody", Convert("<h2>Title</h2><p>body</p>", opts))
	require.Equal(t, "line one\nline two", Convert("line one<br>line two", opts))
	require.Equal(t, "a\n\n---\n\nb", Convert("a<hr>b", opts))
	require.Equal(t, "![pic](https://img.example/a.png)", Convert(`<img src="https://img.example/a.png" alt="pic">`, opts))
}

func TestConvert_Lists(t *testing.T) {
	opts := noteOptions(t)
	got := Convert("<ul><li>one</li><li>two<ol><li>a</li><li>b</li></ol></li></ul>", opts)
	require.Equal(t, "- one\n- two\n  1. a\n  2. b", got)
}

func TestConvert_ListItemParagraphs(t *testing.T) {
	opts := noteOptions(t)
	require.Equal(t, "- one\n- two", Convert("<ul><li><p>one</p></li><li><p>two</p></li></ul>", opts))
	require.Equal(t, "1. one\n\n   more\n2. two",
		Convert("<ol><li><p>one</p><p>more</p></li><li><p>two</p></li></ol>", opts))
	require.Equal(t, "- open\n- next", Convert("<ul><li><p>open<li><p>next</ul>", opts))

	html := Convert("<ul><li><p>one</p></li></ul>", htmlOptions(t))
	require.Contains(t, html, "<li><p>one</p>")
}

func TestConvert_VerbatimText(t *testing.T) {
	opts := noteOptions(t)
	got := Convert("<pre><code>if a  &lt; b {\n  <b>x</b>\n}</code></pre>", opts)
	require.Equal(t, "```\nif a  < b {\n  x\n}\n```", got)

	require.Equal(t, "`a  <b>`", Convert("<code>a  &lt;b&gt;</code>", opts))
}

func TestConvert_InlineCodeFence(t *testing.T) {
	opts := noteOptions(t)
	require.Equal(t, "``a`b``", Convert("<code>a`b</code>", opts))
	require.Equal(t, "```x``y```", Convert("<code>x``y</code>", opts))
	require.Equal(t, "`` `tick ``", Convert("<code>`tick</code>", opts))
	require.Equal(t, "see", Convert("see <code></code>", opts))

	require.Equal(t, "<code>a`b</code>", Convert("<code>a`b</code>", htmlOptions(t)))
}

func TestConvert_InlineWhitespaceOutsideMarkers(t *testing.T) {
	opts := noteOptions(t)
	require.Equal(t, "Hello **bold** world", Convert("<p>Hello<b> bold </b>world</p>", opts))
	require.Equal(t, "a *b* c", Convert("a <i> b</i> c", opts))
	require.Equal(t, "x", Convert("<i> </i>x", opts))
	require.Equal(t, "**x**\ny", Convert("<b>x<br></b>y", opts))

	require.Equal(t, "a <strong>b</strong> c", Convert("a<strong> b </strong>c", htmlOptions(t)))
}

func TestConvert_Blockquote(t *testing.T) {
	opts := noteOptions(t)
	got := Convert("<p>He said:</p><blockquote><p>first</p><p>second</p></blockquote><p>after</p>", opts)
	require.Equal(t, "He said:\n\n> first\n>\n> second\n\nafter", got)
}

func TestConvert_MismatchedCloseIsIgnored(t *testing.T) {
	opts := noteOptions(t)
	require.Equal(t, "**a b**", Convert("<b>a</i> b</b>", opts))
	require.Equal(t, "*x*", Convert("</strong><em>x</em></a>", opts))
}

func TestConvert_UnclosedContextsAreUnwound(t *testing.T) {
	opts := noteOptions(t)
	require.Equal(t, "**bold *both***", Convert("<b>bold <i>both", opts))
	require.Equal(t, "[[Blog/hello-world|dangling text]]", Convert(`<a href="/x">dangling text`, opts))
}

func TestConvert_ScriptAndStyleDropped(t *testing.T) {
	opts := htmlOptions(t)
	got := Convert("<p>a</p><script>alert('x')</script><style>p{}</style><p>b</p>", opts)
	require.Equal(t, "<p>a</p>\n<p>b</p>", got)
}

func TestConvert_LinkTextCapture(t *testing.T) {
	opts := noteOptions(t)
	body := `<a href="https://other.example/">a <b>bold</b> link</a>`
	require.Equal(t, "[a bold link](https://other.example/)", Convert(body, opts))

	opts.Capture = CaptureFormatted
	require.Equal(t, "[a **bold** link](https://other.example/)", Convert(body, opts))
}

func TestConvert_NormalizesBlankLines(t *testing.T) {
	opts := noteOptions(t)
	got := Convert("<p>a</p><p></p><p></p><p>b</p>", opts)
	require.Equal(t, "a\n\nb", got)
	require.NotContains(t, got, "\n\n\n")
}

func TestConvert_Idempotent(t *testing.T) {
	body := `<p>Hi <a href="https://site/x">x</a></p><ul><li>a</li></ul><blockquote>q</blockquote>`
	for _, opts := range []Options{noteOptions(t), htmlOptions(t)} {
		require.Equal(t, Convert(body, opts), Convert(body, opts))
	}
}

func TestConvert_LinkTotality(t *testing.T) {
	hrefs := []string{"", "http://other.example/x", "/local/path", "https://site/post-7", "not a url!!"}
	for _, opts := range []Options{noteOptions(t), htmlOptions(t)} {
		for _, href := range hrefs {
			got := Convert(`<a href="`+href+`">text</a>`, opts)
			require.Contains(t, got, "text", "%s rendering of %q", opts.Dialect.Name(), href)
		}
	}
}

func TestConvert_HTMLEscapesText(t *testing.T) {
	opts := htmlOptions(t)
	got := Convert("<p>a &lt; b &amp; c</p>", opts)
	require.Equal(t, "<p>a &lt; b &amp; c</p>", got)
	require.False(t, strings.Contains(got, "<b>"))
}

func TestNormalize(t *testing.T) {
	require.Equal(t, "a\n\nb", Normalize("\n\n a\n\n\n\n  \nb \n\n"))
	require.Equal(t, Normalize("x\n\n\n\ny"), Normalize(Normalize("x\n\n\n\ny")))
}

func TestParseLinkTextCapture(t *testing.T) {
	c, ok := ParseLinkTextCapture("Formatted")
	require.True(t, ok)
	require.Equal(t, CaptureFormatted, c)
	_, ok = ParseLinkTextCapture("bold")
	require.False(t, ok)
}
