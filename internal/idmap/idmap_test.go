package idmap

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/forumarchive/internal/archive"
)

func testArchive() *archive.Archive {
	arc := archive.New()
	arc.Blog.Documents = []archive.Document{
		{Kind: archive.KindPost, ID: "1", Title: "Hello World", URL: "https://site/x"},
		{Kind: archive.KindPost, ID: "2", Title: "Hello World", URL: "https://site/y"},
		{Kind: archive.KindPost, ID: "3", Title: "", URL: "https://site/z"},
	}
	arc.ForumA.Documents = []archive.Document{
		{Kind: archive.KindTopic, ID: "10", Title: "Shared", URL: "https://site/x"},
	}
	arc.ForumB.Documents = []archive.Document{
		{Kind: archive.KindTopic, ID: "20", Title: "Q: Why?", URL: " https://site/q "},
	}
	return arc
}

func TestNoteSlug(t *testing.T) {
	require.Equal(t, "Q Why", NoteSlug("Q: Why?"))
	require.Equal(t, "a b", NoteSlug("a b"))
	require.Equal(t, "tagsand hashes", NoteSlug("  #tags/and ^hashes  "))
	require.Equal(t, "", NoteSlug(`<>:"/\|?*#^`))
	require.Len(t, []rune(NoteSlug(strings.Repeat("a", 250))), MaxSlugLength)
}

func TestSlugs_TruncationBounds(t *testing.T) {
	cut := strings.Repeat("a", MaxSlugLength-1) + " tail"
	require.Equal(t, strings.Repeat("a", MaxSlugLength-1), NoteSlug(cut), "no blank left at the cut")

	wide := NoteSlug(strings.Repeat("é", 250))
	require.LessOrEqual(t, len(wide), MaxSlugBytes)
	require.True(t, utf8.ValidString(wide))
	require.Len(t, []rune(wide), MaxSlugBytes/2)

	require.LessOrEqual(t, len(HTMLSlug(strings.Repeat("Ä ", 150))), MaxSlugBytes)
}

func TestHTMLSlug(t *testing.T) {
	require.Equal(t, "q_why", HTMLSlug("Q: Why?"))
	require.Equal(t, "hello_big_world", HTMLSlug("Hello  Big\tWorld"))
	require.Equal(t, "ärger", HTMLSlug("ÄRGER"))
}

func TestSchemes_QualifyAndFile(t *testing.T) {
	require.Equal(t, "Blog/hello-world", NoteScheme.Qualify(archive.Blog, "hello-world"))
	require.Equal(t, "FVP Forum/x.md", NoteScheme.File(archive.ForumA, "x"))
	require.Equal(t, "../general/x.html", HTMLScheme.Qualify(archive.ForumB, "x"))
	require.Equal(t, "general/x.html", HTMLScheme.File(archive.ForumB, "x"))
}

func TestBuild_AssignsEveryDocument(t *testing.T) {
	m := Build(testArchive(), NoteScheme, nil)

	blog := m.Assigned(archive.Blog)
	require.Len(t, blog, 3)
	require.Equal(t, "Hello World", blog[0].Slug)
	require.Equal(t, "Hello World-2", blog[1].Slug)
	require.Equal(t, "untitled-3", blog[2].Slug)
	require.Equal(t, "Blog/Hello World-2", blog[1].Ref)

	got, ok := m.Lookup("https://site/q")
	require.True(t, ok)
	require.Equal(t, "General Forum/Q Why", got.Ref)
}

func TestBuild_CollisionLastWriteWins(t *testing.T) {
	m := Build(testArchive(), NoteScheme, nil)

	got, ok := m.Lookup("https://site/x")
	require.True(t, ok)
	require.Equal(t, archive.ForumA, got.Collection)
	require.Equal(t, "FVP Forum/Shared", got.Ref)

	collisions := m.Collisions()
	require.Len(t, collisions, 1)
	require.Equal(t, "Blog/Hello World", collisions[0].Previous.Ref)
	require.Equal(t, 4, m.Len())
}

func TestBuild_HTMLDedupeIgnoresCase(t *testing.T) {
	arc := archive.New()
	arc.Blog.Documents = []archive.Document{
		{Title: "Release Notes", URL: "a"},
		{Title: "release notes", URL: "b"},
		{Title: "Release Notes-2", URL: "c"},
	}
	m := Build(arc, HTMLScheme, nil)
	slugs := []string{}
	for _, tgt := range m.Assigned(archive.Blog) {
		slugs = append(slugs, tgt.Slug)
	}
	require.Equal(t, []string{"release_notes", "release_notes-2", "release_notes-2-2"}, slugs)
}

func TestMap_NilIsEmpty(t *testing.T) {
	var m *Map
	_, ok := m.Lookup("x")
	require.False(t, ok)
	require.Zero(t, m.Len())
	require.Nil(t, m.Assigned(archive.Blog))
}

func TestBuild_HTMLReservesIndexSlug(t *testing.T) {
	arc := archive.New()
	arc.Blog.Documents = []archive.Document{
		{ID: "1", Title: "Index", URL: "https://site/index"},
		{ID: "2", Title: "index", URL: "https://site/index-again"},
	}

	html := Build(arc, HTMLScheme, nil).Assigned(archive.Blog)
	require.Equal(t, "index-2", html[0].Slug)
	require.Equal(t, "blog/index-2.html", html[0].File)
	require.Equal(t, "index-3", html[1].Slug)

	notes := Build(arc, NoteScheme, nil).Assigned(archive.Blog)
	require.Equal(t, "Index", notes[0].Slug, "note vault indexes live outside collection directories")
}
