package archive

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/forumarchive/internal/foundation/errors"
)

const blogJSON = `{"posts": [
  {"id": 7, "title": " Hello World ", "url": "https://site/x", "date": "2020-01-01",
   "body": "<p>Hi</p>", "tags": ["intro", " "],
   "comments": [{"author": "ann", "date": "2020-01-02 10:00", "body": "nice"}]}
]}`

const forumJSON = `{"topics": [
  {"id": "t1", "title": "Question", "url": "https://site/forum/t1",
   "replies": [
     {"author": "bob", "date": "2020-01-01", "body": "<p>first</p>"},
     {"author": "cy", "date": "2020-01-02", "body": "<p>second</p>"},
     {"author": "dee", "date": "2020-01-05", "body": "<p>third</p>"}
   ]}
]}`

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

func TestLoad_ReadsAllCollections(t *testing.T) {
	fs := afero.NewMemMapFs()
	layout := DefaultLayout("/raw")
	writeFile(t, fs, "/raw/blog.json", blogJSON)
	writeFile(t, fs, "/raw/fvp_forum.json", forumJSON)
	writeFile(t, fs, "/raw/general_forum.json", `{"topics": []}`)

	arc, err := Load(fs, layout, nil)
	require.NoError(t, err)

	require.Equal(t, 1, arc.Blog.Len())
	post := arc.Blog.Documents[0]
	require.Equal(t, KindPost, post.Kind)
	require.Equal(t, ID("7"), post.ID)
	require.Equal(t, "Hello World", post.Title)
	require.Equal(t, []string{"intro"}, post.CleanTags())
	require.Len(t, post.Comments, 1)
	require.Equal(t, NewDateStamp(2020, 1, 2, "10:00"), post.Comments[0].Date)

	require.Equal(t, 1, arc.ForumA.Len())
	topic := arc.ForumA.Documents[0]
	require.True(t, topic.IsTopic())
	require.Equal(t, "bob", topic.Author, "author falls back to the original poster")
	require.Equal(t, NewDateStamp(2020, 1, 1, ""), topic.Date, "date falls back to the original post")
	require.Equal(t, NewDateStamp(2020, 1, 5, ""), topic.LastActivity())
	require.Equal(t, 2, topic.ReplyCount())

	require.Equal(t, 0, arc.ForumB.Len())
	require.Equal(t, 2, arc.Total())
}

func TestLoad_MissingSnapshotIsEmptyCollection(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/raw/blog.json", blogJSON)

	arc, err := Load(fs, DefaultLayout("/raw"), nil)
	require.NoError(t, err)
	require.Equal(t, 1, arc.Blog.Len())
	require.Equal(t, 0, arc.ForumA.Len())
	require.Equal(t, ForumB, arc.ForumB.Kind)
}

func TestLoad_InvalidJSONIsArchiveError(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/raw/blog.json", `{"posts": [`)

	_, err := Load(fs, DefaultLayout("/raw"), nil)
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryArchive))
}

func TestLayout_PathFallsBackToDefaultName(t *testing.T) {
	l := Layout{Dir: "/data", Files: map[CollectionKind]string{Blog: "b.json"}}
	require.Equal(t, "/data/b.json", l.Path(Blog))
	require.Equal(t, "/data/general_forum.json", l.Path(ForumB))
}

func TestDecode_TopicWithoutReplies(t *testing.T) {
	coll, err := Decode(ForumB, strings.NewReader(`{"topics": [{"id": 3, "title": "Empty", "date": "2020-01-03"}]}`))
	require.NoError(t, err)
	require.Len(t, coll.Documents, 1)
	doc := coll.Documents[0]
	require.Equal(t, 0, doc.ReplyCount())
	require.Equal(t, doc.Date, doc.LastActivity())
}

func TestArchive_TruncateDoesNotMutate(t *testing.T) {
	arc := New()
	arc.Blog.Documents = []Document{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	arc.ForumA.Documents = []Document{{ID: "a"}}

	cut := arc.Truncate(2)
	require.Equal(t, 2, cut.Blog.Len())
	require.Equal(t, 1, cut.ForumA.Len())
	require.Equal(t, 3, arc.Blog.Len())

	cut.Blog.Documents[0].Title = "changed"
	require.Empty(t, arc.Blog.Documents[0].Title)

	require.Same(t, arc, arc.Truncate(0))
}

func TestArchive_Stats(t *testing.T) {
	arc := New()
	arc.ForumB.Documents = []Document{{}, {}}
	stats := arc.Stats()
	require.Equal(t, []Stat{{Kind: Blog, Count: 0}, {Kind: ForumA, Count: 0}, {Kind: ForumB, Count: 2}}, stats)
}
