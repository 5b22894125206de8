package archive

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/forumarchive/internal/foundation/errors"
	"git.home.luguber.info/inful/forumarchive/internal/logfields"
)

// Layout locates the raw snapshot files on disk.
type Layout struct {
	// Dir is the directory holding the snapshot files.
	Dir string
	// Files maps each collection to its file name inside Dir.
	Files map[CollectionKind]string
}

// DefaultLayout returns the conventional file names inside dir.
func DefaultLayout(dir string) Layout {
	return Layout{
		Dir: dir,
		Files: map[CollectionKind]string{
			Blog:   "blog.json",
			ForumA: "fvp_forum.json",
			ForumB: "general_forum.json",
		},
	}
}

// Path returns the snapshot path for kind.
func (l Layout) Path(kind CollectionKind) string {
	name, ok := l.Files[kind]
	if !ok || name == "" {
		name = DefaultLayout("").Files[kind]
	}
	return filepath.Join(l.Dir, name)
}

type blogSnapshot struct {
	Posts []Document `json:"posts"`
}

type forumSnapshot struct {
	Topics []Document `json:"topics"`
}

// Load reads all three snapshots. A missing file yields an empty collection;
// a file that does not decode is a fatal archive error.
func Load(fsys afero.Fs, layout Layout, logger *slog.Logger) (*Archive, error) {
	if logger == nil {
		logger = slog.Default()
	}
	arc := New()
	for _, kind := range Kinds {
		path := layout.Path(kind)
		f, err := fsys.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				logger.Warn("Snapshot missing, collection will be empty", logfields.Collection(kind.Key()), logfields.Path(path))
				continue
			}
			return nil, errors.WrapError(err, errors.CategoryArchive, "open snapshot").
				Fatal().WithContext("path", path).Build()
		}
		coll, err := Decode(kind, f)
		_ = f.Close()
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryArchive, "decode snapshot").
				Fatal().WithContext("path", path).WithContext("collection", kind.Key()).Build()
		}
		*arc.Collection(kind) = coll
		logger.Debug("Loaded snapshot", logfields.Collection(kind.Key()), logfields.Path(path), logfields.Count(coll.Len()))
	}
	return arc, nil
}

// Decode reads one snapshot: {"posts": [...]} for the blog and
// {"topics": [...]} for a forum.
func Decode(kind CollectionKind, r io.Reader) (Collection, error) {
	var docs []Document
	dec := json.NewDecoder(r)
	if kind.DocumentKind() == KindPost {
		var snap blogSnapshot
		if err := dec.Decode(&snap); err != nil {
			return Collection{}, err
		}
		docs = snap.Posts
	} else {
		var snap forumSnapshot
		if err := dec.Decode(&snap); err != nil {
			return Collection{}, err
		}
		docs = snap.Topics
	}
	for i := range docs {
		docs[i].normalize(kind.DocumentKind())
	}
	return Collection{Kind: kind, Documents: docs}, nil
}
