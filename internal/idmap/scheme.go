package idmap

import "git.home.luguber.info/inful/forumarchive/internal/archive"

// Scheme fixes how one output dialect names and addresses documents.
type Scheme struct {
	// Name identifies the dialect ("notes", "html").
	Name string
	// Slug derives a file-safe identifier from a title.
	Slug func(title string) string
	// Qualify turns a collection and slug into the reference other documents
	// use to link to it.
	Qualify func(kind archive.CollectionKind, slug string) string
	// File is the output path of a document relative to the output root.
	File func(kind archive.CollectionKind, slug string) string
	// Reserved slugs name other files in a collection directory; documents
	// titled like them get a numeric suffix.
	Reserved []string
}

// NoteScheme addresses notes as "<Collection>/<slug>" inside the vault.
var NoteScheme = Scheme{
	Name: "notes",
	Slug: NoteSlug,
	Qualify: func(kind archive.CollectionKind, slug string) string {
		return kind.Title() + "/" + slug
	},
	File: func(kind archive.CollectionKind, slug string) string {
		return kind.Title() + "/" + slug + ".md"
	},
}

// HTMLScheme addresses pages by a path relative to a sibling collection
// directory, valid from any page one level below the site root.
var HTMLScheme = Scheme{
	Name: "html",
	Slug: HTMLSlug,
	Qualify: func(kind archive.CollectionKind, slug string) string {
		return "../" + kind.Dir() + "/" + slug + ".html"
	},
	File: func(kind archive.CollectionKind, slug string) string {
		return kind.Dir() + "/" + slug + ".html"
	},
	// index.html is the collection index page.
	Reserved: []string{"index"},
}
