// Package idmap maps canonical source URLs to the collection-qualified
// identifiers documents receive in a rendered output.
package idmap

import (
	"fmt"
	"log/slog"
	"strings"

	"git.home.luguber.info/inful/forumarchive/internal/archive"
	"git.home.luguber.info/inful/forumarchive/internal/logfields"
)

// Target is where a document lives in one output dialect.
type Target struct {
	Collection archive.CollectionKind
	Slug       string
	// Ref is the qualified reference used by links (note target or relative path).
	Ref string
	// File is the output path relative to the dialect's output root.
	File string
}

// Collision records a canonical URL claimed by more than one document.
type Collision struct {
	URL      string
	Previous Target
	Winner   Target
}

// Map is the read-only URL to Target mapping of one render run.
type Map struct {
	scheme     Scheme
	entries    map[string]Target
	assigned   map[archive.CollectionKind][]Target
	collisions []Collision
}

// Scheme returns the naming scheme the map was built with.
func (m *Map) Scheme() Scheme { return m.scheme }

// Lookup finds the target for a canonical URL. Keys match exactly after trimming.
func (m *Map) Lookup(url string) (Target, bool) {
	if m == nil {
		return Target{}, false
	}
	t, ok := m.entries[strings.TrimSpace(url)]
	return t, ok
}

// Len returns the number of URL entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Assigned returns the targets of a collection, aligned with its document order.
func (m *Map) Assigned(kind archive.CollectionKind) []Target {
	if m == nil {
		return nil
	}
	return m.assigned[kind]
}

// Collisions lists URLs that more than one document claimed. The later
// document won each of them.
func (m *Map) Collisions() []Collision {
	if m == nil {
		return nil
	}
	out := make([]Collision, len(m.collisions))
	copy(out, m.collisions)
	return out
}

// Build assigns every document a Target and indexes it by canonical URL.
//
// Collections are visited Blog, ForumA, ForumB. When two documents share a
// canonical URL the later one wins; the overwritten entry is kept in
// Collisions. Within one collection a slug already taken, or reserved by the
// scheme, gets a numeric suffix so no two files share an output path.
func Build(arc *archive.Archive, scheme Scheme, logger *slog.Logger) *Map {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Map{
		scheme:   scheme,
		entries:  make(map[string]Target),
		assigned: make(map[archive.CollectionKind][]Target, len(archive.Kinds)),
	}
	for _, kind := range archive.Kinds {
		coll := arc.Collection(kind)
		used := make(map[string]int, len(coll.Documents)+len(scheme.Reserved))
		for _, r := range scheme.Reserved {
			used[strings.ToLower(r)] = 1
		}
		targets := make([]Target, len(coll.Documents))
		for i := range coll.Documents {
			doc := &coll.Documents[i]
			slug := uniqueSlug(baseSlug(scheme, doc), used)
			t := Target{
				Collection: kind,
				Slug:       slug,
				Ref:        scheme.Qualify(kind, slug),
				File:       scheme.File(kind, slug),
			}
			targets[i] = t

			url := doc.CanonicalURL()
			if url == "" {
				continue
			}
			if prev, exists := m.entries[url]; exists {
				m.collisions = append(m.collisions, Collision{URL: url, Previous: prev, Winner: t})
				logger.Warn("Canonical URL shared by several documents, last one wins",
					logfields.URL(url), logfields.Collection(kind.Key()), logfields.Document(doc.ID.String()))
			}
			m.entries[url] = t
		}
		m.assigned[kind] = targets
	}
	return m
}

func baseSlug(scheme Scheme, doc *archive.Document) string {
	if s := scheme.Slug(doc.Title); s != "" {
		return s
	}
	id := doc.ID.String()
	if id == "" {
		id = "document"
	}
	return scheme.Slug("untitled-" + id)
}

// uniqueSlug appends -2, -3, ... until the slug is unused. Comparison ignores
// case so outputs survive case-insensitive filesystems.
func uniqueSlug(slug string, used map[string]int) string {
	key := strings.ToLower(slug)
	if _, taken := used[key]; !taken {
		used[key] = 1
		return slug
	}
	for n := used[key] + 1; ; n++ {
		candidate := fmt.Sprintf("%s-%d", slug, n)
		ckey := strings.ToLower(candidate)
		if _, taken := used[ckey]; !taken {
			used[key] = n
			used[ckey] = 1
			return candidate
		}
	}
}
