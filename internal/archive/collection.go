package archive

// CollectionKind names one of the three archived collections.
type CollectionKind int

const (
	Blog CollectionKind = iota
	ForumA
	ForumB
)

// Kinds lists collections in identifier-map insertion order.
var Kinds = []CollectionKind{Blog, ForumA, ForumB}

// Key is the configuration and snapshot key (blog, fvp_forum, general_forum).
func (k CollectionKind) Key() string {
	switch k {
	case Blog:
		return "blog"
	case ForumA:
		return "fvp_forum"
	case ForumB:
		return "general_forum"
	}
	return "unknown"
}

// Title is the display name, also used as the note vault folder.
func (k CollectionKind) Title() string {
	switch k {
	case Blog:
		return "Blog"
	case ForumA:
		return "FVP Forum"
	case ForumB:
		return "General Forum"
	}
	return "Unknown"
}

// Dir is the lowercase directory name used by the static site.
func (k CollectionKind) Dir() string {
	switch k {
	case Blog:
		return "blog"
	case ForumA:
		return "fvp"
	case ForumB:
		return "general"
	}
	return "unknown"
}

// DocumentKind is the shape of documents stored in the collection.
func (k CollectionKind) DocumentKind() Kind {
	if k == Blog {
		return KindPost
	}
	return KindTopic
}

func (k CollectionKind) String() string { return k.Key() }

// Collection is an ordered sequence of documents of one kind.
type Collection struct {
	Kind      CollectionKind
	Documents []Document
}

// Name returns the display name of the collection.
func (c Collection) Name() string { return c.Kind.Title() }

// Len returns the number of documents.
func (c Collection) Len() int { return len(c.Documents) }

// Archive is the full parsed snapshot: the blog and both forums.
type Archive struct {
	Blog   Collection
	ForumA Collection
	ForumB Collection
}

// New returns an empty archive with collection kinds set.
func New() *Archive {
	return &Archive{
		Blog:   Collection{Kind: Blog},
		ForumA: Collection{Kind: ForumA},
		ForumB: Collection{Kind: ForumB},
	}
}

// Collection returns the collection of the given kind.
func (a *Archive) Collection(kind CollectionKind) *Collection {
	switch kind {
	case ForumA:
		return &a.ForumA
	case ForumB:
		return &a.ForumB
	default:
		return &a.Blog
	}
}

// Collections returns the collections in Blog, ForumA, ForumB order.
func (a *Archive) Collections() []Collection {
	return []Collection{a.Blog, a.ForumA, a.ForumB}
}

// Truncate returns a copy of the archive with each collection capped at limit
// documents. A non-positive limit returns the archive unchanged.
func (a *Archive) Truncate(limit int) *Archive {
	if limit <= 0 {
		return a
	}
	out := New()
	for _, kind := range Kinds {
		src := a.Collection(kind).Documents
		if len(src) > limit {
			src = src[:limit]
		}
		docs := make([]Document, len(src))
		copy(docs, src)
		out.Collection(kind).Documents = docs
	}
	return out
}

// Stat is the document count of one collection.
type Stat struct {
	Kind  CollectionKind
	Count int
}

// Stats returns per-collection document counts.
func (a *Archive) Stats() []Stat {
	stats := make([]Stat, 0, len(Kinds))
	for _, kind := range Kinds {
		stats = append(stats, Stat{Kind: kind, Count: a.Collection(kind).Len()})
	}
	return stats
}

// Total returns the number of documents across all collections.
func (a *Archive) Total() int {
	n := 0
	for _, s := range a.Stats() {
		n += s.Count
	}
	return n
}
