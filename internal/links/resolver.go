// Package links classifies anchors found in source bodies and resolves the
// ones that point into the archive to their rendered targets.
package links

import (
	"net/url"
	"strings"

	"git.home.luguber.info/inful/forumarchive/internal/idmap"
)

// Kind classifies one href.
type Kind int

const (
	// KindEmpty is an anchor with no usable href; it renders as its text.
	KindEmpty Kind = iota
	// KindInternal points at an archived document and is rewritten.
	KindInternal
	// KindDangling points at the origin site but matches no document.
	KindDangling
	// KindExternal points somewhere else and is kept as is.
	KindExternal
	// KindMalformed could not be parsed; it renders as text plus the raw href.
	KindMalformed
)

// Kinds lists every classification in reporting order.
var Kinds = []Kind{KindInternal, KindDangling, KindExternal, KindMalformed, KindEmpty}

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindInternal:
		return "internal"
	case KindDangling:
		return "dangling"
	case KindExternal:
		return "external"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Resolution is the outcome of resolving one href.
type Resolution struct {
	Kind Kind
	// Href is the trimmed source href.
	Href string
	// Target is set for KindInternal.
	Target idmap.Target
	// Fragment holds "#anchor" from the source href, if any.
	Fragment string
}

// Internal reports whether the href was rewritten to an archived document.
func (r Resolution) Internal() bool { return r.Kind == KindInternal }

// Resolver resolves hrefs against one origin site and identifier map.
// It never fails; every href gets exactly one Kind.
type Resolver struct {
	origin   *url.URL
	ids      *idmap.Map
	observer func(Resolution)
}

// NewResolver creates a resolver. An origin that does not parse as an
// absolute URL leaves only host-less hrefs resolvable.
func NewResolver(origin string, ids *idmap.Map) *Resolver {
	r := &Resolver{ids: ids}
	if u, err := url.Parse(strings.TrimSpace(origin)); err == nil && u.Host != "" {
		r.origin = u
	}
	return r
}

// WithObserver registers fn to see every resolution, for counting.
func (r *Resolver) WithObserver(fn func(Resolution)) *Resolver {
	r.observer = fn
	return r
}

// Resolve classifies href and looks internal candidates up in the map.
func (r *Resolver) Resolve(href string) Resolution {
	res := r.resolve(href)
	if r.observer != nil {
		r.observer(res)
	}
	return res
}

func (r *Resolver) resolve(href string) Resolution {
	href = strings.TrimSpace(href)
	res := Resolution{Href: href}
	if href == "" {
		res.Kind = KindEmpty
		return res
	}

	u, err := url.Parse(href)
	if err != nil || strings.ContainsAny(href, " \t\r\n") {
		res.Kind = KindMalformed
		return res
	}
	if u.Fragment != "" {
		res.Fragment = "#" + u.EscapedFragment()
	}

	if !r.pointsAtOrigin(u) {
		res.Kind = KindExternal
		return res
	}

	for _, candidate := range r.candidates(href, u) {
		if t, ok := r.ids.Lookup(candidate); ok {
			res.Kind = KindInternal
			res.Target = t
			return res
		}
	}
	res.Kind = KindDangling
	return res
}

// pointsAtOrigin reports whether u is relative or addresses the origin host.
func (r *Resolver) pointsAtOrigin(u *url.URL) bool {
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https":
	default:
		return false
	}
	if u.Host == "" {
		return true
	}
	return r.origin != nil && strings.EqualFold(u.Host, r.origin.Host)
}

// candidates lists the lookup keys for href in preference order: as written,
// without fragment, and absolutized against the origin.
func (r *Resolver) candidates(href string, u *url.URL) []string {
	out := []string{href}
	add := func(s string) {
		for _, c := range out {
			if c == s {
				return
			}
		}
		out = append(out, s)
	}
	add(withoutFragment(u))
	if r.origin != nil && u.Scheme == "" {
		abs := r.origin.ResolveReference(u)
		add(abs.String())
		add(withoutFragment(abs))
	}
	return out
}

func withoutFragment(u *url.URL) string {
	c := *u
	c.Fragment = ""
	c.RawFragment = ""
	return c.String()
}

// Resolve is a convenience for one-off resolution.
func Resolve(href, origin string, ids *idmap.Map) Resolution {
	return NewResolver(origin, ids).Resolve(href)
}
