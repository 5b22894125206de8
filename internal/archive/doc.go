// Package archive holds the in-memory model of an archived blog and its two
// forums, and decodes the JSON snapshots they are persisted as.
//
// The model is read once per run and never mutated by rendering: blog posts
// and forum topics share the Document type, distinguished by Kind.
package archive
