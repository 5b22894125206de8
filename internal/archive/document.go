package archive

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Kind distinguishes blog posts from forum topics.
type Kind int

const (
	KindPost Kind = iota
	KindTopic
)

func (k Kind) String() string {
	if k == KindTopic {
		return "topic"
	}
	return "post"
}

// ID is a document identifier. Snapshots store it as a string or a number.
type ID string

// UnmarshalJSON accepts JSON strings and numbers.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Entry is one authored body: a blog comment or a forum reply.
type Entry struct {
	Author string    `json:"author"`
	Date   DateStamp `json:"date"`
	Body   string    `json:"body"`
}

// Document is a blog Post or a forum Topic.
//
// For topics Replies holds every post in thread order; the first one is the
// original post. Blog posts carry their own Body and optional Comments.
type Document struct {
	Kind     Kind      `json:"-"`
	ID       ID        `json:"id"`
	Title    string    `json:"title"`
	URL      string    `json:"url"`
	Author   string    `json:"author,omitempty"`
	Date     DateStamp `json:"date"`
	Body     string    `json:"body,omitempty"`
	Tags     []string  `json:"tags,omitempty"`
	Comments []Entry   `json:"comments,omitempty"`
	Replies  []Entry   `json:"replies,omitempty"`
}

// IsTopic reports whether d is a forum topic.
func (d *Document) IsTopic() bool { return d.Kind == KindTopic }

// CanonicalURL is the source-site URL used as the cross-reference key.
func (d *Document) CanonicalURL() string { return strings.TrimSpace(d.URL) }

// LastActivity is the date of the last reply for topics with replies, and
// the document's own date otherwise.
func (d *Document) LastActivity() DateStamp {
	if d.IsTopic() && len(d.Replies) > 0 {
		return d.Replies[len(d.Replies)-1].Date
	}
	return d.Date
}

// ReplyCount is the number of replies after the original post.
func (d *Document) ReplyCount() int {
	if len(d.Replies) == 0 {
		return 0
	}
	return len(d.Replies) - 1
}

// HasTags reports whether at least one non-blank tag is present.
func (d *Document) HasTags() bool {
	for _, t := range d.Tags {
		if strings.TrimSpace(t) != "" {
			return true
		}
	}
	return false
}

// CleanTags returns the non-blank, trimmed tags in their original order.
func (d *Document) CleanTags() []string {
	out := make([]string, 0, len(d.Tags))
	for _, t := range d.Tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalize fills fields older snapshots leave out.
func (d *Document) normalize(kind Kind) {
	d.Kind = kind
	d.Title = strings.TrimSpace(d.Title)
	if kind == KindTopic && len(d.Replies) > 0 {
		first := d.Replies[0]
		if d.Date.IsZero() {
			d.Date = first.Date
		}
		if strings.TrimSpace(d.Author) == "" {
			d.Author = first.Author
		}
	}
}
