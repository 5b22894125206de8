// Package frontmatter reads and writes the YAML block that opens every
// rendered note.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// Style records the newline convention of a document.
type Style struct {
	Newline            string
	HasTrailingNewline bool
}

func (s Style) newline() string {
	if s.Newline == "" {
		return "\n"
	}
	return s.Newline
}

// Document is a note split into its raw front matter and body.
type Document struct {
	Front []byte
	Body  []byte
	// Had is false when the input did not open with a delimiter.
	Had   bool
	Style Style
}

// ErrMissingClosingDelimiter is returned when a front matter block is opened
// but never closed.
var ErrMissingClosingDelimiter = errors.New("front matter opened with --- but never closed")

// Split separates `---` delimited front matter from the body. Input without
// an opening delimiter is returned as body with Had unset.
func Split(content []byte) (Document, error) {
	doc := Document{Style: detectStyle(content)}
	nl := doc.Style.newline()
	delim := []byte("---" + nl)

	if !bytes.HasPrefix(content, delim) {
		doc.Body = content
		return doc, nil
	}
	rest := content[len(delim):]
	if bytes.HasPrefix(rest, delim) {
		doc.Had = true
		doc.Front = []byte{}
		doc.Body = rest[len(delim):]
		return doc, nil
	}

	closing := []byte(nl + "---" + nl)
	idx := bytes.Index(rest, closing)
	if idx < 0 {
		return Document{Style: doc.Style}, ErrMissingClosingDelimiter
	}
	doc.Had = true
	doc.Front = rest[:idx+len(nl)]
	doc.Body = rest[idx+len(closing):]
	return doc, nil
}

// Bytes reassembles the document. Without front matter the body is returned as is.
func (d Document) Bytes() []byte {
	if !d.Had {
		return d.Body
	}
	delim := "---" + d.Style.newline()
	out := make([]byte, 0, 2*len(delim)+len(d.Front)+len(d.Body))
	out = append(out, delim...)
	out = append(out, d.Front...)
	out = append(out, delim...)
	out = append(out, d.Body...)
	return out
}

// Fields decodes the raw front matter into a map.
func (d Document) Fields() (map[string]any, error) {
	return ParseYAML(d.Front)
}

// ParseYAML decodes raw front matter (without delimiters).
func ParseYAML(front []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(front) == 0 {
		return fields, nil
	}
	if err := yaml.Unmarshal(front, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

func detectStyle(content []byte) Style {
	s := Style{Newline: "\n"}
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		s.Newline = "\r\n"
	}
	s.HasTrailingNewline = len(content) > 0 && content[len(content)-1] == '\n'
	return s
}
