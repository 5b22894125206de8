package frontmatterops

import (
	"fmt"

	"git.home.luguber.info/inful/forumarchive/internal/frontmatter"
)

// Read splits a rendered note into ordered fields and body.
//
// Keys keep the order they appear in the file. A note without front matter
// yields no fields and the full input as body.
func Read(content []byte) (frontmatter.Fields, string, error) {
	doc, err := frontmatter.Split(content)
	if err != nil {
		return nil, "", err
	}
	if !doc.Had || len(doc.Front) == 0 {
		return nil, string(doc.Body), nil
	}
	fields, err := orderedFields(doc.Front)
	if err != nil {
		return nil, "", err
	}
	return fields, string(doc.Body), nil
}

// Write stamps the fingerprint and renders the note.
func Write(fields frontmatter.Fields, body string) ([]byte, error) {
	if _, err := Stamp(&fields, body); err != nil {
		return nil, fmt.Errorf("fingerprint: %w", err)
	}
	return frontmatter.Render(fields, body)
}
