package frontmatterops

import (
	"strings"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/forumarchive/internal/frontmatter"
)

// FingerprintField is the front matter key holding the content fingerprint.
const FingerprintField = mdfp.FingerprintField

// ComputeFingerprint hashes the front matter and body of a note.
//
// The fingerprint and uid fields are left out of the hash, the YAML is
// serialized with LF newlines in field order and a single trailing newline is
// trimmed before hashing.
func ComputeFingerprint(fields frontmatter.Fields, body string) (string, error) {
	hashed := fields.Without(FingerprintField, UIDField)
	front := ""
	if len(hashed) > 0 {
		raw, err := frontmatter.Marshal(hashed, frontmatter.Style{Newline: "\n"})
		if err != nil {
			return "", err
		}
		front = strings.TrimSuffix(string(raw), "\n")
	}
	return mdfp.CalculateFingerprintFromParts(front, body), nil
}

// Stamp computes the fingerprint and stores it in fields.
func Stamp(fields *frontmatter.Fields, body string) (string, error) {
	fp, err := ComputeFingerprint(*fields, body)
	if err != nil {
		return "", err
	}
	fields.Set(FingerprintField, fp)
	return fp, nil
}

// Verify reports whether the stored fingerprint matches the content.
func Verify(fields frontmatter.Fields, body string) (bool, error) {
	stored, ok := fields.Get(FingerprintField)
	if !ok {
		return false, nil
	}
	fp, err := ComputeFingerprint(fields, body)
	if err != nil {
		return false, err
	}
	s, _ := stored.(string)
	return strings.TrimSpace(s) == fp, nil
}
