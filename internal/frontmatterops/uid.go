// Package frontmatterops derives the stable identity fields written into
// note front matter.
package frontmatterops

import (
	"strings"

	"github.com/google/uuid"
)

// UIDField is the front matter key holding the document uid.
const UIDField = "uid"

// DocumentUID returns a uid that stays the same across runs for the same
// source document. It is a name-based UUID of the canonical URL; documents
// without one fall back to their collection-scoped id.
func DocumentUID(canonicalURL, collection, id string) string {
	if u := strings.TrimSpace(canonicalURL); u != "" {
		return uuid.NewSHA1(uuid.NameSpaceURL, []byte(u)).String()
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(collection+"/"+id)).String()
}

// NewRunID returns a random identifier for one render run.
func NewRunID() string {
	return uuid.NewString()
}
