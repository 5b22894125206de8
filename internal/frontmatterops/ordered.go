package frontmatterops

import (
	"errors"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/forumarchive/internal/frontmatter"
)

var errNotMapping = errors.New("front matter is not a mapping")

// orderedFields decodes a YAML mapping keeping key order. Scalars decode to
// strings, ints or bools as yaml.v3 resolves them; sequences to []any.
func orderedFields(raw []byte) (frontmatter.Fields, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errNotMapping
	}
	fields := make(frontmatter.Fields, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		var v any
		if err := root.Content[i+1].Decode(&v); err != nil {
			return nil, err
		}
		if seq, ok := v.([]any); ok {
			v = stringsIfPossible(seq)
		}
		fields = append(fields, frontmatter.Field{Key: root.Content[i].Value, Value: v})
	}
	return fields, nil
}

// stringsIfPossible narrows a decoded sequence to []string so it serializes
// exactly as it was written.
func stringsIfPossible(seq []any) any {
	out := make([]string, 0, len(seq))
	for _, item := range seq {
		s, ok := item.(string)
		if !ok {
			return seq
		}
		out = append(out, s)
	}
	return out
}
