package frontmatter

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Field is one front matter entry.
type Field struct {
	Key   string
	Value any
}

// Fields is an ordered front matter block; keys are written in slice order.
type Fields []Field

// Set replaces the value of key, or appends it.
func (f *Fields) Set(key string, value any) {
	for i := range *f {
		if (*f)[i].Key == key {
			(*f)[i].Value = value
			return
		}
	}
	*f = append(*f, Field{Key: key, Value: value})
}

// Get returns the value of key.
func (f Fields) Get(key string) (any, bool) {
	for _, fld := range f {
		if fld.Key == key {
			return fld.Value, true
		}
	}
	return nil, false
}

// Without returns a copy of f lacking the given keys.
func (f Fields) Without(keys ...string) Fields {
	out := make(Fields, 0, len(f))
	for _, fld := range f {
		skip := false
		for _, k := range keys {
			if fld.Key == k {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, fld)
		}
	}
	return out
}

// Marshal serializes fields as YAML without delimiters, keeping field order.
// Output ends in a newline; an empty block yields no bytes.
func Marshal(fields Fields, style Style) ([]byte, error) {
	if len(fields) == 0 {
		return []byte{}, nil
	}
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, fld := range fields {
		val, err := nodeFromAny(fld.Value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", fld.Key, err)
		}
		root.Content = append(root.Content, strNode(fld.Key), val)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	out := buf.Bytes()
	if nl := style.newline(); nl != "\n" {
		out = bytes.ReplaceAll(out, []byte("\n"), []byte(nl))
	}
	return out, nil
}

// Render produces a full note: delimited front matter followed by body.
func Render(fields Fields, body string) ([]byte, error) {
	front, err := Marshal(fields, Style{Newline: "\n"})
	if err != nil {
		return nil, err
	}
	doc := Document{Front: front, Body: []byte(body), Had: true}
	return doc.Bytes(), nil
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func nodeFromAny(v any) (*yaml.Node, error) {
	switch vv := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case string:
		n := strNode(vv)
		if strings.Contains(vv, "\n") {
			n.Style = yaml.DoubleQuotedStyle
		}
		return n, nil
	case fmt.Stringer:
		return strNode(vv.String()), nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(vv)}, nil
	case int:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(vv)}, nil
	case int64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(vv, 10)}, nil
	case float64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(vv, 'g', -1, 64)}, nil
	case []string:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range vv {
			seq.Content = append(seq.Content, strNode(item))
		}
		return seq, nil
	case []any:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range vv {
			n, err := nodeFromAny(item)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, n)
		}
		return seq, nil
	case Fields:
		m := &yaml.Node{Kind: yaml.MappingNode}
		for _, fld := range vv {
			n, err := nodeFromAny(fld.Value)
			if err != nil {
				return nil, err
			}
			m.Content = append(m.Content, strNode(fld.Key), n)
		}
		return m, nil
	case map[string]any:
		keys := make([]string, 0, len(vv))
		for k := range vv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := &yaml.Node{Kind: yaml.MappingNode}
		for _, k := range keys {
			n, err := nodeFromAny(vv[k])
			if err != nil {
				return nil, err
			}
			m.Content = append(m.Content, strNode(k), n)
		}
		return m, nil
	default:
		var n yaml.Node
		if err := n.Encode(v); err != nil {
			return nil, err
		}
		return &n, nil
	}
}
