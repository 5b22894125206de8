package markdown

import (
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// ExtractLinks returns inline links, images, autolinks and reference
// definitions. Links inside code spans and code blocks are not reported.
func ExtractLinks(body []byte, _ Options) ([]Link, error) {
	ctx := parser.NewContext()
	root := goldmark.New().Parser().Parse(text.NewReader(body), parser.WithContext(ctx))

	links := make([]Link, 0)
	err := gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, Link{Kind: LinkKindAuto, Destination: string(node.URL(body))})
		case *gmast.Image:
			links = append(links, Link{Kind: LinkKindImage, Destination: string(node.Destination)})
		case *gmast.Link:
			links = append(links, Link{Kind: LinkKindInline, Destination: string(node.Destination)})
		}
		return gmast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	// Reference definitions live in the parse context, not the AST.
	refs := ctx.References()
	sort.Slice(refs, func(i, j int) bool {
		return string(refs[i].Label()) < string(refs[j].Label())
	})
	for _, ref := range refs {
		links = append(links, Link{Kind: LinkKindReferenceDefinition, Destination: string(ref.Destination())})
	}
	return links, nil
}

var wikiLinkPattern = regexp.MustCompile(`\[\[([^\[\]|]+)(?:\|([^\[\]]*))?\]\]`)

// ExtractWikiLinks returns [[target|text]] links found in prose. goldmark
// leaves them as literal text, so the text of each block is scanned after
// parsing; code spans and code blocks are skipped.
func ExtractWikiLinks(body []byte, _ Options) ([]Link, error) {
	root := goldmark.New().Parser().Parse(text.NewReader(body))

	links := make([]Link, 0)
	err := gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch n.Kind() {
		case gmast.KindParagraph, gmast.KindHeading, gmast.KindTextBlock:
			for _, m := range wikiLinkPattern.FindAllStringSubmatch(blockText(n, body), -1) {
				links = append(links, Link{
					Kind:        LinkKindWiki,
					Destination: strings.TrimSpace(m[1]),
					Text:        m[2],
				})
			}
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	return links, nil
}

// blockText concatenates the literal text below n, skipping code spans.
func blockText(n gmast.Node, source []byte) string {
	var b strings.Builder
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := c.(type) {
		case *gmast.CodeSpan:
			b.WriteString(" ")
			return gmast.WalkSkipChildren, nil
		case *gmast.Text:
			b.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteString("\n")
			}
		case *gmast.String:
			b.Write(node.Value)
		}
		return gmast.WalkContinue, nil
	})
	return b.String()
}
