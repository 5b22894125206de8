package linkverify

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/forumarchive/internal/foundation/errors"
)

// Link represents an extracted link from HTML content.
type Link struct {
	URL        string // The URL or path
	Text       string // Link text/title
	Tag        string // HTML tag (a, img, link, etc.)
	Attribute  string // Attribute containing the link (href, src)
	IsInternal bool   // True if link is relative or points at the origin
	Line       int    // Approximate element index in the document
}

// ExtractLinksFromReader extracts all links from an HTML reader.
func ExtractLinksFromReader(r io.Reader, baseURL string) ([]*Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to parse HTML").WithSeverity(errors.SeverityError).Build()
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "invalid base URL").WithSeverity(errors.SeverityError).WithContext("base_url", baseURL).Build()
	}

	var links []*Link
	var lineNum int

	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.ElementNode {
			lineNum++
			extractElementLinks(n, &links, base, lineNum)
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}

	extract(doc)
	return links, nil
}

// linkAttributes maps elements to the attribute carrying their link.
var linkAttributes = map[string]string{
	"a":      "href",
	"link":   "href",
	"img":    "src",
	"script": "src",
	"video":  "src",
	"audio":  "src",
	"source": "src",
}

// extractElementLinks extracts links from a single HTML element.
func extractElementLinks(n *html.Node, links *[]*Link, base *url.URL, lineNum int) {
	attr, ok := linkAttributes[n.Data]
	if !ok {
		return
	}
	target := getAttr(n, attr)
	if target == "" {
		return
	}

	var text string
	switch n.Data {
	case "a":
		text = extractText(n)
	case "img":
		text = getAttr(n, "alt")
	case "link":
		text = getAttr(n, "rel")
	}

	*links = append(*links, &Link{
		URL:        target,
		Text:       text,
		Tag:        n.Data,
		Attribute:  attr,
		IsInternal: isInternalLink(target, base),
		Line:       lineNum,
	})
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// extractText extracts text content from an HTML node and its children.
func extractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}

	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text.WriteString(extractText(c))
	}

	return strings.TrimSpace(text.String())
}

// isInternalLink reports whether a URL is relative or addresses the origin host.
func isInternalLink(linkURL string, baseURL *url.URL) bool {
	u, err := url.Parse(linkURL)
	if err != nil {
		return false
	}

	if u.Scheme == "" && u.Host == "" {
		return true
	}

	if baseURL != nil && baseURL.Host != "" && strings.EqualFold(u.Host, baseURL.Host) {
		return true
	}

	return false
}

// ShouldVerifyLink determines if a link is worth checking at all.
func ShouldVerifyLink(link *Link) bool {
	if link.URL == "" {
		return false
	}

	// Skip anchors
	if strings.HasPrefix(link.URL, "#") {
		return false
	}

	// Skip special protocols
	lower := strings.ToLower(link.URL)
	for _, prefix := range []string{"mailto:", "tel:", "javascript:", "data:"} {
		if strings.HasPrefix(lower, prefix) {
			return false
		}
	}

	return true
}
