package render

import (
	"bytes"
	"html/template"

	"git.home.luguber.info/inful/forumarchive/internal/archive"
)

// NavItem is one entry of the page navigation.
type NavItem struct {
	Title   string
	Href    string
	Current bool
}

// Page is the shared HTML shell around page content.
type Page struct {
	Title     string
	SiteTitle string
	// Root is the relative path from the page to the site root ("" or "../").
	Root    string
	Nav     []NavItem
	Content template.HTML
	Footer  string
}

// Nav links every collection index relative to root.
func Nav(root string, current archive.CollectionKind, hasCurrent bool) []NavItem {
	items := make([]NavItem, 0, len(archive.Kinds))
	for _, k := range archive.Kinds {
		items = append(items, NavItem{
			Title:   k.Title(),
			Href:    root + k.Dir() + "/index.html",
			Current: hasCurrent && k == current,
		})
	}
	return items
}

// RenderPage executes the page shell.
func RenderPage(p Page) ([]byte, error) {
	if p.Footer == "" {
		p.Footer = "Static archive of " + p.SiteTitle
	}
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Stylesheet returns the generated site stylesheet.
func Stylesheet() []byte {
	data, err := templateFS.ReadFile("templates/style.css")
	if err != nil {
		// Embedded at build time; a missing file is a packaging bug.
		panic(err)
	}
	return data
}
