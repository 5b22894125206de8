// Package linkverify checks rendered output for links that lead nowhere.
package linkverify

import (
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/forumarchive/internal/foundation/errors"
	"git.home.luguber.info/inful/forumarchive/internal/frontmatter"
	"git.home.luguber.info/inful/forumarchive/internal/markdown"
)

// Problem reasons.
const (
	ReasonMissingTarget = "missing target"
	ReasonOriginLink    = "points at origin"
	ReasonUnparsable    = "unparsable"
)

// Problem is one broken link in one output file.
type Problem struct {
	File   string `json:"file"`
	Link   string `json:"link"`
	Reason string `json:"reason"`
}

// Result summarizes verification of one output root.
type Result struct {
	Dialect  string    `json:"dialect"`
	Files    int       `json:"files_checked"`
	Links    int       `json:"links_checked"`
	Problems []Problem `json:"problems"`
}

// OK reports whether no problems were found.
func (r *Result) OK() bool { return r == nil || len(r.Problems) == 0 }

func (r *Result) add(file, link, reason string) {
	r.Problems = append(r.Problems, Problem{File: file, Link: link, Reason: reason})
}

// VerifyHTML parses every .html file below root and checks that relative
// href and src targets exist. Links still addressing the origin host are
// reported as well, since the static site cannot follow them offline.
func VerifyHTML(fs afero.Fs, root, origin string) (*Result, error) {
	res := &Result{Dialect: "html", Problems: []Problem{}}
	originHost := hostOf(origin)

	err := walkFiles(fs, root, ".html", func(rel string, data []byte) error {
		res.Files++
		links, err := ExtractLinksFromReader(strings.NewReader(string(data)), origin)
		if err != nil {
			return err
		}
		for _, link := range links {
			if !link.IsInternal || !ShouldVerifyLink(link) {
				continue
			}
			res.Links++
			u, err := url.Parse(link.URL)
			if err != nil {
				res.add(rel, link.URL, ReasonUnparsable)
				continue
			}
			if u.Host != "" {
				if strings.EqualFold(u.Host, originHost) {
					res.add(rel, link.URL, ReasonOriginLink)
				}
				continue
			}
			if u.Path == "" {
				continue
			}
			if !exists(fs, root, htmlTarget(rel, u.Path)) {
				res.add(rel, link.URL, ReasonMissingTarget)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// htmlTarget resolves a link path against the linking file, both relative to
// the output root.
func htmlTarget(from, linkPath string) string {
	var p string
	if strings.HasPrefix(linkPath, "/") {
		p = path.Clean(linkPath)
	} else {
		p = path.Join(path.Dir(filepath.ToSlash(from)), linkPath)
	}
	if strings.HasSuffix(linkPath, "/") || p == "." || p == "/" {
		p = path.Join(p, "index.html")
	}
	return strings.TrimPrefix(p, "/")
}

// VerifyNotes checks every .md file below root: each [[target|text]] link
// must name an existing target.md, and markdown links must not lead back to
// the origin or to relative paths the vault cannot resolve.
func VerifyNotes(fs afero.Fs, root, origin string) (*Result, error) {
	res := &Result{Dialect: "notes", Problems: []Problem{}}
	originHost := hostOf(origin)

	err := walkFiles(fs, root, ".md", func(rel string, data []byte) error {
		res.Files++
		doc, err := frontmatter.Split(data)
		if err != nil {
			res.add(rel, "", ReasonUnparsable)
			return nil
		}

		wiki, err := markdown.ExtractWikiLinks(doc.Body, markdown.Options{})
		if err != nil {
			return err
		}
		for _, link := range wiki {
			res.Links++
			if !exists(fs, root, link.Destination+".md") {
				res.add(rel, "[["+link.Destination+"]]", ReasonMissingTarget)
			}
		}

		md, err := markdown.ExtractLinks(doc.Body, markdown.Options{})
		if err != nil {
			return err
		}
		for _, link := range md {
			l := &Link{URL: link.Destination}
			if !ShouldVerifyLink(l) {
				continue
			}
			res.Links++
			u, err := url.Parse(link.Destination)
			if err != nil {
				res.add(rel, link.Destination, ReasonUnparsable)
				continue
			}
			switch {
			case u.Host != "" && strings.EqualFold(u.Host, originHost):
				res.add(rel, link.Destination, ReasonOriginLink)
			case u.Scheme == "" && u.Host == "" && u.Path != "":
				res.add(rel, link.Destination, ReasonMissingTarget)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// walkFiles calls fn for every file with the given extension below root, in
// lexical order, passing its slash-separated path relative to root.
func walkFiles(fs afero.Fs, root, ext string, fn func(rel string, data []byte) error) error {
	var files []string
	err := afero.Walk(fs, root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.EqualFold(filepath.Ext(p), ext) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to walk output").
			WithContext("root", root).
			Build()
	}
	sort.Strings(files)

	for _, p := range files {
		data, err := afero.ReadFile(fs, p)
		if err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to read output file").
				WithContext("path", p).
				Build()
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			rel = p
		}
		if err := fn(filepath.ToSlash(rel), data); err != nil {
			return err
		}
	}
	return nil
}

func exists(fs afero.Fs, root, rel string) bool {
	ok, err := afero.Exists(fs, filepath.Join(root, filepath.FromSlash(rel)))
	return err == nil && ok
}

func hostOf(origin string) string {
	u, err := url.Parse(strings.TrimSpace(origin))
	if err != nil {
		return ""
	}
	return u.Host
}
