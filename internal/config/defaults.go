package config

import "path/filepath"

// Default values applied to unset fields.
const (
	DefaultRawDir   = "raw"
	DefaultNotesDir = "./vault"
	DefaultHTMLDir  = "./site"
	DefaultTitle    = "Forum Archive"
)

// applyDefaults fills unset fields. It runs after normalization so canonical
// values drive the defaults.
func applyDefaults(c *Config) {
	if c.Archive.RawDir == "" {
		c.Archive.RawDir = DefaultRawDir
	}
	if c.Archive.Files.Blog == "" {
		c.Archive.Files.Blog = "blog.json"
	}
	if c.Archive.Files.FVPForum == "" {
		c.Archive.Files.FVPForum = "fvp_forum.json"
	}
	if c.Archive.Files.GeneralForum == "" {
		c.Archive.Files.GeneralForum = "general_forum.json"
	}
	if c.Site.Title == "" {
		c.Site.Title = DefaultTitle
	}
	if c.Output.NotesDir == "" {
		c.Output.NotesDir = DefaultNotesDir
	}
	if c.Output.HTMLDir == "" {
		c.Output.HTMLDir = DefaultHTMLDir
	}
	if len(c.Render.Dialects) == 0 {
		c.Render.Dialects = Dialects()
	}
	if c.Render.LinkText == "" {
		c.Render.LinkText = LinkTextPlain
	}
	if c.Logging.Level == "" {
		c.Logging.Level = LogLevelInfo
	}
	if c.Logging.Format == "" {
		c.Logging.Format = LogFormatText
	}
}

func joinPath(root, rel string) string {
	switch {
	case rel == "":
		return root
	case filepath.IsAbs(rel):
		return rel
	}
	return filepath.Join(root, rel)
}
