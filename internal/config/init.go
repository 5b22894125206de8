package config

import (
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/forumarchive/internal/foundation/errors"
)

const exampleConfig = `# Forum archive renderer configuration.
# ${VAR} references are expanded from the environment; .env and .env.local
# next to this file are loaded first.

archive:
  # Storage root and the snapshot directory below it.
  root: ./data
  raw_dir: raw
  files:
    blog: blog.json
    fvp_forum: fvp_forum.json
    general_forum: general_forum.json

site:
  title: Forum Archive
  # Links pointing at this site are resolved to local documents.
  origin_url: ${ARCHIVE_ORIGIN_URL}
  description: Offline copy of the blog and forums.

output:
  notes_dir: ./vault
  html_dir: ./site
  # Remove previous output before writing.
  clean: true

render:
  # notes, html or both.
  dialects: [notes, html]
  # 0 renders every document.
  max_documents: 0
  # plain drops emphasis inside link text, formatted keeps it.
  link_text: plain
  sanitize: true
  verify: false

logging:
  level: info   # debug|info|warn|error
  format: text  # text|json

metrics:
  # Write a Prometheus text exposition of each run here.
  textfile: ""
`

// Init writes an example configuration file. An existing file is only
// replaced when force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to create config directory").
				WithContext("path", dir).
				Build()
		}
	}
	// #nosec G306 -- example configuration holds no secrets
	if err := os.WriteFile(path, []byte(exampleConfig), 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", path).
			Build()
	}
	return nil
}
