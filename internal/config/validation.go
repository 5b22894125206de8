package config

import (
	"net/url"
	"strings"

	"git.home.luguber.info/inful/forumarchive/internal/foundation/errors"
)

// Validate checks a normalized and defaulted configuration.
func Validate(c *Config) error {
	if c.Site.OriginURL == "" {
		return errors.ConfigError("site.origin_url is required").
			Fatal().
			Build()
	}
	u, err := url.Parse(c.Site.OriginURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		b := errors.ConfigError("site.origin_url must be an absolute http(s) URL").
			WithContext("origin_url", c.Site.OriginURL).
			Fatal()
		if err != nil {
			b = b.WithCause(err)
		}
		return b.Build()
	}

	for _, d := range c.Render.Dialects {
		if _, ok := NormalizeDialect(d); !ok {
			return errors.ConfigError("unknown render dialect").
				WithContext("dialect", d).
				WithContext("valid", strings.Join(dialects.keys(), ", ")).
				Fatal().
				Build()
		}
	}

	if c.Output.NotesDir == c.Output.HTMLDir && len(c.Render.Dialects) > 1 {
		return errors.ConfigError("output.notes_dir and output.html_dir must differ").
			WithContext("dir", c.Output.NotesDir).
			Fatal().
			Build()
	}
	return nil
}
