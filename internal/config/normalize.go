package config

import (
	"fmt"
	"strings"
)

// NormalizationResult captures adjustments and warnings from normalization.
type NormalizationResult struct{ Warnings []string }

// Normalize canonicalizes enumerated and bounded fields in place, before
// defaults are applied. Unknown enumerations fall back to their default with
// a warning; unknown dialects are kept for validation to reject.
func Normalize(c *Config) *NormalizationResult {
	res := &NormalizationResult{}
	if c == nil {
		return res
	}
	normalizeEnum(&c.Logging.Level, logLevels, "logging.level", res)
	normalizeEnum(&c.Logging.Format, logFormats, "logging.format", res)
	normalizeEnum(&c.Render.LinkText, linkTexts, "render.link_text", res)

	seen := make(map[string]bool, len(c.Render.Dialects))
	out := c.Render.Dialects[:0]
	for _, raw := range c.Render.Dialects {
		d, ok := NormalizeDialect(raw)
		if !ok {
			d = strings.TrimSpace(raw)
		} else if d != raw {
			res.Warnings = append(res.Warnings, warnChanged("render.dialects", raw, d))
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	c.Render.Dialects = out

	if c.Render.MaxDocuments < 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("render.max_documents %d is negative, treating as unlimited", c.Render.MaxDocuments))
		c.Render.MaxDocuments = 0
	}
	c.Site.OriginURL = strings.TrimSpace(c.Site.OriginURL)
	return res
}

func normalizeEnum[T ~string](field *T, e enum[T], name string, res *NormalizationResult) {
	raw := string(*field)
	if strings.TrimSpace(raw) == "" {
		*field = ""
		return
	}
	if v, ok := e.lookup(raw); ok {
		if v != *field {
			res.Warnings = append(res.Warnings, warnChanged(name, raw, v))
			*field = v
		}
		return
	}
	res.Warnings = append(res.Warnings, warnUnknown(name, raw, string(e.def)))
	*field = e.def
}

func warnChanged(field string, from, to any) string {
	return fmt.Sprintf("normalized %s from '%v' to '%v'", field, from, to)
}

func warnUnknown(field, value, def string) string {
	return fmt.Sprintf("unknown %s '%s', defaulting to %s", field, value, def)
}
