// Package config loads the archive renderer configuration.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/forumarchive/internal/archive"
	"git.home.luguber.info/inful/forumarchive/internal/foundation/errors"
	"git.home.luguber.info/inful/forumarchive/internal/markup"
)

// DefaultPath is the configuration file used when none is given.
const DefaultPath = "config.yaml"

// Config is the full configuration of a render run.
type Config struct {
	Archive ArchiveConfig `yaml:"archive"`
	Site    SiteConfig    `yaml:"site"`
	Output  OutputConfig  `yaml:"output"`
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ArchiveConfig locates the raw snapshot files.
type ArchiveConfig struct {
	Root   string       `yaml:"root"`    // Storage root
	RawDir string       `yaml:"raw_dir"` // Snapshot directory below Root
	Files  ArchiveFiles `yaml:"files"`
}

// ArchiveFiles names the snapshot file of each collection.
type ArchiveFiles struct {
	Blog         string `yaml:"blog"`
	FVPForum     string `yaml:"fvp_forum"`
	GeneralForum string `yaml:"general_forum"`
}

// SiteConfig describes the archived site.
type SiteConfig struct {
	Title string `yaml:"title"`
	// OriginURL is the live site internal links are classified against.
	OriginURL   string `yaml:"origin_url"`
	Description string `yaml:"description"`
}

// OutputConfig says where each dialect is written.
type OutputConfig struct {
	NotesDir string `yaml:"notes_dir"`
	HTMLDir  string `yaml:"html_dir"`
	Clean    *bool  `yaml:"clean"`
}

// RenderConfig controls rendering.
type RenderConfig struct {
	Dialects     []string `yaml:"dialects"`
	MaxDocuments int      `yaml:"max_documents"` // 0 = unlimited
	LinkText     LinkText `yaml:"link_text"`
	Sanitize     *bool    `yaml:"sanitize"`
	Verify       bool     `yaml:"verify"`
}

// LoggingConfig selects the log handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Load reads, expands, normalizes, defaults and validates a configuration
// file. .env files next to it are loaded first. Normalization warnings are
// returned alongside the config.
func Load(path string) (*Config, *NormalizationResult, error) {
	if _, err := loadEnvFiles(path); err != nil {
		return nil, nil, err
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path is the user's config file
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.ConfigError("configuration file not found").
				WithContext("path", path).
				Fatal().
				Build()
		}
		return nil, nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			WithContext("path", path).
			Fatal().
			Build()
	}
	return Parse(data)
}

// Parse builds a configuration from YAML content, expanding ${VAR}
// references from the environment.
func Parse(data []byte) (*Config, *NormalizationResult, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse config file").
			Fatal().
			Build()
	}

	res := Normalize(&cfg)
	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, res, err
	}
	return &cfg, res, nil
}

// Layout returns where the snapshot files live.
func (c *Config) Layout() archive.Layout {
	l := archive.DefaultLayout(c.Archive.SnapshotDir())
	set := func(kind archive.CollectionKind, name string) {
		if name != "" {
			l.Files[kind] = name
		}
	}
	set(archive.Blog, c.Archive.Files.Blog)
	set(archive.ForumA, c.Archive.Files.FVPForum)
	set(archive.ForumB, c.Archive.Files.GeneralForum)
	return l
}

// SnapshotDir joins Root and RawDir.
func (a ArchiveConfig) SnapshotDir() string {
	if a.Root == "" {
		return a.RawDir
	}
	return joinPath(a.Root, a.RawDir)
}

// OutputDir returns the output root of dialect.
func (c *Config) OutputDir(dialect string) string {
	if dialect == DialectHTML {
		return c.Output.HTMLDir
	}
	return c.Output.NotesDir
}

// CleanOutput reports whether previous output is removed before writing.
func (c *Config) CleanOutput() bool { return boolOr(c.Output.Clean, true) }

// SanitizeHTML reports whether HTML bodies are sanitized.
func (c *Config) SanitizeHTML() bool { return boolOr(c.Render.Sanitize, true) }

// Capture returns the link text convention.
func (c *Config) Capture() markup.LinkTextCapture {
	capture, _ := markup.ParseLinkTextCapture(string(c.Render.LinkText))
	return capture
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
