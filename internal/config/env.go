package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/forumarchive/internal/foundation/errors"
)

// envFiles are looked up next to the configuration file. .env.local is
// loaded first so its values win over the shared .env.
var envFiles = []string{".env.local", ".env"}

// loadEnvFiles loads environment variables from .env files beside
// configPath. Existing process variables are never overridden. It returns the
// files that were loaded.
func loadEnvFiles(configPath string) ([]string, error) {
	dir := filepath.Dir(configPath)
	var loaded []string
	for _, name := range envFiles {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return loaded, errors.WrapError(err, errors.CategoryConfig, "failed to load env file").
				WithContext("path", p).
				Fatal().
				Build()
		}
		loaded = append(loaded, p)
	}
	return loaded, nil
}
