// Package sink writes rendered artifacts below an output root.
package sink

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/forumarchive/internal/foundation/errors"
)

// Sink receives rendered artifacts addressed by slash-separated relative paths.
type Sink interface {
	Write(rel string, data []byte) error
}

// FS is a Sink over an afero filesystem rooted at a directory.
type FS struct {
	fs   afero.Fs
	root string

	mu      sync.Mutex
	written map[string]int
}

// NewFS returns a sink writing below root on fs.
func NewFS(fs afero.Fs, root string) *FS {
	return &FS{fs: fs, root: filepath.Clean(root), written: make(map[string]int)}
}

// Root is the output directory.
func (s *FS) Root() string { return s.root }

// Fs exposes the underlying filesystem for readers of the output.
func (s *FS) Fs() afero.Fs { return s.fs }

// Write stores data at rel, creating parent directories.
func (s *FS) Write(rel string, data []byte) error {
	full, err := s.resolve(rel)
	if err != nil {
		return err
	}
	if err := s.fs.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "create output directory").
			WithContext("path", filepath.Dir(full)).
			Fatal().
			Build()
	}
	// #nosec G306 -- rendered archive pages are public content
	if err := afero.WriteFile(s.fs, full, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "write output file").
			WithContext("path", full).
			Fatal().
			Build()
	}
	s.mu.Lock()
	s.written[path.Clean(rel)]++
	s.mu.Unlock()
	return nil
}

// Clean removes everything below the root, keeping the root itself.
func (s *FS) Clean() error {
	entries, err := afero.ReadDir(s.fs, s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.WrapError(err, errors.CategoryFileSystem, "read output directory").
			WithContext("path", s.root).
			Fatal().
			Build()
	}
	for _, e := range entries {
		p := filepath.Join(s.root, e.Name())
		if err := s.fs.RemoveAll(p); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "clean output directory").
				WithContext("path", p).
				Fatal().
				Build()
		}
	}
	return nil
}

// Written lists the relative paths written so far, sorted.
func (s *FS) Written() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.written))
	for p := range s.written {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Overwritten lists relative paths written more than once.
func (s *FS) Overwritten() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for p, n := range s.written {
		if n > 1 {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

func (s *FS) resolve(rel string) (string, error) {
	clean := path.Clean(strings.TrimPrefix(rel, "/"))
	if rel == "" || !filepath.IsLocal(filepath.FromSlash(clean)) {
		return "", errors.NewError(errors.CategoryFileSystem, "output path escapes root").
			WithContext("path", rel).
			Fatal().
			Build()
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}
