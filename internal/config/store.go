package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultSearchPaths returns the candidate configuration locations in
// precedence order: project-local first, then per-user, then system-wide.
// The first path that exists on disk is the one loaded.
func DefaultSearchPaths() []string {
	paths := []string{"config.yml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "activist", "config.yml"))
	}
	return append(paths, filepath.Join(string(filepath.Separator), "etc", "activist", "config.yml"))
}

// FileSystem abstracts the two filesystem calls Load performs so tests can
// substitute a counting stub.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
}

type osFS struct{}

func (osFS) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

func (osFS) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

// Store locates, parses, and caches the configuration document. The document
// is parsed at most once per store; it is never mutated after a successful
// Load, so lookups need no locking once loaded.
type Store struct {
	paths []string
	fsys  FileSystem

	mu     sync.Mutex
	doc    map[string]any
	loaded bool
	source string
}

// StoreOption configures Store construction.
type StoreOption func(*Store)

// WithSearchPaths replaces the default candidate locations.
func WithSearchPaths(paths ...string) StoreOption {
	return func(s *Store) {
		s.paths = append([]string(nil), paths...)
	}
}

// WithFile pins the store to a single explicit file, bypassing the search.
func WithFile(path string) StoreOption {
	return WithSearchPaths(path)
}

// WithFileSystem overrides the filesystem used by Load, primarily for tests.
func WithFileSystem(fsys FileSystem) StoreOption {
	return func(s *Store) {
		s.fsys = fsys
	}
}

// NewStore constructs an unloaded store. Call Load before resolving keys, or
// use Shared for the process-wide handle.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		paths: DefaultSearchPaths(),
		fsys:  osFS{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load walks the search paths and parses the first existing file into the
// document. It is idempotent: once a load has succeeded, subsequent calls
// return immediately without touching the filesystem. When no candidate path
// exists it fails with ErrNotFound and leaves the store unloaded, so a later
// call repeats the search.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return nil
	}

	for _, path := range s.paths {
		if _, err := s.fsys.Stat(path); err != nil {
			continue
		}

		data, err := s.fsys.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}

		s.doc = doc
		s.loaded = true
		s.source = path
		return nil
	}

	return fmt.Errorf("searched %s: %w", strings.Join(s.paths, ", "), ErrNotFound)
}

// Get resolves a dotted key path against the document. Misses yield nil.
func (s *Store) Get(path string) any {
	return s.GetDefault(path, nil)
}

// GetDefault resolves a dotted key path against the document, substituting
// def for absent keys, null values, and traversals through non-mappings.
func (s *Store) GetDefault(path string, def any) any {
	return Resolve(s.document(), path, def)
}

// SearchPaths returns a copy of the candidate locations in precedence order.
func (s *Store) SearchPaths() []string {
	return append([]string(nil), s.paths...)
}

// Source reports which file the document was loaded from, or "" before a
// successful Load.
func (s *Store) Source() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source
}

func (s *Store) document() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

var (
	sharedMu sync.Mutex
	shared   *Store
)

// Shared returns the process-wide store, loading it on first call. The mutex
// guards first-time initialization; concurrent first access loads the
// document once. A failed load leaves the handle unloaded and the next call
// repeats the search.
func Shared() (*Store, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if shared == nil {
		shared = NewStore()
	}
	if err := shared.Load(); err != nil {
		return nil, err
	}
	return shared, nil
}
