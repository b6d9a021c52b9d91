package query

import (
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
)

// Source is one language's raw query text, as read from its .scm files.
// The files themselves are an opaque input (spec.md §1, §6): this package
// never generates or validates their contents, only compiles what it is
// given.
type Source struct {
	Language  *sitter.Language
	TagsQuery string
	// LocalsQuery is optional: not every language ships a locals query
	// (scip-syntax/src/languages.rs only registers `go` and `perl` for
	// locals, leaving every other language globals-only).
	LocalsQuery string
}

// Registry lazily compiles and caches TagConfiguration/LocalConfiguration
// values per language id, mirroring languages.rs's per-language
// OnceCell-backed accessor functions, collapsed into one generic,
// data-driven registry instead of one generated function per language.
type Registry struct {
	mu      sync.Mutex
	sources map[string]Source

	tags   map[string]*tagEntry
	locals map[string]*localEntry
}

type tagEntry struct {
	once sync.Once
	cfg  *TagConfiguration
	err  error
}

type localEntry struct {
	once sync.Once
	cfg  *LocalConfiguration
	err  error
}

// NewRegistry builds an empty registry. Register sources before querying.
func NewRegistry() *Registry {
	return &Registry{
		sources: map[string]Source{},
		tags:    map[string]*tagEntry{},
		locals:  map[string]*localEntry{},
	}
}

// Register associates a language id (e.g. "go", "python") with its
// compiled grammar and raw query text. Safe to call before any lookups;
// registering the same id twice replaces the prior source and invalidates
// any cache entry for it.
func (r *Registry) Register(langID string, src Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[langID] = src
	delete(r.tags, langID)
	delete(r.locals, langID)
}

// TagConfiguration returns the compiled globals/ctags query for langID,
// compiling it on first use and caching the result for the life of the
// registry (spec.md §9: "compile once and are read thereafter").
func (r *Registry) TagConfiguration(langID string) (*TagConfiguration, error) {
	r.mu.Lock()
	src, ok := r.sources[langID]
	entry, hasEntry := r.tags[langID]
	if !hasEntry {
		entry = &tagEntry{}
		r.tags[langID] = entry
	}
	r.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("no tag configuration for language %q", langID)
	}

	entry.once.Do(func() {
		entry.cfg, entry.err = NewTagConfiguration(src.Language, src.TagsQuery)
	})
	return entry.cfg, entry.err
}

// LocalConfiguration returns the compiled locals query for langID, or an
// error if the language has no locals query registered.
func (r *Registry) LocalConfiguration(langID string) (*LocalConfiguration, error) {
	r.mu.Lock()
	src, ok := r.sources[langID]
	entry, hasEntry := r.locals[langID]
	if !hasEntry {
		entry = &localEntry{}
		r.locals[langID] = entry
	}
	r.mu.Unlock()

	if !ok || src.LocalsQuery == "" {
		return nil, fmt.Errorf("no local configuration for language %q", langID)
	}

	entry.once.Do(func() {
		entry.cfg, entry.err = NewLocalConfiguration(src.Language, src.LocalsQuery)
	})
	return entry.cfg, entry.err
}
