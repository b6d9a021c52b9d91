// Package globals implements the globals-extraction engine (spec.md §4.1):
// a one-pass scope-tree builder over a TagConfiguration's query matches,
// producing hierarchical definitions (namespaces containing types
// containing methods, etc.) with enclosing ranges, plus the occurrence
// emission pass that flattens the tree into a symbol.Document.
//
// Grounded on scip-syntax/src/symbols.rs (the richer Scope/Global/
// Reference model, with enclosing range and kind) and
// scip-syntax/src/globals.rs (the @local byte-range suppression bitmap).
package globals

import (
	"github.com/viant/scipsyntax/rng"
	"github.com/viant/scipsyntax/symbol"
)

// Scope is a lexical scope in the globals tree: a named container (a
// package, type, or function) that owns nested globals, references, and
// child scopes.
type Scope struct {
	IdentRange  rng.Range
	ScopeRange  rng.Range
	Globals     []Global
	References  []Reference
	Children    []*Scope
	Descriptors []symbol.Descriptor
	Kind        symbol.InfoKind
}

// Global is one definition occurrence: a symbol path segment plus its
// source range and, optionally, the enclosing range of its full
// definition (e.g. a function signature's enclosing range is its body).
type Global struct {
	Range       rng.Range
	Enclosing   *rng.Range
	Descriptors []symbol.Descriptor
	Kind        symbol.InfoKind
}

// Reference is an occurrence that points at a global symbol (not a local
// definition), derived purely from its captured text: spec.md §3's
// "(b) a global symbol derived from its text".
type Reference struct {
	Range       rng.Range
	Descriptors []symbol.Descriptor
	Kind        symbol.InfoKind
}

// NewRootScope builds the scope spanning the entire file, the descent
// target every other scope/global/reference is inserted under.
func NewRootScope(fileRange rng.Range) *Scope {
	return &Scope{IdentRange: fileRange, ScopeRange: fileRange}
}

// InsertScope descends to the deepest existing child scope whose range
// contains the new scope's range (an equal range counts as containing),
// inserting there; otherwise it is appended directly under s.
func (s *Scope) InsertScope(child *Scope) {
	for _, existing := range s.Children {
		if existing.ScopeRange.Contains(child.ScopeRange) {
			existing.InsertScope(child)
			return
		}
	}
	s.Children = append(s.Children, child)
}

// InsertGlobal descends to the deepest child scope whose range contains
// g, placing it there; otherwise it is a global of s itself.
func (s *Scope) InsertGlobal(g Global) {
	for _, child := range s.Children {
		if child.ScopeRange.Contains(g.Range) {
			child.InsertGlobal(g)
			return
		}
	}
	s.Globals = append(s.Globals, g)
}

// InsertReference descends the same way InsertGlobal does.
func (s *Scope) InsertReference(r Reference) {
	for _, child := range s.Children {
		if child.ScopeRange.Contains(r.Range) {
			child.InsertReference(r)
			return
		}
	}
	s.References = append(s.References, r)
}
