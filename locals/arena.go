package locals

import "github.com/viant/scipsyntax/rng"

// rootIndex is the arena index of the synthetic top scope every other
// scope descends from.
const rootIndex = 0

// Arena owns every Scope value built for one document; scopes reference
// each other by index rather than pointer, per spec.md §3's "a single
// arena owns all Scope values; scopes refer to each other by arena
// index."
type Arena struct {
	scopes []*Scope
}

// Scope is one lexical scope in the locals tree.
type Scope struct {
	Kind     string
	Range    rng.Range
	Parent   int // -1 for the root
	Children []int

	// HoistedDefinitions holds one definition per name, targeted here by
	// a `hoist = "<kind>"` property (spec.md §4.2 step 4).
	HoistedDefinitions map[string]*Definition
	// Definitions holds non-hoisted definitions native to this scope,
	// keyed by name, ordered by ascending start byte: the order reference
	// resolution scans for "largest start byte <= reference start" (step 6).
	Definitions map[string][]*Definition

	References []Reference
}

func newArena() (*Arena, int) {
	a := &Arena{}
	root := a.newScope("", rng.Range{}, -1)
	return a, root
}

func (a *Arena) newScope(kind string, r rng.Range, parent int) int {
	s := &Scope{
		Kind:               kind,
		Range:              r,
		Parent:             parent,
		HoistedDefinitions: map[string]*Definition{},
		Definitions:        map[string][]*Definition{},
	}
	idx := len(a.scopes)
	a.scopes = append(a.scopes, s)
	if parent >= 0 {
		a.scopes[parent].Children = append(a.scopes[parent].Children, idx)
	}
	return idx
}

func (a *Arena) scope(idx int) *Scope { return a.scopes[idx] }

// insertScope descends to the deepest existing scope under parent whose
// range contains r (an equal range counts as containing), inserting the
// new scope there; mirrors
// globals.Scope.InsertScope/symbols.rs's containment-descent, applied
// here to the locals tree instead of rebuilding it via the streaming
// "close ancestors whose end < start" algorithm spec.md describes. Both
// produce the same final assignment of each scope to its innermost
// geometric container, and containment-descent is what the rest of this
// codebase (globals) already does, so the locals tree builds the same
// way for consistency.
func (a *Arena) insertScope(parent int, kind string, r rng.Range) int {
	for _, childIdx := range a.scopes[parent].Children {
		if a.scopes[childIdx].Range.Contains(r) {
			return a.insertScope(childIdx, kind, r)
		}
	}
	return a.newScope(kind, r, parent)
}

// scopeContaining returns the innermost scope under root (by arena
// index) whose range contains r.
func (a *Arena) scopeContaining(root int, r rng.Range) int {
	for _, childIdx := range a.scopes[root].Children {
		if a.scopes[childIdx].Range.Contains(r) {
			return a.scopeContaining(childIdx, r)
		}
	}
	return root
}
