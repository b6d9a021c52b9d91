// Package locals implements the locals-resolution engine (spec.md §4.2):
// an arena-based scope tree over a LocalConfiguration's query matches,
// resolving @definition/@reference captures to `local N` symbols with
// hoisting, def-ref promotion, and an orthogonal reassignment-behavior
// mechanism for name-shadowing across nested scopes.
//
// Grounded on scip-syntax/src/locals.rs (the Scope/LValue/Reference model,
// ReassignmentBehavior enum, #set!-property reading style) generalized to
// the richer hoist/def_ref/DefId model spec.md §4.2 specifies, which the
// original locals.rs does not implement. This package is, deliberately,
// a superset of what locals.rs does.
package locals

import "github.com/viant/scipsyntax/rng"

// DefId identifies one minted local definition within a document. Local
// symbols are formatted as `local <id>` (symbol.NewLocal).
type DefId int

// ReassignmentBehavior governs what happens when a non-def_ref definition
// capture reuses a name already bound by an ancestor scope (spec.md's
// Open Question resolution: kept orthogonal to hoist/def_ref).
type ReassignmentBehavior int

const (
	// NewestIsDefinition mints a fresh DefId for every definition capture,
	// shadowing any earlier definition of the same name (the default).
	NewestIsDefinition ReassignmentBehavior = iota
	// OldestIsDefinition reuses the nearest ancestor's existing DefId for
	// the same name instead of minting a new one, turning the occurrence
	// into a reference to that earlier definition.
	OldestIsDefinition
)

// Visibility governs how an unresolved reference falls back when no
// local definition is found.
type Visibility int

const (
	VisibilityLocal Visibility = iota
	VisibilityGlobal
)

// Definition is one binding site recorded in a scope.
type Definition struct {
	ID                   DefId
	Name                 string
	Range                rng.Range
	ReassignmentBehavior ReassignmentBehavior
}

// Reference is one use site, resolved in a later pass.
type Reference struct {
	Range       rng.Range
	Name        string
	Visibility  Visibility
	// GlobalKind is the `kind = "global[.descriptor]"` property value, if
	// the capture carried one; only meaningful when Visibility is Global.
	GlobalKind string
	// ResolvesTo is set by addDefinition when a def_ref or
	// OldestIsDefinition capture finds an existing definition; such
	// references are resolved the instant they're produced rather than
	// in the usual scope-resolution pass.
	ResolvesTo *DefId
}

// pendingDefinition/pendingReference are the raw, not-yet-placed capture
// records gathered during the Collect phase (step 1), before scopes are
// built and definitions are assigned to their target scope.
type pendingDefinition struct {
	Name                 string
	Range                rng.Range
	Hoist                string // scope kind to hoist to, "" if not hoisted
	DefRef               bool
	ReassignmentBehavior ReassignmentBehavior
}

type pendingReference struct {
	Name       string
	Range      rng.Range
	Visibility Visibility
	GlobalKind string
}

type pendingScope struct {
	Kind  string
	Range rng.Range
}
