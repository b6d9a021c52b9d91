// Package symbol implements the SCIP symbol grammar (descriptors, packages,
// schemes) and the in-memory occurrence/document records the engines emit.
// The protobuf wire format for these records is out of scope (spec.md §1);
// these are plain Go structs used for construction, formatting, and tests.
package symbol

import "fmt"

// Suffix is a SCIP descriptor kind.
type Suffix int

const (
	UnspecifiedSuffix Suffix = iota
	Namespace
	Type
	Term
	Method
	Meta
	Macro
	TypeParameter
	Parameter
)

// Descriptor is one segment of a symbol's descriptor path.
type Descriptor struct {
	Name          string
	Suffix        Suffix
	Disambiguator string
}

// Package identifies the (manager, name, version) tuple a non-local symbol
// belongs to.
type Package struct {
	Manager string
	Name    string
	Version string
}

// Symbol is either a local symbol (scoped to one document) or a non-local
// symbol addressed by scheme + package + descriptor path.
type Symbol struct {
	Local       bool
	LocalID     int
	Scheme      string
	Package     Package
	Descriptors []Descriptor
}

// NewLocal builds a local symbol `local <id>`.
func NewLocal(id int) Symbol {
	return Symbol{Local: true, LocalID: id}
}

// NewGlobal builds a non-local symbol.
func NewGlobal(scheme string, pkg Package, descriptors []Descriptor) Symbol {
	return Symbol{Scheme: scheme, Package: pkg, Descriptors: descriptors}
}

// Role is a bitmask of SCIP symbol roles attached to an Occurrence.
type Role int32

const (
	RoleUnspecified Role = 0
	RoleDefinition  Role = 1 << 0
)

// Occurrence is the atomic output unit of the engine: a (range, symbol,
// role, syntax kind) record, optionally carrying the definition's full
// lexical extent.
type Occurrence struct {
	Range          []int32
	Symbol         string
	SymbolRoles    Role
	SyntaxKind     SyntaxKind
	EnclosingRange []int32
}

// SymbolInformation carries descriptive metadata about a symbol, keyed by
// its symbol string.
type SymbolInformation struct {
	Symbol string
	Kind   InfoKind
}

// InfoKind mirrors a subset of SCIP's SymbolInformation.Kind enumeration
// (spec.md §3, §4.1). The globals engine assigns only KindConstant,
// KindPackage and KindFunction (from @kind.* captures) and KindUnspecified.
type InfoKind int

const (
	KindUnspecified InfoKind = iota
	KindNamespace
	KindPackage
	KindType
	KindTerm
	KindMethod
	KindFunction
	KindConstant
	KindVariable
	KindField
)

// Document is the per-file result: an ordered occurrence list plus the
// symbol metadata every definition occurrence contributes (spec.md §8
// invariant: "every definition occurrence has exactly one SymbolInformation
// entry carrying the same symbol").
type Document struct {
	RelativePath string
	Occurrences  []Occurrence
	Symbols      []SymbolInformation
	// ContentHash fingerprints the source bytes this Document was built
	// from (github.com/minio/highwayhash via ctags.Hash, adapted from
	// inspector/graph/hash.go's Document.Hash). indexer.File sets it;
	// globals.Scope.IntoDocument leaves it zero.
	ContentHash uint64
}

func (s Suffix) String() string {
	switch s {
	case Namespace:
		return "Namespace"
	case Type:
		return "Type"
	case Term:
		return "Term"
	case Method:
		return "Method"
	case Meta:
		return "Meta"
	case Macro:
		return "Macro"
	case TypeParameter:
		return "TypeParameter"
	case Parameter:
		return "Parameter"
	default:
		return "Unspecified"
	}
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s(%s)", d.Name, d.Suffix)
}
