package globals

import (
	"sort"

	"github.com/viant/scipsyntax/rng"
	"github.com/viant/scipsyntax/symbol"
)

const scheme = "scip-ctags"

// record pairs one emitted occurrence with its SymbolInformation (nil for
// references, which carry no SymbolInformation of their own), so the two
// can be sorted together by range and rebuilt into parallel, index-aligned
// slices afterward.
type record struct {
	occ symbol.Occurrence
	rng rng.Range
	sym *symbol.SymbolInformation
}

// IntoDocument flattens the scope tree into a symbol.Document: a
// pre-order traversal that threads a descriptor stack down through
// nested scopes, formatting one symbol string per definition and
// reference (symbols.rs: Scope::into_document/traverse), then sorts the
// resulting occurrence list by range ascending before returning it
// (spec.md §5 "Ordering", §8: "the emitted occurrence list is sorted by
// (start_line, start_col) before leaving the engine"). A scope's own
// globals are not necessarily discovered in source order relative to its
// children, so this final sort is required, not just the traversal order.
//
// hint sizes the symbol slice; baseDescriptors seeds the
// descriptor stack (e.g. a package path prefix shared by every symbol in
// the document).
func (s *Scope) IntoDocument(relativePath string, hint int, baseDescriptors []symbol.Descriptor) symbol.Document {
	stack := append([]symbol.Descriptor{}, baseDescriptors...)

	var records []record
	s.traverse(true, &stack, &records)

	// spec.md §5 "Ordering" sorts by (start_line, start_col), which is not
	// the same as rng.Range.Compare's (StartLine, EndLine, StartCol): two
	// records starting on the same line but with different extents must
	// still order by start column, not by which one ends first.
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].rng, records[j].rng
		if a.StartLine != b.StartLine {
			return a.StartLine < b.StartLine
		}
		return a.StartCol < b.StartCol
	})

	doc := symbol.Document{RelativePath: relativePath}
	doc.Occurrences = make([]symbol.Occurrence, 0, len(records))
	doc.Symbols = make([]symbol.SymbolInformation, 0, hint)
	for _, r := range records {
		doc.Occurrences = append(doc.Occurrences, r.occ)
		if r.sym != nil {
			doc.Symbols = append(doc.Symbols, *r.sym)
		}
	}
	return doc
}

func (s *Scope) traverse(isRoot bool, stack *[]symbol.Descriptor, records *[]record) {
	*stack = append(*stack, s.Descriptors...)

	// Empty package fields are written as "." so the formatted symbol
	// parses back with symbol.ParseSymbol.
	pkg := symbol.Package{Manager: ".", Name: ".", Version: "."}

	if !isRoot {
		sym := symbol.NewGlobal(scheme, pkg, append([]symbol.Descriptor{}, (*stack)...))
		symStr := symbol.FormatSymbol(sym)

		info := symbol.SymbolInformation{Symbol: symStr, Kind: s.Kind}
		*records = append(*records, record{
			occ: symbol.Occurrence{
				Range:          s.IdentRange.ToVec(),
				Symbol:         symStr,
				SymbolRoles:    symbol.RoleDefinition,
				EnclosingRange: s.ScopeRange.ToVec(),
			},
			rng: s.IdentRange,
			sym: &info,
		})
	}

	for _, g := range s.Globals {
		descriptors := append(append([]symbol.Descriptor{}, (*stack)...), g.Descriptors...)
		sym := symbol.NewGlobal(scheme, pkg, descriptors)
		symStr := symbol.FormatSymbol(sym)

		occ := symbol.Occurrence{
			Range:       g.Range.ToVec(),
			Symbol:      symStr,
			SymbolRoles: symbol.RoleDefinition,
		}
		if g.Enclosing != nil {
			occ.EnclosingRange = g.Enclosing.ToVec()
		}
		info := symbol.SymbolInformation{Symbol: symStr, Kind: g.Kind}
		*records = append(*records, record{occ: occ, rng: g.Range, sym: &info})
	}

	for _, r := range s.References {
		sym := symbol.NewGlobal(scheme, pkg, r.Descriptors)
		*records = append(*records, record{
			occ: symbol.Occurrence{
				Range:  r.Range.ToVec(),
				Symbol: symbol.FormatSymbol(sym),
			},
			rng: r.Range,
		})
	}

	for _, child := range s.Children {
		child.traverse(false, stack, records)
	}

	*stack = (*stack)[:len(*stack)-len(s.Descriptors)]
}
