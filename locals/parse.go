package locals

import (
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/scipsyntax/query"
	"github.com/viant/scipsyntax/rng"
	"github.com/viant/scipsyntax/symbol"
)

// Options controls reference emission (spec.md §4.2 "options
// {emit_global_references: bool}").
type Options struct {
	EmitGlobalReferences bool
}

// maxAncestorWalk caps the ancestor walks used by hoist/def_ref/reference
// resolution at 10 000 iterations. When the cap is reached the walk stops
// and the lookup counts as unresolved; nothing is logged.
const maxAncestorWalk = 10000

// ParseTree runs the locals pass over tree using cfg and returns the
// resolved occurrence list (spec.md §4.2's six-step algorithm).
func ParseTree(cfg *query.LocalConfiguration, tree *sitter.Tree, source []byte, opts Options) ([]symbol.Occurrence, error) {
	scopes, defs, refs, err := collect(cfg, tree, source)
	if err != nil {
		return nil, err
	}

	arena, root := newArena()
	arena.scopes[root].Range = nodeRange(tree.RootNode())

	// Scopes sorted by start byte ascending; ties broken by largest
	// (i.e. outermost) extent first, per spec.md's pre-order compare
	// "(start, Reverse(end))".
	sort.SliceStable(scopes, func(i, j int) bool {
		if scopes[i].Range.StartLine != scopes[j].Range.StartLine {
			return scopes[i].Range.StartLine < scopes[j].Range.StartLine
		}
		if scopes[i].Range.StartCol != scopes[j].Range.StartCol {
			return scopes[i].Range.StartCol < scopes[j].Range.StartCol
		}
		if scopes[i].Range.EndLine != scopes[j].Range.EndLine {
			return scopes[i].Range.EndLine > scopes[j].Range.EndLine
		}
		return scopes[i].Range.EndCol > scopes[j].Range.EndCol
	})
	for _, s := range scopes {
		arena.insertScope(root, s.Kind, s.Range)
	}

	sort.SliceStable(defs, func(i, j int) bool { return defs[i].Range.Compare(defs[j].Range) < 0 })
	sort.SliceStable(refs, func(i, j int) bool { return refs[i].Range.Compare(refs[j].Range) < 0 })

	var nextID DefId
	for _, d := range defs {
		nextID++
		addDefinition(arena, root, d, nextID)
	}

	for i := range refs {
		nativeScope := arena.scopeContaining(root, refs[i].Range)
		arena.scopes[nativeScope].References = append(arena.scopes[nativeScope].References, Reference{
			Range:      refs[i].Range,
			Name:       refs[i].Name,
			Visibility: refs[i].Visibility,
			GlobalKind: refs[i].GlobalKind,
		})
	}

	var occs []symbol.Occurrence
	resolveScope(arena, root, opts, &occs)

	// resolveScope emits each scope's own definitions, then its own
	// references, then its children, independently sorted within each
	// group but not merged across groups/scopes by actual position. A
	// final sort is required to satisfy spec.md §5 "Ordering" and the
	// §8 invariant that the returned occurrence list is sorted by
	// (start_line, start_col).
	sort.SliceStable(occs, func(i, j int) bool { return rangeVecLess(occs[i].Range, occs[j].Range) })
	return occs, nil
}

// rangeVecLess compares two packed symbol.Occurrence.Range vectors
// ([]int32{startLine, startCol, ...}) by (start_line, start_col) ascending.
func rangeVecLess(a, b []int32) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}

// addDefinition implements spec.md §4.2 step 4.
func addDefinition(arena *Arena, root int, d pendingDefinition, id DefId) {
	target := arena.scopeContaining(root, d.Range)

	if d.Hoist != "" {
		hoisted := walkAncestorsForKind(arena, target, d.Hoist)
		if hoisted < 0 {
			hoisted = root
		}
		target = hoisted
	}

	if d.DefRef {
		if existing := lookupVisibleDefinition(arena, target, d.Name, d.Range); existing != nil {
			scope := arena.scope(arena.scopeContaining(root, d.Range))
			scope.References = append(scope.References, Reference{
				Range:      d.Range,
				Name:       d.Name,
				Visibility: VisibilityLocal,
				ResolvesTo: &existing.ID,
			})
			return
		}
	} else if d.ReassignmentBehavior == OldestIsDefinition {
		if existing := lookupAncestorDefinition(arena, target, d.Name); existing != nil {
			scope := arena.scope(arena.scopeContaining(root, d.Range))
			scope.References = append(scope.References, Reference{
				Range:      d.Range,
				Name:       d.Name,
				Visibility: VisibilityLocal,
				ResolvesTo: &existing.ID,
			})
			return
		}
	}

	def := &Definition{ID: id, Name: d.Name, Range: d.Range, ReassignmentBehavior: d.ReassignmentBehavior}
	s := arena.scope(target)
	if d.Hoist != "" {
		s.HoistedDefinitions[d.Name] = def
	} else {
		s.Definitions[d.Name] = append(s.Definitions[d.Name], def)
	}
}

// walkAncestorsForKind returns the arena index of the nearest ancestor of
// start (inclusive) whose Kind equals kind, or -1 if none is found within
// maxAncestorWalk hops.
func walkAncestorsForKind(arena *Arena, start int, kind string) int {
	idx := start
	for i := 0; i < maxAncestorWalk; i++ {
		if idx < 0 {
			return -1
		}
		if arena.scope(idx).Kind == kind {
			return idx
		}
		idx = arena.scope(idx).Parent
	}
	return -1
}

// lookupVisibleDefinition implements the def_ref lookup: the hoisted
// definition for name at target, else an ancestor walk scanning
// lexically-preceding definitions.
func lookupVisibleDefinition(arena *Arena, target int, name string, before rng.Range) *Definition {
	if d, ok := arena.scope(target).HoistedDefinitions[name]; ok {
		return d
	}
	return lookupAncestorDefinitionBefore(arena, target, name, before)
}

func lookupAncestorDefinition(arena *Arena, start int, name string) *Definition {
	idx := start
	for i := 0; i < maxAncestorWalk; i++ {
		if idx < 0 {
			return nil
		}
		s := arena.scope(idx)
		if d, ok := s.HoistedDefinitions[name]; ok {
			return d
		}
		if ds := s.Definitions[name]; len(ds) > 0 {
			return ds[len(ds)-1]
		}
		idx = s.Parent
	}
	return nil
}

func lookupAncestorDefinitionBefore(arena *Arena, start int, name string, before rng.Range) *Definition {
	idx := start
	for i := 0; i < maxAncestorWalk; i++ {
		if idx < 0 {
			return nil
		}
		s := arena.scope(idx)
		if d := lastDefinitionBefore(s.Definitions[name], before); d != nil {
			return d
		}
		idx = s.Parent
	}
	return nil
}

func lastDefinitionBefore(defs []*Definition, before rng.Range) *Definition {
	var best *Definition
	for _, d := range defs {
		if d.Range.Compare(before) >= 0 {
			continue
		}
		if best == nil || d.Range.Compare(best.Range) > 0 {
			best = d
		}
	}
	return best
}

// resolveScope implements spec.md §4.2 step 6, walking the arena
// depth-first and resolving every reference recorded at each scope.
//
// Definitions and references are gathered per scope and sorted by range
// before emission: map iteration order is otherwise nondeterministic,
// which would violate the "running extraction twice produces
// byte-identical occurrence lists" invariant (spec.md §8).
func resolveScope(arena *Arena, idx int, opts Options, occs *[]symbol.Occurrence) {
	s := arena.scope(idx)

	var defs []*Definition
	for _, d := range s.HoistedDefinitions {
		defs = append(defs, d)
	}
	for _, ds := range s.Definitions {
		defs = append(defs, ds...)
	}
	sort.SliceStable(defs, func(i, j int) bool { return defs[i].Range.Compare(defs[j].Range) < 0 })
	for _, d := range defs {
		emitDefinition(d, occs)
	}

	refs := append([]Reference{}, s.References...)
	sort.SliceStable(refs, func(i, j int) bool { return refs[i].Range.Compare(refs[j].Range) < 0 })
	for _, r := range refs {
		resolveOneReference(arena, idx, r, opts, occs)
	}

	children := append([]int{}, s.Children...)
	sort.SliceStable(children, func(i, j int) bool {
		return arena.scope(children[i]).Range.Compare(arena.scope(children[j]).Range) < 0
	})
	for _, childIdx := range children {
		resolveScope(arena, childIdx, opts, occs)
	}
}

func emitDefinition(d *Definition, occs *[]symbol.Occurrence) {
	*occs = append(*occs, symbol.Occurrence{
		Range:       d.Range.ToVec(),
		Symbol:      symbol.FormatSymbol(symbol.NewLocal(int(d.ID))),
		SymbolRoles: symbol.RoleDefinition,
	})
}

func resolveOneReference(arena *Arena, scopeIdx int, r Reference, opts Options, occs *[]symbol.Occurrence) {
	if r.ResolvesTo != nil {
		*occs = append(*occs, symbol.Occurrence{
			Range:  r.Range.ToVec(),
			Symbol: symbol.FormatSymbol(symbol.NewLocal(int(*r.ResolvesTo))),
		})
		return
	}

	if r.Visibility == VisibilityLocal {
		if d := resolveLocalAncestor(arena, scopeIdx, r.Name, r.Range); d != nil {
			*occs = append(*occs, symbol.Occurrence{
				Range:  r.Range.ToVec(),
				Symbol: symbol.FormatSymbol(symbol.NewLocal(int(d.ID))),
			})
			return
		}
		if !opts.EmitGlobalReferences {
			return
		}
	}

	suffix := symbol.Term
	name := r.Name
	if r.GlobalKind != "" {
		name, suffix = parseGlobalKind(r.GlobalKind, r.Name)
	}
	sym := symbol.NewGlobal("scip-syntax", symbol.Package{Manager: ".", Name: ".", Version: "."}, []symbol.Descriptor{{Name: name, Suffix: suffix}})
	*occs = append(*occs, symbol.Occurrence{
		Range:  r.Range.ToVec(),
		Symbol: symbol.FormatSymbol(sym),
	})
}

// resolveLocalAncestor implements step 6's reference walk: in each scope
// starting at start and climbing to ancestors, hoisted_definitions is
// checked before definitions lexically preceding before, and the first
// scope producing either kind of hit wins the whole walk (spec.md §4.2
// step 6). This interleaves the two checks per scope rather than running
// one check across all ancestors and then the other, so a nearer ancestor's
// hoisted definition correctly outranks a farther ancestor's non-hoisted
// one.
func resolveLocalAncestor(arena *Arena, start int, name string, before rng.Range) *Definition {
	idx := start
	for i := 0; i < maxAncestorWalk; i++ {
		if idx < 0 {
			return nil
		}
		s := arena.scope(idx)
		if d, ok := s.HoistedDefinitions[name]; ok {
			return d
		}
		if d := lastDefinitionBefore(s.Definitions[name], before); d != nil {
			return d
		}
		idx = s.Parent
	}
	return nil
}

// parseGlobalKind splits a `kind = "global[.descriptor]"` property value
// into a descriptor suffix, defaulting to Term when no suffix is given.
func parseGlobalKind(kind, name string) (string, symbol.Suffix) {
	_, suffixName, found := strings.Cut(kind, ".")
	if !found {
		return name, symbol.Term
	}
	switch suffixName {
	case "namespace":
		return name, symbol.Namespace
	case "type":
		return name, symbol.Type
	case "method":
		return name, symbol.Method
	default:
		return name, symbol.Term
	}
}

func nodeRange(n *sitter.Node) rng.Range {
	start := n.StartPoint()
	end := n.EndPoint()
	return rng.New(int(start.Row), int(start.Column), int(end.Row), int(end.Column))
}
