package globals

import (
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/scipsyntax/query"
	"github.com/viant/scipsyntax/rng"
	"github.com/viant/scipsyntax/symbol"
)

// ParseTree runs one pass of globals extraction over tree using cfg,
// implementing spec.md §4.1's algorithm, and returns the root scope plus
// a capacity hint (the number of Global definitions found) for callers
// sizing the eventual occurrence slice.
func ParseTree(cfg *query.TagConfiguration, tree *sitter.Tree, source []byte) (*Scope, int, error) {
	root := NewRootScope(nodeRange(tree.RootNode()))

	ranges := newLocalRanges(len(source))

	cursor := sitter.NewQueryCursor()
	cursor.Exec(cfg.Query, tree.RootNode())

	var scopes []*Scope
	var pendingGlobals []Global
	var references []Reference

	for {
		m, ok := cursor.NextMatch()
		if !ok {
			break
		}

		if cfg.IsFiltered(uint32(m.PatternIndex), m) {
			continue
		}

		var (
			node          *sitter.Node
			scopeNode     *sitter.Node
			enclosingNode *sitter.Node
			localNode     *sitter.Node
			isReference   bool
			kind          symbol.InfoKind
			descriptors   []symbol.Descriptor
		)

		for _, capture := range m.Captures {
			name := cfg.Query.CaptureNameForId(capture.Index)
			captureNode := capture.Node

			switch {
			case strings.HasPrefix(name, "descriptor"):
				descriptors = append(descriptors, captureNameToDescriptor(name, captureNode.Content(source)))
				node = captureNode
			case strings.HasPrefix(name, "scope"):
				scopeNode = captureNode
				node = captureNode
			case strings.HasPrefix(name, "enclosing"):
				enclosingNode = captureNode
			case strings.HasPrefix(name, "kind"):
				kind = captureNameToKind(name)
			case strings.HasPrefix(name, "local"):
				localNode = captureNode
			case strings.HasPrefix(name, "reference"):
				isReference = true
				node = captureNode
			}
		}

		if node == nil {
			markLocal(ranges, localNode)
			continue
		}

		// 3c: a global match whose identifier starts inside a suppressed
		// range is dropped entirely (tags muted inside function bodies).
		if len(descriptors) > 0 && scopeNode == nil && ranges.get(int(node.StartByte())) {
			markLocal(ranges, localNode)
			continue
		}

		switch {
		case scopeNode != nil:
			scopes = append(scopes, &Scope{
				IdentRange:  nodeRange(node),
				ScopeRange:  nodeRange(scopeNode),
				Descriptors: descriptors,
				Kind:        kind,
			})

		case len(descriptors) > 0:
			init, last := descriptors[:len(descriptors)-1], descriptors[len(descriptors)-1]

			transformedNames, hasTransform := cfg.Transform(uint32(m.PatternIndex), last.Name)
			switch {
			case hasTransform:
				for _, newName := range transformedNames {
					d := make([]symbol.Descriptor, 0, len(init)+1)
					d = append(d, init...)
					d = append(d, symbol.Descriptor{Name: newName, Suffix: last.Suffix, Disambiguator: last.Disambiguator})
					pendingGlobals = append(pendingGlobals, Global{
						Range:       nodeRange(node),
						Enclosing:   enclosingRangeOf(enclosingNode),
						Descriptors: d,
						Kind:        kind,
					})
				}
			case isReference:
				references = append(references, Reference{
					Range:       nodeRange(node),
					Descriptors: descriptors,
					Kind:        kind,
				})
			default:
				pendingGlobals = append(pendingGlobals, Global{
					Range:       nodeRange(node),
					Enclosing:   enclosingRangeOf(enclosingNode),
					Descriptors: descriptors,
					Kind:        kind,
				})
			}
		}

		markLocal(ranges, localNode)
	}

	// Pre-order: ascending start position, ties broken by the later end
	// first. Outer scopes (earlier start, later end) sort before scopes
	// nested inside them, even when both start on the same line, so each
	// scope's parent is already in the tree by the time it is inserted.
	sort.SliceStable(scopes, func(i, j int) bool {
		a, b := scopes[i].ScopeRange, scopes[j].ScopeRange
		if a.StartLine != b.StartLine {
			return a.StartLine < b.StartLine
		}
		if a.StartCol != b.StartCol {
			return a.StartCol < b.StartCol
		}
		if a.EndLine != b.EndLine {
			return a.EndLine > b.EndLine
		}
		return a.EndCol > b.EndCol
	})
	for _, s := range scopes {
		root.InsertScope(s)
	}

	for _, g := range pendingGlobals {
		root.InsertGlobal(g)
	}
	for _, r := range references {
		root.InsertReference(r)
	}

	return root, len(pendingGlobals), nil
}

func markLocal(ranges *localRanges, n *sitter.Node) {
	if n != nil {
		ranges.set(int(n.StartByte()), int(n.EndByte()))
	}
}

func enclosingRangeOf(n *sitter.Node) *rng.Range {
	if n == nil {
		return nil
	}
	r := nodeRange(n)
	return &r
}
