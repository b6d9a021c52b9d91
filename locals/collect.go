package locals

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/scipsyntax/query"
)

// collect implements spec.md §4.2 step 1: a single pass over query
// matches producing three ordered vectors of raw captures, with
// `@occurrence.skip` offsets dropped and adjacent same-start-byte
// captures deduplicated.
func collect(cfg *query.LocalConfiguration, tree *sitter.Tree, source []byte) ([]pendingScope, []pendingDefinition, []pendingReference, error) {
	cursor := sitter.NewQueryCursor()
	cursor.Exec(cfg.Query, tree.RootNode())

	var scopes []pendingScope
	var defs []pendingDefinition
	var refs []pendingReference

	skip := map[uint32]bool{}
	seenDefStart := map[uint32]bool{}
	seenRefStart := map[uint32]bool{}

	for {
		m, ok := cursor.NextMatch()
		if !ok {
			break
		}

		var (
			node       *sitter.Node
			scopeNode  *sitter.Node
			scopeKind  string
			defNode    *sitter.Node
			refNode    *sitter.Node
			refVisible = VisibilityLocal
			globalKind string
		)

		for _, capture := range m.Captures {
			name := cfg.Query.CaptureNameForId(capture.Index)
			captureNode := capture.Node
			node = captureNode

			switch {
			case name == "occurrence.skip":
				skip[captureNode.StartByte()] = true
			case strings.HasPrefix(name, "scope"):
				scopeNode = captureNode
				if _, kind, found := strings.Cut(name, "."); found {
					scopeKind = kind
				}
			case strings.HasPrefix(name, "definition"):
				defNode = captureNode
			case strings.HasPrefix(name, "reference"):
				refNode = captureNode
				if kind, ok := cfg.PropertyValue(uint32(m.PatternIndex), "kind"); ok {
					refVisible = VisibilityGlobal
					globalKind = kind
				}
			}
		}

		if node == nil {
			continue
		}
		if skip[node.StartByte()] {
			continue
		}

		switch {
		case defNode != nil:
			if seenDefStart[defNode.StartByte()] {
				continue
			}
			seenDefStart[defNode.StartByte()] = true

			hoist, _ := cfg.PropertyValue(uint32(m.PatternIndex), "hoist")
			defRef := false
			if v, ok := cfg.PropertyValue(uint32(m.PatternIndex), "def_ref"); ok && v == "true" {
				defRef = true
			}
			reassignment := NewestIsDefinition
			if v, ok := cfg.PropertyValue(uint32(m.PatternIndex), "reassignment_behavior"); ok {
				switch v {
				case "newest_is_definition":
					reassignment = NewestIsDefinition
				case "oldest_is_definition":
					reassignment = OldestIsDefinition
				}
			}

			defs = append(defs, pendingDefinition{
				Name:                 defNode.Content(source),
				Range:                nodeRange(defNode),
				Hoist:                hoist,
				DefRef:               defRef,
				ReassignmentBehavior: reassignment,
			})

		case refNode != nil:
			if seenRefStart[refNode.StartByte()] {
				continue
			}
			seenRefStart[refNode.StartByte()] = true

			refs = append(refs, pendingReference{
				Name:       refNode.Content(source),
				Range:      nodeRange(refNode),
				Visibility: refVisible,
				GlobalKind: globalKind,
			})

		case scopeNode != nil:
			scopes = append(scopes, pendingScope{Kind: scopeKind, Range: nodeRange(scopeNode)})
		}
	}

	return scopes, defs, refs, nil
}
