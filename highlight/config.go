// Package highlight implements the highlight engine (spec.md §4.5):
// evaluating a tree-sitter highlight query into non-overlapping SyntaxKind
// occurrences, and merging in locals-engine symbols by identical range.
//
// Grounded on the HighlightEndStack event algorithm from the Go port of
// tree-sitter-highlight found alongside this pack (noClaps/go-tree-sitter-
// highlight's highlightIter.next), adapted to this module's
// smacker/go-tree-sitter-based QueryCursor API and narrowed to a single
// query layer: no injections, no query-local-variable tracking, since this
// engine's own locals package already resolves local symbols and is merged
// in afterward by range.
package highlight

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/scipsyntax/symbol"
)

// Configuration is a compiled highlight query together with the capture
// name -> SyntaxKind table used to resolve each capture as it's matched.
type Configuration struct {
	Language *sitter.Language
	Query    *sitter.Query
	table    map[string]symbol.SyntaxKind
}

// NewConfiguration compiles a highlight query (spec.md §6: ".scm query
// files... opaque text consumed by tree-sitter's query compiler").
func NewConfiguration(lang *sitter.Language, src string) (*Configuration, error) {
	q, err := sitter.NewQuery([]byte(src), lang)
	if err != nil {
		return nil, fmt.Errorf("compiling highlight query: %w", err)
	}
	return &Configuration{Language: lang, Query: q, table: symbol.BuildSyntaxKindTable()}, nil
}

// kindForCapture resolves a capture name to a SyntaxKind, falling back to
// progressively shorter dot-separated prefixes (e.g. "function.method.
// builtin" -> "function.method" -> "function") the way tree-sitter
// highlight capture names are conventionally structured from most to least
// specific, since CaptureNameToSyntaxKind only lists the common compound
// forms explicitly.
func (c *Configuration) kindForCapture(name string) (symbol.SyntaxKind, bool) {
	for name != "" {
		if kind, ok := c.table[name]; ok {
			return kind, true
		}
		idx := strings.LastIndexByte(name, '.')
		if idx < 0 {
			break
		}
		name = name[:idx]
	}
	return symbol.UnspecifiedSyntaxKind, false
}
