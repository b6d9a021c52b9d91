// Package indexer orchestrates one file's full run through the engines
// (globals extraction and locals resolution) into a single symbol.Document,
// the way index.rs's index_content composes get_globals/get_locals per
// AnalysisMode.
package indexer

import (
	"context"
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/scipsyntax/config"
	"github.com/viant/scipsyntax/ctags"
	"github.com/viant/scipsyntax/globals"
	"github.com/viant/scipsyntax/locals"
	"github.com/viant/scipsyntax/query"
	"github.com/viant/scipsyntax/symbol"
)

// File runs the engines selected by opts.AnalysisMode over data, parsed
// with langID's compiled queries from registry, and returns the resulting
// Document stamped with its content hash (spec.md §8).
func File(ctx context.Context, registry *query.Registry, opts config.IndexOptions, langID, relativePath string, data []byte) (symbol.Document, error) {
	tagCfg, err := registry.TagConfiguration(langID)
	if err != nil {
		return symbol.Document{}, fmt.Errorf("no globals query for %s: %w", langID, err)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(tagCfg.Language)
	tree, err := parser.ParseCtx(ctx, nil, data)
	if err != nil {
		return symbol.Document{}, fmt.Errorf("parsing %s: %w", relativePath, err)
	}

	var doc symbol.Document
	if opts.AnalysisMode.IncludesGlobals() {
		root, hint, err := globals.ParseTree(tagCfg, tree, data)
		if err != nil {
			return symbol.Document{}, fmt.Errorf("globals extraction for %s: %w", relativePath, err)
		}
		doc = root.IntoDocument(relativePath, hint, nil)
	} else {
		doc = symbol.Document{RelativePath: relativePath}
	}

	if opts.AnalysisMode.IncludesLocals() {
		localCfg, err := registry.LocalConfiguration(langID)
		if err != nil {
			return symbol.Document{}, fmt.Errorf("no locals query for %s: %w", langID, err)
		}
		localOccs, err := locals.ParseTree(localCfg, tree, data, locals.Options{EmitGlobalReferences: !opts.AnalysisMode.IncludesGlobals()})
		if err != nil {
			return symbol.Document{}, fmt.Errorf("locals resolution for %s: %w", relativePath, err)
		}
		doc.Occurrences = append(doc.Occurrences, localOccs...)
	}

	// Both engines return their own occurrence lists sorted by position,
	// but appending globals' list followed by locals' list is not itself
	// sorted: a final merge-by-position pass is required to satisfy
	// spec.md §5 "Ordering" and the §8 invariant on the document handed
	// back to the caller.
	sort.SliceStable(doc.Occurrences, func(i, j int) bool {
		return rangeVecLess(doc.Occurrences[i].Range, doc.Occurrences[j].Range)
	})

	hash, err := ctags.Hash(data)
	if err != nil {
		return symbol.Document{}, fmt.Errorf("hashing %s: %w", relativePath, err)
	}
	doc.ContentHash = hash

	return doc, nil
}

// rangeVecLess compares two packed symbol.Occurrence.Range vectors
// ([]int32{startLine, startCol, ...}) by (start_line, start_col) ascending.
func rangeVecLess(a, b []int32) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}
