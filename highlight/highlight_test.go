package highlight_test

import (
	"context"
	"testing"

	"github.com/smacker/go-tree-sitter/golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/scipsyntax/highlight"
	"github.com/viant/scipsyntax/symbol"
)

const highlightQuery = `
(comment) @comment
(function_declaration name: (identifier) @function)
(interpreted_string_literal) @string
(escape_sequence) @string.escape
`

const highlightSource = "package demo\n\n// Run does a thing.\nfunc Run() string {\n\treturn \"a\\nb\"\n}\n"

func TestHighlight_NonOverlappingSpansWithNestedEscape(t *testing.T) {
	cfg, err := highlight.NewConfiguration(golang.GetLanguage(), highlightQuery)
	require.NoError(t, err)

	occs, normalized, err := highlight.Highlight(context.Background(), cfg, []byte(highlightSource))
	require.NoError(t, err)
	assert.Equal(t, []byte(highlightSource), normalized, "no CRLF present, source returned unchanged")

	var kinds []symbol.SyntaxKind
	for _, o := range occs {
		kinds = append(kinds, o.SyntaxKind)
	}
	assert.Contains(t, kinds, symbol.Comment)
	assert.Contains(t, kinds, symbol.IdentifierFunction)
	assert.Contains(t, kinds, symbol.StringLiteral)
	assert.Contains(t, kinds, symbol.StringLiteralEscape)
	assert.NotEmpty(t, occs)
}

func TestHighlight_NormalizesCRLF(t *testing.T) {
	cfg, err := highlight.NewConfiguration(golang.GetLanguage(), highlightQuery)
	require.NoError(t, err)

	src := "package demo\r\n\r\nfunc Run() {}\r\n"
	_, normalized, err := highlight.Highlight(context.Background(), cfg, []byte(src))
	require.NoError(t, err)
	assert.NotContains(t, string(normalized), "\r")
}

func TestEnrichWithLocals_CopiesSymbolByExactRange(t *testing.T) {
	highlights := []symbol.Occurrence{
		{Range: []int32{3, 5, 8}, SyntaxKind: symbol.Identifier},
		{Range: []int32{4, 1, 4}, SyntaxKind: symbol.Identifier},
	}
	locals := []symbol.Occurrence{
		{Range: []int32{3, 5, 8}, Symbol: "local 0", SymbolRoles: symbol.RoleDefinition},
		{Range: []int32{9, 0, 1}, Symbol: "local 1"}, // no matching highlight occurrence
	}

	merged, stats := highlight.EnrichWithLocals(highlights, locals)
	require.Len(t, merged, 2)
	assert.Equal(t, 1, stats.Dropped)

	var found bool
	for _, o := range merged {
		if o.Symbol == "local 0" {
			found = true
			assert.Equal(t, symbol.RoleDefinition, o.SymbolRoles)
		}
	}
	assert.True(t, found)
}
