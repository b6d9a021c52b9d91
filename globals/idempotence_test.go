package globals_test

import (
	"testing"

	"github.com/smacker/go-tree-sitter/golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/scipsyntax/globals"
	"github.com/viant/scipsyntax/query"
)

// TestBenchmarkCorpus_IsIdempotent exercises spec.md §8's determinism
// property: repeated extraction over the same bytes and language produces
// byte-identical occurrence lists.
func TestBenchmarkCorpus_IsIdempotent(t *testing.T) {
	cfg, err := query.NewTagConfiguration(golang.GetLanguage(), tagsQuery)
	require.NoError(t, err)

	results, err := globals.BenchmarkCorpus(cfg, "demo.go", []byte(source), 5)
	require.NoError(t, err)
	require.Len(t, results, 5)

	first := results[0].Document
	for i, r := range results[1:] {
		assert.Equal(t, first, r.Document, "iteration %d diverged from iteration 0", i+1)
	}
}
