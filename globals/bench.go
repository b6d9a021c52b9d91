package globals

import (
	"context"
	"time"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/scipsyntax/query"
	"github.com/viant/scipsyntax/symbol"
)

// CorpusResult holds one BenchmarkCorpus iteration's output alongside how
// long it took to produce it.
type CorpusResult struct {
	Document symbol.Document
	Elapsed  time.Duration
}

// BenchmarkCorpus reparses source from scratch iterations times and runs
// ParseTree+IntoDocument over each fresh tree, timing every pass. Adapted
// from perf-ctags.rs's timed extraction loop; it is a plain helper, not a
// go test -bench harness, and exists so a test can assert the idempotence
// property (spec.md §8: running globals extraction twice on the same bytes
// and language produces byte-identical occurrence lists) by comparing every
// CorpusResult.Document in the returned slice.
func BenchmarkCorpus(cfg *query.TagConfiguration, relativePath string, source []byte, iterations int) ([]CorpusResult, error) {
	results := make([]CorpusResult, 0, iterations)
	for i := 0; i < iterations; i++ {
		start := time.Now()

		parser := sitter.NewParser()
		parser.SetLanguage(cfg.Language)
		tree, err := parser.ParseCtx(context.Background(), nil, source)
		if err != nil {
			return nil, err
		}

		root, hint, err := ParseTree(cfg, tree, source)
		if err != nil {
			return nil, err
		}
		doc := root.IntoDocument(relativePath, hint, nil)

		results = append(results, CorpusResult{Document: doc, Elapsed: time.Since(start)})
	}
	return results, nil
}
