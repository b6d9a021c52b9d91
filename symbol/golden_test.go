package symbol_test

import (
	"testing"

	"github.com/viant/scipsyntax/internal/golden"
	"github.com/viant/scipsyntax/symbol"
)

// TestFormatSymbol_MatchesGoldenDump exercises the txtar/go-difflib golden-
// fixture format (SPEC_FULL §2 "Test tooling"): fixed pack inputs feed a
// deterministic Go function, and the rendered result is diffed against a
// checked-in snapshot instead of a hand-written inline assertion.
func TestFormatSymbol_MatchesGoldenDump(t *testing.T) {
	archive := golden.Load(t, "testdata/format_global.txtar")

	sym := symbol.NewGlobal("scip-ctags", symbol.Package{Manager: "go", Name: "example.com/mod", Version: "v1"}, []symbol.Descriptor{
		{Name: "pkg", Suffix: symbol.Namespace},
		{Name: "Foo", Suffix: symbol.Type},
		{Name: "Bar", Suffix: symbol.Method, Disambiguator: "x"},
	})

	golden.Assert(t, archive, symbol.FormatSymbol(sym)+"\n")
}
