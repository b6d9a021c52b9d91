package symbol_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/scipsyntax/symbol"
)

func TestFormatSymbol_Local(t *testing.T) {
	got := symbol.FormatSymbol(symbol.NewLocal(42))
	assert.Equal(t, "local 42", got)
}

func TestFormatSymbol_Global(t *testing.T) {
	s := symbol.NewGlobal("scip-ctags", symbol.Package{Manager: "go", Name: "example.com/mod", Version: "."}, []symbol.Descriptor{
		{Name: "mypkg", Suffix: symbol.Namespace},
		{Name: "MyType", Suffix: symbol.Type},
		{Name: "MyMethod", Suffix: symbol.Method, Disambiguator: ""},
	})
	got := symbol.FormatSymbol(s)
	assert.Equal(t, "scip-ctags go example.com/mod . mypkg/MyType#MyMethod().", got)
}

func TestFormatSymbol_EscapesSpecialNames(t *testing.T) {
	s := symbol.NewGlobal("scip-ctags", symbol.Package{Manager: "go", Name: "m", Version: "."}, []symbol.Descriptor{
		{Name: "weird name", Suffix: symbol.Term},
	})
	got := symbol.FormatSymbol(s)
	assert.Equal(t, "scip-ctags go m . `weird name`.", got)
}

func TestSymbolRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		sym  symbol.Symbol
	}{
		{name: "local", sym: symbol.NewLocal(7)},
		{name: "namespace+type+term", sym: symbol.NewGlobal("scip-ctags", symbol.Package{Manager: "go", Name: "mod", Version: "v1"}, []symbol.Descriptor{
			{Name: "pkg", Suffix: symbol.Namespace},
			{Name: "Foo", Suffix: symbol.Type},
			{Name: "bar", Suffix: symbol.Term},
		})},
		{name: "method with disambiguator", sym: symbol.NewGlobal("scip-syntax", symbol.Package{Manager: ".", Name: ".", Version: "."}, []symbol.Descriptor{
			{Name: "Receiver", Suffix: symbol.Type},
			{Name: "Do", Suffix: symbol.Method, Disambiguator: "1"},
		})},
		{name: "parameter and type parameter", sym: symbol.NewGlobal("scip-syntax", symbol.Package{Manager: ".", Name: ".", Version: "."}, []symbol.Descriptor{
			{Name: "Func", Suffix: symbol.Term},
			{Name: "T", Suffix: symbol.TypeParameter},
			{Name: "x", Suffix: symbol.Parameter},
		})},
		{name: "backtick-escaped name", sym: symbol.NewGlobal("scip-syntax", symbol.Package{Manager: ".", Name: ".", Version: "."}, []symbol.Descriptor{
			{Name: "weird`name", Suffix: symbol.Term},
		})},
		{name: "space-containing scheme and package", sym: symbol.NewGlobal("scip ctags", symbol.Package{Manager: "go mod", Name: "my pkg", Version: "v 1"}, []symbol.Descriptor{
			{Name: "x", Suffix: symbol.Term},
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatted := symbol.FormatSymbol(tt.sym)
			parsed, err := symbol.ParseSymbol(formatted)
			require.NoError(t, err)
			assert.Equal(t, tt.sym, parsed)
		})
	}
}

func TestParseSymbol_RejectsGarbage(t *testing.T) {
	_, err := symbol.ParseSymbol("not a valid symbol at all")
	assert.Error(t, err)
}
