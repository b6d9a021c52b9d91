package ctags

import "github.com/viant/scipsyntax/symbol"

// kindFor derives a ctags "kind" string from a descriptor's suffix, unless
// the scope/global carries a more specific InfoKind override (spec.md
// §4.4: "derived from descriptor suffix unless a more specific
// SymbolInformation.kind overrides"). Grounded on ts_scip.rs's
// symbol_kind_to_ctags_kind (the override table) composed with ctags.rs's
// suffix_to_string (the fallback table).
func kindFor(suffix symbol.Suffix, info symbol.InfoKind) string {
	switch info {
	case symbol.KindConstant:
		return "constant"
	case symbol.KindPackage:
		return "package"
	case symbol.KindFunction:
		return "function"
	}

	switch suffix {
	case symbol.Namespace:
		return "namespace"
	case symbol.Method:
		return "method"
	case symbol.Type:
		return "type"
	default:
		return "variable"
	}
}
