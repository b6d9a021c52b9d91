package globals

import "github.com/viant/scipsyntax/symbol"

// captureNameToDescriptor maps a `@descriptor.*` capture name to a SCIP
// descriptor, ported from ts_scip.rs::capture_name_to_descriptor.
func captureNameToDescriptor(captureName, text string) symbol.Descriptor {
	var suffix symbol.Suffix
	switch captureName {
	case "descriptor.method":
		suffix = symbol.Method
	case "descriptor.namespace":
		suffix = symbol.Namespace
	case "descriptor.type":
		suffix = symbol.Type
	case "descriptor.term":
		suffix = symbol.Term
	default:
		suffix = symbol.UnspecifiedSuffix
	}
	return symbol.Descriptor{Name: text, Suffix: suffix}
}

// captureNameToKind maps a `@kind.*` capture name to a SymbolInformation
// kind, ported from ts_scip.rs::captures_to_kind.
func captureNameToKind(captureName string) symbol.InfoKind {
	switch captureName {
	case "kind.constant":
		return symbol.KindConstant
	case "kind.package":
		return symbol.KindPackage
	case "kind.function":
		return symbol.KindFunction
	default:
		return symbol.KindUnspecified
	}
}
