package symbol

// SyntaxKind is the fixed enumeration highlight occurrences are tagged
// with (spec.md §4.5). The capture-name → kind table below is the union
// across supported languages and is the single source of truth for that
// mapping, ported from
// scip-treesitter-languages/src/highlights.rs::MATCHES_TO_SYNTAX_KINDS.
type SyntaxKind int

const (
	UnspecifiedSyntaxKind SyntaxKind = iota
	Comment
	StringLiteral
	StringLiteralEscape
	CharacterLiteral
	NumericLiteral
	BooleanLiteral
	Identifier
	IdentifierBuiltin
	IdentifierNull
	IdentifierConstant
	IdentifierMutableGlobal
	IdentifierParameter
	IdentifierModule
	IdentifierFunction
	IdentifierFunctionDefinition
	IdentifierMacro
	IdentifierMacroDefinition
	IdentifierType
	IdentifierBuiltinType
	IdentifierAttribute
	IdentifierKeyword
	IdentifierOperator
	PunctuationDelimiter
	TagAttribute
	RegexDelimiter
	RegexJoin
	RegexEscape
	RegexRepeated
	RegexWildcard
)

// CaptureNameToSyntaxKind is the ordered capture-group → SyntaxKind table.
// Lookup uses a map built from this slice, read top-to-bottom, so if a
// capture name were listed more than once the final entry would win; no
// name is currently listed twice. This matches the original's behavior of
// compiling the list into a lookup structure once at startup.
var CaptureNameToSyntaxKind = []struct {
	Capture string
	Kind    SyntaxKind
}{
	{"boolean", BooleanLiteral},
	{"character", CharacterLiteral},
	{"comment", Comment},
	{"conditional", IdentifierKeyword},
	{"constant", IdentifierConstant},
	{"identifier.constant", IdentifierConstant},
	{"constant.builtin", IdentifierBuiltin},
	{"constant.null", IdentifierNull},
	{"float", NumericLiteral},
	{"function", IdentifierFunction},
	{"method", IdentifierFunction},
	{"identifier.function", IdentifierFunction},
	{"function.builtin", IdentifierBuiltin},
	{"identifier.builtin", IdentifierBuiltin},
	{"identifier", Identifier},
	{"identifier.attribute", IdentifierAttribute},
	{"tag.attribute", TagAttribute},
	{"include", IdentifierKeyword},
	{"keyword", IdentifierKeyword},
	{"keyword.function", IdentifierKeyword},
	{"keyword.return", IdentifierKeyword},
	{"number", NumericLiteral},
	{"operator", IdentifierOperator},
	{"identifier.operator", IdentifierOperator},
	{"property", Identifier},
	{"punctuation", UnspecifiedSyntaxKind},
	{"punctuation.bracket", UnspecifiedSyntaxKind},
	{"punctuation.delimiter", PunctuationDelimiter},
	{"string", StringLiteral},
	{"string.special", StringLiteral},
	{"string.escape", StringLiteralEscape},
	{"tag", UnspecifiedSyntaxKind},
	{"type", IdentifierType},
	{"identifier.type", IdentifierType},
	{"type.builtin", IdentifierBuiltinType},
	{"regex.delimiter", RegexDelimiter},
	{"regex.join", RegexJoin},
	{"regex.escape", RegexEscape},
	{"regex.repeated", RegexRepeated},
	{"regex.wildcard", RegexWildcard},
	{"variable", Identifier},
	{"variable.builtin", IdentifierBuiltin},
	{"identifier.parameter", IdentifierParameter},
	{"variable.parameter", IdentifierParameter},
	{"identifier.module", IdentifierModule},
	{"variable.module", IdentifierModule},
}

// BuildSyntaxKindTable compiles CaptureNameToSyntaxKind into a lookup map,
// once, at configuration-load time (spec.md §9 "lazy statics").
func BuildSyntaxKindTable() map[string]SyntaxKind {
	m := make(map[string]SyntaxKind, len(CaptureNameToSyntaxKind))
	for _, e := range CaptureNameToSyntaxKind {
		m[e.Capture] = e.Kind
	}
	return m
}
