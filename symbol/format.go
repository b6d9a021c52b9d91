package symbol

import "strings"

// isSimpleIdentifierChar reports whether r may appear in a descriptor name
// without being wrapped in backticks (scip_strict::parse::is_simple_identifier_char).
func isSimpleIdentifierChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '_' || r == '+' || r == '-' || r == '$':
		return true
	default:
		return false
	}
}

func escapeName(name string) string {
	simple := true
	for _, r := range name {
		if !isSimpleIdentifierChar(r) {
			simple = false
			break
		}
	}
	if simple {
		return name
	}
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func escapeSpaceTerminated(s string) string {
	if strings.Contains(s, " ") {
		return strings.ReplaceAll(s, " ", "  ")
	}
	return s
}

// FormatDescriptor renders a single descriptor with its sigil.
func FormatDescriptor(d Descriptor) string {
	name := escapeName(d.Name)
	switch d.Suffix {
	case Namespace:
		return name + "/"
	case Type:
		return name + "#"
	case Term:
		return name + "."
	case Meta:
		return name + ":"
	case Macro:
		return name + "!"
	case Method:
		return name + "(" + d.Disambiguator + ")."
	case TypeParameter:
		return "[" + name + "]"
	case Parameter:
		return "(" + name + ")"
	default:
		return name + "."
	}
}

// FormatSymbol serializes a Symbol per the SCIP grammar (spec.md §6):
//
//	scheme SP manager SP name SP version SP descriptors...
//
// (descriptors are concatenated directly, with no separating space) or, for
// a local symbol, the literal string "local <id>".
func FormatSymbol(s Symbol) string {
	if s.Local {
		return "local " + itoa(s.LocalID)
	}

	var b strings.Builder
	b.WriteString(escapeSpaceTerminated(s.Scheme))
	b.WriteByte(' ')
	b.WriteString(escapeSpaceTerminated(s.Package.Manager))
	b.WriteByte(' ')
	b.WriteString(escapeSpaceTerminated(s.Package.Name))
	b.WriteByte(' ')
	b.WriteString(escapeSpaceTerminated(s.Package.Version))
	b.WriteByte(' ')
	for _, d := range s.Descriptors {
		b.WriteString(FormatDescriptor(d))
	}

	out := b.String()
	if strings.HasSuffix(out, " ") {
		out = out[:len(out)-1]
	}
	return out
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
