package symbol

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSymbol parses a symbol string produced by FormatSymbol, satisfying
// the round-trip property in spec.md §8:
// ParseSymbol(FormatSymbol(s)) == s for every s the engine produces.
func ParseSymbol(input string) (Symbol, error) {
	p := &parser{input: input}
	if rest, ok := strings.CutPrefix(p.input, "local "); ok {
		id, err := strconv.Atoi(rest)
		if err != nil {
			return Symbol{}, fmt.Errorf("invalid symbol %q: bad local id: %w", input, err)
		}
		return NewLocal(id), nil
	}

	scheme, rest, err := parseSpaceTerminated(p.input)
	if err != nil {
		return Symbol{}, fmt.Errorf("invalid symbol %q: %w", input, err)
	}
	manager, rest, err := parseSpaceTerminated(rest)
	if err != nil {
		return Symbol{}, fmt.Errorf("invalid symbol %q: %w", input, err)
	}
	name, rest, err := parseSpaceTerminated(rest)
	if err != nil {
		return Symbol{}, fmt.Errorf("invalid symbol %q: %w", input, err)
	}
	version, rest, err := parseSpaceTerminated(rest)
	if err != nil {
		return Symbol{}, fmt.Errorf("invalid symbol %q: %w", input, err)
	}

	descriptors, rest, err := parseDescriptors(rest)
	if err != nil {
		return Symbol{}, fmt.Errorf("invalid symbol %q: %w", input, err)
	}
	if rest != "" {
		return Symbol{}, fmt.Errorf("invalid symbol %q: trailing input %q", input, rest)
	}
	if len(descriptors) == 0 {
		return Symbol{}, fmt.Errorf("invalid symbol %q: at least one descriptor required", input)
	}

	return Symbol{
		Scheme:      unescapeSpaceTerminated(scheme),
		Package:     Package{Manager: unescapeSpaceTerminated(manager), Name: unescapeSpaceTerminated(name), Version: unescapeSpaceTerminated(version)},
		Descriptors: descriptors,
	}, nil
}

type parser struct {
	input string
}

// parseSpaceTerminated consumes characters up to (and including) the next
// unescaped space. A doubled space ("  ") is an escaped literal space
// within the field and does not terminate it.
func parseSpaceTerminated(s string) (field, rest string, err error) {
	var b strings.Builder
	i := 0
	for i < len(s) {
		if s[i] == ' ' {
			if i+1 < len(s) && s[i+1] == ' ' {
				b.WriteByte(' ')
				i += 2
				continue
			}
			return b.String(), s[i+1:], nil
		}
		b.WriteByte(s[i])
		i++
	}
	return "", "", fmt.Errorf("expected space-terminated field, got %q", s)
}

func unescapeSpaceTerminated(s string) string {
	return s
}

// parseDescriptors parses one or more descriptors until input is exhausted.
func parseDescriptors(s string) ([]Descriptor, string, error) {
	var descriptors []Descriptor
	for s != "" {
		d, rest, err := parseDescriptor(s)
		if err != nil {
			break
		}
		descriptors = append(descriptors, d)
		s = rest
	}
	return descriptors, s, nil
}

func parseDescriptor(s string) (Descriptor, string, error) {
	if s == "" {
		return Descriptor{}, s, fmt.Errorf("empty descriptor")
	}

	switch s[0] {
	case '(':
		// Could be Parameter "(name)" or Method "name(disambig)."
		// Parameter descriptors only occur at the start of a segment, so
		// '(' as the very first byte always means Parameter.
		name, rest, err := parseDelimited(s, '(', ')')
		if err != nil {
			return Descriptor{}, s, err
		}
		return Descriptor{Name: unescapeName(name), Suffix: Parameter}, rest, nil
	case '[':
		name, rest, err := parseDelimited(s, '[', ']')
		if err != nil {
			return Descriptor{}, s, err
		}
		return Descriptor{Name: unescapeName(name), Suffix: TypeParameter}, rest, nil
	}

	// rest here starts AT the sigil character (inclusive); each case below
	// decides whether to consume it as a single byte or hand it to
	// parseDelimited (the Method case, where the sigil is itself '(').
	name, rest, sigil, err := parseNameAndSigil(s)
	if err != nil {
		return Descriptor{}, s, err
	}

	switch sigil {
	case '/':
		return Descriptor{Name: name, Suffix: Namespace}, rest[1:], nil
	case '#':
		return Descriptor{Name: name, Suffix: Type}, rest[1:], nil
	case '.':
		return Descriptor{Name: name, Suffix: Term}, rest[1:], nil
	case ':':
		return Descriptor{Name: name, Suffix: Meta}, rest[1:], nil
	case '!':
		return Descriptor{Name: name, Suffix: Macro}, rest[1:], nil
	case '(':
		// Method: name(disambiguator).
		disambig, rest2, err := parseDelimited(rest, '(', ')')
		if err != nil {
			return Descriptor{}, s, err
		}
		if !strings.HasPrefix(rest2, ".") {
			return Descriptor{}, s, fmt.Errorf("expected '.' after method disambiguator in %q", s)
		}
		return Descriptor{Name: name, Suffix: Method, Disambiguator: disambig}, rest2[1:], nil
	default:
		return Descriptor{}, s, fmt.Errorf("unrecognized descriptor sigil in %q", s)
	}
}

// parseNameAndSigil reads a (possibly backtick-quoted) name and reports the
// sigil byte that terminates it. rest is positioned AT the sigil (not past
// it) so callers needing more than one lookahead byte (the Method '(' case)
// can still see it.
func parseNameAndSigil(s string) (name, rest string, sigil byte, err error) {
	if strings.HasPrefix(s, "`") {
		inner, after, err := parseBacktickName(s)
		if err != nil {
			return "", s, 0, err
		}
		if after == "" {
			return "", s, 0, fmt.Errorf("missing sigil after backtick-quoted name in %q", s)
		}
		return inner, after, after[0], nil
	}

	i := 0
	for i < len(s) && isSimpleIdentifierChar(rune(s[i])) {
		i++
	}
	if i == len(s) {
		return "", s, 0, fmt.Errorf("missing sigil in %q", s)
	}
	return s[:i], s[i:], s[i], nil
}

func parseBacktickName(s string) (name, rest string, err error) {
	if !strings.HasPrefix(s, "`") {
		return "", s, fmt.Errorf("expected backtick in %q", s)
	}
	var b strings.Builder
	i := 1
	for i < len(s) {
		if s[i] == '`' {
			if i+1 < len(s) && s[i+1] == '`' {
				b.WriteByte('`')
				i += 2
				continue
			}
			return b.String(), s[i+1:], nil
		}
		b.WriteByte(s[i])
		i++
	}
	return "", "", fmt.Errorf("unterminated backtick-quoted name in %q", s)
}

func unescapeName(s string) string {
	if strings.HasPrefix(s, "`") && strings.HasSuffix(s, "`") && len(s) >= 2 {
		inner := s[1 : len(s)-1]
		return strings.ReplaceAll(inner, "``", "`")
	}
	return s
}

// parseDelimited parses a backtick-name-or-plain-name enclosed in open/close,
// e.g. "(foo)" -> "foo", "[`a b`]" -> "a b".
func parseDelimited(s string, open, closeCh byte) (inner, rest string, err error) {
	if len(s) == 0 || s[0] != open {
		return "", s, fmt.Errorf("expected %q in %q", open, s)
	}
	body := s[1:]
	if strings.HasPrefix(body, "`") {
		name, after, err := parseBacktickName(body)
		if err != nil {
			return "", s, err
		}
		if !strings.HasPrefix(after, string(closeCh)) {
			return "", s, fmt.Errorf("expected %q in %q", closeCh, s)
		}
		return name, after[1:], nil
	}
	idx := strings.IndexByte(body, closeCh)
	if idx < 0 {
		return "", s, fmt.Errorf("unterminated delimiter in %q", s)
	}
	return body[:idx], body[idx+1:], nil
}
