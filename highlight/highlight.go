package highlight

import (
	"context"
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/scipsyntax/rng"
	"github.com/viant/scipsyntax/symbol"
)

// span is one highlight capture, collapsed to its byte extent and kind.
type span struct {
	start, end uint32
	kind       symbol.SyntaxKind
}

// Highlight normalizes CRLF to LF, parses source with cfg's language, and
// returns one SCIP occurrence per segment between consecutive capture
// boundaries, tagged with the SyntaxKind of the innermost capture active
// over it (spec.md §4.5). Adjacent segments of the same kind are not
// merged into one occurrence. The normalized source is returned alongside
// so callers enriching with locals symbols resolve against the same byte
// offsets the occurrences were computed from.
func Highlight(ctx context.Context, cfg *Configuration, source []byte) ([]symbol.Occurrence, []byte, error) {
	normalized := normalizeCRLF(source)

	parser := sitter.NewParser()
	parser.SetLanguage(cfg.Language)
	tree, err := parser.ParseCtx(ctx, nil, normalized)
	if err != nil {
		return nil, normalized, fmt.Errorf("parsing for highlight: %w", err)
	}

	spans := collectSpans(cfg, tree, normalized)
	occs := renderOccurrences(spans, normalized)
	return occs, normalized, nil
}

func normalizeCRLF(source []byte) []byte {
	if !containsCR(source) {
		return source
	}
	out := make([]byte, 0, len(source))
	for i := 0; i < len(source); i++ {
		if source[i] == '\r' && i+1 < len(source) && source[i+1] == '\n' {
			continue
		}
		out = append(out, source[i])
	}
	return out
}

func containsCR(source []byte) bool {
	for _, b := range source {
		if b == '\r' {
			return true
		}
	}
	return false
}

// collectSpans runs the highlight query and flattens every recognized
// capture into a span, deduplicating captures that cover the exact same
// byte range (the first pattern to claim a range wins, mirroring
// tree-sitter-highlight's "already highlighted... skip over this one").
func collectSpans(cfg *Configuration, tree *sitter.Tree, source []byte) []span {
	cursor := sitter.NewQueryCursor()
	cursor.Exec(cfg.Query, tree.RootNode())

	var spans []span
	seen := map[[2]uint32]bool{}

	for {
		m, ok := cursor.NextMatch()
		if !ok {
			break
		}
		for _, capture := range m.Captures {
			name := cfg.Query.CaptureNameForId(capture.Index)
			kind, ok := cfg.kindForCapture(name)
			if !ok {
				continue
			}
			key := [2]uint32{capture.Node.StartByte(), capture.Node.EndByte()}
			if seen[key] {
				continue
			}
			seen[key] = true
			spans = append(spans, span{start: key[0], end: key[1], kind: kind})
		}
	}

	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end > spans[j].end
	})
	return spans
}

// renderOccurrences sweeps the sorted spans with a highlight-end stack,
// exactly the shape of tree-sitter-highlight's HighlightStart/Source/
// HighlightEnd event stream, collapsed directly into non-overlapping
// occurrences instead of an intermediate event channel. Gaps where no
// capture is active produce no occurrence: emitting one for every
// uncaptured byte of the file would be pure filler no SCIP consumer reads.
func renderOccurrences(spans []span, source []byte) []symbol.Occurrence {
	li := newLineIndex(source)
	var occs []symbol.Occurrence
	var stack []span
	var pos uint32

	emit := func(from, to uint32, kind symbol.SyntaxKind) {
		if from >= to || kind == symbol.UnspecifiedSyntaxKind {
			return
		}
		start := li.point(from)
		end := li.point(to)
		occs = append(occs, symbol.Occurrence{
			Range:      rng.New(int(start.Row), int(start.Column), int(end.Row), int(end.Column)).ToVec(),
			SyntaxKind: kind,
		})
	}

	topKind := func() symbol.SyntaxKind {
		if len(stack) == 0 {
			return symbol.UnspecifiedSyntaxKind
		}
		return stack[len(stack)-1].kind
	}

	for _, s := range spans {
		for len(stack) > 0 && stack[len(stack)-1].end <= s.start {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if pos < top.end {
				emit(pos, top.end, top.kind)
				pos = top.end
			}
		}
		if s.start > pos {
			emit(pos, s.start, topKind())
			pos = s.start
		}
		stack = append(stack, s)
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if pos < top.end {
			emit(pos, top.end, top.kind)
			pos = top.end
		}
	}

	return occs
}

// lineIndex converts a byte offset into a tree-sitter-style (row, column)
// point, needed because highlight segment boundaries don't necessarily
// align with any single AST node's own start/end point.
type lineIndex struct {
	lineStarts []uint32
}

func newLineIndex(source []byte) *lineIndex {
	starts := []uint32{0}
	for i, b := range source {
		if b == '\n' {
			starts = append(starts, uint32(i+1))
		}
	}
	return &lineIndex{lineStarts: starts}
}

func (l *lineIndex) point(offset uint32) sitter.Point {
	lo, hi, line := 0, len(l.lineStarts)-1, 0
	for lo <= hi {
		mid := (lo + hi) / 2
		if l.lineStarts[mid] <= offset {
			line = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return sitter.Point{Row: uint32(line), Column: offset - l.lineStarts[line]}
}
