package highlight

import (
	"sort"

	"github.com/viant/scipsyntax/symbol"
)

// MergeStats reports how many locals occurrences could not be matched to a
// highlight occurrence during EnrichWithLocals (spec.md §4.5: "a locals
// occurrence with no range-equal highlight occurrence is silently
// dropped").
type MergeStats struct {
	Dropped int
}

// EnrichWithLocals copies symbol/symbol_roles from each locals occurrence
// onto the highlight occurrence sharing its exact range, per spec.md §4.5.
// Both slices are sorted by range first. locals should have been produced
// with locals.Options{EmitGlobalReferences: false}.
func EnrichWithLocals(highlights, locals []symbol.Occurrence) ([]symbol.Occurrence, MergeStats) {
	out := make([]symbol.Occurrence, len(highlights))
	copy(out, highlights)
	sort.SliceStable(out, func(i, j int) bool { return rangeLess(out[i].Range, out[j].Range) })

	sortedLocals := make([]symbol.Occurrence, len(locals))
	copy(sortedLocals, locals)
	sort.SliceStable(sortedLocals, func(i, j int) bool { return rangeLess(sortedLocals[i].Range, sortedLocals[j].Range) })

	byRange := make(map[string]int, len(out))
	for i, o := range out {
		byRange[rangeKey(o.Range)] = i
	}

	var stats MergeStats
	for _, l := range sortedLocals {
		idx, ok := byRange[rangeKey(l.Range)]
		if !ok {
			stats.Dropped++
			continue
		}
		out[idx].Symbol = l.Symbol
		out[idx].SymbolRoles = l.SymbolRoles
	}

	return out, stats
}

func rangeKey(r []int32) string {
	b := make([]byte, 0, len(r)*5)
	for _, v := range r {
		b = append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24), ',')
	}
	return string(b)
}

func rangeLess(a, b []int32) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
