// Package rng implements the compact line/column range used throughout the
// symbol resolution engine: a half-open region of source text expressed in
// 0-indexed tree-sitter row/column coordinates.
package rng

import "fmt"

// Range is a tuple (StartLine, StartCol, EndLine, EndCol) in 0-indexed
// positions, as produced by tree-sitter's Node.StartPoint()/EndPoint().
type Range struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// New builds a Range from explicit coordinates.
func New(startLine, startCol, endLine, endCol int) Range {
	return Range{StartLine: startLine, StartCol: startCol, EndLine: endLine, EndCol: endCol}
}

// SingleLine reports whether the range starts and ends on the same line.
func (r Range) SingleLine() bool {
	return r.StartLine == r.EndLine
}

// Contains reports whether other starts at or after r.Start and ends at or
// before r.End. Equal ranges contain one another.
func (r Range) Contains(other Range) bool {
	return !r.startsAfter(other) && !r.endsBefore(other)
}

func (r Range) startsAfter(other Range) bool {
	if r.StartLine != other.StartLine {
		return r.StartLine > other.StartLine
	}
	return r.StartCol > other.StartCol
}

func (r Range) endsBefore(other Range) bool {
	if r.EndLine != other.EndLine {
		return r.EndLine < other.EndLine
	}
	return r.EndCol < other.EndCol
}

// Compare implements the total ordering from spec §3: lexicographic on
// (StartLine, EndLine, StartCol). It returns -1, 0 or 1.
func (r Range) Compare(other Range) int {
	if r.StartLine != other.StartLine {
		return cmpInt(r.StartLine, other.StartLine)
	}
	if r.EndLine != other.EndLine {
		return cmpInt(r.EndLine, other.EndLine)
	}
	return cmpInt(r.StartCol, other.StartCol)
}

// Less reports whether r sorts before other using Compare.
func (r Range) Less(other Range) bool {
	return r.Compare(other) < 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// ToVec serializes the range as a packed integer vector: 3 elements when
// single-line ([line, startCol, endCol]), 4 otherwise.
func (r Range) ToVec() []int32 {
	if r.SingleLine() {
		return []int32{int32(r.StartLine), int32(r.StartCol), int32(r.EndCol)}
	}
	return []int32{int32(r.StartLine), int32(r.StartCol), int32(r.EndLine), int32(r.EndCol)}
}

// FromVec parses a packed integer vector produced by ToVec. It returns false
// if the vector has a length other than 3 or 4.
func FromVec(v []int32) (Range, bool) {
	switch len(v) {
	case 3:
		return Range{
			StartLine: int(v[0]),
			StartCol:  int(v[1]),
			EndLine:   int(v[0]),
			EndCol:    int(v[2]),
		}, true
	case 4:
		return Range{
			StartLine: int(v[0]),
			StartCol:  int(v[1]),
			EndLine:   int(v[2]),
			EndCol:    int(v[3]),
		}, true
	default:
		return Range{}, false
	}
}

// EqVec reports whether r is equal to the range encoded by v. It returns
// false if v is not a valid packed range vector.
func (r Range) EqVec(v []int32) bool {
	other, ok := FromVec(v)
	if !ok {
		return false
	}
	return r == other
}

func (r Range) String() string {
	if r.SingleLine() {
		return fmt.Sprintf("%d:%d-%d", r.StartLine, r.StartCol, r.EndCol)
	}
	return fmt.Sprintf("%d:%d-%d:%d", r.StartLine, r.StartCol, r.EndLine, r.EndCol)
}
