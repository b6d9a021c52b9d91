// Package golden provides the engines' snapshot-fixture format: a .txtar
// archive holding an "input" source section and an "expected" rendered-
// occurrence-dump section, the Go-idiomatic equivalent of the original's
// insta::assert_snapshot! tests (scip-syntax's globals.rs/locals.rs
// #[test] blocks).
package golden

import (
	"os"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/tools/txtar"
)

// Archive is one loaded fixture: the source text to feed the engine under
// test, and the rendered occurrence dump it must reproduce exactly.
type Archive struct {
	Input    string
	Expected string
}

// Load reads a .txtar file with an input section and an
// "-- expected.txt --" section. The input is the first section with any
// other name (e.g. "-- input.go --" or "-- case --").
func Load(t *testing.T, path string) Archive {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("golden: reading %s: %v", path, err)
	}
	a := txtar.Parse(raw)

	var input, expected string
	var haveInput, haveExpected bool
	for _, f := range a.Files {
		switch {
		case !haveInput && f.Name != "expected.txt":
			input, haveInput = string(f.Data), true
		case f.Name == "expected.txt":
			expected, haveExpected = string(f.Data), true
		}
	}
	if !haveInput || !haveExpected {
		t.Fatalf("golden: %s must contain an input section and an \"expected.txt\" section", path)
	}
	return Archive{Input: input, Expected: expected}
}

// Assert fails the test with a unified diff if got != archive.Expected.
func Assert(t *testing.T, archive Archive, got string) {
	t.Helper()
	if got == archive.Expected {
		return
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(archive.Expected),
		B:        difflib.SplitLines(got),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  3,
	})
	if err != nil {
		t.Fatalf("golden: mismatch (diff render failed: %v)\nexpected:\n%s\nactual:\n%s", err, archive.Expected, got)
	}
	t.Fatalf("golden: mismatch:\n%s", diff)
}
