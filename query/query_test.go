package query_test

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/scipsyntax/query"
)

func TestTagConfiguration_CompilesTransform(t *testing.T) {
	src := `
(function_declaration
  name: (identifier) @descriptor.term
  (#transform! "^Test" "test_"))
`
	cfg, err := query.NewTagConfiguration(golang.GetLanguage(), src)
	require.NoError(t, err)

	names, ok := cfg.Transform(0, "TestFoo")
	require.True(t, ok)
	assert.Equal(t, []string{"test_Foo"}, names)

	_, ok = cfg.Transform(1, "Bar")
	assert.False(t, ok)
}

// TestTagConfiguration_FilterIsPerMatchNotPerPattern asserts #filter!'s
// per-capture, per-match semantics (languages.rs's is_filtered): a pattern
// carrying #filter! must still match when the bound capture's node kind is
// not in the filter's list, and only the specific matches whose capture
// node kind appears in the list are dropped.
func TestTagConfiguration_FilterIsPerMatchNotPerPattern(t *testing.T) {
	src := `
(const_spec
  name: (identifier) @descriptor.term
  value: (expression_list (_) @value)
  (#filter! @value interpreted_string_literal))
`
	cfg, err := query.NewTagConfiguration(golang.GetLanguage(), src)
	require.NoError(t, err)

	source := []byte(`package demo

const (
	Count = 1
	Name  = "hello"
)
`)

	parser := sitter.NewParser()
	parser.SetLanguage(golang.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	require.NoError(t, err)

	cursor := sitter.NewQueryCursor()
	cursor.Exec(cfg.Query, tree.RootNode())

	var kept, dropped []string
	for {
		m, ok := cursor.NextMatch()
		if !ok {
			break
		}
		var name string
		for _, c := range m.Captures {
			if cfg.Query.CaptureNameForId(c.Index) == "descriptor.term" {
				name = c.Node.Content(source)
			}
		}
		if cfg.IsFiltered(uint32(m.PatternIndex), m) {
			dropped = append(dropped, name)
		} else {
			kept = append(kept, name)
		}
	}

	assert.Equal(t, []string{"Count"}, kept, "numeric literal should not be filtered")
	assert.Equal(t, []string{"Name"}, dropped, "string literal should be filtered")
}

func TestTagConfiguration_CompilesSetProperty(t *testing.T) {
	src := `
(var_declaration
  (var_spec name: (identifier) @definition.variable)
  (#set! "scope" "global"))
`
	cfg, err := query.NewTagConfiguration(golang.GetLanguage(), src)
	require.NoError(t, err)

	value, ok := cfg.PropertyValue(0, "scope")
	require.True(t, ok)
	assert.Equal(t, "global", value)

	_, ok = cfg.PropertyValue(0, "reassignment_behavior")
	assert.False(t, ok)
}

func TestRegistry_LazyCompilationAndCaching(t *testing.T) {
	r := query.NewRegistry()

	_, err := r.TagConfiguration("go")
	assert.Error(t, err)

	r.Register("go", query.Source{
		Language:  golang.GetLanguage(),
		TagsQuery: `(function_declaration name: (identifier) @descriptor.term)`,
	})

	first, err := r.TagConfiguration("go")
	require.NoError(t, err)
	second, err := r.TagConfiguration("go")
	require.NoError(t, err)
	assert.Same(t, first, second)

	_, err = r.LocalConfiguration("go")
	assert.Error(t, err, "go was registered without a locals query")
}
