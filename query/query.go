// Package query wraps compiled tree-sitter queries with the predicate
// side-tables the globals and locals engines need: #transform!, #filter!
// and #set! (scope / hoist / reassignment_behavior / def_ref). It is
// grounded on scip-syntax/src/languages.rs, which compiles these same
// predicates into per-pattern tables once, at configuration-load time,
// rather than re-parsing them on every match.
package query

import (
	"fmt"
	"regexp"

	sitter "github.com/smacker/go-tree-sitter"
)

// TagConfiguration is a compiled globals (ctags/highlighting) query plus
// its #transform!/#filter! side-tables, equivalent to the Rust
// TagConfiguration in languages.rs.
type TagConfiguration struct {
	Language *sitter.Language
	Query    *sitter.Query

	transforms map[uint32][]Transform
	filters    map[uint32][]NodeFilter
	properties map[uint32][]Property
}

// Transform is a compiled #transform! predicate: captured.name has
// Pattern applied via regexp.ReplaceAllString with Replace.
type Transform struct {
	Pattern *regexp.Regexp
	Replace string
}

// Property is a compiled #set! predicate, e.g. (#set! scope "global").
type Property struct {
	Key   string
	Value string
}

// NodeFilter is a compiled #filter! predicate: a match carrying this
// predicate is dropped when the node bound to Capture has a tree-sitter
// node kind in Names (languages.rs's NodeFilter{capture, names}).
type NodeFilter struct {
	Capture string
	Names   []string
}

// NewTagConfiguration compiles src against lang and builds the
// transform/filter/property side-tables for every pattern in the query.
func NewTagConfiguration(lang *sitter.Language, src string) (*TagConfiguration, error) {
	q, err := sitter.NewQuery([]byte(src), lang)
	if err != nil {
		return nil, fmt.Errorf("compiling tag query: %w", err)
	}

	cfg := &TagConfiguration{
		Language:   lang,
		Query:      q,
		transforms: map[uint32][]Transform{},
		filters:    map[uint32][]NodeFilter{},
		properties: map[uint32][]Property{},
	}

	patternCount := q.PatternCount()
	for i := uint32(0); i < patternCount; i++ {
		transforms, filters, properties, err := compilePredicates(q, i)
		if err != nil {
			return nil, fmt.Errorf("pattern %d: %w", i, err)
		}
		if len(transforms) > 0 {
			cfg.transforms[i] = transforms
		}
		if len(filters) > 0 {
			cfg.filters[i] = filters
		}
		if len(properties) > 0 {
			cfg.properties[i] = properties
		}
	}

	return cfg, nil
}

// Transform applies every #transform! predicate registered for
// patternIndex to name, returning one replaced name per predicate (a
// single capture can produce several descriptors, mirroring
// TagConfiguration::transform in languages.rs).
func (c *TagConfiguration) Transform(patternIndex uint32, name string) ([]string, bool) {
	ts, ok := c.transforms[patternIndex]
	if !ok {
		return nil, false
	}
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Pattern.ReplaceAllString(name, t.Replace)
	}
	return out, true
}

// IsFiltered reports whether match (for patternIndex) should be dropped:
// any #filter! predicate on this pattern whose bound capture's node kind
// is in its name list drops the whole match (languages.rs's
// TagConfiguration::is_filtered). A pattern with no #filter! predicate is
// never filtered; a pattern with one is evaluated per match, not dropped
// unconditionally.
func (c *TagConfiguration) IsFiltered(patternIndex uint32, match *sitter.QueryMatch) bool {
	filters, ok := c.filters[patternIndex]
	if !ok {
		return false
	}

	for _, filter := range filters {
		for _, capture := range match.Captures {
			if c.Query.CaptureNameForId(capture.Index) != filter.Capture {
				continue
			}
			kind := capture.Node.Type()
			for _, name := range filter.Names {
				if kind == name {
					return true
				}
			}
		}
	}
	return false
}

// Properties returns the #set! key/value pairs attached to patternIndex.
func (c *TagConfiguration) Properties(patternIndex uint32) []Property {
	return c.properties[patternIndex]
}

// PropertyValue is a convenience lookup over Properties.
func (c *TagConfiguration) PropertyValue(patternIndex uint32, key string) (string, bool) {
	for _, p := range c.properties[patternIndex] {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// LocalConfiguration is a compiled locals query. It carries no
// transform/filter side-tables of its own (locals.rs reads #set!
// properties directly per match, since scope/hoist/reassignment_behavior
// are per-definition-capture, not per-pattern), but reuses Properties
// for that lookup.
type LocalConfiguration struct {
	Language *sitter.Language
	Query    *sitter.Query

	properties map[uint32][]Property
}

// NewLocalConfiguration compiles src against lang.
func NewLocalConfiguration(lang *sitter.Language, src string) (*LocalConfiguration, error) {
	q, err := sitter.NewQuery([]byte(src), lang)
	if err != nil {
		return nil, fmt.Errorf("compiling locals query: %w", err)
	}

	cfg := &LocalConfiguration{
		Language:   lang,
		Query:      q,
		properties: map[uint32][]Property{},
	}

	patternCount := q.PatternCount()
	for i := uint32(0); i < patternCount; i++ {
		_, _, properties, err := compilePredicates(q, i)
		if err != nil {
			return nil, fmt.Errorf("pattern %d: %w", i, err)
		}
		if len(properties) > 0 {
			cfg.properties[i] = properties
		}
	}

	return cfg, nil
}

// Properties returns the #set! key/value pairs attached to patternIndex.
func (c *LocalConfiguration) Properties(patternIndex uint32) []Property {
	return c.properties[patternIndex]
}

// PropertyValue is a convenience lookup over Properties.
func (c *LocalConfiguration) PropertyValue(patternIndex uint32, key string) (string, bool) {
	for _, p := range c.properties[patternIndex] {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}
