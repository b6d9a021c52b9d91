package query

import (
	"fmt"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// compilePredicates reads the general predicates (#transform!, #filter!)
// and properties (#set!) attached to patternIndex, once, so matching
// never has to re-parse predicate strings (languages.rs: "TagConfiguration::new").
func compilePredicates(q *sitter.Query, patternIndex uint32) ([]Transform, []NodeFilter, []Property, error) {
	steps := q.PredicatesForPattern(patternIndex)

	var transforms []Transform
	var filters []NodeFilter
	var properties []Property

	for _, predicate := range steps {
		op, args, err := splitPredicate(q, predicate)
		if err != nil {
			return nil, nil, nil, err
		}

		switch op {
		case "transform!":
			if len(args) != 2 {
				return nil, nil, nil, fmt.Errorf("#transform! wants 2 string args, got %d", len(args))
			}
			re, err := regexp.Compile(args[0])
			if err != nil {
				return nil, nil, nil, fmt.Errorf("#transform! pattern %q: %w", args[0], err)
			}
			transforms = append(transforms, Transform{Pattern: re, Replace: args[1]})
		case "filter!":
			// languages.rs's is_filtered: first arg names the capture to
			// inspect, the rest are the tree-sitter node kinds that drop
			// the match when the bound node has one of them.
			if len(args) < 2 {
				return nil, nil, nil, fmt.Errorf("#filter! wants a capture and at least one node kind, got %d args", len(args))
			}
			capture := strings.TrimPrefix(args[0], "@")
			if capture == args[0] {
				return nil, nil, nil, fmt.Errorf("#filter! first arg must be a capture, got %q", args[0])
			}
			filters = append(filters, NodeFilter{Capture: capture, Names: append([]string{}, args[1:]...)})
		case "set!":
			if len(args) != 2 {
				return nil, nil, nil, fmt.Errorf("#set! wants 2 string args, got %d", len(args))
			}
			properties = append(properties, Property{Key: args[0], Value: args[1]})
		default:
			// Unrecognized general predicate (e.g. #eq?/#match? are handled
			// separately by QueryCursor.FilterPredicates at match time, not
			// here); ignore.
		}
	}

	return transforms, filters, properties, nil
}

// splitPredicate extracts the operator name and its string arguments from
// one compiled predicate step sequence. Capture-typed steps (a predicate
// referencing a capture name rather than a literal string, e.g.
// "(#transform! @name ...)") are resolved to the capture's name so callers
// can tell which capture a predicate targets, but every argument surfaces
// as a string: #transform!/#filter!/#set! in this codebase only ever take
// string literals or bare capture names.
func splitPredicate(q *sitter.Query, steps []sitter.QueryPredicateStep) (string, []string, error) {
	if len(steps) == 0 {
		return "", nil, fmt.Errorf("empty predicate")
	}
	if steps[0].Type != sitter.QueryPredicateStepTypeString {
		return "", nil, fmt.Errorf("predicate operator must be a string literal")
	}

	op := q.StringValueForId(steps[0].ValueId)

	var args []string
	for _, s := range steps[1:] {
		switch s.Type {
		case sitter.QueryPredicateStepTypeString:
			args = append(args, q.StringValueForId(s.ValueId))
		case sitter.QueryPredicateStepTypeCapture:
			args = append(args, "@"+q.CaptureNameForId(s.ValueId))
		case sitter.QueryPredicateStepTypeDone:
			// terminator, not an argument
		}
	}

	return op, args, nil
}
