package ctags

import (
	"strings"

	"github.com/viant/scipsyntax/globals"
)

// BuildTags flattens a globals scope tree into the ctags reply list for
// one file, deduplicating by (scope, name) across sibling scopes (spec.md
// §4.4 "Deduplication"). Grounded on ctags.rs's emit_tags_for_scope.
func BuildTags(path, language string, root *globals.Scope) []TagReply {
	var tags []TagReply
	seen := map[string]bool{}
	emitScope(path, language, nil, root, seen, &tags)
	return tags
}

func emitScope(path, language string, parentScopes []string, scope *globals.Scope, seen map[string]bool, tags *[]TagReply) {
	currScopes := parentScopes

	if len(scope.Descriptors) > 0 {
		names := make([]string, len(scope.Descriptors))
		for i, d := range scope.Descriptors {
			names[i] = d.Name
		}
		currScopes = append(append([]string{}, parentScopes...), names...)

		appendTag(tags, seen, path, language, strings.Join(parentScopes, "."), strings.Join(names, "."),
			scope.IdentRange.StartLine+1, kindFor(scope.Descriptors[len(scope.Descriptors)-1].Suffix, scope.Kind))
	}

	for _, child := range scope.Children {
		emitScope(path, language, currScopes, child, seen, tags)
	}

	for _, g := range scope.Globals {
		scopeNames := append([]string{}, currScopes...)
		for _, d := range g.Descriptors[:len(g.Descriptors)-1] {
			scopeNames = append(scopeNames, d.Name)
		}
		last := g.Descriptors[len(g.Descriptors)-1]

		appendTag(tags, seen, path, language, strings.Join(scopeNames, "."), last.Name,
			g.Range.StartLine+1, kindFor(last.Suffix, g.Kind))
	}
}

func appendTag(tags *[]TagReply, seen map[string]bool, path, language, scopePath, name string, line int, kind string) {
	key := scopePath + "\x00" + name
	if seen[key] {
		return
	}
	seen[key] = true

	var scope *string
	if scopePath != "" {
		scope = &scopePath
	}

	*tags = append(*tags, TagReply{
		Type:     "tag",
		Name:     name,
		Path:     path,
		Language: language,
		Line:     line,
		Kind:     kind,
		Pattern:  "/.*/",
		Scope:    scope,
	})
}
