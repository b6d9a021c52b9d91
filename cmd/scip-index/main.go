// Command scip-index walks a project root and writes one JSON
// symbol.Document per indexed source file to stdout. It is a thin
// wrapper over config/repository/query/indexer, not a reimplementation of
// the original's full workspace/tar/progress-bar CLI surface. The
// tree-sitter grammars and .scm query files themselves are a Non-goal;
// this binary only loads them, it never authors them.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"github.com/viant/afs"

	"github.com/viant/scipsyntax/config"
	"github.com/viant/scipsyntax/indexer"
	"github.com/viant/scipsyntax/query"
	"github.com/viant/scipsyntax/repository"
)

// grammars maps a language id to its compiled tree-sitter grammar, for
// every language repository.LanguageExtensions recognizes.
var grammars = map[string]*sitter.Language{
	"go":         golang.GetLanguage(),
	"python":     python.GetLanguage(),
	"java":       java.GetLanguage(),
	"javascript": javascript.GetLanguage(),
	"typescript": typescript.GetLanguage(),
}

func main() {
	root := flag.String("root", ".", "workspace root to index")
	configPath := flag.String("config", "", "path to a YAML IndexOptions document (optional)")
	queriesDir := flag.String("queries", "", "directory of <language>.tags.scm/<language>.locals.scm query files (required)")
	flag.Parse()

	if *queriesDir == "" {
		log.Fatalf("scip-index: -queries is required (tags/locals query text is an externally-authored input, §6)")
	}

	opts := config.DefaultIndexOptions()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			log.Fatalf("scip-index: loading config: %v", err)
		}
		opts = loaded
	}

	registry, err := buildRegistry(*queriesDir)
	if err != nil {
		log.Fatalf("scip-index: %v", err)
	}

	files, err := repository.DiscoverFiles(*root)
	if err != nil {
		log.Fatalf("scip-index: discovering files under %s: %v", *root, err)
	}

	fs := afs.New()
	ctx := context.Background()
	enc := json.NewEncoder(os.Stdout)

	for _, f := range files {
		if !languageEnabled(opts, f.Language) {
			continue
		}

		data, err := fs.DownloadWithURL(ctx, f.Path)
		if err != nil {
			if opts.FailFast {
				log.Fatalf("scip-index: reading %s: %v", f.Path, err)
			}
			log.Printf("scip-index: skipping %s: %v", f.Path, err)
			continue
		}

		rel, err := filepath.Rel(*root, f.Path)
		if err != nil {
			rel = f.Path
		}

		doc, err := indexer.File(ctx, registry, opts, f.Language, filepath.ToSlash(rel), data)
		if err != nil {
			if opts.FailFast {
				log.Fatalf("scip-index: indexing %s: %v", f.Path, err)
			}
			log.Printf("scip-index: skipping %s: %v", f.Path, err)
			continue
		}

		if err := enc.Encode(doc); err != nil {
			log.Fatalf("scip-index: writing document for %s: %v", f.Path, err)
		}
	}
}

func languageEnabled(opts config.IndexOptions, lang string) bool {
	if len(opts.EnabledLanguages) == 0 {
		return true
	}
	for _, l := range opts.EnabledLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

// buildRegistry registers every language with a <lang>.tags.scm file
// present under queriesDir; a missing <lang>.locals.scm is fine (not
// every language ships a locals query, languages.rs's own design per
// query/registry.go). A language missing its tags file entirely is
// logged and left unregistered rather than failing the whole run.
func buildRegistry(queriesDir string) (*query.Registry, error) {
	r := query.NewRegistry()
	registered := 0
	for lang, grammar := range grammars {
		tagsPath := filepath.Join(queriesDir, lang+".tags.scm")
		tags, err := os.ReadFile(tagsPath)
		if err != nil {
			log.Printf("scip-index: no tags query for %q at %s, language disabled", lang, tagsPath)
			continue
		}

		locals := ""
		if data, err := os.ReadFile(filepath.Join(queriesDir, lang+".locals.scm")); err == nil {
			locals = string(data)
		}

		r.Register(lang, query.Source{Language: grammar, TagsQuery: string(tags), LocalsQuery: locals})
		registered++
	}
	if registered == 0 {
		return nil, errNoLanguages(queriesDir)
	}
	return r, nil
}

type errNoLanguages string

func (e errNoLanguages) Error() string {
	return "no language under " + string(e) + " had a <lang>.tags.scm file"
}
