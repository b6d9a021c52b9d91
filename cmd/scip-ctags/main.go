// Command scip-ctags runs the ctags stdio protocol (spec.md §4.4) over
// stdin/stdout, the Go equivalent of the original's scip-ctags binary
// (bin/scip-ctags.rs).
package main

import (
	"context"
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

	"github.com/viant/scipsyntax/config"
	"github.com/viant/scipsyntax/ctags"
	"github.com/viant/scipsyntax/query"
)

var grammars = map[string]*sitter.Language{
	"go":         golang.GetLanguage(),
	"python":     python.GetLanguage(),
	"java":       java.GetLanguage(),
	"javascript": javascript.GetLanguage(),
	"typescript": typescript.GetLanguage(),
}

func main() {
	configPath := flag.String("config", "", "path to a YAML IndexOptions document (optional, supplies the program banner name/version)")
	queriesDir := flag.String("queries", "", "directory of <language>.tags.scm query files (required)")
	flag.Parse()

	if *queriesDir == "" {
		log.Fatalf("scip-ctags: -queries is required (tags query text is an externally-authored input, §6)")
	}

	opts := config.DefaultIndexOptions()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			log.Fatalf("scip-ctags: loading config: %v", err)
		}
		opts = loaded
	}

	registry := query.NewRegistry()
	for lang, grammar := range grammars {
		path := filepath.Join(*queriesDir, lang+".tags.scm")
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("scip-ctags: no tags query for %q at %s, language disabled", lang, path)
			continue
		}
		registry.Register(lang, query.Source{Language: grammar, TagsQuery: string(data)})
	}

	srv := &ctags.Server{
		Registry: registry,
		Cache:    ctags.NewContentCache(),
		Name:     opts.CtagsName,
		Version:  opts.CtagsVersion,
	}

	if err := srv.Run(context.Background(), os.Stdin, os.Stdout); err != nil {
		log.Fatalf("scip-ctags: %v", err)
	}
}
