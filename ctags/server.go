package ctags

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/scipsyntax/globals"
	"github.com/viant/scipsyntax/query"
)

// ExtensionLanguages maps a lowercased file extension (with leading dot) to
// the language id used to look up a TagConfiguration in a query.Registry.
var ExtensionLanguages = map[string]string{
	".go":   "go",
	".py":   "python",
	".java": "java",
	".js":   "javascript",
	".jsx":  "javascript",
	".ts":   "typescript",
	".tsx":  "typescript",
}

// Server runs the ctags stdio protocol (spec.md §4.4) against a
// query.Registry of compiled TagConfigurations.
type Server struct {
	Registry *query.Registry
	Cache    *ContentCache
	Name     string
	Version  string
	// Logger receives malformed-request and per-file error diagnostics
	// (§7 error kind 5). Defaults to log.Default() when nil, so tests can
	// inject their own *log.Logger to capture and assert on output.
	Logger *log.Logger
}

func (s *Server) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.Default()
}

// Run emits the program banner, then loops reading generate-tags requests
// from r and writing replies to w, until r reaches EOF.
func (s *Server) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	reader := bufio.NewReader(r)
	writer := bufio.NewWriter(w)

	if err := writeLine(writer, ProgramReply{Type: "program", Name: s.Name, Version: s.Version}); err != nil {
		return err
	}
	if err := writer.WriteByte('\n'); err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return err
	}

	for {
		line, readErr := reader.ReadString('\n')
		trimmed := strings.TrimSpace(line)

		if trimmed != "" {
			var req Request
			if jsonErr := json.Unmarshal([]byte(trimmed), &req); jsonErr != nil {
				s.logger().Printf("ctags: malformed request, skipping: %v", jsonErr)
			} else {
				switch req.Command {
				case "generate-tags":
					s.generateTags(ctx, reader, writer, req)
				default:
					s.logger().Printf("ctags: unknown command %q", req.Command)
				}
				if err := writeLine(writer, CompletedReply{Type: "completed", Command: "generate-tags"}); err != nil {
					return err
				}
				if err := writer.Flush(); err != nil {
					return err
				}
			}
		}

		if readErr != nil {
			if readErr == io.EOF {
				return nil
			}
			return fmt.Errorf("reading ctags request: %w", readErr)
		}
	}
}

// generateTags implements spec.md §4.4 step 2: read exactly size bytes,
// select a language, run globals extraction, write one tag reply per
// definition.
func (s *Server) generateTags(ctx context.Context, r *bufio.Reader, w *bufio.Writer, req Request) {
	data := make([]byte, req.Size)
	if _, err := io.ReadFull(r, data); err != nil {
		s.logger().Printf("ctags: reading file payload for %s: %v", req.Filename, err)
		_ = writeLine(w, ErrorReply{Type: "error", Message: err.Error(), Fatal: false})
		return
	}

	ext := strings.ToLower(filepath.Ext(req.Filename))
	langID, ok := ExtensionLanguages[ext]
	if !ok {
		// Extensionless or unsupported file: silently skipped; the caller
		// still sees a completed reply for this request.
		return
	}

	base := filepath.Base(req.Filename)

	var hash uint64
	haveHash := false
	if s.Cache != nil {
		if h, err := Hash(data); err == nil {
			hash, haveHash = h, true
			if tags, hit := s.Cache.Get(base, hash); hit {
				writeTags(w, tags)
				return
			}
		}
	}

	cfg, err := s.Registry.TagConfiguration(langID)
	if err != nil {
		// Language unavailable: silently skipped per spec.md §7 error kind 1.
		return
	}

	parser := sitter.NewParser()
	parser.SetLanguage(cfg.Language)
	tree, err := parser.ParseCtx(ctx, nil, data)
	if err != nil {
		s.logger().Printf("ctags: parse failure for %s: %v", req.Filename, err)
		return
	}

	root, _, err := globals.ParseTree(cfg, tree, data)
	if err != nil {
		s.logger().Printf("ctags: globals extraction failed for %s: %v", req.Filename, err)
		return
	}

	tags := BuildTags(base, langID, root)
	if haveHash && s.Cache != nil {
		s.Cache.Put(base, hash, tags)
	}
	writeTags(w, tags)
}

func writeTags(w *bufio.Writer, tags []TagReply) {
	for _, t := range tags {
		_ = writeLine(w, t)
	}
}

func writeLine(w *bufio.Writer, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return err
	}
	return w.WriteByte('\n')
}
