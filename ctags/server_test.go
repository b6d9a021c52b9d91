package ctags_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log"
	"strings"
	"testing"

	"github.com/smacker/go-tree-sitter/golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/scipsyntax/ctags"
	"github.com/viant/scipsyntax/query"
)

const serverTagsQuery = `
(function_declaration name: (identifier) @descriptor.term)
(type_declaration (type_spec name: (type_identifier) @descriptor.type))
`

func newRegistry(t *testing.T) *query.Registry {
	t.Helper()
	r := query.NewRegistry()
	r.Register("go", query.Source{Language: golang.GetLanguage(), TagsQuery: serverTagsQuery})
	return r
}

func TestServer_GenerateTagsProducesProgramTagsAndCompleted(t *testing.T) {
	src := "package demo\n\ntype Config struct{}\n\nfunc Run() {}\n"
	req := ctags.Request{Command: "generate-tags", Filename: "demo.go", Size: len(src)}
	payload, err := json.Marshal(req)
	require.NoError(t, err)

	var in bytes.Buffer
	in.Write(payload)
	in.WriteByte('\n')
	in.WriteString(src)

	var out bytes.Buffer
	srv := ctags.Server{Registry: newRegistry(t), Cache: ctags.NewContentCache(), Name: "test-ctags", Version: "0.0.0"}
	require.NoError(t, srv.Run(context.Background(), &in, &out))

	lines := splitNonEmptyLines(out.String())
	require.GreaterOrEqual(t, len(lines), 4, "program + at least 2 tags + completed")

	var program ctags.ProgramReply
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &program))
	assert.Equal(t, "program", program.Type)
	assert.Equal(t, "test-ctags", program.Name)

	var names []string
	var sawCompleted bool
	for _, line := range lines[1:] {
		var probe struct {
			Type string `json:"_type"`
		}
		require.NoError(t, json.Unmarshal([]byte(line), &probe))
		switch probe.Type {
		case "tag":
			var tag ctags.TagReply
			require.NoError(t, json.Unmarshal([]byte(line), &tag))
			names = append(names, tag.Name)
		case "completed":
			sawCompleted = true
		}
	}
	assert.True(t, sawCompleted)
	assert.ElementsMatch(t, []string{"Config", "Run"}, names)
}

func TestServer_UnsupportedExtensionStillCompletes(t *testing.T) {
	src := "irrelevant"
	req := ctags.Request{Command: "generate-tags", Filename: "demo.unknownext", Size: len(src)}
	payload, err := json.Marshal(req)
	require.NoError(t, err)

	var in bytes.Buffer
	in.Write(payload)
	in.WriteByte('\n')
	in.WriteString(src)

	var out bytes.Buffer
	srv := ctags.Server{Registry: newRegistry(t), Name: "test-ctags", Version: "0.0.0"}
	require.NoError(t, srv.Run(context.Background(), &in, &out))

	lines := splitNonEmptyLines(out.String())
	require.Len(t, lines, 2, "program + completed, no tags")
}

// TestServer_ContentCacheKeysByFilenameAndHash guards against a cache hit
// on identical bytes submitted under a different filename returning tag
// replies whose path still names the earlier file: BuildTags bakes the
// request filename into every TagReply.Path, so the cache key must include
// the filename, not just the content hash.
func TestServer_ContentCacheKeysByFilenameAndHash(t *testing.T) {
	src := "package demo\n\nfunc Run() {}\n"

	reqA := ctags.Request{Command: "generate-tags", Filename: "a.go", Size: len(src)}
	payloadA, err := json.Marshal(reqA)
	require.NoError(t, err)

	reqB := ctags.Request{Command: "generate-tags", Filename: "b.go", Size: len(src)}
	payloadB, err := json.Marshal(reqB)
	require.NoError(t, err)

	var in bytes.Buffer
	in.Write(payloadA)
	in.WriteByte('\n')
	in.WriteString(src)
	in.Write(payloadB)
	in.WriteByte('\n')
	in.WriteString(src)

	var out bytes.Buffer
	srv := ctags.Server{Registry: newRegistry(t), Cache: ctags.NewContentCache(), Name: "test-ctags", Version: "0.0.0"}
	require.NoError(t, srv.Run(context.Background(), &in, &out))

	lines := splitNonEmptyLines(out.String())

	var paths []string
	for _, line := range lines[1:] { // skip program banner
		var probe struct {
			Type string `json:"_type"`
		}
		require.NoError(t, json.Unmarshal([]byte(line), &probe))
		if probe.Type != "tag" {
			continue
		}
		var tag ctags.TagReply
		require.NoError(t, json.Unmarshal([]byte(line), &tag))
		paths = append(paths, tag.Path)
	}

	require.NotEmpty(t, paths)
	for _, p := range paths {
		assert.Contains(t, []string{"a.go", "b.go"}, p)
	}
	assert.Contains(t, paths, "b.go", "second request's tags must name b.go, not be a stale a.go cache hit")
}

func TestServer_MalformedRequestLogsAndSkipsCompleted(t *testing.T) {
	var logbuf bytes.Buffer
	var in bytes.Buffer
	in.WriteString("not json\n")

	var out bytes.Buffer
	srv := ctags.Server{
		Registry: newRegistry(t),
		Name:     "test-ctags",
		Version:  "0.0.0",
		Logger:   log.New(&logbuf, "", 0),
	}
	require.NoError(t, srv.Run(context.Background(), &in, &out))

	lines := splitNonEmptyLines(out.String())
	require.Len(t, lines, 1, "only the program banner, no completed reply for a malformed request")
	assert.Contains(t, logbuf.String(), "malformed request")
}

func splitNonEmptyLines(s string) []string {
	var out []string
	scanner := bufio.NewScanner(strings.NewReader(s))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			out = append(out, line)
		}
	}
	return out
}
