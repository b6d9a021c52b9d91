// Package config decodes the YAML run configuration for a syntax-index
// invocation: which analyses to run and whether a single file failure
// should abort the whole run. Grounded on index.rs's IndexOptions/
// AnalysisMode, with the CLI-flag surface flattened into YAML fields since
// the binary entry point sits outside this module's core scope.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// AnalysisMode selects which occurrence kinds an index run computes.
type AnalysisMode string

const (
	// AnalysisLocals computes only locals-scoped occurrences (§4.2).
	AnalysisLocals AnalysisMode = "locals"
	// AnalysisGlobals computes only globals occurrences (§4.1).
	AnalysisGlobals AnalysisMode = "globals"
	// AnalysisFull computes both, merged into one position-sorted
	// occurrence list.
	AnalysisFull AnalysisMode = "full"
)

// IncludesLocals reports whether this mode runs locals resolution.
func (m AnalysisMode) IncludesLocals() bool {
	return m == AnalysisLocals || m == AnalysisFull
}

// IncludesGlobals reports whether this mode runs globals extraction.
func (m AnalysisMode) IncludesGlobals() bool {
	return m == AnalysisGlobals || m == AnalysisFull
}

func (m AnalysisMode) valid() bool {
	switch m {
	case AnalysisLocals, AnalysisGlobals, AnalysisFull:
		return true
	default:
		return false
	}
}

// IndexOptions is the decoded shape of a run's YAML configuration.
type IndexOptions struct {
	AnalysisMode AnalysisMode `yaml:"analysisMode"`
	// FailFast aborts the whole run on the first per-file error instead of
	// logging it and continuing (index.rs's fail_fast).
	FailFast bool `yaml:"failFast"`
	// Language names a single query.Registry language id. It is decoded
	// but not read anywhere in this module: indexing is not restricted by
	// it, and files are always dispatched by extension.
	Language string `yaml:"language,omitempty"`
	// ProjectRoot names a project root directory. It is decoded but not
	// read anywhere in this module: cmd/scip-index takes its root from the
	// -root flag.
	ProjectRoot string `yaml:"projectRoot,omitempty"`
	// EnabledLanguages restricts workspace-mode discovery to these
	// repository.LanguageExtensions language ids; empty means all of them.
	EnabledLanguages []string `yaml:"languages,omitempty"`
	// CtagsName/CtagsVersion populate the ctags.ProgramReply banner.
	CtagsName    string `yaml:"ctagsName,omitempty"`
	CtagsVersion string `yaml:"ctagsVersion,omitempty"`
}

// DefaultIndexOptions returns the options a bare invocation runs with:
// full analysis, continue past per-file errors.
func DefaultIndexOptions() IndexOptions {
	return IndexOptions{
		AnalysisMode: AnalysisFull,
		FailFast:     false,
		CtagsName:    "scipsyntax-ctags",
		CtagsVersion: "0.1.0",
	}
}

// Load decodes IndexOptions from r, filling in defaults for any field the
// document omits and rejecting an unrecognized AnalysisMode.
func Load(r io.Reader) (IndexOptions, error) {
	opts := DefaultIndexOptions()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&opts); err != nil && err != io.EOF {
		return IndexOptions{}, fmt.Errorf("decoding index options: %w", err)
	}
	if !opts.AnalysisMode.valid() {
		return IndexOptions{}, fmt.Errorf("invalid analysisMode %q", opts.AnalysisMode)
	}
	return opts, nil
}

// LoadFile opens path and decodes IndexOptions from it.
func LoadFile(path string) (IndexOptions, error) {
	f, err := os.Open(path)
	if err != nil {
		return IndexOptions{}, fmt.Errorf("opening config %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}
