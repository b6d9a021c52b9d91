package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/scipsyntax/config"
)

func TestAnalysisMode_IncludesLocalsAndGlobals(t *testing.T) {
	tests := []struct {
		mode    config.AnalysisMode
		locals  bool
		globals bool
	}{
		{config.AnalysisLocals, true, false},
		{config.AnalysisGlobals, false, true},
		{config.AnalysisFull, true, true},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.locals, tc.mode.IncludesLocals(), "locals for %s", tc.mode)
		assert.Equal(t, tc.globals, tc.mode.IncludesGlobals(), "globals for %s", tc.mode)
	}
}

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	opts, err := config.Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultIndexOptions(), opts)

	opts, err = config.Load(strings.NewReader("analysisMode: locals\nfailFast: true\n"))
	require.NoError(t, err)
	assert.Equal(t, config.AnalysisLocals, opts.AnalysisMode)
	assert.True(t, opts.FailFast)
}

func TestLoad_RejectsUnknownAnalysisMode(t *testing.T) {
	_, err := config.Load(strings.NewReader("analysisMode: bogus\n"))
	require.Error(t, err)
}

func TestLoadFile_ReadsLanguagesAndCtagsBanner(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.yaml")
	doc := "analysisMode: full\nlanguages: [go, python]\nctagsName: demo-ctags\nctagsVersion: 1.2.3\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	opts, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "python"}, opts.EnabledLanguages)
	assert.Equal(t, "demo-ctags", opts.CtagsName)
	assert.Equal(t, "1.2.3", opts.CtagsVersion)
}

func TestLoadFile_MissingFileErrors(t *testing.T) {
	_, err := config.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
