package repository_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/scipsyntax/repository"
)

func TestDetectProject_FindsGoModuleRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/widget\n\ngo 1.21\n"), 0o644))

	nested := filepath.Join(root, "internal", "pkg")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	file := filepath.Join(nested, "widget.go")
	require.NoError(t, os.WriteFile(file, []byte("package pkg\n"), 0o644))

	proj, err := repository.New().DetectProject(file)
	require.NoError(t, err)

	absRoot, err := filepath.Abs(root)
	require.NoError(t, err)
	assert.Equal(t, absRoot, proj.RootPath)
	assert.Equal(t, "go", proj.Language)
	assert.Equal(t, "example.com/widget", proj.Name)
	assert.Equal(t, "internal/pkg/widget.go", proj.RelativePath)
}

func TestDetectProject_FallsBackToFileDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "standalone.go")
	require.NoError(t, os.WriteFile(file, []byte("package main\n"), 0o644))

	proj, err := repository.New().DetectProject(file)
	require.NoError(t, err)
	assert.Equal(t, "", proj.Language)
	assert.Equal(t, "standalone.go", proj.RelativePath)
}

func TestDiscoverFiles_SkipsDotDirsAndUnsupportedExtensions(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte("# hi\n"), 0o644))

	gitDir := filepath.Join(root, ".git")
	require.NoError(t, os.MkdirAll(gitDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(gitDir, "config"), []byte(""), 0o644))

	sub := filepath.Join(root, "sub")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "app.py"), []byte("x = 1\n"), 0o644))

	files, err := repository.DiscoverFiles(root)
	require.NoError(t, err)
	require.Len(t, files, 2)

	byLang := map[string]string{}
	for _, f := range files {
		byLang[filepath.Base(f.Path)] = f.Language
	}
	assert.Equal(t, "go", byLang["main.go"])
	assert.Equal(t, "python", byLang["app.py"])
}
