// Package repository locates a project root and infers the language of
// the files beneath it, for workspace-mode indexing (index.rs's
// IndexMode::Workspace). Adapted from inspector/repository/detector.go,
// narrowed to the languages query.Registry actually compiles queries for.
package repository

import (
	"context"
	"os"
	"path/filepath"
	"regexp"

	"github.com/viant/afs"
	"golang.org/x/mod/modfile"
)

// LanguageExtensions maps a lowercased extension (with leading dot) to the
// language id used throughout this module's query.Registry and ctags
// server. Narrowed to exclude Rust, PHP, Ruby since no query source in
// this module covers those languages.
var LanguageExtensions = map[string]string{
	".go":   "go",
	".py":   "python",
	".java": "java",
	".js":   "javascript",
	".jsx":  "javascript",
	".ts":   "typescript",
	".tsx":  "typescript",
}

// marker files searched for, walking up from the probed path: the nearest
// directory holding any marker wins, and within one directory the first
// marker in this list wins. Narrowed to the project types
// LanguageExtensions recognizes.
var markers = []string{
	"go.mod",
	"pom.xml",
	"build.gradle",
	"package.json",
	"pyproject.toml",
	"requirements.txt",
	".git",
}

// Project describes the repository root a file belongs to.
type Project struct {
	RootPath     string // absolute path to the detected root
	Language     string // language id, "" if undetermined
	Name         string // module/package name, best effort
	RelativePath string // path from RootPath to the probed file
}

// Detector locates project roots by walking up from a file or directory.
type Detector struct{}

// New creates a Detector.
func New() *Detector {
	return &Detector{}
}

// DetectProject walks up from filePath looking for a project marker and
// returns the root it found, falling back to filePath's own directory
// when none is found.
func (d *Detector) DetectProject(filePath string) (*Project, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}

	startDir := absPath
	if info, err := os.Stat(absPath); err == nil && !info.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	rootPath, marker := findProjectRoot(startDir)
	proj := &Project{RootPath: startDir}
	if rootPath != "" {
		proj.RootPath = rootPath
		proj.Language = languageForMarker(marker)
		proj.Name = extractProjectName(rootPath, marker)
	}

	relPath, err := filepath.Rel(proj.RootPath, absPath)
	if err != nil {
		relPath = filepath.Base(absPath)
	}
	proj.RelativePath = filepath.ToSlash(relPath)

	return proj, nil
}

func findProjectRoot(startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, marker
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ""
}

func languageForMarker(marker string) string {
	switch marker {
	case "go.mod":
		return "go"
	case "pom.xml", "build.gradle":
		return "java"
	case "package.json":
		return "javascript"
	case "pyproject.toml", "requirements.txt":
		return "python"
	default:
		return ""
	}
}

func extractProjectName(rootPath, marker string) string {
	switch marker {
	case "go.mod":
		return extractGoModuleName(filepath.Join(rootPath, "go.mod"))
	case "package.json":
		return extractRegexField(filepath.Join(rootPath, "package.json"), `"name"\s*:\s*"([^"]+)"`, rootPath)
	case "pom.xml":
		return extractRegexField(filepath.Join(rootPath, "pom.xml"), `<artifactId>([^<]+)</artifactId>`, rootPath)
	case "build.gradle":
		return extractRegexField(filepath.Join(rootPath, "build.gradle"), `(?:rootProject|project)\.name\s*=\s*['"]([^'"]+)['"]`, rootPath)
	case "pyproject.toml":
		return extractRegexField(filepath.Join(rootPath, "pyproject.toml"), `(?:tool\.poetry|project)\.name\s*=\s*["']([^"']+)["']`, rootPath)
	default:
		return filepath.Base(rootPath)
	}
}

func extractGoModuleName(goModPath string) string {
	fs := afs.New()
	if content, _ := fs.DownloadWithURL(context.Background(), goModPath); len(content) > 0 {
		if mod, _ := modfile.Parse(goModPath, content, nil); mod != nil {
			return mod.Module.Mod.Path
		}
	}
	data, err := os.ReadFile(goModPath)
	if err != nil {
		return filepath.Base(filepath.Dir(goModPath))
	}
	matches := regexp.MustCompile(`module\s+([^\s]+)`).FindSubmatch(data)
	if len(matches) < 2 {
		return filepath.Base(filepath.Dir(goModPath))
	}
	return string(matches[1])
}

func extractRegexField(path, pattern, fallbackDir string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return filepath.Base(fallbackDir)
	}
	matches := regexp.MustCompile(pattern).FindSubmatch(data)
	if len(matches) < 2 {
		return filepath.Base(fallbackDir)
	}
	return string(matches[1])
}
