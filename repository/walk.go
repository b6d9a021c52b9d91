package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File is one source file discovered under a workspace root, paired with
// the language its extension resolved to.
type File struct {
	Path     string // absolute path
	Language string
}

// DiscoverFiles walks root recursively and returns every file whose
// extension is a key of LanguageExtensions, skipping dot-directories
// (".git", ".idea", ...) the way a workspace-mode index run would.
// Adapted from inspector/repository/asset.go's ReadAssetsRecursively,
// narrowed from "collect assets" to "collect indexable sources".
func DiscoverFiles(root string) ([]File, error) {
	var files []File
	err := walk(root, &files)
	return files, err
}

func walk(dir string, files *[]File) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			if strings.HasPrefix(name, ".") {
				continue
			}
			if err := walk(filepath.Join(dir, name), files); err != nil {
				return err
			}
			continue
		}

		ext := strings.ToLower(filepath.Ext(name))
		lang, ok := LanguageExtensions[ext]
		if !ok {
			continue
		}
		*files = append(*files, File{Path: filepath.Join(dir, name), Language: lang})
	}
	return nil
}
