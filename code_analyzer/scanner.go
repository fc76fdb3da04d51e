package code_analyzer

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/docuai/docuai/utils"
)

// ScanProjectFiles walks rootDir and returns the files eligible for
// analysis. Ignored directories are pruned at traversal time with
// filepath.SkipDir, so large dependency trees are never descended into.
// The order of the returned paths is whatever the directory enumeration
// yields; callers must not depend on it.
func ScanProjectFiles(rootDir string, filter *utils.PathFilter) ([]string, error) {
	var files []string

	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relativePath, err := filepath.Rel(rootDir, path)
		if err != nil {
			return nil
		}
		relativePath = strings.ReplaceAll(relativePath, "\\", "/")

		if relativePath == "." {
			return nil
		}

		if d.IsDir() {
			if filter.ShouldIgnore(relativePath) {
				return filepath.SkipDir
			}
			return nil
		}

		if filter.IsAnalyzable(relativePath) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return files, nil
}
