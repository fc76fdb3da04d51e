package code_analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuai/docuai/utils"
)

func writeProjectFile(t *testing.T, rootDir string, relativePath string, content string) {
	t.Helper()
	path := filepath.Join(rootDir, filepath.FromSlash(relativePath))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func relativeResults(t *testing.T, rootDir string, files []string) []string {
	t.Helper()
	var relatives []string
	for _, file := range files {
		relative, err := filepath.Rel(rootDir, file)
		require.NoError(t, err)
		relatives = append(relatives, filepath.ToSlash(relative))
	}
	return relatives
}

func TestScanProjectFiles_FiltersIgnoredAndDisallowed(t *testing.T) {
	tempDir := t.TempDir()

	writeProjectFile(t, tempDir, "a.py", "print('a')")
	writeProjectFile(t, tempDir, "src/b.go", "package b")
	writeProjectFile(t, tempDir, "image.png", "not source")
	writeProjectFile(t, tempDir, ".git/config", "[core]")
	writeProjectFile(t, tempDir, "node_modules/pkg/index.js", "module.exports = {}")
	writeProjectFile(t, tempDir, "__pycache__/a.cpython-311.pyc", "bytecode")
	writeProjectFile(t, tempDir, ".rag_cache/analysis_cache.json", "{}")

	files, err := ScanProjectFiles(tempDir, utils.NewPathFilter())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"a.py", "src/b.go"}, relativeResults(t, tempDir, files))
}

func TestScanProjectFiles_ExtraIgnorePatterns(t *testing.T) {
	tempDir := t.TempDir()

	writeProjectFile(t, tempDir, "keep.py", "print('keep')")
	writeProjectFile(t, tempDir, "generated/skip.py", "print('skip')")

	files, err := ScanProjectFiles(tempDir, utils.NewPathFilter("generated"))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"keep.py"}, relativeResults(t, tempDir, files))
}

func TestScanProjectFiles_EmptyProject(t *testing.T) {
	files, err := ScanProjectFiles(t.TempDir(), utils.NewPathFilter())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestScanProjectFiles_ReturnsAbsolutePaths(t *testing.T) {
	tempDir := t.TempDir()
	writeProjectFile(t, tempDir, "main.go", "package main")

	files, err := ScanProjectFiles(tempDir, utils.NewPathFilter())
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, filepath.IsAbs(files[0]))
}
