package code_analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuai/docuai/code_analyzer/models"
)

func TestAnalysisCache_SaveLoadRoundTrip(t *testing.T) {
	tempDir := t.TempDir()

	cache := NewAnalysisCache(tempDir)
	cache.ReplaceAll(map[string]models.FileRecord{
		"src/main.py": {
			RelativePath:   "src/main.py",
			Fingerprint:    "abc123",
			SizeBytes:      42,
			LineCount:      3,
			Analysis:       "Entry point of the application",
			ContentPreview: "print('hi')",
		},
	})
	require.NoError(t, cache.Save())

	// The cache document lives under the project root.
	assert.FileExists(t, filepath.Join(tempDir, ".rag_cache", "analysis_cache.json"))

	reloaded := NewAnalysisCache(tempDir)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, 1, reloaded.Len())

	record, found := reloaded.Snapshot().Lookup("src/main.py", "abc123")
	assert.True(t, found)
	assert.Equal(t, "Entry point of the application", record.Analysis)
	assert.Equal(t, 42, record.SizeBytes)
}

func TestAnalysisCache_LoadMissingFileIsEmpty(t *testing.T) {
	cache := NewAnalysisCache(t.TempDir())
	require.NoError(t, cache.Load())
	assert.Equal(t, 0, cache.Len())
}

func TestAnalysisCache_LoadCorruptFileDegradesToEmpty(t *testing.T) {
	tempDir := t.TempDir()
	cacheDir := filepath.Join(tempDir, ".rag_cache")
	require.NoError(t, os.MkdirAll(cacheDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cacheDir, "analysis_cache.json"), []byte("{not json"), 0644))

	cache := NewAnalysisCache(tempDir)
	err := cache.Load()
	assert.Error(t, err)
	assert.Equal(t, 0, cache.Len())
}

func TestAnalysisCache_ReplaceAllDropsStaleEntries(t *testing.T) {
	tempDir := t.TempDir()

	cache := NewAnalysisCache(tempDir)
	cache.ReplaceAll(map[string]models.FileRecord{
		"old.py": {RelativePath: "old.py", Fingerprint: "f1"},
		"new.py": {RelativePath: "new.py", Fingerprint: "f2"},
	})
	require.NoError(t, cache.Save())

	// A later run that no longer sees old.py overwrites the document.
	cache.ReplaceAll(map[string]models.FileRecord{
		"new.py": {RelativePath: "new.py", Fingerprint: "f2"},
	})
	require.NoError(t, cache.Save())

	reloaded := NewAnalysisCache(tempDir)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, 1, reloaded.Len())

	_, found := reloaded.Snapshot().Lookup("old.py", "f1")
	assert.False(t, found)
}

func TestCacheSnapshot_LookupRules(t *testing.T) {
	cache := NewAnalysisCache(t.TempDir())
	cache.ReplaceAll(map[string]models.FileRecord{
		"a.py": {RelativePath: "a.py", Fingerprint: "fp1", Analysis: "summary"},
	})
	snapshot := cache.Snapshot()

	// Matching fingerprint hits.
	_, found := snapshot.Lookup("a.py", "fp1")
	assert.True(t, found)

	// Changed fingerprint misses.
	_, found = snapshot.Lookup("a.py", "fp2")
	assert.False(t, found)

	// Unknown path misses.
	_, found = snapshot.Lookup("b.py", "fp1")
	assert.False(t, found)

	// The unreadable-file sentinel never hits, even if cached as such.
	_, found = snapshot.Lookup("a.py", "")
	assert.False(t, found)

	stats := cache.GetPerformanceStats()
	assert.Equal(t, int64(4), stats["total_requests"])
	assert.Equal(t, int64(1), stats["cache_hits"])
	assert.Equal(t, int64(3), stats["cache_misses"])
	assert.Equal(t, 25.0, stats["hit_rate_percent"])
}

func TestAnalysisCache_Clear(t *testing.T) {
	tempDir := t.TempDir()

	cache := NewAnalysisCache(tempDir)
	cache.ReplaceAll(map[string]models.FileRecord{
		"a.py": {RelativePath: "a.py", Fingerprint: "fp1"},
	})
	require.NoError(t, cache.Save())
	require.NoError(t, cache.Clear())

	assert.Equal(t, 0, cache.Len())
	assert.NoFileExists(t, cache.Path())
}

func TestAnalysisCache_SnapshotIsIsolatedFromReplaceAll(t *testing.T) {
	cache := NewAnalysisCache(t.TempDir())
	cache.ReplaceAll(map[string]models.FileRecord{
		"a.py": {RelativePath: "a.py", Fingerprint: "fp1"},
	})

	snapshot := cache.Snapshot()
	cache.ReplaceAll(map[string]models.FileRecord{})

	_, found := snapshot.Lookup("a.py", "fp1")
	assert.True(t, found)
}
