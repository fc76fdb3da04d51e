package code_analyzer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeProject(t *testing.T, fileCount int) (string, []string) {
	t.Helper()
	tempDir := t.TempDir()

	var paths []string
	for i := 0; i < fileCount; i++ {
		path := filepath.Join(tempDir, fmt.Sprintf("file_%02d.py", i))
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("print(%d)", i)), 0644))
		paths = append(paths, path)
	}
	return tempDir, paths
}

func TestDispatcher_ResultsIndependentOfWorkerCount(t *testing.T) {
	tempDir, paths := makeProject(t, 10)
	provider := &stubProvider{response: "summary"}

	analyzer := NewDocAnalyzer(tempDir, provider, nil)
	snapshot := NewAnalysisCache(tempDir).Snapshot()

	serial := NewDispatcher(analyzer, 1, nil).RunAll(context.Background(), paths, snapshot)
	parallel := NewDispatcher(analyzer, 4, nil).RunAll(context.Background(), paths, snapshot)

	assert.Len(t, serial, 10)
	assert.Equal(t, serial, parallel)
}

func TestDispatcher_ProviderFailuresStayPerFile(t *testing.T) {
	tempDir, paths := makeProject(t, 5)
	provider := &stubProvider{err: errors.New("model unavailable")}

	analyzer := NewDocAnalyzer(tempDir, provider, nil)
	results := NewDispatcher(analyzer, 4, nil).RunAll(context.Background(), paths, NewAnalysisCache(tempDir).Snapshot())

	// Every file yields a record; failures are carried, not raised.
	assert.Len(t, results, 5)
	for _, record := range results {
		assert.Contains(t, record.Error, "model unavailable")
	}
}

func TestDispatcher_EmptyFileSet(t *testing.T) {
	tempDir, _ := makeProject(t, 0)
	analyzer := NewDocAnalyzer(tempDir, &stubProvider{response: "summary"}, nil)

	results := NewDispatcher(analyzer, 4, nil).RunAll(context.Background(), nil, NewAnalysisCache(tempDir).Snapshot())

	assert.Empty(t, results)
}

func TestDispatcher_CancelledContextSkipsSubmissions(t *testing.T) {
	tempDir, paths := makeProject(t, 8)
	provider := &stubProvider{response: "summary"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	analyzer := NewDocAnalyzer(tempDir, provider, nil)
	results := NewDispatcher(analyzer, 2, nil).RunAll(ctx, paths, NewAnalysisCache(tempDir).Snapshot())

	// Already-cancelled context means nothing is submitted.
	assert.Empty(t, results)
	assert.Equal(t, 0, provider.callCount())
}

func TestDispatcher_NonPositiveWorkerCountFallsBack(t *testing.T) {
	tempDir, paths := makeProject(t, 3)
	analyzer := NewDocAnalyzer(tempDir, &stubProvider{response: "summary"}, nil)

	dispatcher := NewDispatcher(analyzer, 0, nil)
	assert.Equal(t, DefaultWorkerCount, dispatcher.workers)

	results := dispatcher.RunAll(context.Background(), paths, NewAnalysisCache(tempDir).Snapshot())
	assert.Len(t, results, 3)
}

func TestDispatcher_CachedFilesSkipProvider(t *testing.T) {
	tempDir, paths := makeProject(t, 4)

	// Prime the cache from a first run.
	primer := &stubProvider{response: "summary"}
	analyzer := NewDocAnalyzer(tempDir, primer, nil)
	cache := NewAnalysisCache(tempDir)
	first := NewDispatcher(analyzer, 2, nil).RunAll(context.Background(), paths, cache.Snapshot())
	cache.ReplaceAll(first)
	require.Equal(t, 4, primer.callCount())

	// Second run with unchanged files hits the cache for every file.
	second := &stubProvider{response: "should not be called"}
	analyzer = NewDocAnalyzer(tempDir, second, nil)
	results := NewDispatcher(analyzer, 2, nil).RunAll(context.Background(), paths, cache.Snapshot())

	assert.Equal(t, first, results)
	assert.Equal(t, 0, second.callCount())
}
