package code_analyzer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/docuai/docuai/code_analyzer/models"
)

const (
	cacheDirName  = ".rag_cache"
	cacheFileName = "analysis_cache.json"
)

// CacheStats tracks cache hit/miss counters for a run.
type CacheStats struct {
	TotalRequests int64
	CacheHits     int64
	CacheMisses   int64
	LastResetTime time.Time
	mutex         sync.RWMutex
}

// AnalysisCache persists the relative-path → FileRecord mapping as a
// single JSON document under the scanned root. It is loaded once at the
// start of a run, snapshotted for concurrent readers, and overwritten
// wholesale at the end: the saved document always equals the latest
// complete run's result set, so entries for deleted files fall away on
// their own.
type AnalysisCache struct {
	rootDir string
	mutex   sync.RWMutex
	entries map[string]models.FileRecord
	stats   *CacheStats
}

// NewAnalysisCache creates an empty cache bound to a project root.
func NewAnalysisCache(rootDir string) *AnalysisCache {
	return &AnalysisCache{
		rootDir: rootDir,
		entries: make(map[string]models.FileRecord),
		stats:   &CacheStats{LastResetTime: time.Now()},
	}
}

// Path returns the on-disk location of the cache document.
func (c *AnalysisCache) Path() string {
	return filepath.Join(c.rootDir, cacheDirName, cacheFileName)
}

// Load reads the cache document from disk. A missing or unparsable file
// degrades to an empty cache; the returned error exists only so the
// caller can log it, never to abort a run.
func (c *AnalysisCache) Load() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]models.FileRecord)

	data, err := os.ReadFile(c.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read cache file: %w", err)
	}

	entries := make(map[string]models.FileRecord)
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse cache file: %w", err)
	}

	c.entries = entries
	return nil
}

// Snapshot returns a read-only copy of the current entries for worker
// goroutines. Workers never mutate the live cache; hit/miss counters are
// the only shared state and stay mutex-guarded.
func (c *AnalysisCache) Snapshot() *CacheSnapshot {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entries := make(map[string]models.FileRecord, len(c.entries))
	for path, record := range c.entries {
		entries[path] = record
	}
	return &CacheSnapshot{entries: entries, stats: c.stats}
}

// ReplaceAll swaps the cache contents for the given run results.
func (c *AnalysisCache) ReplaceAll(results map[string]models.FileRecord) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entries := make(map[string]models.FileRecord, len(results))
	for path, record := range results {
		entries[path] = record
	}
	c.entries = entries
}

// Save writes the whole cache document back to disk, creating the cache
// directory if needed. A save failure leaves the in-memory results valid.
func (c *AnalysisCache) Save() error {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if err := os.MkdirAll(filepath.Join(c.rootDir, cacheDirName), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}

	if err := os.WriteFile(c.Path(), data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}

// Clear removes the cache directory entirely.
func (c *AnalysisCache) Clear() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]models.FileRecord)
	if err := os.RemoveAll(filepath.Join(c.rootDir, cacheDirName)); err != nil {
		return fmt.Errorf("failed to remove cache directory: %w", err)
	}
	return nil
}

// Len returns the number of cached records.
func (c *AnalysisCache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.entries)
}

// CacheSnapshot is the immutable view of the cache taken at run start.
type CacheSnapshot struct {
	entries map[string]models.FileRecord
	stats   *CacheStats
}

// Lookup returns the cached record for relativePath when its stored
// fingerprint equals the given one. Fingerprint equality is the sole
// validity criterion; the empty sentinel fingerprint never hits.
func (s *CacheSnapshot) Lookup(relativePath string, fingerprint string) (models.FileRecord, bool) {
	if fingerprint == "" {
		s.stats.recordMiss()
		return models.FileRecord{}, false
	}

	record, ok := s.entries[relativePath]
	if !ok || record.Fingerprint != fingerprint {
		s.stats.recordMiss()
		return models.FileRecord{}, false
	}

	s.stats.recordHit()
	return record, true
}

// Len returns the number of records in the snapshot.
func (s *CacheSnapshot) Len() int {
	return len(s.entries)
}
