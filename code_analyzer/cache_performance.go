package code_analyzer

import "time"

func (cs *CacheStats) recordHit() {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()
	cs.TotalRequests++
	cs.CacheHits++
}

func (cs *CacheStats) recordMiss() {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()
	cs.TotalRequests++
	cs.CacheMisses++
}

// GetPerformanceStats returns cache hit/miss statistics for the run.
func (c *AnalysisCache) GetPerformanceStats() map[string]interface{} {
	c.stats.mutex.RLock()
	defer c.stats.mutex.RUnlock()

	hitRate := 0.0
	if c.stats.TotalRequests > 0 {
		hitRate = float64(c.stats.CacheHits) / float64(c.stats.TotalRequests) * 100
	}

	return map[string]interface{}{
		"total_requests":   c.stats.TotalRequests,
		"cache_hits":       c.stats.CacheHits,
		"cache_misses":     c.stats.CacheMisses,
		"hit_rate_percent": hitRate,
		"last_reset":       c.stats.LastResetTime.Format(time.RFC3339),
	}
}

// ResetPerformanceStats resets all performance counters.
func (c *AnalysisCache) ResetPerformanceStats() {
	c.stats.mutex.Lock()
	defer c.stats.mutex.Unlock()

	c.stats.TotalRequests = 0
	c.stats.CacheHits = 0
	c.stats.CacheMisses = 0
	c.stats.LastResetTime = time.Now()
}
