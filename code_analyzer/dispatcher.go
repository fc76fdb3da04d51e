package code_analyzer

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/docuai/docuai/code_analyzer/contracts"
	"github.com/docuai/docuai/code_analyzer/models"
)

// DefaultWorkerCount is used when no worker count is configured.
const DefaultWorkerCount = 4

// Dispatcher runs the analyzer over a file set with a bounded worker
// pool. Workers only read the cache snapshot and send finished records on
// a channel; the coordinating goroutine alone merges them into the result
// map, so there is no concurrent-write hazard.
type Dispatcher struct {
	analyzer *DocAnalyzer
	workers  int
	sink     contracts.IEventSink
}

// NewDispatcher creates a dispatcher with the given pool size. A
// non-positive worker count falls back to DefaultWorkerCount.
func NewDispatcher(analyzer *DocAnalyzer, workers int, sink contracts.IEventSink) *Dispatcher {
	if workers <= 0 {
		workers = DefaultWorkerCount
	}
	if sink == nil {
		sink = contracts.NopSink{}
	}
	return &Dispatcher{
		analyzer: analyzer,
		workers:  workers,
		sink:     sink,
	}
}

// RunAll analyzes every path and returns the relative-path → record map.
// Completion order is not submission order. Cancellation is cooperative:
// the context is checked before each submission, and in-flight generation
// calls are left to finish or fail on their own. A panic escaping the
// analyzer is caught at this boundary and logged; that file is simply
// absent from the results.
func (d *Dispatcher) RunAll(ctx context.Context, paths []string, snapshot *CacheSnapshot) map[string]models.FileRecord {
	results := make(map[string]models.FileRecord, len(paths))
	if len(paths) == 0 {
		return results
	}

	recordChan := make(chan models.FileRecord)

	go func() {
		defer close(recordChan)

		p := pool.New().WithMaxGoroutines(d.workers)
		for _, path := range paths {
			if ctx.Err() != nil {
				d.sink.EmitLog(models.SeverityInfo, "Stop requested, skipping remaining files")
				break
			}
			path := path
			p.Go(func() {
				defer func() {
					if r := recover(); r != nil {
						d.sink.EmitLog(models.SeverityError, fmt.Sprintf("Error analyzing %s: %v", path, r))
					}
				}()
				recordChan <- d.analyzer.AnalyzeFile(ctx, path, snapshot)
			})
		}
		p.Wait()
	}()

	total := len(paths)
	completed := 0
	for record := range recordChan {
		results[record.RelativePath] = record
		completed++

		// Analysis occupies the 10-70% band of the overall run.
		d.sink.EmitProgress("analyze", 10+float64(completed)/float64(total)*60)
		if record.Error != "" {
			d.sink.EmitLog(models.SeverityError, fmt.Sprintf("Failed: %s (%s)", record.RelativePath, record.Error))
		} else {
			d.sink.EmitLog(models.SeverityInfo, fmt.Sprintf("Completed: %s", record.RelativePath))
		}
	}

	return results
}
