package cmd

import (
	"sync"

	"github.com/pterm/pterm"

	"github.com/docuai/docuai/code_analyzer/models"
)

// cliEventSink renders pipeline events with pterm: one progress bar for
// the whole run plus severity-tagged log lines. Workers emit events
// concurrently, so rendering is serialized with a mutex.
type cliEventSink struct {
	mu       sync.Mutex
	progress *pterm.ProgressbarPrinter
}

func newCLIEventSink() *cliEventSink {
	progress, _ := pterm.DefaultProgressbar.
		WithTotal(100).
		WithTitle("Starting").
		WithRemoveWhenDone(true).
		Start()

	return &cliEventSink{progress: progress}
}

// EmitProgress moves the bar forward to the given overall percentage.
// Progress never moves backwards even if phases report out of order.
func (sink *cliEventSink) EmitProgress(phase string, percent float64) {
	sink.mu.Lock()
	defer sink.mu.Unlock()

	if sink.progress == nil {
		return
	}
	delta := int(percent) - sink.progress.Current
	if delta <= 0 {
		return
	}
	sink.progress.UpdateTitle(phase)
	sink.progress.Add(delta)
}

func (sink *cliEventSink) EmitLog(severity models.Severity, message string) {
	sink.mu.Lock()
	defer sink.mu.Unlock()

	switch severity {
	case models.SeverityError:
		pterm.Error.Println(message)
	case models.SeveritySuccess:
		pterm.Success.Println(message)
	default:
		pterm.Info.Println(message)
	}
}

func (sink *cliEventSink) Stop() {
	sink.mu.Lock()
	defer sink.mu.Unlock()

	if sink.progress != nil {
		_, _ = sink.progress.Stop()
		sink.progress = nil
	}
}
