package contracts

import "github.com/docuai/docuai/code_analyzer/models"

// IEventSink receives progress and log events from the pipeline. The
// engine only ever talks to this interface; the CLI and any interactive
// front end provide their own implementations.
type IEventSink interface {
	EmitProgress(phase string, percent float64)
	EmitLog(severity models.Severity, message string)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) EmitProgress(string, float64)         {}
func (NopSink) EmitLog(models.Severity, string)      {}
