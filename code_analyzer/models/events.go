package models

// Severity tags a log event for the front end.
type Severity string

const (
	SeverityInfo    Severity = "INFO"
	SeverityError   Severity = "ERROR"
	SeveritySuccess Severity = "SUCCESS"
)
