package models

// FileRecord is the analysis result for one file. The JSON field names
// are the on-disk cache document keys; records round-trip through
// .rag_cache/analysis_cache.json unchanged.
//
// At most one of Analysis and Error is meaningfully populated. A record
// whose Fingerprint matches the cached fingerprint for the same
// RelativePath is reused verbatim and never re-analyzed.
type FileRecord struct {
	RelativePath   string `json:"path"`
	Fingerprint    string `json:"hash"`
	SizeBytes      int    `json:"size"`
	LineCount      int    `json:"lines"`
	Analysis       string `json:"analysis"`
	ContentPreview string `json:"content_preview"`
	Error          string `json:"error,omitempty"`
}
