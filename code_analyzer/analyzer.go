package code_analyzer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/docuai/docuai/code_analyzer/contracts"
	"github.com/docuai/docuai/code_analyzer/models"
	"github.com/docuai/docuai/embed_data"
	contracts_provider "github.com/docuai/docuai/providers/contracts"
)

const (
	// maxPromptContentChars bounds the file content embedded in a prompt
	// to respect downstream token limits.
	maxPromptContentChars = 4000

	// previewChars bounds the content preview stored on each record for
	// reuse in assembly prompts.
	previewChars = 500
)

var analyzeFilePrompt = template.Must(template.New("analyze_file").Parse(string(embed_data.AnalyzeFilePrompt)))

// DocAnalyzer produces one FileRecord per file: cached records are reused
// when the content fingerprint is unchanged, otherwise the file content
// is sent to the generation provider for a structured summary.
type DocAnalyzer struct {
	rootDir  string
	provider contracts_provider.IGenerationProvider
	sink     contracts.IEventSink
}

// NewDocAnalyzer initializes a new DocAnalyzer. A nil sink discards
// events.
func NewDocAnalyzer(rootDir string, provider contracts_provider.IGenerationProvider, sink contracts.IEventSink) *DocAnalyzer {
	if sink == nil {
		sink = contracts.NopSink{}
	}
	return &DocAnalyzer{
		rootDir:  rootDir,
		provider: provider,
		sink:     sink,
	}
}

// AnalyzeFile analyzes a single file. Every failure mode, unreadable
// file or provider error, is recorded on the returned FileRecord instead
// of being raised; a single file must never abort the run. The only side
// effect is the outbound generation call.
func (analyzer *DocAnalyzer) AnalyzeFile(ctx context.Context, path string, snapshot *CacheSnapshot) models.FileRecord {
	relativePath, err := filepath.Rel(analyzer.rootDir, path)
	if err != nil {
		relativePath = path
	}
	relativePath = strings.ReplaceAll(relativePath, "\\", "/")

	fingerprint := FingerprintFile(path)

	if snapshot != nil {
		if cached, found := snapshot.Lookup(relativePath, fingerprint); found {
			return cached
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return models.FileRecord{
			RelativePath: relativePath,
			Fingerprint:  fingerprint,
			Error:        fmt.Sprintf("could not read file: %v", err),
		}
	}

	record := models.FileRecord{
		RelativePath:   relativePath,
		Fingerprint:    fingerprint,
		SizeBytes:      len(content),
		LineCount:      len(strings.Split(string(content), "\n")),
		ContentPreview: truncate(string(content), previewChars),
	}

	prompt, err := analyzer.buildPrompt(relativePath, content)
	if err != nil {
		record.Error = fmt.Sprintf("could not build prompt: %v", err)
		return record
	}

	analyzer.sink.EmitLog(models.SeverityInfo, fmt.Sprintf("Analyzing %s...", relativePath))

	analysis, err := analyzer.provider.Generate(ctx, prompt)
	if err != nil {
		record.Error = fmt.Sprintf("analysis failed: %v", err)
		return record
	}

	record.Analysis = analysis
	return record
}

func (analyzer *DocAnalyzer) buildPrompt(relativePath string, content []byte) (string, error) {
	var sb strings.Builder
	err := analyzeFilePrompt.Execute(&sb, struct {
		RelativePath string
		Outline      string
		Content      string
	}{
		RelativePath: relativePath,
		Outline:      ExtractOutline(relativePath, content),
		Content:      truncate(string(content), maxPromptContentChars),
	})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

// truncate cuts s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
