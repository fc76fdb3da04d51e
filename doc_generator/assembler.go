package doc_generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/docuai/docuai/code_analyzer/contracts"
	"github.com/docuai/docuai/code_analyzer/models"
	"github.com/docuai/docuai/embed_data"
	contracts_provider "github.com/docuai/docuai/providers/contracts"
)

// Bounds on the digests fed back into the generation provider, to respect
// its input-size limits.
const (
	maxOverviewRecords  = 20
	overviewPrefixChars = 300
	maxStructureFiles   = 30
	maxSetupFiles       = 10
	maxAPIFiles         = 5
	apiPrefixChars      = 200
)

var (
	overviewPrompt  = template.Must(template.New("project_overview").Parse(string(embed_data.ProjectOverviewPrompt)))
	structurePrompt = template.Must(template.New("project_structure").Parse(string(embed_data.ProjectStructurePrompt)))
	setupPrompt     = template.Must(template.New("setup_instructions").Parse(string(embed_data.SetupInstructionsPrompt)))
	componentPrompt = template.Must(template.New("component_doc").Parse(string(embed_data.ComponentDocPrompt)))
	apiDocsPrompt   = template.Must(template.New("api_docs").Parse(string(embed_data.APIDocsPrompt)))
	readmeTemplate  = template.Must(template.New("readme").Parse(string(embed_data.ReadmeTemplate)))
)

// DocumentAssembler folds individual analysis records into aggregate
// Markdown artifacts by further prompting the generation provider with
// condensed summaries. Output text is written as-is; its structure is
// never validated.
type DocumentAssembler struct {
	rootDir  string
	provider contracts_provider.IGenerationProvider
	sink     contracts.IEventSink
}

// NewDocumentAssembler initializes a new DocumentAssembler. A nil sink
// discards events.
func NewDocumentAssembler(rootDir string, provider contracts_provider.IGenerationProvider, sink contracts.IEventSink) *DocumentAssembler {
	if sink == nil {
		sink = contracts.NopSink{}
	}
	return &DocumentAssembler{
		rootDir:  rootDir,
		provider: provider,
		sink:     sink,
	}
}

// sortedPaths returns the record keys in stable order for prompt
// assembly.
func sortedPaths(records map[string]models.FileRecord) []string {
	paths := make([]string, 0, len(records))
	for path := range records {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// GenerateOverview produces the high-level project overview from a
// bounded digest of per-file analyses.
func (assembler *DocumentAssembler) GenerateOverview(ctx context.Context, records map[string]models.FileRecord) (string, error) {
	var summaries []string
	for _, path := range sortedPaths(records) {
		record := records[path]
		if record.Analysis == "" {
			continue
		}
		summaries = append(summaries, fmt.Sprintf("File: %s\nAnalysis: %s...", path, truncate(record.Analysis, overviewPrefixChars)))
		if len(summaries) >= maxOverviewRecords {
			break
		}
	}

	prompt, err := renderPrompt(overviewPrompt, map[string]string{"Summaries": strings.Join(summaries, "\n\n")})
	if err != nil {
		return "", err
	}
	return assembler.provider.Generate(ctx, prompt)
}

// GenerateReadme assembles the README from generated sub-sections
// substituted into the fixed template. A failed sub-section degrades to
// an empty placeholder and is logged; the README is still produced.
func (assembler *DocumentAssembler) GenerateReadme(ctx context.Context, records map[string]models.FileRecord) (string, error) {
	overview := assembler.section(ctx, "overview", func() (string, error) {
		return assembler.GenerateOverview(ctx, records)
	})

	paths := sortedPaths(records)

	structure := assembler.section(ctx, "project structure", func() (string, error) {
		prompt, err := renderPrompt(structurePrompt, map[string]string{
			"Files": strings.Join(capped(paths, maxStructureFiles), ", "),
		})
		if err != nil {
			return "", err
		}
		return assembler.provider.Generate(ctx, prompt)
	})

	installation := assembler.section(ctx, "setup instructions", func() (string, error) {
		var setupFiles []string
		for _, path := range paths {
			if isSetupRelevant(path) {
				setupFiles = append(setupFiles, path)
			}
		}
		prompt, err := renderPrompt(setupPrompt, map[string]string{
			"Files": strings.Join(capped(setupFiles, maxSetupFiles), ", "),
		})
		if err != nil {
			return "", err
		}
		return assembler.provider.Generate(ctx, prompt)
	})

	var sb strings.Builder
	err := readmeTemplate.Execute(&sb, struct {
		ProjectName  string
		Overview     string
		Structure    string
		Components   string
		Installation string
		Usage        string
		APIDocs      string
		Dependencies string
		Contributing string
		License      string
	}{
		ProjectName:  ProjectNameFromRoot(assembler.rootDir),
		Overview:     overview,
		Structure:    structure,
		Components:   "Generated from code analysis",
		Installation: installation,
		Usage:        "See individual component documentation",
		APIDocs:      "See API documentation file",
		Dependencies: "Extracted from project files",
		Contributing: "Contributions welcome! Please read the code structure first.",
		License:      "Please specify license",
	})
	if err != nil {
		return "", fmt.Errorf("failed to render readme template: %w", err)
	}
	return sb.String(), nil
}

// GenerateComponentDocs writes docs/<stem>.md for every record with a
// non-empty analysis. Each artifact's failure is logged and the rest
// continue.
func (assembler *DocumentAssembler) GenerateComponentDocs(ctx context.Context, records map[string]models.FileRecord) {
	docsDir := filepath.Join(assembler.rootDir, "docs")
	if err := os.MkdirAll(docsDir, 0755); err != nil {
		assembler.sink.EmitLog(models.SeverityError, fmt.Sprintf("Error creating docs directory: %v", err))
		return
	}

	for _, path := range sortedPaths(records) {
		record := records[path]
		if record.Analysis == "" {
			continue
		}

		prompt, err := renderPrompt(componentPrompt, map[string]string{
			"RelativePath": path,
			"Analysis":     record.Analysis,
			"Preview":      record.ContentPreview,
		})
		if err != nil {
			assembler.sink.EmitLog(models.SeverityError, fmt.Sprintf("Error building prompt for %s: %v", path, err))
			continue
		}

		content, err := assembler.provider.Generate(ctx, prompt)
		if err != nil {
			assembler.sink.EmitLog(models.SeverityError, fmt.Sprintf("Error documenting %s: %v", path, err))
			continue
		}

		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		docFile := filepath.Join(docsDir, stem+".md")
		if err := os.WriteFile(docFile, []byte(content), 0644); err != nil {
			assembler.sink.EmitLog(models.SeverityError, fmt.Sprintf("Error saving %s: %v", docFile, err))
			continue
		}
		assembler.sink.EmitLog(models.SeverityInfo, fmt.Sprintf("Generated documentation: %s", docFile))
	}
}

// GenerateAPIDocs produces API_DOCUMENTATION.md when at least one record
// looks API-related. It returns the artifact content and whether it was
// generated at all.
func (assembler *DocumentAssembler) GenerateAPIDocs(ctx context.Context, records map[string]models.FileRecord) (string, bool, error) {
	var apiFiles []string
	for _, path := range sortedPaths(records) {
		if isAPIRelated(path, records[path].Analysis) {
			apiFiles = append(apiFiles, path)
		}
	}
	if len(apiFiles) == 0 {
		return "", false, nil
	}

	var summaries []string
	for _, path := range capped(apiFiles, maxAPIFiles) {
		summaries = append(summaries, fmt.Sprintf("File: %s, Analysis: %s...", path, truncate(records[path].Analysis, apiPrefixChars)))
	}

	prompt, err := renderPrompt(apiDocsPrompt, map[string]string{"Summaries": strings.Join(summaries, "\n")})
	if err != nil {
		return "", true, err
	}

	content, err := assembler.provider.Generate(ctx, prompt)
	if err != nil {
		return "", true, err
	}
	return content, true, nil
}

// GenerateAll produces every artifact: README.md, docs/<stem>.md per
// analyzed file, and API_DOCUMENTATION.md when applicable. Failures stay
// local to the artifact that produced them.
func (assembler *DocumentAssembler) GenerateAll(ctx context.Context, records map[string]models.FileRecord) {
	assembler.sink.EmitLog(models.SeverityInfo, "Generating README.md...")
	readme, err := assembler.GenerateReadme(ctx, records)
	if err != nil {
		assembler.sink.EmitLog(models.SeverityError, fmt.Sprintf("Error generating README: %v", err))
	} else {
		readmeFile := filepath.Join(assembler.rootDir, "README.md")
		if err := os.WriteFile(readmeFile, []byte(readme), 0644); err != nil {
			assembler.sink.EmitLog(models.SeverityError, fmt.Sprintf("Error saving README: %v", err))
		} else {
			assembler.sink.EmitLog(models.SeveritySuccess, fmt.Sprintf("Generated: %s", readmeFile))
		}
	}
	assembler.sink.EmitProgress("readme", 80)

	assembler.sink.EmitLog(models.SeverityInfo, "Generating component documentation...")
	assembler.GenerateComponentDocs(ctx, records)
	assembler.sink.EmitProgress("component-docs", 90)

	assembler.sink.EmitLog(models.SeverityInfo, "Generating API documentation...")
	apiDocs, applicable, err := assembler.GenerateAPIDocs(ctx, records)
	switch {
	case !applicable:
		assembler.sink.EmitLog(models.SeverityInfo, "No API-related files found, skipping API documentation")
	case err != nil:
		assembler.sink.EmitLog(models.SeverityError, fmt.Sprintf("Error generating API docs: %v", err))
	default:
		apiFile := filepath.Join(assembler.rootDir, "API_DOCUMENTATION.md")
		if err := os.WriteFile(apiFile, []byte(apiDocs), 0644); err != nil {
			assembler.sink.EmitLog(models.SeverityError, fmt.Sprintf("Error saving API docs: %v", err))
		} else {
			assembler.sink.EmitLog(models.SeveritySuccess, fmt.Sprintf("Generated: %s", apiFile))
		}
	}
	assembler.sink.EmitProgress("api-docs", 100)
}

// section runs a README sub-section generator, degrading to an empty
// section on failure.
func (assembler *DocumentAssembler) section(_ context.Context, name string, generate func() (string, error)) string {
	content, err := generate()
	if err != nil {
		assembler.sink.EmitLog(models.SeverityError, fmt.Sprintf("Error generating %s section: %v", name, err))
		return ""
	}
	return content
}

// ProjectNameFromRoot derives a display name from the root directory:
// separators become spaces and each word is title-cased.
func ProjectNameFromRoot(rootDir string) string {
	name := filepath.Base(rootDir)
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)

	words := strings.Fields(name)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func isAPIRelated(path string, analysis string) bool {
	haystack := strings.ToLower(path + " " + analysis)
	return strings.Contains(haystack, "api") || strings.Contains(haystack, "endpoint")
}

func isSetupRelevant(path string) bool {
	for _, marker := range []string{".py", ".js", ".json", ".yaml", ".yml", ".toml", "requirements", "go.mod"} {
		if strings.Contains(path, marker) {
			return true
		}
	}
	return false
}

func renderPrompt(tmpl *template.Template, data map[string]string) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return sb.String(), nil
}

func capped(items []string, limit int) []string {
	if len(items) > limit {
		return items[:limit]
	}
	return items
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
