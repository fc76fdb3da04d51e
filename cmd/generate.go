package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/docuai/docuai/code_analyzer"
	"github.com/docuai/docuai/code_analyzer/models"
	"github.com/docuai/docuai/constants/lipgloss"
	"github.com/docuai/docuai/doc_generator"
	"github.com/docuai/docuai/utils"
)

// readmePreviewLines bounds the README preview printed after a run.
const readmePreviewLines = 25

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Analyze a project and generate its documentation",
	Long: `The 'generate' command scans the project at the given path (default:
the current directory), analyzes each candidate source file with the
configured AI provider, and writes README.md, per-component docs under
docs/, and API_DOCUMENTATION.md when applicable. Unchanged files are
served from the analysis cache.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleGenerateCommand(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func handleGenerateCommand(cmd *cobra.Command, args []string) {
	rootDependencies := handleRootCommand(cmd)
	if rootDependencies == nil {
		return
	}

	rootDir, err := resolveRootDir(args, rootDependencies.Cwd)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(err.Error()))
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startTime := time.Now()

	sink := newCLIEventSink()
	defer sink.Stop()

	sink.EmitLog(models.SeverityInfo, fmt.Sprintf("Initializing documentation pipeline for %s", rootDir))
	sink.EmitProgress("init", 5)

	if err := testProviderConnection(ctx, rootDependencies); err != nil {
		sink.EmitLog(models.SeverityError, fmt.Sprintf("AI provider connection failed: %v", err))
		return
	}

	cfg := rootDependencies.Config

	filter := utils.NewPathFilter(cfg.IgnorePatterns...)
	files, err := code_analyzer.ScanProjectFiles(rootDir, filter)
	if err != nil {
		sink.EmitLog(models.SeverityError, fmt.Sprintf("Error scanning project: %v", err))
		return
	}
	sink.EmitLog(models.SeverityInfo, fmt.Sprintf("Found %d files to analyze", len(files)))
	sink.EmitProgress("scan", 10)

	cache := code_analyzer.NewAnalysisCache(rootDir)
	if cfg.EnableCache {
		if err := cache.Load(); err != nil {
			sink.EmitLog(models.SeverityError, fmt.Sprintf("Cache load failed, starting fresh: %v", err))
		}
	}

	analyzer := code_analyzer.NewDocAnalyzer(rootDir, rootDependencies.Provider, sink)
	dispatcher := code_analyzer.NewDispatcher(analyzer, cfg.Workers, sink)

	results := dispatcher.RunAll(ctx, files, cache.Snapshot())

	if cfg.EnableCache {
		if err := persistResults(ctx, cache, results); err != nil {
			sink.EmitLog(models.SeverityError, fmt.Sprintf("Error saving cache: %v", err))
		}
	}

	if ctx.Err() != nil {
		sink.EmitLog(models.SeverityInfo, "Run stopped, cached analyses were left untouched")
		return
	}

	assembler := doc_generator.NewDocumentAssembler(rootDir, rootDependencies.Provider, sink)
	assembler.GenerateAll(ctx, results)

	stats := cache.GetPerformanceStats()
	sink.EmitLog(models.SeverityInfo, fmt.Sprintf(
		"Cache performance: %v hits, %v misses (%.1f%% hit rate)",
		stats["cache_hits"], stats["cache_misses"], stats["hit_rate_percent"],
	))
	sink.EmitLog(models.SeveritySuccess, fmt.Sprintf("Documentation generated in %s", time.Since(startTime).Round(time.Millisecond)))
	sink.Stop()

	rootDependencies.TokenManagement.DisplayTokens(cfg.AIProviderConfig.Provider, cfg.AIProviderConfig.Model)

	printReadmePreview(rootDir, cfg.Theme)
}

// persistResults overwrites the cache document with the run's records.
// The overwrite only happens for a run that saw every file: a stopped
// run skips it, so cached analyses for files the run never reached
// survive for the next one.
func persistResults(ctx context.Context, cache *code_analyzer.AnalysisCache, results map[string]models.FileRecord) error {
	if ctx.Err() != nil {
		return nil
	}
	cache.ReplaceAll(results)
	return cache.Save()
}

// testProviderConnection sends a minimal prompt before the run so a
// misconfigured provider fails fast instead of on every file.
func testProviderConnection(ctx context.Context, deps *RootDependencies) error {
	_, err := deps.Provider.Generate(ctx, "Reply with the single word: OK")
	return err
}

// printReadmePreview renders the head of the generated README with
// syntax highlighting.
func printReadmePreview(rootDir string, theme string) {
	content, err := os.ReadFile(filepath.Join(rootDir, "README.md"))
	if err != nil {
		return
	}

	fmt.Println(lipgloss.Info.Render("README preview:"))
	utils.RenderMarkdownPreview(string(content), readmePreviewLines, theme)
}
