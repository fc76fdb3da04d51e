package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/docuai/docuai/code_analyzer"
	"github.com/docuai/docuai/constants/lipgloss"
	"github.com/docuai/docuai/utils"
)

// resetCacheCmd represents the reset-cache command
var resetCacheCmd = &cobra.Command{
	Use:   "reset-cache [path]",
	Short: "Reset the analysis cache of a project",
	Long: `The 'reset-cache' command removes the cached analysis results stored
under the project's '.rag_cache' directory. Use it when the cache is
corrupted or when every file should be re-analyzed from scratch on the
next 'generate' run.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")
		stats, _ := cmd.Flags().GetBool("stats")

		handleResetCacheCommand(cmd, args, force, stats)
	},
}

func init() {
	resetCacheCmd.Flags().BoolP("force", "f", false, "Force cache reset without confirmation")
	resetCacheCmd.Flags().BoolP("stats", "s", false, "Show cache statistics instead of resetting")

	rootCmd.AddCommand(resetCacheCmd)
}

func handleResetCacheCommand(cmd *cobra.Command, args []string, force bool, showStats bool) {
	rootDependencies := handleRootCommand(cmd)
	if rootDependencies == nil {
		return
	}

	rootDir, err := resolveRootDir(args, rootDependencies.Cwd)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(err.Error()))
		return
	}

	cache := code_analyzer.NewAnalysisCache(rootDir)
	if err := cache.Load(); err != nil {
		fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Warning: could not read cache: %v", err)))
	}

	// Only show statistics, skip the actual reset.
	if showStats {
		fmt.Println(lipgloss.Info.Render("Cache Statistics:"))
		fmt.Printf("  Cache File: %s\n", cache.Path())
		fmt.Printf("  Cached Records: %d\n", cache.Len())
		if info, err := os.Stat(cache.Path()); err == nil {
			fmt.Printf("  Total Size: %.2f KB\n", float64(info.Size())/1024)
		} else {
			fmt.Println("  No cache file on disk")
		}
		return
	}

	if !force {
		confirmed, err := utils.ConfirmPrompt("Are you sure you want to reset the analysis cache?", bufio.NewReader(os.Stdin))
		if err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error reading confirmation: %v", err)))
			return
		}
		if !confirmed {
			fmt.Println(lipgloss.Yellow.Render("Cache reset cancelled."))
			return
		}
	}

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgCyan)).
		WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
		WithDelay(100).WithRemoveWhenDone(true)

	spinnerInstance, _ := spinner.Start("Resetting analysis cache...")

	err = cache.Clear()
	spinnerInstance.Stop()
	fmt.Print("\r")
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error resetting cache: %v", err)))
		return
	}

	fmt.Println(lipgloss.Green.Render("✓ Analysis cache has been successfully reset!"))
}
