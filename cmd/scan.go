package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docuai/docuai/code_analyzer"
	"github.com/docuai/docuai/constants/lipgloss"
	"github.com/docuai/docuai/utils"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "List the files that would be analyzed, without calling the AI provider",
	Long: `The 'scan' command walks the project at the given path (default: the
current directory) and prints every file that passes the ignore patterns
and extension filter. Use it to check the filter configuration before an
expensive 'generate' run.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleScanCommand(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func handleScanCommand(cmd *cobra.Command, args []string) {
	rootDependencies := handleRootCommand(cmd)
	if rootDependencies == nil {
		return
	}

	rootDir, err := resolveRootDir(args, rootDependencies.Cwd)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(err.Error()))
		return
	}

	filter := utils.NewPathFilter(rootDependencies.Config.IgnorePatterns...)
	files, err := code_analyzer.ScanProjectFiles(rootDir, filter)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error scanning project: %v", err)))
		return
	}

	for _, file := range files {
		relative, err := filepath.Rel(rootDir, file)
		if err != nil {
			relative = file
		}
		fmt.Println(strings.ReplaceAll(relative, "\\", "/"))
	}
	fmt.Println(lipgloss.Green.Render(fmt.Sprintf("%d files would be analyzed", len(files))))
}
