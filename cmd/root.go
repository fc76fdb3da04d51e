package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docuai/docuai/config"
	"github.com/docuai/docuai/constants/lipgloss"
	"github.com/docuai/docuai/providers"
	providerContracts "github.com/docuai/docuai/providers/contracts"
	"github.com/docuai/docuai/token_management"
	tokenContracts "github.com/docuai/docuai/token_management/contracts"
)

// RootDependencies holds the wired dependencies shared by all commands.
type RootDependencies struct {
	Config          *config.Config
	Cwd             string
	Provider        providerContracts.IGenerationProvider
	TokenManagement tokenContracts.ITokenManagement
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "docuai",
	Short: "docuai generates project documentation with AI analysis",
	Long: `docuai analyzes the source files of a project with an AI provider and
assembles the results into Markdown documentation (README, per-component
docs, API docs). Analyses are cached by content fingerprint so unchanged
files are skipped on subsequent runs.`,
	Run: func(cmd *cobra.Command, args []string) {
		version, _ := cmd.Flags().GetBool("version")
		if version {
			fmt.Println(config.DefaultConfig.Version)
			return
		}
		_ = cmd.Help()
	},
}

// handleRootCommand loads configuration and wires the provider and token
// manager. Returns nil after printing the error when wiring fails.
func handleRootCommand(cmd *cobra.Command) *RootDependencies {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error getting current directory: %v", err)))
		return nil
	}

	cfg := config.LoadConfigs(rootCmd, cwd)

	tokenManagement := token_management.NewTokenManager()

	provider, err := providers.GenerationProviderFactory(cfg.AIProviderConfig, tokenManagement)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error initializing AI provider: %v", err)))
		return nil
	}

	return &RootDependencies{
		Config:          cfg,
		Cwd:             cwd,
		Provider:        provider,
		TokenManagement: tokenManagement,
	}
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	config.InitFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error executing command: %v", err)))
		os.Exit(1)
	}
}

// resolveRootDir turns the optional positional path argument into an
// absolute project root, defaulting to the working directory.
func resolveRootDir(args []string, cwd string) (string, error) {
	rootDir := cwd
	if len(args) > 0 {
		rootDir = args[0]
	}

	absolute, err := filepath.Abs(rootDir)
	if err != nil {
		return "", fmt.Errorf("invalid project path %q: %w", rootDir, err)
	}

	info, err := os.Stat(absolute)
	if err != nil {
		return "", fmt.Errorf("project path %q: %w", rootDir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("project path %q is not a directory", rootDir)
	}
	return absolute, nil
}
