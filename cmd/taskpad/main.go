package main

import (
	"fmt"
	"os"

	"github.com/fmizzell/taskpad/internal/config"
	"github.com/fmizzell/taskpad/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	workspaceFlag string
	configFlag    string
	verbose       bool
	ephemeral     bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "taskpad",
	Short: "A small task list for the terminal",
	Long: `taskpad keeps a list of short tasks in the current workspace.

Tasks live in .taskpad/ under the workspace (--workspace or the current
directory). Run without arguments to open the interactive list.`,
	SilenceUsage: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runTUI,
}

func init() {
	// Assigned here rather than in the literal: initLogger refers back to
	// rootCmd through isInteractive, which would be an initialization cycle.
	rootCmd.PersistentPreRunE = initLogger

	rootCmd.PersistentFlags().StringVarP(&workspaceFlag, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default: <workspace>/.taskpad/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "Keep tasks in memory only")

	rootCmd.Flags().BoolVar(&watchFlag, "watch", false, "Reload when the task file changes on disk")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(configCmd)
}

// initLogger builds the zap logger from the workspace config.
// The interactive list owns the terminal, so it only logs to a file.
func initLogger(cmd *cobra.Command, args []string) error {
	workspaceDir, err := getWorkspaceDir()
	if err != nil {
		return err
	}

	cfg, err := config.Load(configPath(workspaceDir))
	if err != nil {
		return err
	}

	if isInteractive(cmd) && cfg.Logging.File == "" {
		logger = zap.NewNop()
		return nil
	}

	logger, err = logging.New(logging.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		File:    cfg.Logging.File,
		Verbose: verbose,
	})
	return err
}

func isInteractive(cmd *cobra.Command) bool {
	return cmd == rootCmd || cmd == tuiCmd
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
