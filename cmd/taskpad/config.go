package main

import (
	"fmt"
	"os"

	"github.com/fmizzell/taskpad/internal/config"
	"github.com/spf13/cobra"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the workspace configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long: `Write the default configuration to <workspace>/.taskpad/config.yaml
(or --config). An existing file is left alone unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: initConfig,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
}

func initConfig(cmd *cobra.Command, args []string) error {
	workspaceDir, err := getWorkspaceDir()
	if err != nil {
		return err
	}

	path := configPath(workspaceDir)
	if _, err := os.Stat(path); err == nil && !configForce {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
	return nil
}
